package utils

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// ThumbnailWidth is the preview width; height keeps the aspect ratio.
const ThumbnailWidth = 320

// MakeThumbnail decodes an image (honouring EXIF orientation) and returns a
// JPEG preview no wider than ThumbnailWidth.
func MakeThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > ThumbnailWidth {
		img = imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
