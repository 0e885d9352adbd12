package model

import "time"

// MediaKind distinguishes staged images from the staged video.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// UploadedFile is a file selection as received from the storefront.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// Size returns the byte length of the file.
func (f UploadedFile) Size() int64 { return int64(len(f.Data)) }

// StagedFile is an accepted, not yet submitted media file together with its
// preview. File and preview live in one value so they are always removed together.
type StagedFile struct {
	ID          string        `json:"id"`
	Kind        MediaKind     `json:"kind"`
	Filename    string        `json:"filename"`
	ContentType string        `json:"content_type"`
	Size        int64         `json:"size"`
	Duration    time.Duration `json:"duration,omitempty"`
	PreviewURL  string        `json:"preview_url"`
	Data        []byte        `json:"-"`
}
