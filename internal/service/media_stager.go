package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"zitheke_dev_v1/internal/model"
	"zitheke_dev_v1/pkg/utils"
)

// ==================== Limits ====================

// MediaLimits bounds what a wizard session may stage.
type MediaLimits struct {
	MaxImages        int
	MaxImageBytes    int64
	MaxVideoBytes    int64
	MaxVideoDuration time.Duration
}

// DefaultMediaLimits returns the storefront defaults: 5 images, one video of
// at most 30MB and 30 seconds.
func DefaultMediaLimits() MediaLimits {
	return MediaLimits{
		MaxImages:        5,
		MaxImageBytes:    10 << 20,
		MaxVideoBytes:    30 << 20,
		MaxVideoDuration: 30 * time.Second,
	}
}

func (l MediaLimits) withDefaults() MediaLimits {
	d := DefaultMediaLimits()
	if l.MaxImages <= 0 {
		l.MaxImages = d.MaxImages
	}
	if l.MaxImageBytes <= 0 {
		l.MaxImageBytes = d.MaxImageBytes
	}
	if l.MaxVideoBytes <= 0 {
		l.MaxVideoBytes = d.MaxVideoBytes
	}
	if l.MaxVideoDuration <= 0 {
		l.MaxVideoDuration = d.MaxVideoDuration
	}
	return l
}

// CheckImageSize rejects an image larger than MaxImageBytes.
func (l MediaLimits) CheckImageSize(filename string, size int64) *WizardError {
	if size > l.MaxImageBytes {
		return mediaError(RuleImageSize, fmt.Sprintf("%s is larger than %dMB.", filename, l.MaxImageBytes>>20))
	}
	return nil
}

// CheckVideoSize rejects a video larger than MaxVideoBytes.
func (l MediaLimits) CheckVideoSize(size int64) *WizardError {
	if size > l.MaxVideoBytes {
		return mediaError(RuleVideoSize, fmt.Sprintf("Video must be %dMB or smaller.", l.MaxVideoBytes>>20))
	}
	return nil
}

// ==================== Stager ====================

// MediaStager holds the images and the optional video of one wizard session.
// Images keep insertion order; each one carries its own preview.
type MediaStager struct {
	limits MediaLimits
	store  StorageProvider
	prober VideoProber
	log    *zap.Logger

	mu       sync.Mutex
	images   []*model.StagedFile
	video    *model.StagedFile
	probeSeq uint64
}

func NewMediaStager(limits MediaLimits, store StorageProvider, prober VideoProber, log *zap.Logger) *MediaStager {
	if log == nil {
		log = zap.NewNop()
	}
	return &MediaStager{
		limits: limits.withDefaults(),
		store:  store,
		prober: prober,
		log:    log.Named("MediaStager"),
	}
}

// Images returns the staged images in display order.
func (s *MediaStager) Images() []model.StagedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Map(s.images, func(f *model.StagedFile, _ int) model.StagedFile { return *f })
}

// ImageCount returns the number of staged images.
func (s *MediaStager) ImageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}

// Video returns the staged video, or nil.
func (s *MediaStager) Video() *model.StagedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.video == nil {
		return nil
	}
	v := *s.video
	return &v
}

// StageImages accepts the whole batch or none of it.
func (s *MediaStager) StageImages(ctx context.Context, files []model.UploadedFile) ([]model.StagedFile, error) {
	if len(files) == 0 {
		return s.Images(), nil
	}
	if err := s.checkImageRoom(len(files)); err != nil {
		return nil, err
	}

	staged := make([]*model.StagedFile, 0, len(files))
	for _, f := range files {
		sf, err := s.inspectImage(f)
		if err != nil {
			return nil, err
		}
		staged = append(staged, sf)
	}

	for i, sf := range staged {
		url, err := s.uploadImagePreview(ctx, sf)
		if err != nil {
			s.deletePreviews(ctx, staged[:i])
			return nil, err
		}
		sf.PreviewURL = url
	}

	s.mu.Lock()
	if len(s.images)+len(staged) > s.limits.MaxImages {
		s.mu.Unlock()
		s.deletePreviews(ctx, staged)
		return nil, s.imageLimitError()
	}
	s.images = append(s.images, staged...)
	s.mu.Unlock()

	s.log.Debug("images staged", zap.Int("added", len(staged)))
	return s.Images(), nil
}

// RemoveImage drops the image at index together with its preview.
func (s *MediaStager) RemoveImage(ctx context.Context, index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.images) {
		s.mu.Unlock()
		return mediaError(RuleImageIndex, fmt.Sprintf("No image at position %d.", index))
	}
	removed := s.images[index]
	s.images = append(s.images[:index:index], s.images[index+1:]...)
	s.mu.Unlock()

	s.deletePreviews(ctx, []*model.StagedFile{removed})
	return nil
}

// StageVideo validates and stages a video, replacing any previous one. Every
// call supersedes the probes of earlier calls: a probe that finishes after a
// newer selection was made yields ErrStaleVideoProbe and changes nothing.
// A rejected video leaves the previously staged one in place.
func (s *MediaStager) StageVideo(ctx context.Context, file model.UploadedFile) (*model.StagedFile, error) {
	s.mu.Lock()
	s.probeSeq++
	seq := s.probeSeq
	s.mu.Unlock()

	if werr := s.limits.CheckVideoSize(file.Size()); werr != nil {
		return nil, werr
	}

	mt := mimetype.Detect(file.Data)
	if !strings.HasPrefix(mt.String(), "video/") {
		return nil, mediaError(RuleVideoType, "Please select a video file.")
	}

	duration, err := s.prober.Probe(ctx, file.Data)
	if err != nil {
		if s.isStale(seq) {
			return nil, ErrStaleVideoProbe
		}
		s.log.Info("video probe failed", zap.String("filename", file.Filename), zap.Error(err))
		return nil, mediaError(RuleVideoProbe, "Could not read the video duration.")
	}
	if s.isStale(seq) {
		return nil, ErrStaleVideoProbe
	}
	if duration > s.limits.MaxVideoDuration {
		return nil, mediaError(RuleVideoDuration,
			fmt.Sprintf("Video must be %d seconds or shorter.", int(s.limits.MaxVideoDuration/time.Second)))
	}

	sf := &model.StagedFile{
		ID:          uuid.NewString(),
		Kind:        model.MediaVideo,
		Filename:    file.Filename,
		ContentType: mt.String(),
		Size:        file.Size(),
		Duration:    duration,
		Data:        file.Data,
	}
	url, err := s.store.Upload(ctx, file.Data, previewName(file.Filename, mt.Extension()), sf.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store video preview: %w", err)
	}
	sf.PreviewURL = url

	s.mu.Lock()
	if seq != s.probeSeq {
		s.mu.Unlock()
		s.deletePreviews(ctx, []*model.StagedFile{sf})
		return nil, ErrStaleVideoProbe
	}
	previous := s.video
	s.video = sf
	s.mu.Unlock()

	if previous != nil {
		s.deletePreviews(ctx, []*model.StagedFile{previous})
	}
	s.log.Debug("video staged", zap.String("filename", sf.Filename), zap.Duration("duration", duration))

	out := *sf
	return &out, nil
}

// RemoveVideo drops the staged video, if any, and cancels pending probes.
func (s *MediaStager) RemoveVideo(ctx context.Context) {
	s.mu.Lock()
	s.probeSeq++
	previous := s.video
	s.video = nil
	s.mu.Unlock()

	if previous != nil {
		s.deletePreviews(ctx, []*model.StagedFile{previous})
	}
}

// Discard releases every staged file and preview.
func (s *MediaStager) Discard(ctx context.Context) {
	s.mu.Lock()
	s.probeSeq++
	all := s.images
	if s.video != nil {
		all = append(all, s.video)
	}
	s.images = nil
	s.video = nil
	s.mu.Unlock()

	s.deletePreviews(ctx, all)
}

// ==================== Helpers ====================

func (s *MediaStager) isStale(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq != s.probeSeq
}

func (s *MediaStager) checkImageRoom(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.images)+n > s.limits.MaxImages {
		return s.imageLimitError()
	}
	return nil
}

func (s *MediaStager) imageLimitError() *WizardError {
	return mediaError(RuleImageLimit, fmt.Sprintf("You can upload a maximum of %d images.", s.limits.MaxImages))
}

func (s *MediaStager) inspectImage(f model.UploadedFile) (*model.StagedFile, error) {
	if werr := s.limits.CheckImageSize(f.Filename, f.Size()); werr != nil {
		return nil, werr
	}
	mt := mimetype.Detect(f.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, mediaError(RuleImageType, fmt.Sprintf("%s is not an image.", f.Filename))
	}
	return &model.StagedFile{
		ID:          uuid.NewString(),
		Kind:        model.MediaImage,
		Filename:    f.Filename,
		ContentType: mt.String(),
		Size:        f.Size(),
		Data:        f.Data,
	}, nil
}

// uploadImagePreview stores a thumbnail, or the original when it cannot be decoded.
func (s *MediaStager) uploadImagePreview(ctx context.Context, sf *model.StagedFile) (string, error) {
	data, name, contentType := sf.Data, previewName(sf.Filename, filepath.Ext(sf.Filename)), sf.ContentType
	if thumb, err := utils.MakeThumbnail(sf.Data); err == nil {
		data, name, contentType = thumb, previewName(sf.Filename, ".jpg"), "image/jpeg"
	} else {
		s.log.Debug("thumbnail skipped", zap.String("filename", sf.Filename), zap.Error(err))
	}

	url, err := s.store.Upload(ctx, data, name, contentType)
	if err != nil {
		return "", fmt.Errorf("store image preview: %w", err)
	}
	return url, nil
}

func (s *MediaStager) deletePreviews(ctx context.Context, files []*model.StagedFile) {
	for _, f := range files {
		if f.PreviewURL == "" {
			continue
		}
		if err := s.store.Delete(ctx, f.PreviewURL); err != nil {
			s.log.Warn("delete preview failed", zap.String("url", f.PreviewURL), zap.Error(err))
		}
	}
}

func previewName(filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return base + ext
}
