package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	mp4 "github.com/abema/go-mp4"
)

var errNoDuration = errors.New("video carries no duration")

// VideoProber reads the playback duration of a video file.
type VideoProber interface {
	Probe(ctx context.Context, data []byte) (time.Duration, error)
}

// MP4Prober reads the movie header of ISO-BMFF files (mp4, mov, m4v, 3gp).
type MP4Prober struct{}

func NewMP4Prober() *MP4Prober {
	return &MP4Prober{}
}

func (p *MP4Prober) Probe(ctx context.Context, data []byte) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	info, err := mp4.Probe(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("probe mp4: %w", err)
	}
	if info.Timescale == 0 {
		return 0, errNoDuration
	}

	secs := float64(info.Duration) / float64(info.Timescale)
	return time.Duration(secs * float64(time.Second)), nil
}

// VideoProberFunc adapts a function to VideoProber.
type VideoProberFunc func(ctx context.Context, data []byte) (time.Duration, error)

func (f VideoProberFunc) Probe(ctx context.Context, data []byte) (time.Duration, error) {
	return f(ctx, data)
}
