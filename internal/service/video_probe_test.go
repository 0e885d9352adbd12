package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	mp4 "github.com/abema/go-mp4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMP4 writes a header-only mp4 (ftyp + moov/mvhd) with the given duration.
func buildMP4(t *testing.T, timescale uint32, duration uint32) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := mp4.NewWriter(f)

	_, err = w.StartBox(&mp4.BoxInfo{Type: mp4.BoxTypeFtyp()})
	require.NoError(t, err)
	_, err = mp4.Marshal(w, &mp4.Ftyp{
		MajorBrand:       [4]byte{'i', 's', 'o', 'm'},
		MinorVersion:     0x200,
		CompatibleBrands: []mp4.CompatibleBrandElem{{CompatibleBrand: [4]byte{'i', 's', 'o', 'm'}}},
	}, mp4.Context{})
	require.NoError(t, err)
	_, err = w.EndBox()
	require.NoError(t, err)

	_, err = w.StartBox(&mp4.BoxInfo{Type: mp4.BoxTypeMoov()})
	require.NoError(t, err)
	_, err = w.StartBox(&mp4.BoxInfo{Type: mp4.BoxTypeMvhd()})
	require.NoError(t, err)
	_, err = mp4.Marshal(w, &mp4.Mvhd{
		Timescale:   timescale,
		DurationV0:  duration,
		Rate:        0x00010000,
		Volume:      0x0100,
		NextTrackID: 1,
	}, mp4.Context{})
	require.NoError(t, err)
	_, err = w.EndBox()
	require.NoError(t, err)
	_, err = w.EndBox()
	require.NoError(t, err)

	require.NoError(t, f.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestMP4Prober_Probe(t *testing.T) {
	tests := []struct {
		name      string
		timescale uint32
		duration  uint32
		want      time.Duration
	}{
		{"29 seconds", 1000, 29000, 29 * time.Second},
		{"31 seconds at 90kHz", 90000, 31 * 90000, 31 * time.Second},
		{"fractional", 600, 1500, 2500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMP4Prober().Probe(context.Background(), buildMP4(t, tt.timescale, tt.duration))

			require.NoError(t, err)
			assert.InDelta(t, float64(tt.want), float64(got), float64(time.Millisecond))
		})
	}
}

func TestMP4Prober_ZeroTimescale(t *testing.T) {
	_, err := NewMP4Prober().Probe(context.Background(), buildMP4(t, 0, 0))
	assert.ErrorIs(t, err, errNoDuration)
}

func TestMP4Prober_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMP4Prober().Probe(ctx, []byte("not a video"))
	assert.ErrorIs(t, err, context.Canceled)
}
