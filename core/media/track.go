package media

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyTrack is returned when a decoded track has no samples. The spectrum
// generator's index arithmetic divides by the sample count, so empty audio is
// rejected at the boundary.
var ErrEmptyTrack = errors.New("audio track has no samples")

// Track is a finite, mono sequence of amplitude samples in [-1, 1] plus a
// sample rate. Immutable once loaded: every consumer reads, none write.
type Track struct {
	Samples    []float64
	SampleRate int
}

// NewTrack validates and wraps raw samples.
func NewTrack(samples []float64, sampleRate int) (*Track, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyTrack
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	return &Track{Samples: samples, SampleRate: sampleRate}, nil
}

// Duration returns the track length in seconds.
func (t *Track) Duration() float64 {
	return float64(len(t.Samples)) / float64(t.SampleRate)
}

// Concat joins tracks end to end. All tracks must share a sample rate.
func Concat(tracks ...*Track) (*Track, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyTrack
	}
	if len(tracks) == 1 {
		return tracks[0], nil
	}

	rate := tracks[0].SampleRate
	total := 0
	for _, tr := range tracks {
		if tr.SampleRate != rate {
			return nil, fmt.Errorf("sample rate mismatch: %d vs %d", tr.SampleRate, rate)
		}
		total += len(tr.Samples)
	}

	joined := make([]float64, 0, total)
	for _, tr := range tracks {
		joined = append(joined, tr.Samples...)
	}
	return NewTrack(joined, rate)
}

// Loop tiles the track to exactly dur seconds: whole repetitions followed by
// a truncated final one. No crossfade. Works for dur shorter than the track
// too, in which case the result is a plain truncation.
func (t *Track) Loop(dur float64) *Track {
	want := int(math.Round(dur * float64(t.SampleRate)))
	if want <= 0 {
		want = 1
	}

	out := make([]float64, want)
	for i := 0; i < want; i += len(t.Samples) {
		copy(out[i:], t.Samples)
	}
	return &Track{Samples: out, SampleRate: t.SampleRate}
}

// Window returns n samples starting at idx, wrapping idx into range and
// zero-padding on the right once the end of the track is reached.
func (t *Track) Window(idx, n int) []float64 {
	idx = idx % len(t.Samples)
	if idx < 0 {
		idx += len(t.Samples)
	}

	out := make([]float64, n)
	copy(out, t.Samples[idx:]) // remainder stays zero
	return out
}

// RMS computes root-mean-square amplitude over samples [from, from+n).
// The caller must keep the range inside the track.
func (t *Track) RMS(from, n int) float64 {
	var sum float64
	for _, s := range t.Samples[from : from+n] {
		sum += s * s
	}
	return math.Sqrt(sum / float64(n))
}
