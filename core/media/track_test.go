package media

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackRejectsEmptyAudio(t *testing.T) {
	_, err := NewTrack(nil, 44100)
	assert.ErrorIs(t, err, ErrEmptyTrack)

	_, err = NewTrack([]float64{0.1}, 0)
	assert.Error(t, err)
}

func TestLoopMatchesRequestedDuration(t *testing.T) {
	track, err := NewTrack(make([]float64, 1000), 1000) // 1 second
	require.NoError(t, err)

	cases := []float64{0.25, 1, 2.5, 60}
	for _, dur := range cases {
		looped := track.Loop(dur)
		assert.Equal(t, dur, looped.Duration(), "dur=%v", dur)
	}
}

func TestLoopTilesSeamlessly(t *testing.T) {
	samples := []float64{1, 2, 3}
	track, err := NewTrack(samples, 3) // 1 second
	require.NoError(t, err)

	looped := track.Loop(2.0 + 1.0/3.0) // 7 samples: two repetitions plus one
	require.Len(t, looped.Samples, 7)
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3, 1}, looped.Samples)
}

func TestConcatRequiresMatchingRates(t *testing.T) {
	a, _ := NewTrack([]float64{1, 2}, 44100)
	b, _ := NewTrack([]float64{3}, 48000)

	_, err := Concat(a, b)
	assert.Error(t, err)

	c, _ := NewTrack([]float64{3}, 44100)
	joined, err := Concat(a, c)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, joined.Samples)
}

func TestWindowWrapsAndZeroPads(t *testing.T) {
	track, err := NewTrack([]float64{1, 2, 3, 4, 5}, 5)
	require.NoError(t, err)

	// Past the end of the data the window is zero-padded on the right.
	assert.Equal(t, []float64{4, 5, 0, 0}, track.Window(3, 4))

	// The start index wraps around the track length.
	assert.Equal(t, []float64{3, 4}, track.Window(7, 2))
	assert.Equal(t, track.Window(0, 4), track.Window(5, 4))
}

func TestRMS(t *testing.T) {
	track, err := NewTrack([]float64{0.5, -0.5, 0.5, -0.5}, 4)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, track.RMS(0, 4), 1e-12)

	silent, err := NewTrack(make([]float64, 8), 8)
	require.NoError(t, err)
	assert.Zero(t, silent.RMS(0, 8))

	// A full-scale sine has RMS 1/sqrt(2).
	n := 1024
	sine := make([]float64, n)
	for i := range sine {
		sine[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}
	sineTrack, err := NewTrack(sine, n)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt2, sineTrack.RMS(0, n), 1e-3)
}
