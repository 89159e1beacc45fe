package spectrum

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NoYaRender/core/media"
)

var barColor = color.RGBA{R: 46, G: 204, B: 113, A: 255}

func sineTrack(t *testing.T, amplitude float64, n, rate int) *media.Track {
	t.Helper()
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*440*float64(i)/float64(rate))
	}
	track, err := media.NewTrack(samples, rate)
	require.NoError(t, err)
	return track
}

// barHeight counts filled pixels in the column at x.
func barHeight(img *image.RGBA, x, h int) int {
	count := 0
	for y := 0; y < h; y++ {
		if img.RGBAAt(x, y).A != 0 {
			count++
		}
	}
	return count
}

func TestFrameDimensionsAndColors(t *testing.T) {
	track := sineTrack(t, 0.8, 44100, 44100)

	w, h := 640, 360
	img := Frame(1.25, track, w, h, barColor)

	require.Equal(t, w, img.Bounds().Dx())
	require.Equal(t, h, img.Bounds().Dy())

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := img.RGBAAt(x, y)
			if px.A == 0 {
				// Background: zero everywhere.
				assert.Equal(t, color.RGBA{}, px)
			} else {
				assert.Equal(t, barColor, px)
			}
		}
	}
}

func TestBarHeightNeverExceedsHalfFrame(t *testing.T) {
	// Full-scale DC input maximizes the low bins.
	samples := make([]float64, 44100)
	for i := range samples {
		samples[i] = 1.0
	}
	track, err := media.NewTrack(samples, 44100)
	require.NoError(t, err)

	w, h := 400, 200
	img := Frame(0, track, w, h, barColor)

	for x := 0; x < w; x++ {
		assert.LessOrEqual(t, barHeight(img, x, h), h/2, "column %d", x)
	}
	// And the cap is actually hit for this input.
	assert.Equal(t, h/2, barHeight(img, 0, h))
}

func TestBarHeightGrowsWithLoudness(t *testing.T) {
	quiet := sineTrack(t, 0.01, 44100, 44100)
	loud := sineTrack(t, 0.2, 44100, 44100)

	w, h := 400, 720
	quietImg := Frame(0, quiet, w, h, barColor)
	loudImg := Frame(0, loud, w, h, barColor)

	// The 440 Hz bin lands in a low bar; compare the tallest bar column.
	maxQuiet, maxLoud := 0, 0
	for x := 0; x < w; x++ {
		if bh := barHeight(quietImg, x, h); bh > maxQuiet {
			maxQuiet = bh
		}
		if bh := barHeight(loudImg, x, h); bh > maxLoud {
			maxLoud = bh
		}
	}
	assert.Greater(t, maxLoud, maxQuiet)
}

func TestFrameIndexWraps(t *testing.T) {
	track := sineTrack(t, 0.5, 4410, 4410)

	// t=1.0 maps to idx == len(samples), which wraps to 0.
	atWrap := Frame(1.0, track, 320, 180, barColor)
	atZero := Frame(0, track, 320, 180, barColor)

	assert.Equal(t, atZero.Pix, atWrap.Pix)
}

func TestFrameIsDeterministic(t *testing.T) {
	track := sineTrack(t, 0.5, 44100, 44100)

	a := Frame(0.37, track, 320, 180, barColor)
	b := Frame(0.37, track, 320, 180, barColor)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestBarGapStaysClear(t *testing.T) {
	samples := make([]float64, 44100)
	for i := range samples {
		samples[i] = 1.0
	}
	track, err := media.NewTrack(samples, 44100)
	require.NoError(t, err)

	w, h := 400, 200
	img := Frame(0, track, w, h, barColor)

	// The two columns before each bar boundary are the gap.
	span := w / NumBars
	for i := 1; i < NumBars; i++ {
		for _, x := range []int{i*span - 1, i*span - 2} {
			assert.Zero(t, barHeight(img, x, h), "gap column %d", x)
		}
	}
}
