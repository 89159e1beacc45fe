// Package spectrum holds the frame-synthesis core: FFT-driven bar frames and
// the beat-reactive zoom factor. Everything here is a pure function of its
// inputs so an external encoder may request frames in any order.
package spectrum

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"NoYaRender/core/media"
)

const (
	// NumBars is the number of vertical bars per frame.
	NumBars = 40
	// WindowSize is the FFT analysis window in samples.
	WindowSize = 2048
	// lowBins is how many of the lowest magnitude bins feed the bars.
	lowBins = NumBars * 2
	// sensitivity is the linear scale from magnitude mean to pixels.
	sensitivity = 5.0
	// barGap is the horizontal gap between adjacent bars in pixels.
	barGap = 2
)

// Frame renders the spectrum bars for timestamp t into a w×h RGBA image.
// Bars are filled with col; all other pixels are transparent black.
//
// The sample index wraps (idx = floor(t*sr) mod len), so the spectrum stays
// defined for any t, even past the end of the source audio.
func Frame(t float64, track *media.Track, w, h int, col color.RGBA) *image.RGBA {
	idx := int(math.Floor(t * float64(track.SampleRate)))
	window := track.Window(idx, WindowSize)

	fft := fourier.NewFFT(WindowSize)
	coeffs := fft.Coefficients(nil, window)

	bars := binMagnitudes(coeffs)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	barSpan := w / NumBars
	maxBar := h / 2

	for i, v := range bars {
		bh := int(math.Min(v*sensitivity, float64(maxBar)))
		if bh <= 0 {
			continue
		}
		x0 := i * barSpan
		x1 := (i+1)*barSpan - barGap
		rect := image.Rect(x0, h-bh, x1, h)
		draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Src)
	}
	return img
}

// binMagnitudes averages pairs of the lowest FFT magnitude bins into bar values.
func binMagnitudes(coeffs []complex128) [NumBars]float64 {
	var bars [NumBars]float64
	for i := 0; i < NumBars; i++ {
		sum := 0.0
		for b := 2 * i; b < 2*i+2 && b < lowBins && b < len(coeffs); b++ {
			sum += cmplx.Abs(coeffs[b])
		}
		bars[i] = sum / 2
	}
	return bars
}
