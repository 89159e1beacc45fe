package spectrum

import (
	"NoYaRender/core/media"
)

const (
	// zoomWindow is the RMS lookahead in seconds.
	zoomWindow = 0.1
	// zoomScale maps RMS loudness to extra zoom.
	zoomScale = 0.2
	// zoomMax caps the pulse at 5% so loud passages do not jump the frame.
	zoomMax = 1.05
)

// Zoom returns a beat-reactive zoom multiplier in [1.0, 1.05] for timestamp t.
// Unlike the spectrum index this does not wrap: when the [t, t+0.1) window
// falls outside the track, the zoom is a neutral 1.0.
func Zoom(t float64, track *media.Track) float64 {
	start := int(t * float64(track.SampleRate))
	n := int(zoomWindow * float64(track.SampleRate))
	if start < 0 || n <= 0 || start+n > len(track.Samples) {
		return 1.0
	}

	rms := track.RMS(start, n)
	zoom := 1.0 + rms*zoomScale
	if zoom > zoomMax {
		zoom = zoomMax
	}
	return zoom
}
