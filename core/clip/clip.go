// Package clip models time-indexed visual content: duration-bounded sources
// of frames, positioned layers, and their composition.
package clip

import (
	"image"
)

// Clip is a duration-bounded, time-indexed frame source. Frame may return
// (nil, nil) to contribute nothing at that timestamp. Frames are generated
// lazily and never cached by the caller, so querying the same timestamp twice
// must yield the same image.
type Clip interface {
	Duration() float64
	Frame(t float64) (*image.RGBA, error)
}

// FrameFunc adapts a pure function into a Clip body.
type FrameFunc func(t float64) (*image.RGBA, error)

type funcClip struct {
	dur float64
	fn  FrameFunc
}

// NewFunc wraps a frame function with a duration.
func NewFunc(dur float64, fn FrameFunc) Clip {
	return &funcClip{dur: dur, fn: fn}
}

func (c *funcClip) Duration() float64 { return c.dur }

func (c *funcClip) Frame(t float64) (*image.RGBA, error) { return c.fn(t) }

// HAlign is a horizontal anchor.
type HAlign int

const (
	Left HAlign = iota
	HCenter
	Right
)

// VAlign is a vertical anchor.
type VAlign int

const (
	Top VAlign = iota
	VCenter
	Bottom
)

// Position is a layer's placement rule: anchor plus margin, or an absolute
// fraction of the frame height when FractionY is set.
type Position struct {
	H       HAlign
	V       VAlign
	Margin  int // pixels kept clear on the anchored edges
	UseFrac bool
	// FracY positions the layer's vertical center at FracY*frameHeight.
	FracY float64
}

// Resolve computes the top-left pixel for content of size cw×ch inside a
// fw×fh frame.
func (p Position) Resolve(fw, fh, cw, ch int) image.Point {
	var x, y int

	switch p.H {
	case Left:
		x = p.Margin
	case HCenter:
		x = (fw - cw) / 2
	case Right:
		x = fw - cw - p.Margin
	}

	if p.UseFrac {
		y = int(p.FracY*float64(fh)) - ch/2
	} else {
		switch p.V {
		case Top:
			y = p.Margin
		case VCenter:
			y = (fh - ch) / 2
		case Bottom:
			y = fh - ch - p.Margin
		}
	}
	return image.Point{X: x, Y: y}
}

// Layer is a Clip plus its placement inside the composite frame.
type Layer struct {
	Source Clip
	Pos    Position
}
