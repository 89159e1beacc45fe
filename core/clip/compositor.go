package clip

import (
	"image"
	"image/draw"
)

type composite struct {
	bg     Clip
	layers []Layer
	w, h   int
}

// Composite assembles a background and overlay layers into one clip of the
// background's duration. The background fills the whole frame; layers are
// painted over it in slice order, so the caller's ordering is the z-order.
// Layers whose source yields no frame at t are skipped.
func Composite(bg Clip, layers []Layer, w, h int) Clip {
	return &composite{bg: bg, layers: layers, w: w, h: h}
}

func (c *composite) Duration() float64 { return c.bg.Duration() }

func (c *composite) Frame(t float64) (*image.RGBA, error) {
	out := image.NewRGBA(image.Rect(0, 0, c.w, c.h))

	bgFrame, err := c.bg.Frame(t)
	if err != nil {
		return nil, err
	}
	if bgFrame != nil {
		draw.Draw(out, out.Bounds(), bgFrame, bgFrame.Bounds().Min, draw.Src)
	}

	for _, layer := range c.layers {
		frame, err := layer.Source.Frame(t)
		if err != nil {
			return nil, err
		}
		if frame == nil {
			continue
		}
		cw, ch := frame.Bounds().Dx(), frame.Bounds().Dy()
		at := layer.Pos.Resolve(c.w, c.h, cw, ch)
		rect := image.Rect(at.X, at.Y, at.X+cw, at.Y+ch)
		draw.Draw(out, rect, frame, frame.Bounds().Min, draw.Over)
	}
	return out, nil
}

type zoomed struct {
	src  Clip
	w, h int
	fn   func(t float64) float64
}

// Zoomed scales the source frame by fn(t) around its center, cropping back to
// w×h. fn values at or below 1 leave the frame untouched.
func Zoomed(src Clip, w, h int, fn func(t float64) float64) Clip {
	return &zoomed{src: src, w: w, h: h, fn: fn}
}

func (z *zoomed) Duration() float64 { return z.src.Duration() }

func (z *zoomed) Frame(t float64) (*image.RGBA, error) {
	frame, err := z.src.Frame(t)
	if err != nil || frame == nil {
		return frame, err
	}

	factor := z.fn(t)
	if factor <= 1.0 {
		return frame, nil
	}

	zw := int(float64(z.w) * factor)
	zh := int(float64(z.h) * factor)
	scaled := ScaleTo(frame, zw, zh)

	out := image.NewRGBA(image.Rect(0, 0, z.w, z.h))
	offset := image.Point{X: (zw - z.w) / 2, Y: (zh - z.h) / 2}
	draw.Draw(out, out.Bounds(), scaled, offset, draw.Src)
	return out, nil
}
