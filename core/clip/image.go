package clip

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// LoadImage decodes a PNG/JPEG/GIF file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// ScaleTo resizes an image to exactly w×h.
func ScaleTo(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}

// ScaleToHeight resizes an image to the given height, preserving aspect ratio.
func ScaleToHeight(img image.Image, h int) *image.RGBA {
	b := img.Bounds()
	if b.Dy() == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	w := b.Dx() * h / b.Dy()
	return ScaleTo(img, w, h)
}

type imageClip struct {
	frame *image.RGBA
	dur   float64
}

// FromImage turns a static image into a clip of the given duration.
func FromImage(img *image.RGBA, dur float64) Clip {
	return &imageClip{frame: img, dur: dur}
}

// NewImageClip loads a still, scales it to w×h, and holds it for dur seconds.
func NewImageClip(path string, w, h int, dur float64) (Clip, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return FromImage(ScaleTo(img, w, h), dur), nil
}

func (c *imageClip) Duration() float64 { return c.dur }

func (c *imageClip) Frame(_ float64) (*image.RGBA, error) { return c.frame, nil }
