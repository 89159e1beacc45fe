package lyrics

import (
	"image"
	"image/color"

	"NoYaRender/core/clip"
	"NoYaRender/core/text"
)

// Overlay builds the lyric clip for a w×h frame: whenever a cue is active its
// text is rendered word-wrapped to 80% of the frame width at a font size of
// h/18, white with a one-pixel black outline. Outside any cue the clip
// contributes no pixels.
//
// Rendered cues are cached by text, which keeps the per-frame lookup pure:
// the same timestamp always yields the same image.
func Overlay(cues []Cue, w, h int, renderer *text.Renderer) clip.Clip {
	style := text.Style{
		Size:      float64(h) / 18,
		Fill:      color.White,
		Outline:   color.Black,
		WrapWidth: w * 8 / 10,
	}

	dur := 0.0
	for _, c := range cues {
		if c.End > dur {
			dur = c.End
		}
	}

	cache := make(map[string]*image.RGBA, len(cues))

	return clip.NewFunc(dur, func(t float64) (*image.RGBA, error) {
		cue, ok := ActiveCue(cues, t)
		if !ok {
			return nil, nil
		}

		img, hit := cache[cue.Text]
		if !hit {
			img = renderer.Render(cue.Text, style)
			cache[cue.Text] = img
		}
		return img, nil
	})
}
