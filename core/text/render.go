// Package text rasterizes lyric lines with a TTF font: word-wrapped, filled
// white with a thin dark outline so the text stays readable over any
// background.
package text

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// LoadFont parses a TTF file.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}

// Style controls one rendering pass.
type Style struct {
	Size      float64 // point size
	Fill      color.Color
	Outline   color.Color // nil disables the outline
	WrapWidth int         // pixels; 0 disables wrapping
}

// Renderer rasterizes strings with a fixed font.
type Renderer struct {
	font *truetype.Font
}

// NewRenderer wraps a parsed font.
func NewRenderer(f *truetype.Font) *Renderer {
	return &Renderer{font: f}
}

// Render draws text into a tightly sized RGBA image with a transparent
// background. Lines are wrapped to Style.WrapWidth and centered.
func (r *Renderer) Render(text string, style Style) *image.RGBA {
	face := truetype.NewFace(r.font, &truetype.Options{Size: style.Size})
	defer face.Close()

	lines := WrapLines(text, face, style.WrapWidth)

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	maxW := 0
	widths := make([]int, len(lines))
	for i, line := range lines {
		w := font.MeasureString(face, line).Ceil()
		widths[i] = w
		if w > maxW {
			maxW = w
		}
	}

	// One pixel of padding on every side keeps the outline inside the canvas.
	const pad = 2
	img := image.NewRGBA(image.Rect(0, 0, maxW+2*pad, len(lines)*lineHeight+2*pad))

	for i, line := range lines {
		x := pad + (maxW-widths[i])/2
		y := pad + ascent + i*lineHeight

		if style.Outline != nil {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					drawString(img, face, line, style.Outline, x+dx, y+dy)
				}
			}
		}
		drawString(img, face, line, style.Fill, x, y)
	}
	return img
}

func drawString(dst *image.RGBA, face font.Face, s string, col color.Color, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// WrapLines greedily wraps text so each line measures at most maxWidth pixels.
// Explicit newlines are honored. A single word wider than maxWidth gets its
// own line rather than being split.
func WrapLines(text string, face font.Face, maxWidth int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		if maxWidth <= 0 {
			lines = append(lines, strings.Join(words, " "))
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if font.MeasureString(face, candidate).Ceil() <= maxWidth {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = word
		}
		lines = append(lines, current)
	}
	return lines
}
