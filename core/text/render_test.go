package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Face7x13 is 7px per glyph, which makes wrap widths easy to reason about.
var face font.Face = basicfont.Face7x13

func TestWrapLinesRespectsWidth(t *testing.T) {
	// 10 chars fit in 70px.
	lines := WrapLines("aaaa bbbb cccc dddd", face, 70)

	assert.Equal(t, []string{"aaaa bbbb", "cccc dddd"}, lines)
	for _, line := range lines {
		assert.LessOrEqual(t, font.MeasureString(face, line).Ceil(), 70)
	}
}

func TestWrapLinesKeepsShortTextIntact(t *testing.T) {
	lines := WrapLines("hello world", face, 1000)
	assert.Equal(t, []string{"hello world"}, lines)
}

func TestWrapLinesHonorsExplicitNewlines(t *testing.T) {
	lines := WrapLines("one\ntwo three", face, 1000)
	assert.Equal(t, []string{"one", "two three"}, lines)
}

func TestWrapLinesOverlongWordGetsOwnLine(t *testing.T) {
	long := strings.Repeat("x", 30)
	lines := WrapLines("a "+long+" b", face, 70)
	assert.Equal(t, []string{"a", long, "b"}, lines)
}

func TestWrapLinesZeroWidthDisablesWrapping(t *testing.T) {
	lines := WrapLines("a b c d e f", face, 0)
	assert.Equal(t, []string{"a b c d e f"}, lines)
}
