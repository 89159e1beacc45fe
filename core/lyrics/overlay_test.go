package lyrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NoYaRender/core/text"
)

// Rasterization itself is covered in core/text; these tests pin the overlay's
// time-window behavior, which never touches the font outside a cue.

func TestOverlayContributesNothingOutsideCues(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 2, Text: "A"},
		{Start: 2, End: 4, Text: "B"},
	}
	overlay := Overlay(cues, 1280, 720, text.NewRenderer(nil))

	frame, err := overlay.Frame(5)
	require.NoError(t, err)
	assert.Nil(t, frame)

	frame, err = overlay.Frame(4) // End is exclusive
	require.NoError(t, err)
	assert.Nil(t, frame)
}

func TestOverlayDurationSpansLastCue(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 2, Text: "A"},
		{Start: 10, End: 12.5, Text: "B"},
	}
	overlay := Overlay(cues, 1280, 720, text.NewRenderer(nil))
	assert.Equal(t, 12.5, overlay.Duration())
}

func TestOverlayNoCues(t *testing.T) {
	overlay := Overlay(nil, 1280, 720, text.NewRenderer(nil))
	assert.Zero(t, overlay.Duration())

	frame, err := overlay.Frame(0)
	require.NoError(t, err)
	assert.Nil(t, frame)
}
