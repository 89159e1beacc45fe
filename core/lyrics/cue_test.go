package lyrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveCueLookup(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 2, Text: "A"},
		{Start: 2, End: 4, Text: "B"},
	}

	c, ok := ActiveCue(cues, 1)
	assert.True(t, ok)
	assert.Equal(t, "A", c.Text)

	c, ok = ActiveCue(cues, 3)
	assert.True(t, ok)
	assert.Equal(t, "B", c.Text)

	_, ok = ActiveCue(cues, 5)
	assert.False(t, ok)
}

func TestActiveCueIntervalIsHalfOpen(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 2, Text: "A"},
		{Start: 2, End: 4, Text: "B"},
	}

	// t=2 belongs to B, not A.
	c, ok := ActiveCue(cues, 2)
	assert.True(t, ok)
	assert.Equal(t, "B", c.Text)
}

func TestActiveCueHandlesUnorderedAndGappedCues(t *testing.T) {
	cues := []Cue{
		{Start: 10, End: 12, Text: "late"},
		{Start: 0, End: 2, Text: "early"},
	}

	c, ok := ActiveCue(cues, 11)
	assert.True(t, ok)
	assert.Equal(t, "late", c.Text)

	c, ok = ActiveCue(cues, 1)
	assert.True(t, ok)
	assert.Equal(t, "early", c.Text)

	_, ok = ActiveCue(cues, 5) // inside the gap
	assert.False(t, ok)
}

func TestActiveCueOverlapFirstInSourceOrderWins(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 4, Text: "first"},
		{Start: 2, End: 6, Text: "second"},
	}

	c, ok := ActiveCue(cues, 3)
	assert.True(t, ok)
	assert.Equal(t, "first", c.Text)
}
