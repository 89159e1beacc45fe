package render

import (
	"errors"
	"fmt"
)

// FPS is the fixed output frame rate.
const FPS = 30

// ErrUnknownPreset is returned for an unrecognized resolution preset name.
var ErrUnknownPreset = errors.New("unknown resolution preset")

// Resolution is an output frame size in pixels.
type Resolution struct {
	Width  int
	Height int
}

var presets = map[string]Resolution{
	"720p":  {1280, 720},
	"1080p": {1920, 1080},
	"2K":    {2560, 1440},
	"4K":    {3840, 2160},
}

// ResolvePreset maps a preset name to its resolution. Fails fast before any
// media I/O when the name is unknown.
func ResolvePreset(name string) (Resolution, error) {
	res, ok := presets[name]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return res, nil
}

// Presets lists the known preset names.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
