package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"NoYaRender/logger"
)

// ErrUnknownProcessor is returned when a processor choice has no profile.
var ErrUnknownProcessor = errors.New("unknown processor choice")

// Profile is one hardware encoding profile: a codec plus the encoder flags
// forwarded verbatim to ffmpeg.
type Profile struct {
	Codec  string   `yaml:"codec"`
	Params []string `yaml:"params"`
}

// ProfileTable maps processor choices ("CPU", "GPU (Nvidia)", "GPU (AMD)") to
// encoding profiles. The table can be reloaded from disk while a server runs;
// lookups are safe for concurrent use.
type ProfileTable struct {
	mu       sync.RWMutex
	path     string
	profiles map[string]Profile
}

// DefaultProfiles returns the built-in hardware profile table.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		"CPU": {
			Codec:  "libx264",
			Params: []string{"-preset", "medium", "-crf", "18"},
		},
		"GPU (Nvidia)": {
			Codec:  "h264_nvenc",
			Params: []string{"-preset", "p4", "-tune", "hq", "-b:v", "5M"},
		},
		"GPU (AMD)": {
			Codec:  "h264_amf",
			Params: []string{"-quality", "quality"},
		},
	}
}

// LoadProfileTable builds a table from a YAML file. A missing file is not an
// error; the built-in defaults are used.
func LoadProfileTable(path string) (*ProfileTable, error) {
	t := &ProfileTable{
		path:     path,
		profiles: DefaultProfiles(),
	}
	if path == "" {
		return t, nil
	}
	if err := t.reload(); err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, err
	}
	return t, nil
}

func (t *ProfileTable) reload() error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return err
	}

	var parsed map[string]Profile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse profile table %s: %w", t.path, err)
	}

	// File entries override defaults; unnamed processors keep the default.
	merged := DefaultProfiles()
	for name, p := range parsed {
		merged[name] = p
	}

	t.mu.Lock()
	t.profiles = merged
	t.mu.Unlock()
	return nil
}

// Lookup resolves a processor choice to its profile. Fails fast before any
// media I/O when the choice is unknown.
func (t *ProfileTable) Lookup(processor string) (Profile, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.profiles[processor]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProcessor, processor)
	}
	return p, nil
}

// Processors lists the known processor choices.
func (t *ProfileTable) Processors() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.profiles))
	for name := range t.profiles {
		names = append(names, name)
	}
	return names
}

// Watch reloads the table whenever the profile file changes. Blocks until
// stop is closed; run it in its own goroutine.
func (t *ProfileTable) Watch(stop <-chan struct{}) error {
	if t.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create profile watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(t.path); err != nil {
		// File may not exist yet; nothing to watch.
		logger.Warn("profile table not watchable", logger.String("path", t.path), logger.ErrorField(err))
		return nil
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if err := t.reload(); err != nil {
					logger.Error("profile table reload failed", logger.ErrorField(err))
					continue
				}
				logger.Info("profile table reloaded", logger.String("path", t.path))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("profile watcher error", logger.ErrorField(err))
		case <-stop:
			return nil
		}
	}
}
