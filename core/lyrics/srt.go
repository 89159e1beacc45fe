package lyrics

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// 00:01:02,345 --> 00:01:04,000
var timingRe = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2})[,.](\d{1,3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{1,3})`)

// ParseSRT reads a SubRip subtitle file into cues, in file order.
func ParseSRT(path string) ([]Cue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cues []Cue
	var current *Cue
	var textLines []string

	flush := func() {
		if current != nil {
			current.Text = strings.Join(textLines, "\n")
			cues = append(cues, *current)
		}
		current = nil
		textLines = nil
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\uFEFF"))

		if line == "" {
			flush()
			continue
		}

		if m := timingRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &Cue{
				Start: toSeconds(m[1], m[2], m[3], m[4]),
				End:   toSeconds(m[5], m[6], m[7], m[8]),
			}
			continue
		}

		if current == nil {
			// Sequence-number line (or stray text before the first timing).
			continue
		}
		textLines = append(textLines, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subtitle file %s: %w", path, err)
	}
	return cues, nil
}

func toSeconds(hh, mm, ss, ms string) float64 {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	s, _ := strconv.Atoi(ss)
	// Fractions may use fewer than three digits.
	frac, _ := strconv.ParseFloat("0."+ms, 64)
	return float64(h*3600+m*60+s) + frac
}
