// Package lyrics maps timed subtitle cues to rendered text overlays.
package lyrics

// Cue is one subtitle entry: display text over the half-open interval
// [Start, End), in seconds.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// ActiveCue finds the cue whose interval contains t. Cues may arrive
// unordered or gapped; the scan handles both. When intervals overlap the
// first match in source order wins.
func ActiveCue(cues []Cue, t float64) (Cue, bool) {
	for _, c := range cues {
		if t >= c.Start && t < c.End {
			return c, true
		}
	}
	return Cue{}, false
}
