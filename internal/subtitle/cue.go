package subtitle

import (
	"sort"
	"strings"
	"time"
)

// Cue is a single subtitle entry. Times are offsets from the start of the
// media. Translated holds the translated text when a translation pass has
// run; Text always keeps the original.
type Cue struct {
	Index      int
	Start      time.Duration
	End        time.Duration
	Text       string
	Translated string
}

// Duration returns the cue's display duration.
func (c Cue) Duration() time.Duration {
	return c.End - c.Start
}

// DisplayText returns the translated text when present, otherwise the
// original.
func (c Cue) DisplayText() string {
	if strings.TrimSpace(c.Translated) != "" {
		return c.Translated
	}
	return c.Text
}

// Sort orders cues by start time (end time breaks ties) in place.
func Sort(cues []Cue) {
	sort.SliceStable(cues, func(i, j int) bool {
		if cues[i].Start != cues[j].Start {
			return cues[i].Start < cues[j].Start
		}
		return cues[i].End < cues[j].End
	})
}

// Renumber rewrites cue indices sequentially from 1 in place.
func Renumber(cues []Cue) {
	for i := range cues {
		cues[i].Index = i + 1
	}
}

// Shift moves every cue by delta, clamping starts at zero.
func Shift(cues []Cue, delta time.Duration) {
	for i := range cues {
		cues[i].Start += delta
		cues[i].End += delta
		if cues[i].Start < 0 {
			cues[i].Start = 0
		}
		if cues[i].End < 0 {
			cues[i].End = 0
		}
	}
}

// Bounds returns the earliest start and latest end across all cues.
func Bounds(cues []Cue) (first, last time.Duration) {
	if len(cues) == 0 {
		return 0, 0
	}
	first = cues[0].Start
	for _, cue := range cues {
		if cue.Start < first {
			first = cue.Start
		}
		if cue.End > last {
			last = cue.End
		}
	}
	return first, last
}
