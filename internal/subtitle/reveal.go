package subtitle

import (
	"math"
	"sort"
	"time"
)

// RevealOptions tune the progressive-reveal renderer.
type RevealOptions struct {
	// ShortGrace keeps the previous cue fully visible across gaps up to
	// this length.
	ShortGrace time.Duration
	// LongGrace keeps the previous cue visible for half of any gap up to
	// this length.
	LongGrace time.Duration
	// MinFraction is the smallest reveal fraction while a cue is active,
	// so a cue never starts empty.
	MinFraction float64
}

// DefaultRevealOptions returns the standard grace tiers and reveal floor.
func DefaultRevealOptions() RevealOptions {
	return RevealOptions{
		ShortGrace:  300 * time.Millisecond,
		LongGrace:   1500 * time.Millisecond,
		MinFraction: 0.2,
	}
}

// Frame is the render state at a single playback instant.
type Frame struct {
	// Cue is the active cue, or nil when nothing should be displayed.
	Cue *Cue
	// Visible is the rune prefix of the cue's display text to show.
	Visible string
	// Grace reports that the cue is held visible past its end time.
	Grace bool
}

// Renderer resolves the active cue and its visible text prefix for a playback
// clock. Cues are sorted once at construction; FrameAt may be called with any
// instant, monotonic or not.
type Renderer struct {
	cues []Cue
	// maxEnds[i] is the latest end time among cues[:i+1]; it bounds the
	// backward scan needed when cues overlap.
	maxEnds []time.Duration
	opts    RevealOptions
}

// NewRenderer copies and sorts cues.
func NewRenderer(cues []Cue, opts RevealOptions) *Renderer {
	sorted := make([]Cue, len(cues))
	copy(sorted, cues)
	Sort(sorted)
	if opts.MinFraction <= 0 || opts.MinFraction > 1 {
		opts.MinFraction = DefaultRevealOptions().MinFraction
	}
	maxEnds := make([]time.Duration, len(sorted))
	for i, cue := range sorted {
		maxEnds[i] = cue.End
		if i > 0 && maxEnds[i-1] > cue.End {
			maxEnds[i] = maxEnds[i-1]
		}
	}
	return &Renderer{cues: sorted, maxEnds: maxEnds, opts: opts}
}

// FrameAt returns the frame for playback instant at. While a cue is active
// its text reveals linearly across the cue duration, floored at MinFraction.
// In the gap after a cue the previous cue may remain visible under the grace
// tiers: gaps up to ShortGrace keep it for the whole gap, gaps up to
// LongGrace keep it for half the gap, and anything longer shows nothing.
func (r *Renderer) FrameAt(at time.Duration) Frame {
	if len(r.cues) == 0 || at < 0 {
		return Frame{}
	}

	// Index of the first cue starting after at.
	next := sort.Search(len(r.cues), func(i int) bool {
		return r.cues[i].Start > at
	})
	prev := next - 1

	if prev < 0 {
		return Frame{}
	}

	cue := &r.cues[prev]
	if at < cue.End {
		return Frame{Cue: cue, Visible: r.revealPrefix(cue, at)}
	}

	// When cues overlap, an earlier cue can outlast a later-started one.
	// The prefix max keeps this scan confined to the overlap window.
	for i := prev - 1; i >= 0 && r.maxEnds[i] > at; i-- {
		if c := &r.cues[i]; at < c.End {
			return Frame{Cue: c, Visible: r.revealPrefix(c, at)}
		}
	}

	// In the gap following cue. The grace window depends on the distance
	// to the next cue; after the final cue only the short tier applies.
	gap := r.opts.LongGrace + 1
	if next < len(r.cues) {
		gap = r.cues[next].Start - cue.End
	}
	elapsed := at - cue.End

	var hold time.Duration
	switch {
	case gap <= r.opts.ShortGrace:
		hold = gap
	case gap <= r.opts.LongGrace:
		hold = gap / 2
	default:
		hold = r.opts.ShortGrace
		if next < len(r.cues) {
			hold = 0
		}
	}

	if hold > 0 && elapsed < hold {
		return Frame{Cue: cue, Visible: cue.DisplayText(), Grace: true}
	}
	return Frame{}
}

// revealPrefix returns the rune prefix of the cue's display text proportional
// to playback progress through the cue.
func (r *Renderer) revealPrefix(cue *Cue, at time.Duration) string {
	text := cue.DisplayText()
	total := cue.Duration()
	if total <= 0 {
		return text
	}

	progress := float64(at-cue.Start) / float64(total)
	fraction := math.Max(progress, r.opts.MinFraction)
	if fraction >= 1 {
		return text
	}

	runes := []rune(text)
	n := int(math.Ceil(fraction * float64(len(runes))))
	if n >= len(runes) {
		return text
	}
	return string(runes[:n])
}
