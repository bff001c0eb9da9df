package subtitle

import (
	"strings"
	"time"
	"unicode/utf8"
)

// ConsolidateOptions control how fragmented ASR cues are merged into
// sentence-level units.
type ConsolidateOptions struct {
	// MaxGap is the largest silence between two cues that still allows
	// them to merge.
	MaxGap time.Duration
	// MaxDuration caps the span of a merged cue.
	MaxDuration time.Duration
	// MaxChars caps the rune length of merged text.
	MaxChars int
	// SentenceEnders lists the runes that close a sentence unit.
	SentenceEnders string
}

// DefaultConsolidateOptions returns thresholds tuned for typical ASR output.
func DefaultConsolidateOptions() ConsolidateOptions {
	return ConsolidateOptions{
		MaxGap:         1200 * time.Millisecond,
		MaxDuration:    8 * time.Second,
		MaxChars:       84,
		SentenceEnders: ".!?…。！？",
	}
}

// Consolidate merges adjacent ASR fragments into sentence-level cues. A unit
// closes when its text ends in sentence punctuation; a new unit starts when
// adding the next fragment would exceed the gap, duration, or length limits.
// Input order does not matter; the result is sorted and renumbered.
func Consolidate(cues []Cue, opts ConsolidateOptions) []Cue {
	if len(cues) == 0 {
		return nil
	}
	if opts.MaxGap <= 0 && opts.MaxDuration <= 0 && opts.MaxChars <= 0 {
		opts = DefaultConsolidateOptions()
	}

	sorted := make([]Cue, len(cues))
	copy(sorted, cues)
	Sort(sorted)

	merged := make([]Cue, 0, len(sorted))
	current := sorted[0]
	current.Text = strings.TrimSpace(current.Text)

	for _, next := range sorted[1:] {
		text := strings.TrimSpace(next.Text)
		if text == "" {
			// Empty fragments still extend timing when contiguous.
			if next.Start-current.End <= opts.MaxGap && next.End > current.End {
				current.End = next.End
			}
			continue
		}

		if shouldBreak(current, next, text, opts) {
			merged = append(merged, current)
			current = next
			current.Text = text
			continue
		}

		current.Text = joinFragments(current.Text, text)
		if next.End > current.End {
			current.End = next.End
		}
	}
	merged = append(merged, current)

	Renumber(merged)
	return merged
}

func shouldBreak(current, next Cue, nextText string, opts ConsolidateOptions) bool {
	if endsSentence(current.Text, opts.SentenceEnders) {
		return true
	}
	if opts.MaxGap > 0 && next.Start-current.End > opts.MaxGap {
		return true
	}
	if opts.MaxDuration > 0 {
		end := current.End
		if next.End > end {
			end = next.End
		}
		if end-current.Start > opts.MaxDuration {
			return true
		}
	}
	if opts.MaxChars > 0 {
		if utf8.RuneCountInString(current.Text)+1+utf8.RuneCountInString(nextText) > opts.MaxChars {
			return true
		}
	}
	return false
}

// endsSentence reports whether text ends in one of the ender runes, ignoring
// trailing whitespace and closing quotes or brackets.
func endsSentence(text, enders string) bool {
	if enders == "" {
		return false
	}
	runes := []rune(strings.TrimSpace(text))
	for i := len(runes) - 1; i >= 0; i-- {
		r := runes[i]
		if strings.ContainsRune(`"')]」』”’`, r) {
			continue
		}
		return strings.ContainsRune(enders, r)
	}
	return false
}

func joinFragments(a, b string) string {
	a = strings.TrimSpace(a)
	if a == "" {
		return b
	}
	sep := " "
	// CJK text carries no inter-word spacing.
	if last, _ := utf8.DecodeLastRuneInString(a); isCJK(last) {
		if first, _ := utf8.DecodeRuneInString(b); isCJK(first) {
			sep = ""
		}
	}
	return a + sep + b
}

func isCJK(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
		return true
	case r >= 0x3040 && r <= 0x30FF: // hiragana, katakana
		return true
	case r >= 0xAC00 && r <= 0xD7AF: // hangul
		return true
	case r >= 0x3000 && r <= 0x303F: // CJK punctuation
		return true
	case r >= 0xFF00 && r <= 0xFFEF: // fullwidth forms
		return true
	}
	return false
}
