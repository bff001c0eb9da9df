package subtitle

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// FilterRemoval records a single cue removed by post-transcription filtering.
type FilterRemoval struct {
	Cue    Cue
	Reason string // "isolated_hallucination", "repeated_hallucination", "music_symbols", "trailing_hallucination", "trailing_music"
}

// FilterResult holds the surviving cues and a log of everything removed.
type FilterResult struct {
	Cues     []Cue
	Removals []FilterRemoval
}

// Known ASR hallucination phrases (normalized form).
var hallucinationPhrases = map[string]bool{
	"thank you":              true,
	"thank you for watching": true,
	"thanks for watching":    true,
	"please subscribe":       true,
	"like and subscribe":     true,
	"well be right back":     true,
	"bye":                    true,
	"bye bye":                true,
	"see you next time":      true,
	"see you later":          true,
}

const (
	isolationGap     = 30 * time.Second
	repeatGap        = 10 * time.Second
	trailingWindow   = 5 * time.Minute
	repeatRunMinimum = 3
)

// FilterHallucinations removes ASR hallucination artifacts from transcribed
// cues. It runs two passes: pattern-based removal of isolated/repeated
// hallucinations throughout the file, then a trailing sweep that catches
// clustered hallucinations in the final minutes without requiring isolation.
// Cue indices are renumbered sequentially in the result.
func FilterHallucinations(cues []Cue, mediaDuration time.Duration) FilterResult {
	var allRemovals []FilterRemoval

	remaining, hallucinationRemovals := removeIsolatedHallucinations(cues)
	allRemovals = append(allRemovals, hallucinationRemovals...)

	remaining, trailingRemovals := sweepTrailingHallucinations(remaining, mediaDuration)
	allRemovals = append(allRemovals, trailingRemovals...)

	Renumber(remaining)

	return FilterResult{Cues: remaining, Removals: allRemovals}
}

// removeIsolatedHallucinations removes known hallucination phrases that appear
// in isolation (not mid-conversation) and music-only cues.
func removeIsolatedHallucinations(cues []Cue) ([]Cue, []FilterRemoval) {
	if len(cues) == 0 {
		return cues, nil
	}

	remove := make([]bool, len(cues))
	var removals []FilterRemoval

	markRepeatedHallucinations(cues, remove, &removals)

	for i := range cues {
		if remove[i] {
			continue
		}

		isolated := gapToPrevious(cues, i) >= isolationGap && gapToNext(cues, i) >= isolationGap

		norm := normalizeText(cues[i].Text)
		if isolated && hallucinationPhrases[norm] {
			remove[i] = true
			removals = append(removals, FilterRemoval{Cue: cues[i], Reason: "isolated_hallucination"})
			continue
		}

		if isolated && isMusicCue(cues[i].Text) {
			remove[i] = true
			removals = append(removals, FilterRemoval{Cue: cues[i], Reason: "music_symbols"})
		}
	}

	var kept []Cue
	for i, cue := range cues {
		if !remove[i] {
			kept = append(kept, cue)
		}
	}
	return kept, removals
}

// markRepeatedHallucinations finds runs of 3+ consecutive cues with identical
// normalized text where each inter-cue gap exceeds 10 seconds, and marks them
// for removal.
func markRepeatedHallucinations(cues []Cue, remove []bool, removals *[]FilterRemoval) {
	i := 0
	for i < len(cues) {
		norm := normalizeText(cues[i].Text)
		if norm == "" {
			i++
			continue
		}

		runEnd := i + 1
		for runEnd < len(cues) {
			if normalizeText(cues[runEnd].Text) != norm {
				break
			}
			if cues[runEnd].Start-cues[runEnd-1].End <= repeatGap {
				break
			}
			runEnd++
		}

		if runEnd-i >= repeatRunMinimum {
			for j := i; j < runEnd; j++ {
				remove[j] = true
				*removals = append(*removals, FilterRemoval{Cue: cues[j], Reason: "repeated_hallucination"})
			}
		}

		i = runEnd
	}
}

// gapToPrevious returns the gap from the previous cue's end to this cue's
// start. For the first cue, returns the gap from time zero.
func gapToPrevious(cues []Cue, i int) time.Duration {
	if i == 0 {
		return cues[i].Start
	}
	return cues[i].Start - cues[i-1].End
}

// gapToNext returns the gap from this cue's end to the next cue's start. For
// the last cue, returns a large value (effectively infinite).
func gapToNext(cues []Cue, i int) time.Duration {
	if i >= len(cues)-1 {
		return time.Duration(1<<62 - 1)
	}
	return cues[i+1].Start - cues[i].End
}

// isMusicCue returns true if the raw cue text consists only of music notation
// symbols (¶, ♪, ♫, *) and whitespace.
func isMusicCue(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	for _, r := range text {
		switch {
		case r == '¶': // ¶
		case r == '♪': // ♪
		case r == '♫': // ♫
		case r == '*':
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return true
}

// sweepTrailingHallucinations removes known hallucination phrases and music
// symbols in the final minutes of the media without requiring isolation. At
// the end of a movie, "Thank you." and "¶¶" are almost certainly artifacts of
// silence or credits music, not real dialogue.
func sweepTrailingHallucinations(cues []Cue, mediaDuration time.Duration) ([]Cue, []FilterRemoval) {
	// Only meaningful for feature-length content with credits sections.
	if mediaDuration < 2*trailingWindow || len(cues) == 0 {
		return cues, nil
	}

	threshold := mediaDuration - trailingWindow

	var removals []FilterRemoval
	var kept []Cue

	for _, cue := range cues {
		if cue.Start < threshold {
			kept = append(kept, cue)
			continue
		}

		if hallucinationPhrases[normalizeText(cue.Text)] {
			removals = append(removals, FilterRemoval{Cue: cue, Reason: "trailing_hallucination"})
			continue
		}
		if isMusicCue(cue.Text) {
			removals = append(removals, FilterRemoval{Cue: cue, Reason: "trailing_music"})
			continue
		}

		kept = append(kept, cue)
	}

	return kept, removals
}

var textNormalizeRe = regexp.MustCompile(`[^a-z0-9\s]`)

func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "\n", " ")
	s = textNormalizeRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
