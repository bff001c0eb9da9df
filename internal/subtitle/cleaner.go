package subtitle

import (
	"regexp"
	"strings"
)

var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)advertise (your|yours?) product`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
}

// CleanStats reports the effects of cue cleanup operations.
type CleanStats struct {
	RemovedCues int
}

// Clean removes advertisement cues and trims trailing whitespace from the
// remaining cue text. Surviving cues are renumbered sequentially.
func Clean(cues []Cue) ([]Cue, CleanStats) {
	var stats CleanStats
	kept := make([]Cue, 0, len(cues))
	for _, cue := range cues {
		if cueIsAdvertisement(cue.Text) {
			stats.RemovedCues++
			continue
		}
		cue.Text = trimLines(cue.Text)
		kept = append(kept, cue)
	}
	Renumber(kept)
	return kept, stats
}

func cueIsAdvertisement(text string) bool {
	payload := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if payload == "" {
		return false
	}
	for _, pattern := range adPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}

func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}
