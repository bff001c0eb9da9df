package translate

import (
	"regexp"
	"strconv"
	"strings"
)

// Numbered lines like "1. text", "2: text", or "3) text".
var numberedLinePattern = regexp.MustCompile(`^\s*(\d+)\s*[.:\)]\s*(.+)$`)

// ParseResponse extracts translations from a numbered model response. Lines
// arriving out of order are slotted into their numbered position, gaps are
// padded with empty strings, and a later duplicate number overwrites the
// earlier value. mismatch reports that the response did not carry exactly
// expectedCount entries; the result is always expectedCount long.
func ParseResponse(response string, expectedCount int) (translations []string, mismatch bool) {
	parsed := make([]string, 0, expectedCount)
	seen := make(map[int]struct{})

	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		match := numberedLinePattern.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}
		num, err := strconv.Atoi(match[1])
		if err != nil || num < 1 {
			continue
		}
		text := strings.TrimSpace(match[2])
		text = stripSurroundingQuotes(text)
		seen[num] = struct{}{}

		for len(parsed) < num-1 {
			parsed = append(parsed, "")
		}
		if len(parsed) < num {
			parsed = append(parsed, text)
		} else {
			parsed[num-1] = text
		}
	}

	// Padding can mask an interior gap, so the count of distinct numbered
	// entries is what decides a mismatch, not the slice length.
	mismatch = len(seen) != expectedCount
	for len(parsed) < expectedCount {
		parsed = append(parsed, "")
	}
	return parsed[:expectedCount], mismatch
}

func stripSurroundingQuotes(text string) string {
	if len(text) >= 2 {
		if (strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`)) ||
			(strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'")) {
			return text[1 : len(text)-1]
		}
	}
	return text
}
