package subtitle

import (
	"regexp"
	"strconv"
	"strings"

	"sublate/internal/format"
)

var timingLinePattern = regexp.MustCompile(`^(.+?)\s*-->\s*(\S+)`)

// ParseSRT parses SRT content into cues. Malformed blocks are skipped and
// counted rather than failing the whole document; tools in the wild produce
// plenty of slightly broken SRT.
func ParseSRT(content string) (cues []Cue, skipped int) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, 0
	}

	for _, block := range splitBlocks(trimmed) {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			if strings.TrimSpace(block) != "" {
				skipped++
			}
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			skipped++
			continue
		}

		match := timingLinePattern.FindStringSubmatch(strings.TrimSpace(lines[1]))
		if match == nil {
			skipped++
			continue
		}
		start, errStart := format.ParseSRTTimestamp(match[1])
		end, errEnd := format.ParseSRTTimestamp(match[2])
		if errStart != nil || errEnd != nil {
			skipped++
			continue
		}

		text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  text,
		})
	}

	return cues, skipped
}

// GenerateSRT renders cues as SRT. Cues are renumbered sequentially. When
// useTranslated is true a cue's translated text is preferred. The output uses
// CRLF line endings and a UTF-8 BOM for player compatibility.
func GenerateSRT(cues []Cue, useTranslated bool) string {
	var lines []string
	for i, cue := range cues {
		lines = append(lines, strconv.Itoa(i+1))
		lines = append(lines, format.FormatSRTTimestamp(cue.Start)+" --> "+format.FormatSRTTimestamp(cue.End))
		text := cue.Text
		if useTranslated {
			text = cue.DisplayText()
		}
		lines = append(lines, text)
		lines = append(lines, "")
	}
	return "\ufeff" + strings.Join(lines, "\r\n")
}

func splitBlocks(content string) []string {
	blocks := []string{}
	current := []string{}
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
				current = current[:0]
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}
