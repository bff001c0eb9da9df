package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/asticode/go-astisub"

	"sublate/internal/services"
)

// ImportFile loads a subtitle file into cues. SRT goes through the native
// parser (with charset detection); WebVTT and SSA/ASS are read via astisub
// and flattened to plain text.
func ImportFile(path string) ([]Cue, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		content, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		cues, _ := ParseSRT(content)
		if len(cues) == 0 {
			return nil, services.Wrap(services.ErrValidation, "subtitle", "import", fmt.Sprintf("no valid cues in %s", filepath.Base(path)), nil)
		}
		return cues, nil
	case ".vtt":
		subs, err := astisub.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("read vtt: %w", err)
		}
		return fromAstisub(subs), nil
	case ".ssa", ".ass":
		subs, err := astisub.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("read ssa: %w", err)
		}
		return fromAstisub(subs), nil
	default:
		return nil, services.Wrap(services.ErrValidation, "subtitle", "import", fmt.Sprintf("unsupported subtitle format %q", filepath.Ext(path)), nil)
	}
}

func fromAstisub(subs *astisub.Subtitles) []Cue {
	cues := make([]Cue, 0, len(subs.Items))
	for i, item := range subs.Items {
		lines := make([]string, 0, len(item.Lines))
		for _, line := range item.Lines {
			if text := strings.TrimSpace(line.String()); text != "" {
				lines = append(lines, text)
			}
		}
		if len(lines) == 0 {
			continue
		}
		cues = append(cues, Cue{
			Index: i + 1,
			Start: item.StartAt,
			End:   item.EndAt,
			Text:  strings.Join(lines, "\n"),
		})
	}
	return cues
}
