package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sublate/internal/subtitle"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSRT writes an SRT fixture built from the given lines, one cue per
// line, each lasting two seconds with a one second gap.
func WriteSRT(t testing.TB, path string, lines ...string) {
	t.Helper()

	cues := make([]subtitle.Cue, len(lines))
	for i, line := range lines {
		start := time.Duration(i*3) * time.Second
		cues[i] = subtitle.Cue{
			Index: i + 1,
			Start: start,
			End:   start + 2*time.Second,
			Text:  line,
		}
	}
	WriteFile(t, path, subtitle.GenerateSRT(cues, false))
}

// SRTBlock renders a single raw SRT block, useful for malformed-input tests
// where GenerateSRT would be too well behaved.
func SRTBlock(index int, timing, text string) string {
	return fmt.Sprintf("%d\n%s\n%s\n\n", index, timing, strings.TrimSpace(text))
}
