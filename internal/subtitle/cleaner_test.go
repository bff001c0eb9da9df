package subtitle

import (
	"testing"
	"time"
)

func TestCleanRemovesAdvertisementCues(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: time.Second, End: 3 * time.Second, Text: "www.OpenSubtitles.org"},
		{Index: 2, Start: 4 * time.Second, End: 6 * time.Second, Text: "Hello there!"},
		{Index: 3, Start: 7 * time.Second, End: 9 * time.Second, Text: "Subtitle by AwesomeSubs"},
	}

	cleaned, stats := Clean(cues)
	if stats.RemovedCues != 2 {
		t.Fatalf("expected 2 cues removed, got %d", stats.RemovedCues)
	}
	if len(cleaned) != 1 || cleaned[0].Text != "Hello there!" {
		t.Fatalf("expected dialogue to remain, got %+v", cleaned)
	}
	if cleaned[0].Index != 1 {
		t.Fatalf("expected renumbered index 1, got %d", cleaned[0].Index)
	}
}

func TestCleanKeepsValidCues(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: time.Second, End: 2 * time.Second, Text: "First line \t"},
		{Index: 2, Start: 3 * time.Second, End: 4 * time.Second, Text: "Second line"},
	}

	cleaned, stats := Clean(cues)
	if stats.RemovedCues != 0 {
		t.Fatalf("expected 0 cues removed, got %d", stats.RemovedCues)
	}
	if cleaned[0].Text != "First line" {
		t.Fatalf("expected trailing whitespace trimmed, got %q", cleaned[0].Text)
	}
}
