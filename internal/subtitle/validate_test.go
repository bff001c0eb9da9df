package subtitle

import (
	"strings"
	"testing"
	"time"
)

func TestValidateEmptyDocument(t *testing.T) {
	issues := Validate(nil, 0)
	if len(issues) != 1 || issues[0].Severity != SeverityError {
		t.Fatalf("expected single error for empty document, got %+v", issues)
	}
	if !HasErrors(issues) {
		t.Fatal("expected HasErrors to report true")
	}
}

func TestValidateCleanDocument(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: time.Second, End: 2 * time.Second, Text: "one"},
		{Index: 2, Start: 3 * time.Second, End: 4 * time.Second, Text: "two"},
	}
	if issues := Validate(cues, 10*time.Second); len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestValidateFindsProblems(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: -time.Second, End: 2 * time.Second, Text: "negative start"},
		{Index: 2, Start: 3 * time.Second, End: 3 * time.Second, Text: "zero duration"},
		{Index: 3, Start: 2 * time.Second, End: 5 * time.Second, Text: "out of order"},
		{Index: 4, Start: 4 * time.Second, End: 6 * time.Second, Text: "overlaps"},
		{Index: 5, Start: 7 * time.Second, End: 9 * time.Second, Text: "  "},
		{Index: 6, Start: 11 * time.Second, End: 13 * time.Second, Text: "past media end"},
	}

	issues := Validate(cues, 12*time.Second)
	if !HasErrors(issues) {
		t.Fatal("expected errors present")
	}

	wantFragments := []string{
		"negative start",
		"non-positive duration",
		"starts before previous",
		"overlaps previous",
		"empty text",
		"past media duration",
	}
	joined := make([]string, 0, len(issues))
	for _, issue := range issues {
		joined = append(joined, issue.String())
	}
	all := strings.Join(joined, "\n")
	for _, fragment := range wantFragments {
		if !strings.Contains(all, fragment) {
			t.Errorf("expected an issue mentioning %q, got:\n%s", fragment, all)
		}
	}
}

func TestValidateSkipsMediaCheckWhenUnknown(t *testing.T) {
	cues := []Cue{{Index: 1, Start: time.Second, End: 2 * time.Hour, Text: "long"}}
	if issues := Validate(cues, 0); len(issues) != 0 {
		t.Fatalf("expected no issues without media duration, got %+v", issues)
	}
}
