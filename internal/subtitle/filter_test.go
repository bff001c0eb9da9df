package subtitle

import (
	"testing"
	"time"
)

func cueAt(startSec, endSec float64, text string) Cue {
	return Cue{
		Start: time.Duration(startSec * float64(time.Second)),
		End:   time.Duration(endSec * float64(time.Second)),
		Text:  text,
	}
}

func TestFilterRemovesIsolatedHallucination(t *testing.T) {
	cues := []Cue{
		cueAt(10, 12, "Real dialogue here."),
		cueAt(100, 102, "Thank you."),
		cueAt(200, 202, "More real dialogue."),
	}

	result := FilterHallucinations(cues, 30*time.Minute)
	if len(result.Cues) != 2 {
		t.Fatalf("expected 2 surviving cues, got %d", len(result.Cues))
	}
	if len(result.Removals) != 1 || result.Removals[0].Reason != "isolated_hallucination" {
		t.Fatalf("unexpected removals: %+v", result.Removals)
	}
}

func TestFilterKeepsHallucinationPhraseMidConversation(t *testing.T) {
	cues := []Cue{
		cueAt(10, 12, "Here is your coffee."),
		cueAt(13, 14, "Thank you."),
		cueAt(15, 17, "You're welcome."),
	}

	result := FilterHallucinations(cues, 30*time.Minute)
	if len(result.Removals) != 0 {
		t.Fatalf("expected no removals, got %+v", result.Removals)
	}
}

func TestFilterRemovesRepeatedHallucinationRun(t *testing.T) {
	cues := []Cue{
		cueAt(10, 12, "Real dialogue."),
		cueAt(100, 101, "Thank you."),
		cueAt(120, 121, "Thank you."),
		cueAt(140, 141, "Thank you."),
		cueAt(160, 162, "Back to dialogue."),
	}

	result := FilterHallucinations(cues, 30*time.Minute)
	if len(result.Cues) != 2 {
		t.Fatalf("expected 2 surviving cues, got %d", len(result.Cues))
	}
	for _, removal := range result.Removals {
		if removal.Reason != "repeated_hallucination" {
			t.Fatalf("unexpected reason %q", removal.Reason)
		}
	}
}

func TestFilterRemovesIsolatedMusicCue(t *testing.T) {
	cues := []Cue{
		cueAt(10, 12, "Dialogue."),
		cueAt(100, 105, "♪♪"),
		cueAt(200, 202, "Dialogue again."),
	}

	result := FilterHallucinations(cues, 30*time.Minute)
	if len(result.Removals) != 1 || result.Removals[0].Reason != "music_symbols" {
		t.Fatalf("unexpected removals: %+v", result.Removals)
	}
}

func TestFilterTrailingSweep(t *testing.T) {
	mediaLen := 60 * time.Minute
	cues := []Cue{
		cueAt(10, 12, "Opening line."),
		cueAt(3540, 3542, "Closing dialogue."),
		// Inside the final five minutes, adjacent cues, not isolated.
		cueAt(3544, 3546, "Thank you."),
		cueAt(3547, 3549, "¶¶"),
	}

	result := FilterHallucinations(cues, mediaLen)
	if len(result.Cues) != 2 {
		t.Fatalf("expected 2 surviving cues, got %d", len(result.Cues))
	}
	reasons := map[string]bool{}
	for _, removal := range result.Removals {
		reasons[removal.Reason] = true
	}
	if !reasons["trailing_hallucination"] || !reasons["trailing_music"] {
		t.Fatalf("unexpected removal reasons: %+v", result.Removals)
	}
}

func TestFilterTrailingSweepSkipsShortContent(t *testing.T) {
	cues := []Cue{
		cueAt(10, 12, "Hello."),
		cueAt(400, 402, "Thank you."),
		cueAt(405, 407, "No problem."),
	}

	// Short media disables the trailing sweep, and the phrase is not
	// isolated so pass one keeps it too.
	result := FilterHallucinations(cues, 7*time.Minute)
	if len(result.Removals) != 0 {
		t.Fatalf("expected no removals on short content, got %+v", result.Removals)
	}
}

func TestFilterRenumbersSurvivors(t *testing.T) {
	cues := []Cue{
		cueAt(10, 12, "One."),
		cueAt(100, 102, "Thank you."),
		cueAt(200, 202, "Two."),
	}
	result := FilterHallucinations(cues, 30*time.Minute)
	for i, cue := range result.Cues {
		if cue.Index != i+1 {
			t.Fatalf("cue %d has index %d", i, cue.Index)
		}
	}
}

func TestIsMusicCue(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"♪♪", true},
		{"¶ ♫ *", true},
		{"", false},
		{"   ", false},
		{"♪ lyrics ♪", false},
	}
	for _, tc := range cases {
		if got := isMusicCue(tc.text); got != tc.want {
			t.Errorf("isMusicCue(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
