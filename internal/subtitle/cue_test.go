package subtitle

import (
	"testing"
	"time"
)

func TestSortOrdersByStartThenEnd(t *testing.T) {
	cues := []Cue{
		{Start: 5 * time.Second, End: 6 * time.Second},
		{Start: time.Second, End: 3 * time.Second},
		{Start: time.Second, End: 2 * time.Second},
	}
	Sort(cues)
	if cues[0].End != 2*time.Second || cues[1].End != 3*time.Second || cues[2].Start != 5*time.Second {
		t.Fatalf("unexpected order: %+v", cues)
	}
}

func TestShiftClampsAtZero(t *testing.T) {
	cues := []Cue{{Start: time.Second, End: 2 * time.Second}}
	Shift(cues, -90*time.Second)
	if cues[0].Start != 0 || cues[0].End != 0 {
		t.Fatalf("expected clamp at zero, got %+v", cues[0])
	}
}

func TestBounds(t *testing.T) {
	cues := []Cue{
		{Start: 2 * time.Second, End: 9 * time.Second},
		{Start: time.Second, End: 4 * time.Second},
	}
	start, end := Bounds(cues)
	if start != time.Second || end != 9*time.Second {
		t.Fatalf("unexpected bounds: %s --> %s", start, end)
	}

	if start, end := Bounds(nil); start != 0 || end != 0 {
		t.Fatalf("expected zero bounds for empty input, got %s --> %s", start, end)
	}
}
