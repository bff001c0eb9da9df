package translate

import (
	"testing"

	"sublate/internal/subtitle"
)

func makeCues(n int) []subtitle.Cue {
	cues := make([]subtitle.Cue, n)
	for i := range cues {
		cues[i] = subtitle.Cue{Index: i + 1, Text: string(rune('a' + i))}
	}
	return cues
}

func TestCreateBatchesSizing(t *testing.T) {
	cues := makeCues(7)
	batches := CreateBatches(cues, 3, 2)

	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[0].Cues) != 3 || len(batches[1].Cues) != 3 || len(batches[2].Cues) != 1 {
		t.Fatalf("unexpected batch sizes: %d, %d, %d", len(batches[0].Cues), len(batches[1].Cues), len(batches[2].Cues))
	}
	if batches[0].StartIndex != 0 || batches[0].EndIndex != 2 {
		t.Fatalf("unexpected first batch span: %d..%d", batches[0].StartIndex, batches[0].EndIndex)
	}
	if batches[2].StartIndex != 6 || batches[2].EndIndex != 6 {
		t.Fatalf("unexpected last batch span: %d..%d", batches[2].StartIndex, batches[2].EndIndex)
	}
}

func TestCreateBatchesContext(t *testing.T) {
	cues := makeCues(7)
	batches := CreateBatches(cues, 3, 2)

	if len(batches[0].PrevContext) != 0 {
		t.Fatalf("first batch has previous context: %+v", batches[0].PrevContext)
	}
	if len(batches[0].NextContext) != 2 || batches[0].NextContext[0].Index != 4 {
		t.Fatalf("unexpected next context for first batch: %+v", batches[0].NextContext)
	}
	if len(batches[1].PrevContext) != 2 || batches[1].PrevContext[0].Index != 2 {
		t.Fatalf("unexpected previous context for middle batch: %+v", batches[1].PrevContext)
	}
	if len(batches[2].NextContext) != 0 {
		t.Fatalf("last batch has next context: %+v", batches[2].NextContext)
	}
}

func TestCreateBatchesEdgeInputs(t *testing.T) {
	if batches := CreateBatches(nil, 3, 2); batches != nil {
		t.Fatalf("expected nil for empty input, got %+v", batches)
	}
	// A non-positive batch size degrades to one cue per batch.
	if batches := CreateBatches(makeCues(2), 0, 0); len(batches) != 2 {
		t.Fatalf("expected 2 single-cue batches, got %d", len(batches))
	}
}
