package translate

import "sublate/internal/subtitle"

// Batch groups consecutive cues for one provider call, along with a few
// neighboring cues on each side that are sent as untranslated context.
type Batch struct {
	Cues        []subtitle.Cue
	PrevContext []subtitle.Cue
	NextContext []subtitle.Cue
	// StartIndex and EndIndex are zero-based positions of the batch's
	// first and last cue within the source document.
	StartIndex int
	EndIndex   int
}

// CreateBatches slices cues into translation batches of batchSize, attaching
// up to contextSize cues of surrounding context to each.
func CreateBatches(cues []subtitle.Cue, batchSize, contextSize int) []Batch {
	if len(cues) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if contextSize < 0 {
		contextSize = 0
	}

	batches := make([]Batch, 0, (len(cues)+batchSize-1)/batchSize)
	for i := 0; i < len(cues); i += batchSize {
		end := i + batchSize
		if end > len(cues) {
			end = len(cues)
		}

		prevStart := i - contextSize
		if prevStart < 0 {
			prevStart = 0
		}
		nextEnd := end + contextSize
		if nextEnd > len(cues) {
			nextEnd = len(cues)
		}

		batches = append(batches, Batch{
			Cues:        cues[i:end],
			PrevContext: cues[prevStart:i],
			NextContext: cues[end:nextEnd],
			StartIndex:  i,
			EndIndex:    end - 1,
		})
	}
	return batches
}
