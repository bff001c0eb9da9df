package subtitle

import (
	"fmt"
	"strings"
	"time"
)

// Issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue describes a single validation finding. CueIndex is zero for
// document-level issues.
type Issue struct {
	Severity string
	CueIndex int
	Message  string
}

func (i Issue) String() string {
	if i.CueIndex > 0 {
		return fmt.Sprintf("%s: cue %d: %s", i.Severity, i.CueIndex, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// Validate checks a cue document for timing and content problems. When
// mediaDuration is positive, cues running past the end of the media are
// flagged. The returned slice is empty for a clean document.
func Validate(cues []Cue, mediaDuration time.Duration) []Issue {
	var issues []Issue

	if len(cues) == 0 {
		return []Issue{{Severity: SeverityError, Message: "document contains no cues"}}
	}

	for i, cue := range cues {
		index := i + 1
		if strings.TrimSpace(cue.Text) == "" {
			issues = append(issues, Issue{SeverityWarning, index, "empty text"})
		}
		if cue.Start < 0 {
			issues = append(issues, Issue{SeverityError, index, "negative start time"})
		}
		if cue.End <= cue.Start {
			issues = append(issues, Issue{SeverityError, index, fmt.Sprintf("non-positive duration (%s --> %s)", cue.Start, cue.End)})
		}
		if i > 0 {
			prev := cues[i-1]
			if cue.Start < prev.Start {
				issues = append(issues, Issue{SeverityWarning, index, "starts before previous cue"})
			} else if cue.Start < prev.End {
				issues = append(issues, Issue{SeverityWarning, index, fmt.Sprintf("overlaps previous cue by %s", prev.End-cue.Start)})
			}
		}
		if mediaDuration > 0 && cue.End > mediaDuration {
			issues = append(issues, Issue{SeverityWarning, index, fmt.Sprintf("ends %s past media duration", cue.End-mediaDuration)})
		}
	}

	return issues
}

// HasErrors reports whether any issue is error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
