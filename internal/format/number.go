package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Count renders an integer with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}

// Bytes renders a byte count in human units (SI).
func Bytes(n uint64) string {
	return humanize.Bytes(n)
}

// Percent renders a 0..1 fraction as a percentage with one decimal.
func Percent(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// RelativeTime renders a timestamp relative to now ("3 minutes ago",
// "2 hours from now").
func RelativeTime(t time.Time) string {
	return humanize.Time(t)
}

// Elapsed renders a duration compactly for summaries: sub-minute durations in
// seconds with one decimal, longer ones as M:SS or H:MM:SS.
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return FormatClock(d)
}
