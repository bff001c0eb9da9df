package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSRTTimestamp parses an SRT clock value (HH:MM:SS,mmm). A period is
// accepted in place of the comma since tools disagree on the separator.
func ParseSRTTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if minutes > 59 || seconds > 59 || millis > 999 || hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("timestamp out of range %q", value)
	}
	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
	return total, nil
}

// FormatSRTTimestamp renders a duration as an SRT clock value (HH:MM:SS,mmm).
// Negative durations clamp to zero.
func FormatSRTTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	millis := d.Milliseconds()
	hours := millis / 3_600_000
	millis -= hours * 3_600_000
	minutes := millis / 60_000
	millis -= minutes * 60_000
	seconds := millis / 1000
	millis -= seconds * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// FormatVTTTimestamp renders a duration as a WebVTT clock value
// (HH:MM:SS.mmm).
func FormatVTTTimestamp(d time.Duration) string {
	return strings.Replace(FormatSRTTimestamp(d), ",", ".", 1)
}

// FormatClock renders a duration as a compact playback clock: M:SS below one
// hour, H:MM:SS at or above.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
