package checkclock

import (
	"fmt"
	"time"
)

// MissingDuration is reported when either side of a timestamp pair is
// absent.
const MissingDuration = "-"

// formatHHMM renders an absolute duration as zero-padded "HH:MM". Hours
// are not clamped to 24: a shift spanning midnight keeps counting.
func formatHHMM(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	mins := int(d.Minutes())
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// WorkHours is the wall-clock span between clock-in and clock-out.
// Break time is not subtracted from the total.
func WorkHours(clockIn, clockOut *time.Time) string {
	if clockIn == nil || clockOut == nil {
		return MissingDuration
	}
	return formatHHMM(clockOut.Sub(*clockIn))
}

// BreakDuration formats the span of a single break pair.
func BreakDuration(breakStart, breakEnd *time.Time) string {
	if breakStart == nil || breakEnd == nil {
		return MissingDuration
	}
	return formatHHMM(breakEnd.Sub(*breakStart))
}
