package checkclock

import "time"

// latestOfType returns the most recent event of the given type by
// occurred_at, or nil. Break events may repeat within a day, so callers
// must never assume a single occurrence.
func latestOfType(events []AttendanceEvent, t EventType) *AttendanceEvent {
	var latest *AttendanceEvent
	for i := range events {
		if events[i].EventType != t {
			continue
		}
		if latest == nil || events[i].OccurredAt.After(latest.OccurredAt) {
			latest = &events[i]
		}
	}
	return latest
}

func hasType(events []AttendanceEvent, t EventType) bool {
	return latestOfType(events, t) != nil
}

// breakOpen reports whether the latest break pair is open: a break_start
// with no break_end at or after it.
func breakOpen(events []AttendanceEvent) bool {
	start := latestOfType(events, EventBreakStart)
	if start == nil {
		return false
	}
	end := latestOfType(events, EventBreakEnd)
	return end == nil || end.OccurredAt.Before(start.OccurredAt)
}

// The can* predicates are the single source of truth for the per-day
// event sequence. Both ValidateNext and the daily view flags derive from
// them so the two can never disagree.

func canClockIn(events []AttendanceEvent) bool {
	return !hasType(events, EventClockIn)
}

func canClockOut(events []AttendanceEvent) bool {
	return hasType(events, EventClockIn) && !hasType(events, EventClockOut)
}

func canBreakStart(events []AttendanceEvent) bool {
	return hasType(events, EventClockIn) && !hasType(events, EventClockOut) && !breakOpen(events)
}

func canBreakEnd(events []AttendanceEvent) bool {
	return breakOpen(events)
}

// ValidateNext decides whether requested may be recorded next for a day
// already holding events. The caller passes the day's events and "now"
// explicitly; the function holds no session or clock state of its own.
func ValidateNext(events []AttendanceEvent, requested EventType, now time.Time) error {
	switch requested {
	case EventClockIn:
		if !canClockIn(events) {
			return ErrAlreadyClockedIn
		}
	case EventClockOut:
		if !hasType(events, EventClockIn) {
			return ErrNotClockedIn
		}
		if hasType(events, EventClockOut) {
			return ErrAlreadyClockedOut
		}
	case EventBreakStart:
		if !hasType(events, EventClockIn) {
			return ErrNotClockedIn
		}
		if hasType(events, EventClockOut) {
			return ErrAlreadyClockedOut
		}
		if breakOpen(events) {
			return ErrAlreadyOnBreak
		}
	case EventBreakEnd:
		if start := latestOfType(events, EventBreakStart); start == nil {
			return ErrNotOnBreak
		} else if end := latestOfType(events, EventBreakEnd); end != nil && !end.OccurredAt.Before(start.OccurredAt) {
			return ErrBreakAlreadyEnded
		}
	}
	return nil
}
