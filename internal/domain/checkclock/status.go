package checkclock

import "time"

// LateCutoffHour is the local time-of-day hour after which a clock-in
// counts as late.
const LateCutoffHour = 9

// lateCutoff returns 09:00 on the clock-in's own day, in its location.
func lateCutoff(clockIn time.Time) time.Time {
	return time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(), LateCutoffHour, 0, 0, 0, clockIn.Location())
}

// StatusFor derives the day status from the clock-in timestamp, or
// Absent when there is none.
func StatusFor(clockIn *time.Time) DayStatus {
	if clockIn == nil {
		return DayAbsent
	}
	if clockIn.After(lateCutoff(*clockIn)) {
		return DayLate
	}
	return DayPresent
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}

func durationPtr(a, b *time.Time) *string {
	if a == nil || b == nil {
		return nil
	}
	s := formatHHMM(b.Sub(*a))
	return &s
}

// BuildDailyView combines one day's events into the derived status view.
// The can-flags come from the same predicates the state machine enforces.
func BuildDailyView(date time.Time, events []AttendanceEvent) DailyAttendanceView {
	var clockIn, clockOut, breakStart, breakEnd *time.Time

	if e := latestOfType(events, EventClockIn); e != nil {
		clockIn = &e.OccurredAt
	}
	if e := latestOfType(events, EventClockOut); e != nil {
		clockOut = &e.OccurredAt
	}
	if e := latestOfType(events, EventBreakStart); e != nil {
		breakStart = &e.OccurredAt
	}
	if e := latestOfType(events, EventBreakEnd); e != nil {
		breakEnd = &e.OccurredAt
	}

	view := DailyAttendanceView{
		Date:          date.Format("2006-01-02"),
		ClockIn:       clockIn,
		ClockOut:      clockOut,
		BreakStart:    breakStart,
		BreakEnd:      breakEnd,
		ClockInTime:   formatClock(clockIn),
		ClockOutTime:  formatClock(clockOut),
		BreakStartAt:  formatClock(breakStart),
		BreakEndAt:    formatClock(breakEnd),
		OnBreak:       breakOpen(events),
		Status:        StatusFor(clockIn),
		CanClockIn:    canClockIn(events),
		CanClockOut:   canClockOut(events),
		CanBreakStart: canBreakStart(events),
		CanBreakEnd:   canBreakEnd(events),
	}

	if clockIn != nil && clockOut != nil {
		wh := WorkHours(clockIn, clockOut)
		view.WorkHours = &wh
	}

	// Only a closed pair yields a break duration; while on break the
	// latest break_end belongs to an earlier cycle.
	if breakStart != nil && breakEnd != nil && !breakEnd.Before(*breakStart) {
		view.BreakDuration = durationPtr(breakStart, breakEnd)
	}

	return view
}
