package checkclock

import (
	"time"
)

// EventType is the closed set of check-clock event kinds.
type EventType string

const (
	EventClockIn    EventType = "clock_in"
	EventClockOut   EventType = "clock_out"
	EventBreakStart EventType = "break_start"
	EventBreakEnd   EventType = "break_end"
)

// ValidEventTypes lists every accepted event type, in lifecycle order.
var ValidEventTypes = []EventType{EventClockIn, EventBreakStart, EventBreakEnd, EventClockOut}

func (t EventType) Valid() bool {
	switch t {
	case EventClockIn, EventClockOut, EventBreakStart, EventBreakEnd:
		return true
	}
	return false
}

// ApprovalStatus is the admin review state of a recorded event.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusDeclined ApprovalStatus = "declined"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined:
		return true
	}
	return false
}

// AttendanceEvent is a single append-only check-clock record. Only the
// approval fields ever change after creation.
type AttendanceEvent struct {
	ID             string
	UserID         string
	Date           time.Time // working day, truncated to midnight
	EventType      EventType
	OccurredAt     time.Time
	Latitude       *float64
	Longitude      *float64
	Address        *string
	EvidenceRef    *string
	ApprovalStatus ApprovalStatus
	ApprovedBy     *string
	ApprovedAt     *time.Time
	AdminNotes     *string
	IsManualEntry  bool
	CreatedAt      time.Time

	// Joined for responses
	UserName *string
}

// HasLocation reports whether the event carries a full coordinate pair.
func (e *AttendanceEvent) HasLocation() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// Decide applies the one-way approval transition. Decisions are final:
// anything other than pending fails with ErrAlreadyDecided.
func (e *AttendanceEvent) Decide(status ApprovalStatus, adminID string, notes *string, now time.Time) error {
	if status != StatusApproved && status != StatusDeclined {
		return ErrInvalidDecision
	}
	if e.ApprovalStatus != StatusPending {
		return ErrAlreadyDecided
	}

	e.ApprovalStatus = status
	e.ApprovedBy = &adminID
	e.ApprovedAt = &now
	e.AdminNotes = notes
	return nil
}

// GeofenceZone is an allowed clock-in location. The radius is a single
// global setting, not a per-zone attribute.
type GeofenceZone struct {
	ID        string
	Name      string
	ZoneType  string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

// DayStatus is the derived attendance status for a user-day.
type DayStatus string

const (
	DayPresent DayStatus = "Present"
	DayLate    DayStatus = "Late"
	DayAbsent  DayStatus = "Absent"
)

// DailyAttendanceView is the derived single-day roll-up of a user's events.
// It is never persisted.
type DailyAttendanceView struct {
	Date          string     `json:"date"`
	ClockIn       *time.Time `json:"-"`
	ClockOut      *time.Time `json:"-"`
	BreakStart    *time.Time `json:"-"`
	BreakEnd      *time.Time `json:"-"`
	ClockInTime   *string    `json:"clock_in,omitempty"`
	ClockOutTime  *string    `json:"clock_out,omitempty"`
	BreakStartAt  *string    `json:"break_start,omitempty"`
	BreakEndAt    *string    `json:"break_end,omitempty"`
	WorkHours     *string    `json:"work_hours,omitempty"`
	BreakDuration *string    `json:"break_duration,omitempty"`
	OnBreak       bool       `json:"on_break"`
	Status        DayStatus  `json:"status"`
	CanClockIn    bool       `json:"can_clock_in"`
	CanClockOut   bool       `json:"can_clock_out"`
	CanBreakStart bool       `json:"can_break_start"`
	CanBreakEnd   bool       `json:"can_break_end"`
}

// DailySummaryRow is one user's line in the admin daily summary.
type DailySummaryRow struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	ClockIn   *string   `json:"clock_in,omitempty"`
	ClockOut  *string   `json:"clock_out,omitempty"`
	WorkHours *string   `json:"work_hours,omitempty"`
	Status    DayStatus `json:"status"`
}

// DailySummary is the admin per-date roll-up across all users.
type DailySummary struct {
	Date         string            `json:"date"`
	PresentCount int               `json:"present_count"`
	LateCount    int               `json:"late_count"`
	AbsentCount  int               `json:"absent_count"`
	Rows         []DailySummaryRow `json:"rows"`
}
