package checkclock

import (
	"context"
)

// CheckClockService defines the business operations of the check-clock
// core. The caller identity always comes from the request context.
type CheckClockService interface {
	// ClockIn records the day's clock-in for the authenticated user.
	ClockIn(ctx context.Context, req CheckClockRequest) (RecordResponse, error)

	// ClockOut records the day's clock-out.
	ClockOut(ctx context.Context, req CheckClockRequest) (RecordResponse, error)

	// BreakStart opens a break cycle.
	BreakStart(ctx context.Context, req CheckClockRequest) (RecordResponse, error)

	// BreakEnd closes the open break cycle.
	BreakEnd(ctx context.Context, req CheckClockRequest) (RecordResponse, error)

	// TodayStatus returns the authenticated user's daily view.
	TodayStatus(ctx context.Context) (DailyAttendanceView, error)

	// ListEvents lists events; non-admins only ever see their own.
	ListEvents(ctx context.Context, filter EventFilter) (ListEventsResponse, error)

	// DailySummary is the admin per-user roll-up for a date.
	DailySummary(ctx context.Context, date string) (DailySummary, error)

	// Approve marks a pending event approved.
	Approve(ctx context.Context, req ApproveRequest) (EventResponse, error)

	// Decline marks a pending event declined; notes are required.
	Decline(ctx context.Context, req DeclineRequest) (EventResponse, error)

	// ManualEntry records an event on a user's behalf, skipping the
	// geofence check but keeping every day-level invariant.
	ManualEntry(ctx context.Context, req ManualEntryRequest) (RecordResponse, error)

	// ListZones returns the configured geofence zones.
	ListZones(ctx context.Context) ([]ZoneResponse, error)
}
