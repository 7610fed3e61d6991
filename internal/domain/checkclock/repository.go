package checkclock

import (
	"context"
	"time"
)

// EventRepository is the persistence boundary for attendance events.
// Events are append-only; only the approval fields are ever updated.
type EventRepository interface {
	// Append inserts a new event and returns it with its generated ID.
	Append(ctx context.Context, event AttendanceEvent) (AttendanceEvent, error)

	// ListDay returns all of a user's events for a working day, ordered
	// by occurred_at.
	ListDay(ctx context.Context, userID string, date time.Time) ([]AttendanceEvent, error)

	// ListDayForUpdate is ListDay with the rows locked for the duration
	// of the surrounding transaction.
	ListDayForUpdate(ctx context.Context, userID string, date time.Time) ([]AttendanceEvent, error)

	// GetByID returns a single event or ErrEventNotFound.
	GetByID(ctx context.Context, id string) (AttendanceEvent, error)

	// List returns a filtered, paginated page of events plus the total
	// count.
	List(ctx context.Context, filter EventFilter) ([]AttendanceEvent, int64, error)

	// DecidePending persists an approval decision. It only touches rows
	// still pending and returns ErrAlreadyDecided otherwise.
	DecidePending(ctx context.Context, event AttendanceEvent) error

	// DailySummary returns the per-user roll-up rows for a date across
	// the whole user roster.
	DailySummary(ctx context.Context, date time.Time) ([]DailySummaryRow, error)
}

// ZoneRepository reads the configured geofence zones.
type ZoneRepository interface {
	ListZones(ctx context.Context) ([]GeofenceZone, error)
}

// UserRepository is the minimal roster surface the check-clock core
// needs; user CRUD itself lives elsewhere.
type UserRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}
