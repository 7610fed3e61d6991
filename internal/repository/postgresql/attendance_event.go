package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceEventRepository struct {
	db *database.DB
}

const eventColumns = `
	a.id, a.user_id, a.date, a.event_type, a.occurred_at,
	a.latitude, a.longitude, a.address, a.evidence_ref,
	a.approval_status, a.approved_by, a.approved_at, a.admin_notes,
	a.is_manual_entry, a.created_at`

func scanEvent(row pgx.Row) (checkclock.AttendanceEvent, error) {
	var e checkclock.AttendanceEvent
	err := row.Scan(
		&e.ID, &e.UserID, &e.Date, &e.EventType, &e.OccurredAt,
		&e.Latitude, &e.Longitude, &e.Address, &e.EvidenceRef,
		&e.ApprovalStatus, &e.ApprovedBy, &e.ApprovedAt, &e.AdminNotes,
		&e.IsManualEntry, &e.CreatedAt,
	)
	return e, err
}

// Append implements checkclock.EventRepository. A unique-violation on the
// per-day singleton index is translated back into the matching
// state-machine error so concurrent duplicates surface exactly like
// sequential ones.
func (r *attendanceEventRepository) Append(ctx context.Context, event checkclock.AttendanceEvent) (checkclock.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			user_id, date, event_type, occurred_at,
			latitude, longitude, address, evidence_ref,
			approval_status, admin_notes, is_manual_entry
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		event.UserID,
		event.Date,
		event.EventType,
		event.OccurredAt,
		event.Latitude,
		event.Longitude,
		event.Address,
		event.EvidenceRef,
		event.ApprovalStatus,
		event.AdminNotes,
		event.IsManualEntry,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch event.EventType {
			case checkclock.EventClockIn:
				return checkclock.AttendanceEvent{}, checkclock.ErrAlreadyClockedIn
			case checkclock.EventClockOut:
				return checkclock.AttendanceEvent{}, checkclock.ErrAlreadyClockedOut
			}
		}
		return checkclock.AttendanceEvent{}, fmt.Errorf("failed to append attendance event: %w", err)
	}

	return event, nil
}

func (r *attendanceEventRepository) listDay(ctx context.Context, userID string, date time.Time, forUpdate bool) ([]checkclock.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events a
		WHERE a.user_id = $1
		  AND a.date = $2
		ORDER BY a.occurred_at ASC
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query day events: %w", err)
	}
	defer rows.Close()

	var events []checkclock.AttendanceEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// ListDay implements checkclock.EventRepository.
func (r *attendanceEventRepository) ListDay(ctx context.Context, userID string, date time.Time) ([]checkclock.AttendanceEvent, error) {
	return r.listDay(ctx, userID, date, false)
}

// ListDayForUpdate implements checkclock.EventRepository.
func (r *attendanceEventRepository) ListDayForUpdate(ctx context.Context, userID string, date time.Time) ([]checkclock.AttendanceEvent, error) {
	return r.listDay(ctx, userID, date, true)
}

// GetByID implements checkclock.EventRepository.
func (r *attendanceEventRepository) GetByID(ctx context.Context, id string) (checkclock.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `,
			u.full_name AS user_name
		FROM attendance_events a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	var e checkclock.AttendanceEvent
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.UserID, &e.Date, &e.EventType, &e.OccurredAt,
		&e.Latitude, &e.Longitude, &e.Address, &e.EvidenceRef,
		&e.ApprovalStatus, &e.ApprovedBy, &e.ApprovedAt, &e.AdminNotes,
		&e.IsManualEntry, &e.CreatedAt,
		&e.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkclock.AttendanceEvent{}, checkclock.ErrEventNotFound
		}
		return checkclock.AttendanceEvent{}, fmt.Errorf("failed to get attendance event by ID: %w", err)
	}

	return e, nil
}

// List implements checkclock.EventRepository.
func (r *attendanceEventRepository) List(ctx context.Context, filter checkclock.EventFilter) ([]checkclock.AttendanceEvent, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND a.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	if filter.DateFrom != nil && *filter.DateFrom != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND a.event_type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.approval_status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM attendance_events a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance events: %w", err)
	}

	// Build ORDER BY from the validated whitelist
	orderByField := "a.occurred_at"
	switch filter.SortBy {
	case "date":
		orderByField = "a.date"
	case "event_type":
		orderByField = "a.event_type"
	case "approval_status":
		orderByField = "a.approval_status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+eventColumns+`,
			u.full_name AS user_name
		FROM attendance_events a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	perPage := filter.PerPage
	if perPage == 0 {
		perPage = 20
	}
	offset := (filter.Page - 1) * perPage
	args = append(args, perPage, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance events: %w", err)
	}
	defer rows.Close()

	var events []checkclock.AttendanceEvent
	for rows.Next() {
		var e checkclock.AttendanceEvent
		err := rows.Scan(
			&e.ID, &e.UserID, &e.Date, &e.EventType, &e.OccurredAt,
			&e.Latitude, &e.Longitude, &e.Address, &e.EvidenceRef,
			&e.ApprovalStatus, &e.ApprovedBy, &e.ApprovedAt, &e.AdminNotes,
			&e.IsManualEntry, &e.CreatedAt,
			&e.UserName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, e)
	}

	return events, total, rows.Err()
}

// DecidePending implements checkclock.EventRepository. The WHERE clause
// re-checks pending inside the statement, so a concurrent decision loses
// cleanly instead of overwriting.
func (r *attendanceEventRepository) DecidePending(ctx context.Context, event checkclock.AttendanceEvent) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_events
		SET approval_status = $1,
			approved_by = $2,
			approved_at = $3,
			admin_notes = $4
		WHERE id = $5
		  AND approval_status = 'pending'
	`

	tag, err := q.Exec(ctx, query,
		event.ApprovalStatus,
		event.ApprovedBy,
		event.ApprovedAt,
		event.AdminNotes,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to decide attendance event: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Either gone or already decided; disambiguate for the caller.
		if _, err := r.GetByID(ctx, event.ID); err != nil {
			return err
		}
		return checkclock.ErrAlreadyDecided
	}

	return nil
}

// DailySummary implements checkclock.EventRepository. One row per
// roster user with their clock-in/out for the date; users without a
// clock-in come back with NULLs and derive to absent.
func (r *attendanceEventRepository) DailySummary(ctx context.Context, date time.Time) ([]checkclock.DailySummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			u.id,
			u.full_name,
			ci.occurred_at AS clock_in,
			co.occurred_at AS clock_out
		FROM users u
		LEFT JOIN attendance_events ci
			ON ci.user_id = u.id AND ci.date = $1 AND ci.event_type = 'clock_in'
		LEFT JOIN attendance_events co
			ON co.user_id = u.id AND co.date = $1 AND co.event_type = 'clock_out'
		ORDER BY u.full_name ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily summary: %w", err)
	}
	defer rows.Close()

	var summary []checkclock.DailySummaryRow
	for rows.Next() {
		var (
			row      checkclock.DailySummaryRow
			clockIn  *time.Time
			clockOut *time.Time
		)
		if err := rows.Scan(&row.UserID, &row.UserName, &clockIn, &clockOut); err != nil {
			return nil, fmt.Errorf("failed to scan daily summary row: %w", err)
		}

		row.Status = checkclock.StatusFor(clockIn)
		if clockIn != nil {
			s := clockIn.Format("15:04:05")
			row.ClockIn = &s
		}
		if clockOut != nil {
			s := clockOut.Format("15:04:05")
			row.ClockOut = &s
		}
		if clockIn != nil && clockOut != nil {
			wh := checkclock.WorkHours(clockIn, clockOut)
			row.WorkHours = &wh
		}

		summary = append(summary, row)
	}

	return summary, rows.Err()
}

func NewAttendanceEventRepository(db *database.DB) checkclock.EventRepository {
	return &attendanceEventRepository{db: db}
}
