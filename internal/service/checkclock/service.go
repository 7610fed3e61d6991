package checkclock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
)

type CheckClockServiceImpl struct {
	db          *database.DB
	events      checkclock.EventRepository
	zones       checkclock.ZoneRepository
	users       checkclock.UserRepository
	fileService file.FileService

	geofenceRadiusMeters float64
}

func NewCheckClockService(
	db *database.DB,
	eventRepo checkclock.EventRepository,
	zoneRepo checkclock.ZoneRepository,
	userRepo checkclock.UserRepository,
	fileService file.FileService,
	geofenceRadiusMeters float64,
) checkclock.CheckClockService {
	return &CheckClockServiceImpl{
		db:                   db,
		events:               eventRepo,
		zones:                zoneRepo,
		users:                userRepo,
		fileService:          fileService,
		geofenceRadiusMeters: geofenceRadiusMeters,
	}
}

func claimString(ctx context.Context, key string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s claim is missing or invalid", key)
	}
	return value, nil
}

func isAdmin(ctx context.Context) bool {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return false
	}
	admin, ok := claims["is_admin"].(bool)
	return ok && admin
}

// workDay truncates a timestamp to its calendar day.
func workDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func (s *CheckClockServiceImpl) mapEventToResponse(ctx context.Context, e checkclock.AttendanceEvent) checkclock.EventResponse {
	resp := checkclock.EventResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		UserName:       e.UserName,
		Date:           e.Date.Format("2006-01-02"),
		EventType:      string(e.EventType),
		OccurredAt:     e.OccurredAt.Format(time.RFC3339),
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		Address:        e.Address,
		EvidenceRef:    e.EvidenceRef,
		ApprovalStatus: string(e.ApprovalStatus),
		ApprovedBy:     e.ApprovedBy,
		ApprovedAt:     timePtrToString(e.ApprovedAt),
		AdminNotes:     e.AdminNotes,
		IsManualEntry:  e.IsManualEntry,
		CreatedAt:      e.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if e.EvidenceRef != nil {
		if url, err := s.fileService.GetFileURL(ctx, *e.EvidenceRef, 0); err == nil {
			resp.EvidenceURL = &url
		}
	}

	return resp
}

// checkGeofence validates a coordinate pair against the configured
// zones. Missing coordinates or an empty zone set skip the check: the
// location is optional metadata, not a required gate.
func (s *CheckClockServiceImpl) checkGeofence(ctx context.Context, lat, lon *float64) error {
	if lat == nil || lon == nil {
		return nil
	}

	zones, err := s.zones.ListZones(ctx)
	if err != nil {
		return fmt.Errorf("failed to list geofence zones: %w", err)
	}
	if len(zones) == 0 {
		return nil
	}

	centers := make([]geo.Point, 0, len(zones))
	for _, z := range zones {
		centers = append(centers, geo.Point{Latitude: z.Latitude, Longitude: z.Longitude})
	}

	if !geo.WithinAnyZone(*lat, *lon, centers, s.geofenceRadiusMeters) {
		return checkclock.ErrOutsideAllowedLocation
	}

	return nil
}

// record is the single write path for all four event types, self-reported
// and manual alike. Validation and insert happen in one transaction,
// serialized per user-day by an advisory lock.
func (s *CheckClockServiceImpl) record(ctx context.Context, event checkclock.AttendanceEvent) (checkclock.AttendanceEvent, error) {
	var created checkclock.AttendanceEvent

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := postgresql.LockUserDay(txCtx, s.db, event.UserID, event.Date); err != nil {
			return err
		}

		dayEvents, err := s.events.ListDayForUpdate(txCtx, event.UserID, event.Date)
		if err != nil {
			return err
		}

		if err := checkclock.ValidateNext(dayEvents, event.EventType, event.OccurredAt); err != nil {
			return err
		}

		created, err = s.events.Append(txCtx, event)
		return err
	})
	if err != nil {
		return checkclock.AttendanceEvent{}, err
	}

	return created, nil
}

func (s *CheckClockServiceImpl) selfReport(ctx context.Context, eventType checkclock.EventType, req checkclock.CheckClockRequest) (checkclock.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return checkclock.RecordResponse{}, err
	}

	userID, err := claimString(ctx, "user_id")
	if err != nil {
		return checkclock.RecordResponse{}, err
	}

	now := time.Now()

	if err := s.checkGeofence(ctx, req.Latitude, req.Longitude); err != nil {
		return checkclock.RecordResponse{}, err
	}

	event := checkclock.AttendanceEvent{
		UserID:         userID,
		Date:           workDay(now),
		EventType:      eventType,
		OccurredAt:     now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Address:        req.Address,
		ApprovalStatus: checkclock.StatusPending,
	}

	if req.File != nil && req.FileHeader != nil {
		ref, err := s.fileService.UploadAttendanceEvidence(ctx, userID, event.Date, req.File, req.FileHeader.Filename, string(eventType))
		if err != nil {
			return checkclock.RecordResponse{}, fmt.Errorf("failed to upload attendance evidence: %w", err)
		}
		event.EvidenceRef = &ref
	}

	created, err := s.record(ctx, event)
	if err != nil {
		// The upload happened before the sequence guards ran; do not
		// leave the file behind when the event is rejected.
		if event.EvidenceRef != nil {
			if delErr := s.fileService.DeleteFile(ctx, *event.EvidenceRef); delErr != nil {
				slog.Error("Failed to remove evidence of rejected event", "path", *event.EvidenceRef, "error", delErr)
			}
		}
		return checkclock.RecordResponse{}, err
	}

	dayEvents, err := s.events.ListDay(ctx, userID, event.Date)
	if err != nil {
		return checkclock.RecordResponse{}, fmt.Errorf("failed to reload day events: %w", err)
	}

	return checkclock.RecordResponse{
		Event: s.mapEventToResponse(ctx, created),
		Today: checkclock.BuildDailyView(event.Date, dayEvents),
	}, nil
}

// ClockIn implements checkclock.CheckClockService.
func (s *CheckClockServiceImpl) ClockIn(ctx context.Context, req checkclock.CheckClockRequest) (checkclock.RecordResponse, error) {
	return s.selfReport(ctx, checkclock.EventClockIn, req)
}

// ClockOut implements checkclock.CheckClockService.
func (s *CheckClockServiceImpl) ClockOut(ctx context.Context, req checkclock.CheckClockRequest) (checkclock.RecordResponse, error) {
	return s.selfReport(ctx, checkclock.EventClockOut, req)
}

// BreakStart implements checkclock.CheckClockService.
func (s *CheckClockServiceImpl) BreakStart(ctx context.Context, req checkclock.CheckClockRequest) (checkclock.RecordResponse, error) {
	return s.selfReport(ctx, checkclock.EventBreakStart, req)
}

// BreakEnd implements checkclock.CheckClockService.
func (s *CheckClockServiceImpl) BreakEnd(ctx context.Context, req checkclock.CheckClockRequest) (checkclock.RecordResponse, error) {
	return s.selfReport(ctx, checkclock.EventBreakEnd, req)
}

// TodayStatus implements checkclock.CheckClockService.
func (s *CheckClockServiceImpl) TodayStatus(ctx context.Context) (checkclock.DailyAttendanceView, error) {
	userID, err := claimString(ctx, "user_id")
	if err != nil {
		return checkclock.DailyAttendanceView{}, err
	}

	today := workDay(time.Now())

	dayEvents, err := s.events.ListDay(ctx, userID, today)
	if err != nil {
		return checkclock.DailyAttendanceView{}, fmt.Errorf("failed to list day events: %w", err)
	}

	return checkclock.BuildDailyView(today, dayEvents), nil
}

// ListEvents implements checkclock.CheckClockService. Non-admin callers
// are always scoped to their own events; admins may filter freely.
func (s *CheckClockServiceImpl) ListEvents(ctx context.Context, filter checkclock.EventFilter) (checkclock.ListEventsResponse, error) {
	if err := filter.Validate(); err != nil {
		return checkclock.ListEventsResponse{}, err
	}

	if !isAdmin(ctx) {
		userID, err := claimString(ctx, "user_id")
		if err != nil {
			return checkclock.ListEventsResponse{}, err
		}
		filter.UserID = &userID
	}

	events, total, err := s.events.List(ctx, filter)
	if err != nil {
		return checkclock.ListEventsResponse{}, fmt.Errorf("failed to list attendance events: %w", err)
	}

	responses := make([]checkclock.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, s.mapEventToResponse(ctx, e))
	}

	return checkclock.ListEventsResponse{
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PerPage))),
		Showing:    showingRange(filter.Page, filter.PerPage, total),
		Events:     responses,
	}, nil
}

// showingRange renders the "x-y of z" pagination label. Pages past the
// last row show no range instead of one that starts beyond the total.
func showingRange(page, perPage int, total int64) string {
	start := (page-1)*perPage + 1
	if total == 0 || int64(start) > total {
		return fmt.Sprintf("0 of %d", total)
	}
	end := min(int64(page*perPage), total)
	return fmt.Sprintf("%d-%d of %d", start, end, total)
}

// DailySummary implements checkclock.CheckClockService.
func (s *CheckClockServiceImpl) DailySummary(ctx context.Context, date string) (checkclock.DailySummary, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return checkclock.DailySummary{}, fmt.Errorf("invalid summary date %q: %w", date, err)
	}

	rows, err := s.events.DailySummary(ctx, day)
	if err != nil {
		return checkclock.DailySummary{}, fmt.Errorf("failed to build daily summary: %w", err)
	}

	summary := checkclock.DailySummary{
		Date: day.Format("2006-01-02"),
		Rows: rows,
	}
	for _, row := range rows {
		switch row.Status {
		case checkclock.DayPresent:
			summary.PresentCount++
		case checkclock.DayLate:
			summary.LateCount++
		case checkclock.DayAbsent:
			summary.AbsentCount++
		}
	}

	return summary, nil
}

func (s *CheckClockServiceImpl) decide(ctx context.Context, id string, status checkclock.ApprovalStatus, notes *string) (checkclock.EventResponse, error) {
	adminID, err := claimString(ctx, "user_id")
	if err != nil {
		return checkclock.EventResponse{}, err
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, checkclock.ErrEventNotFound) {
			return checkclock.EventResponse{}, checkclock.ErrEventNotFound
		}
		return checkclock.EventResponse{}, fmt.Errorf("failed to get attendance event: %w", err)
	}

	if err := event.Decide(status, adminID, notes, time.Now()); err != nil {
		return checkclock.EventResponse{}, err
	}

	if err := s.events.DecidePending(ctx, event); err != nil {
		return checkclock.EventResponse{}, err
	}

	updated, err := s.events.GetByID(ctx, id)
	if err != nil {
		return checkclock.EventResponse{}, fmt.Errorf("failed to reload attendance event: %w", err)
	}

	return s.mapEventToResponse(ctx, updated), nil
}

// Approve implements checkclock.CheckClockService.
func (s *CheckClockServiceImpl) Approve(ctx context.Context, req checkclock.ApproveRequest) (checkclock.EventResponse, error) {
	return s.decide(ctx, req.ID, checkclock.StatusApproved, req.Notes)
}

// Decline implements checkclock.CheckClockService.
func (s *CheckClockServiceImpl) Decline(ctx context.Context, req checkclock.DeclineRequest) (checkclock.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return checkclock.EventResponse{}, err
	}
	return s.decide(ctx, req.ID, checkclock.StatusDeclined, &req.Notes)
}

// ManualEntry implements checkclock.CheckClockService. The geofence
// check is skipped; every day-level invariant still applies, so an admin
// cannot create a second clock-in either.
func (s *CheckClockServiceImpl) ManualEntry(ctx context.Context, req checkclock.ManualEntryRequest) (checkclock.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return checkclock.RecordResponse{}, err
	}

	exists, err := s.users.Exists(ctx, req.UserID)
	if err != nil {
		return checkclock.RecordResponse{}, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return checkclock.RecordResponse{}, checkclock.ErrUserNotFound
	}

	occurredAt := req.ParsedOccurredAt()

	event := checkclock.AttendanceEvent{
		UserID:         req.UserID,
		Date:           workDay(occurredAt),
		EventType:      checkclock.EventType(req.EventType),
		OccurredAt:     occurredAt,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Address:        req.Address,
		AdminNotes:     req.Notes,
		ApprovalStatus: checkclock.StatusPending,
		IsManualEntry:  true,
	}

	created, err := s.record(ctx, event)
	if err != nil {
		return checkclock.RecordResponse{}, err
	}

	dayEvents, err := s.events.ListDay(ctx, req.UserID, event.Date)
	if err != nil {
		return checkclock.RecordResponse{}, fmt.Errorf("failed to reload day events: %w", err)
	}

	return checkclock.RecordResponse{
		Event: s.mapEventToResponse(ctx, created),
		Today: checkclock.BuildDailyView(event.Date, dayEvents),
	}, nil
}

// ListZones implements checkclock.CheckClockService.
func (s *CheckClockServiceImpl) ListZones(ctx context.Context) ([]checkclock.ZoneResponse, error) {
	zones, err := s.zones.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list geofence zones: %w", err)
	}

	responses := make([]checkclock.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		responses = append(responses, checkclock.ZoneResponse{
			ID:        z.ID,
			Name:      z.Name,
			ZoneType:  z.ZoneType,
			Latitude:  z.Latitude,
			Longitude: z.Longitude,
		})
	}

	return responses, nil
}
