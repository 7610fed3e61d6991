package checkclock

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/validator"
)

// ========================================
// CHECK-CLOCK DTOs
// ========================================

// CheckClockRequest carries the optional location metadata of a clock or
// break action. Coordinates are optional; when one of the pair is present
// the other must be too.
type CheckClockRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   *string  `json:"address,omitempty"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.FileHeader != nil {
		filename := r.FileHeader.Filename
		idx := strings.LastIndex(filename, ".")
		ext := ""
		if idx >= 0 {
			ext = strings.ToLower(filename[idx:])
		}
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "evidence photo size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HasCoordinates reports whether both latitude and longitude were sent.
func (r *CheckClockRequest) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// EventResponse is the API shape of a recorded attendance event.
type EventResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	UserName       *string  `json:"user_name,omitempty"`
	Date           string   `json:"date"`
	EventType      string   `json:"event_type"`
	OccurredAt     string   `json:"occurred_at"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Address        *string  `json:"address,omitempty"`
	EvidenceRef    *string  `json:"evidence_ref,omitempty"`
	EvidenceURL    *string  `json:"evidence_url,omitempty"`
	ApprovalStatus string   `json:"approval_status"`
	ApprovedBy     *string  `json:"approved_by,omitempty"`
	ApprovedAt     *string  `json:"approved_at,omitempty"`
	AdminNotes     *string  `json:"admin_notes,omitempty"`
	IsManualEntry  bool     `json:"is_manual_entry"`
	CreatedAt      string   `json:"created_at"`
}

// RecordResponse pairs the created event with the refreshed daily view.
type RecordResponse struct {
	Event EventResponse       `json:"event"`
	Today DailyAttendanceView `json:"today"`
}

// EventFilter controls history listing. Non-admin callers are always
// scoped to their own events regardless of UserID.
type EventFilter struct {
	UserID   *string `json:"user_id,omitempty"`
	Date     *string `json:"date,omitempty"`      // YYYY-MM-DD
	DateFrom *string `json:"date_from,omitempty"` // YYYY-MM-DD
	DateTo   *string `json:"date_to,omitempty"`   // YYYY-MM-DD
	Type     *string `json:"type,omitempty"`
	Status   *string `json:"status,omitempty"`

	Page    int `json:"page"`
	PerPage int `json:"per_page"`

	SortBy    string `json:"sort_by"`    // occurred_at, date, event_type, approval_status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EventFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.PerPage < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "per_page",
			Message: "per_page must be a positive number",
		})
	}
	if f.PerPage == 0 {
		f.PerPage = 20 // Default limit
	}
	if f.PerPage > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "per_page",
			Message: "per_page must not exceed 100",
		})
	}

	if f.Type != nil && !EventType(*f.Type).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: clock_in, clock_out, break_start, break_end",
		})
	}

	if f.Status != nil && !ApprovalStatus(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, declined",
		})
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.DateFrom != nil && *f.DateFrom != "" {
		if _, valid := validator.IsValidDate(*f.DateFrom); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be in YYYY-MM-DD format",
			})
		}
	}

	if f.DateTo != nil && *f.DateTo != "" {
		if _, valid := validator.IsValidDate(*f.DateTo); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"occurred_at", "date", "event_type", "approval_status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: occurred_at, date, event_type, approval_status",
			})
		}
	} else {
		f.SortBy = "occurred_at" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListEventsResponse is a paginated history page.
type ListEventsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
	Showing    string          `json:"showing"`
	Events     []EventResponse `json:"events"`
}

// ========================================
// APPROVAL WORKFLOW DTOs
// ========================================

// ApproveRequest approves a pending event. Notes are optional.
type ApproveRequest struct {
	ID    string  `json:"-"`
	Notes *string `json:"notes,omitempty"`
}

// DeclineRequest declines a pending event. Notes are required.
type DeclineRequest struct {
	ID    string `json:"-"`
	Notes string `json:"notes"`
}

func (r *DeclineRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Notes) {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "decline notes are required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ManualEntryRequest creates an event on behalf of a user. It bypasses
// the geofence check but not the day-level invariants.
type ManualEntryRequest struct {
	UserID     string   `json:"user_id"`
	EventType  string   `json:"event_type"`
	OccurredAt string   `json:"occurred_at"` // RFC3339
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Address    *string  `json:"address,omitempty"`
	Notes      *string  `json:"notes,omitempty"`

	parsedOccurredAt time.Time
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	} else if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}

	if !EventType(r.EventType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "event_type",
			Message: "event_type must be one of: clock_in, clock_out, break_start, break_end",
		})
	}

	if validator.IsEmpty(r.OccurredAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "occurred_at",
			Message: "occurred_at is required",
		})
	} else if t, valid := validator.IsValidDateTime(r.OccurredAt); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "occurred_at",
			Message: "occurred_at must be an RFC3339 timestamp",
		})
	} else {
		r.parsedOccurredAt = t
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedOccurredAt returns the timestamp parsed during Validate.
func (r *ManualEntryRequest) ParsedOccurredAt() time.Time {
	return r.parsedOccurredAt
}

// ZoneResponse is the API shape of a configured geofence zone.
type ZoneResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ZoneType  string  `json:"zone_type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
