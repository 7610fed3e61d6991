package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. State-machine guard
// failures carry stable reason codes so clients can branch on them.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// State-machine guard failures
	case errors.Is(err, checkclock.ErrAlreadyClockedIn):
		BusinessRule(w, "already_clocked_in", err.Error())
	case errors.Is(err, checkclock.ErrNotClockedIn):
		BusinessRule(w, "not_clocked_in", err.Error())
	case errors.Is(err, checkclock.ErrAlreadyClockedOut):
		BusinessRule(w, "already_clocked_out", err.Error())
	case errors.Is(err, checkclock.ErrAlreadyOnBreak):
		BusinessRule(w, "already_on_break", err.Error())
	case errors.Is(err, checkclock.ErrNotOnBreak):
		BusinessRule(w, "not_on_break", err.Error())
	case errors.Is(err, checkclock.ErrBreakAlreadyEnded):
		BusinessRule(w, "break_already_ended", err.Error())

	// Geofence
	case errors.Is(err, checkclock.ErrOutsideAllowedLocation):
		BusinessRule(w, "outside_allowed_location", err.Error())

	// Approval workflow
	case errors.Is(err, checkclock.ErrAlreadyDecided):
		Conflict(w, "already_decided", err.Error())
	case errors.Is(err, checkclock.ErrInvalidDecision):
		BusinessRule(w, "invalid_decision", err.Error())

	// Lookups
	case errors.Is(err, checkclock.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, checkclock.ErrUserNotFound):
		NotFound(w, "User not found")

	// Authorization
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
