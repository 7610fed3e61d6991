package checkclock

import "errors"

// Check-clock domain errors
var (
	// State machine guard failures
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")
	ErrAlreadyOnBreak    = errors.New("you are already on a break")
	ErrNotOnBreak        = errors.New("you are not on a break")
	ErrBreakAlreadyEnded = errors.New("the current break has already ended")

	// Geofence
	ErrOutsideAllowedLocation = errors.New("you are outside the allowed location")

	// Approval workflow
	ErrAlreadyDecided  = errors.New("attendance event has already been approved or declined")
	ErrInvalidDecision = errors.New("approval decision must be approved or declined")

	// General errors
	ErrEventNotFound = errors.New("attendance event not found")
	ErrUserNotFound  = errors.New("user not found")
)
