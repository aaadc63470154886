package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Entity errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrShiftNotFound    = errors.New("shift not found")
	ErrTimeOffNotFound  = errors.New("time off request not found")
	ErrAccountExists    = errors.New("account already exists")
	ErrStaleShift       = errors.New("shift was modified concurrently")
)

// ConflictReason identifies which assignment rule rejected an employee.
// Callers can branch on the reason instead of matching message text.
type ConflictReason string

const (
	ConflictRoleMismatch   ConflictReason = "role_mismatch"
	ConflictMissingSkills  ConflictReason = "missing_skills"
	ConflictUnavailable    ConflictReason = "unavailable"
	ConflictShiftOverlap   ConflictReason = "shift_overlap"
	ConflictTimeOffOverlap ConflictReason = "time_off_overlap"
)

// ConflictError is returned when an employee cannot be assigned to a
// shift. It carries both a reason code and a human-readable message.
type ConflictError struct {
	Reason  ConflictReason
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError builds a ConflictError for the given rule
func NewConflictError(reason ConflictReason, message string) *ConflictError {
	return &ConflictError{Reason: reason, Message: message}
}

// AsConflictError unwraps err into a *ConflictError if it is one
func AsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
