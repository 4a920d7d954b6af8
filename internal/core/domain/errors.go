package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUserExists         = errors.New("user with this email already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	// ErrBackendUnavailable marks persistence failures caused by the store being
	// unreachable. Adapters wrap driver errors with it; nothing inspects messages.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// ErrNotFound is the root of every "no such row" error.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound       = notFound("User")
	ErrLeadNotFound       = notFound("Lead")
	ErrPropertyNotFound   = notFound("Property")
	ErrVisitNotFound      = notFound("Visit")
	ErrCommissionNotFound = notFound("Commission")
	ErrAgentNotFound      = notFound("Agent")
	// ErrLeadOrPropertyNotFound is returned when scheduling a visit against a
	// lead or property that does not exist.
	ErrLeadOrPropertyNotFound = notFound("Lead or property")
)

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// ForbiddenError carries a client-facing reason for a 403.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// Forbidden returns an error matching ErrForbidden with the given reason.
func Forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}

// ValidationError carries the message of the first rejected field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid returns an error matching ErrValidation.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Unavailable wraps err so that it matches ErrBackendUnavailable while keeping
// the driver error in the chain for logging.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
}
