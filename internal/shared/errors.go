package shared

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness constraint violation.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrConflict indicates a referential-guard violation.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized indicates the request carries no valid identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the identity lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCSRFTokenMissing occurs when the CSRF token is absent.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// StatusError pairs a sentinel kind with the exact message returned to the
// client. errors.Is matches on the kind.
type StatusError struct {
	Kind    error
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string { return e.Message }

// Unwrap exposes the sentinel kind.
func (e *StatusError) Unwrap() error { return e.Kind }

// NotFound builds a not-found error with a client-facing message.
func NotFound(message string) error {
	return &StatusError{Kind: ErrNotFound, Message: message}
}

// Duplicate builds a uniqueness-conflict error with a client-facing message.
func Duplicate(message string) error {
	return &StatusError{Kind: ErrDuplicate, Message: message}
}

// Conflicts builds a referential-guard error with a client-facing message.
func Conflicts(message string) error {
	return &StatusError{Kind: ErrConflict, Message: message}
}
