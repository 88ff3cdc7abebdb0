package models

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors. Services return these (possibly wrapped); controllers map
// them onto the response envelope. Store and credential failures are wrapped
// as opaque internal errors and never cross the boundary verbatim.
var (
	// ErrNotFound covers both "absent" and "exists but inaccessible" so that
	// responses never leak whether a document exists.
	ErrNotFound = errors.New("not found")

	// ErrNotMember means the acting user has no membership in the event.
	// Surfaced the same way as ErrNotFound.
	ErrNotMember = errors.New("not a member of this event")

	// ErrForbidden is an authorization failure from the access gate or the
	// membership state machine.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict covers duplicate unique keys.
	ErrConflict = errors.New("conflict")

	// ErrDuplicateEmail means the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrCodeSpaceExhausted means invite-code generation hit its retry cap
	// without finding an unused code.
	ErrCodeSpaceExhausted = errors.New("invite code space exhausted")

	// ErrIndexOutOfRange means an index-addressed guest or expense lookup
	// pointed outside the list at mutation time.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrStaleIndex means the row an index pointed at disappeared between a
	// version conflict and the retry; the operation refuses to touch
	// whatever row now sits at that position.
	ErrStaleIndex = errors.New("stale index: the targeted entry no longer exists")

	// ErrVersionConflict is returned by the store when the document revision
	// advanced between read and write.
	ErrVersionConflict = errors.New("version conflict")

	// ErrConcurrency means the optimistic retry budget was exhausted. Safe
	// for the caller to retry.
	ErrConcurrency = errors.New("too many concurrent updates, please retry")
)

// FieldError is a field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError carries one or more field-level failures.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Invalid builds a single-field ValidationError.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: fmt.Sprintf(format, args...)}}}
}
