package draft

import (
	"database/sql"
	"errors"
	"fmt"
)

// Kind classifies engine errors. All kinds are terminal: the engine never
// retries them, and callers decide whether to refetch state or surface a
// permanent failure.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindState        Kind = "STATE"
	KindTurn         Kind = "TURN"
	KindAvailability Kind = "AVAILABILITY"
	KindLimit        Kind = "LIMIT"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
)

// Error is a typed engine error carrying a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func NewStateError(msg string) *Error        { return &Error{Kind: KindState, Message: msg} }
func NewTurnError(msg string) *Error         { return &Error{Kind: KindTurn, Message: msg} }
func NewAvailabilityError(msg string) *Error { return &Error{Kind: KindAvailability, Message: msg} }
func NewLimitError(msg string) *Error        { return &Error{Kind: KindLimit, Message: msg} }
func NewNotFoundError(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func NewConflictError(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }

// KindOf returns the Kind of err when it is (or wraps) an engine Error, or ""
// for infrastructure errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsConflict reports whether err is a lost conditional write.
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

// isTerminal reports whether err belongs to the engine taxonomy. Anything
// else is treated as a transient infrastructure failure and may be retried.
func isTerminal(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// wrapNotFound converts a repository miss into a NotFoundError. Other load
// failures stay transient so the retry loop can have another go at them.
func wrapNotFound(what string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFoundError(fmt.Sprintf("%s not found", what))
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
