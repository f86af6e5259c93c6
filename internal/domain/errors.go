package domain

import (
	"errors"
	"fmt"
)

// Kind discriminates the error taxonomy surfaced by the services.
// Authorization failures (wrong viewer, wrong decider, self-booking) are
// deliberately reported as KindNotFound, matching the uniform contract of
// the HTTP boundary.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindNotAvailable
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindNotAvailable:
		return "not_available"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is the tagged error carried from services to the boundary layer.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NotAvailable(format string, args ...any) *Error {
	return &Error{Kind: KindNotAvailable, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Kind == kind
}
