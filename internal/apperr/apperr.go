package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies business errors so the HTTP boundary can map them to a
// status code without inspecting message text.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindAccessDenied
	KindSignature
	KindAlreadySettled
	KindGateway
	KindConfiguration
)

// Error is the structured error carried across service boundaries.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidation reports malformed or unacceptable input.
func NewValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NewNotFound reports a missing entity.
func NewNotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// NewAccessDenied reports an authorization failure.
func NewAccessDenied(format string, args ...any) *Error {
	return &Error{Kind: KindAccessDenied, Msg: fmt.Sprintf(format, args...)}
}

// NewSignature reports a gateway authenticity failure. The message must never
// include key material.
func NewSignature(format string, args ...any) *Error {
	return &Error{Kind: KindSignature, Msg: fmt.Sprintf(format, args...)}
}

// NewAlreadySettled reports that a payment has already reached its terminal
// SUCCESS state. Callers treat it as an idempotent success, not a failure.
func NewAlreadySettled(format string, args ...any) *Error {
	return &Error{Kind: KindAlreadySettled, Msg: fmt.Sprintf(format, args...)}
}

// NewGateway wraps a failure of the external payment gateway.
func NewGateway(msg string, cause error) *Error {
	return &Error{Kind: KindGateway, Msg: msg, Cause: cause}
}

// NewConfiguration reports a broken deployment invariant, such as a missing or
// ambiguous platform admin account.
func NewConfiguration(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err (or anything it wraps) is an *Error of the given
// kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
