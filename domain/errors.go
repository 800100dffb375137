package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrCodeInvalid     ErrorCode = "INVALID"
	ErrCodeInternal    ErrorCode = "INTERNAL"
	ErrCodeInvalidCode ErrorCode = "INVALID_CODE"
	ErrCodeNotVerified ErrorCode = "NOT_VERIFIED"
	ErrCodeNoIdentity  ErrorCode = "NO_IDENTITY"
	ErrCodeInvalidTier ErrorCode = "INVALID_TIER"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is a domain error carrying the same code, so a
// wrapped error still matches its sentinel through errors.Is.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.Code == t.Code
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Session lifecycle errors. Every session operation fails with at most one of these.
var (
	ErrInvalidCode = NewError(ErrCodeInvalidCode, "verification code does not match")
	ErrNotVerified = NewError(ErrCodeNotVerified, "identity is not verified")
	ErrNoIdentity  = NewError(ErrCodeNoIdentity, "no identity in session")
	ErrInvalidTier = NewError(ErrCodeInvalidTier, "unknown plan tier")
)

// Storage errors.
var (
	ErrKeyNotFound    = NewError(ErrCodeNotFound, "key not found")
	ErrInvalidPayload = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost domain error in err's chain, or
// ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}
