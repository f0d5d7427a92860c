package platform

import (
	"errors"
	"fmt"
)

// Error represents a structured platform error with enough context to log
// and to compare by category via errors.Is.
type Error struct {
	Op    string    // operation that failed (e.g. "compressor.start", "transfer-gate")
	Code  ErrorCode // high-level error category
	Msg   string    // human-readable message
	Inner error     // wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Op != "" {
		return fmt.Sprintf("platform: %s: %s", e.Op, msg)
	}
	return fmt.Sprintf("platform: %s", msg)
}

// Unwrap returns the wrapped error for errors.Is/As support
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is provides errors.Is support against a bare ErrorCode or another *Error
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if code, ok := target.(ErrorCode); ok {
		return e.Code == code
	}
	var te *Error
	if errors.As(target, &te) {
		return e.Code == te.Code
	}
	return false
}

// ErrorCode represents high-level error categories.
type ErrorCode string

func (c ErrorCode) Error() string { return string(c) }

const (
	ErrAddressUnresolved  ErrorCode = "address-unresolved"
	ErrRemoteDeliveryFail ErrorCode = "remote-delivery-failed"
	ErrIO                 ErrorCode = "io-failed"

	// Transfer-gate rejection classes.
	ErrKeyMissing ErrorCode = "key-missing"
	ErrBadKey     ErrorCode = "bad-key"
	ErrDenied     ErrorCode = "denied"
	ErrNotFound   ErrorCode = "not-found"
)

// NewError creates a new structured error.
func NewError(op string, code ErrorCode, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// WrapError wraps an existing error with an operation and error code,
// preserving the original as Inner.
func WrapError(op string, code ErrorCode, inner error) *Error {
	if inner == nil {
		return nil
	}
	return &Error{Op: op, Code: code, Msg: inner.Error(), Inner: inner}
}

// IsCode reports whether err is a *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
