package storage

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeExtensionNotAllowed ErrorCode = "extension_not_allowed"
	CodeTooLarge            ErrorCode = "too_large"
	CodeEmpty               ErrorCode = "empty"
	CodeInvalidPath         ErrorCode = "invalid_path"
	CodeNotFound            ErrorCode = "not_found"
	CodeIO                  ErrorCode = "io"
)

// Error is returned for every rejected or failed save.
type Error struct {
	Code   ErrorCode
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("storage %s: %s: %v", e.Code, e.Detail, e.Cause)
	}
	return fmt.Sprintf("storage %s: %s", e.Code, e.Detail)
}

func (e *Error) Unwrap() error { return e.Cause }

func CodeOf(err error) ErrorCode {
	var sErr *Error
	if errors.As(err, &sErr) {
		return sErr.Code
	}
	return ""
}

// IsRejected reports whether err is a policy rejection rather than an I/O fault.
func IsRejected(err error) bool {
	switch CodeOf(err) {
	case CodeExtensionNotAllowed, CodeTooLarge, CodeEmpty, CodeInvalidPath:
		return true
	default:
		return false
	}
}

func ioError(detail string, cause error) error {
	return &Error{Code: CodeIO, Detail: detail, Cause: cause}
}
