package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a failure independently of where it happened.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodeStorageRejected    ErrorCode = "storage_rejected"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// Error is the failure type returned across the aggregate boundary. Field
// names the offending attribute when one is known, e.g. "cpf" on a
// uniqueness conflict.
type Error struct {
	Code    ErrorCode
	Op      string
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
	}
	if e.Message != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Message)
	}
	if b.Len() == 0 {
		return string(e.Code)
	}
	return fmt.Sprintf("%s (%s)", b.String(), e.Code)
}

func (e *Error) Unwrap() error { return e.Cause }

func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates err with a code, keeping it reachable through errors.As.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// Conflict reports a uniqueness collision on field, e.g. a duplicate CPF.
func Conflict(op, field, message string, cause error) error {
	return &Error{
		Code:    CodeConflict,
		Op:      strings.TrimSpace(op),
		Field:   strings.TrimSpace(field),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

func NotFound(op, message string) error {
	return NewError(CodeNotFound, op, message, nil)
}

func as(err error) *Error {
	var aggErr *Error
	if errors.As(err, &aggErr) {
		return aggErr
	}
	return nil
}

func IsCode(err error, code ErrorCode) bool {
	e := as(err)
	return e != nil && e.Code == code
}

func CodeOf(err error) ErrorCode {
	if e := as(err); e != nil {
		return e.Code
	}
	return ""
}

// FieldOf returns the outermost non-empty Field in the chain.
func FieldOf(err error) string {
	for err != nil {
		var aggErr *Error
		if !errors.As(err, &aggErr) {
			return ""
		}
		if aggErr.Field != "" {
			return aggErr.Field
		}
		err = aggErr.Cause
	}
	return ""
}

// MessageOf returns the outermost aggregate message, or "".
func MessageOf(err error) string {
	if e := as(err); e != nil {
		return e.Message
	}
	return ""
}
