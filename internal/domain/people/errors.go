package people

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError rejects a scalar input before an aggregate exists.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: strings.TrimSpace(reason)}
}

// AsValidationError unwraps err into a *ValidationError when it carries one.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// WithField relabels a validation error, e.g. a Cpf used as the legal
// representative's document. Other errors are returned unchanged.
func WithField(err error, field string) error {
	vErr, ok := AsValidationError(err)
	if !ok {
		return err
	}
	return &ValidationError{Field: field, Reason: vErr.Reason}
}
