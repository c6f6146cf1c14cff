package people

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// EmailAddress keeps the caller's casing but compares case-insensitively.
type EmailAddress struct {
	value string
}

func NewEmailAddress(raw string) (EmailAddress, error) {
	v := strings.TrimSpace(raw)
	if err := validation.Validate(v,
		validation.Required.Error("is required"),
		is.EmailFormat.Error("must be a valid email address"),
	); err != nil {
		return EmailAddress{}, invalid("email", err.Error())
	}
	return EmailAddress{value: v}, nil
}

func (e EmailAddress) String() string { return e.value }

// Equal compares the whole address ignoring case.
func (e EmailAddress) Equal(other EmailAddress) bool {
	return strings.EqualFold(e.value, other.value)
}

func (e EmailAddress) IsZero() bool { return e.value == "" }
