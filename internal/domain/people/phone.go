package people

import "strings"

// PhoneNumber holds digits with an optional leading '+'.
type PhoneNumber struct {
	value string
}

// NormalizePhone drops everything except digits and keeps a '+' only when
// it is the first retained character.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '+' && b.Len() == 0:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func NewPhoneNumber(raw string) (PhoneNumber, error) {
	v := NormalizePhone(raw)
	if strings.TrimPrefix(v, "+") == "" {
		return PhoneNumber{}, invalid("phone", "is required")
	}
	return PhoneNumber{value: v}, nil
}

func (p PhoneNumber) String() string { return p.value }

func (p PhoneNumber) IsZero() bool { return p.value == "" }
