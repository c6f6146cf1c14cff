package people

import "strings"

type Gender string

const (
	GenderUnspecified Gender = "unspecified"
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderOther       Gender = "other"
)

// ParseGender accepts the enum names case-insensitively; blank means unspecified.
func ParseGender(raw string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(raw))); g {
	case "":
		return GenderUnspecified, nil
	case GenderUnspecified, GenderFemale, GenderMale, GenderOther:
		return g, nil
	default:
		return "", invalid("gender", "must be one of female, male, other, unspecified")
	}
}
