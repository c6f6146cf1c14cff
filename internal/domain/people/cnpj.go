package people

const cnpjLength = 14

// Cnpj is an organization's national identity number, stored as 14 digits.
type Cnpj struct {
	digits string
}

func NormalizeCnpj(raw string) string { return digitsOnly(raw) }

// IsValidCnpj reports whether digits is a 14-digit, checksum-valid CNPJ.
func IsValidCnpj(digits string) bool {
	return validChecksum(digits, cnpjLength, cnpjFirstWeights, cnpjSecondWeights)
}

func NewCnpj(raw string) (Cnpj, error) {
	digits := NormalizeCnpj(raw)
	if digits == "" {
		return Cnpj{}, invalid("cnpj", "is required")
	}
	if !IsValidCnpj(digits) {
		return Cnpj{}, invalid("cnpj", "invalid CNPJ")
	}
	return Cnpj{digits: digits}, nil
}

func (c Cnpj) String() string { return c.digits }

func (c Cnpj) IsZero() bool { return c.digits == "" }
