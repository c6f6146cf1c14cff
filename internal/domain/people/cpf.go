package people

const cpfLength = 11

// Cpf is an individual's national identity number, stored as 11 digits.
type Cpf struct {
	digits string
}

// NormalizeCpf strips everything but ASCII digits.
func NormalizeCpf(raw string) string { return digitsOnly(raw) }

// IsValidCpf reports whether digits is an 11-digit, checksum-valid CPF.
// Punctuated input is not accepted; normalize first.
func IsValidCpf(digits string) bool {
	return validChecksum(digits, cpfLength, cpfFirstWeights, cpfSecondWeights)
}

func NewCpf(raw string) (Cpf, error) {
	digits := NormalizeCpf(raw)
	if digits == "" {
		return Cpf{}, invalid("cpf", "is required")
	}
	if !IsValidCpf(digits) {
		return Cpf{}, invalid("cpf", "invalid CPF")
	}
	return Cpf{digits: digits}, nil
}

func (c Cpf) String() string { return c.digits }

func (c Cpf) IsZero() bool { return c.digits == "" }
