package people

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

// referenceDigit recomputes a check digit straight from the weight formula.
func referenceDigit(digits []int, startWeight, wrapAt int) int {
	sum := 0
	w := startWeight
	for _, d := range digits {
		sum += d * w
		w--
		if w < 2 {
			w = wrapAt
		}
	}
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}

func toDigits(s string) []int {
	out := make([]int, len(s))
	for i := range s {
		out[i] = int(s[i] - '0')
	}
	return out
}

func allSame(s string) bool {
	return strings.Count(s, s[:1]) == len(s)
}

func TestIsValidCpf_MatchesReferenceOverGeneratedInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 3000; n++ {
		base := ""
		for i := 0; i < 9; i++ {
			base += strconv.Itoa(rng.Intn(10))
		}
		d := toDigits(base)
		d1 := referenceDigit(d, 10, 10)
		d2 := referenceDigit(append(d, d1), 11, 11)
		for suffix := 0; suffix < 100; suffix++ {
			candidate := base + strconv.Itoa(suffix/10) + strconv.Itoa(suffix%10)
			want := suffix == d1*10+d2 && !allSame(candidate)
			if got := IsValidCpf(candidate); got != want {
				t.Fatalf("IsValidCpf(%q): want=%v got=%v", candidate, want, got)
			}
		}
	}
}

func TestIsValidCnpj_MatchesReferenceOverGeneratedInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 3000; n++ {
		base := ""
		for i := 0; i < 12; i++ {
			base += strconv.Itoa(rng.Intn(10))
		}
		d := toDigits(base)
		d1 := referenceDigit(d, 5, 9)
		d2 := referenceDigit(append(d, d1), 6, 9)
		for suffix := 0; suffix < 100; suffix++ {
			candidate := base + strconv.Itoa(suffix/10) + strconv.Itoa(suffix%10)
			want := suffix == d1*10+d2 && !allSame(candidate)
			if got := IsValidCnpj(candidate); got != want {
				t.Fatalf("IsValidCnpj(%q): want=%v got=%v", candidate, want, got)
			}
		}
	}
}

func TestIsValidCpf_RejectsRepeatedDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		s := strings.Repeat(string(d), 11)
		if IsValidCpf(s) {
			t.Fatalf("IsValidCpf(%q): want=false got=true", s)
		}
		c := strings.Repeat(string(d), 14)
		if IsValidCnpj(c) {
			t.Fatalf("IsValidCnpj(%q): want=false got=true", c)
		}
	}
}

func TestIsValid_KnownValues(t *testing.T) {
	cases := []struct {
		name  string
		check func(string) bool
		in    string
		want  bool
	}{
		{"cpf ok", IsValidCpf, "11144477735", true},
		{"cpf ok 2", IsValidCpf, "12345678909", true},
		{"cpf ok 3", IsValidCpf, "98765432100", true},
		{"cpf bad digit", IsValidCpf, "11144477736", false},
		{"cpf punctuated", IsValidCpf, "111.444.777-35", false},
		{"cpf short", IsValidCpf, "1114447773", false},
		{"cpf long", IsValidCpf, "111444777350", false},
		{"cnpj ok", IsValidCnpj, "12345678000195", true},
		{"cnpj ok 2", IsValidCnpj, "00504288000131", true},
		{"cnpj bad digit", IsValidCnpj, "12345678000196", false},
		{"cnpj short", IsValidCnpj, "1234567800019", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.check(tc.in); got != tc.want {
				t.Fatalf("want=%v got=%v", tc.want, got)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "123.456.789-09", "12.345.678/0001-95", " a1b2c3 ", "٣٤٥", "+55 (61) 9999-0001"}
	for _, in := range inputs {
		once := NormalizeCpf(in)
		if twice := NormalizeCpf(once); twice != once {
			t.Fatalf("NormalizeCpf(%q): want=%q got=%q", in, once, twice)
		}
		once = NormalizeCnpj(in)
		if twice := NormalizeCnpj(once); twice != once {
			t.Fatalf("NormalizeCnpj(%q): want=%q got=%q", in, once, twice)
		}
	}
	if got := NormalizeCpf("123.456.789-09"); got != "12345678909" {
		t.Fatalf("NormalizeCpf: want=%q got=%q", "12345678909", got)
	}
}
