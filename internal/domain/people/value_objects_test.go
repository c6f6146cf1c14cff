package people

import "testing"

func TestNewCpf_EqualAcrossFormatting(t *testing.T) {
	a, err := NewCpf("123.456.789-09")
	if err != nil {
		t.Fatalf("NewCpf punctuated: %v", err)
	}
	b, err := NewCpf("12345678909")
	if err != nil {
		t.Fatalf("NewCpf digits: %v", err)
	}
	if a != b {
		t.Fatalf("want equal cpfs, got %q and %q", a, b)
	}
	if a.String() != "12345678909" {
		t.Fatalf("String: want=%q got=%q", "12345678909", a.String())
	}
}

func TestNewCpf_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "111.111.111-11", "123.456.789-00"} {
		_, err := NewCpf(in)
		vErr, ok := AsValidationError(err)
		if !ok {
			t.Fatalf("NewCpf(%q): want ValidationError got %v", in, err)
		}
		if vErr.Field != "cpf" {
			t.Fatalf("NewCpf(%q) field: want=%q got=%q", in, "cpf", vErr.Field)
		}
	}
}

func TestNewCnpj(t *testing.T) {
	c, err := NewCnpj("12.345.678/0001-95")
	if err != nil {
		t.Fatalf("NewCnpj: %v", err)
	}
	if c.String() != "12345678000195" {
		t.Fatalf("String: want=%q got=%q", "12345678000195", c.String())
	}
	if _, err := NewCnpj("12.345.678/0001-90"); err == nil {
		t.Fatalf("NewCnpj: want error for bad check digit")
	}
}

func TestEmailAddress_CaseInsensitiveEquality(t *testing.T) {
	upper, err := NewEmailAddress("A@b.com")
	if err != nil {
		t.Fatalf("NewEmailAddress: %v", err)
	}
	lower, err := NewEmailAddress("  a@b.com ")
	if err != nil {
		t.Fatalf("NewEmailAddress: %v", err)
	}
	if !upper.Equal(lower) {
		t.Fatalf("want %q equal to %q", upper, lower)
	}
	if upper.String() != "A@b.com" || lower.String() != "a@b.com" {
		t.Fatalf("values: got %q and %q", upper.String(), lower.String())
	}
}

func TestEmailAddress_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "no-at-sign", "@b.com", "a@"} {
		_, err := NewEmailAddress(in)
		vErr, ok := AsValidationError(err)
		if !ok || vErr.Field != "email" {
			t.Fatalf("NewEmailAddress(%q): want email ValidationError got %v", in, err)
		}
	}
}

func TestPhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"+55 (61) 99999-0001", "+5561999990001", true},
		{"(61) 3333-4444", "6133334444", true},
		{"55+61", "5561", true},
		{" + 1 ", "+1", true},
		{"+", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		p, err := NewPhoneNumber(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("NewPhoneNumber(%q): want ok=%v got err=%v", tc.in, tc.ok, err)
		}
		if tc.ok && p.String() != tc.want {
			t.Fatalf("NewPhoneNumber(%q): want=%q got=%q", tc.in, tc.want, p.String())
		}
	}
}

func validParts() AddressParts {
	return AddressParts{
		Street:   "Rua A",
		Number:   "10",
		District: "Centro",
		City:     "Brasília",
		State:    "DF",
		Zip:      "70000-000",
		Country:  "Brasil",
	}
}

func TestAddress_StructuralEquality(t *testing.T) {
	a, err := NewAddress(validParts())
	if err != nil {
		t.Fatalf("NewAddress: %v", err)
	}
	b, _ := NewAddress(validParts())
	if a != b {
		t.Fatalf("want equal addresses")
	}
	withComplement := validParts()
	withComplement.Complement = "Sala 3"
	c, _ := NewAddress(withComplement)
	if a == c {
		t.Fatalf("want complement to break equality")
	}
	if got, ok := c.Complement(); !ok || got != "Sala 3" {
		t.Fatalf("Complement: want=%q got=%q ok=%v", "Sala 3", got, ok)
	}
	if _, ok := a.Complement(); ok {
		t.Fatalf("Complement: want none")
	}
}

func TestAddress_RequiredFields(t *testing.T) {
	blank := map[string]func(*AddressParts){
		"address.street":   func(p *AddressParts) { p.Street = "" },
		"address.number":   func(p *AddressParts) { p.Number = " " },
		"address.district": func(p *AddressParts) { p.District = "" },
		"address.city":     func(p *AddressParts) { p.City = "  " },
		"address.state":    func(p *AddressParts) { p.State = "" },
		"address.zip":      func(p *AddressParts) { p.Zip = "\t" },
		"address.country":  func(p *AddressParts) { p.Country = "" },
	}
	for field, clear := range blank {
		p := validParts()
		clear(&p)
		_, err := NewAddress(p)
		vErr, ok := AsValidationError(err)
		if !ok || vErr.Field != field || vErr.Reason != "is required" {
			t.Fatalf("%s: want required ValidationError, got %v", field, err)
		}
	}

	p := validParts()
	p.Country, p.Number, p.City = "", "", ""
	_, err := NewAddress(p)
	if vErr, ok := AsValidationError(err); !ok || vErr.Field != "address.number" {
		t.Fatalf("several blanks: want address.number first, got %v", err)
	}

	p = validParts()
	p.Complement = ""
	if _, err := NewAddress(p); err != nil {
		t.Fatalf("complement is optional: %v", err)
	}
}

func TestParseGender(t *testing.T) {
	if g, err := ParseGender(" Female "); err != nil || g != GenderFemale {
		t.Fatalf("ParseGender: want=%q got=%q err=%v", GenderFemale, g, err)
	}
	if g, _ := ParseGender(""); g != GenderUnspecified {
		t.Fatalf("ParseGender blank: want=%q got=%q", GenderUnspecified, g)
	}
	if _, err := ParseGender("robot"); err == nil {
		t.Fatalf("ParseGender: want error")
	}
}

func TestWithField(t *testing.T) {
	_, err := NewCpf("1")
	err = WithField(err, "legal_representative_cpf")
	vErr, ok := AsValidationError(err)
	if !ok || vErr.Field != "legal_representative_cpf" {
		t.Fatalf("WithField: got %v", err)
	}
}
