package testutil

import (
	"testing"
	"time"

	"github.com/yungbote/people-backend/internal/domain/people"
)

// Known-valid identity numbers.
const (
	CpfMaria  = "11144477735"
	CpfJoao   = "52998224725"
	CpfAna    = "39053344705"
	CpfElida  = "12345678909"
	CnpjAcme  = "11222333000181"
	CnpjBeta  = "45723174000110"
	CnpjGamma = "11222333000262"
)

func Address(tb testing.TB) people.Address {
	tb.Helper()
	addr, err := people.NewAddress(people.AddressParts{
		Street:   "Rua das Flores",
		Number:   "100",
		District: "Centro",
		City:     "São Paulo",
		State:    "SP",
		Zip:      "01001-000",
		Country:  "Brasil",
	})
	if err != nil {
		tb.Fatalf("address: %v", err)
	}
	return addr
}

func contact(tb testing.TB, email string) (people.EmailAddress, people.PhoneNumber) {
	tb.Helper()
	e, err := people.NewEmailAddress(email)
	if err != nil {
		tb.Fatalf("email: %v", err)
	}
	p, err := people.NewPhoneNumber("+55 (11) 91234-5678")
	if err != nil {
		tb.Fatalf("phone: %v", err)
	}
	return e, p
}

func NewIndividual(tb testing.TB, fullName, cpf string) *people.Individual {
	tb.Helper()
	c, err := people.NewCpf(cpf)
	if err != nil {
		tb.Fatalf("cpf %q: %v", cpf, err)
	}
	email, phone := contact(tb, "pessoa@example.com")
	ind, err := people.NewIndividual(people.IndividualParams{
		FullName:  fullName,
		Cpf:       c,
		BirthDate: time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC),
		Gender:    people.GenderFemale,
		Email:     email,
		Phone:     phone,
		Address:   Address(tb),
	})
	if err != nil {
		tb.Fatalf("individual: %v", err)
	}
	return ind
}

func NewLegalEntity(tb testing.TB, corporateName, tradeName, cnpj string) *people.LegalEntity {
	tb.Helper()
	c, err := people.NewCnpj(cnpj)
	if err != nil {
		tb.Fatalf("cnpj %q: %v", cnpj, err)
	}
	rep, err := people.NewCpf(CpfJoao)
	if err != nil {
		tb.Fatalf("representative cpf: %v", err)
	}
	email, phone := contact(tb, "contato@example.com")
	le, err := people.NewLegalEntity(people.LegalEntityParams{
		CorporateName:           corporateName,
		TradeName:               tradeName,
		Cnpj:                    c,
		LegalRepresentativeName: "João Souza",
		LegalRepresentativeCpf:  rep,
		Email:                   email,
		Phone:                   phone,
		Address:                 Address(tb),
	})
	if err != nil {
		tb.Fatalf("legal entity: %v", err)
	}
	return le
}
