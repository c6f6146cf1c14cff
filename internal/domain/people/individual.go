package people

import (
	"strings"
	"time"
)

type IndividualParams struct {
	FullName  string
	Cpf       Cpf
	BirthDate time.Time
	Gender    Gender
	Email     EmailAddress
	Phone     PhoneNumber
	Address   Address
}

type Individual struct {
	contact
	fullName  string
	cpf       Cpf
	birthDate time.Time
	gender    Gender
	photoPath *string
}

var _ Person = (*Individual)(nil)

func NewIndividual(p IndividualParams) (*Individual, error) {
	name := strings.TrimSpace(p.FullName)
	if name == "" {
		return nil, invalid("full_name", "is required")
	}
	if p.Cpf.IsZero() {
		return nil, invalid("cpf", "is required")
	}
	if p.BirthDate.IsZero() {
		return nil, invalid("birth_date", "is required")
	}
	gender := p.Gender
	if gender == "" {
		gender = GenderUnspecified
	}
	c, err := newContact(p.Email, p.Phone, p.Address)
	if err != nil {
		return nil, err
	}
	return &Individual{
		contact:   c,
		fullName:  name,
		cpf:       p.Cpf,
		birthDate: p.BirthDate,
		gender:    gender,
	}, nil
}

func (i *Individual) Kind() Kind           { return KindIndividual }
func (i *Individual) DisplayName() string  { return i.fullName }
func (i *Individual) FullName() string     { return i.fullName }
func (i *Individual) Cpf() Cpf             { return i.cpf }
func (i *Individual) BirthDate() time.Time { return i.birthDate }
func (i *Individual) Gender() Gender       { return i.gender }
func (i *Individual) PhotoPath() *string   { return copyString(i.photoPath) }

// UpdatePhoto replaces the photo path; nil clears it.
func (i *Individual) UpdatePhoto(path *string) error {
	p, err := checkPath("photo_path", path)
	if err != nil {
		return err
	}
	i.photoPath = p
	i.modified = true
	return nil
}

type IndividualSnapshot struct {
	ContactSnapshot
	FullName  string
	Cpf       string
	BirthDate time.Time
	Gender    Gender
	PhotoPath *string
}

func (i *Individual) Snapshot() IndividualSnapshot {
	return IndividualSnapshot{
		ContactSnapshot: i.snapshot(),
		FullName:        i.fullName,
		Cpf:             i.cpf.digits,
		BirthDate:       i.birthDate,
		Gender:          i.gender,
		PhotoPath:       copyString(i.photoPath),
	}
}

// RestoreIndividual rehydrates a stored individual.
func RestoreIndividual(s IndividualSnapshot) *Individual {
	return &Individual{
		contact:   restoreContact(s.ContactSnapshot),
		fullName:  s.FullName,
		cpf:       Cpf{digits: s.Cpf},
		birthDate: s.BirthDate,
		gender:    s.Gender,
		photoPath: copyString(s.PhotoPath),
	}
}
