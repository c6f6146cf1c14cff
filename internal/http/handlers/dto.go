package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/yungbote/people-backend/internal/domain/people"
	"github.com/yungbote/people-backend/internal/platform/apierr"
	"github.com/yungbote/people-backend/internal/services"
)

const dateLayout = "2006-01-02"

const (
	maxNameLen         = 200
	maxEmailLen        = 255
	maxPhoneLen        = 32
	maxStreetLen       = 120
	maxNumberLen       = 15
	maxComplementLen   = 60
	maxDistrictLen     = 80
	maxCityLen         = 80
	maxStateLen        = 40
	maxZipLen          = 20
	maxCountryLen      = 60
	maxRegistrationLen = 40
)

type AddressDTO struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
	Country    string `json:"country"`
}

func (a AddressDTO) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Street, validation.RuneLength(0, maxStreetLen)),
		validation.Field(&a.Number, validation.RuneLength(0, maxNumberLen)),
		validation.Field(&a.Complement, validation.RuneLength(0, maxComplementLen)),
		validation.Field(&a.District, validation.RuneLength(0, maxDistrictLen)),
		validation.Field(&a.City, validation.RuneLength(0, maxCityLen)),
		validation.Field(&a.State, validation.RuneLength(0, maxStateLen)),
		validation.Field(&a.Zip, validation.RuneLength(0, maxZipLen)),
		validation.Field(&a.Country, validation.RuneLength(0, maxCountryLen)),
	)
}

func (a AddressDTO) parts() people.AddressParts {
	return people.AddressParts{
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		Zip:        a.Zip,
		Country:    a.Country,
	}
}

func addressDTO(a people.Address) AddressDTO {
	p := a.Parts()
	return AddressDTO{
		Street:     p.Street,
		Number:     p.Number,
		Complement: p.Complement,
		District:   p.District,
		City:       p.City,
		State:      p.State,
		Zip:        p.Zip,
		Country:    p.Country,
	}
}

type CreateIndividualRequest struct {
	FullName  string     `json:"full_name"`
	Cpf       string     `json:"cpf"`
	BirthDate string     `json:"birth_date"`
	Gender    string     `json:"gender"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Address   AddressDTO `json:"address"`
}

func (r CreateIndividualRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.RuneLength(0, maxNameLen)),
		validation.Field(&r.Cpf, validation.RuneLength(0, 14)),
		validation.Field(&r.BirthDate, validation.Date(dateLayout).Error("must be a date in YYYY-MM-DD format")),
		validation.Field(&r.Email, validation.RuneLength(0, maxEmailLen)),
		validation.Field(&r.Phone, validation.RuneLength(0, maxPhoneLen)),
		validation.Field(&r.Address),
	)
}

func (r CreateIndividualRequest) toInput() (services.CreateIndividualInput, error) {
	if err := r.Validate(); err != nil {
		return services.CreateIndividualInput{}, validationFailure(err)
	}
	var birth time.Time
	if s := strings.TrimSpace(r.BirthDate); s != "" {
		birth, _ = time.Parse(dateLayout, s)
	}
	return services.CreateIndividualInput{
		FullName:  r.FullName,
		Cpf:       r.Cpf,
		BirthDate: birth,
		Gender:    r.Gender,
		ContactInput: services.ContactInput{
			Email:   r.Email,
			Phone:   r.Phone,
			Address: r.Address.parts(),
		},
	}, nil
}

type CreateLegalEntityRequest struct {
	CorporateName           string     `json:"corporate_name"`
	TradeName               string     `json:"trade_name"`
	Cnpj                    string     `json:"cnpj"`
	StateRegistration       *string    `json:"state_registration"`
	MunicipalRegistration   *string    `json:"municipal_registration"`
	LegalRepresentativeName string     `json:"legal_representative_name"`
	LegalRepresentativeCpf  string     `json:"legal_representative_cpf"`
	Email                   string     `json:"email"`
	Phone                   string     `json:"phone"`
	Address                 AddressDTO `json:"address"`
}

func (r CreateLegalEntityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CorporateName, validation.RuneLength(0, maxNameLen)),
		validation.Field(&r.TradeName, validation.RuneLength(0, maxNameLen)),
		validation.Field(&r.Cnpj, validation.RuneLength(0, 18)),
		validation.Field(&r.StateRegistration, validation.RuneLength(0, maxRegistrationLen)),
		validation.Field(&r.MunicipalRegistration, validation.RuneLength(0, maxRegistrationLen)),
		validation.Field(&r.LegalRepresentativeName, validation.RuneLength(0, maxNameLen)),
		validation.Field(&r.LegalRepresentativeCpf, validation.RuneLength(0, 14)),
		validation.Field(&r.Email, validation.RuneLength(0, maxEmailLen)),
		validation.Field(&r.Phone, validation.RuneLength(0, maxPhoneLen)),
		validation.Field(&r.Address),
	)
}

func (r CreateLegalEntityRequest) toInput() (services.CreateLegalEntityInput, error) {
	if err := r.Validate(); err != nil {
		return services.CreateLegalEntityInput{}, validationFailure(err)
	}
	return services.CreateLegalEntityInput{
		CorporateName:           r.CorporateName,
		TradeName:               r.TradeName,
		Cnpj:                    r.Cnpj,
		StateRegistration:       r.StateRegistration,
		MunicipalRegistration:   r.MunicipalRegistration,
		LegalRepresentativeName: r.LegalRepresentativeName,
		LegalRepresentativeCpf:  r.LegalRepresentativeCpf,
		ContactInput: services.ContactInput{
			Email:   r.Email,
			Phone:   r.Phone,
			Address: r.Address.parts(),
		},
	}, nil
}

// validationFailure reports the first failing field (in name order) with a
// dotted path for nested structs, e.g. "address.street".
func validationFailure(err error) error {
	field, msg := firstFieldError("", err)
	return apierr.NewField(http.StatusBadRequest, "validation_failed", field, errors.New(msg))
}

func firstFieldError(prefix string, err error) (string, string) {
	var errs validation.Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return prefix, err.Error()
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	name := keys[0]
	if prefix != "" {
		name = prefix + "." + name
	}
	return firstFieldError(name, errs[keys[0]])
}

type PersonSummary struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
}

type IndividualResponse struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	DisplayName string     `json:"display_name"`
	FullName    string     `json:"full_name"`
	Cpf         string     `json:"cpf"`
	BirthDate   string     `json:"birth_date"`
	Gender      string     `json:"gender"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Address     AddressDTO `json:"address"`
	PhotoPath   *string    `json:"photo_path"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type LegalEntityResponse struct {
	ID                      string     `json:"id"`
	Kind                    string     `json:"kind"`
	DisplayName             string     `json:"display_name"`
	CorporateName           string     `json:"corporate_name"`
	TradeName               string     `json:"trade_name"`
	Cnpj                    string     `json:"cnpj"`
	StateRegistration       *string    `json:"state_registration"`
	MunicipalRegistration   *string    `json:"municipal_registration"`
	LegalRepresentativeName string     `json:"legal_representative_name"`
	LegalRepresentativeCpf  string     `json:"legal_representative_cpf"`
	Email                   string     `json:"email"`
	Phone                   string     `json:"phone"`
	Address                 AddressDTO `json:"address"`
	LogoPath                *string    `json:"logo_path"`
	LogoURL                 string     `json:"logo_url,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

func individualResponse(ind *people.Individual, fileURL func(string) string) IndividualResponse {
	out := IndividualResponse{
		ID:          ind.ID().String(),
		Kind:        string(ind.Kind()),
		DisplayName: ind.DisplayName(),
		FullName:    ind.FullName(),
		Cpf:         ind.Cpf().String(),
		BirthDate:   ind.BirthDate().Format(dateLayout),
		Gender:      string(ind.Gender()),
		Email:       ind.Email().String(),
		Phone:       ind.Phone().String(),
		Address:     addressDTO(ind.Address()),
		PhotoPath:   ind.PhotoPath(),
		CreatedAt:   ind.CreatedAt(),
		UpdatedAt:   ind.UpdatedAt(),
	}
	if out.PhotoPath != nil {
		out.PhotoURL = fileURL(*out.PhotoPath)
	}
	return out
}

func legalEntityResponse(le *people.LegalEntity, fileURL func(string) string) LegalEntityResponse {
	out := LegalEntityResponse{
		ID:                      le.ID().String(),
		Kind:                    string(le.Kind()),
		DisplayName:             le.DisplayName(),
		CorporateName:           le.CorporateName(),
		TradeName:               le.TradeName(),
		Cnpj:                    le.Cnpj().String(),
		StateRegistration:       le.StateRegistration(),
		MunicipalRegistration:   le.MunicipalRegistration(),
		LegalRepresentativeName: le.LegalRepresentativeName(),
		LegalRepresentativeCpf:  le.LegalRepresentativeCpf().String(),
		Email:                   le.Email().String(),
		Phone:                   le.Phone().String(),
		Address:                 addressDTO(le.Address()),
		LogoPath:                le.LogoPath(),
		CreatedAt:               le.CreatedAt(),
		UpdatedAt:               le.UpdatedAt(),
	}
	if out.LogoPath != nil {
		out.LogoURL = fileURL(*out.LogoPath)
	}
	return out
}
