package people

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AddressParts is the raw input for NewAddress.
type AddressParts struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
	Country    string `json:"country"`
}

// addressFieldOrder decides which failure is reported when several
// required fields are blank.
var addressFieldOrder = []string{"street", "number", "district", "city", "state", "zip", "country"}

func (p *AddressParts) validate() error {
	required := validation.Required.Error("is required")
	return validation.ValidateStruct(p,
		validation.Field(&p.Street, required),
		validation.Field(&p.Number, required),
		validation.Field(&p.District, required),
		validation.Field(&p.City, required),
		validation.Field(&p.State, required),
		validation.Field(&p.Zip, required),
		validation.Field(&p.Country, required),
	)
}

// Address compares structurally; the zero Complement means none was given.
type Address struct {
	street     string
	number     string
	complement string
	district   string
	city       string
	state      string
	zip        string
	country    string
}

func NewAddress(p AddressParts) (Address, error) {
	in := AddressParts{
		Street:     strings.TrimSpace(p.Street),
		Number:     strings.TrimSpace(p.Number),
		Complement: strings.TrimSpace(p.Complement),
		District:   strings.TrimSpace(p.District),
		City:       strings.TrimSpace(p.City),
		State:      strings.TrimSpace(p.State),
		Zip:        strings.TrimSpace(p.Zip),
		Country:    strings.TrimSpace(p.Country),
	}
	if err := in.validate(); err != nil {
		var errs validation.Errors
		if errors.As(err, &errs) {
			for _, field := range addressFieldOrder {
				if fieldErr, ok := errs[field]; ok {
					return Address{}, invalid("address."+field, fieldErr.Error())
				}
			}
		}
		return Address{}, invalid("address", err.Error())
	}
	return Address{
		street:     in.Street,
		number:     in.Number,
		complement: in.Complement,
		district:   in.District,
		city:       in.City,
		state:      in.State,
		zip:        in.Zip,
		country:    in.Country,
	}, nil
}

func (a Address) Street() string   { return a.street }
func (a Address) Number() string   { return a.number }
func (a Address) District() string { return a.district }
func (a Address) City() string     { return a.city }
func (a Address) State() string    { return a.state }
func (a Address) Zip() string      { return a.zip }
func (a Address) Country() string  { return a.country }

// Complement returns the complement and whether one was provided.
func (a Address) Complement() (string, bool) { return a.complement, a.complement != "" }

func (a Address) Parts() AddressParts {
	return AddressParts{
		Street:     a.street,
		Number:     a.number,
		Complement: a.complement,
		District:   a.district,
		City:       a.city,
		State:      a.state,
		Zip:        a.zip,
		Country:    a.country,
	}
}

func (a Address) IsZero() bool { return a == Address{} }
