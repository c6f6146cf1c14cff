package person

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/people-backend/internal/domain/people"
)

// AddressColumns is embedded with an address_ prefix in both person tables.
type AddressColumns struct {
	Street     string `gorm:"column:street;size:120;not null" json:"street"`
	Number     string `gorm:"column:number;size:15;not null" json:"number"`
	Complement string `gorm:"column:complement;size:60;not null;default:''" json:"complement"`
	District   string `gorm:"column:district;size:80;not null" json:"district"`
	City       string `gorm:"column:city;size:80;not null" json:"city"`
	State      string `gorm:"column:state;size:40;not null" json:"state"`
	Zip        string `gorm:"column:zip;size:20;not null" json:"zip"`
	Country    string `gorm:"column:country;size:60;not null" json:"country"`
}

type IndividualRow struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string         `gorm:"column:full_name;size:200;not null;index" json:"full_name"`
	NameKey   string         `gorm:"column:name_key;size:200;not null;default:'';index" json:"-"`
	Cpf       string         `gorm:"column:cpf;size:11;not null;uniqueIndex:idx_individuals_cpf" json:"cpf"`
	BirthDate time.Time      `gorm:"column:birth_date;type:date;not null" json:"birth_date"`
	Gender    string         `gorm:"column:gender;size:16;not null" json:"gender"`
	PhotoPath *string        `gorm:"column:photo_path" json:"photo_path,omitempty"`
	Email     string         `gorm:"column:email;size:255;not null" json:"email"`
	Phone     string         `gorm:"column:phone;size:32;not null" json:"phone"`
	Address   AddressColumns `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updated_at"`
}

func (IndividualRow) TableName() string { return "individuals" }

type LegalEntityRow struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CorporateName           string         `gorm:"column:corporate_name;size:200;not null;index" json:"corporate_name"`
	TradeName               string         `gorm:"column:trade_name;size:200;not null;default:''" json:"trade_name"`
	CorporateNameKey        string         `gorm:"column:corporate_name_key;size:200;not null;default:'';index" json:"-"`
	TradeNameKey            string         `gorm:"column:trade_name_key;size:200;not null;default:'';index" json:"-"`
	Cnpj                    string         `gorm:"column:cnpj;size:14;not null;uniqueIndex:idx_legal_entities_cnpj" json:"cnpj"`
	StateRegistration       *string        `gorm:"column:state_registration;size:40" json:"state_registration,omitempty"`
	MunicipalRegistration   *string        `gorm:"column:municipal_registration;size:40" json:"municipal_registration,omitempty"`
	LegalRepresentativeName string         `gorm:"column:legal_representative_name;size:200;not null" json:"legal_representative_name"`
	LegalRepresentativeCpf  string         `gorm:"column:legal_representative_cpf;size:11;not null" json:"legal_representative_cpf"`
	LogoPath                *string        `gorm:"column:logo_path" json:"logo_path,omitempty"`
	Email                   string         `gorm:"column:email;size:255;not null" json:"email"`
	Phone                   string         `gorm:"column:phone;size:32;not null" json:"phone"`
	Address                 AddressColumns `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt               time.Time      `gorm:"column:created_at;not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt               time.Time      `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updated_at"`
}

func (LegalEntityRow) TableName() string { return "legal_entities" }

// searchKey folds a name for LIKE matching. SQLite's LOWER only folds ASCII,
// so names are folded here and both drivers compare the stored key.
func searchKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func addressColumns(p people.AddressParts) AddressColumns {
	return AddressColumns{
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

func (a AddressColumns) parts() people.AddressParts {
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

func contactSnapshot(id uuid.UUID, email, phone string, addr AddressColumns, createdAt, updatedAt time.Time) people.ContactSnapshot {
	return people.ContactSnapshot{
		ID:        id,
		Email:     email,
		Phone:     phone,
		Address:   addr.parts(),
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}
}

func individualRow(ind *people.Individual) *IndividualRow {
	s := ind.Snapshot()
	return &IndividualRow{
		ID:        s.ID,
		FullName:  s.FullName,
		NameKey:   searchKey(s.FullName),
		Cpf:       s.Cpf,
		BirthDate: s.BirthDate,
		Gender:    string(s.Gender),
		PhotoPath: s.PhotoPath,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   addressColumns(s.Address),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *IndividualRow) toDomain() *people.Individual {
	return people.RestoreIndividual(people.IndividualSnapshot{
		ContactSnapshot: contactSnapshot(r.ID, r.Email, r.Phone, r.Address, r.CreatedAt, r.UpdatedAt),
		FullName:        r.FullName,
		Cpf:             r.Cpf,
		BirthDate:       r.BirthDate.UTC(),
		Gender:          people.Gender(r.Gender),
		PhotoPath:       r.PhotoPath,
	})
}

func legalEntityRow(le *people.LegalEntity) *LegalEntityRow {
	s := le.Snapshot()
	return &LegalEntityRow{
		ID:                      s.ID,
		CorporateName:           s.CorporateName,
		TradeName:               s.TradeName,
		CorporateNameKey:        searchKey(s.CorporateName),
		TradeNameKey:            searchKey(s.TradeName),
		Cnpj:                    s.Cnpj,
		StateRegistration:       s.StateRegistration,
		MunicipalRegistration:   s.MunicipalRegistration,
		LegalRepresentativeName: s.LegalRepresentativeName,
		LegalRepresentativeCpf:  s.LegalRepresentativeCpf,
		LogoPath:                s.LogoPath,
		Email:                   s.Email,
		Phone:                   s.Phone,
		Address:                 addressColumns(s.Address),
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
	}
}

func (r *LegalEntityRow) toDomain() *people.LegalEntity {
	return people.RestoreLegalEntity(people.LegalEntitySnapshot{
		ContactSnapshot:         contactSnapshot(r.ID, r.Email, r.Phone, r.Address, r.CreatedAt, r.UpdatedAt),
		CorporateName:           r.CorporateName,
		TradeName:               r.TradeName,
		Cnpj:                    r.Cnpj,
		StateRegistration:       r.StateRegistration,
		MunicipalRegistration:   r.MunicipalRegistration,
		LegalRepresentativeName: r.LegalRepresentativeName,
		LegalRepresentativeCpf:  r.LegalRepresentativeCpf,
		LogoPath:                r.LogoPath,
	})
}
