package people

import "strings"

type LegalEntityParams struct {
	CorporateName           string
	TradeName               string
	Cnpj                    Cnpj
	StateRegistration       *string
	MunicipalRegistration   *string
	LegalRepresentativeName string
	LegalRepresentativeCpf  Cpf
	Email                   EmailAddress
	Phone                   PhoneNumber
	Address                 Address
}

type LegalEntity struct {
	contact
	corporateName           string
	tradeName               string
	cnpj                    Cnpj
	stateRegistration       *string
	municipalRegistration   *string
	legalRepresentativeName string
	legalRepresentativeCpf  Cpf
	logoPath                *string
}

var _ Person = (*LegalEntity)(nil)

func NewLegalEntity(p LegalEntityParams) (*LegalEntity, error) {
	corporate := strings.TrimSpace(p.CorporateName)
	if corporate == "" {
		return nil, invalid("corporate_name", "is required")
	}
	if p.Cnpj.IsZero() {
		return nil, invalid("cnpj", "is required")
	}
	rep := strings.TrimSpace(p.LegalRepresentativeName)
	if rep == "" {
		return nil, invalid("legal_representative_name", "is required")
	}
	if p.LegalRepresentativeCpf.IsZero() {
		return nil, invalid("legal_representative_cpf", "is required")
	}
	c, err := newContact(p.Email, p.Phone, p.Address)
	if err != nil {
		return nil, err
	}
	return &LegalEntity{
		contact:                 c,
		corporateName:           corporate,
		tradeName:               strings.TrimSpace(p.TradeName),
		cnpj:                    p.Cnpj,
		stateRegistration:       optional(p.StateRegistration),
		municipalRegistration:   optional(p.MunicipalRegistration),
		legalRepresentativeName: rep,
		legalRepresentativeCpf:  p.LegalRepresentativeCpf,
	}, nil
}

func (l *LegalEntity) Kind() Kind { return KindLegalEntity }

// DisplayName is the trade name, falling back to the corporate name.
func (l *LegalEntity) DisplayName() string {
	if l.tradeName != "" {
		return l.tradeName
	}
	return l.corporateName
}

func (l *LegalEntity) CorporateName() string           { return l.corporateName }
func (l *LegalEntity) TradeName() string               { return l.tradeName }
func (l *LegalEntity) Cnpj() Cnpj                      { return l.cnpj }
func (l *LegalEntity) StateRegistration() *string      { return copyString(l.stateRegistration) }
func (l *LegalEntity) MunicipalRegistration() *string  { return copyString(l.municipalRegistration) }
func (l *LegalEntity) LegalRepresentativeName() string { return l.legalRepresentativeName }
func (l *LegalEntity) LegalRepresentativeCpf() Cpf     { return l.legalRepresentativeCpf }
func (l *LegalEntity) LogoPath() *string               { return copyString(l.logoPath) }

// UpdateLogo replaces the logo path; nil clears it.
func (l *LegalEntity) UpdateLogo(path *string) error {
	p, err := checkPath("logo_path", path)
	if err != nil {
		return err
	}
	l.logoPath = p
	l.modified = true
	return nil
}

type LegalEntitySnapshot struct {
	ContactSnapshot
	CorporateName           string
	TradeName               string
	Cnpj                    string
	StateRegistration       *string
	MunicipalRegistration   *string
	LegalRepresentativeName string
	LegalRepresentativeCpf  string
	LogoPath                *string
}

func (l *LegalEntity) Snapshot() LegalEntitySnapshot {
	return LegalEntitySnapshot{
		ContactSnapshot:         l.snapshot(),
		CorporateName:           l.corporateName,
		TradeName:               l.tradeName,
		Cnpj:                    l.cnpj.digits,
		StateRegistration:       copyString(l.stateRegistration),
		MunicipalRegistration:   copyString(l.municipalRegistration),
		LegalRepresentativeName: l.legalRepresentativeName,
		LegalRepresentativeCpf:  l.legalRepresentativeCpf.digits,
		LogoPath:                copyString(l.logoPath),
	}
}

func RestoreLegalEntity(s LegalEntitySnapshot) *LegalEntity {
	return &LegalEntity{
		contact:                 restoreContact(s.ContactSnapshot),
		corporateName:           s.CorporateName,
		tradeName:               s.TradeName,
		cnpj:                    Cnpj{digits: s.Cnpj},
		stateRegistration:       copyString(s.StateRegistration),
		municipalRegistration:   copyString(s.MunicipalRegistration),
		legalRepresentativeName: s.LegalRepresentativeName,
		legalRepresentativeCpf:  Cpf{digits: s.LegalRepresentativeCpf},
		logoPath:                copyString(s.LogoPath),
	}
}

// optional trims a registration number and treats blank as absent.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
