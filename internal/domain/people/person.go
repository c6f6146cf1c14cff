package people

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindIndividual  Kind = "individual"
	KindLegalEntity Kind = "legal_entity"
)

// Person is implemented only by *Individual and *LegalEntity; callers
// type-switch on the concrete variant.
type Person interface {
	ID() uuid.UUID
	Kind() Kind
	DisplayName() string
	Email() EmailAddress
	Phone() PhoneNumber
	Address() Address
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Modified() bool
	Touch(now time.Time) (undo func())
	MarkPersisted()

	contactInfo() *contact
}

// contact carries the fields every variant shares.
type contact struct {
	id        uuid.UUID
	email     EmailAddress
	phone     PhoneNumber
	address   Address
	createdAt time.Time
	updatedAt time.Time
	modified  bool
}

func newContact(email EmailAddress, phone PhoneNumber, address Address) (contact, error) {
	switch {
	case email.IsZero():
		return contact{}, invalid("email", "is required")
	case phone.IsZero():
		return contact{}, invalid("phone", "is required")
	case address.IsZero():
		return contact{}, invalid("address", "is required")
	}
	return contact{
		id:       uuid.New(),
		email:    email,
		phone:    phone,
		address:  address,
		modified: true,
	}, nil
}

func (c *contact) ID() uuid.UUID         { return c.id }
func (c *contact) Email() EmailAddress   { return c.email }
func (c *contact) Phone() PhoneNumber    { return c.phone }
func (c *contact) Address() Address      { return c.address }
func (c *contact) CreatedAt() time.Time  { return c.createdAt }
func (c *contact) UpdatedAt() time.Time  { return c.updatedAt }
func (c *contact) Modified() bool        { return c.modified }
func (c *contact) contactInfo() *contact { return c }

// Touch stamps the timestamps for a write at now. CreatedAt is set only on
// the first touch and UpdatedAt never precedes it. undo restores the
// previous timestamps when the write does not commit.
func (c *contact) Touch(now time.Time) (undo func()) {
	prevCreated, prevUpdated := c.createdAt, c.updatedAt
	if c.createdAt.IsZero() {
		c.createdAt = now
	}
	if now.Before(c.createdAt) {
		now = c.createdAt
	}
	c.updatedAt = now
	return func() {
		c.createdAt, c.updatedAt = prevCreated, prevUpdated
	}
}

// MarkPersisted clears the modified flag once a commit has succeeded.
func (c *contact) MarkPersisted() { c.modified = false }

// ContactSnapshot is the flat form of the shared fields, used by the
// persistence mapping.
type ContactSnapshot struct {
	ID        uuid.UUID
	Email     string
	Phone     string
	Address   AddressParts
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *contact) snapshot() ContactSnapshot {
	return ContactSnapshot{
		ID:        c.id,
		Email:     c.email.value,
		Phone:     c.phone.value,
		Address:   c.address.Parts(),
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
}

// restoreContact rebuilds stored fields without validating them again.
func restoreContact(s ContactSnapshot) contact {
	p := s.Address
	return contact{
		id:    s.ID,
		email: EmailAddress{value: s.Email},
		phone: PhoneNumber{value: s.Phone},
		address: Address{
			street:     p.Street,
			number:     p.Number,
			complement: p.Complement,
			district:   p.District,
			city:       p.City,
			state:      p.State,
			zip:        p.Zip,
			country:    p.Country,
		},
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}
}

func checkPath(field string, path *string) (*string, error) {
	if path == nil {
		return nil, nil
	}
	if *path == "" {
		return nil, invalid(field, "must not be empty")
	}
	p := *path
	return &p, nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
