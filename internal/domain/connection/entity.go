package connection

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName   = errors.New("connection must have a name")
	ErrInvalidKind = errors.New("invalid connection kind")
)

// Kind classifies a trade contact.
type Kind string

const (
	KindWorkshop Kind = "Workshop"
	KindTeacher  Kind = "Teacher"
	KindDealer   Kind = "Dealer"
	KindLuthier  Kind = "Luthier"
	KindOther    Kind = "Other"
)

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindWorkshop, KindTeacher, KindDealer, KindLuthier, KindOther:
		return Kind(s), nil
	}
	return "", ErrInvalidKind
}

// Connection is a trade contact the shop works with: repair workshops,
// teachers who refer students, other dealers.
type Connection struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         Kind      `json:"kind"`
	Organization string    `json:"organization"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewConnection creates a trade contact.
func NewConnection(name string, kind Kind, organization, email, phone, note string) (*Connection, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Connection{
		ID:           uuid.New().String(),
		Name:         name,
		Kind:         kind,
		Organization: organization,
		Email:        email,
		Phone:        phone,
		Note:         note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Update replaces the mutable fields of the connection.
func (c *Connection) Update(name string, kind Kind, organization, email, phone, note string) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}

	c.Name = name
	c.Kind = kind
	c.Organization = organization
	c.Email = email
	c.Phone = phone
	c.Note = note
	c.UpdatedAt = time.Now()
	return nil
}
