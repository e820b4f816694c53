package client

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("client must have a first or last name")
	ErrInvalidEmail = errors.New("invalid email address")
)

// Client is a person the shop does business with: buyers, players,
// teachers on the mailing list.
type Client struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	ContactNumber string     `json:"contact_number"`
	Tags          []string   `json:"tags"`
	Interest      string     `json:"interest"`
	Note          string     `json:"note"`
	ClientNumber  *string    `json:"client_number"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewClient creates a new client record.
func NewClient(firstName, lastName, email string) (*Client, error) {
	if strings.TrimSpace(firstName) == "" && strings.TrimSpace(lastName) == "" {
		return nil, ErrEmptyName
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	now := time.Now()
	return &Client{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DisplayName returns "first last" trimmed, falling back to the email.
func (c *Client) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name != "" {
		return name
	}
	return c.Email
}

// HasTag reports whether the client carries the given role tag.
func (c *Client) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Update replaces the mutable fields of the client.
func (c *Client) Update(firstName, lastName, email, contactNumber, interest, note string, tags []string) error {
	if strings.TrimSpace(firstName) == "" && strings.TrimSpace(lastName) == "" {
		return ErrEmptyName
	}
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	c.FirstName = firstName
	c.LastName = lastName
	c.Email = email
	c.ContactNumber = contactNumber
	c.Interest = interest
	c.Note = note
	if tags != nil {
		c.Tags = tags
	}
	c.UpdatedAt = time.Now()
	return nil
}

// SetClientNumber assigns the generated client number once.
func (c *Client) SetClientNumber(number string) {
	c.ClientNumber = &number
	c.UpdatedAt = time.Now()
}
