package dto

import (
	"time"

	"github.com/haeunkim/luthier-crm/internal/domain/client"
)

// ClientRequest is the create/update payload for a client
type ClientRequest struct {
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Email         string   `json:"email"`
	ContactNumber string   `json:"contact_number"`
	Tags          []string `json:"tags"`
	Interest      string   `json:"interest"`
	Note          string   `json:"note"`
	ClientNumber  string   `json:"client_number"`
}

// ClientResponse is the client payload returned by the API
type ClientResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contact_number"`
	Tags          []string  `json:"tags"`
	Interest      string    `json:"interest"`
	Note          string    `json:"note"`
	ClientNumber  *string   `json:"client_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToClientResponse converts a domain client to its response shape
func ToClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:            c.ID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		ContactNumber: c.ContactNumber,
		Tags:          c.Tags,
		Interest:      c.Interest,
		Note:          c.Note,
		ClientNumber:  c.ClientNumber,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToClientResponses converts a slice of domain clients
func ToClientResponses(clients []*client.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, ToClientResponse(c))
	}
	return out
}
