package dto

import (
	"time"

	"github.com/haeunkim/luthier-crm/internal/domain/connection"
)

// ConnectionRequest is the create/update payload for a trade contact
type ConnectionRequest struct {
	Name         string `json:"name" binding:"required"`
	Kind         string `json:"kind" binding:"required"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Note         string `json:"note"`
}

// ConnectionResponse is the connection payload returned by the API
type ConnectionResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	Organization string    `json:"organization"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToConnectionResponse converts a domain connection to its response shape
func ToConnectionResponse(c *connection.Connection) ConnectionResponse {
	return ConnectionResponse{
		ID:           c.ID,
		Name:         c.Name,
		Kind:         string(c.Kind),
		Organization: c.Organization,
		Email:        c.Email,
		Phone:        c.Phone,
		Note:         c.Note,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToConnectionResponses converts a slice of domain connections
func ToConnectionResponses(connections []*connection.Connection) []ConnectionResponse {
	out := make([]ConnectionResponse, 0, len(connections))
	for _, c := range connections {
		out = append(out, ToConnectionResponse(c))
	}
	return out
}
