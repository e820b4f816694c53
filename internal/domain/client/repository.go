package client

import "context"

// Repository defines the persistence contract for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, limit, offset int) ([]*Client, error)
	FindByName(ctx context.Context, term string, limit, offset int) ([]*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	ListClientNumbers(ctx context.Context) ([]string, error)
}
