package connection

import "context"

// Repository defines the persistence contract for connections.
type Repository interface {
	Create(ctx context.Context, c *Connection) error
	FindByID(ctx context.Context, id string) (*Connection, error)
	List(ctx context.Context, limit, offset int) ([]*Connection, error)
	FindByKind(ctx context.Context, kind Kind, limit, offset int) ([]*Connection, error)
	Update(ctx context.Context, c *Connection) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
