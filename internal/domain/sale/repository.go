package sale

import (
	"context"
	"time"
)

// Repository defines the persistence contract for sales.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	FindByID(ctx context.Context, id string) (*Sale, error)
	List(ctx context.Context, limit, offset int) ([]*Sale, error)
	FindByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*Sale, error)
	FindByClient(ctx context.Context, clientID string, limit, offset int) ([]*Sale, error)
	Update(ctx context.Context, s *Sale) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountByClient(ctx context.Context, clientID string) (int, error)
}
