package instrument

import "context"

// Repository defines the persistence contract for instruments.
type Repository interface {
	Create(ctx context.Context, i *Instrument) error
	FindByID(ctx context.Context, id string) (*Instrument, error)
	List(ctx context.Context, limit, offset int) ([]*Instrument, error)
	FindByStatus(ctx context.Context, status Status, limit, offset int) ([]*Instrument, error)
	FindByMaker(ctx context.Context, term string, limit, offset int) ([]*Instrument, error)
	Update(ctx context.Context, i *Instrument) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	ListSerialNumbers(ctx context.Context) ([]string, error)
}
