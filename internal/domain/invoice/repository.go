package invoice

import "context"

// Repository defines the persistence contract for invoices.
type Repository interface {
	Create(ctx context.Context, i *Invoice) error
	FindByID(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*Invoice, error)
	FindByClient(ctx context.Context, clientID string, limit, offset int) ([]*Invoice, error)
	Update(ctx context.Context, i *Invoice) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	ListInvoiceNumbers(ctx context.Context) ([]string, error)
}
