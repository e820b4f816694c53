package task

import (
	"context"
	"time"
)

// Repository defines the persistence contract for calendar tasks.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, limit, offset int) ([]*Task, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
