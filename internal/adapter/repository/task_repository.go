package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haeunkim/luthier-crm/internal/domain/task"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository implements task.Repository over PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) task.Repository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, title, description, due_date, all_day, completed, client_id, created_at, updated_at`

// Create implements task.Repository.Create
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tasks (
			id, title, description, due_date, all_day, completed, client_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Title, t.Description, t.DueDate, t.AllDay, t.Completed,
		t.ClientID, t.CreatedAt, t.UpdatedAt)

	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

// FindByID implements task.Repository.FindByID
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*task.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("finding task: %w", err)
	}
	return t, nil
}

// List implements task.Repository.List
func (r *TaskRepository) List(ctx context.Context, limit, offset int) ([]*task.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		ORDER BY due_date ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	return scanTaskRows(rows)
}

// FindByDateRange implements task.Repository.FindByDateRange. Bounds are
// inclusive; the calendar view queries one month at a time.
func (r *TaskRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*task.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		WHERE due_date >= $1 AND due_date <= $2
		ORDER BY due_date ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by date range: %w", err)
	}
	defer rows.Close()

	return scanTaskRows(rows)
}

// Update implements task.Repository.Update
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	result, err := r.db.Exec(ctx,
		`UPDATE tasks SET
			title = $1, description = $2, due_date = $3, all_day = $4,
			completed = $5, client_id = $6, updated_at = $7
		WHERE id = $8`,
		t.Title, t.Description, t.DueDate, t.AllDay, t.Completed,
		t.ClientID, t.UpdatedAt, t.ID)

	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// SetCompleted implements task.Repository.SetCompleted
func (r *TaskRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	result, err := r.db.Exec(ctx,
		"UPDATE tasks SET completed = $1, updated_at = NOW() WHERE id = $2",
		completed, id)
	if err != nil {
		return fmt.Errorf("updating task completion: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete implements task.Repository.Delete
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Count implements task.Repository.Count
func (r *TaskRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tasks").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return count, nil
}

func scanTask(row pgx.Row) (*task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.DueDate, &t.AllDay,
		&t.Completed, &t.ClientID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTaskRows(rows pgx.Rows) ([]*task.Task, error) {
	tasks := make([]*task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading tasks: %w", err)
	}
	return tasks, nil
}
