package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haeunkim/luthier-crm/internal/domain/connection"
)

var ErrConnectionNotFound = errors.New("connection not found")

// ConnectionRepository implements connection.Repository over PostgreSQL
type ConnectionRepository struct {
	db *pgxpool.Pool
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(db *pgxpool.Pool) connection.Repository {
	return &ConnectionRepository{db: db}
}

const connectionColumns = `id, name, kind, organization, email, phone, note, created_at, updated_at`

// Create implements connection.Repository.Create
func (r *ConnectionRepository) Create(ctx context.Context, c *connection.Connection) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO connections (
			id, name, kind, organization, email, phone, note, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.Kind, c.Organization, c.Email, c.Phone, c.Note,
		c.CreatedAt, c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("creating connection: %w", err)
	}
	return nil
}

// FindByID implements connection.Repository.FindByID
func (r *ConnectionRepository) FindByID(ctx context.Context, id string) (*connection.Connection, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+connectionColumns+` FROM connections WHERE id = $1`, id)

	c, err := scanConnection(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConnectionNotFound
		}
		return nil, fmt.Errorf("finding connection: %w", err)
	}
	return c, nil
}

// List implements connection.Repository.List
func (r *ConnectionRepository) List(ctx context.Context, limit, offset int) ([]*connection.Connection, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+connectionColumns+` FROM connections
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	defer rows.Close()

	return scanConnectionRows(rows)
}

// FindByKind implements connection.Repository.FindByKind
func (r *ConnectionRepository) FindByKind(ctx context.Context, kind connection.Kind, limit, offset int) ([]*connection.Connection, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+connectionColumns+` FROM connections
		WHERE kind = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing connections by kind: %w", err)
	}
	defer rows.Close()

	return scanConnectionRows(rows)
}

// Update implements connection.Repository.Update
func (r *ConnectionRepository) Update(ctx context.Context, c *connection.Connection) error {
	result, err := r.db.Exec(ctx,
		`UPDATE connections SET
			name = $1, kind = $2, organization = $3, email = $4,
			phone = $5, note = $6, updated_at = $7
		WHERE id = $8`,
		c.Name, c.Kind, c.Organization, c.Email, c.Phone, c.Note,
		c.UpdatedAt, c.ID)

	if err != nil {
		return fmt.Errorf("updating connection: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

// Delete implements connection.Repository.Delete
func (r *ConnectionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM connections WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting connection: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

// Count implements connection.Repository.Count
func (r *ConnectionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM connections").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting connections: %w", err)
	}
	return count, nil
}

func scanConnection(row pgx.Row) (*connection.Connection, error) {
	var c connection.Connection
	err := row.Scan(
		&c.ID, &c.Name, &c.Kind, &c.Organization, &c.Email, &c.Phone,
		&c.Note, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanConnectionRows(rows pgx.Rows) ([]*connection.Connection, error) {
	connections := make([]*connection.Connection, 0)
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning connection: %w", err)
		}
		connections = append(connections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading connections: %w", err)
	}
	return connections, nil
}
