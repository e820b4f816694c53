package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haeunkim/luthier-crm/internal/domain/client"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrClientDuplicateKey = errors.New("client with the same client number already exists")
)

// ClientRepository implements client.Repository over PostgreSQL
type ClientRepository struct {
	db *pgxpool.Pool
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *pgxpool.Pool) client.Repository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, first_name, last_name, email, contact_number, tags,
	interest, note, client_number, created_at, updated_at`

// Create implements client.Repository.Create
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO clients (
			id, first_name, last_name, email, contact_number, tags,
			interest, note, client_number, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.FirstName, c.LastName, c.Email, c.ContactNumber, c.Tags,
		c.Interest, c.Note, c.ClientNumber, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrClientDuplicateKey
		}
		return fmt.Errorf("creating client: %w", err)
	}
	return nil
}

// FindByID implements client.Repository.FindByID
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*client.Client, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)

	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("finding client: %w", err)
	}
	return c, nil
}

// List implements client.Repository.List
func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]*client.Client, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+clientColumns+` FROM clients
		ORDER BY last_name ASC, first_name ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	return scanClientRows(rows)
}

// FindByName implements client.Repository.FindByName
func (r *ClientRepository) FindByName(ctx context.Context, term string, limit, offset int) ([]*client.Client, error) {
	pattern := "%" + term + "%"
	rows, err := r.db.Query(ctx,
		`SELECT `+clientColumns+` FROM clients
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
		ORDER BY last_name ASC, first_name ASC
		LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("searching clients: %w", err)
	}
	defer rows.Close()

	return scanClientRows(rows)
}

// Update implements client.Repository.Update
func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	result, err := r.db.Exec(ctx,
		`UPDATE clients SET
			first_name = $1, last_name = $2, email = $3, contact_number = $4,
			tags = $5, interest = $6, note = $7, client_number = $8, updated_at = $9
		WHERE id = $10`,
		c.FirstName, c.LastName, c.Email, c.ContactNumber, c.Tags,
		c.Interest, c.Note, c.ClientNumber, c.UpdatedAt, c.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrClientDuplicateKey
		}
		return fmt.Errorf("updating client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

// Delete implements client.Repository.Delete
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

// Count implements client.Repository.Count
func (r *ClientRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM clients").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting clients: %w", err)
	}
	return count, nil
}

// ListClientNumbers implements client.Repository.ListClientNumbers. Used by
// the identifier generator and its uniqueness re-check at submit time.
func (r *ClientRepository) ListClientNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		"SELECT client_number FROM clients WHERE client_number IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("listing client numbers: %w", err)
	}
	defer rows.Close()

	numbers := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning client number: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading client numbers: %w", err)
	}
	return numbers, nil
}

func scanClient(row pgx.Row) (*client.Client, error) {
	var c client.Client
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.ContactNumber, &c.Tags,
		&c.Interest, &c.Note, &c.ClientNumber, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanClientRows(rows pgx.Rows) ([]*client.Client, error) {
	clients := make([]*client.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading clients: %w", err)
	}
	return clients, nil
}
