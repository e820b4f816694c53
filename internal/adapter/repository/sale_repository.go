package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haeunkim/luthier-crm/internal/domain/sale"
)

var ErrSaleNotFound = errors.New("sale not found")

// SaleRepository implements sale.Repository over PostgreSQL
type SaleRepository struct {
	db *pgxpool.Pool
}

// NewSaleRepository creates a new SaleRepository
func NewSaleRepository(db *pgxpool.Pool) sale.Repository {
	return &SaleRepository{db: db}
}

const saleColumns = `id, client_id, instrument_id, sale_price, sale_date, notes, created_at`

// Create implements sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sales (
			id, client_id, instrument_id, sale_price, sale_date, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.ClientID, s.InstrumentID, s.SalePrice, s.SaleDate, s.Notes, s.CreatedAt)

	if err != nil {
		return fmt.Errorf("creating sale: %w", err)
	}
	return nil
}

// FindByID implements sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)

	s, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("finding sale: %w", err)
	}
	return s, nil
}

// List implements sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+saleColumns+` FROM sales
		ORDER BY sale_date DESC, created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	return scanSaleRows(rows)
}

// FindByDateRange implements sale.Repository.FindByDateRange. Bounds are
// inclusive.
func (r *SaleRepository) FindByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+saleColumns+` FROM sales
		WHERE sale_date >= $1 AND sale_date <= $2
		ORDER BY sale_date DESC, created_at DESC
		LIMIT $3 OFFSET $4`, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing sales by date range: %w", err)
	}
	defer rows.Close()

	return scanSaleRows(rows)
}

// FindByClient implements sale.Repository.FindByClient
func (r *SaleRepository) FindByClient(ctx context.Context, clientID string, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+saleColumns+` FROM sales
		WHERE client_id = $1
		ORDER BY sale_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing sales by client: %w", err)
	}
	defer rows.Close()

	return scanSaleRows(rows)
}

// Update implements sale.Repository.Update
func (r *SaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	result, err := r.db.Exec(ctx,
		`UPDATE sales SET
			client_id = $1, instrument_id = $2, sale_price = $3,
			sale_date = $4, notes = $5
		WHERE id = $6`,
		s.ClientID, s.InstrumentID, s.SalePrice, s.SaleDate, s.Notes, s.ID)

	if err != nil {
		return fmt.Errorf("updating sale: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSaleNotFound
	}
	return nil
}

// Delete implements sale.Repository.Delete
func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM sales WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting sale: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSaleNotFound
	}
	return nil
}

// Count implements sale.Repository.Count
func (r *SaleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM sales").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting sales: %w", err)
	}
	return count, nil
}

// CountByClient implements sale.Repository.CountByClient
func (r *SaleRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM sales WHERE client_id = $1", clientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting sales by client: %w", err)
	}
	return count, nil
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	err := row.Scan(
		&s.ID, &s.ClientID, &s.InstrumentID, &s.SalePrice,
		&s.SaleDate, &s.Notes, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSaleRows(rows pgx.Rows) ([]*sale.Sale, error) {
	sales := make([]*sale.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading sales: %w", err)
	}
	return sales, nil
}
