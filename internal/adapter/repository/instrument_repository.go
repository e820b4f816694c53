package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haeunkim/luthier-crm/internal/domain/instrument"
)

var (
	ErrInstrumentNotFound     = errors.New("instrument not found")
	ErrInstrumentDuplicateKey = errors.New("instrument with the same serial number already exists")
)

// InstrumentRepository implements instrument.Repository over PostgreSQL
type InstrumentRepository struct {
	db *pgxpool.Pool
}

// NewInstrumentRepository creates a new InstrumentRepository
func NewInstrumentRepository(db *pgxpool.Pool) instrument.Repository {
	return &InstrumentRepository{db: db}
}

const instrumentColumns = `id, maker, type, subtype, serial_number, year,
	price, certificate, status, created_at, updated_at`

// Create implements instrument.Repository.Create
func (r *InstrumentRepository) Create(ctx context.Context, i *instrument.Instrument) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO instruments (
			id, maker, type, subtype, serial_number, year,
			price, certificate, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		i.ID, i.Maker, i.Type, i.Subtype, i.SerialNumber, i.Year,
		i.Price, i.Certificate, i.Status, i.CreatedAt, i.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrInstrumentDuplicateKey
		}
		return fmt.Errorf("creating instrument: %w", err)
	}
	return nil
}

// FindByID implements instrument.Repository.FindByID
func (r *InstrumentRepository) FindByID(ctx context.Context, id string) (*instrument.Instrument, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+instrumentColumns+` FROM instruments WHERE id = $1`, id)

	i, err := scanInstrument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInstrumentNotFound
		}
		return nil, fmt.Errorf("finding instrument: %w", err)
	}
	return i, nil
}

// List implements instrument.Repository.List
func (r *InstrumentRepository) List(ctx context.Context, limit, offset int) ([]*instrument.Instrument, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+instrumentColumns+` FROM instruments
		ORDER BY maker ASC, year ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing instruments: %w", err)
	}
	defer rows.Close()

	return scanInstrumentRows(rows)
}

// FindByStatus implements instrument.Repository.FindByStatus
func (r *InstrumentRepository) FindByStatus(ctx context.Context, status instrument.Status, limit, offset int) ([]*instrument.Instrument, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+instrumentColumns+` FROM instruments
		WHERE status = $1
		ORDER BY maker ASC, year ASC
		LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing instruments by status: %w", err)
	}
	defer rows.Close()

	return scanInstrumentRows(rows)
}

// FindByMaker implements instrument.Repository.FindByMaker
func (r *InstrumentRepository) FindByMaker(ctx context.Context, term string, limit, offset int) ([]*instrument.Instrument, error) {
	pattern := "%" + term + "%"
	rows, err := r.db.Query(ctx,
		`SELECT `+instrumentColumns+` FROM instruments
		WHERE maker ILIKE $1 OR type ILIKE $1 OR subtype ILIKE $1
		ORDER BY maker ASC, year ASC
		LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("searching instruments: %w", err)
	}
	defer rows.Close()

	return scanInstrumentRows(rows)
}

// Update implements instrument.Repository.Update
func (r *InstrumentRepository) Update(ctx context.Context, i *instrument.Instrument) error {
	result, err := r.db.Exec(ctx,
		`UPDATE instruments SET
			maker = $1, type = $2, subtype = $3, serial_number = $4, year = $5,
			price = $6, certificate = $7, status = $8, updated_at = $9
		WHERE id = $10`,
		i.Maker, i.Type, i.Subtype, i.SerialNumber, i.Year,
		i.Price, i.Certificate, i.Status, i.UpdatedAt, i.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrInstrumentDuplicateKey
		}
		return fmt.Errorf("updating instrument: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrInstrumentNotFound
	}
	return nil
}

// UpdateStatus implements instrument.Repository.UpdateStatus
func (r *InstrumentRepository) UpdateStatus(ctx context.Context, id string, status instrument.Status) error {
	result, err := r.db.Exec(ctx,
		"UPDATE instruments SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id)
	if err != nil {
		return fmt.Errorf("updating instrument status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrInstrumentNotFound
	}
	return nil
}

// Delete implements instrument.Repository.Delete
func (r *InstrumentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM instruments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting instrument: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrInstrumentNotFound
	}
	return nil
}

// Count implements instrument.Repository.Count
func (r *InstrumentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM instruments").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting instruments: %w", err)
	}
	return count, nil
}

// ListSerialNumbers implements instrument.Repository.ListSerialNumbers
func (r *InstrumentRepository) ListSerialNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		"SELECT serial_number FROM instruments WHERE serial_number IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("listing serial numbers: %w", err)
	}
	defer rows.Close()

	numbers := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning serial number: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading serial numbers: %w", err)
	}
	return numbers, nil
}

func scanInstrument(row pgx.Row) (*instrument.Instrument, error) {
	var i instrument.Instrument
	err := row.Scan(
		&i.ID, &i.Maker, &i.Type, &i.Subtype, &i.SerialNumber, &i.Year,
		&i.Price, &i.Certificate, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func scanInstrumentRows(rows pgx.Rows) ([]*instrument.Instrument, error) {
	instruments := make([]*instrument.Instrument, 0)
	for rows.Next() {
		i, err := scanInstrument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning instrument: %w", err)
		}
		instruments = append(instruments, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading instruments: %w", err)
	}
	return instruments, nil
}
