package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haeunkim/luthier-crm/internal/domain/invoice"
	"github.com/haeunkim/luthier-crm/internal/infrastructure/database"
)

var (
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrInvoiceDuplicateKey = errors.New("invoice with the same number already exists")
)

// InvoiceRepository implements invoice.Repository over PostgreSQL. Line
// items live in their own table, so header and items are written in a
// single transaction.
type InvoiceRepository struct {
	db *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *pgxpool.Pool) invoice.Repository {
	return &InvoiceRepository{db: db}
}

const invoiceColumns = `id, invoice_number, client_id, issue_date, due_date,
	currency, subtotal, tax, total, status, created_at, updated_at`

// Create implements invoice.Repository.Create
func (r *InvoiceRepository) Create(ctx context.Context, i *invoice.Invoice) error {
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO invoices (
				id, invoice_number, client_id, issue_date, due_date,
				currency, subtotal, tax, total, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			i.ID, i.InvoiceNumber, i.ClientID, i.IssueDate, i.DueDate,
			i.Currency, i.Subtotal, i.Tax, i.Total, i.Status,
			i.CreatedAt, i.UpdatedAt)
		if err != nil {
			return err
		}
		return insertItems(ctx, tx, i)
	})

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrInvoiceDuplicateKey
		}
		return fmt.Errorf("creating invoice: %w", err)
	}
	return nil
}

// FindByID implements invoice.Repository.FindByID
func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)

	i, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("finding invoice: %w", err)
	}
	if i.Items, err = r.loadItems(ctx, i.ID); err != nil {
		return nil, err
	}
	return i, nil
}

// List implements invoice.Repository.List
func (r *InvoiceRepository) List(ctx context.Context, limit, offset int) ([]*invoice.Invoice, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices
		ORDER BY issue_date DESC, invoice_number DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	invoices, err := scanInvoiceRows(rows)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, invoices)
}

// FindByClient implements invoice.Repository.FindByClient
func (r *InvoiceRepository) FindByClient(ctx context.Context, clientID string, limit, offset int) ([]*invoice.Invoice, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices
		WHERE client_id = $1
		ORDER BY issue_date DESC, invoice_number DESC
		LIMIT $2 OFFSET $3`, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing invoices by client: %w", err)
	}
	defer rows.Close()

	invoices, err := scanInvoiceRows(rows)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, invoices)
}

// Update implements invoice.Repository.Update. The header row and the line
// items are replaced together or not at all.
func (r *InvoiceRepository) Update(ctx context.Context, i *invoice.Invoice) error {
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`UPDATE invoices SET
				invoice_number = $1, client_id = $2, issue_date = $3, due_date = $4,
				currency = $5, subtotal = $6, tax = $7, total = $8, status = $9,
				updated_at = $10
			WHERE id = $11`,
			i.InvoiceNumber, i.ClientID, i.IssueDate, i.DueDate,
			i.Currency, i.Subtotal, i.Tax, i.Total, i.Status,
			i.UpdatedAt, i.ID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrInvoiceNotFound
		}

		if _, err := tx.Exec(ctx, "DELETE FROM invoice_items WHERE invoice_id = $1", i.ID); err != nil {
			return err
		}
		return insertItems(ctx, tx, i)
	})

	if err != nil {
		if err == ErrInvoiceNotFound {
			return err
		}
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrInvoiceDuplicateKey
		}
		return fmt.Errorf("updating invoice: %w", err)
	}
	return nil
}

// Delete implements invoice.Repository.Delete. Items go with the header
// through the cascading foreign key.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

// Count implements invoice.Repository.Count
func (r *InvoiceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM invoices").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting invoices: %w", err)
	}
	return count, nil
}

// ListInvoiceNumbers implements invoice.Repository.ListInvoiceNumbers
func (r *InvoiceRepository) ListInvoiceNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, "SELECT invoice_number FROM invoices")
	if err != nil {
		return nil, fmt.Errorf("listing invoice numbers: %w", err)
	}
	defer rows.Close()

	numbers := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning invoice number: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading invoice numbers: %w", err)
	}
	return numbers, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, i *invoice.Invoice) error {
	for pos, item := range i.Items {
		_, err := tx.Exec(ctx,
			`INSERT INTO invoice_items (
				invoice_id, position, description, quantity, unit_price, amount
			) VALUES ($1, $2, $3, $4, $5, $6)`,
			i.ID, pos, item.Description, item.Quantity, item.UnitPrice, item.Amount)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *InvoiceRepository) loadItems(ctx context.Context, invoiceID string) ([]invoice.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT description, quantity, unit_price, amount
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("loading invoice items: %w", err)
	}
	defer rows.Close()

	items := make([]invoice.Item, 0)
	for rows.Next() {
		var item invoice.Item
		if err := rows.Scan(&item.Description, &item.Quantity, &item.UnitPrice, &item.Amount); err != nil {
			return nil, fmt.Errorf("scanning invoice item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading invoice items: %w", err)
	}
	return items, nil
}

func (r *InvoiceRepository) attachItems(ctx context.Context, invoices []*invoice.Invoice) ([]*invoice.Invoice, error) {
	for _, i := range invoices {
		items, err := r.loadItems(ctx, i.ID)
		if err != nil {
			return nil, err
		}
		i.Items = items
	}
	return invoices, nil
}

func scanInvoice(row pgx.Row) (*invoice.Invoice, error) {
	var i invoice.Invoice
	err := row.Scan(
		&i.ID, &i.InvoiceNumber, &i.ClientID, &i.IssueDate, &i.DueDate,
		&i.Currency, &i.Subtotal, &i.Tax, &i.Total, &i.Status,
		&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func scanInvoiceRows(rows pgx.Rows) ([]*invoice.Invoice, error) {
	invoices := make([]*invoice.Invoice, 0)
	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}
		invoices = append(invoices, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading invoices: %w", err)
	}
	return invoices, nil
}
