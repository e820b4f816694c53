package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyNumber   = errors.New("invoice must have a number")
	ErrNoItems       = errors.New("invoice must have at least one line item")
	ErrInvalidStatus = errors.New("invalid invoice status")
)

// Status tracks the payment lifecycle of an invoice.
type Status string

const (
	StatusDraft  Status = "Draft"
	StatusIssued Status = "Issued"
	StatusPaid   Status = "Paid"
	StatusVoid   Status = "Void"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusIssued, StatusPaid, StatusVoid:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Item is a single invoice line.
type Item struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice is a billing document for a client.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      *string         `json:"client_id"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       *time.Time      `json:"due_date"`
	Currency      string          `json:"currency"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        Status          `json:"status"`
	Items         []Item          `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewInvoice creates a draft invoice and computes its totals from the items.
func NewInvoice(number string, clientID *string, issueDate time.Time, dueDate *time.Time, currency string, tax decimal.Decimal, items []Item) (*Invoice, error) {
	if number == "" {
		return nil, ErrEmptyNumber
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if currency == "" {
		currency = "KRW"
	}

	inv := &Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: number,
		ClientID:      clientID,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Currency:      currency,
		Tax:           tax,
		Status:        StatusDraft,
		Items:         items,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	inv.recalculate()
	return inv, nil
}

// recalculate derives line amounts and header totals from the items.
func (i *Invoice) recalculate() {
	subtotal := decimal.Zero
	for idx := range i.Items {
		qty := decimal.NewFromInt(int64(i.Items[idx].Quantity))
		i.Items[idx].Amount = i.Items[idx].UnitPrice.Mul(qty)
		subtotal = subtotal.Add(i.Items[idx].Amount)
	}
	i.Subtotal = subtotal
	i.Total = subtotal.Add(i.Tax)
}

// SetStatus moves the invoice through its lifecycle.
func (i *Invoice) SetStatus(status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	i.Status = status
	i.UpdatedAt = time.Now()
	return nil
}

// ReplaceItems swaps the line items and recomputes totals.
func (i *Invoice) ReplaceItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	i.Items = items
	i.recalculate()
	i.UpdatedAt = time.Now()
	return nil
}
