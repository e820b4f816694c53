package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/haeunkim/luthier-crm/internal/domain/invoice"
)

// InvoiceItemRequest is one line of an invoice payload
type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// InvoiceRequest is the create/update payload for an invoice
type InvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number"`
	ClientID      *string              `json:"client_id"`
	IssueDate     string               `json:"issue_date" binding:"required"`
	DueDate       string               `json:"due_date"`
	Currency      string               `json:"currency"`
	Tax           decimal.Decimal      `json:"tax"`
	Items         []InvoiceItemRequest `json:"items" binding:"required,min=1"`
}

// InvoiceResponse is the invoice payload returned by the API
type InvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      *string         `json:"client_id"`
	IssueDate     string          `json:"issue_date"`
	DueDate       *string         `json:"due_date"`
	Currency      string          `json:"currency"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	Items         []invoice.Item  `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToInvoiceItems converts request lines to domain items
func ToInvoiceItems(items []InvoiceItemRequest) []invoice.Item {
	out := make([]invoice.Item, 0, len(items))
	for _, it := range items {
		out = append(out, invoice.Item{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}

// ToInvoiceResponse converts a domain invoice to its response shape
func ToInvoiceResponse(i *invoice.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		ClientID:      i.ClientID,
		IssueDate:     i.IssueDate.Format("2006-01-02"),
		Currency:      i.Currency,
		Subtotal:      i.Subtotal,
		Tax:           i.Tax,
		Total:         i.Total,
		Status:        string(i.Status),
		Items:         i.Items,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
	if i.DueDate != nil {
		d := i.DueDate.Format("2006-01-02")
		resp.DueDate = &d
	}
	return resp
}

// ToInvoiceResponses converts a slice of domain invoices
func ToInvoiceResponses(invoices []*invoice.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, i := range invoices {
		out = append(out, ToInvoiceResponse(i))
	}
	return out
}
