package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haeunkim/luthier-crm/internal/domain/client"
	"github.com/haeunkim/luthier-crm/internal/domain/instrument"
)

var ErrInvalidSaleDate = errors.New("sale date must be a valid calendar date")

// Sale is a single transaction. A negative price is a refund. Client and
// instrument references are optional: historical rows imported from the old
// ledger often lack one or both.
type Sale struct {
	ID           string          `json:"id"`
	ClientID     *string         `json:"client_id"`
	InstrumentID *string         `json:"instrument_id"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	SaleDate     time.Time       `json:"sale_date"`
	Notes        *string         `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewSale creates a sale record.
func NewSale(clientID, instrumentID *string, price decimal.Decimal, saleDate time.Time, notes *string) (*Sale, error) {
	if saleDate.IsZero() {
		return nil, ErrInvalidSaleDate
	}
	return &Sale{
		ID:           uuid.New().String(),
		ClientID:     clientID,
		InstrumentID: instrumentID,
		SalePrice:    price,
		SaleDate:     saleDate,
		Notes:        notes,
		CreatedAt:    time.Now(),
	}, nil
}

// IsRefund reports whether the sale price is negative.
func (s *Sale) IsRefund() bool {
	return s.SalePrice.IsNegative()
}

// Enriched is a sale joined in-memory with its resolved client and
// instrument. Either pointer is nil when the reference is missing or the
// lookup missed; that is not an error.
type Enriched struct {
	Sale
	Client     *client.Client         `json:"client"`
	Instrument *instrument.Instrument `json:"instrument"`
}
