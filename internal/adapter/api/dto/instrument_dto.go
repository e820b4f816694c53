package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/haeunkim/luthier-crm/internal/domain/instrument"
)

// InstrumentRequest is the create/update payload for an instrument
type InstrumentRequest struct {
	Maker        string          `json:"maker" binding:"required"`
	Type         string          `json:"type" binding:"required"`
	Subtype      string          `json:"subtype"`
	SerialNumber string          `json:"serial_number"`
	Year         int             `json:"year"`
	Price        decimal.Decimal `json:"price"`
	Certificate  bool            `json:"certificate"`
}

// InstrumentResponse is the instrument payload returned by the API
type InstrumentResponse struct {
	ID           string            `json:"id"`
	Maker        string            `json:"maker"`
	Type         string            `json:"type"`
	Subtype      string            `json:"subtype"`
	SerialNumber *string           `json:"serial_number"`
	Year         int               `json:"year"`
	Price        decimal.Decimal   `json:"price"`
	Certificate  bool              `json:"certificate"`
	Status       instrument.Status `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ToInstrumentResponse converts a domain instrument to its response shape
func ToInstrumentResponse(i *instrument.Instrument) InstrumentResponse {
	return InstrumentResponse{
		ID:           i.ID,
		Maker:        i.Maker,
		Type:         i.Type,
		Subtype:      i.Subtype,
		SerialNumber: i.SerialNumber,
		Year:         i.Year,
		Price:        i.Price,
		Certificate:  i.Certificate,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// ToInstrumentResponses converts a slice of domain instruments
func ToInstrumentResponses(instruments []*instrument.Instrument) []InstrumentResponse {
	out := make([]InstrumentResponse, 0, len(instruments))
	for _, i := range instruments {
		out = append(out, ToInstrumentResponse(i))
	}
	return out
}
