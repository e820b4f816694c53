package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/haeunkim/luthier-crm/internal/domain/sale"
)

// SaleRequest is the create/update payload for a sale. SaleDate is an
// inclusive ISO calendar date; a negative price records a refund.
type SaleRequest struct {
	ClientID     *string         `json:"client_id"`
	InstrumentID *string         `json:"instrument_id"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	SaleDate     string          `json:"sale_date" binding:"required"`
	Notes        *string         `json:"notes"`
}

// SaleResponse is the bare sale payload returned by the API
type SaleResponse struct {
	ID           string          `json:"id"`
	ClientID     *string         `json:"client_id"`
	InstrumentID *string         `json:"instrument_id"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	SaleDate     string          `json:"sale_date"`
	Notes        *string         `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
}

// EnrichedSaleResponse is a sale joined with its client and instrument
type EnrichedSaleResponse struct {
	SaleResponse
	Client     *ClientResponse     `json:"client,omitempty"`
	Instrument *InstrumentResponse `json:"instrument,omitempty"`
}

// SalesReportResponse is the payload of the sales report endpoint
type SalesReportResponse struct {
	Data    []EnrichedSaleResponse `json:"data"`
	Count   int                    `json:"count"`
	Totals  sale.TotalsResult      `json:"totals"`
	Quality sale.QualityResult     `json:"quality"`
	Period  string                 `json:"period"`
}

// ToSaleResponse converts a domain sale to its response shape
func ToSaleResponse(s *sale.Sale) SaleResponse {
	return SaleResponse{
		ID:           s.ID,
		ClientID:     s.ClientID,
		InstrumentID: s.InstrumentID,
		SalePrice:    s.SalePrice,
		SaleDate:     s.SaleDate.Format("2006-01-02"),
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
	}
}

// ToSaleResponses converts a slice of domain sales
func ToSaleResponses(sales []*sale.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, ToSaleResponse(s))
	}
	return out
}

// ToEnrichedSaleResponse converts an enriched sale, keeping absent
// references as null rather than zero values
func ToEnrichedSaleResponse(e sale.Enriched) EnrichedSaleResponse {
	resp := EnrichedSaleResponse{SaleResponse: ToSaleResponse(&e.Sale)}
	if e.Client != nil {
		c := ToClientResponse(e.Client)
		resp.Client = &c
	}
	if e.Instrument != nil {
		i := ToInstrumentResponse(e.Instrument)
		resp.Instrument = &i
	}
	return resp
}

// ToEnrichedSaleResponses converts a slice of enriched sales
func ToEnrichedSaleResponses(enriched []sale.Enriched) []EnrichedSaleResponse {
	out := make([]EnrichedSaleResponse, 0, len(enriched))
	for _, e := range enriched {
		out = append(out, ToEnrichedSaleResponse(e))
	}
	return out
}
