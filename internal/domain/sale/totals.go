package sale

import (
	"github.com/shopspring/decimal"
)

// TotalsResult summarizes one page of enriched sales.
type TotalsResult struct {
	Revenue    decimal.Decimal `json:"revenue"`
	Refund     decimal.Decimal `json:"refund"`
	AvgTicket  decimal.Decimal `json:"avg_ticket"`
	Count      int             `json:"count"`
	RefundRate float64         `json:"refund_rate"`
}

// Totals computes revenue, refunds and derived rates over the page.
// Revenue sums positive prices; refund sums the magnitude of negative ones.
// AvgTicket divides revenue by the number of positive-price sales and the
// refund rate is refund / (revenue + refund) as a percentage; both are zero
// when their denominator is.
func Totals(enriched []Enriched) TotalsResult {
	revenue := decimal.Zero
	refund := decimal.Zero
	positives := 0

	for _, e := range enriched {
		if e.SalePrice.IsNegative() {
			refund = refund.Add(e.SalePrice.Neg())
		} else {
			revenue = revenue.Add(e.SalePrice)
			if e.SalePrice.IsPositive() {
				positives++
			}
		}
	}

	avgTicket := decimal.Zero
	if positives > 0 {
		avgTicket = revenue.Div(decimal.NewFromInt(int64(positives)))
	}

	refundRate := 0.0
	gross := revenue.Add(refund)
	if gross.IsPositive() {
		refundRate, _ = refund.Div(gross).Mul(decimal.NewFromInt(100)).Float64()
	}

	return TotalsResult{
		Revenue:    revenue,
		Refund:     refund,
		AvgTicket:  avgTicket,
		Count:      len(enriched),
		RefundRate: refundRate,
	}
}
