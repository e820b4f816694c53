package sale

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalsRevenueAndRefund(t *testing.T) {
	enriched := Enrich([]*Sale{
		mkSale("s1", nil, nil, 1000, "2024-01-01"),
		mkSale("s2", nil, nil, -500, "2024-01-02"),
	}, nil, nil)

	totals := Totals(enriched)

	assert.True(t, totals.Revenue.Equal(decimal.NewFromInt(1000)), "revenue = %s", totals.Revenue)
	assert.True(t, totals.Refund.Equal(decimal.NewFromInt(500)), "refund = %s", totals.Refund)
	assert.Equal(t, 2, totals.Count)
	assert.InDelta(t, 500.0/1500.0*100, totals.RefundRate, 0.01)
}

func TestTotalsNetEqualsArithmeticSum(t *testing.T) {
	prices := []float64{1200, -300, 450.5, 0, -120.25, 9800}
	sales := make([]*Sale, len(prices))
	sum := decimal.Zero
	for i, p := range prices {
		sales[i] = mkSale("s", nil, nil, p, "2024-01-01")
		sum = sum.Add(decimal.NewFromFloat(p))
	}

	totals := Totals(Enrich(sales, nil, nil))
	net := totals.Revenue.Sub(totals.Refund)
	assert.True(t, net.Equal(sum), "net %s, sum %s", net, sum)
}

func TestTotalsAvgTicketIgnoresRefundsAndZeroes(t *testing.T) {
	enriched := Enrich([]*Sale{
		mkSale("s1", nil, nil, 1000, "2024-01-01"),
		mkSale("s2", nil, nil, 2000, "2024-01-02"),
		mkSale("s3", nil, nil, 0, "2024-01-03"),
		mkSale("s4", nil, nil, -400, "2024-01-04"),
	}, nil, nil)

	totals := Totals(enriched)
	assert.True(t, totals.AvgTicket.Equal(decimal.NewFromInt(1500)), "avg ticket = %s", totals.AvgTicket)
}

func TestTotalsEmptyInput(t *testing.T) {
	totals := Totals(nil)
	assert.True(t, totals.Revenue.IsZero())
	assert.True(t, totals.Refund.IsZero())
	assert.True(t, totals.AvgTicket.IsZero())
	assert.Equal(t, 0, totals.Count)
	assert.Zero(t, totals.RefundRate)
}

func TestCheckQualityInsufficientData(t *testing.T) {
	enriched := Enrich([]*Sale{mkSale("s1", nil, nil, 100, "2024-01-01")}, nil, nil)
	q := CheckQuality(enriched, 1)
	assert.True(t, q.HasInsufficientData)
	assert.True(t, q.IsLowQuality)
}

func TestCheckQualityOutliersOnlyOnFullDataset(t *testing.T) {
	sales := make([]*Sale, 0, 21)
	for i := 0; i < 20; i++ {
		sales = append(sales, mkSale("s", nil, nil, 100, "2024-01-15"))
	}
	// mean is roughly 340; 5100 deviates by far more than 10x the mean
	sales = append(sales, mkSale("big", nil, nil, 5100, "2024-01-16"))
	enriched := Enrich(sales, nil, nil)

	full := CheckQuality(enriched, len(enriched))
	assert.True(t, full.HasOutliers)
	assert.True(t, full.IsLowQuality)

	filtered := CheckQuality(enriched, len(enriched)+50)
	assert.False(t, filtered.HasOutliers)
}

func TestCheckQualitySparseDates(t *testing.T) {
	sparse := Enrich([]*Sale{
		mkSale("s1", nil, nil, 100, "2024-01-10"),
		mkSale("s2", nil, nil, 200, "2024-12-05"),
	}, nil, nil)
	q := CheckQuality(sparse, 2)
	assert.True(t, q.HasSparseDates)

	dense := Enrich([]*Sale{
		mkSale("s1", nil, nil, 100, "2024-01-10"),
		mkSale("s2", nil, nil, 100, "2024-02-10"),
		mkSale("s3", nil, nil, 100, "2024-03-10"),
	}, nil, nil)
	assert.False(t, CheckQuality(dense, 3).HasSparseDates)

	single := Enrich([]*Sale{mkSale("s1", nil, nil, 100, "2024-01-10")}, nil, nil)
	assert.False(t, CheckQuality(single, 1).HasSparseDates)
}
