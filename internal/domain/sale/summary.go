package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnassignedClientKey groups sales with no resolvable client.
const UnassignedClientKey = "unassigned"

// ClientSummary aggregates one client's purchase history.
type ClientSummary struct {
	ClientID      string          `json:"client_id"`
	ClientName    string          `json:"client_name"`
	TotalSpend    decimal.Decimal `json:"total_spend"`
	PurchaseCount int             `json:"purchase_count"`
	FirstPurchase string          `json:"first_purchase"`
	LastPurchase  string          `json:"last_purchase"`
}

// SummarizeByClient groups enriched sales by client and aggregates spend,
// purchase count and first/last purchase dates. Clients appear in order of
// first appearance in the input; sales without a client are grouped under
// UnassignedClientKey.
func SummarizeByClient(enriched []Enriched) []ClientSummary {
	index := map[string]int{}
	summaries := []ClientSummary{}
	firsts := map[string]time.Time{}
	lasts := map[string]time.Time{}

	for _, e := range enriched {
		key := UnassignedClientKey
		name := "Unassigned"
		if e.ClientID != nil {
			key = *e.ClientID
			if e.Client != nil {
				name = e.Client.DisplayName()
			} else {
				name = key
			}
		}

		i, seen := index[key]
		if !seen {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, ClientSummary{
				ClientID:   key,
				ClientName: name,
				TotalSpend: decimal.Zero,
			})
		}

		summaries[i].TotalSpend = summaries[i].TotalSpend.Add(e.SalePrice)
		summaries[i].PurchaseCount++

		d := e.SaleDate
		if d.IsZero() {
			continue
		}
		if f, ok := firsts[key]; !ok || d.Before(f) {
			firsts[key] = d
		}
		if l, ok := lasts[key]; !ok || d.After(l) {
			lasts[key] = d
		}
	}

	for i := range summaries {
		key := summaries[i].ClientID
		if f, ok := firsts[key]; ok {
			summaries[i].FirstPurchase = f.Format(isoDate)
		}
		if l, ok := lasts[key]; ok {
			summaries[i].LastPurchase = l.Format(isoDate)
		}
	}
	return summaries
}
