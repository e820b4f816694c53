package sale

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeunkim/luthier-crm/internal/domain/client"
)

func TestSummarizeByClient(t *testing.T) {
	clients := ClientMap([]*client.Client{
		mkClient("c1", "Jane", "Park", "jane@example.com"),
		mkClient("c2", "Min", "Lee", "min@example.com"),
	})
	enriched := Enrich([]*Sale{
		mkSale("s1", strptr("c1"), nil, 1000, "2024-01-15"),
		mkSale("s2", strptr("c1"), nil, 2000, "2024-02-20"),
		mkSale("s3", strptr("c2"), nil, 1500, "2024-01-10"),
	}, clients, nil)

	summaries := SummarizeByClient(enriched)
	require.Len(t, summaries, 2)

	c1 := summaries[0]
	assert.Equal(t, "c1", c1.ClientID)
	assert.Equal(t, "Jane Park", c1.ClientName)
	assert.True(t, c1.TotalSpend.Equal(decimal.NewFromInt(3000)), "total spend = %s", c1.TotalSpend)
	assert.Equal(t, 2, c1.PurchaseCount)
	assert.Equal(t, "2024-01-15", c1.FirstPurchase)
	assert.Equal(t, "2024-02-20", c1.LastPurchase)

	c2 := summaries[1]
	assert.Equal(t, "c2", c2.ClientID)
	assert.True(t, c2.TotalSpend.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 1, c2.PurchaseCount)
	assert.Equal(t, "2024-01-10", c2.FirstPurchase)
	assert.Equal(t, "2024-01-10", c2.LastPurchase)
}

func TestSummarizeByClientGroupsUnassigned(t *testing.T) {
	enriched := Enrich([]*Sale{
		mkSale("s1", nil, nil, 700, "2024-03-01"),
		mkSale("s2", strptr("ghost"), nil, 300, "2024-03-02"),
	}, nil, nil)

	summaries := SummarizeByClient(enriched)
	require.Len(t, summaries, 2)
	assert.Equal(t, UnassignedClientKey, summaries[0].ClientID)
	assert.Equal(t, "Unassigned", summaries[0].ClientName)
	// a dangling reference keeps its id so the row stays traceable
	assert.Equal(t, "ghost", summaries[1].ClientID)
	assert.Equal(t, "ghost", summaries[1].ClientName)
}

func TestSummarizeByClientEmpty(t *testing.T) {
	assert.Empty(t, SummarizeByClient(nil))
}
