package sale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/haeunkim/luthier-crm/internal/domain/client"
	"github.com/haeunkim/luthier-crm/internal/domain/instrument"
)

func strptr(s string) *string { return &s }

func mkSale(id string, clientID, instrumentID *string, price float64, date string) *Sale {
	d, _ := time.Parse("2006-01-02", date)
	return &Sale{
		ID:           id,
		ClientID:     clientID,
		InstrumentID: instrumentID,
		SalePrice:    decimal.NewFromFloat(price),
		SaleDate:     d,
		CreatedAt:    d,
	}
}

func mkClient(id, first, last, email string) *client.Client {
	return &client.Client{ID: id, FirstName: first, LastName: last, Email: email}
}

func mkInstrument(id, maker, instrumentType string) *instrument.Instrument {
	return &instrument.Instrument{ID: id, Maker: maker, Type: instrumentType, Status: instrument.StatusAvailable}
}

func TestClientMapLastWriteWins(t *testing.T) {
	first := mkClient("c1", "Old", "Name", "old@example.com")
	second := mkClient("c1", "New", "Name", "new@example.com")

	m := ClientMap([]*client.Client{first, second})
	assert.Len(t, m, 1)
	assert.Equal(t, "New", m["c1"].FirstName)
}

func TestEnrichIsTotalAndOrderPreserving(t *testing.T) {
	sales := []*Sale{
		mkSale("s1", strptr("c1"), strptr("i1"), 1000, "2024-01-15"),
		mkSale("s2", nil, nil, 2000, "2024-02-20"),
		mkSale("s3", strptr("missing"), strptr("missing"), -500, "2024-03-01"),
	}
	clients := ClientMap([]*client.Client{mkClient("c1", "Jane", "Park", "jane@example.com")})
	instruments := InstrumentMap([]*instrument.Instrument{mkInstrument("i1", "Guarneri", "Violin")})

	enriched := Enrich(sales, clients, instruments)

	assert.Len(t, enriched, len(sales))
	assert.Equal(t, "s1", enriched[0].ID)
	assert.Equal(t, "s2", enriched[1].ID)
	assert.Equal(t, "s3", enriched[2].ID)

	assert.NotNil(t, enriched[0].Client)
	assert.NotNil(t, enriched[0].Instrument)
	// nil id and lookup miss both enrich to nil, not an error
	assert.Nil(t, enriched[1].Client)
	assert.Nil(t, enriched[2].Client)
	assert.Nil(t, enriched[2].Instrument)
}

func TestEnrichWithEmptyMaps(t *testing.T) {
	sales := []*Sale{mkSale("s1", strptr("c1"), nil, 100, "2024-01-01")}
	enriched := Enrich(sales, map[string]*client.Client{}, nil)
	assert.Len(t, enriched, 1)
	assert.Nil(t, enriched[0].Client)
}

func TestFilterBySearchEmptyTermIsIdentity(t *testing.T) {
	enriched := Enrich([]*Sale{
		mkSale("s1", nil, nil, 100, "2024-01-01"),
		mkSale("s2", nil, nil, 200, "2024-01-02"),
	}, nil, nil)

	assert.Equal(t, enriched, FilterBySearch(enriched, ""))
	assert.Equal(t, enriched, FilterBySearch(enriched, "   "))
}

func TestFilterBySearchMatchesClientAndInstrumentFields(t *testing.T) {
	clients := ClientMap([]*client.Client{
		mkClient("c1", "Jane", "Park", "jane@example.com"),
		mkClient("c2", "Min", "Lee", "min@example.com"),
	})
	instruments := InstrumentMap([]*instrument.Instrument{
		mkInstrument("i1", "Guarneri", "Violin"),
		mkInstrument("i2", "Vuillaume", "Cello"),
	})
	enriched := Enrich([]*Sale{
		mkSale("s1", strptr("c1"), strptr("i1"), 1000, "2024-01-01"),
		mkSale("s2", strptr("c2"), strptr("i2"), 2000, "2024-01-02"),
		mkSale("s3", nil, nil, 300, "2024-01-03"),
	}, clients, instruments)

	byName := FilterBySearch(enriched, "jane")
	assert.Len(t, byName, 1)
	assert.Equal(t, "s1", byName[0].ID)

	byEmail := FilterBySearch(enriched, "MIN@EXAMPLE")
	assert.Len(t, byEmail, 1)
	assert.Equal(t, "s2", byEmail[0].ID)

	byMaker := FilterBySearch(enriched, "guarneri")
	assert.Len(t, byMaker, 1)

	byType := FilterBySearch(enriched, "cello")
	assert.Len(t, byType, 1)
	assert.Equal(t, "s2", byType[0].ID)

	assert.Empty(t, FilterBySearch(enriched, "stradivari"))
}

func TestSortByClientNameDescIsReverseOfAsc(t *testing.T) {
	clients := ClientMap([]*client.Client{
		mkClient("c1", "Chloe", "Ahn", "chloe@example.com"),
		mkClient("c2", "", "", "zoe@example.com"), // email fallback sorts last
		mkClient("c3", "Ben", "Cho", "ben@example.com"),
	})
	enriched := Enrich([]*Sale{
		mkSale("s1", strptr("c1"), nil, 1, "2024-01-01"),
		mkSale("s2", strptr("c2"), nil, 2, "2024-01-02"),
		mkSale("s3", strptr("c3"), nil, 3, "2024-01-03"),
	}, clients, nil)

	asc := SortByClientName(enriched, SortAsc)
	assert.Equal(t, []string{"s3", "s1", "s2"}, ids(asc))

	desc := SortByClientName(enriched, SortDesc)
	assert.Equal(t, []string{"s2", "s1", "s3"}, ids(desc))

	// input untouched
	assert.Equal(t, []string{"s1", "s2", "s3"}, ids(enriched))
}

func TestSortByClientNameStableForTies(t *testing.T) {
	clients := ClientMap([]*client.Client{mkClient("c1", "Jane", "Park", "jane@example.com")})
	enriched := Enrich([]*Sale{
		mkSale("s1", strptr("c1"), nil, 1, "2024-01-01"),
		mkSale("s2", strptr("c1"), nil, 2, "2024-01-02"),
	}, clients, nil)

	sorted := SortByClientName(enriched, SortAsc)
	assert.Equal(t, []string{"s1", "s2"}, ids(sorted))
}

func ids(enriched []Enriched) []string {
	out := make([]string, len(enriched))
	for i, e := range enriched {
		out[i] = e.ID
	}
	return out
}
