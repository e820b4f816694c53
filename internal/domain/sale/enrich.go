package sale

import (
	"sort"
	"strings"

	"github.com/haeunkim/luthier-crm/internal/domain/client"
	"github.com/haeunkim/luthier-crm/internal/domain/instrument"
)

// ClientMap builds an id-keyed lookup. Last write wins on duplicate ids.
func ClientMap(clients []*client.Client) map[string]*client.Client {
	m := make(map[string]*client.Client, len(clients))
	for _, c := range clients {
		m[c.ID] = c
	}
	return m
}

// InstrumentMap builds an id-keyed lookup. Last write wins on duplicate ids.
func InstrumentMap(instruments []*instrument.Instrument) map[string]*instrument.Instrument {
	m := make(map[string]*instrument.Instrument, len(instruments))
	for _, i := range instruments {
		m[i.ID] = i
	}
	return m
}

// Enrich joins each sale with its client and instrument via the lookup maps.
// Order is preserved and the output always has one entry per input sale;
// missing references leave the corresponding pointer nil.
func Enrich(sales []*Sale, clients map[string]*client.Client, instruments map[string]*instrument.Instrument) []Enriched {
	enriched := make([]Enriched, 0, len(sales))
	for _, s := range sales {
		e := Enriched{Sale: *s}
		if s.ClientID != nil {
			e.Client = clients[*s.ClientID]
		}
		if s.InstrumentID != nil {
			e.Instrument = instruments[*s.InstrumentID]
		}
		enriched = append(enriched, e)
	}
	return enriched
}

// FilterBySearch keeps sales whose client name, client email, instrument
// maker or instrument type contains the term, case-insensitively. An empty
// term returns the input unfiltered.
func FilterBySearch(enriched []Enriched, term string) []Enriched {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return enriched
	}

	out := make([]Enriched, 0, len(enriched))
	for _, e := range enriched {
		if matchesSearch(e, term) {
			out = append(out, e)
		}
	}
	return out
}

func matchesSearch(e Enriched, term string) bool {
	if e.Client != nil {
		if strings.Contains(strings.ToLower(e.Client.FirstName), term) ||
			strings.Contains(strings.ToLower(e.Client.LastName), term) ||
			strings.Contains(strings.ToLower(e.Client.Email), term) {
			return true
		}
	}
	if e.Instrument != nil {
		if strings.Contains(strings.ToLower(e.Instrument.Maker), term) ||
			strings.Contains(strings.ToLower(e.Instrument.Type), term) {
			return true
		}
	}
	return false
}

// SortDirection orders SortByClientName output.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortByClientName sorts by the client's trimmed "first last" name, falling
// back to the client email when both name parts are empty. The sort is
// stable; desc is the exact reverse of asc.
func SortByClientName(enriched []Enriched, direction SortDirection) []Enriched {
	out := make([]Enriched, len(enriched))
	copy(out, enriched)

	sort.SliceStable(out, func(a, b int) bool {
		return clientSortKey(out[a]) < clientSortKey(out[b])
	})
	if direction == SortDesc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func clientSortKey(e Enriched) string {
	if e.Client == nil {
		return ""
	}
	return strings.ToLower(e.Client.DisplayName())
}
