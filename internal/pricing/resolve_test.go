package pricing

import (
	"testing"

	"nexusorder/internal/model"

	"github.com/stretchr/testify/assert"
)

func entry(company, client, contractor, service string, price float64) model.PriceListEntry {
	return model.PriceListEntry{
		ServiceName:    service,
		SellingCompany: company,
		ClientID:       client,
		ContractorID:   contractor,
		UnitPrice:      price,
		ValidFrom:      "2024-01-01",
		ValidTo:        "2024-12-31",
	}
}

func TestResolveEligiblePrices_CompanyMustMatchExactly(t *testing.T) {
	catalog := []model.PriceListEntry{
		entry("Acme", "", "", "Fiber splice", 100),
		entry("Globex", "", "", "Fiber splice", 90),
	}

	got := ResolveEligiblePrices(catalog, ResolveContext{SellingCompany: "Acme", AsOfDate: "2024-06-01"})

	assert.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].SellingCompany)
}

func TestResolveEligiblePrices_ClientRules(t *testing.T) {
	catalog := []model.PriceListEntry{
		entry("Acme", "", "", "Fiber splice", 100),   // generic, always passes
		entry("Acme", "C1", "", "Fiber splice", 150), // only for C1
		entry("Acme", "C2", "", "Fiber splice", 140), // only for C2
	}

	got := ResolveEligiblePrices(catalog, ResolveContext{SellingCompany: "Acme", ClientID: "C1", AsOfDate: "2024-06-01"})

	assert.Len(t, got, 2)
	assert.Equal(t, "", got[0].ClientID)
	assert.Equal(t, "C1", got[1].ClientID)
}

func TestResolveEligiblePrices_ContractorNarrowsButDoesNotPrefilter(t *testing.T) {
	catalog := []model.PriceListEntry{
		entry("Acme", "", "", "Trenching", 100),
		entry("Acme", "", "T1", "Trenching", 80),
		entry("Acme", "", "T2", "Trenching", 70),
	}

	// No contractor picked yet: contractor-specific entries still show.
	noPick := ResolveEligiblePrices(catalog, ResolveContext{SellingCompany: "Acme", AsOfDate: "2024-06-01"})
	assert.Len(t, noPick, 3)

	// Contractor picked: only generic and matching entries remain.
	picked := ResolveEligiblePrices(catalog, ResolveContext{SellingCompany: "Acme", ContractorID: "T1", AsOfDate: "2024-06-01"})
	assert.Len(t, picked, 2)
	assert.Equal(t, "", picked[0].ContractorID)
	assert.Equal(t, "T1", picked[1].ContractorID)
}

func TestResolveEligiblePrices_DateRangeInclusive(t *testing.T) {
	catalog := []model.PriceListEntry{entry("Acme", "", "", "Survey", 100)}

	for _, tc := range []struct {
		date string
		want int
	}{
		{"2023-12-31", 0},
		{"2024-01-01", 1},
		{"2024-06-15", 1},
		{"2024-12-31", 1},
		{"2025-01-01", 0},
	} {
		got := ResolveEligiblePrices(catalog, ResolveContext{SellingCompany: "Acme", AsOfDate: tc.date})
		assert.Len(t, got, tc.want, "asOfDate %s", tc.date)
	}
}

func TestResolveEligiblePrices_EmptyResultIsValid(t *testing.T) {
	got := ResolveEligiblePrices(nil, ResolveContext{SellingCompany: "Acme", AsOfDate: "2024-06-01"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolveEligiblePrices_PreservesCatalogOrder(t *testing.T) {
	catalog := []model.PriceListEntry{
		entry("Acme", "", "", "B", 1),
		entry("Acme", "", "", "A", 2),
		entry("Acme", "", "", "C", 3),
	}

	got := ResolveEligiblePrices(catalog, ResolveContext{SellingCompany: "Acme", AsOfDate: "2024-02-02"})

	names := []string{got[0].ServiceName, got[1].ServiceName, got[2].ServiceName}
	assert.Equal(t, []string{"B", "A", "C"}, names)
}

// Overlapping generic and client-specific entries for the same service:
// auto-fill takes whichever comes first in catalog order (here the generic
// one at 100), not the more specific match at 150.
func TestAutoFill_FirstMatchWinsOverSpecificity(t *testing.T) {
	catalog := []model.PriceListEntry{
		entry("Acme", "", "", "Fiber splice", 100),
		entry("Acme", "C1", "", "Fiber splice", 150),
	}

	eligible := ResolveEligiblePrices(catalog, ResolveContext{SellingCompany: "Acme", ClientID: "C1", AsOfDate: "2024-06-01"})
	assert.Len(t, eligible, 2)

	match, ok := AutoFill(eligible, "Fiber splice")
	assert.True(t, ok)
	assert.Equal(t, 100.0, match.UnitPrice)
}

func TestAutoFill_ExactNameOnly(t *testing.T) {
	eligible := []model.PriceListEntry{entry("Acme", "", "", "Fiber splice", 100)}

	_, ok := AutoFill(eligible, "Fiber")
	assert.False(t, ok)

	_, ok = AutoFill(nil, "Fiber splice")
	assert.False(t, ok)
}
