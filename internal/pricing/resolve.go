// Package pricing holds the pure pricing-resolution and order-economics
// logic. Nothing in here touches the database or the network; services feed
// it whatever order/price-list snapshot they loaded and render the result.
package pricing

import (
	"nexusorder/internal/model"
)

// ResolveContext is the order-draft selection state driving price resolution.
// AsOfDate is an ISO "YYYY-MM-DD" string; validity checks compare ISO strings
// lexicographically, which is equivalent to date order for this format.
type ResolveContext struct {
	SellingCompany string
	ClientID       string
	ContractorID   string
	AsOfDate       string
}

// ResolveEligiblePrices filters the catalog down to the entries eligible for
// the given context, preserving catalog order. An entry qualifies when:
//
//  1. its selling company matches exactly;
//  2. its client is generic (empty) or equals the context client;
//  3. the contractor does not conflict: a conflict exists only when both the
//     context and the entry name a contractor and they differ. Entries scoped
//     to a contractor still pass while no contractor has been picked yet:
//     contractor selection narrows the list, it does not pre-filter it;
//  4. the context date falls inside the entry's inclusive validity range.
//
// An empty result is valid and means the user enters prices manually.
func ResolveEligiblePrices(catalog []model.PriceListEntry, ctx ResolveContext) []model.PriceListEntry {
	eligible := make([]model.PriceListEntry, 0, len(catalog))
	for _, entry := range catalog {
		if entry.SellingCompany != ctx.SellingCompany {
			continue
		}
		if entry.ClientID != "" && entry.ClientID != ctx.ClientID {
			continue
		}
		if ctx.ContractorID != "" && entry.ContractorID != "" && entry.ContractorID != ctx.ContractorID {
			continue
		}
		if ctx.AsOfDate < entry.ValidFrom || ctx.AsOfDate > entry.ValidTo {
			continue
		}
		eligible = append(eligible, entry)
	}
	return eligible
}

// AutoFill returns the entry used to pre-populate unit price/cost/unit for a
// typed service name: the first exact name match in eligible order. With
// overlapping generic and client-specific entries for the same service this
// picks whichever comes first in the catalog, not the most specific one.
// Observed behavior, kept as-is.
func AutoFill(eligible []model.PriceListEntry, serviceName string) (model.PriceListEntry, bool) {
	for _, entry := range eligible {
		if entry.ServiceName == serviceName {
			return entry, true
		}
	}
	return model.PriceListEntry{}, false
}
