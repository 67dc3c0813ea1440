package pricing

import (
	"sort"
	"strings"

	"nexusorder/internal/model"
)

// ListFilter holds the order-list filter state. The free-text search matches
// any of client/service/PO/contractor/id; company and status are
// set-membership predicates. Filters OR within a dimension and AND across
// dimensions.
type ListFilter struct {
	Search    string
	Companies []string
	Statuses  []string
}

// FilterOrders applies the filter in memory, preserving input order
func FilterOrders(orders []model.Order, f ListFilter) []model.Order {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	companies := toSet(f.Companies)
	statuses := toSet(f.Statuses)

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		if len(companies) > 0 && !companies[o.SellingCompany] {
			continue
		}
		if len(statuses) > 0 && !statuses[o.Status] {
			continue
		}
		out = append(out, o)
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func matchesSearch(o model.Order, search string) bool {
	for _, field := range []string{o.ClientName, o.ServiceName, o.PONumber, o.ContractorName, o.ID.String()} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// Sortable column names accepted by SortOrders
const (
	SortByDate       = "date"
	SortByClient     = "client"
	SortByService    = "service"
	SortByCompany    = "company"
	SortByContractor = "contractor"
	SortByPONumber   = "po_number"
	SortByStatus     = "status"
	SortByQuantity   = "quantity"
	SortByUnitPrice  = "unit_price"
	SortByTotalValue = "total_value"
	SortByProgress   = "progress"
)

// SortOrders sorts in place by a single column with direction toggle.
// String columns compare case-insensitively; numeric columns compare
// numerically. The progress column sorts by the same computed completion
// ratio the displayed percentages derive from, so ordering never disagrees
// with what the user sees. Unknown columns leave the slice untouched.
func SortOrders(orders []model.Order, column string, ascending bool) {
	var strKey func(model.Order) string
	var numKey func(model.Order) float64

	switch column {
	case SortByDate:
		strKey = func(o model.Order) string { return o.Date }
	case SortByClient:
		strKey = func(o model.Order) string { return o.ClientName }
	case SortByService:
		strKey = func(o model.Order) string { return o.ServiceName }
	case SortByCompany:
		strKey = func(o model.Order) string { return o.SellingCompany }
	case SortByContractor:
		strKey = func(o model.Order) string { return o.ContractorName }
	case SortByPONumber:
		strKey = func(o model.Order) string { return o.PONumber }
	case SortByStatus:
		strKey = func(o model.Order) string { return o.Status }
	case SortByQuantity:
		numKey = func(o model.Order) float64 { return o.Quantity }
	case SortByUnitPrice:
		numKey = func(o model.Order) float64 { return o.UnitPrice }
	case SortByTotalValue:
		numKey = func(o model.Order) float64 { return ComputeOrderEconomics(o).TotalValue }
	case SortByProgress:
		numKey = ProgressRatio
	default:
		return
	}

	sort.SliceStable(orders, func(i, j int) bool {
		var less bool
		if strKey != nil {
			a := strings.ToLower(strKey(orders[i]))
			b := strings.ToLower(strKey(orders[j]))
			less = a < b
		} else {
			less = numKey(orders[i]) < numKey(orders[j])
		}
		if !ascending {
			return !less && !equalKeys(orders[i], orders[j], strKey, numKey)
		}
		return less
	})
}

func equalKeys(a, b model.Order, strKey func(model.Order) string, numKey func(model.Order) float64) bool {
	if strKey != nil {
		return strings.EqualFold(strKey(a), strKey(b))
	}
	return numKey(a) == numKey(b)
}
