package pricing

import (
	"sort"

	"nexusorder/internal/model"
)

// UnassignedContractorLabel stands in for orders without a contractor in the
// contractor leaderboard.
const UnassignedContractorLabel = "Sin asignar"

// KeyFn extracts the aggregation dimension from an order
type KeyFn func(model.Order) string

// ValueFn extracts the value to accumulate for an order
type ValueFn func(model.Order) float64

// AggregateBy reduces the order collection into dimension-keyed totals,
// starting at 0 for unseen keys. Empty input yields an empty map.
func AggregateBy(orders []model.Order, key KeyFn, value ValueFn) map[string]float64 {
	out := make(map[string]float64, len(orders))
	for _, o := range orders {
		out[key(o)] += value(o)
	}
	return out
}

// Breakdown flattens a totals map into entries sorted ascending by key, so
// equal inputs always produce identical output regardless of map iteration.
func Breakdown(totals map[string]float64) []model.RankedEntry {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]model.RankedEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.RankedEntry{Key: k, Value: totals[k]})
	}
	return out
}

// TopN aggregates and returns the n highest-valued keys in descending value
// order. Ties keep the keys' first-encounter order in the input collection,
// so the leaderboard is stable across identical requests.
func TopN(orders []model.Order, key KeyFn, value ValueFn, n int) []model.RankedEntry {
	totals := make(map[string]float64, len(orders))
	encounter := make([]string, 0, len(orders))
	for _, o := range orders {
		k := key(o)
		if _, seen := totals[k]; !seen {
			encounter = append(encounter, k)
		}
		totals[k] += value(o)
	}

	ranked := make([]model.RankedEntry, 0, len(encounter))
	for _, k := range encounter {
		ranked = append(ranked, model.RankedEntry{Key: k, Value: totals[k]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MonthKey buckets an order into its "YYYY-MM" registration period
func MonthKey(o model.Order) string {
	if len(o.Date) < 7 {
		return o.Date
	}
	return o.Date[:7]
}

// MonthlyTrend aggregates order value per month, sorted ascending by period,
// truncated to the most recent `periods` buckets.
func MonthlyTrend(orders []model.Order, value ValueFn, periods int) []model.TrendPoint {
	totals := AggregateBy(orders, MonthKey, value)

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	if periods > 0 && len(months) > periods {
		months = months[len(months)-periods:]
	}

	out := make([]model.TrendPoint, 0, len(months))
	for _, m := range months {
		out = append(out, model.TrendPoint{Month: m, Value: totals[m]})
	}
	return out
}

// ContractorKey is the leaderboard dimension for contractors, falling back
// to the unassigned label when the order has none.
func ContractorKey(o model.Order) string {
	if o.ContractorID == "" {
		return UnassignedContractorLabel
	}
	if o.ContractorName != "" {
		return o.ContractorName
	}
	return o.ContractorID
}

// TotalValue is the revenue ValueFn shared by the dashboard breakdowns
func TotalValue(o model.Order) float64 {
	return ComputeOrderEconomics(o).TotalValue
}

// Margin is the profitability ValueFn driving the leaderboards
func Margin(o model.Order) float64 {
	return ComputeOrderEconomics(o).Margin
}

// CountOne counts orders regardless of value, for status breakdowns
func CountOne(model.Order) float64 {
	return 1
}
