package pricing

import (
	"testing"

	"nexusorder/internal/model"

	"github.com/stretchr/testify/assert"
)

func order(company, client, status, date string, qty, price, cost float64) model.Order {
	return model.Order{
		SellingCompany: company,
		ClientName:     client,
		ClientID:       client,
		Status:         status,
		Date:           date,
		Quantity:       qty,
		UnitPrice:      price,
		UnitCost:       cost,
	}
}

func TestAggregateBy_RevenueByCompanyConservesTotal(t *testing.T) {
	orders := []model.Order{
		order("Acme", "C1", "En Análisis", "2024-01-10", 2, 100, 0),
		order("Acme", "C2", "Facturado", "2024-02-10", 3, 50, 0),
		order("Globex", "C1", "Facturado", "2024-02-11", 1, 999, 0),
	}

	byCompany := AggregateBy(orders, func(o model.Order) string { return o.SellingCompany }, TotalValue)

	var sum, want float64
	for _, v := range byCompany {
		sum += v
	}
	for _, o := range orders {
		want += ComputeOrderEconomics(o).TotalValue
	}
	assert.Equal(t, want, sum)
	assert.Equal(t, 350.0, byCompany["Acme"])
	assert.Equal(t, 999.0, byCompany["Globex"])
}

func TestAggregateBy_CountByStatus(t *testing.T) {
	orders := []model.Order{
		order("Acme", "C1", "En Análisis", "2024-01-10", 1, 1, 0),
		order("Acme", "C2", "En Análisis", "2024-01-11", 1, 1, 0),
		order("Acme", "C3", "Facturado", "2024-01-12", 1, 1, 0),
	}

	byStatus := AggregateBy(orders, func(o model.Order) string { return o.Status }, CountOne)

	assert.Equal(t, 2.0, byStatus["En Análisis"])
	assert.Equal(t, 1.0, byStatus["Facturado"])
}

func TestAggregateBy_EmptyInput(t *testing.T) {
	byCompany := AggregateBy(nil, func(o model.Order) string { return o.SellingCompany }, TotalValue)
	assert.Empty(t, byCompany)
}

func TestBreakdown_DeterministicOrdering(t *testing.T) {
	totals := map[string]float64{"b": 2, "a": 1, "c": 3}

	got := Breakdown(totals)

	assert.Equal(t, []model.RankedEntry{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}}, got)
}

func TestTopN_DescendingWithTruncation(t *testing.T) {
	orders := []model.Order{
		order("Acme", "C1", "s", "2024-01-01", 1, 10, 0),
		order("Acme", "C2", "s", "2024-01-02", 1, 50, 0),
		order("Acme", "C3", "s", "2024-01-03", 1, 30, 0),
	}

	top2 := TopN(orders, func(o model.Order) string { return o.ClientName }, Margin, 2)

	assert.Equal(t, []model.RankedEntry{{Key: "C2", Value: 50}, {Key: "C3", Value: 30}}, top2)
}

// Tied margins must keep the clients' original encounter order.
func TestTopN_TieKeepsEncounterOrder(t *testing.T) {
	orders := []model.Order{
		order("Acme", "C-later-bigger", "s", "2024-01-01", 1, 20, 0),
		order("Acme", "C-tied-first", "s", "2024-01-02", 1, 10, 0),
		order("Acme", "C-tied-second", "s", "2024-01-03", 1, 10, 0),
	}

	top := TopN(orders, func(o model.Order) string { return o.ClientName }, Margin, 5)

	assert.Equal(t, "C-later-bigger", top[0].Key)
	assert.Equal(t, "C-tied-first", top[1].Key)
	assert.Equal(t, "C-tied-second", top[2].Key)
}

func TestMonthlyTrend_SortedAndTruncatedToRecent(t *testing.T) {
	var orders []model.Order
	for _, date := range []string{
		"2024-01-05", "2024-02-05", "2024-03-05", "2024-04-05",
		"2024-05-05", "2024-06-05", "2024-07-05", "2024-02-20",
	} {
		orders = append(orders, order("Acme", "C1", "s", date, 1, 10, 0))
	}

	trend := MonthlyTrend(orders, TotalValue, 6)

	assert.Len(t, trend, 6)
	assert.Equal(t, "2024-02", trend[0].Month) // 2024-01 dropped, only last 6 periods kept
	assert.Equal(t, 20.0, trend[0].Value)      // two february orders accumulated
	assert.Equal(t, "2024-07", trend[5].Month)
}

func TestContractorKey_FallsBackToUnassigned(t *testing.T) {
	assert.Equal(t, UnassignedContractorLabel, ContractorKey(model.Order{}))
	assert.Equal(t, "Norte SRL", ContractorKey(model.Order{ContractorID: "T1", ContractorName: "Norte SRL"}))
	assert.Equal(t, "T1", ContractorKey(model.Order{ContractorID: "T1"}))
}

func TestMonthKey_ShortDates(t *testing.T) {
	assert.Equal(t, "2024-06", MonthKey(model.Order{Date: "2024-06-15"}))
	assert.Equal(t, "", MonthKey(model.Order{}))
}
