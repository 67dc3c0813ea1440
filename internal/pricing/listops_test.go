package pricing

import (
	"testing"

	"nexusorder/internal/model"

	"github.com/stretchr/testify/assert"
)

func listOrders() []model.Order {
	return []model.Order{
		{ClientName: "Telco Norte", ServiceName: "Fiber splice", SellingCompany: "Acme", Status: "En Análisis", PONumber: "PO-100", Date: "2024-03-01", Quantity: 10, UnitPrice: 5},
		{ClientName: "Vial Sur", ServiceName: "Trenching", SellingCompany: "Globex", Status: "Facturado", PONumber: "PO-200", Date: "2024-01-15", Quantity: 4, UnitPrice: 25,
			ProgressLogs: []model.ProgressLogEntry{{Quantity: 4}}},
		{ClientName: "Telco Sur", ServiceName: "Survey", SellingCompany: "Acme", Status: "En Desarrollo", PONumber: "XA-1", Date: "2024-02-10", Quantity: 8, UnitPrice: 10,
			ProgressLogs: []model.ProgressLogEntry{{Quantity: 2}}},
	}
}

func TestFilterOrders_FreeTextSearchAcrossFields(t *testing.T) {
	orders := listOrders()

	assert.Len(t, FilterOrders(orders, ListFilter{Search: "telco"}), 2)
	assert.Len(t, FilterOrders(orders, ListFilter{Search: "po-200"}), 1)
	assert.Len(t, FilterOrders(orders, ListFilter{Search: "TRENCH"}), 1)
	assert.Len(t, FilterOrders(orders, ListFilter{Search: "nothing"}), 0)
}

func TestFilterOrders_DimensionsAndTogether(t *testing.T) {
	orders := listOrders()

	// OR within a dimension
	got := FilterOrders(orders, ListFilter{Statuses: []string{"Facturado", "En Desarrollo"}})
	assert.Len(t, got, 2)

	// AND across dimensions
	got = FilterOrders(orders, ListFilter{Companies: []string{"Acme"}, Statuses: []string{"En Desarrollo"}})
	assert.Len(t, got, 1)
	assert.Equal(t, "Telco Sur", got[0].ClientName)
}

func TestFilterOrders_EmptyFilterKeepsEverything(t *testing.T) {
	orders := listOrders()
	assert.Len(t, FilterOrders(orders, ListFilter{}), len(orders))
}

func TestSortOrders_StringCaseInsensitive(t *testing.T) {
	orders := []model.Order{
		{ClientName: "beta"},
		{ClientName: "Alfa"},
		{ClientName: ""}, // missing values coerce to empty and sort first
	}

	SortOrders(orders, SortByClient, true)

	assert.Equal(t, "", orders[0].ClientName)
	assert.Equal(t, "Alfa", orders[1].ClientName)
	assert.Equal(t, "beta", orders[2].ClientName)
}

func TestSortOrders_NumericAndDirection(t *testing.T) {
	orders := listOrders()

	SortOrders(orders, SortByTotalValue, false)
	assert.Equal(t, 100.0, ComputeOrderEconomics(orders[0]).TotalValue)
	assert.Equal(t, 50.0, ComputeOrderEconomics(orders[2]).TotalValue)

	SortOrders(orders, SortByTotalValue, true)
	assert.Equal(t, 50.0, ComputeOrderEconomics(orders[0]).TotalValue)
}

func TestSortOrders_ProgressUsesComputedRatio(t *testing.T) {
	orders := listOrders()

	SortOrders(orders, SortByProgress, false)

	// Completion ratios: Vial Sur 1.0, Telco Sur 0.25, Telco Norte 0.
	assert.Equal(t, "Vial Sur", orders[0].ClientName)
	assert.Equal(t, "Telco Sur", orders[1].ClientName)
	assert.Equal(t, "Telco Norte", orders[2].ClientName)
}

func TestSortOrders_UnknownColumnIsNoop(t *testing.T) {
	orders := listOrders()
	SortOrders(orders, "bogus", true)
	assert.Equal(t, "Telco Norte", orders[0].ClientName)
}
