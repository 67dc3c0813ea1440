package pricing

import (
	"testing"

	"nexusorder/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestComputeOrderEconomics_FullScenario(t *testing.T) {
	order := model.Order{
		Quantity:  10,
		UnitPrice: 85,
		UnitCost:  50,
		ProgressLogs: []model.ProgressLogEntry{
			{Quantity: 4},
			{Quantity: 7},
		},
	}

	e := ComputeOrderEconomics(order)

	assert.Equal(t, 850.0, e.TotalValue)
	assert.Equal(t, 500.0, e.Cost)
	assert.Equal(t, 350.0, e.Margin)
	assert.InDelta(t, 41.18, e.MarginPercent, 0.005)
	assert.Equal(t, 11.0, e.ProgressTotal)    // unclamped: over-reporting stays visible
	assert.Equal(t, 100.0, e.ProgressPercent) // clamped from 110
}

func TestComputeOrderEconomics_ZeroTotalGuards(t *testing.T) {
	e := ComputeOrderEconomics(model.Order{Quantity: 0, UnitPrice: 0, UnitCost: 10})

	assert.Equal(t, 0.0, e.TotalValue)
	assert.Equal(t, 0.0, e.MarginPercent) // guarded, never NaN/Inf
	assert.Equal(t, 0.0, e.ProgressPercent)
	assert.False(t, e.MarginPercent != e.MarginPercent, "marginPercent must not be NaN")
}

func TestComputeOrderEconomics_MissingCostDefaultsToZero(t *testing.T) {
	e := ComputeOrderEconomics(model.Order{Quantity: 3, UnitPrice: 20})

	assert.Equal(t, 60.0, e.TotalValue)
	assert.Equal(t, 0.0, e.Cost)
	assert.Equal(t, 60.0, e.Margin)
	assert.Equal(t, 100.0, e.MarginPercent)
}

func TestComputeOrderEconomics_NoLogs(t *testing.T) {
	e := ComputeOrderEconomics(model.Order{Quantity: 5, UnitPrice: 10})

	assert.Equal(t, 0.0, e.ProgressTotal)
	assert.Equal(t, 0.0, e.ProgressPercent)
}

func TestComputeOrderEconomics_Idempotent(t *testing.T) {
	order := model.Order{
		Quantity:     7,
		UnitPrice:    12.5,
		UnitCost:     4,
		ProgressLogs: []model.ProgressLogEntry{{Quantity: 2.5}},
	}

	first := ComputeOrderEconomics(order)
	second := ComputeOrderEconomics(order)

	assert.Equal(t, first, second)
}

func TestProgressPercent_AlwaysWithinBounds(t *testing.T) {
	for _, logs := range [][]model.ProgressLogEntry{
		nil,
		{{Quantity: 1}},
		{{Quantity: 10}},
		{{Quantity: 50}, {Quantity: 50}},
	} {
		e := ComputeOrderEconomics(model.Order{Quantity: 10, UnitPrice: 1, ProgressLogs: logs})
		assert.GreaterOrEqual(t, e.ProgressPercent, 0.0)
		assert.LessOrEqual(t, e.ProgressPercent, 100.0)
	}
}

func TestProgressRatio(t *testing.T) {
	order := model.Order{
		Quantity:     8,
		ProgressLogs: []model.ProgressLogEntry{{Quantity: 2}, {Quantity: 2}},
	}
	assert.Equal(t, 0.5, ProgressRatio(order))
	assert.Equal(t, 0.0, ProgressRatio(model.Order{Quantity: 0}))
}
