package pricing

import (
	"nexusorder/internal/model"
)

// Economics carries every derived financial/progress figure for one order.
// These values are never stored independently of their inputs; list,
// dashboard, export and PDF views all call ComputeOrderEconomics so the
// numbers cannot drift between screens.
type Economics struct {
	TotalValue      float64 `json:"total_value"`
	Cost            float64 `json:"cost"`
	Margin          float64 `json:"margin"`
	MarginPercent   float64 `json:"margin_percent"`
	ProgressTotal   float64 `json:"progress_total"`
	ProgressPercent float64 `json:"progress_percent"`
}

// ComputeOrderEconomics derives totals, margin and completion for an order.
// MarginPercent guards division by zero to 0. ProgressPercent saturates at
// 100 while ProgressTotal stays unclamped, so over-reporting remains visible
// in the raw number even though the percentage bar tops out.
func ComputeOrderEconomics(o model.Order) Economics {
	e := Economics{
		TotalValue: o.Quantity * o.UnitPrice,
		Cost:       o.UnitCost * o.Quantity,
	}
	e.Margin = e.TotalValue - e.Cost

	if e.TotalValue > 0 {
		e.MarginPercent = e.Margin / e.TotalValue * 100
	}

	for _, log := range o.ProgressLogs {
		e.ProgressTotal += log.Quantity
	}

	if o.Quantity > 0 {
		pct := e.ProgressTotal / o.Quantity * 100
		if pct > 100 {
			pct = 100
		}
		e.ProgressPercent = pct
	}

	return e
}

// ProgressRatio is the sortable completion key (progressTotal / quantity,
// 0 when quantity is 0) used by the order list's computed progress column.
func ProgressRatio(o model.Order) float64 {
	if o.Quantity <= 0 {
		return 0
	}
	return ComputeOrderEconomics(o).ProgressTotal / o.Quantity
}
