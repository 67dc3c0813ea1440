package extract

import "nexusorder/internal/model"

// Apply copies suggested values into a draft order. A suggestion only fills
// blanks: fields the clerk already typed are never overwritten.
func Apply(draft *model.Order, s *OrderSuggestion) {
	if draft == nil || s == nil {
		return
	}
	if draft.ClientName == "" && s.ClientName != "" {
		draft.ClientName = s.ClientName
	}
	if draft.ServiceName == "" && s.ServiceName != "" {
		draft.ServiceName = s.ServiceName
	}
	if draft.UnitOfMeasure == "" && s.UnitOfMeasure != "" {
		draft.UnitOfMeasure = s.UnitOfMeasure
	}
	if draft.Quantity == 0 && s.Quantity != 0 {
		draft.Quantity = s.Quantity
	}
	if draft.PONumber == "" && s.PONumber != "" {
		draft.PONumber = s.PONumber
	}
	if draft.Observations == "" && s.Observations != "" {
		draft.Observations = s.Observations
	}
}
