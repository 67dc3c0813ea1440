package extract

import (
	"testing"

	"nexusorder/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestApply_FillsOnlyEmptyFields(t *testing.T) {
	draft := &model.Order{
		ClientName: "Acme Corp",
		Quantity:   5,
	}
	suggestion := &OrderSuggestion{
		ClientName:    "Wrong Client",
		ServiceName:   "Fiber splicing",
		UnitOfMeasure: "m",
		Quantity:      120,
		PONumber:      "PO-4411",
		Observations:  "Night shift only",
	}

	Apply(draft, suggestion)

	assert.Equal(t, "Acme Corp", draft.ClientName, "typed fields must survive")
	assert.Equal(t, 5.0, draft.Quantity)
	assert.Equal(t, "Fiber splicing", draft.ServiceName)
	assert.Equal(t, "m", draft.UnitOfMeasure)
	assert.Equal(t, "PO-4411", draft.PONumber)
	assert.Equal(t, "Night shift only", draft.Observations)
}

func TestApply_EmptySuggestionChangesNothing(t *testing.T) {
	draft := &model.Order{ClientName: "Acme Corp", ServiceName: "Trenching"}
	before := *draft

	Apply(draft, &OrderSuggestion{})

	assert.Equal(t, before, *draft)
}

func TestApply_NilSafe(t *testing.T) {
	Apply(nil, &OrderSuggestion{ClientName: "x"})
	Apply(&model.Order{}, nil)
}
