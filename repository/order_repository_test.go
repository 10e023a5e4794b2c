package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ventas-backoffice/models"
	"ventas-backoffice/pricing"
)

// The write paths derive the header total by projecting accepted inputs
// through linesView and summing with the calculator, so the persisted total
// always matches what the read side would compute from the same lines.
func TestLinesViewFeedsOrderTotal(t *testing.T) {
	accepted := []models.OrderLineInput{
		{CatalogItemID: 1, Quantity: 2, UnitPrice: 25.0},
		{CatalogItemID: 2, Quantity: 1, UnitPrice: 10.0},
	}

	view := linesView(accepted)
	assert.Len(t, view, 2)
	assert.Equal(t, int64(1), view[0].CatalogItemID)
	assert.Equal(t, 2.0, view[0].Quantity)
	assert.Equal(t, 25.0, view[0].UnitPrice)

	assert.Equal(t, 60.0, pricing.OrderTotal(view))
}

func TestLinesViewEmpty(t *testing.T) {
	view := linesView(nil)
	assert.Empty(t, view)
	assert.Equal(t, 0.0, pricing.OrderTotal(view))
}
