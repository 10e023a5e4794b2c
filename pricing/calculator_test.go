package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ventas-backoffice/models"
)

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 20.0, LineTotal(2, 10))
	assert.Equal(t, 0.0, LineTotal(0, 99.9))
	assert.Equal(t, 53.25, LineTotal(1.5, 35.5))
}

func TestOrderTotal(t *testing.T) {
	lines := []models.OrderLine{
		{Quantity: 1, UnitPrice: 10},
		{Quantity: 1, UnitPrice: 20},
		{Quantity: 1, UnitPrice: 30},
	}
	assert.Equal(t, 60.0, OrderTotal(lines))
	assert.Equal(t, 0.0, OrderTotal(nil))
}

func TestOrderTotalMatchesLineSum(t *testing.T) {
	lines := []models.OrderLine{
		{Quantity: 3, UnitPrice: 12.4},
		{Quantity: 0.5, UnitPrice: 200},
		{Quantity: 7, UnitPrice: 1.99},
	}
	var want float64
	for _, l := range lines {
		want += l.Quantity * l.UnitPrice
	}
	assert.Equal(t, want, OrderTotal(lines))
}

func TestSplitTax(t *testing.T) {
	split := SplitTax(60, DefaultTaxRate)

	// Same formula the consuming boundary has always displayed.
	require.Equal(t, 60.0/1.18, split.Subtotal)
	require.Equal(t, 60.0-60.0/1.18, split.Tax)
	assert.InDelta(t, 50.8475, split.Subtotal, 0.0001)
	assert.InDelta(t, 9.1525, split.Tax, 0.0001)
}

func TestSplitTaxInvariants(t *testing.T) {
	for _, total := range []float64{0, 0.01, 1, 118, 9999.99, 1234567.89} {
		split := SplitTax(total, DefaultTaxRate)
		assert.Equal(t, total/1.18, split.Subtotal, "total=%v", total)
		assert.Equal(t, total-split.Subtotal, split.Tax, "total=%v", total)
		assert.GreaterOrEqual(t, split.Subtotal, 0.0)
		assert.GreaterOrEqual(t, split.Tax, 0.0)
	}
}

func TestSplitTaxZeroRate(t *testing.T) {
	split := SplitTax(100, 0)
	assert.Equal(t, 100.0, split.Subtotal)
	assert.Equal(t, 0.0, split.Tax)
}
