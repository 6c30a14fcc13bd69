package domain

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/production-costing/internal/units"
	"github.com/tair/production-costing/pkg/apperr"
)

func grams(v string) units.Quantity {
	return units.Quantity{Value: decimal.RequireFromString(v), Unit: units.Gram}
}

func money(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestNewStockItem(t *testing.T) {
	item, err := NewStockItem("flour", grams("1000"), money("10"))
	require.NoError(t, err)
	assert.True(t, item.WeightedAvgCost.Equal(money("0.01")))
	assert.Equal(t, units.Gram, item.BaseUnit)

	_, err = NewStockItem("flour", grams("0"), money("10"))
	assert.True(t, errors.Is(err, apperr.ErrInvalidQuantity))
}

func TestAddPurchaseIsQuantityWeighted(t *testing.T) {
	item, err := NewStockItem("flour", grams("500"), money("5"))
	require.NoError(t, err)
	require.NoError(t, item.AddPurchase(grams("500"), money("3")))

	assert.True(t, item.QuantityBase.Equal(money("1000")))
	assert.True(t, item.WeightedAvgCost.Equal(money("0.008")))
}

func TestWeightedAverageIsOrderIndependent(t *testing.T) {
	purchases := []struct {
		qty   string
		total string
	}{
		{"250", "4.10"},
		{"1200", "11.00"},
		{"75", "2.99"},
		{"3", "0.07"},
	}

	forward, err := NewStockItem("sugar", grams(purchases[0].qty), money(purchases[0].total))
	require.NoError(t, err)
	for _, p := range purchases[1:] {
		require.NoError(t, forward.AddPurchase(grams(p.qty), money(p.total)))
	}

	last := len(purchases) - 1
	backward, err := NewStockItem("sugar", grams(purchases[last].qty), money(purchases[last].total))
	require.NoError(t, err)
	for i := last - 1; i >= 0; i-- {
		require.NoError(t, backward.AddPurchase(grams(purchases[i].qty), money(purchases[i].total)))
	}

	expected := money("18.16").Div(money("1528"))
	assert.True(t, forward.WeightedAvgCost.Round(12).Equal(expected.Round(12)), forward.WeightedAvgCost.String())
	assert.True(t, backward.WeightedAvgCost.Round(12).Equal(expected.Round(12)), backward.WeightedAvgCost.String())
}

func TestConsumeKeepsAverageAndNeverGoesNegative(t *testing.T) {
	item, err := NewStockItem("flour", grams("1000"), money("10"))
	require.NoError(t, err)

	require.NoError(t, item.Consume(grams("200")))
	assert.True(t, item.QuantityBase.Equal(money("800")))
	assert.True(t, item.WeightedAvgCost.Equal(money("0.01")))

	err = item.Consume(grams("801"))
	require.True(t, errors.Is(err, apperr.ErrInsufficientStock))
	var stockErr *apperr.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.True(t, stockErr.Required.Equal(money("801")))
	assert.True(t, stockErr.Available.Equal(money("800")))
	assert.True(t, item.QuantityBase.Equal(money("800")))

	require.NoError(t, item.Consume(grams("800")))
	assert.True(t, item.QuantityBase.IsZero())
	assert.True(t, item.TotalValue().IsZero())
}

func TestRepurchaseAfterEmptyUsesNewPriceOnly(t *testing.T) {
	item, err := NewStockItem("flour", grams("100"), money("1"))
	require.NoError(t, err)
	require.NoError(t, item.Consume(grams("100")))

	require.NoError(t, item.AddPurchase(grams("100"), money("3")))
	assert.True(t, item.WeightedAvgCost.Equal(money("0.03")))
}

func TestUnitMismatch(t *testing.T) {
	item, err := NewStockItem("milk", units.Quantity{Value: money("1000"), Unit: units.Milliliter}, money("2"))
	require.NoError(t, err)

	err = item.Consume(grams("10"))
	assert.True(t, errors.Is(err, apperr.ErrIncompatibleUnits))

	_, err = item.CostOf(grams("10"))
	assert.True(t, errors.Is(err, apperr.ErrIncompatibleUnits))
}
