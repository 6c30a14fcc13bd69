package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		cost       string
		price      string
		profit     string
		percent    string
		computable bool
	}{
		{name: "positive margin", cost: "0.50", price: "0.80", profit: "0.30", percent: "60", computable: true},
		{name: "buns", cost: "0.10", price: "0.25", profit: "0.15", percent: "150", computable: true},
		{name: "loss", cost: "2", price: "1.5", profit: "-0.5", percent: "-25", computable: true},
		{name: "unset price", cost: "0.40", price: "0", profit: "-0.40", percent: "-100", computable: true},
		{name: "zero cost", cost: "0", price: "1", profit: "1", computable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compute(decimal.RequireFromString(tt.cost), decimal.RequireFromString(tt.price))
			assert.True(t, m.ProfitPerUnit.Equal(decimal.RequireFromString(tt.profit)), m.ProfitPerUnit.String())
			require.Equal(t, tt.computable, m.Computable())
			if tt.computable {
				assert.True(t, m.MarginPercent.Equal(decimal.RequireFromString(tt.percent)), m.MarginPercent.String())
			}
		})
	}
}

func TestComputeFormatsToTwoPlaces(t *testing.T) {
	m := Compute(decimal.RequireFromString("0.50"), decimal.RequireFromString("0.80"))
	assert.Equal(t, "0.30", m.ProfitPerUnit.StringFixed(2))
	assert.Equal(t, "60.00", m.MarginPercent.StringFixed(2))
}
