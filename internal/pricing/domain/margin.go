package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Margin is the profit of one unit sold at a given price.
type Margin struct {
	ProfitPerUnit decimal.Decimal
	// MarginPercent is nil when the unit cost is zero.
	MarginPercent *decimal.Decimal
}

// Computable reports whether a margin percentage exists.
func (m Margin) Computable() bool {
	return m.MarginPercent != nil
}

// Compute returns salePrice - unitCost and that profit as a percentage of
// the unit cost. A zero cost yields no percentage instead of dividing by it.
func Compute(unitCost, salePrice decimal.Decimal) Margin {
	profit := salePrice.Sub(unitCost)
	m := Margin{ProfitPerUnit: profit}
	if unitCost.IsZero() {
		return m
	}
	pct := profit.Div(unitCost).Mul(hundred)
	m.MarginPercent = &pct
	return m
}
