// Package units converts physical quantities between the units the shop
// buys in and the base unit each stock item is kept in.
package units

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/pkg/apperr"
)

// displayThreshold is where grams become kilograms and milliliters become
// liters in human-facing output.
var displayThreshold = decimal.NewFromInt(1000)

// Quantity is an amount paired with the unit it is expressed in.
type Quantity struct {
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
}

// String formats the quantity with two decimals, e.g. "1.50 kg".
func (q Quantity) String() string {
	return q.Value.StringFixed(2) + " " + q.Unit
}

// Normalize lowercases and trims a unit name.
func Normalize(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// CategoryOf returns the category a unit belongs to.
func CategoryOf(unit string) (Category, error) {
	e, ok := lookup[Normalize(unit)]
	if !ok {
		return "", apperr.New(apperr.ErrUnknownUnit, "unit %q is not recognized", unit)
	}
	return e.category, nil
}

// BaseUnitOf returns the base unit of a category.
func BaseUnitOf(category Category) string {
	return baseUnits[category]
}

// BaseUnitFor returns the base unit of the category unit belongs to.
func BaseUnitFor(unit string) (string, error) {
	category, err := CategoryOf(unit)
	if err != nil {
		return "", err
	}
	return BaseUnitOf(category), nil
}

// ToBase converts quantity expressed in unit to the category base unit.
func ToBase(quantity decimal.Decimal, unit string) (Quantity, error) {
	e, ok := lookup[Normalize(unit)]
	if !ok {
		return Quantity{}, apperr.New(apperr.ErrUnknownUnit, "unit %q is not recognized", unit)
	}
	return Quantity{
		Value: quantity.Mul(e.factor),
		Unit:  BaseUnitOf(e.category),
	}, nil
}

// FromBase converts quantity from one unit to another of the same category.
// Despite the name fromUnit need not be the base unit.
func FromBase(quantity decimal.Decimal, fromUnit, toUnit string) (decimal.Decimal, error) {
	from, okFrom := lookup[Normalize(fromUnit)]
	to, okTo := lookup[Normalize(toUnit)]
	switch {
	case !okFrom:
		return decimal.Zero, apperr.Wrap(
			apperr.New(apperr.ErrUnknownUnit, "unit %q is not recognized", fromUnit),
			apperr.ErrIncompatibleUnits, "cannot convert %s to %s", fromUnit, toUnit)
	case !okTo:
		return decimal.Zero, apperr.Wrap(
			apperr.New(apperr.ErrUnknownUnit, "unit %q is not recognized", toUnit),
			apperr.ErrIncompatibleUnits, "cannot convert %s to %s", fromUnit, toUnit)
	case from.category != to.category:
		return decimal.Zero, apperr.New(apperr.ErrIncompatibleUnits,
			"cannot convert %s (%s) to %s (%s)", fromUnit, from.category, toUnit, to.category)
	}
	return quantity.Mul(from.factor).Div(to.factor), nil
}

// ParseQuantity parses user input such as "2.5" or "1,5" into a decimal.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, apperr.New(apperr.ErrInvalidQuantity, "quantity is empty")
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperr.New(apperr.ErrInvalidQuantity, "quantity %q is not a number", raw)
	}
	return d, nil
}

// Display scales a base quantity for humans: 1000 g and above is shown in
// kilograms, 1000 ml and above in liters. Count units are never rescaled.
func Display(quantityBase decimal.Decimal, baseUnit string) Quantity {
	switch Normalize(baseUnit) {
	case Gram:
		if quantityBase.GreaterThanOrEqual(displayThreshold) {
			return Quantity{Value: quantityBase.Div(displayThreshold), Unit: "kg"}
		}
	case Milliliter:
		if quantityBase.GreaterThanOrEqual(displayThreshold) {
			return Quantity{Value: quantityBase.Div(displayThreshold), Unit: "l"}
		}
	}
	return Quantity{Value: quantityBase, Unit: baseUnit}
}

// Known lists every recognized unit grouped by category, sorted by factor.
func Known() map[Category][]string {
	out := make(map[Category][]string, len(conversionTable))
	for category, factors := range conversionTable {
		names := make([]string, 0, len(factors))
		for name := range factors {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			fi, fj := lookup[names[i]].factor, lookup[names[j]].factor
			if fi.Equal(fj) {
				return names[i] < names[j]
			}
			return fi.LessThan(fj)
		})
		out[category] = names
	}
	return out
}
