package units

import "github.com/shopspring/decimal"

// Category groups units that convert into each other.
type Category string

const (
	Mass   Category = "mass"
	Volume Category = "volume"
	Count  Category = "count"
)

// Base units, one per category. Stock is always stored in these.
const (
	Gram       = "g"
	Milliliter = "ml"
	Unit       = "unit"
)

var baseUnits = map[Category]string{
	Mass:   Gram,
	Volume: Milliliter,
	Count:  Unit,
}

// conversionTable holds the factor from each unit to its category base unit.
// Mass and volume values follow NIST Handbook 44 (international avoirdupois
// pound, US customary fluid measures).
var conversionTable = map[Category]map[string]string{
	Mass: {
		"mg": "0.001",
		"g":  "1",
		"kg": "1000",
		"oz": "28.349523125",
		"lb": "453.59237",
	},
	Volume: {
		"ml":   "1",
		"cl":   "10",
		"dl":   "100",
		"l":    "1000",
		"lt":   "1000",
		"floz": "29.5735295625",
		"cup":  "236.5882365",
		"gal":  "3785.411784",
	},
	Count: {
		"unit":  "1",
		"units": "1",
		"pcs":   "1",
		"decen": "10",
		"dozen": "12",
		"docen": "12",
	},
}

type entry struct {
	category Category
	factor   decimal.Decimal
}

var lookup = buildLookup()

func buildLookup() map[string]entry {
	m := make(map[string]entry)
	for category, factors := range conversionTable {
		for unit, factor := range factors {
			m[unit] = entry{category: category, factor: decimal.RequireFromString(factor)}
		}
	}
	return m
}
