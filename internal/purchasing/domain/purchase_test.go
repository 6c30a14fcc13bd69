package domain

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/production-costing/pkg/apperr"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBuildBulk(t *testing.T) {
	p, err := Intake{
		ProductName: " flour ",
		Supplier:    "Mill & Co",
		Kind:        KindBulk,
		Quantity:    dec("2.5"),
		Unit:        "KG",
		UnitPrice:   dec("4"),
	}.Build()
	require.NoError(t, err)

	assert.Equal(t, "flour", p.ProductName)
	assert.Equal(t, "kg", p.Unit)
	assert.True(t, p.TotalPrice.Equal(dec("10")))
	assert.False(t, p.PackageCount.Valid)
	assert.Nil(t, p.EventID)
}

func TestBuildPackage(t *testing.T) {
	p, err := Intake{
		EventID:      "evt-1",
		ProductName:  "yeast",
		Supplier:     "Bakers Supply",
		Kind:         KindPackage,
		Unit:         "g",
		PackageCount: dec("4"),
		PackageSize:  dec("11"),
		PackagePrice: dec("0.60"),
	}.Build()
	require.NoError(t, err)

	assert.True(t, p.Quantity.Equal(dec("44")))
	assert.True(t, p.TotalPrice.Equal(dec("2.4")))
	assert.True(t, p.UnitPrice.Equal(dec("0.6")))
	require.NotNil(t, p.EventID)
	assert.Equal(t, "evt-1", *p.EventID)
}

func TestBuildRejects(t *testing.T) {
	tests := []struct {
		name string
		in   Intake
		kind error
	}{
		{"no supplier", Intake{ProductName: "flour", Kind: KindBulk, Unit: "g", Quantity: dec("1")}, apperr.ErrInvalidInput},
		{"unknown unit", Intake{ProductName: "flour", Supplier: "s", Kind: KindBulk, Unit: "sack", Quantity: dec("1")}, apperr.ErrUnknownUnit},
		{"zero bulk", Intake{ProductName: "flour", Supplier: "s", Kind: KindBulk, Unit: "g"}, apperr.ErrInvalidQuantity},
		{"negative price", Intake{ProductName: "flour", Supplier: "s", Kind: KindBulk, Unit: "g", Quantity: dec("1"), UnitPrice: dec("-1")}, apperr.ErrInvalidPrice},
		{"empty packages", Intake{ProductName: "flour", Supplier: "s", Kind: KindPackage, Unit: "g", PackageSize: dec("5")}, apperr.ErrInvalidQuantity},
		{"bad kind", Intake{ProductName: "flour", Supplier: "s", Kind: "barter", Unit: "g"}, apperr.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.Build()
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Packages")
	require.NoError(t, err)
	assert.Equal(t, KindPackage, k)

	_, err = ParseKind("loan")
	assert.Error(t, err)
}
