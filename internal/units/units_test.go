package units

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/production-costing/pkg/apperr"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		unit string
		want Category
	}{
		{"g", Mass},
		{"KG", Mass},
		{" lb ", Mass},
		{"ml", Volume},
		{"Lt", Volume},
		{"docen", Count},
		{"unit", Count},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			got, err := CategoryOf(tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := CategoryOf("bushel")
	assert.True(t, errors.Is(err, apperr.ErrUnknownUnit))
}

func TestToBase(t *testing.T) {
	q, err := ToBase(d("2.5"), "kg")
	require.NoError(t, err)
	assert.True(t, q.Value.Equal(d("2500")))
	assert.Equal(t, Gram, q.Unit)

	q, err = ToBase(d("2"), "lb")
	require.NoError(t, err)
	assert.True(t, q.Value.Equal(d("907.18474")))

	q, err = ToBase(d("1"), "docen")
	require.NoError(t, err)
	assert.True(t, q.Value.Equal(d("12")))
	assert.Equal(t, Unit, q.Unit)

	_, err = ToBase(d("1"), "cubit")
	assert.True(t, errors.Is(err, apperr.ErrUnknownUnit))
}

func TestFromBase(t *testing.T) {
	got, err := FromBase(d("1500"), "g", "kg")
	require.NoError(t, err)
	assert.True(t, got.Equal(d("1.5")))

	got, err = FromBase(d("2"), "l", "ml")
	require.NoError(t, err)
	assert.True(t, got.Equal(d("2000")))

	_, err = FromBase(d("1"), "kg", "ml")
	assert.True(t, errors.Is(err, apperr.ErrIncompatibleUnits))

	_, err = FromBase(d("1"), "kg", "stone")
	assert.True(t, errors.Is(err, apperr.ErrIncompatibleUnits))
	assert.True(t, errors.Is(err, apperr.ErrUnknownUnit))
}

func TestRoundTrip(t *testing.T) {
	for category, names := range Known() {
		for _, unit := range names {
			for _, raw := range []string{"1", "3.25", "1000"} {
				q := d(raw)
				base, err := ToBase(q, unit)
				require.NoError(t, err)
				assert.Equal(t, BaseUnitOf(category), base.Unit)

				back, err := FromBase(base.Value, base.Unit, unit)
				require.NoError(t, err)
				assert.True(t, back.Round(10).Equal(q), "%s %s came back as %s", raw, unit, back)
			}
		}
	}
}

func TestParseQuantity(t *testing.T) {
	got, err := ParseQuantity(" 2.75 ")
	require.NoError(t, err)
	assert.True(t, got.Equal(d("2.75")))

	got, err = ParseQuantity("1,5")
	require.NoError(t, err)
	assert.True(t, got.Equal(d("1.5")))

	for _, bad := range []string{"", "abc", "NaN", "1.2.3"} {
		_, err := ParseQuantity(bad)
		assert.True(t, errors.Is(err, apperr.ErrInvalidQuantity), bad)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		qty  string
		unit string
		want string
	}{
		{"800", Gram, "800.00 g"},
		{"1500", Gram, "1.50 kg"},
		{"1000", Gram, "1.00 kg"},
		{"999.99", Milliliter, "999.99 ml"},
		{"2250", Milliliter, "2.25 l"},
		{"1500", Unit, "1500.00 unit"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(d(tt.qty), tt.unit).String())
		})
	}
}
