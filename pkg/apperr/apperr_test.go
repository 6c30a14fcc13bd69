package apperr

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeepsKindThroughWrapping(t *testing.T) {
	err := New(ErrProductNotFound, "product %q", "flour")
	wrapped := errors.Wrap(err, "consume stock")

	assert.True(t, errors.Is(wrapped, ErrProductNotFound))
	assert.False(t, errors.Is(wrapped, ErrIngredientNotFound))
	assert.Contains(t, wrapped.Error(), "flour")
}

func TestInsufficientStockCarriesQuantities(t *testing.T) {
	err := InsufficientStock("flour", decimal.NewFromInt(1200), decimal.NewFromInt(800), "g")
	err = errors.Wrap(err, "create subproduct")

	require.True(t, errors.Is(err, ErrInsufficientStock))

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "flour", stockErr.Product)
	assert.True(t, stockErr.Required.Equal(decimal.NewFromInt(1200)))
	assert.True(t, stockErr.Available.Equal(decimal.NewFromInt(800)))
	assert.Contains(t, err.Error(), "required 1200.00 g, available 800.00 g")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", New(ErrSubproductNotFound, "subproduct 4"), http.StatusNotFound},
		{"insufficient", InsufficientStock("yeast", decimal.NewFromInt(2), decimal.NewFromInt(1), "g"), http.StatusConflict},
		{"validation", New(ErrInvalidYield, "units produced must be positive"), http.StatusUnprocessableEntity},
		{"store", Wrap(errors.New("dial tcp"), ErrStoreUnavailable, "query"), http.StatusServiceUnavailable},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Wrap(errors.New("connection refused"), ErrStoreUnavailable, "begin tx")))
	assert.False(t, IsRetryable(New(ErrInsufficientStock, "flour")))
	assert.Equal(t, "store unavailable", Kind(Wrap(errors.New("x"), ErrStoreUnavailable, "y")))
	assert.Equal(t, "internal", Kind(errors.New("x")))
}
