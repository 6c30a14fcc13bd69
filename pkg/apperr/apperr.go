// Package apperr defines the error kinds shared by the costing service.
//
// Every kind is a sentinel. Concrete errors are marked with their kind so
// callers classify them with errors.Is regardless of how much context was
// wrapped around them on the way up.
package apperr

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownUnit          = errors.New("unknown unit")
	ErrIncompatibleUnits    = errors.New("incompatible units")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrIngredientNotFound   = errors.New("ingredient not found")
	ErrSubproductNotFound   = errors.New("subproduct not found")
	ErrFinalProductNotFound = errors.New("final product not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrClientInactive       = errors.New("client inactive")
	ErrInvalidYield         = errors.New("invalid yield")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrInvalidInput         = errors.New("invalid input")
	ErrAlreadyExists        = errors.New("already exists")
	ErrSubproductInUse      = errors.New("subproduct in use")
	ErrFinalProductInUse    = errors.New("final product in use")
	ErrStoreUnavailable     = errors.New("store unavailable")
)

// New returns an error with a formatted message marked with kind.
func New(kind error, format string, args ...interface{}) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), kind)
}

// Wrap marks err with kind and prefixes the message.
func Wrap(err error, kind error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.WrapWithDepthf(1, err, format, args...), kind)
}

// InsufficientStockError carries the requested and available quantity, both
// expressed in the product's base unit.
type InsufficientStockError struct {
	Product   string
	Required  decimal.Decimal
	Available decimal.Decimal
	Unit      string
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for " + e.Product + ": required " +
		e.Required.StringFixed(2) + " " + e.Unit + ", available " +
		e.Available.StringFixed(2) + " " + e.Unit
}

// InsufficientStock builds a marked InsufficientStockError.
func InsufficientStock(product string, required, available decimal.Decimal, unit string) error {
	return errors.Mark(&InsufficientStockError{
		Product:   product,
		Required:  required,
		Available: available,
		Unit:      unit,
	}, ErrInsufficientStock)
}

// IsRetryable reports whether the caller may retry the failed operation.
// Only store outages qualify; every domain error is terminal.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

var statusByKind = []struct {
	kind   error
	status int
}{
	{ErrProductNotFound, http.StatusNotFound},
	{ErrIngredientNotFound, http.StatusNotFound},
	{ErrSubproductNotFound, http.StatusNotFound},
	{ErrFinalProductNotFound, http.StatusNotFound},
	{ErrClientNotFound, http.StatusNotFound},
	{ErrInsufficientStock, http.StatusConflict},
	{ErrAlreadyExists, http.StatusConflict},
	{ErrSubproductInUse, http.StatusConflict},
	{ErrFinalProductInUse, http.StatusConflict},
	{ErrClientInactive, http.StatusConflict},
	{ErrUnknownUnit, http.StatusUnprocessableEntity},
	{ErrIncompatibleUnits, http.StatusUnprocessableEntity},
	{ErrInvalidQuantity, http.StatusUnprocessableEntity},
	{ErrInvalidYield, http.StatusUnprocessableEntity},
	{ErrInvalidPrice, http.StatusUnprocessableEntity},
	{ErrInvalidInput, http.StatusBadRequest},
	{ErrStoreUnavailable, http.StatusServiceUnavailable},
}

// HTTPStatus maps an error to the status code the HTTP layer responds with.
func HTTPStatus(err error) int {
	for _, m := range statusByKind {
		if errors.Is(err, m.kind) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// Kind returns the short name of the error kind, or "internal".
func Kind(err error) string {
	for _, m := range statusByKind {
		if errors.Is(err, m.kind) {
			return m.kind.Error()
		}
	}
	return "internal"
}
