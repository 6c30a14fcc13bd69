package pricing

import (
	"github.com/google/wire"

	"github.com/tair/production-costing/internal/pricing/delivery/http"
	"github.com/tair/production-costing/internal/pricing/usecase/query"
)

// Module exposes the pricing query and its HTTP surface.
type Module struct {
	Query *query.ListPricedProductsHandler
	HTTP  *http.PricingHandler
}

func NewModule(q *query.ListPricedProductsHandler, h *http.PricingHandler) *Module {
	return &Module{Query: q, HTTP: h}
}

// Wire sets
var HandlerSet = wire.NewSet(
	query.NewListPricedProductsHandler,
	http.NewPricingHandler,
	NewModule,
)
