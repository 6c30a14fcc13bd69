package query

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/pricing/domain"
	proddomain "github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/pkg/cache"
	"github.com/tair/production-costing/pkg/logger"
)

const (
	cachePrefix = "pricing:"
	cacheKeyAll = cachePrefix + "all"
)

// PricedProduct is what sales screens need to quote a final product.
// Decimals go through the cache via their binary marshalers.
type PricedProduct struct {
	ID            uint             `json:"id" msgpack:"id"`
	Name          string           `json:"name" msgpack:"name"`
	UnitCost      decimal.Decimal  `json:"unit_cost" msgpack:"unit_cost"`
	SalePrice     decimal.Decimal  `json:"sale_price" msgpack:"sale_price"`
	ProfitPerUnit decimal.Decimal  `json:"profit_per_unit" msgpack:"profit_per_unit"`
	MarginPercent *decimal.Decimal `json:"margin_percent" msgpack:"margin_percent"`
	Computable    bool             `json:"margin_computable" msgpack:"computable"`
}

// ListPricedProductsHandler handles the pricing query. Results are cached
// until the catalog changes or the TTL runs out.
type ListPricedProductsHandler struct {
	repo  proddomain.FinalProductRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewListPricedProductsHandler creates a new pricing query handler
func NewListPricedProductsHandler(repo proddomain.FinalProductRepository, c cache.Cache, ttl time.Duration) *ListPricedProductsHandler {
	return &ListPricedProductsHandler{repo: repo, cache: c, ttl: ttl}
}

func (h *ListPricedProductsHandler) Handle(ctx context.Context) ([]PricedProduct, error) {
	var cached []PricedProduct
	found, err := h.cache.Get(ctx, cacheKeyAll, &cached)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Pricing cache read failed")
	}
	if found && err == nil {
		return cached, nil
	}

	rows, err := h.repo.ListWithCost(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PricedProduct, 0, len(rows))
	for _, fp := range rows {
		unitCost := fp.UnitCost()
		salePrice := fp.SalePriceOrZero()
		m := domain.Compute(unitCost, salePrice)
		p := PricedProduct{
			ID:            fp.ID,
			Name:          fp.Name,
			UnitCost:      unitCost,
			SalePrice:     salePrice,
			ProfitPerUnit: m.ProfitPerUnit,
			MarginPercent: m.MarginPercent,
			Computable:    m.Computable(),
		}
		out = append(out, p)
	}

	if err := h.cache.Set(ctx, cacheKeyAll, out, h.ttl); err != nil {
		logger.Warn(ctx).Err(err).Msg("Pricing cache write failed")
	}
	return out, nil
}

// CatalogChanged drops cached pricing after a cost or price change.
func (h *ListPricedProductsHandler) CatalogChanged(ctx context.Context) {
	if err := h.cache.DeletePrefix(ctx, cachePrefix); err != nil {
		logger.Warn(ctx).Err(err).Msg("Pricing cache invalidation failed")
	}
}
