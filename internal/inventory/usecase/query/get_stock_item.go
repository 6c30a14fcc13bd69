package query

import (
	"context"
	"strings"

	"github.com/tair/production-costing/internal/inventory/domain"
	"github.com/tair/production-costing/pkg/apperr"
)

// GetStockItemQuery represents the query to get one product's stock
type GetStockItemQuery struct {
	ProductName string
}

// GetStockItemHandler handles get stock item query
type GetStockItemHandler struct {
	repo domain.StockRepository
}

// NewGetStockItemHandler creates a new get stock item handler
func NewGetStockItemHandler(repo domain.StockRepository) *GetStockItemHandler {
	return &GetStockItemHandler{repo: repo}
}

// Handle executes the get stock item query
func (h *GetStockItemHandler) Handle(ctx context.Context, q GetStockItemQuery) (*domain.StockItem, error) {
	name := strings.TrimSpace(q.ProductName)
	if name == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "product name is required")
	}
	return h.repo.FindByProduct(ctx, name)
}
