package query

import (
	"context"

	"github.com/tair/production-costing/internal/purchasing/domain"
)

// ListPurchasesQuery represents the query for purchase history
type ListPurchasesQuery struct {
	Limit  int
	Offset int
}

// ListPurchasesHandler handles list purchases query
type ListPurchasesHandler struct {
	repo domain.PurchaseRepository
}

// NewListPurchasesHandler creates a new list purchases handler
func NewListPurchasesHandler(repo domain.PurchaseRepository) *ListPurchasesHandler {
	return &ListPurchasesHandler{repo: repo}
}

// Handle returns purchases newest first
func (h *ListPurchasesHandler) Handle(ctx context.Context, q ListPurchasesQuery) ([]domain.Purchase, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	purchases, err := h.repo.List(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	if purchases == nil {
		purchases = []domain.Purchase{}
	}
	return purchases, nil
}
