package query

import (
	"context"

	"github.com/tair/production-costing/internal/production/domain"
)

// ListSubproductsHandler handles list subproducts query
type ListSubproductsHandler struct {
	repo domain.SubproductRepository
}

// NewListSubproductsHandler creates a new list subproducts handler
func NewListSubproductsHandler(repo domain.SubproductRepository) *ListSubproductsHandler {
	return &ListSubproductsHandler{repo: repo}
}

// Handle returns every subproduct ordered by name
func (h *ListSubproductsHandler) Handle(ctx context.Context) ([]domain.Subproduct, error) {
	subs, err := h.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []domain.Subproduct{}
	}
	return subs, nil
}
