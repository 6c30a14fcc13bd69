package query

import (
	"context"

	"github.com/tair/production-costing/internal/production/domain"
)

// GetIngredientsQuery represents the query for a subproduct's recipe
type GetIngredientsQuery struct {
	SubproductID uint
}

// GetIngredientsHandler handles get ingredients query
type GetIngredientsHandler struct {
	repo domain.SubproductRepository
}

// NewGetIngredientsHandler creates a new get ingredients handler
func NewGetIngredientsHandler(repo domain.SubproductRepository) *GetIngredientsHandler {
	return &GetIngredientsHandler{repo: repo}
}

// Handle returns the ingredient lines in the order they were entered
func (h *GetIngredientsHandler) Handle(ctx context.Context, q GetIngredientsQuery) ([]domain.IngredientUsage, error) {
	sub, err := h.repo.FindByID(ctx, q.SubproductID)
	if err != nil {
		return nil, err
	}
	if sub.Ingredients == nil {
		return []domain.IngredientUsage{}, nil
	}
	return sub.Ingredients, nil
}
