package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/production/domain"
)

// FinalProductView is a final product with its derived unit cost
type FinalProductView struct {
	ID             uint                `json:"id"`
	Name           string              `json:"name"`
	SubproductID   uint                `json:"subproduct_id"`
	SubproductName string              `json:"subproduct_name"`
	UnitsProduced  int                 `json:"units_produced"`
	BatchCost      decimal.Decimal     `json:"batch_cost"`
	UnitCost       decimal.Decimal     `json:"unit_cost"`
	SalePrice      decimal.NullDecimal `json:"sale_price"`
}

// NewFinalProductView derives the unit cost of fp.
func NewFinalProductView(fp domain.FinalProductCost) FinalProductView {
	return FinalProductView{
		ID:             fp.ID,
		Name:           fp.Name,
		SubproductID:   fp.SubproductID,
		SubproductName: fp.SubproductName,
		UnitsProduced:  fp.UnitsProduced,
		BatchCost:      fp.SubproductCost,
		UnitCost:       fp.UnitCost(),
		SalePrice:      fp.SalePrice,
	}
}

// ListFinalProductsHandler handles list final products query
type ListFinalProductsHandler struct {
	repo domain.FinalProductRepository
}

// NewListFinalProductsHandler creates a new list final products handler
func NewListFinalProductsHandler(repo domain.FinalProductRepository) *ListFinalProductsHandler {
	return &ListFinalProductsHandler{repo: repo}
}

func (h *ListFinalProductsHandler) Handle(ctx context.Context) ([]FinalProductView, error) {
	rows, err := h.repo.ListWithCost(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]FinalProductView, 0, len(rows))
	for _, fp := range rows {
		views = append(views, NewFinalProductView(fp))
	}
	return views, nil
}
