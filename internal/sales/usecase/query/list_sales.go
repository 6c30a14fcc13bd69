package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/sales/domain"
)

// ListSalesQuery represents the query for sales history
type ListSalesQuery struct {
	Limit  int
	Offset int
}

// SaleView is one history row with its profit.
type SaleView struct {
	domain.SaleRecord
	Profit decimal.Decimal `json:"profit"`
}

// ListSalesHandler handles list sales query
type ListSalesHandler struct {
	repo domain.SaleRepository
}

// NewListSalesHandler creates a new list sales handler
func NewListSalesHandler(repo domain.SaleRepository) *ListSalesHandler {
	return &ListSalesHandler{repo: repo}
}

// Handle returns sales newest first
func (h *ListSalesHandler) Handle(ctx context.Context, q ListSalesQuery) ([]SaleView, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	records, err := h.repo.List(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	views := make([]SaleView, 0, len(records))
	for _, r := range records {
		views = append(views, SaleView{SaleRecord: r, Profit: r.Profit()})
	}
	return views, nil
}
