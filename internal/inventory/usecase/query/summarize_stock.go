package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/inventory/domain"
	"github.com/tair/production-costing/internal/units"
)

// SummaryRow is one in-stock product scaled for display.
type SummaryRow struct {
	ProductName     string          `json:"product_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	Display         string          `json:"display"`
	QuantityBase    decimal.Decimal `json:"quantity_base"`
	BaseUnit        string          `json:"base_unit"`
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost"`
	TotalValue      decimal.Decimal `json:"total_value"`
}

// StockSummary is the stock report with its grand total.
type StockSummary struct {
	Rows       []SummaryRow    `json:"rows"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// SummarizeStockHandler handles the stock summary query
type SummarizeStockHandler struct {
	repo domain.StockRepository
}

// NewSummarizeStockHandler creates a new summarize stock handler
func NewSummarizeStockHandler(repo domain.StockRepository) *SummarizeStockHandler {
	return &SummarizeStockHandler{repo: repo}
}

// Handle lists products with stock above zero. It never writes.
func (h *SummarizeStockHandler) Handle(ctx context.Context) (*StockSummary, error) {
	items, err := h.repo.ListInStock(ctx)
	if err != nil {
		return nil, err
	}

	summary := &StockSummary{Rows: make([]SummaryRow, 0, len(items)), TotalValue: decimal.Zero}
	for _, item := range items {
		if !item.QuantityBase.IsPositive() {
			continue
		}
		shown := units.Display(item.QuantityBase, item.BaseUnit)
		row := SummaryRow{
			ProductName:     item.ProductName,
			Quantity:        shown.Value,
			Unit:            shown.Unit,
			Display:         shown.String(),
			QuantityBase:    item.QuantityBase,
			BaseUnit:        item.BaseUnit,
			WeightedAvgCost: item.WeightedAvgCost,
			TotalValue:      item.TotalValue(),
		}
		summary.Rows = append(summary.Rows, row)
		summary.TotalValue = summary.TotalValue.Add(row.TotalValue)
	}
	return summary, nil
}
