package query

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Stock"

// ExportSummaryHandler renders the stock summary as an xlsx workbook.
type ExportSummaryHandler struct {
	summary *SummarizeStockHandler
}

func NewExportSummaryHandler(summary *SummarizeStockHandler) *ExportSummaryHandler {
	return &ExportSummaryHandler{summary: summary}
}

func (h *ExportSummaryHandler) Handle(ctx context.Context) ([]byte, error) {
	summary, err := h.summary.Handle(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"product", "quantity", "unit", "quantity_base", "base_unit", "avg_cost", "total_value"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, r := range summary.Rows {
		values := []interface{}{
			r.ProductName,
			r.Quantity.Round(2).InexactFloat64(),
			r.Unit,
			r.QuantityBase.InexactFloat64(),
			r.BaseUnit,
			r.WeightedAvgCost.String(),
			r.TotalValue.Round(2).InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	totalCell, err := excelize.CoordinatesToCellName(6, row)
	if err != nil {
		return nil, err
	}
	totals := []interface{}{"total", summary.TotalValue.Round(2).InexactFloat64()}
	if err := f.SetSheetRow(summarySheet, totalCell, &totals); err != nil {
		return nil, fmt.Errorf("write totals: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
