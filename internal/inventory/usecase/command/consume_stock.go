package command

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/inventory/domain"
	"github.com/tair/production-costing/internal/units"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
	"github.com/tair/production-costing/pkg/logger"
)

// ConsumeStockCommand represents the command to take stock out of the ledger
type ConsumeStockCommand struct {
	ProductName string
	Quantity    decimal.Decimal
	Unit        string
}

// ConsumeStockHandler handles consume stock command
type ConsumeStockHandler struct {
	repo domain.StockRepository
	tx   database.Transactor
}

// NewConsumeStockHandler creates a new consume stock handler
func NewConsumeStockHandler(repo domain.StockRepository, tx database.Transactor) *ConsumeStockHandler {
	return &ConsumeStockHandler{repo: repo, tx: tx}
}

// Handle decrements stock. The average cost is never touched and a request
// larger than what is on hand leaves the row unchanged.
func (h *ConsumeStockHandler) Handle(ctx context.Context, cmd ConsumeStockCommand) (*domain.StockItem, error) {
	product := strings.TrimSpace(cmd.ProductName)
	if product == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "product name is required")
	}

	qty, err := units.ToBase(cmd.Quantity, cmd.Unit)
	if err != nil {
		return nil, err
	}
	if !qty.Value.IsPositive() {
		return nil, apperr.New(apperr.ErrInvalidQuantity, "quantity for %q must be positive, got %s %s", product, cmd.Quantity, cmd.Unit)
	}

	var result *domain.StockItem
	err = h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := h.repo.FindByProductForUpdate(ctx, product)
		if err != nil {
			return err
		}
		if err := item.Consume(qty); err != nil {
			return err
		}
		if err := h.repo.Save(ctx, item); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrInsufficientStock) {
			consumptionsRejected.Inc()
		}
		return nil, errors.Wrapf(err, "consume %q", product)
	}

	stockConsumed.Inc()
	logger.Debug(ctx).
		Str("product", product).
		Str("quantity_base", qty.Value.String()).
		Str("remaining", result.QuantityBase.String()).
		Msg("Stock consumed")

	return result, nil
}
