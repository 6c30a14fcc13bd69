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

// AddFromPurchaseCommand represents a purchase entering the ledger
type AddFromPurchaseCommand struct {
	ProductName string
	Quantity    decimal.Decimal
	Unit        string
	TotalPrice  decimal.Decimal
}

// AddFromPurchaseHandler handles the add from purchase command
type AddFromPurchaseHandler struct {
	repo domain.StockRepository
	tx   database.Transactor
}

// NewAddFromPurchaseHandler creates a new add from purchase handler
func NewAddFromPurchaseHandler(repo domain.StockRepository, tx database.Transactor) *AddFromPurchaseHandler {
	return &AddFromPurchaseHandler{repo: repo, tx: tx}
}

// Handle increases stock and recomputes the weighted average cost. The row
// is read under lock so concurrent purchases of one product serialize.
func (h *AddFromPurchaseHandler) Handle(ctx context.Context, cmd AddFromPurchaseCommand) (*domain.StockItem, error) {
	product := strings.TrimSpace(cmd.ProductName)
	if product == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "product name is required")
	}
	if cmd.TotalPrice.IsNegative() {
		return nil, apperr.New(apperr.ErrInvalidPrice, "total price for %q cannot be negative", product)
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
		if errors.Is(err, apperr.ErrProductNotFound) {
			fresh, err := domain.NewStockItem(product, qty, cmd.TotalPrice)
			if err != nil {
				return err
			}
			created, err := h.repo.CreateIfAbsent(ctx, fresh)
			if err != nil {
				return err
			}
			if created {
				result = fresh
				return nil
			}
			// Another writer inserted the row first; fold into it.
			item, err = h.repo.FindByProductForUpdate(ctx, product)
			if err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := item.AddPurchase(qty, cmd.TotalPrice); err != nil {
			return err
		}
		if err := h.repo.Save(ctx, item); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "add purchase of %q", product)
	}

	purchasesApplied.Inc()
	logger.Info(ctx).
		Str("product", product).
		Str("quantity_base", qty.Value.String()).
		Str("base_unit", qty.Unit).
		Str("total_price", cmd.TotalPrice.String()).
		Str("weighted_avg_cost", result.WeightedAvgCost.String()).
		Msg("Stock added from purchase")

	return result, nil
}
