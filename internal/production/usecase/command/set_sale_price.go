package command

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/logger"
)

// SetSalePriceCommand represents the command to price a final product
type SetSalePriceCommand struct {
	FinalProductID uint
	Price          decimal.Decimal
}

// SetSalePriceHandler handles set sale price command
type SetSalePriceHandler struct {
	repo     domain.FinalProductRepository
	listener domain.CatalogListener
}

// NewSetSalePriceHandler creates a new set sale price handler
func NewSetSalePriceHandler(repo domain.FinalProductRepository, listener domain.CatalogListener) *SetSalePriceHandler {
	return &SetSalePriceHandler{repo: repo, listener: listener}
}

// Handle executes the set sale price command
func (h *SetSalePriceHandler) Handle(ctx context.Context, cmd SetSalePriceCommand) error {
	if cmd.Price.IsNegative() {
		return apperr.New(apperr.ErrInvalidPrice, "sale price cannot be negative, got %s", cmd.Price)
	}
	if err := h.repo.UpdateSalePrice(ctx, cmd.FinalProductID, cmd.Price); err != nil {
		return errors.Wrapf(err, "set sale price of final product %d", cmd.FinalProductID)
	}

	h.listener.CatalogChanged(ctx)
	logger.Info(ctx).
		Uint("final_product_id", cmd.FinalProductID).
		Str("sale_price", cmd.Price.String()).
		Msg("Sale price set")
	return nil
}
