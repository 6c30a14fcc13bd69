package command

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
	"github.com/tair/production-costing/pkg/logger"
)

// DeleteFinalProductCommand represents the command to delete a final product
type DeleteFinalProductCommand struct {
	FinalProductID uint
}

// DeleteFinalProductHandler handles delete final product command
type DeleteFinalProductHandler struct {
	repo     domain.FinalProductRepository
	sales    domain.SalesIndex
	tx       database.Transactor
	listener domain.CatalogListener
}

// NewDeleteFinalProductHandler creates a new delete final product handler
func NewDeleteFinalProductHandler(
	repo domain.FinalProductRepository,
	sales domain.SalesIndex,
	tx database.Transactor,
	listener domain.CatalogListener,
) *DeleteFinalProductHandler {
	return &DeleteFinalProductHandler{repo: repo, sales: sales, tx: tx, listener: listener}
}

// Handle refuses to delete a product that appears in the sales history.
func (h *DeleteFinalProductHandler) Handle(ctx context.Context, cmd DeleteFinalProductCommand) error {
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := h.sales.CountByFinalProduct(ctx, cmd.FinalProductID)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.New(apperr.ErrFinalProductInUse, "final product %d has %d recorded sale(s)", cmd.FinalProductID, n)
		}
		return h.repo.Delete(ctx, cmd.FinalProductID)
	})
	if err != nil {
		return errors.Wrapf(err, "delete final product %d", cmd.FinalProductID)
	}

	h.listener.CatalogChanged(ctx)
	logger.Info(ctx).Uint("final_product_id", cmd.FinalProductID).Msg("Final product deleted")
	return nil
}
