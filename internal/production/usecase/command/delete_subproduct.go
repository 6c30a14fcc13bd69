package command

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
	"github.com/tair/production-costing/pkg/logger"
)

// DeleteSubproductCommand represents the command to delete a subproduct
type DeleteSubproductCommand struct {
	SubproductID uint
}

// DeleteSubproductHandler handles delete subproduct command
type DeleteSubproductHandler struct {
	repo     domain.SubproductRepository
	finals   domain.FinalProductRepository
	tx       database.Transactor
	listener domain.CatalogListener
}

// NewDeleteSubproductHandler creates a new delete subproduct handler
func NewDeleteSubproductHandler(
	repo domain.SubproductRepository,
	finals domain.FinalProductRepository,
	tx database.Transactor,
	listener domain.CatalogListener,
) *DeleteSubproductHandler {
	return &DeleteSubproductHandler{repo: repo, finals: finals, tx: tx, listener: listener}
}

// Handle removes a subproduct and its ingredient lines. Deletion is refused
// while any final product is made from it. Consumed stock is not restored.
func (h *DeleteSubproductHandler) Handle(ctx context.Context, cmd DeleteSubproductCommand) error {
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := h.finals.CountBySubproduct(ctx, cmd.SubproductID)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.New(apperr.ErrSubproductInUse, "subproduct %d is used by %d final product(s)", cmd.SubproductID, n)
		}
		return h.repo.Delete(ctx, cmd.SubproductID)
	})
	if err != nil {
		return errors.Wrapf(err, "delete subproduct %d", cmd.SubproductID)
	}

	h.listener.CatalogChanged(ctx)
	logger.Info(ctx).Uint("subproduct_id", cmd.SubproductID).Msg("Subproduct deleted")
	return nil
}
