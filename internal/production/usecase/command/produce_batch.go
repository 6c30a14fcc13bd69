package command

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
	"github.com/tair/production-costing/pkg/logger"
)

// ProduceBatchCommand represents the command to make another batch of a subproduct
type ProduceBatchCommand struct {
	SubproductID uint
}

// ProduceBatchHandler handles produce batch command
type ProduceBatchHandler struct {
	repo   domain.SubproductRepository
	ledger domain.StockLedger
	tx     database.Transactor
}

// NewProduceBatchHandler creates a new produce batch handler
func NewProduceBatchHandler(repo domain.SubproductRepository, ledger domain.StockLedger, tx database.Transactor) *ProduceBatchHandler {
	return &ProduceBatchHandler{repo: repo, ledger: ledger, tx: tx}
}

// Handle consumes the stored ingredient list once more. The subproduct's
// cost snapshot is left as it was.
func (h *ProduceBatchHandler) Handle(ctx context.Context, cmd ProduceBatchCommand) (*domain.Subproduct, error) {
	var sub *domain.Subproduct
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		sub, err = h.repo.FindByID(ctx, cmd.SubproductID)
		if err != nil {
			return err
		}
		for _, u := range sub.Ingredients {
			if _, err := h.ledger.Lookup(ctx, u.ProductName); errors.Is(err, apperr.ErrProductNotFound) {
				return apperr.New(apperr.ErrIngredientNotFound, "ingredient %q is not in stock", u.ProductName)
			} else if err != nil {
				return err
			}
		}
		return consumeIngredients(ctx, h.ledger, sub.Ingredients)
	})
	if err != nil {
		productionFailures.WithLabelValues(apperr.Kind(err)).Inc()
		return nil, errors.Wrapf(err, "produce batch of subproduct %d", cmd.SubproductID)
	}

	batchesProduced.Inc()
	logger.Info(ctx).
		Uint("subproduct_id", sub.ID).
		Str("name", sub.Name).
		Msg("Batch produced")

	return sub, nil
}
