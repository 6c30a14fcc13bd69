package command

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
	"github.com/tair/production-costing/pkg/logger"
)

// CreateFinalProductCommand represents the command to define a final product
type CreateFinalProductCommand struct {
	Name          string
	SubproductID  uint
	UnitsProduced int
	SalePrice     *decimal.Decimal
}

// CreateFinalProductHandler handles create final product command
type CreateFinalProductHandler struct {
	subproducts domain.SubproductRepository
	repo        domain.FinalProductRepository
	tx          database.Transactor
	listener    domain.CatalogListener
}

// NewCreateFinalProductHandler creates a new create final product handler
func NewCreateFinalProductHandler(
	subproducts domain.SubproductRepository,
	repo domain.FinalProductRepository,
	tx database.Transactor,
	listener domain.CatalogListener,
) *CreateFinalProductHandler {
	return &CreateFinalProductHandler{subproducts: subproducts, repo: repo, tx: tx, listener: listener}
}

// Handle links a subproduct batch to its yield. The unit cost is derived on
// read and never stored.
func (h *CreateFinalProductHandler) Handle(ctx context.Context, cmd CreateFinalProductCommand) (*domain.FinalProductCost, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "final product name is required")
	}
	if cmd.UnitsProduced <= 0 {
		return nil, apperr.New(apperr.ErrInvalidYield, "units produced for %q must be positive, got %d", name, cmd.UnitsProduced)
	}
	if cmd.SalePrice != nil && cmd.SalePrice.IsNegative() {
		return nil, apperr.New(apperr.ErrInvalidPrice, "sale price for %q cannot be negative", name)
	}

	var created *domain.FinalProductCost
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		sub, err := h.subproducts.FindByID(ctx, cmd.SubproductID)
		if err != nil {
			return err
		}
		fp := &domain.FinalProduct{
			Name:          name,
			SubproductID:  sub.ID,
			UnitsProduced: cmd.UnitsProduced,
		}
		if cmd.SalePrice != nil {
			fp.SalePrice = decimal.NewNullDecimal(*cmd.SalePrice)
		}
		if err := h.repo.Create(ctx, fp); err != nil {
			return err
		}
		created = &domain.FinalProductCost{
			FinalProduct:   *fp,
			SubproductName: sub.Name,
			SubproductCost: sub.TotalCost,
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create final product %q", name)
	}

	h.listener.CatalogChanged(ctx)
	logger.Info(ctx).
		Uint("final_product_id", created.ID).
		Str("name", created.Name).
		Uint("subproduct_id", created.SubproductID).
		Int("units_produced", created.UnitsProduced).
		Str("unit_cost", created.UnitCost().String()).
		Msg("Final product created")

	return created, nil
}
