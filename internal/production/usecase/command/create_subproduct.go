package command

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/internal/units"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
	"github.com/tair/production-costing/pkg/logger"
)

// IngredientLine is one requested ingredient of a new subproduct
type IngredientLine struct {
	ProductName string
	Quantity    decimal.Decimal
	Unit        string
}

// CreateSubproductCommand represents the command to build a subproduct from stock
type CreateSubproductCommand struct {
	Name        string
	Ingredients []IngredientLine
}

// CreateSubproductHandler handles create subproduct command
type CreateSubproductHandler struct {
	repo     domain.SubproductRepository
	ledger   domain.StockLedger
	tx       database.Transactor
	listener domain.CatalogListener
}

// NewCreateSubproductHandler creates a new create subproduct handler
func NewCreateSubproductHandler(
	repo domain.SubproductRepository,
	ledger domain.StockLedger,
	tx database.Transactor,
	listener domain.CatalogListener,
) *CreateSubproductHandler {
	return &CreateSubproductHandler{repo: repo, ledger: ledger, tx: tx, listener: listener}
}

// Handle prices every ingredient, consumes them and stores the subproduct,
// all in one transaction. Nothing is consumed unless every ingredient exists
// and converts, and any later failure rolls the consumptions back.
func (h *CreateSubproductHandler) Handle(ctx context.Context, cmd CreateSubproductCommand) (*domain.Subproduct, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "subproduct name is required")
	}
	if len(cmd.Ingredients) == 0 {
		return nil, apperr.New(apperr.ErrInvalidQuantity, "subproduct %q needs at least one ingredient", name)
	}

	sub := &domain.Subproduct{Name: name}
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		usages, total, err := priceIngredients(ctx, h.ledger, cmd.Ingredients)
		if err != nil {
			return err
		}
		if err := consumeIngredients(ctx, h.ledger, usages); err != nil {
			return err
		}
		sub.TotalCost = total
		sub.Ingredients = usages
		return h.repo.Create(ctx, sub)
	})
	if err != nil {
		productionFailures.WithLabelValues(apperr.Kind(err)).Inc()
		return nil, errors.Wrapf(err, "create subproduct %q", name)
	}

	subproductsCreated.Inc()
	h.listener.CatalogChanged(ctx)
	logger.Info(ctx).
		Uint("subproduct_id", sub.ID).
		Str("name", sub.Name).
		Int("ingredients", len(sub.Ingredients)).
		Str("total_cost", sub.TotalCost.String()).
		Msg("Subproduct created")

	return sub, nil
}

// priceIngredients validates every line and sums qtyBase*avgCost without
// touching stock.
func priceIngredients(ctx context.Context, ledger domain.StockLedger, lines []IngredientLine) ([]domain.IngredientUsage, decimal.Decimal, error) {
	total := decimal.Zero
	usages := make([]domain.IngredientUsage, 0, len(lines))

	for i, line := range lines {
		product := strings.TrimSpace(line.ProductName)
		if product == "" {
			return nil, decimal.Zero, apperr.New(apperr.ErrInvalidInput, "ingredient %d has no product name", i+1)
		}
		qty, err := units.ToBase(line.Quantity, line.Unit)
		if err != nil {
			return nil, decimal.Zero, errors.Wrapf(err, "ingredient %q", product)
		}
		if !qty.Value.IsPositive() {
			return nil, decimal.Zero, apperr.New(apperr.ErrInvalidQuantity, "ingredient %q quantity must be positive, got %s %s", product, line.Quantity, line.Unit)
		}

		item, err := ledger.Lookup(ctx, product)
		if errors.Is(err, apperr.ErrProductNotFound) {
			return nil, decimal.Zero, apperr.New(apperr.ErrIngredientNotFound, "ingredient %q is not in stock", product)
		}
		if err != nil {
			return nil, decimal.Zero, err
		}
		cost, err := item.CostOf(qty)
		if err != nil {
			return nil, decimal.Zero, errors.Wrapf(err, "ingredient %q", product)
		}
		total = total.Add(cost)

		usages = append(usages, domain.IngredientUsage{
			Position:    i + 1,
			ProductName: product,
			Quantity:    line.Quantity,
			Unit:        units.Normalize(line.Unit),
		})
	}
	return usages, total, nil
}

func consumeIngredients(ctx context.Context, ledger domain.StockLedger, usages []domain.IngredientUsage) error {
	for _, u := range usages {
		if _, err := ledger.Consume(ctx, u.ProductName, u.Quantity, u.Unit); err != nil {
			return err
		}
	}
	return nil
}
