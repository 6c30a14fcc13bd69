package command

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tair/production-costing/internal/purchasing/domain"
	"github.com/tair/production-costing/pkg/database"
	"github.com/tair/production-costing/pkg/logger"
)

var purchasesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "costing_purchases_recorded_total",
	Help: "Purchases recorded, by kind",
}, []string{"kind"})

// RecordPurchaseHandler handles record purchase command
type RecordPurchaseHandler struct {
	repo  domain.PurchaseRepository
	stock domain.StockIntake
	tx    database.Transactor
}

// NewRecordPurchaseHandler creates a new record purchase handler
func NewRecordPurchaseHandler(repo domain.PurchaseRepository, stock domain.StockIntake, tx database.Transactor) *RecordPurchaseHandler {
	return &RecordPurchaseHandler{repo: repo, stock: stock, tx: tx}
}

// Handle stores the purchase and folds it into the stock ledger in one
// transaction. A repeated event id fails with apperr.ErrAlreadyExists and
// leaves stock untouched.
func (h *RecordPurchaseHandler) Handle(ctx context.Context, in domain.Intake) (*domain.Purchase, error) {
	p, err := in.Build()
	if err != nil {
		return nil, err
	}

	err = h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := h.repo.Create(ctx, p); err != nil {
			return err
		}
		return h.stock.AddFromPurchase(ctx, p.ProductName, p.Quantity, p.Unit, p.TotalPrice)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "record purchase of %q", p.ProductName)
	}

	purchasesRecorded.WithLabelValues(string(p.Kind)).Inc()
	logger.Info(ctx).
		Uint("purchase_id", p.ID).
		Str("product", p.ProductName).
		Str("supplier", p.Supplier).
		Str("kind", string(p.Kind)).
		Str("quantity", p.Quantity.String()).
		Str("unit", p.Unit).
		Str("total_price", p.TotalPrice.String()).
		Msg("Purchase recorded")

	return p, nil
}
