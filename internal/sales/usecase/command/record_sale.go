package command

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/sales/domain"
	"github.com/tair/production-costing/kafka"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
	"github.com/tair/production-costing/pkg/logger"
)

var (
	salesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "costing_sales_recorded_total",
		Help: "Sales recorded",
	})
	salesRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "costing_sales_revenue_total",
		Help: "Sum of sale totals",
	})
)

// SalePublisher announces committed sales.
type SalePublisher interface {
	PublishSaleRecorded(ctx context.Context, event kafka.SaleRecordedEvent) error
}

// RecordSaleCommand represents the command to record a sale. A nil
// UnitPrice sells at the product's current sale price.
type RecordSaleCommand struct {
	ClientID       uint
	FinalProductID uint
	Quantity       int
	UnitPrice      *decimal.Decimal
}

// RecordSaleHandler handles record sale command
type RecordSaleHandler struct {
	clients   domain.ClientRepository
	sales     domain.SaleRepository
	catalog   domain.Catalog
	tx        database.Transactor
	publisher SalePublisher
}

// NewRecordSaleHandler creates a new record sale handler. publisher may be
// nil when no broker is configured.
func NewRecordSaleHandler(
	clients domain.ClientRepository,
	sales domain.SaleRepository,
	catalog domain.Catalog,
	tx database.Transactor,
	publisher SalePublisher,
) *RecordSaleHandler {
	return &RecordSaleHandler{clients: clients, sales: sales, catalog: catalog, tx: tx, publisher: publisher}
}

// Handle stores the sale with the unit cost current at sale time.
func (h *RecordSaleHandler) Handle(ctx context.Context, cmd RecordSaleCommand) (*domain.Sale, error) {
	if cmd.Quantity <= 0 {
		return nil, apperr.New(apperr.ErrInvalidQuantity, "quantity sold must be positive, got %d", cmd.Quantity)
	}
	if cmd.UnitPrice != nil && cmd.UnitPrice.IsNegative() {
		return nil, apperr.New(apperr.ErrInvalidPrice, "unit price cannot be negative, got %s", cmd.UnitPrice)
	}

	var sale *domain.Sale
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		client, err := h.clients.FindByID(ctx, cmd.ClientID)
		if err != nil {
			return err
		}
		if !client.Active {
			return apperr.New(apperr.ErrClientInactive, "client %q is inactive", client.Name)
		}

		product, err := h.catalog.FindWithCost(ctx, cmd.FinalProductID)
		if err != nil {
			return err
		}

		price := product.SalePriceOrZero()
		if cmd.UnitPrice != nil {
			price = *cmd.UnitPrice
		}
		qty := decimal.NewFromInt(int64(cmd.Quantity))

		sale = &domain.Sale{
			ReceiptNumber:  "SALE-" + uuid.NewString(),
			ClientID:       client.ID,
			FinalProductID: product.ID,
			Quantity:       cmd.Quantity,
			UnitPrice:      price,
			UnitCost:       product.UnitCost(),
			Total:          price.Mul(qty),
		}
		return h.sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "record sale of final product %d", cmd.FinalProductID)
	}

	salesRecorded.Inc()
	salesRevenue.Add(sale.Total.InexactFloat64())
	logger.Info(ctx).
		Uint("sale_id", sale.ID).
		Str("receipt", sale.ReceiptNumber).
		Uint("client_id", sale.ClientID).
		Uint("final_product_id", sale.FinalProductID).
		Int("quantity", sale.Quantity).
		Str("total", sale.Total.String()).
		Str("profit", sale.Profit().String()).
		Msg("Sale recorded")

	h.publish(ctx, sale)
	return sale, nil
}

// publish is best effort; the sale is already committed.
func (h *RecordSaleHandler) publish(ctx context.Context, sale *domain.Sale) {
	if h.publisher == nil {
		return
	}
	err := h.publisher.PublishSaleRecorded(ctx, kafka.SaleRecordedEvent{
		SaleID:         sale.ID,
		ReceiptNumber:  sale.ReceiptNumber,
		ClientID:       sale.ClientID,
		FinalProductID: sale.FinalProductID,
		Quantity:       sale.Quantity,
		UnitPrice:      sale.UnitPrice,
		UnitCost:       sale.UnitCost,
		Total:          sale.Total,
		Profit:         sale.Profit(),
		Timestamp:      sale.CreatedAt,
	})
	if err != nil {
		logger.Error(ctx).
			Err(err).
			Uint("sale_id", sale.ID).
			Msg("Failed to publish sale recorded event")
	}
}
