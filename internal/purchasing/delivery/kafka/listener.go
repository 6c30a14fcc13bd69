// Package kafka feeds purchase.recorded events into the purchase command.
package kafka

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/tair/production-costing/internal/purchasing/domain"
	"github.com/tair/production-costing/internal/purchasing/usecase/command"
	events "github.com/tair/production-costing/kafka"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/logger"
)

// Listener applies purchase events to the ledger.
type Listener struct {
	record *command.RecordPurchaseHandler
}

func NewListener(record *command.RecordPurchaseHandler) *Listener {
	return &Listener{record: record}
}

// Register subscribes the listener on a consumer.
func (l *Listener) Register(c *events.Consumer) {
	c.OnPurchaseRecorded(l.Handle)
}

// Handle records one purchase. Redelivered events are acknowledged without
// touching stock again.
func (l *Listener) Handle(ctx context.Context, ev events.PurchaseRecordedEvent) error {
	if ev.EventID == "" {
		return apperr.New(apperr.ErrInvalidInput, "purchase event without event id")
	}
	kind, err := domain.ParseKind(ev.Kind)
	if err != nil {
		return err
	}

	_, err = l.record.Handle(ctx, domain.Intake{
		EventID:      ev.EventID,
		ProductName:  ev.ProductName,
		Supplier:     ev.Supplier,
		Kind:         kind,
		Quantity:     ev.Quantity,
		Unit:         ev.Unit,
		UnitPrice:    ev.UnitPrice,
		PackageCount: ev.PackageCount.Decimal,
		PackageSize:  ev.PackageSize.Decimal,
		PackagePrice: ev.PackagePrice.Decimal,
	})
	if errors.Is(err, apperr.ErrAlreadyExists) {
		logger.Warn(ctx).
			Str("event_id", ev.EventID).
			Str("product", ev.ProductName).
			Msg("Duplicate purchase event skipped")
		return nil
	}
	return err
}
