package kafka

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/production-costing/internal/inventory"
	"github.com/tair/production-costing/internal/platform/memstore"
	"github.com/tair/production-costing/internal/purchasing/usecase/command"
	events "github.com/tair/production-costing/kafka"
	"github.com/tair/production-costing/pkg/apperr"
)

func TestListenerAppliesEventOnce(t *testing.T) {
	store := memstore.New()
	inv, err := inventory.InitializeModule(store.Stock(), store)
	require.NoError(t, err)
	l := NewListener(command.NewRecordPurchaseHandler(store.Purchases(), inv.Ledger, store))
	ctx := context.Background()

	ev := events.PurchaseRecordedEvent{
		EventID:      "evt-42",
		ProductName:  "butter",
		Supplier:     "Dairy",
		Kind:         "packages",
		Unit:         "g",
		PackageCount: decimal.NewNullDecimal(decimal.NewFromInt(4)),
		PackageSize:  decimal.NewNullDecimal(decimal.NewFromInt(250)),
		PackagePrice: decimal.NewNullDecimal(decimal.NewFromInt(2)),
	}
	require.NoError(t, l.Handle(ctx, ev))
	require.NoError(t, l.Handle(ctx, ev))

	item, err := inv.Ledger.Lookup(ctx, "butter")
	require.NoError(t, err)
	assert.True(t, item.QuantityBase.Equal(decimal.NewFromInt(1000)))
	assert.True(t, item.WeightedAvgCost.Equal(decimal.RequireFromString("0.008")))
}

func TestListenerRejectsBadEvents(t *testing.T) {
	store := memstore.New()
	inv, err := inventory.InitializeModule(store.Stock(), store)
	require.NoError(t, err)
	l := NewListener(command.NewRecordPurchaseHandler(store.Purchases(), inv.Ledger, store))
	ctx := context.Background()

	err = l.Handle(ctx, events.PurchaseRecordedEvent{ProductName: "salt", Kind: "bulk"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	err = l.Handle(ctx, events.PurchaseRecordedEvent{EventID: "e", ProductName: "salt", Supplier: "s", Kind: "crate"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}
