package command

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/production-costing/internal/platform/memstore"
	proddomain "github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/kafka"
	"github.com/tair/production-costing/pkg/apperr"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.SaleRecordedEvent
	err    error
}

func (p *recordingPublisher) PublishSaleRecorded(_ context.Context, ev kafka.SaleRecordedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type fixture struct {
	store     *memstore.Store
	publisher *recordingPublisher
	register  *RegisterClientHandler
	toggle    *ToggleClientActiveHandler
	record    *RecordSaleHandler
	productID uint
}

// newFixture seeds a final product costing 0.10 per unit and priced at 0.25.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	sub := &proddomain.Subproduct{Name: "Dough", TotalCost: dec("2")}
	require.NoError(t, store.Subproducts().Create(ctx, sub))
	fp := &proddomain.FinalProduct{
		Name:          "Buns",
		SubproductID:  sub.ID,
		UnitsProduced: 20,
		SalePrice:     decimal.NewNullDecimal(dec("0.25")),
	}
	require.NoError(t, store.FinalProducts().Create(ctx, fp))

	pub := &recordingPublisher{}
	return &fixture{
		store:     store,
		publisher: pub,
		register:  NewRegisterClientHandler(store.Clients()),
		toggle:    NewToggleClientActiveHandler(store.Clients(), store),
		record:    NewRecordSaleHandler(store.Clients(), store.Sales(), store.FinalProducts(), store, pub),
		productID: fp.ID,
	}
}

func TestRegisterClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.register.Handle(ctx, RegisterClientCommand{Name: "  Corner Cafe "})
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe", c.Name)
	assert.True(t, c.Active)

	_, err = f.register.Handle(ctx, RegisterClientCommand{Name: "Corner Cafe"})
	assert.True(t, errors.Is(err, apperr.ErrAlreadyExists))

	_, err = f.register.Handle(ctx, RegisterClientCommand{Name: " "})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestToggleClientActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.register.Handle(ctx, RegisterClientCommand{Name: "Deli"})
	require.NoError(t, err)

	c, err = f.toggle.Handle(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, c.Active)

	c, err = f.toggle.Handle(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, c.Active)

	_, err = f.toggle.Handle(ctx, 99)
	assert.True(t, errors.Is(err, apperr.ErrClientNotFound))
}

func TestRecordSaleCapturesCost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.register.Handle(ctx, RegisterClientCommand{Name: "Deli"})
	require.NoError(t, err)

	sale, err := f.record.Handle(ctx, RecordSaleCommand{ClientID: c.ID, FinalProductID: f.productID, Quantity: 10})
	require.NoError(t, err)
	assert.Contains(t, sale.ReceiptNumber, "SALE-")
	assert.True(t, sale.UnitPrice.Equal(dec("0.25")))
	assert.True(t, sale.UnitCost.Equal(dec("0.1")))
	assert.True(t, sale.Total.Equal(dec("2.5")))
	assert.True(t, sale.Profit().Equal(dec("1.5")))

	custom := dec("0.20")
	sale, err = f.record.Handle(ctx, RecordSaleCommand{ClientID: c.ID, FinalProductID: f.productID, Quantity: 5, UnitPrice: &custom})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("1")))

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, sale.ReceiptNumber, f.publisher.events[1].ReceiptNumber)
	assert.True(t, f.publisher.events[0].Profit.Equal(dec("1.5")))
}

func TestRecordSaleSurvivesPublishFailure(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")
	ctx := context.Background()
	c, err := f.register.Handle(ctx, RegisterClientCommand{Name: "Deli"})
	require.NoError(t, err)

	_, err = f.record.Handle(ctx, RecordSaleCommand{ClientID: c.ID, FinalProductID: f.productID, Quantity: 1})
	require.NoError(t, err)

	n, err := f.store.Sales().CountByFinalProduct(ctx, f.productID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRecordSaleRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	active, err := f.register.Handle(ctx, RegisterClientCommand{Name: "Deli"})
	require.NoError(t, err)
	inactive, err := f.register.Handle(ctx, RegisterClientCommand{Name: "Closed Shop"})
	require.NoError(t, err)
	_, err = f.toggle.Handle(ctx, inactive.ID)
	require.NoError(t, err)
	negative := dec("-1")

	tests := []struct {
		name string
		cmd  RecordSaleCommand
		want error
	}{
		{"zero quantity", RecordSaleCommand{ClientID: active.ID, FinalProductID: f.productID}, apperr.ErrInvalidQuantity},
		{"negative price", RecordSaleCommand{ClientID: active.ID, FinalProductID: f.productID, Quantity: 1, UnitPrice: &negative}, apperr.ErrInvalidPrice},
		{"unknown client", RecordSaleCommand{ClientID: 42, FinalProductID: f.productID, Quantity: 1}, apperr.ErrClientNotFound},
		{"inactive client", RecordSaleCommand{ClientID: inactive.ID, FinalProductID: f.productID, Quantity: 1}, apperr.ErrClientInactive},
		{"unknown product", RecordSaleCommand{ClientID: active.ID, FinalProductID: 42, Quantity: 1}, apperr.ErrFinalProductNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.record.Handle(ctx, tt.cmd)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
	assert.Empty(t, f.publisher.events)
}
