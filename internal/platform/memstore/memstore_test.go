package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invdomain "github.com/tair/production-costing/internal/inventory/domain"
	proddomain "github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/pkg/apperr"
)

func TestTransactionRollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Stock().CreateIfAbsent(ctx, &invdomain.StockItem{
		ProductName:  "flour",
		QuantityBase: decimal.NewFromInt(1000),
		BaseUnit:     "g",
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.Stock().FindByProductForUpdate(ctx, "flour")
		require.NoError(t, err)
		item.QuantityBase = decimal.NewFromInt(1)
		require.NoError(t, s.Stock().Save(ctx, item))

		require.NoError(t, s.Subproducts().Create(ctx, &proddomain.Subproduct{Name: "Dough"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	item, err := s.Stock().FindByProduct(ctx, "flour")
	require.NoError(t, err)
	assert.True(t, item.QuantityBase.Equal(decimal.NewFromInt(1000)))

	subs, err := s.Subproducts().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestNestedTransactionJoinsOuter(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.WithinTransaction(ctx, func(ctx context.Context) error {
			return s.Subproducts().Create(ctx, &proddomain.Subproduct{Name: "Dough"})
		})
	})
	require.NoError(t, err)

	subs, err := s.Subproducts().List(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	sub := &proddomain.Subproduct{
		Name: "Dough",
		Ingredients: []proddomain.IngredientUsage{
			{Position: 0, ProductName: "flour", Quantity: decimal.NewFromInt(200), Unit: "g"},
		},
	}
	require.NoError(t, s.Subproducts().Create(ctx, sub))

	got, err := s.Subproducts().FindByID(ctx, sub.ID)
	require.NoError(t, err)
	got.Ingredients[0].ProductName = "changed"

	again, err := s.Subproducts().FindByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "flour", again.Ingredients[0].ProductName)
}

func TestDeleteSubproductInUse(t *testing.T) {
	s := New()
	ctx := context.Background()

	sub := &proddomain.Subproduct{Name: "Dough"}
	require.NoError(t, s.Subproducts().Create(ctx, sub))
	require.NoError(t, s.FinalProducts().Create(ctx, &proddomain.FinalProduct{Name: "Buns", SubproductID: sub.ID, UnitsProduced: 20}))

	err := s.Subproducts().Delete(ctx, sub.ID)
	assert.True(t, errors.Is(err, apperr.ErrSubproductInUse))
}

func TestConcurrentCreateIfAbsentCreatesOnce(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.Stock().CreateIfAbsent(ctx, &invdomain.StockItem{ProductName: "salt", BaseUnit: "g"})
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}
