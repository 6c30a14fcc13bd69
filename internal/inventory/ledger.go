package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/inventory/domain"
	"github.com/tair/production-costing/internal/inventory/usecase/command"
	"github.com/tair/production-costing/internal/inventory/usecase/query"
)

// Ledger exposes the stock operations other modules build on.
type Ledger struct {
	add     *command.AddFromPurchaseHandler
	consume *command.ConsumeStockHandler
	get     *query.GetStockItemHandler
}

func NewLedger(add *command.AddFromPurchaseHandler, consume *command.ConsumeStockHandler, get *query.GetStockItemHandler) *Ledger {
	return &Ledger{add: add, consume: consume, get: get}
}

func (l *Ledger) AddFromPurchase(ctx context.Context, product string, quantity decimal.Decimal, unit string, totalPrice decimal.Decimal) error {
	_, err := l.add.Handle(ctx, command.AddFromPurchaseCommand{
		ProductName: product,
		Quantity:    quantity,
		Unit:        unit,
		TotalPrice:  totalPrice,
	})
	return err
}

func (l *Ledger) Consume(ctx context.Context, product string, quantity decimal.Decimal, unit string) (*domain.StockItem, error) {
	return l.consume.Handle(ctx, command.ConsumeStockCommand{
		ProductName: product,
		Quantity:    quantity,
		Unit:        unit,
	})
}

func (l *Ledger) Lookup(ctx context.Context, product string) (*domain.StockItem, error) {
	return l.get.Handle(ctx, query.GetStockItemQuery{ProductName: product})
}
