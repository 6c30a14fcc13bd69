package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/units"
	"github.com/tair/production-costing/pkg/apperr"
)

// StockItem is the on-hand quantity of one raw material, kept in its base
// unit, together with the weighted average cost of one base unit.
type StockItem struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	ProductName     string          `json:"product_name" gorm:"uniqueIndex;not null"`
	QuantityBase    decimal.Decimal `json:"quantity_base" gorm:"type:numeric;not null;default:0"`
	BaseUnit        string          `json:"base_unit" gorm:"not null"`
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost" gorm:"type:numeric;not null;default:0"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem opens a stock row from its first purchase.
func NewStockItem(product string, qty units.Quantity, totalPrice decimal.Decimal) (*StockItem, error) {
	if !qty.Value.IsPositive() {
		return nil, apperr.New(apperr.ErrInvalidQuantity, "quantity for %q must be positive, got %s %s", product, qty.Value, qty.Unit)
	}
	return &StockItem{
		ProductName:     product,
		QuantityBase:    qty.Value,
		BaseUnit:        qty.Unit,
		WeightedAvgCost: totalPrice.Div(qty.Value),
	}, nil
}

// AddPurchase folds a purchase into the running average:
// newAvg = (oldQty*oldAvg + totalPrice) / (oldQty + qty).
func (s *StockItem) AddPurchase(qty units.Quantity, totalPrice decimal.Decimal) error {
	if err := s.checkUnit(qty); err != nil {
		return err
	}
	if !qty.Value.IsPositive() {
		return apperr.New(apperr.ErrInvalidQuantity, "quantity for %q must be positive, got %s %s", s.ProductName, qty.Value, qty.Unit)
	}
	s.WeightedAvgCost = WeightedAverage(s.QuantityBase, s.WeightedAvgCost, qty.Value, totalPrice)
	s.QuantityBase = s.QuantityBase.Add(qty.Value)
	return nil
}

// Consume removes qty from stock. The average cost is left untouched.
func (s *StockItem) Consume(qty units.Quantity) error {
	if err := s.checkUnit(qty); err != nil {
		return err
	}
	if !qty.Value.IsPositive() {
		return apperr.New(apperr.ErrInvalidQuantity, "quantity for %q must be positive, got %s %s", s.ProductName, qty.Value, qty.Unit)
	}
	if qty.Value.GreaterThan(s.QuantityBase) {
		return apperr.InsufficientStock(s.ProductName, qty.Value, s.QuantityBase, s.BaseUnit)
	}
	s.QuantityBase = s.QuantityBase.Sub(qty.Value)
	return nil
}

// CostOf prices qty at the current average cost.
func (s *StockItem) CostOf(qty units.Quantity) (decimal.Decimal, error) {
	if err := s.checkUnit(qty); err != nil {
		return decimal.Zero, err
	}
	return qty.Value.Mul(s.WeightedAvgCost), nil
}

// TotalValue is quantity times average cost.
func (s StockItem) TotalValue() decimal.Decimal {
	return s.QuantityBase.Mul(s.WeightedAvgCost)
}

func (s *StockItem) checkUnit(qty units.Quantity) error {
	if qty.Unit != s.BaseUnit {
		return apperr.New(apperr.ErrIncompatibleUnits,
			"%q is stocked in %s, cannot use %s", s.ProductName, s.BaseUnit, qty.Unit)
	}
	return nil
}

// WeightedAverage returns the average cost after adding addQty bought for
// addTotal to oldQty held at oldAvg.
func WeightedAverage(oldQty, oldAvg, addQty, addTotal decimal.Decimal) decimal.Decimal {
	newQty := oldQty.Add(addQty)
	if !newQty.IsPositive() {
		return decimal.Zero
	}
	return oldQty.Mul(oldAvg).Add(addTotal).Div(newQty)
}

// StockRepository defines the contract for stock data access.
// Lookups of a missing product fail with apperr.ErrProductNotFound.
type StockRepository interface {
	FindByProduct(ctx context.Context, product string) (*StockItem, error)
	// FindByProductForUpdate locks the row until the surrounding
	// transaction ends.
	FindByProductForUpdate(ctx context.Context, product string) (*StockItem, error)
	// CreateIfAbsent inserts item unless a row for the product exists.
	CreateIfAbsent(ctx context.Context, item *StockItem) (bool, error)
	Save(ctx context.Context, item *StockItem) error
	ListInStock(ctx context.Context) ([]StockItem, error)
}
