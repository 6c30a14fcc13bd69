package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/production-costing/internal/units"
	"github.com/tair/production-costing/pkg/apperr"
)

// Kind tells how a purchase was priced.
type Kind string

const (
	// KindBulk is loose goods: quantity times unit price.
	KindBulk Kind = "bulk"
	// KindPackage is a number of packs of a fixed size and price.
	KindPackage Kind = "package"
)

// ParseKind accepts the canonical names and their plurals.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bulk":
		return KindBulk, nil
	case "package", "packages":
		return KindPackage, nil
	}
	return "", apperr.New(apperr.ErrInvalidInput, "purchase kind %q is not bulk or package", s)
}

// Purchase is one supplier invoice line that fed the stock ledger.
type Purchase struct {
	ID           uint                `json:"id" gorm:"primaryKey"`
	EventID      *string             `json:"event_id,omitempty" gorm:"uniqueIndex"`
	ProductName  string              `json:"product_name" gorm:"not null;index"`
	Supplier     string              `json:"supplier" gorm:"not null"`
	Kind         Kind                `json:"kind" gorm:"type:text;not null"`
	Quantity     decimal.Decimal     `json:"quantity" gorm:"type:numeric;not null"`
	Unit         string              `json:"unit" gorm:"not null"`
	UnitPrice    decimal.Decimal     `json:"unit_price" gorm:"type:numeric;not null"`
	PackageCount decimal.NullDecimal `json:"package_count" gorm:"type:numeric"`
	PackageSize  decimal.NullDecimal `json:"package_size" gorm:"type:numeric"`
	PackagePrice decimal.NullDecimal `json:"package_price" gorm:"type:numeric"`
	TotalPrice   decimal.Decimal     `json:"total_price" gorm:"type:numeric;not null"`
	CreatedAt    time.Time           `json:"created_at"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// Intake is a purchase as entered, before totals are derived.
type Intake struct {
	EventID      string
	ProductName  string
	Supplier     string
	Kind         Kind
	Quantity     decimal.Decimal
	Unit         string
	UnitPrice    decimal.Decimal
	PackageCount decimal.Decimal
	PackageSize  decimal.Decimal
	PackagePrice decimal.Decimal
}

// Build validates the intake and derives quantity and total price.
func (in Intake) Build() (*Purchase, error) {
	name := strings.TrimSpace(in.ProductName)
	supplier := strings.TrimSpace(in.Supplier)
	if name == "" || supplier == "" {
		return nil, apperr.New(apperr.ErrInvalidInput, "product name and supplier are required")
	}
	if _, err := units.CategoryOf(in.Unit); err != nil {
		return nil, err
	}

	p := &Purchase{
		ProductName: name,
		Supplier:    supplier,
		Kind:        in.Kind,
		Unit:        units.Normalize(in.Unit),
	}
	if in.EventID != "" {
		id := in.EventID
		p.EventID = &id
	}

	switch in.Kind {
	case KindBulk:
		if !in.Quantity.IsPositive() {
			return nil, apperr.New(apperr.ErrInvalidQuantity, "quantity must be positive, got %s", in.Quantity)
		}
		if in.UnitPrice.IsNegative() {
			return nil, apperr.New(apperr.ErrInvalidPrice, "unit price cannot be negative, got %s", in.UnitPrice)
		}
		p.Quantity = in.Quantity
		p.UnitPrice = in.UnitPrice
		p.TotalPrice = in.Quantity.Mul(in.UnitPrice)
	case KindPackage:
		if !in.PackageCount.IsPositive() || !in.PackageSize.IsPositive() {
			return nil, apperr.New(apperr.ErrInvalidQuantity,
				"package count and size must be positive, got %s x %s", in.PackageCount, in.PackageSize)
		}
		if in.PackagePrice.IsNegative() {
			return nil, apperr.New(apperr.ErrInvalidPrice, "package price cannot be negative, got %s", in.PackagePrice)
		}
		p.Quantity = in.PackageCount.Mul(in.PackageSize)
		p.UnitPrice = in.PackagePrice
		p.TotalPrice = in.PackageCount.Mul(in.PackagePrice)
		p.PackageCount = decimal.NewNullDecimal(in.PackageCount)
		p.PackageSize = decimal.NewNullDecimal(in.PackageSize)
		p.PackagePrice = decimal.NewNullDecimal(in.PackagePrice)
	default:
		return nil, apperr.New(apperr.ErrInvalidInput, "purchase kind %q is not bulk or package", in.Kind)
	}
	return p, nil
}

// PurchaseRepository defines the contract for purchase history access.
type PurchaseRepository interface {
	// Create fails with apperr.ErrAlreadyExists when the event id was
	// already recorded.
	Create(ctx context.Context, p *Purchase) error
	List(ctx context.Context, limit, offset int) ([]Purchase, error)
}

// StockIntake is the ledger operation a purchase feeds.
type StockIntake interface {
	AddFromPurchase(ctx context.Context, product string, quantity decimal.Decimal, unit string, totalPrice decimal.Decimal) error
}
