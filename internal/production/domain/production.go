package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	invdomain "github.com/tair/production-costing/internal/inventory/domain"
)

// Subproduct is an intermediate good made from raw stock. Its cost is a
// snapshot taken when it was created and is never recomputed.
type Subproduct struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	Name        string            `json:"name" gorm:"uniqueIndex;not null"`
	TotalCost   decimal.Decimal   `json:"total_cost" gorm:"type:numeric;not null"`
	Ingredients []IngredientUsage `json:"ingredients,omitempty" gorm:"foreignKey:SubproductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (Subproduct) TableName() string {
	return "subproducts"
}

// IngredientUsage is one line of a subproduct recipe. Product names refer to
// stock rows by name only.
type IngredientUsage struct {
	ID           uint            `json:"-" gorm:"primaryKey"`
	SubproductID uint            `json:"-" gorm:"not null;index"`
	Position     int             `json:"position" gorm:"not null"`
	ProductName  string          `json:"product_name" gorm:"not null"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:numeric;not null"`
	Unit         string          `json:"unit" gorm:"not null"`
}

func (IngredientUsage) TableName() string {
	return "subproduct_ingredients"
}

// FinalProduct is a sellable unit obtained from one subproduct batch.
type FinalProduct struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	Name          string              `json:"name" gorm:"uniqueIndex;not null"`
	SubproductID  uint                `json:"subproduct_id" gorm:"not null;index"`
	UnitsProduced int                 `json:"units_produced" gorm:"not null"`
	SalePrice     decimal.NullDecimal `json:"sale_price" gorm:"type:numeric"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (FinalProduct) TableName() string {
	return "final_products"
}

// FinalProductCost is a final product joined with its subproduct's cost.
type FinalProductCost struct {
	FinalProduct
	SubproductName string          `json:"subproduct_name"`
	SubproductCost decimal.Decimal `json:"subproduct_cost"`
}

// UnitCost is derived on every read so it always reflects the stored batch
// cost and yield.
func (f FinalProductCost) UnitCost() decimal.Decimal {
	if f.UnitsProduced <= 0 {
		return decimal.Zero
	}
	return f.SubproductCost.Div(decimal.NewFromInt(int64(f.UnitsProduced)))
}

// SalePriceOrZero treats an unset price as zero.
func (f FinalProduct) SalePriceOrZero() decimal.Decimal {
	if !f.SalePrice.Valid {
		return decimal.Zero
	}
	return f.SalePrice.Decimal
}

// SubproductRepository defines the contract for subproduct data access.
// Missing ids fail with apperr.ErrSubproductNotFound.
type SubproductRepository interface {
	// Create stores the subproduct and its ingredient lines.
	Create(ctx context.Context, sub *Subproduct) error
	FindByID(ctx context.Context, id uint) (*Subproduct, error)
	List(ctx context.Context) ([]Subproduct, error)
	Delete(ctx context.Context, id uint) error
}

// FinalProductRepository defines the contract for final product data access.
// Missing ids fail with apperr.ErrFinalProductNotFound.
type FinalProductRepository interface {
	Create(ctx context.Context, fp *FinalProduct) error
	FindWithCost(ctx context.Context, id uint) (*FinalProductCost, error)
	ListWithCost(ctx context.Context) ([]FinalProductCost, error)
	UpdateSalePrice(ctx context.Context, id uint, price decimal.Decimal) error
	CountBySubproduct(ctx context.Context, subproductID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// StockLedger is the part of inventory production depends on.
type StockLedger interface {
	Lookup(ctx context.Context, product string) (*invdomain.StockItem, error)
	Consume(ctx context.Context, product string, quantity decimal.Decimal, unit string) (*invdomain.StockItem, error)
}

// SalesIndex tells whether sales reference a final product.
type SalesIndex interface {
	CountByFinalProduct(ctx context.Context, finalProductID uint) (int64, error)
}

// CatalogListener is told after a committed change to costs or sale prices.
type CatalogListener interface {
	CatalogChanged(ctx context.Context)
}

// NopCatalogListener ignores catalog changes.
type NopCatalogListener struct{}

func (NopCatalogListener) CatalogChanged(context.Context) {}
