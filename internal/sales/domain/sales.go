package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	proddomain "github.com/tair/production-costing/internal/production/domain"
)

// Client is a customer that sales are recorded against.
type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// Sale records units of a final product sold to a client. The unit cost is
// captured at sale time so later cost changes do not rewrite history.
type Sale struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	ReceiptNumber  string          `json:"receipt_number" gorm:"uniqueIndex;not null"`
	ClientID       uint            `json:"client_id" gorm:"not null"`
	FinalProductID uint            `json:"final_product_id" gorm:"not null;index"`
	Quantity       int             `json:"quantity" gorm:"not null"`
	UnitPrice      decimal.Decimal `json:"unit_price" gorm:"type:numeric;not null"`
	UnitCost       decimal.Decimal `json:"unit_cost" gorm:"type:numeric;not null"`
	Total          decimal.Decimal `json:"total" gorm:"type:numeric;not null"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (Sale) TableName() string {
	return "sales"
}

// Profit is (unit price - unit cost) * quantity.
func (s Sale) Profit() decimal.Decimal {
	return s.UnitPrice.Sub(s.UnitCost).Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// SaleRecord is a sale joined with the names shown in the history.
type SaleRecord struct {
	Sale
	ClientName  string `json:"client_name"`
	ProductName string `json:"product_name"`
}

// ClientRepository defines the contract for client data access.
// Missing ids fail with apperr.ErrClientNotFound.
type ClientRepository interface {
	Create(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, id uint) (*Client, error)
	List(ctx context.Context, onlyActive bool) ([]Client, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

// SaleRepository defines the contract for sale data access.
type SaleRepository interface {
	Create(ctx context.Context, s *Sale) error
	List(ctx context.Context, limit, offset int) ([]SaleRecord, error)
	CountByFinalProduct(ctx context.Context, finalProductID uint) (int64, error)
}

// Catalog resolves the final product being sold and its current cost.
type Catalog interface {
	FindWithCost(ctx context.Context, id uint) (*proddomain.FinalProductCost, error)
}
