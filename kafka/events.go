package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRecordedEvent is a supplier purchase produced by the purchasing
// workflow. Package fields are only set for kind "package".
type PurchaseRecordedEvent struct {
	EventID      string              `json:"event_id"`
	EventType    string              `json:"event_type"`
	ProductName  string              `json:"product_name"`
	Supplier     string              `json:"supplier"`
	Kind         string              `json:"kind"`
	Quantity     decimal.Decimal     `json:"quantity"`
	Unit         string              `json:"unit"`
	UnitPrice    decimal.Decimal     `json:"unit_price"`
	PackageCount decimal.NullDecimal `json:"package_count"`
	PackageSize  decimal.NullDecimal `json:"package_size"`
	PackagePrice decimal.NullDecimal `json:"package_price"`
	Timestamp    time.Time           `json:"timestamp"`
}

// SaleRecordedEvent is published after a sale commits.
type SaleRecordedEvent struct {
	EventID        string          `json:"event_id"`
	EventType      string          `json:"event_type"`
	SaleID         uint            `json:"sale_id"`
	ReceiptNumber  string          `json:"receipt_number"`
	ClientID       uint            `json:"client_id"`
	FinalProductID uint            `json:"final_product_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Total          decimal.Decimal `json:"total"`
	Profit         decimal.Decimal `json:"profit"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Event types
const (
	EventTypePurchaseRecorded = "purchase.recorded"
	EventTypeSaleRecorded     = "sale.recorded"
)

// Kafka topics
const (
	TopicPurchaseRecorded = "purchase-recorded"
	TopicSaleRecorded     = "sale-recorded"
)
