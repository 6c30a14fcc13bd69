package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/production-costing/internal/inventory/delivery/http"
	"github.com/tair/production-costing/internal/inventory/domain"
	"github.com/tair/production-costing/internal/inventory/repository"
	"github.com/tair/production-costing/internal/inventory/usecase/command"
	"github.com/tair/production-costing/internal/inventory/usecase/query"
)

// Module is everything the process needs from the stock ledger.
type Module struct {
	Ledger *Ledger
	HTTP   *http.StockHandler
}

func NewModule(ledger *Ledger, handler *http.StockHandler) *Module {
	return &Module{Ledger: ledger, HTTP: handler}
}

// ProvideGormStockRepository provides the traced postgres repository
func ProvideGormStockRepository(db *gorm.DB) domain.StockRepository {
	return repository.NewTracingStockRepository(repository.NewGormStockRepository(db))
}

// Wire sets
var HandlerSet = wire.NewSet(
	command.NewAddFromPurchaseHandler,
	command.NewConsumeStockHandler,
	query.NewGetStockItemHandler,
	query.NewSummarizeStockHandler,
	query.NewExportSummaryHandler,
	NewLedger,
	http.NewStockHandler,
	NewModule,
)
