package purchasing

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/production-costing/internal/purchasing/delivery/http"
	"github.com/tair/production-costing/internal/purchasing/delivery/kafka"
	"github.com/tair/production-costing/internal/purchasing/domain"
	"github.com/tair/production-costing/internal/purchasing/repository"
	"github.com/tair/production-costing/internal/purchasing/usecase/command"
	"github.com/tair/production-costing/internal/purchasing/usecase/query"
)

// Module exposes purchase intake over HTTP and Kafka.
type Module struct {
	HTTP     *http.PurchaseHandler
	Listener *kafka.Listener
}

func NewModule(handler *http.PurchaseHandler, listener *kafka.Listener) *Module {
	return &Module{HTTP: handler, Listener: listener}
}

// ProvideGormPurchaseRepository provides the postgres purchase repository
func ProvideGormPurchaseRepository(db *gorm.DB) domain.PurchaseRepository {
	return repository.NewGormPurchaseRepository(db)
}

// Wire sets
var HandlerSet = wire.NewSet(
	command.NewRecordPurchaseHandler,
	query.NewListPurchasesHandler,
	http.NewPurchaseHandler,
	kafka.NewListener,
	NewModule,
)
