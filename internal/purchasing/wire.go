//go:build wireinject
// +build wireinject

package purchasing

import (
	"github.com/google/wire"

	"github.com/tair/production-costing/internal/purchasing/domain"
	"github.com/tair/production-costing/pkg/database"
)

// InitializeModule wires purchase intake over a repository, the stock ledger and a transactor
func InitializeModule(repo domain.PurchaseRepository, stock domain.StockIntake, tx database.Transactor) (*Module, error) {
	wire.Build(HandlerSet)
	return nil, nil
}
