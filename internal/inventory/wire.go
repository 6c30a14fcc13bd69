//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"

	"github.com/tair/production-costing/internal/inventory/domain"
	"github.com/tair/production-costing/pkg/database"
)

// InitializeModule wires the stock ledger over a repository and transactor
func InitializeModule(repo domain.StockRepository, tx database.Transactor) (*Module, error) {
	wire.Build(HandlerSet)
	return nil, nil
}
