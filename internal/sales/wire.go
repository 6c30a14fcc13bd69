//go:build wireinject
// +build wireinject

package sales

import (
	"github.com/google/wire"

	"github.com/tair/production-costing/internal/sales/delivery/http"
	"github.com/tair/production-costing/internal/sales/domain"
	"github.com/tair/production-costing/internal/sales/usecase/command"
	"github.com/tair/production-costing/pkg/database"
)

// InitializeHTTPHandler wires the sales handler
func InitializeHTTPHandler(
	clients domain.ClientRepository,
	sales domain.SaleRepository,
	catalog domain.Catalog,
	tx database.Transactor,
	publisher command.SalePublisher,
) (*http.SalesHandler, error) {
	wire.Build(HandlerSet)
	return nil, nil
}
