//go:build wireinject
// +build wireinject

package production

import (
	"github.com/google/wire"

	"github.com/tair/production-costing/internal/production/delivery/http"
	"github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/pkg/database"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	subproducts domain.SubproductRepository,
	finals domain.FinalProductRepository,
	ledger domain.StockLedger,
	sales domain.SalesIndex,
	tx database.Transactor,
	listener domain.CatalogListener,
) (*http.ProductionHandler, error) {
	wire.Build(HandlerSet)
	return nil, nil
}
