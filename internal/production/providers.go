package production

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/production-costing/internal/production/delivery/http"
	"github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/internal/production/repository"
	"github.com/tair/production-costing/internal/production/usecase/command"
	"github.com/tair/production-costing/internal/production/usecase/query"
)

// ProvideGormSubproductRepository provides the traced postgres subproduct repository
func ProvideGormSubproductRepository(db *gorm.DB) domain.SubproductRepository {
	return repository.NewTracingSubproductRepository(repository.NewGormSubproductRepository(db))
}

// ProvideGormFinalProductRepository provides the traced postgres final product repository
func ProvideGormFinalProductRepository(db *gorm.DB) domain.FinalProductRepository {
	return repository.NewTracingFinalProductRepository(repository.NewGormFinalProductRepository(db))
}

// Wire sets
var HandlerSet = wire.NewSet(
	command.NewCreateSubproductHandler,
	command.NewProduceBatchHandler,
	command.NewDeleteSubproductHandler,
	command.NewCreateFinalProductHandler,
	command.NewSetSalePriceHandler,
	command.NewDeleteFinalProductHandler,
	query.NewListSubproductsHandler,
	query.NewGetIngredientsHandler,
	query.NewListFinalProductsHandler,
	http.NewProductionHandler,
)
