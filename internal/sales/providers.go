package sales

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/production-costing/internal/sales/delivery/http"
	"github.com/tair/production-costing/internal/sales/domain"
	"github.com/tair/production-costing/internal/sales/repository"
	"github.com/tair/production-costing/internal/sales/usecase/command"
	"github.com/tair/production-costing/internal/sales/usecase/query"
)

// ProvideGormClientRepository provides the postgres client repository
func ProvideGormClientRepository(db *gorm.DB) domain.ClientRepository {
	return repository.NewGormClientRepository(db)
}

// ProvideGormSaleRepository provides the postgres sale repository
func ProvideGormSaleRepository(db *gorm.DB) domain.SaleRepository {
	return repository.NewGormSaleRepository(db)
}

// Wire sets
var HandlerSet = wire.NewSet(
	command.NewRegisterClientHandler,
	command.NewToggleClientActiveHandler,
	command.NewRecordSaleHandler,
	query.NewListClientsHandler,
	query.NewListSalesHandler,
	http.NewSalesHandler,
)
