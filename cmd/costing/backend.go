package main

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/tair/production-costing/internal/config"
	"github.com/tair/production-costing/internal/inventory"
	invdomain "github.com/tair/production-costing/internal/inventory/domain"
	"github.com/tair/production-costing/internal/platform/memstore"
	"github.com/tair/production-costing/internal/production"
	proddomain "github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/internal/purchasing"
	purdomain "github.com/tair/production-costing/internal/purchasing/domain"
	"github.com/tair/production-costing/internal/sales"
	salesdomain "github.com/tair/production-costing/internal/sales/domain"
	"github.com/tair/production-costing/pkg/database"
	"github.com/tair/production-costing/pkg/logger"
)

// backend is one complete set of repositories sharing a transactor.
type backend struct {
	stock       invdomain.StockRepository
	subproducts proddomain.SubproductRepository
	finals      proddomain.FinalProductRepository
	purchases   purdomain.PurchaseRepository
	clients     salesdomain.ClientRepository
	sales       salesdomain.SaleRepository
	tx          database.Transactor
	pinger      interface {
		PingContext(ctx context.Context) error
	}
	close func() error
}

func openBackend(cfg config.Config) (*backend, error) {
	switch strings.ToLower(cfg.Database.Driver) {
	case "memory":
		logger.Logger.Warn().Msg("Using in-memory store; data is lost on exit")
		store := memstore.New()
		return &backend{
			stock:       store.Stock(),
			subproducts: store.Subproducts(),
			finals:      store.FinalProducts(),
			purchases:   store.Purchases(),
			clients:     store.Clients(),
			sales:       store.Sales(),
			tx:          store,
			pinger:      store,
			close:       func() error { return nil },
		}, nil
	case "", "postgres":
		return openPostgres(cfg)
	}
	return nil, errors.Newf("unknown database driver %q", cfg.Database.Driver)
}

func openPostgres(cfg config.Config) (*backend, error) {
	dbConfig := database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	if cfg.Database.Migrate {
		sqlDB, err := database.NewPostgresConnection(dbConfig)
		if err != nil {
			return nil, err
		}
		err = database.Migrate(sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			return nil, err
		}
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get database instance")
	}

	logger.Logger.Info().Msg("Database initialized successfully")
	return &backend{
		stock:       inventory.ProvideGormStockRepository(db),
		subproducts: production.ProvideGormSubproductRepository(db),
		finals:      production.ProvideGormFinalProductRepository(db),
		purchases:   purchasing.ProvideGormPurchaseRepository(db),
		clients:     sales.ProvideGormClientRepository(db),
		sales:       sales.ProvideGormSaleRepository(db),
		tx:          database.NewGormTransactor(db),
		pinger:      sqlDB,
		close:       sqlDB.Close,
	}, nil
}
