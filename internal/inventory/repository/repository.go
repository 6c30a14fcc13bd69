package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/production-costing/internal/inventory/domain"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
)

type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

func (r *GormStockRepository) FindByProduct(ctx context.Context, product string) (*domain.StockItem, error) {
	return r.find(database.Conn(ctx, r.db), product)
}

func (r *GormStockRepository) FindByProductForUpdate(ctx context.Context, product string) (*domain.StockItem, error) {
	return r.find(database.Conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), product)
}

func (r *GormStockRepository) find(db *gorm.DB, product string) (*domain.StockItem, error) {
	var item domain.StockItem
	err := db.Where("product_name = ?", product).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.ErrProductNotFound, "product %q has no stock record", product)
	}
	if err != nil {
		return nil, database.Classify(err)
	}
	return &item, nil
}

// CreateIfAbsent relies on ON CONFLICT DO NOTHING so a lost race does not
// abort the surrounding transaction.
func (r *GormStockRepository) CreateIfAbsent(ctx context.Context, item *domain.StockItem) (bool, error) {
	res := database.Conn(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "product_name"}}, DoNothing: true}).
		Create(item)
	if res.Error != nil {
		return false, database.Classify(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *GormStockRepository) Save(ctx context.Context, item *domain.StockItem) error {
	res := database.Conn(ctx, r.db).
		Model(&domain.StockItem{}).
		Where("product_name = ?", item.ProductName).
		Updates(map[string]interface{}{
			"quantity_base":     item.QuantityBase,
			"weighted_avg_cost": item.WeightedAvgCost,
			"updated_at":        gorm.Expr("now()"),
		})
	if res.Error != nil {
		return database.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.ErrProductNotFound, "product %q has no stock record", item.ProductName)
	}
	return nil
}

func (r *GormStockRepository) ListInStock(ctx context.Context) ([]domain.StockItem, error) {
	var items []domain.StockItem
	err := database.Conn(ctx, r.db).
		Where("quantity_base > 0").
		Order("product_name").
		Find(&items).Error
	return items, database.Classify(err)
}
