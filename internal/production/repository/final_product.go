package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
)

type GormFinalProductRepository struct {
	db *gorm.DB
}

func NewGormFinalProductRepository(db *gorm.DB) *GormFinalProductRepository {
	return &GormFinalProductRepository{db: db}
}

func (r *GormFinalProductRepository) Create(ctx context.Context, fp *domain.FinalProduct) error {
	if err := database.Conn(ctx, r.db).Create(fp).Error; err != nil {
		err = database.Classify(err)
		switch {
		case errors.Is(err, apperr.ErrAlreadyExists):
			return apperr.Wrap(err, apperr.ErrAlreadyExists, "final product %q already exists", fp.Name)
		case errors.Is(err, apperr.ErrInvalidInput):
			return apperr.Wrap(err, apperr.ErrSubproductNotFound, "subproduct %d does not exist", fp.SubproductID)
		}
		return errors.Wrapf(err, "create final product %q", fp.Name)
	}
	return nil
}

func (r *GormFinalProductRepository) withCost(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db).
		Table("final_products AS fp").
		Select("fp.*, s.name AS subproduct_name, s.total_cost AS subproduct_cost").
		Joins("JOIN subproducts s ON s.id = fp.subproduct_id")
}

func (r *GormFinalProductRepository) FindWithCost(ctx context.Context, id uint) (*domain.FinalProductCost, error) {
	var rows []domain.FinalProductCost
	if err := r.withCost(ctx).Where("fp.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, database.Classify(err)
	}
	if len(rows) == 0 {
		return nil, apperr.New(apperr.ErrFinalProductNotFound, "final product %d does not exist", id)
	}
	return &rows[0], nil
}

func (r *GormFinalProductRepository) ListWithCost(ctx context.Context) ([]domain.FinalProductCost, error) {
	var rows []domain.FinalProductCost
	err := r.withCost(ctx).Order("fp.name").Scan(&rows).Error
	return rows, database.Classify(err)
}

func (r *GormFinalProductRepository) UpdateSalePrice(ctx context.Context, id uint, price decimal.Decimal) error {
	res := database.Conn(ctx, r.db).
		Model(&domain.FinalProduct{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sale_price": price,
			"updated_at": gorm.Expr("now()"),
		})
	if res.Error != nil {
		return database.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.ErrFinalProductNotFound, "final product %d does not exist", id)
	}
	return nil
}

func (r *GormFinalProductRepository) CountBySubproduct(ctx context.Context, subproductID uint) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.db).
		Model(&domain.FinalProduct{}).
		Where("subproduct_id = ?", subproductID).
		Count(&n).Error
	return n, database.Classify(err)
}

func (r *GormFinalProductRepository) Delete(ctx context.Context, id uint) error {
	res := database.Conn(ctx, r.db).Delete(&domain.FinalProduct{}, id)
	if res.Error != nil {
		err := database.Classify(res.Error)
		if errors.Is(err, apperr.ErrInvalidInput) {
			return apperr.Wrap(err, apperr.ErrFinalProductInUse, "final product %d has recorded sales", id)
		}
		return err
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.ErrFinalProductNotFound, "final product %d does not exist", id)
	}
	return nil
}
