package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/tair/production-costing/internal/production/domain"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
)

type GormSubproductRepository struct {
	db *gorm.DB
}

func NewGormSubproductRepository(db *gorm.DB) *GormSubproductRepository {
	return &GormSubproductRepository{db: db}
}

// Create inserts the subproduct; gorm writes the ingredient lines through
// the association.
func (r *GormSubproductRepository) Create(ctx context.Context, sub *domain.Subproduct) error {
	if err := database.Conn(ctx, r.db).Create(sub).Error; err != nil {
		err = database.Classify(err)
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return apperr.Wrap(err, apperr.ErrAlreadyExists, "subproduct %q already exists", sub.Name)
		}
		return errors.Wrapf(err, "create subproduct %q", sub.Name)
	}
	return nil
}

func (r *GormSubproductRepository) FindByID(ctx context.Context, id uint) (*domain.Subproduct, error) {
	var sub domain.Subproduct
	err := database.Conn(ctx, r.db).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&sub, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.ErrSubproductNotFound, "subproduct %d does not exist", id)
	}
	if err != nil {
		return nil, database.Classify(err)
	}
	return &sub, nil
}

func (r *GormSubproductRepository) List(ctx context.Context) ([]domain.Subproduct, error) {
	var subs []domain.Subproduct
	err := database.Conn(ctx, r.db).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("name").
		Find(&subs).Error
	return subs, database.Classify(err)
}

func (r *GormSubproductRepository) Delete(ctx context.Context, id uint) error {
	res := database.Conn(ctx, r.db).Delete(&domain.Subproduct{}, id)
	if res.Error != nil {
		err := database.Classify(res.Error)
		if errors.Is(err, apperr.ErrInvalidInput) {
			return apperr.Wrap(err, apperr.ErrSubproductInUse, "subproduct %d is used by a final product", id)
		}
		return err
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.ErrSubproductNotFound, "subproduct %d does not exist", id)
	}
	return nil
}
