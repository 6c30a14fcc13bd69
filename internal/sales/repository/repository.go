package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/tair/production-costing/internal/sales/domain"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
)

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) Create(ctx context.Context, c *domain.Client) error {
	if err := database.Conn(ctx, r.db).Create(c).Error; err != nil {
		err = database.Classify(err)
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return apperr.Wrap(err, apperr.ErrAlreadyExists, "client %q already exists", c.Name)
		}
		return errors.Wrapf(err, "create client %q", c.Name)
	}
	return nil
}

func (r *GormClientRepository) FindByID(ctx context.Context, id uint) (*domain.Client, error) {
	var c domain.Client
	err := database.Conn(ctx, r.db).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.ErrClientNotFound, "client %d does not exist", id)
	}
	if err != nil {
		return nil, database.Classify(err)
	}
	return &c, nil
}

func (r *GormClientRepository) List(ctx context.Context, onlyActive bool) ([]domain.Client, error) {
	var clients []domain.Client
	q := database.Conn(ctx, r.db).Order("name")
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&clients).Error; err != nil {
		return nil, database.Classify(err)
	}
	return clients, nil
}

func (r *GormClientRepository) SetActive(ctx context.Context, id uint, active bool) error {
	res := database.Conn(ctx, r.db).
		Model(&domain.Client{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":     active,
			"updated_at": gorm.Expr("now()"),
		})
	if res.Error != nil {
		return database.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.ErrClientNotFound, "client %d does not exist", id)
	}
	return nil
}

type GormSaleRepository struct {
	db *gorm.DB
}

func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Create inserts the sale. Foreign key failures are reported against the
// final product; the command verifies the client beforehand.
func (r *GormSaleRepository) Create(ctx context.Context, s *domain.Sale) error {
	if err := database.Conn(ctx, r.db).Create(s).Error; err != nil {
		err = database.Classify(err)
		switch {
		case errors.Is(err, apperr.ErrAlreadyExists):
			return apperr.Wrap(err, apperr.ErrAlreadyExists, "receipt %s already recorded", s.ReceiptNumber)
		case errors.Is(err, apperr.ErrInvalidInput):
			return apperr.Wrap(err, apperr.ErrFinalProductNotFound, "final product %d does not exist", s.FinalProductID)
		}
		return errors.Wrapf(err, "create sale %s", s.ReceiptNumber)
	}
	return nil
}

func (r *GormSaleRepository) List(ctx context.Context, limit, offset int) ([]domain.SaleRecord, error) {
	var rows []domain.SaleRecord
	err := database.Conn(ctx, r.db).
		Table("sales AS s").
		Select("s.*, c.name AS client_name, fp.name AS product_name").
		Joins("JOIN clients c ON c.id = s.client_id").
		Joins("JOIN final_products fp ON fp.id = s.final_product_id").
		Order("s.created_at DESC, s.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, database.Classify(err)
	}
	return rows, nil
}

func (r *GormSaleRepository) CountByFinalProduct(ctx context.Context, finalProductID uint) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.db).
		Model(&domain.Sale{}).
		Where("final_product_id = ?", finalProductID).
		Count(&n).Error
	return n, database.Classify(err)
}
