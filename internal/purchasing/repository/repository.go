package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/production-costing/internal/purchasing/domain"
	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/database"
)

var tracer = otel.Tracer("purchasing-repository")

type GormPurchaseRepository struct {
	db *gorm.DB
}

func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

func (r *GormPurchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	ctx, span := tracer.Start(ctx, "repository.CreatePurchase",
		trace.WithAttributes(
			attribute.String("purchase.product", p.ProductName),
			attribute.String("purchase.kind", string(p.Kind)),
			attribute.String("purchase.total_price", p.TotalPrice.String()),
		),
	)
	defer span.End()

	if err := database.Conn(ctx, r.db).Create(p).Error; err != nil {
		err = database.Classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, apperr.ErrAlreadyExists) && p.EventID != nil {
			return apperr.Wrap(err, apperr.ErrAlreadyExists, "purchase event %s already recorded", *p.EventID)
		}
		return errors.Wrapf(err, "create purchase of %q", p.ProductName)
	}
	span.SetAttributes(attribute.Int("purchase.id", int(p.ID)))
	return nil
}

func (r *GormPurchaseRepository) List(ctx context.Context, limit, offset int) ([]domain.Purchase, error) {
	ctx, span := tracer.Start(ctx, "repository.ListPurchases",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	var purchases []domain.Purchase
	err := database.Conn(ctx, r.db).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&purchases).Error
	if err != nil {
		err = database.Classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(purchases)))
	return purchases, nil
}
