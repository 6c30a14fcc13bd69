package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/production-costing/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracingStockRepository wraps a StockRepository with tracing
type TracingStockRepository struct {
	next domain.StockRepository
}

// NewTracingStockRepository creates a new repository with tracing
func NewTracingStockRepository(next domain.StockRepository) *TracingStockRepository {
	return &TracingStockRepository{next: next}
}

func (r *TracingStockRepository) FindByProduct(ctx context.Context, product string) (*domain.StockItem, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByProduct",
		trace.WithAttributes(attribute.String("stock.product", product)),
	)
	defer span.End()

	item, err := r.next.FindByProduct(ctx, product)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	annotate(span, item)
	return item, nil
}

func (r *TracingStockRepository) FindByProductForUpdate(ctx context.Context, product string) (*domain.StockItem, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByProductForUpdate",
		trace.WithAttributes(
			attribute.String("stock.product", product),
			attribute.Bool("db.row_lock", true),
		),
	)
	defer span.End()

	item, err := r.next.FindByProductForUpdate(ctx, product)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	annotate(span, item)
	return item, nil
}

func (r *TracingStockRepository) CreateIfAbsent(ctx context.Context, item *domain.StockItem) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.CreateIfAbsent",
		trace.WithAttributes(
			attribute.String("stock.product", item.ProductName),
			attribute.String("stock.base_unit", item.BaseUnit),
		),
	)
	defer span.End()

	created, err := r.next.CreateIfAbsent(ctx, item)
	if err != nil {
		recordError(span, err)
		return false, err
	}
	span.SetAttributes(attribute.Bool("stock.created", created))
	return created, nil
}

func (r *TracingStockRepository) Save(ctx context.Context, item *domain.StockItem) error {
	ctx, span := tracer.Start(ctx, "repository.Save")
	defer span.End()
	annotate(span, item)

	if err := r.next.Save(ctx, item); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingStockRepository) ListInStock(ctx context.Context) ([]domain.StockItem, error) {
	ctx, span := tracer.Start(ctx, "repository.ListInStock")
	defer span.End()

	items, err := r.next.ListInStock(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

func annotate(span trace.Span, item *domain.StockItem) {
	span.SetAttributes(
		attribute.String("stock.product", item.ProductName),
		attribute.String("stock.quantity_base", item.QuantityBase.String()),
		attribute.String("stock.weighted_avg_cost", item.WeightedAvgCost.String()),
	)
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
