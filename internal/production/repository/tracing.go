package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/production-costing/internal/production/domain"
)

var tracer = otel.Tracer("production-repository")

// TracingSubproductRepository wraps a SubproductRepository with tracing
type TracingSubproductRepository struct {
	next domain.SubproductRepository
}

func NewTracingSubproductRepository(next domain.SubproductRepository) *TracingSubproductRepository {
	return &TracingSubproductRepository{next: next}
}

func (r *TracingSubproductRepository) Create(ctx context.Context, sub *domain.Subproduct) error {
	ctx, span := tracer.Start(ctx, "repository.CreateSubproduct",
		trace.WithAttributes(
			attribute.String("subproduct.name", sub.Name),
			attribute.Int("subproduct.ingredients", len(sub.Ingredients)),
			attribute.String("subproduct.total_cost", sub.TotalCost.String()),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, sub); err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("subproduct.id", int(sub.ID)))
	return nil
}

func (r *TracingSubproductRepository) FindByID(ctx context.Context, id uint) (*domain.Subproduct, error) {
	ctx, span := tracer.Start(ctx, "repository.FindSubproduct",
		trace.WithAttributes(attribute.Int("subproduct.id", int(id))),
	)
	defer span.End()

	sub, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return sub, nil
}

func (r *TracingSubproductRepository) List(ctx context.Context) ([]domain.Subproduct, error) {
	ctx, span := tracer.Start(ctx, "repository.ListSubproducts")
	defer span.End()

	subs, err := r.next.List(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(subs)))
	return subs, nil
}

func (r *TracingSubproductRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.DeleteSubproduct",
		trace.WithAttributes(attribute.Int("subproduct.id", int(id))),
	)
	defer span.End()

	if err := r.next.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// TracingFinalProductRepository wraps a FinalProductRepository with tracing
type TracingFinalProductRepository struct {
	next domain.FinalProductRepository
}

func NewTracingFinalProductRepository(next domain.FinalProductRepository) *TracingFinalProductRepository {
	return &TracingFinalProductRepository{next: next}
}

func (r *TracingFinalProductRepository) Create(ctx context.Context, fp *domain.FinalProduct) error {
	ctx, span := tracer.Start(ctx, "repository.CreateFinalProduct",
		trace.WithAttributes(
			attribute.String("final_product.name", fp.Name),
			attribute.Int("final_product.subproduct_id", int(fp.SubproductID)),
			attribute.Int("final_product.units_produced", fp.UnitsProduced),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, fp); err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("final_product.id", int(fp.ID)))
	return nil
}

func (r *TracingFinalProductRepository) FindWithCost(ctx context.Context, id uint) (*domain.FinalProductCost, error) {
	ctx, span := tracer.Start(ctx, "repository.FindFinalProductWithCost",
		trace.WithAttributes(attribute.Int("final_product.id", int(id))),
	)
	defer span.End()

	fp, err := r.next.FindWithCost(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("final_product.unit_cost", fp.UnitCost().String()))
	return fp, nil
}

func (r *TracingFinalProductRepository) ListWithCost(ctx context.Context) ([]domain.FinalProductCost, error) {
	ctx, span := tracer.Start(ctx, "repository.ListFinalProductsWithCost")
	defer span.End()

	rows, err := r.next.ListWithCost(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(rows)))
	return rows, nil
}

func (r *TracingFinalProductRepository) UpdateSalePrice(ctx context.Context, id uint, price decimal.Decimal) error {
	ctx, span := tracer.Start(ctx, "repository.UpdateSalePrice",
		trace.WithAttributes(
			attribute.Int("final_product.id", int(id)),
			attribute.String("final_product.sale_price", price.String()),
		),
	)
	defer span.End()

	if err := r.next.UpdateSalePrice(ctx, id, price); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingFinalProductRepository) CountBySubproduct(ctx context.Context, subproductID uint) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.CountFinalProductsBySubproduct",
		trace.WithAttributes(attribute.Int("subproduct.id", int(subproductID))),
	)
	defer span.End()

	n, err := r.next.CountBySubproduct(ctx, subproductID)
	if err != nil {
		recordError(span, err)
		return 0, err
	}
	return n, nil
}

func (r *TracingFinalProductRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.DeleteFinalProduct",
		trace.WithAttributes(attribute.Int("final_product.id", int(id))),
	)
	defer span.End()

	if err := r.next.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
