package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// TracingCategoryRepository wraps a domain.CategoryRepository with OpenTelemetry tracing.
type TracingCategoryRepository struct {
	next   domain.CategoryRepository
	tracer trace.Tracer
}

// Compile-time check: TracingCategoryRepository implements domain.CategoryRepository.
var _ domain.CategoryRepository = (*TracingCategoryRepository)(nil)

// NewTracingCategoryRepository creates a tracing decorator around the given repository.
func NewTracingCategoryRepository(next domain.CategoryRepository) *TracingCategoryRepository {
	return &TracingCategoryRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingCategoryRepository) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.GetByID",
		trace.WithAttributes(attribute.Int64("category.id", id)),
	)
	defer span.End()

	category, err := r.next.GetByID(ctx, id)
	recordError(span, err)
	return category, err
}

func (r *TracingCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.List")
	defer span.End()

	categories, err := r.next.List(ctx)
	if err != nil {
		recordError(span, err)
	} else {
		span.SetAttributes(attribute.Int("result.count", len(categories)))
	}
	return categories, err
}

// TracingListingRepository wraps a domain.ListingRepository with OpenTelemetry tracing.
type TracingListingRepository struct {
	next   domain.ListingRepository
	tracer trace.Tracer
}

// Compile-time check: TracingListingRepository implements domain.ListingRepository.
var _ domain.ListingRepository = (*TracingListingRepository)(nil)

// NewTracingListingRepository creates a tracing decorator around the given repository.
func NewTracingListingRepository(next domain.ListingRepository) *TracingListingRepository {
	return &TracingListingRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingListingRepository) Create(ctx context.Context, listing domain.Listing) error {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.Create",
		trace.WithAttributes(
			attribute.String("listing.id", listing.ID),
			attribute.String("listing.owner_id", listing.OwnerID),
			attribute.Int64("listing.category_id", listing.CategoryID),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, listing)
	recordError(span, err)
	return err
}

func (r *TracingListingRepository) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.GetByID",
		trace.WithAttributes(attribute.String("listing.id", id)),
	)
	defer span.End()

	listing, err := r.next.GetByID(ctx, id)
	recordError(span, err)
	return listing, err
}

func (r *TracingListingRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.List")
	defer span.End()

	if filter.OwnerID != "" {
		span.SetAttributes(attribute.String("filter.owner_id", filter.OwnerID))
	}
	if filter.Approved != nil {
		span.SetAttributes(attribute.Bool("filter.approved", *filter.Approved))
	}

	listings, err := r.next.List(ctx, filter)
	if err != nil {
		recordError(span, err)
	} else {
		span.SetAttributes(attribute.Int("result.count", len(listings)))
	}
	return listings, err
}

func (r *TracingListingRepository) Approve(ctx context.Context, id string, version int64) error {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.Approve",
		trace.WithAttributes(
			attribute.String("listing.id", id),
			attribute.Int64("listing.version", version),
		),
	)
	defer span.End()

	err := r.next.Approve(ctx, id, version)
	recordError(span, err)
	return err
}

func (r *TracingListingRepository) Delete(ctx context.Context, id string, version int64) error {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.Delete",
		trace.WithAttributes(
			attribute.String("listing.id", id),
			attribute.Int64("listing.version", version),
		),
	)
	defer span.End()

	err := r.next.Delete(ctx, id, version)
	recordError(span, err)
	return err
}
