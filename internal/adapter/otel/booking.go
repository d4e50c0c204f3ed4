package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// TracingBookingRepository wraps a domain.BookingRepository with OpenTelemetry tracing.
type TracingBookingRepository struct {
	next   domain.BookingRepository
	tracer trace.Tracer
}

// Compile-time check: TracingBookingRepository implements domain.BookingRepository.
var _ domain.BookingRepository = (*TracingBookingRepository)(nil)

// NewTracingBookingRepository creates a tracing decorator around the given repository.
func NewTracingBookingRepository(next domain.BookingRepository) *TracingBookingRepository {
	return &TracingBookingRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingBookingRepository) Create(ctx context.Context, booking domain.Booking) error {
	ctx, span := r.tracer.Start(ctx, "BookingRepository.Create",
		trace.WithAttributes(
			attribute.String("booking.id", booking.ID),
			attribute.String("booking.listing_id", booking.ListingID),
			attribute.String("booking.status", string(booking.Status)),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, booking)
	recordError(span, err)
	return err
}

func (r *TracingBookingRepository) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	ctx, span := r.tracer.Start(ctx, "BookingRepository.GetByID",
		trace.WithAttributes(attribute.String("booking.id", id)),
	)
	defer span.End()

	booking, err := r.next.GetByID(ctx, id)
	recordError(span, err)
	return booking, err
}

func (r *TracingBookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	ctx, span := r.tracer.Start(ctx, "BookingRepository.List",
		trace.WithAttributes(
			attribute.String("filter.farmer_id", filter.FarmerID),
			attribute.String("filter.owner_id", filter.OwnerID),
		),
	)
	defer span.End()

	bookings, err := r.next.List(ctx, filter)
	if err != nil {
		recordError(span, err)
	} else {
		span.SetAttributes(attribute.Int("result.count", len(bookings)))
	}
	return bookings, err
}

func (r *TracingBookingRepository) Update(ctx context.Context, booking domain.Booking, expected domain.BookingStatus) error {
	ctx, span := r.tracer.Start(ctx, "BookingRepository.Update",
		trace.WithAttributes(
			attribute.String("booking.id", booking.ID),
			attribute.String("booking.status", string(booking.Status)),
			attribute.String("booking.expected_status", string(expected)),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, booking, expected)
	recordError(span, err)
	return err
}

// TracingWorkerProfileRepository wraps a domain.WorkerProfileRepository with OpenTelemetry tracing.
type TracingWorkerProfileRepository struct {
	next   domain.WorkerProfileRepository
	tracer trace.Tracer
}

// Compile-time check: TracingWorkerProfileRepository implements domain.WorkerProfileRepository.
var _ domain.WorkerProfileRepository = (*TracingWorkerProfileRepository)(nil)

// NewTracingWorkerProfileRepository creates a tracing decorator around the given repository.
func NewTracingWorkerProfileRepository(next domain.WorkerProfileRepository) *TracingWorkerProfileRepository {
	return &TracingWorkerProfileRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingWorkerProfileRepository) Get(ctx context.Context, accountID string) (domain.WorkerProfile, error) {
	ctx, span := r.tracer.Start(ctx, "WorkerProfileRepository.Get",
		trace.WithAttributes(attribute.String("account.id", accountID)),
	)
	defer span.End()

	profile, err := r.next.Get(ctx, accountID)
	recordError(span, err)
	return profile, err
}

func (r *TracingWorkerProfileRepository) Save(ctx context.Context, profile domain.WorkerProfile) error {
	ctx, span := r.tracer.Start(ctx, "WorkerProfileRepository.Save",
		trace.WithAttributes(
			attribute.String("account.id", profile.AccountID),
			attribute.String("worker.availability", profile.AvailabilityStatus),
		),
	)
	defer span.End()

	err := r.next.Save(ctx, profile)
	recordError(span, err)
	return err
}

func (r *TracingWorkerProfileRepository) ListApproved(ctx context.Context) ([]domain.WorkerListing, error) {
	ctx, span := r.tracer.Start(ctx, "WorkerProfileRepository.ListApproved")
	defer span.End()

	workers, err := r.next.ListApproved(ctx)
	if err != nil {
		recordError(span, err)
	} else {
		span.SetAttributes(attribute.Int("result.count", len(workers)))
	}
	return workers, err
}
