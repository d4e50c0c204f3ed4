package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// TracingStatsRepository wraps a domain.StatsRepository with OpenTelemetry tracing.
type TracingStatsRepository struct {
	next   domain.StatsRepository
	tracer trace.Tracer
}

var _ domain.StatsRepository = (*TracingStatsRepository)(nil)

func NewTracingStatsRepository(next domain.StatsRepository) *TracingStatsRepository {
	return &TracingStatsRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingStatsRepository) Counts(ctx context.Context) (domain.Stats, error) {
	ctx, span := r.tracer.Start(ctx, "StatsRepository.Counts")
	defer span.End()

	stats, err := r.next.Counts(ctx)
	recordError(span, err)
	return stats, err
}
