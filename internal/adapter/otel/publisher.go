package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// TracingPublisher wraps a domain.EventPublisher with OpenTelemetry tracing.
type TracingPublisher struct {
	next   domain.EventPublisher
	tracer trace.Tracer
}

// Compile-time check: TracingPublisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*TracingPublisher)(nil)

// NewTracingPublisher creates a tracing decorator around the given publisher.
func NewTracingPublisher(next domain.EventPublisher) *TracingPublisher {
	return &TracingPublisher{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (p *TracingPublisher) Publish(ctx context.Context, event domain.LifecycleEvent) error {
	ctx, span := p.tracer.Start(ctx, "EventPublisher.Publish",
		trace.WithAttributes(
			attribute.String("event.type", string(event.Kind)),
			attribute.String("event.entity_id", event.EntityID),
			attribute.String("event.state", event.State),
		),
	)
	defer span.End()

	err := p.next.Publish(ctx, event)
	recordError(span, err)
	return err
}

// TracingNotifier wraps a domain.CodeNotifier with OpenTelemetry tracing.
// Neither the address nor the code is recorded.
type TracingNotifier struct {
	next   domain.CodeNotifier
	tracer trace.Tracer
}

// Compile-time check: TracingNotifier implements domain.CodeNotifier.
var _ domain.CodeNotifier = (*TracingNotifier)(nil)

// NewTracingNotifier creates a tracing decorator around the given notifier.
func NewTracingNotifier(next domain.CodeNotifier) *TracingNotifier {
	return &TracingNotifier{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (n *TracingNotifier) SendCode(ctx context.Context, address, code string) error {
	ctx, span := n.tracer.Start(ctx, "CodeNotifier.SendCode")
	defer span.End()

	err := n.next.SendCode(ctx, address, code)
	recordError(span, err)
	return err
}
