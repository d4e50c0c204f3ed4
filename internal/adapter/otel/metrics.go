package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Instrument names exported by the metering decorators.
const (
	LifecycleEventsMetric = "krishisetu.lifecycle.events"
	CodesSentMetric       = "krishisetu.codes.sent"
)

// Metrics holds the lifecycle counters. Account decisions, listing
// decisions and booking transitions all arrive as published events, so a
// single counter keyed by event kind covers them.
type Metrics struct {
	events metric.Int64Counter
	codes  metric.Int64Counter
}

// NewMetrics registers the lifecycle instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(tracerName)

	events, err := meter.Int64Counter(LifecycleEventsMetric,
		metric.WithDescription("Lifecycle events published, by kind and outcome."),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", LifecycleEventsMetric, err)
	}

	codes, err := meter.Int64Counter(CodesSentMetric,
		metric.WithDescription("Verification codes handed to the notifier, by outcome."),
		metric.WithUnit("{code}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", CodesSentMetric, err)
	}

	return &Metrics{events: events, codes: codes}, nil
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("outcome", "error")
	}
	return attribute.String("outcome", "ok")
}

// MeteringPublisher counts every lifecycle event passed to the wrapped publisher.
type MeteringPublisher struct {
	next    domain.EventPublisher
	metrics *Metrics
}

var _ domain.EventPublisher = (*MeteringPublisher)(nil)

func NewMeteringPublisher(next domain.EventPublisher, metrics *Metrics) *MeteringPublisher {
	return &MeteringPublisher{next: next, metrics: metrics}
}

func (p *MeteringPublisher) Publish(ctx context.Context, event domain.LifecycleEvent) error {
	err := p.next.Publish(ctx, event)
	p.metrics.events.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event.kind", string(event.Kind)),
		outcome(err),
	))
	return err
}

// MeteringNotifier counts codes handed to the wrapped notifier.
type MeteringNotifier struct {
	next    domain.CodeNotifier
	metrics *Metrics
}

var _ domain.CodeNotifier = (*MeteringNotifier)(nil)

func NewMeteringNotifier(next domain.CodeNotifier, metrics *Metrics) *MeteringNotifier {
	return &MeteringNotifier{next: next, metrics: metrics}
}

func (n *MeteringNotifier) SendCode(ctx context.Context, address, code string) error {
	err := n.next.SendCode(ctx, address, code)
	n.metrics.codes.Add(ctx, 1, metric.WithAttributes(outcome(err)))
	return err
}
