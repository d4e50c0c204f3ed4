package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/krishisetu/krishisetu/internal/domain"
)

const tracerName = "github.com/krishisetu/krishisetu/internal/adapter/otel"

// recordError marks the span failed when err is non-nil.
func recordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// TracingAccountRepository wraps a domain.AccountRepository with OpenTelemetry tracing.
// Each method creates a span with semantic attributes and records errors.
type TracingAccountRepository struct {
	next   domain.AccountRepository
	tracer trace.Tracer
}

// Compile-time check: TracingAccountRepository implements domain.AccountRepository.
var _ domain.AccountRepository = (*TracingAccountRepository)(nil)

// NewTracingAccountRepository creates a tracing decorator around the given repository.
func NewTracingAccountRepository(next domain.AccountRepository) *TracingAccountRepository {
	return &TracingAccountRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingAccountRepository) Create(ctx context.Context, account domain.Account) error {
	ctx, span := r.tracer.Start(ctx, "AccountRepository.Create",
		trace.WithAttributes(
			attribute.String("account.id", account.ID),
			attribute.String("account.state", string(account.State())),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, account)
	recordError(span, err)
	return err
}

func (r *TracingAccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	ctx, span := r.tracer.Start(ctx, "AccountRepository.GetByID",
		trace.WithAttributes(attribute.String("account.id", id)),
	)
	defer span.End()

	account, err := r.next.GetByID(ctx, id)
	recordError(span, err)
	return account, err
}

func (r *TracingAccountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	ctx, span := r.tracer.Start(ctx, "AccountRepository.GetByEmail")
	defer span.End()

	account, err := r.next.GetByEmail(ctx, email)
	if err == nil {
		span.SetAttributes(attribute.String("account.id", account.ID))
	}
	recordError(span, err)
	return account, err
}

func (r *TracingAccountRepository) List(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	ctx, span := r.tracer.Start(ctx, "AccountRepository.List",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	if filter.State != nil {
		span.SetAttributes(attribute.String("filter.state", string(*filter.State)))
	}

	accounts, err := r.next.List(ctx, filter)
	if err != nil {
		recordError(span, err)
	} else {
		span.SetAttributes(attribute.Int("result.count", len(accounts)))
	}
	return accounts, err
}

func (r *TracingAccountRepository) Update(ctx context.Context, account domain.Account) error {
	ctx, span := r.tracer.Start(ctx, "AccountRepository.Update",
		trace.WithAttributes(
			attribute.String("account.id", account.ID),
			attribute.String("account.state", string(account.State())),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, account)
	recordError(span, err)
	return err
}

func (r *TracingAccountRepository) Approve(ctx context.Context, id string, version int64) error {
	ctx, span := r.tracer.Start(ctx, "AccountRepository.Approve",
		trace.WithAttributes(
			attribute.String("account.id", id),
			attribute.Int64("account.version", version),
		),
	)
	defer span.End()

	err := r.next.Approve(ctx, id, version)
	recordError(span, err)
	return err
}

func (r *TracingAccountRepository) Delete(ctx context.Context, id string, version int64) error {
	ctx, span := r.tracer.Start(ctx, "AccountRepository.Delete",
		trace.WithAttributes(
			attribute.String("account.id", id),
			attribute.Int64("account.version", version),
		),
	)
	defer span.End()

	err := r.next.Delete(ctx, id, version)
	recordError(span, err)
	return err
}

// TracingCodeRepository wraps a domain.CodeRepository with OpenTelemetry
// tracing. Code values are never recorded.
type TracingCodeRepository struct {
	next   domain.CodeRepository
	tracer trace.Tracer
}

// Compile-time check: TracingCodeRepository implements domain.CodeRepository.
var _ domain.CodeRepository = (*TracingCodeRepository)(nil)

// NewTracingCodeRepository creates a tracing decorator around the given repository.
func NewTracingCodeRepository(next domain.CodeRepository) *TracingCodeRepository {
	return &TracingCodeRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingCodeRepository) Save(ctx context.Context, code domain.OneTimeCode) error {
	ctx, span := r.tracer.Start(ctx, "CodeRepository.Save",
		trace.WithAttributes(
			attribute.String("account.id", code.AccountID),
			attribute.String("code.expires_at", code.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z")),
		),
	)
	defer span.End()

	err := r.next.Save(ctx, code)
	recordError(span, err)
	return err
}

func (r *TracingCodeRepository) GetByAccount(ctx context.Context, accountID string) (domain.OneTimeCode, error) {
	ctx, span := r.tracer.Start(ctx, "CodeRepository.GetByAccount",
		trace.WithAttributes(attribute.String("account.id", accountID)),
	)
	defer span.End()

	code, err := r.next.GetByAccount(ctx, accountID)
	recordError(span, err)
	return code, err
}

func (r *TracingCodeRepository) Consume(ctx context.Context, code domain.OneTimeCode) error {
	ctx, span := r.tracer.Start(ctx, "CodeRepository.Consume",
		trace.WithAttributes(attribute.String("account.id", code.AccountID)),
	)
	defer span.End()

	err := r.next.Consume(ctx, code)
	recordError(span, err)
	return err
}
