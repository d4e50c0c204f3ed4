package http

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/krishisetu/krishisetu/internal/app"
	"github.com/krishisetu/krishisetu/internal/domain"
)

const (
	timestampLayout = "2006-01-02T15:04:05Z"
	dateLayout      = "2006-01-02"
)

// bearerAuth names the security scheme documented in the OpenAPI output.
const bearerAuth = "bearer"

var secured = []map[string][]string{{bearerAuth: {}}}

// Services bundles the application services the HTTP layer exposes.
type Services struct {
	Codes    *app.CodeService
	Accounts *app.AccountService
	Sessions *app.SessionService
	Listings *app.ListingService
	Bookings *app.BookingService
	Workers  *app.WorkerService
	Admin    *app.AdminService
}

// NewConfig returns the Huma configuration with the bearer security scheme
// registered.
func NewConfig(title, version string) huma.Config {
	config := huma.DefaultConfig(title, version)
	if config.Components.SecuritySchemes == nil {
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	config.Components.SecuritySchemes[bearerAuth] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
	}
	return config
}

// Register adds all API routes to the Huma API.
func Register(api huma.API, svc Services) {
	api.UseMiddleware(authenticate(svc.Sessions))

	registerAuth(api, svc)
	registerAccounts(api, svc.Accounts)
	registerStats(api, svc.Admin)
	registerListings(api, svc.Listings)
	registerBookings(api, svc.Bookings)
	registerWorkers(api, svc.Workers)
}

type callerKey struct{}

// authenticate resolves the bearer token, if any, to a caller stored in the
// request context. Requests without a valid token continue anonymously and
// are rejected by the operations that need a caller.
func authenticate(sessions *app.SessionService) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
		if !ok || token == "" {
			next(ctx)
			return
		}

		caller, err := sessions.Authenticate(ctx.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthenticated) {
				slog.WarnContext(ctx.Context(), "resolving session failed", "error", err)
			}
			next(ctx)
			return
		}

		next(huma.WithValue(ctx, callerKey{}, caller))
	}
}

// callerFrom returns the authenticated caller or ErrUnauthenticated.
func callerFrom(ctx context.Context) (domain.Caller, error) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	if !ok || caller.AccountID == "" {
		return domain.Caller{}, domain.ErrUnauthenticated
	}
	return caller, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(dateLayout)
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(ctx context.Context, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return huma.Error404NotFound(err.Error())
	}

	var dupErr *domain.DuplicateEmailError
	if errors.As(err, &dupErr) {
		return huma.Error409Conflict(dupErr.Error())
	}
	if errors.Is(err, domain.ErrAlreadyDecided) || errors.Is(err, domain.ErrConcurrentUpdate) {
		return huma.Error409Conflict(err.Error())
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCode):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, domain.ErrCodeExpired):
		return huma.Error410Gone(err.Error())
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrPendingApproval):
		return huma.Error403Forbidden(err.Error())
	case errors.Is(err, domain.ErrAccountNotVerified),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, domain.ErrListingNotApproved), errors.Is(err, domain.ErrAlreadyVerified):
		return huma.Error422UnprocessableEntity(err.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return huma.Error422UnprocessableEntity(valErr.Error())
	}

	var roleErr *domain.InvalidRoleError
	if errors.As(err, &roleErr) {
		return huma.Error422UnprocessableEntity(roleErr.Error())
	}

	slog.ErrorContext(ctx, "request failed", "error", err)
	return huma.Error500InternalServerError("internal server error")
}
