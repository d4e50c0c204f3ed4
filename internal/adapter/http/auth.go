package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/krishisetu/krishisetu/internal/app"
	"github.com/krishisetu/krishisetu/internal/domain"
)

// AccountResponse is the API representation of an account. The password
// hash never leaves the server.
type AccountResponse struct {
	ID        string   `json:"id" doc:"Unique identifier"`
	FirstName string   `json:"firstName" doc:"Given name"`
	LastName  string   `json:"lastName" doc:"Family name"`
	Email     string   `json:"email" doc:"Login email"`
	Roles     []string `json:"roles" doc:"Granted roles"`
	Verified  bool     `json:"verified" doc:"Email ownership confirmed"`
	Approved  bool     `json:"approved" doc:"Approved by an administrator"`
	State     string   `json:"state" doc:"Lifecycle state" enum:"unverified,pending_approval,active"`
	CreatedAt string   `json:"createdAt" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt string   `json:"updatedAt" doc:"Last update timestamp (ISO 8601)"`
}

func toAccountResponse(a domain.Account) AccountResponse {
	roles := make([]string, len(a.Roles))
	for i, r := range a.Roles {
		roles[i] = string(r)
	}
	return AccountResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Roles:     roles,
		Verified:  a.Verified,
		Approved:  a.Approved,
		State:     string(a.State()),
		CreatedAt: formatTimestamp(a.CreatedAt),
		UpdatedAt: formatTimestamp(a.UpdatedAt),
	}
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Signup ---

type SignupInput struct {
	Body struct {
		FirstName string `json:"firstName" maxLength:"100" doc:"Given name"`
		LastName  string `json:"lastName,omitempty" maxLength:"100" doc:"Family name"`
		Email     string `json:"email" maxLength:"255" doc:"Login email"`
		Password  string `json:"password" minLength:"1" doc:"Plain-text password"`
		Role      string `json:"role" doc:"farmer, owner or worker (legacy labels such as machineryowner are accepted)"`
	}
}

type SignupOutput struct {
	Body AccountResponse
}

// --- Verify / resend ---

type VerifyCodeInput struct {
	Body struct {
		Email string `json:"email" doc:"Account email"`
		Code  string `json:"otp" doc:"Six-digit verification code"`
	}
}

type VerifyCodeOutput struct {
	Body AccountResponse
}

type ResendCodeInput struct {
	Body struct {
		Email string `json:"email" doc:"Account email"`
	}
}

type ResendCodeOutput struct {
	Body MessageResponse
}

// --- Sign in ---

type SigninInput struct {
	Body struct {
		Email    string `json:"email" doc:"Account email"`
		Password string `json:"password" doc:"Plain-text password"`
	}
}

type SigninOutput struct {
	Body struct {
		Token     string          `json:"token" doc:"Bearer token"`
		ExpiresAt string          `json:"expiresAt" doc:"Token expiry (ISO 8601)"`
		Account   AccountResponse `json:"account"`
	}
}

// --- Create admin ---

type CreateAdminInput struct {
	Body struct {
		FirstName string `json:"firstName" maxLength:"100" doc:"Given name"`
		LastName  string `json:"lastName,omitempty" maxLength:"100" doc:"Family name"`
		Email     string `json:"email" maxLength:"255" doc:"Login email"`
		Password  string `json:"password" minLength:"1" doc:"Plain-text password"`
	}
}

type CreateAdminOutput struct {
	Body AccountResponse
}

// --- Me ---

type MeInput struct{}

type MeOutput struct {
	Body AccountResponse
}

func registerAuth(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "signup",
		Method:      http.MethodPost,
		Path:        "/api/auth/signup",
		Summary:     "Register a new account",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *SignupInput) (*SignupOutput, error) {
		account, err := svc.Accounts.Register(ctx, app.RegisterInput{
			FirstName: input.Body.FirstName,
			LastName:  input.Body.LastName,
			Email:     input.Body.Email,
			Password:  input.Body.Password,
			Role:      input.Body.Role,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &SignupOutput{Body: toAccountResponse(account)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "verify-otp",
		Method:      http.MethodPost,
		Path:        "/api/auth/verify-otp",
		Summary:     "Confirm an email with a verification code",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *VerifyCodeInput) (*VerifyCodeOutput, error) {
		account, err := svc.Codes.Verify(ctx, input.Body.Email, input.Body.Code)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &VerifyCodeOutput{Body: toAccountResponse(account)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "resend-otp",
		Method:      http.MethodPost,
		Path:        "/api/auth/resend-otp",
		Summary:     "Issue a fresh verification code",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *ResendCodeInput) (*ResendCodeOutput, error) {
		if err := svc.Codes.Resend(ctx, input.Body.Email); err != nil {
			return nil, toHumaError(ctx, err)
		}
		out := &ResendCodeOutput{}
		out.Body.Message = "verification code sent"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "signin",
		Method:      http.MethodPost,
		Path:        "/api/auth/signin",
		Summary:     "Exchange credentials for a bearer token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *SigninInput) (*SigninOutput, error) {
		session, err := svc.Sessions.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		out := &SigninOutput{}
		out.Body.Token = session.Token
		out.Body.ExpiresAt = formatTimestamp(session.ExpiresAt)
		out.Body.Account = toAccountResponse(session.Account)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-admin",
		Method:      http.MethodPost,
		Path:        "/api/auth/create-admin",
		Summary:     "Create an administrator (super admin only)",
		Tags:        []string{"Auth"},
		Security:    secured,
	}, func(ctx context.Context, input *CreateAdminInput) (*CreateAdminOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		account, err := svc.Accounts.RegisterAdmin(ctx, caller, app.RegisterInput{
			FirstName: input.Body.FirstName,
			LastName:  input.Body.LastName,
			Email:     input.Body.Email,
			Password:  input.Body.Password,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &CreateAdminOutput{Body: toAccountResponse(account)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-me",
		Method:      http.MethodGet,
		Path:        "/api/me",
		Summary:     "Get the authenticated account",
		Tags:        []string{"Auth"},
		Security:    secured,
	}, func(ctx context.Context, _ *MeInput) (*MeOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		account, err := svc.Accounts.Profile(ctx, caller)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &MeOutput{Body: toAccountResponse(account)}, nil
	})
}
