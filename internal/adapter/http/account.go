package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/krishisetu/krishisetu/internal/app"
	"github.com/krishisetu/krishisetu/internal/domain"
)

// --- List Accounts ---

type ListAccountsInput struct {
	State  string `query:"state" required:"false" enum:"unverified,pending_approval,active" doc:"Filter by lifecycle state"`
	Limit  int    `query:"limit" required:"false" default:"50" minimum:"1" maximum:"500" doc:"Max results"`
	Offset int    `query:"offset" required:"false" default:"0" minimum:"0" doc:"Pagination offset"`
}

type ListAccountsOutput struct {
	Body []AccountResponse
}

// --- Decide Account ---

type DecideAccountInput struct {
	ID      string `path:"id" doc:"Account ID"`
	Approve bool   `query:"approve" default:"true" doc:"Approve when true, reject and delete when false"`
}

type DecideAccountOutput struct {
	Body AccountResponse
}

// --- Stats ---

type StatsOutput struct {
	Body StatsResponse
}

type StatsResponse struct {
	TotalFarmers           int `json:"totalFarmers"`
	TotalMachineryOwners   int `json:"totalMachineryOwners"`
	TotalWorkers           int `json:"totalWorkers"`
	TotalMachineryListings int `json:"totalMachineryListings"`
	TotalBookings          int `json:"totalBookings"`
}

func registerStats(api huma.API, svc *app.AdminService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/api/admin/stats",
		Summary:     "Count accounts by role, listings and bookings",
		Tags:        []string{"Admin"},
		Security:    secured,
	}, func(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		st, err := svc.Stats(ctx, caller)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &StatsOutput{Body: StatsResponse{
			TotalFarmers:           st.Farmers,
			TotalMachineryOwners:   st.Owners,
			TotalWorkers:           st.Workers,
			TotalMachineryListings: st.Listings,
			TotalBookings:          st.Bookings,
		}}, nil
	})
}

func registerAccounts(api huma.API, svc *app.AccountService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/api/admin/users",
		Summary:     "List accounts",
		Tags:        []string{"Admin"},
		Security:    secured,
	}, func(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}

		filter := domain.AccountFilter{
			Limit:  input.Limit,
			Offset: input.Offset,
		}
		if input.State != "" {
			s := domain.AccountState(input.State)
			filter.State = &s
		}

		accounts, err := svc.List(ctx, caller, filter)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}

		resp := make([]AccountResponse, len(accounts))
		for i, a := range accounts {
			resp[i] = toAccountResponse(a)
		}
		return &ListAccountsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "decide-account",
		Method:      http.MethodPost,
		Path:        "/api/admin/users/{id}/approve",
		Summary:     "Approve or reject an account",
		Tags:        []string{"Admin"},
		Security:    secured,
	}, func(ctx context.Context, input *DecideAccountInput) (*DecideAccountOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		account, err := svc.DecideApproval(ctx, caller, input.ID, input.Approve)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &DecideAccountOutput{Body: toAccountResponse(account)}, nil
	})
}
