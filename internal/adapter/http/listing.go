package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/krishisetu/krishisetu/internal/app"
	"github.com/krishisetu/krishisetu/internal/domain"
)

// ListingResponse is the API representation of a machinery listing.
type ListingResponse struct {
	ID            string  `json:"id" doc:"Unique identifier"`
	OwnerID       string  `json:"ownerId" doc:"Owning account"`
	CategoryID    int64   `json:"categoryId" doc:"Machinery category"`
	Name          string  `json:"name" doc:"Display name"`
	Description   string  `json:"description,omitempty" doc:"Free-form description"`
	RatePerHour   float64 `json:"ratePerHour" doc:"Hourly rent"`
	RatePerDay    float64 `json:"ratePerDay" doc:"Daily rent"`
	ImageURL      string  `json:"imageUrl,omitempty" doc:"Picture of the machine"`
	AvailableDate string  `json:"availableDate,omitempty" doc:"First available day (YYYY-MM-DD)"`
	Approved      bool    `json:"approved" doc:"Visible to farmers"`
	CreatedAt     string  `json:"createdAt" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt     string  `json:"updatedAt" doc:"Last update timestamp (ISO 8601)"`
}

func toListingResponse(l domain.Listing) ListingResponse {
	return ListingResponse{
		ID:            l.ID,
		OwnerID:       l.OwnerID,
		CategoryID:    l.CategoryID,
		Name:          l.Name,
		Description:   l.Description,
		RatePerHour:   l.RatePerHour,
		RatePerDay:    l.RatePerDay,
		ImageURL:      l.ImageURL,
		AvailableDate: formatDate(l.AvailableDate),
		Approved:      l.Approved,
		CreatedAt:     formatTimestamp(l.CreatedAt),
		UpdatedAt:     formatTimestamp(l.UpdatedAt),
	}
}

func toListingResponses(listings []domain.Listing) []ListingResponse {
	resp := make([]ListingResponse, len(listings))
	for i, l := range listings {
		resp[i] = toListingResponse(l)
	}
	return resp
}

// CategoryResponse is the API representation of a machinery category.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// --- Submit Listing ---

type SubmitListingInput struct {
	Body struct {
		CategoryID    int64   `json:"categoryId" doc:"Machinery category"`
		Name          string  `json:"name" maxLength:"255" doc:"Display name"`
		Description   string  `json:"description,omitempty" doc:"Free-form description"`
		RatePerHour   float64 `json:"ratePerHour,omitempty" doc:"Hourly rent"`
		RatePerDay    float64 `json:"ratePerDay,omitempty" doc:"Daily rent"`
		ImageURL      string  `json:"imageUrl,omitempty" doc:"Picture of the machine"`
		AvailableDate string  `json:"availableDate,omitempty" doc:"First available day (YYYY-MM-DD)"`
	}
}

type ListingOutput struct {
	Body ListingResponse
}

type ListingsOutput struct {
	Body []ListingResponse
}

type ListingsInput struct{}

type ListingIDInput struct {
	ID string `path:"id" doc:"Listing ID"`
}

type DecideListingInput struct {
	ID      string `path:"id" doc:"Listing ID"`
	Approve bool   `query:"approve" default:"true" doc:"Approve when true, reject and delete when false"`
}

type CategoriesOutput struct {
	Body []CategoryResponse
}

func registerListings(api huma.API, svc *app.ListingService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/machinery/categories",
		Summary:     "List machinery categories",
		Tags:        []string{"Machinery"},
	}, func(ctx context.Context, _ *ListingsInput) (*CategoriesOutput, error) {
		categories, err := svc.Categories(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		resp := make([]CategoryResponse, len(categories))
		for i, c := range categories {
			resp[i] = CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
		}
		return &CategoriesOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "submit-listing",
		Method:      http.MethodPost,
		Path:        "/api/owner/machinery",
		Summary:     "Submit machinery for approval",
		Tags:        []string{"Machinery"},
		Security:    secured,
	}, func(ctx context.Context, input *SubmitListingInput) (*ListingOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		listing, err := svc.Submit(ctx, caller, app.ListingInput{
			CategoryID:    input.Body.CategoryID,
			Name:          input.Body.Name,
			Description:   input.Body.Description,
			RatePerHour:   input.Body.RatePerHour,
			RatePerDay:    input.Body.RatePerDay,
			ImageURL:      input.Body.ImageURL,
			AvailableDate: input.Body.AvailableDate,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &ListingOutput{Body: toListingResponse(listing)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-my-listings",
		Method:      http.MethodGet,
		Path:        "/api/owner/machinery/mine",
		Summary:     "List the caller's machinery",
		Tags:        []string{"Machinery"},
		Security:    secured,
	}, func(ctx context.Context, _ *ListingsInput) (*ListingsOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		listings, err := svc.ListMine(ctx, caller)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &ListingsOutput{Body: toListingResponses(listings)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-approved-listings",
		Method:      http.MethodGet,
		Path:        "/api/farmer/machinery",
		Summary:     "List bookable machinery",
		Tags:        []string{"Machinery"},
		Security:    secured,
	}, func(ctx context.Context, _ *ListingsInput) (*ListingsOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		listings, err := svc.ListApproved(ctx, caller)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &ListingsOutput{Body: toListingResponses(listings)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-listing",
		Method:      http.MethodGet,
		Path:        "/api/machinery/{id}",
		Summary:     "Get a listing by ID",
		Tags:        []string{"Machinery"},
	}, func(ctx context.Context, input *ListingIDInput) (*ListingOutput, error) {
		// Anonymous callers see approved listings only.
		caller, _ := callerFrom(ctx)
		listing, err := svc.Get(ctx, caller, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &ListingOutput{Body: toListingResponse(listing)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-pending-listings",
		Method:      http.MethodGet,
		Path:        "/api/admin/machinery/pending",
		Summary:     "List machinery awaiting approval",
		Tags:        []string{"Admin"},
		Security:    secured,
	}, func(ctx context.Context, _ *ListingsInput) (*ListingsOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		listings, err := svc.ListPending(ctx, caller)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &ListingsOutput{Body: toListingResponses(listings)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "decide-listing",
		Method:      http.MethodPost,
		Path:        "/api/admin/machinery/{id}/approve",
		Summary:     "Approve or reject a listing",
		Tags:        []string{"Admin"},
		Security:    secured,
	}, func(ctx context.Context, input *DecideListingInput) (*ListingOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		listing, err := svc.DecideApproval(ctx, caller, input.ID, input.Approve)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &ListingOutput{Body: toListingResponse(listing)}, nil
	})
}
