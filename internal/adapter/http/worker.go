package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/krishisetu/krishisetu/internal/app"
	"github.com/krishisetu/krishisetu/internal/domain"
)

// WorkerProfileResponse is the API representation of a worker profile.
type WorkerProfileResponse struct {
	AccountID          string  `json:"accountId"`
	Name               string  `json:"name,omitempty" doc:"Worker's full name (listings only)"`
	Skills             string  `json:"skills"`
	ExperienceYears    int     `json:"experienceYears"`
	HourlyRate         float64 `json:"hourlyRate"`
	AvailabilityStatus string  `json:"availabilityStatus" enum:"available,booked"`
	Bio                string  `json:"bio,omitempty"`
	AvailableDate      string  `json:"availableDate,omitempty" doc:"Next available day (YYYY-MM-DD)"`
	Approved           bool    `json:"approved"`
	UpdatedAt          string  `json:"updatedAt" doc:"Last update timestamp (ISO 8601)"`
}

func toWorkerProfileResponse(p domain.WorkerProfile) WorkerProfileResponse {
	return WorkerProfileResponse{
		AccountID:          p.AccountID,
		Skills:             p.Skills,
		ExperienceYears:    p.ExperienceYears,
		HourlyRate:         p.HourlyRate,
		AvailabilityStatus: p.AvailabilityStatus,
		Bio:                p.Bio,
		AvailableDate:      formatDate(p.AvailableDate),
		Approved:           p.Approved,
		UpdatedAt:          formatTimestamp(p.UpdatedAt),
	}
}

type WorkerProfileInput struct{}

type WorkerProfileOutput struct {
	Body WorkerProfileResponse
}

type UpdateWorkerProfileInput struct {
	Body struct {
		Skills          string  `json:"skills,omitempty"`
		ExperienceYears int     `json:"experienceYears,omitempty"`
		HourlyRate      float64 `json:"hourlyRate,omitempty"`
		Bio             string  `json:"bio,omitempty"`
		AvailableDate   string  `json:"availableDate,omitempty" doc:"Next available day (YYYY-MM-DD)"`
	}
}

type ListWorkersOutput struct {
	Body []WorkerProfileResponse
}

func registerWorkers(api huma.API, svc *app.WorkerService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-worker-profile",
		Method:      http.MethodGet,
		Path:        "/api/worker/profile",
		Summary:     "Get the caller's worker profile",
		Tags:        []string{"Workers"},
		Security:    secured,
	}, func(ctx context.Context, _ *WorkerProfileInput) (*WorkerProfileOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		profile, err := svc.Profile(ctx, caller)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &WorkerProfileOutput{Body: toWorkerProfileResponse(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-worker-profile",
		Method:      http.MethodPut,
		Path:        "/api/worker/profile",
		Summary:     "Replace the caller's worker profile",
		Tags:        []string{"Workers"},
		Security:    secured,
	}, func(ctx context.Context, input *UpdateWorkerProfileInput) (*WorkerProfileOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		profile, err := svc.UpdateProfile(ctx, caller, app.WorkerProfileInput{
			Skills:          input.Body.Skills,
			ExperienceYears: input.Body.ExperienceYears,
			HourlyRate:      input.Body.HourlyRate,
			Bio:             input.Body.Bio,
			AvailableDate:   input.Body.AvailableDate,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &WorkerProfileOutput{Body: toWorkerProfileResponse(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-workers",
		Method:      http.MethodGet,
		Path:        "/api/farmer/workers",
		Summary:     "List approved farm workers",
		Tags:        []string{"Workers"},
		Security:    secured,
	}, func(ctx context.Context, _ *WorkerProfileInput) (*ListWorkersOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		workers, err := svc.ListApproved(ctx, caller)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		resp := make([]WorkerProfileResponse, len(workers))
		for i, w := range workers {
			resp[i] = toWorkerProfileResponse(w.Profile)
			resp[i].Name = w.Name
		}
		return &ListWorkersOutput{Body: resp}, nil
	})
}
