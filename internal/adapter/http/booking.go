package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/krishisetu/krishisetu/internal/app"
	"github.com/krishisetu/krishisetu/internal/domain"
)

// BookingResponse is the API representation of a booking.
type BookingResponse struct {
	ID            string  `json:"id" doc:"Unique identifier"`
	FarmerID      string  `json:"farmerId" doc:"Booking account"`
	OwnerID       string  `json:"ownerId" doc:"Owner of the booked machinery"`
	ListingID     string  `json:"listingId" doc:"Booked machinery"`
	RentAmount    float64 `json:"rentAmount"`
	DepositAmount float64 `json:"depositAmount"`
	PenaltyAmount float64 `json:"penaltyAmount"`
	Status        string  `json:"status" doc:"Lifecycle state" enum:"CREATED,RETURN_INITIATED,COMPLETED"`
	CreatedAt     string  `json:"createdAt" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt     string  `json:"updatedAt" doc:"Last update timestamp (ISO 8601)"`
}

func toBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		FarmerID:      b.FarmerID,
		OwnerID:       b.OwnerID,
		ListingID:     b.ListingID,
		RentAmount:    b.RentAmount,
		DepositAmount: b.DepositAmount,
		PenaltyAmount: b.PenaltyAmount,
		Status:        string(b.Status),
		CreatedAt:     formatTimestamp(b.CreatedAt),
		UpdatedAt:     formatTimestamp(b.UpdatedAt),
	}
}

// --- Create Booking ---

type CreateBookingInput struct {
	Body struct {
		ListingID     string  `json:"machineryId" doc:"Listing to book"`
		RentAmount    float64 `json:"rentAmount,omitempty"`
		DepositAmount float64 `json:"depositAmount,omitempty"`
		PenaltyAmount float64 `json:"penaltyAmount,omitempty"`
	}
}

type BookingOutput struct {
	Body BookingResponse
}

// --- List Bookings ---

type ListBookingsInput struct {
	Role string `query:"role" required:"false" default:"farmer" doc:"View bookings as farmer or as owner"`
}

type ListBookingsOutput struct {
	Body []BookingResponse
}

// --- Booking actions ---

type BookingIDInput struct {
	ID string `path:"id" doc:"Booking ID"`
}

type AssessPenaltyInput struct {
	ID   string `path:"id" doc:"Booking ID"`
	Body struct {
		Amount float64 `json:"amount" doc:"Penalty to charge"`
	}
}

func registerBookings(api huma.API, svc *app.BookingService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-booking",
		Method:      http.MethodPost,
		Path:        "/api/bookings",
		Summary:     "Book approved machinery",
		Tags:        []string{"Bookings"},
		Security:    secured,
	}, func(ctx context.Context, input *CreateBookingInput) (*BookingOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		booking, err := svc.Create(ctx, caller, app.BookingInput{
			ListingID:     input.Body.ListingID,
			RentAmount:    input.Body.RentAmount,
			DepositAmount: input.Body.DepositAmount,
			PenaltyAmount: input.Body.PenaltyAmount,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &BookingOutput{Body: toBookingResponse(booking)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-my-bookings",
		Method:      http.MethodGet,
		Path:        "/api/bookings/mine",
		Summary:     "List the caller's bookings",
		Tags:        []string{"Bookings"},
		Security:    secured,
	}, func(ctx context.Context, input *ListBookingsInput) (*ListBookingsOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		role, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		bookings, err := svc.ListMine(ctx, caller, role)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		resp := make([]BookingResponse, len(bookings))
		for i, b := range bookings {
			resp[i] = toBookingResponse(b)
		}
		return &ListBookingsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-booking",
		Method:      http.MethodGet,
		Path:        "/api/bookings/{id}",
		Summary:     "Get a booking by ID",
		Tags:        []string{"Bookings"},
		Security:    secured,
	}, func(ctx context.Context, input *BookingIDInput) (*BookingOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		booking, err := svc.Get(ctx, caller, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &BookingOutput{Body: toBookingResponse(booking)}, nil
	})

	registerBookingAction(api, "initiate-return", "/api/bookings/{id}/return", "Start the return of booked machinery", svc.InitiateReturn)
	registerBookingAction(api, "complete-booking", "/api/bookings/{id}/complete", "Confirm the return and close the booking", svc.Complete)

	huma.Register(api, huma.Operation{
		OperationID: "assess-penalty",
		Method:      http.MethodPost,
		Path:        "/api/bookings/{id}/penalty",
		Summary:     "Charge a penalty on a returning booking",
		Tags:        []string{"Bookings"},
		Security:    secured,
	}, func(ctx context.Context, input *AssessPenaltyInput) (*BookingOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		booking, err := svc.AssessPenalty(ctx, caller, input.ID, input.Body.Amount)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &BookingOutput{Body: toBookingResponse(booking)}, nil
	})
}

type bookingAction func(ctx context.Context, caller domain.Caller, id string) (domain.Booking, error)

func registerBookingAction(api huma.API, operationID, path, summary string, action bookingAction) {
	huma.Register(api, huma.Operation{
		OperationID: operationID,
		Method:      http.MethodPost,
		Path:        path,
		Summary:     summary,
		Tags:        []string{"Bookings"},
		Security:    secured,
	}, func(ctx context.Context, input *BookingIDInput) (*BookingOutput, error) {
		caller, err := callerFrom(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		booking, err := action(ctx, caller, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &BookingOutput{Body: toBookingResponse(booking)}, nil
	})
}
