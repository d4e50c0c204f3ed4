package domain

import "time"

// Availability values for worker profiles.
const (
	WorkerAvailable = "available"
	WorkerBooked    = "booked"
)

// WorkerProfile describes a farm worker offering labour.
type WorkerProfile struct {
	AccountID          string
	Skills             string
	ExperienceYears    int
	HourlyRate         float64
	AvailabilityStatus string
	Bio                string
	AvailableDate      *time.Time
	Approved           bool
	UpdatedAt          time.Time
}

// NewWorkerProfile returns the default profile of a worker account.
func NewWorkerProfile(accountID string) WorkerProfile {
	return WorkerProfile{
		AccountID:          accountID,
		AvailabilityStatus: WorkerAvailable,
		Approved:           true,
		UpdatedAt:          time.Now().UTC(),
	}
}

// WorkerListing pairs a profile with its account's display name.
type WorkerListing struct {
	Profile WorkerProfile
	Name    string
}
