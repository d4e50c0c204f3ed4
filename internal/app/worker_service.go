package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Roles allowed to browse worker profiles.
var hireRoles = []domain.Role{domain.RoleFarmer, domain.RoleAdmin, domain.RoleSuperAdmin}

// WorkerProfileInput carries the editable fields of a worker profile.
type WorkerProfileInput struct {
	Skills          string
	ExperienceYears int
	HourlyRate      float64
	Bio             string
	AvailableDate   string
}

// WorkerService manages farm worker profiles.
type WorkerService struct {
	profiles domain.WorkerProfileRepository
}

// NewWorkerService creates a service with the given repository.
func NewWorkerService(profiles domain.WorkerProfileRepository) *WorkerService {
	return &WorkerService{profiles: profiles}
}

// Profile returns the caller's profile, or a default one if none was saved yet.
func (s *WorkerService) Profile(ctx context.Context, caller domain.Caller) (domain.WorkerProfile, error) {
	if err := domain.Authorize(caller, domain.RoleWorker); err != nil {
		return domain.WorkerProfile{}, err
	}

	profile, err := s.profiles.Get(ctx, caller.AccountID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return domain.NewWorkerProfile(caller.AccountID), nil
	}
	return profile, err
}

// UpdateProfile replaces the caller's profile fields. Setting a new
// available date marks the worker available again.
func (s *WorkerService) UpdateProfile(ctx context.Context, caller domain.Caller, input WorkerProfileInput) (domain.WorkerProfile, error) {
	profile, err := s.Profile(ctx, caller)
	if err != nil {
		return domain.WorkerProfile{}, err
	}

	if input.ExperienceYears < 0 {
		return domain.WorkerProfile{}, &domain.ValidationError{Field: "experienceYears", Reason: "must not be negative"}
	}
	if err := nonNegative("hourlyRate", input.HourlyRate); err != nil {
		return domain.WorkerProfile{}, err
	}
	availableDate, err := parseDate("availableDate", input.AvailableDate)
	if err != nil {
		return domain.WorkerProfile{}, err
	}

	if availableDate != nil && (profile.AvailableDate == nil || !profile.AvailableDate.Equal(*availableDate)) {
		profile.AvailabilityStatus = domain.WorkerAvailable
	}

	profile.Skills = input.Skills
	profile.ExperienceYears = input.ExperienceYears
	profile.HourlyRate = input.HourlyRate
	profile.Bio = input.Bio
	profile.AvailableDate = availableDate
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Save(ctx, profile); err != nil {
		return domain.WorkerProfile{}, fmt.Errorf("saving worker profile: %w", err)
	}

	return profile, nil
}

// ListApproved returns the approved worker profiles with their names.
func (s *WorkerService) ListApproved(ctx context.Context, caller domain.Caller) ([]domain.WorkerListing, error) {
	if err := domain.Authorize(caller, hireRoles...); err != nil {
		return nil, err
	}
	return s.profiles.ListApproved(ctx)
}
