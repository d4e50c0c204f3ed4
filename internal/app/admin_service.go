package app

import (
	"context"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// AdminService serves the admin dashboard.
type AdminService struct {
	stats domain.StatsRepository
}

// NewAdminService creates a service with the given repository.
func NewAdminService(stats domain.StatsRepository) *AdminService {
	return &AdminService{stats: stats}
}

// Stats counts farmers, owners, workers, listings and bookings.
// Only admins may read it.
func (s *AdminService) Stats(ctx context.Context, caller domain.Caller) (domain.Stats, error) {
	if err := domain.Authorize(caller, domain.AdminRoles...); err != nil {
		return domain.Stats{}, err
	}
	return s.stats.Counts(ctx)
}
