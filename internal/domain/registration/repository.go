package registration

import "context"

// Repository exposes registration persistence operations.
// Update must apply optimistic concurrency on Registration.Version.
type Repository interface {
	GetByID(ctx context.Context, registrationID string) (Registration, bool, error)
	GetBySeasonAndTeam(ctx context.Context, seasonID, teamID string) (Registration, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Registration, error)
	CountBySeasonAndStatus(ctx context.Context, seasonID string, status Status) (int, error)
	Create(ctx context.Context, item Registration) error
	Update(ctx context.Context, item Registration) error
}
