package match

import "context"

// Repository exposes match persistence operations.
// Update must apply optimistic concurrency on Match.Version so that lifecycle
// guards are re-checked atomically with the status write.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
	ListBySeasonAndStatuses(ctx context.Context, seasonID string, statuses []Status) ([]Match, error)
	Create(ctx context.Context, item Match) error
	Update(ctx context.Context, item Match) error
}
