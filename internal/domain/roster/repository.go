package roster

import "context"

// Repository exposes read-only roster queries.
type Repository interface {
	ListBySeasonTeam(ctx context.Context, seasonID, seasonTeamID string) ([]Player, error)
	GetByIDs(ctx context.Context, seasonID string, playerIDs []string) ([]Player, error)
}
