package standing

import "context"

// Repository exposes standings persistence operations. ReplaceSeason swaps
// the whole table atomically; recomputes never patch stored rows.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Row, error)
	GetBySeasonTeam(ctx context.Context, seasonID, seasonTeamID string) (Row, bool, error)
	ReplaceSeason(ctx context.Context, seasonID string, rows []Row) error
	Upsert(ctx context.Context, row Row) error
}
