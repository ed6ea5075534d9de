package discipline

import "context"

// CardEventRepository exposes append-only card event persistence.
type CardEventRepository interface {
	Append(ctx context.Context, event CardEvent) error
	ListBySeason(ctx context.Context, seasonID string) ([]CardEvent, error)
	ListByMatch(ctx context.Context, matchID string) ([]CardEvent, error)
}

// SuspensionRepository exposes suspension persistence operations.
// Update must apply optimistic concurrency on Suspension.Version.
type SuspensionRepository interface {
	GetByID(ctx context.Context, suspensionID string) (Suspension, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Suspension, error)
	ListBySeasonAndPlayer(ctx context.Context, seasonID, playerID string) ([]Suspension, error)
	Upsert(ctx context.Context, item Suspension) error
	Update(ctx context.Context, item Suspension) error
}
