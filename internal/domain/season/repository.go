package season

import "context"

// Repository exposes season persistence operations.
type Repository interface {
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	List(ctx context.Context) ([]Season, error)
}
