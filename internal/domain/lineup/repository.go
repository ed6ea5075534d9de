package lineup

import "context"

// Repository exposes lineup submission persistence operations.
// Update must apply optimistic concurrency on Submission.Version.
type Repository interface {
	GetByMatchAndSide(ctx context.Context, matchID string, side Side) (Submission, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Submission, error)
	Create(ctx context.Context, item Submission) error
	Update(ctx context.Context, item Submission) error
}
