package memory

import (
	"context"
	"sync"

	"github.com/ligaops/competition-engine/internal/domain/lineup"
	"github.com/ligaops/competition-engine/internal/domain/storage"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Submission
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{
		items: make(map[string]lineup.Submission),
	}
}

func lineupKey(matchID string, side lineup.Side) string {
	return matchID + ":" + string(side)
}

func (r *LineupRepository) GetByMatchAndSide(_ context.Context, matchID string, side lineup.Side) (lineup.Submission, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[lineupKey(matchID, side)]
	if !ok {
		return lineup.Submission{}, false, nil
	}

	return cloneSubmission(item), true, nil
}

func (r *LineupRepository) ListByMatch(_ context.Context, matchID string) ([]lineup.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Submission, 0, 2)
	for _, side := range []lineup.Side{lineup.SideHome, lineup.SideAway} {
		if item, ok := r.items[lineupKey(matchID, side)]; ok {
			out = append(out, cloneSubmission(item))
		}
	}

	return out, nil
}

func (r *LineupRepository) Create(_ context.Context, item lineup.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := lineupKey(item.MatchID, item.Side)
	if _, ok := r.items[key]; ok {
		return storage.ErrDuplicateID
	}

	r.items[key] = cloneSubmission(item)

	return nil
}

func (r *LineupRepository) Update(_ context.Context, item lineup.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := lineupKey(item.MatchID, item.Side)
	current, ok := r.items[key]
	if !ok {
		return storage.ErrVersionMismatch
	}
	if current.Version != item.Version {
		return storage.ErrVersionMismatch
	}

	item.Version++
	r.items[key] = cloneSubmission(item)

	return nil
}

func cloneSubmission(item lineup.Submission) lineup.Submission {
	out := item
	out.Starters = append([]string(nil), item.Starters...)
	out.Substitutes = append([]string(nil), item.Substitutes...)
	return out
}
