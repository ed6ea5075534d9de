package memory

import (
	"context"
	"sync"

	"github.com/ligaops/competition-engine/internal/domain/match"
	"github.com/ligaops/competition-engine/internal/domain/storage"
)

type MatchRepository struct {
	mu     sync.RWMutex
	items  map[string]match.Match
	orders []string
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	orders := make([]string, 0, len(matches))

	for _, m := range matches {
		items[m.ID] = m
		orders = append(orders, m.ID)
	}

	return &MatchRepository{
		items:  items,
		orders: orders,
	}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return item, true, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, id := range r.orders {
		item := r.items[id]
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *MatchRepository) ListBySeasonAndStatuses(_ context.Context, seasonID string, statuses []match.Status) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[match.Status]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}

	out := make([]match.Match, 0)
	for _, id := range r.orders {
		item := r.items[id]
		if item.SeasonID != seasonID {
			continue
		}
		if _, ok := wanted[item.Status]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return storage.ErrDuplicateID
	}

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)

	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return storage.ErrVersionMismatch
	}
	if current.Version != item.Version {
		return storage.ErrVersionMismatch
	}

	item.Version++
	r.items[item.ID] = item

	return nil
}
