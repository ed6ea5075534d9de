package memory

import (
	"context"
	"sync"

	"github.com/ligaops/competition-engine/internal/domain/discipline"
	"github.com/ligaops/competition-engine/internal/domain/storage"
)

type CardEventRepository struct {
	mu     sync.RWMutex
	events []discipline.CardEvent
	ids    map[string]struct{}
}

func NewCardEventRepository() *CardEventRepository {
	return &CardEventRepository{
		ids: make(map[string]struct{}),
	}
}

func (r *CardEventRepository) Append(_ context.Context, event discipline.CardEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[event.ID]; ok {
		return storage.ErrDuplicateID
	}

	r.ids[event.ID] = struct{}{}
	r.events = append(r.events, event)

	return nil
}

func (r *CardEventRepository) ListBySeason(_ context.Context, seasonID string) ([]discipline.CardEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]discipline.CardEvent, 0)
	for _, e := range r.events {
		if e.SeasonID == seasonID {
			out = append(out, e)
		}
	}

	return out, nil
}

func (r *CardEventRepository) ListByMatch(_ context.Context, matchID string) ([]discipline.CardEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]discipline.CardEvent, 0)
	for _, e := range r.events {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}

	return out, nil
}

type SuspensionRepository struct {
	mu     sync.RWMutex
	items  map[string]discipline.Suspension
	orders []string
}

func NewSuspensionRepository() *SuspensionRepository {
	return &SuspensionRepository{
		items: make(map[string]discipline.Suspension),
	}
}

func (r *SuspensionRepository) GetByID(_ context.Context, suspensionID string) (discipline.Suspension, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[suspensionID]
	if !ok {
		return discipline.Suspension{}, false, nil
	}

	return cloneSuspension(item), true, nil
}

func (r *SuspensionRepository) ListBySeason(_ context.Context, seasonID string) ([]discipline.Suspension, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]discipline.Suspension, 0)
	for _, id := range r.orders {
		item := r.items[id]
		if item.SeasonID == seasonID {
			out = append(out, cloneSuspension(item))
		}
	}

	return out, nil
}

func (r *SuspensionRepository) ListBySeasonAndPlayer(_ context.Context, seasonID, playerID string) ([]discipline.Suspension, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]discipline.Suspension, 0)
	for _, id := range r.orders {
		item := r.items[id]
		if item.SeasonID == seasonID && item.PlayerID == playerID {
			out = append(out, cloneSuspension(item))
		}
	}

	return out, nil
}

func (r *SuspensionRepository) Upsert(_ context.Context, item discipline.Suspension) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = cloneSuspension(item)

	return nil
}

func (r *SuspensionRepository) Update(_ context.Context, item discipline.Suspension) error {
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
	r.items[item.ID] = cloneSuspension(item)

	return nil
}

func cloneSuspension(item discipline.Suspension) discipline.Suspension {
	out := item
	out.ServedMatchIDs = append([]string(nil), item.ServedMatchIDs...)
	return out
}
