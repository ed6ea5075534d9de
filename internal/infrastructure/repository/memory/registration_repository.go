package memory

import (
	"context"
	"sync"

	"github.com/ligaops/competition-engine/internal/domain/registration"
	"github.com/ligaops/competition-engine/internal/domain/storage"
)

type RegistrationRepository struct {
	mu     sync.RWMutex
	items  map[string]registration.Registration
	orders []string
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{
		items: make(map[string]registration.Registration),
	}
}

func (r *RegistrationRepository) GetByID(_ context.Context, registrationID string) (registration.Registration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[registrationID]
	if !ok {
		return registration.Registration{}, false, nil
	}

	return item, true, nil
}

func (r *RegistrationRepository) GetBySeasonAndTeam(_ context.Context, seasonID, teamID string) (registration.Registration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		item := r.items[id]
		if item.SeasonID == seasonID && item.TeamID == teamID {
			return item, true, nil
		}
	}

	return registration.Registration{}, false, nil
}

func (r *RegistrationRepository) ListBySeason(_ context.Context, seasonID string) ([]registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registration.Registration, 0)
	for _, id := range r.orders {
		item := r.items[id]
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *RegistrationRepository) CountBySeasonAndStatus(_ context.Context, seasonID string, status registration.Status) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if item.SeasonID == seasonID && item.Status == status {
			count++
		}
	}

	return count, nil
}

func (r *RegistrationRepository) Create(_ context.Context, item registration.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return storage.ErrDuplicateID
	}

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)

	return nil
}

func (r *RegistrationRepository) Update(_ context.Context, item registration.Registration) error {
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
