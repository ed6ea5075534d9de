package memory

import (
	"context"
	"sync"

	"github.com/ligaops/competition-engine/internal/domain/roster"
)

type RosterRepository struct {
	mu     sync.RWMutex
	items  map[string]roster.Player
	orders []string
}

func NewRosterRepository(players []roster.Player) *RosterRepository {
	items := make(map[string]roster.Player, len(players))
	orders := make([]string, 0, len(players))

	for _, p := range players {
		items[p.ID] = p
		orders = append(orders, p.ID)
	}

	return &RosterRepository{
		items:  items,
		orders: orders,
	}
}

func (r *RosterRepository) ListBySeasonTeam(_ context.Context, seasonID, seasonTeamID string) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Player, 0)
	for _, id := range r.orders {
		p := r.items[id]
		if p.SeasonID == seasonID && p.SeasonTeamID == seasonTeamID {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *RosterRepository) GetByIDs(_ context.Context, seasonID string, playerIDs []string) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.items[id]
		if !ok || p.SeasonID != seasonID {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}
