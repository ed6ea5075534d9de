package memory

import (
	"context"
	"sync"

	"github.com/ligaops/competition-engine/internal/domain/standing"
)

type StandingRepository struct {
	mu    sync.RWMutex
	rows  map[string][]standing.Row
	byKey map[string]standing.Row
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{
		rows:  make(map[string][]standing.Row),
		byKey: make(map[string]standing.Row),
	}
}

func standingKey(seasonID, seasonTeamID string) string {
	return seasonID + ":" + seasonTeamID
}

func (r *StandingRepository) ListBySeason(_ context.Context, seasonID string) ([]standing.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]standing.Row(nil), r.rows[seasonID]...), nil
}

func (r *StandingRepository) GetBySeasonTeam(_ context.Context, seasonID, seasonTeamID string) (standing.Row, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.byKey[standingKey(seasonID, seasonTeamID)]
	if !ok {
		return standing.Row{}, false, nil
	}

	return row, true, nil
}

func (r *StandingRepository) ReplaceSeason(_ context.Context, seasonID string, rows []standing.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows[seasonID] {
		delete(r.byKey, standingKey(seasonID, row.SeasonTeamID))
	}

	copied := append([]standing.Row(nil), rows...)
	r.rows[seasonID] = copied
	for _, row := range copied {
		r.byKey[standingKey(seasonID, row.SeasonTeamID)] = row
	}

	return nil
}

func (r *StandingRepository) Upsert(_ context.Context, row standing.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := standingKey(row.SeasonID, row.SeasonTeamID)
	if _, ok := r.byKey[key]; ok {
		season := r.rows[row.SeasonID]
		for i := range season {
			if season[i].SeasonTeamID == row.SeasonTeamID {
				season[i] = row
				break
			}
		}
	} else {
		r.rows[row.SeasonID] = append(r.rows[row.SeasonID], row)
	}
	r.byKey[key] = row

	return nil
}
