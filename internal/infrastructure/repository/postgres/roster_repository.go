package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ligaops/competition-engine/internal/domain/roster"
)

type rosterTableModel struct {
	ID           int64  `db:"id"`
	PublicID     string `db:"public_id"`
	SeasonID     string `db:"season_public_id"`
	SeasonTeamID string `db:"team_public_id"`
	Name         string `db:"name"`
	ShirtNumber  int    `db:"shirt_number"`
	Foreign      bool   `db:"is_foreign"`
}

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

const rosterColumns = `public_id, season_public_id, team_public_id, name, shirt_number, is_foreign`

func (r *RosterRepository) ListBySeasonTeam(ctx context.Context, seasonID, seasonTeamID string) ([]roster.Player, error) {
	var rows []rosterTableModel
	query := `SELECT ` + rosterColumns + ` FROM roster_players
WHERE season_public_id = $1 AND team_public_id = $2 ORDER BY shirt_number, public_id`
	if err := r.db.SelectContext(ctx, &rows, query, seasonID, seasonTeamID); err != nil {
		return nil, fmt.Errorf("select roster by team: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *RosterRepository) GetByIDs(ctx context.Context, seasonID string, playerIDs []string) ([]roster.Player, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	var rows []rosterTableModel
	query := `SELECT ` + rosterColumns + ` FROM roster_players
WHERE season_public_id = $1 AND public_id = ANY($2) ORDER BY shirt_number, public_id`
	if err := r.db.SelectContext(ctx, &rows, query, seasonID, pq.StringArray(playerIDs)); err != nil {
		return nil, fmt.Errorf("select roster players by ids: %w", err)
	}
	return playersFromRows(rows), nil
}

func playersFromRows(rows []rosterTableModel) []roster.Player {
	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Player{
			ID:           row.PublicID,
			SeasonID:     row.SeasonID,
			SeasonTeamID: row.SeasonTeamID,
			Name:         row.Name,
			ShirtNumber:  row.ShirtNumber,
			Foreign:      row.Foreign,
		})
	}
	return out
}
