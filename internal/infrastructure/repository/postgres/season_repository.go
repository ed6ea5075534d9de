package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ligaops/competition-engine/internal/domain/season"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

const seasonColumns = `public_id, name, required_team_count, yellow_threshold, yellow_ban,
red_card_ban, max_foreign_starters, max_substitutes, tie_break_seed, starts_at, ends_at`

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	var row seasonTableModel
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE public_id = $1`
	if err := r.db.GetContext(ctx, &row, query, seasonID); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season by id: %w", err)
	}

	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	var rows []seasonTableModel
	query := `SELECT ` + seasonColumns + ` FROM seasons ORDER BY starts_at, public_id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:                row.PublicID,
		Name:              row.Name,
		RequiredTeamCount: row.RequiredTeamCount,
		Rules: season.Rules{
			YellowThreshold:    row.YellowThreshold,
			YellowBan:          row.YellowBan,
			RedCardBan:         row.RedCardBan,
			MaxForeignStarters: row.MaxForeignStarters,
			MaxSubstitutes:     row.MaxSubstitutes,
			TieBreakSeed:       row.TieBreakSeed,
		},
		StartsAt: row.StartsAt,
		EndsAt:   row.EndsAt,
	}
}
