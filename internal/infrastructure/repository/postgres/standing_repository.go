package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ligaops/competition-engine/internal/domain/standing"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

const standingColumns = `season_public_id, team_public_id, played, won, draw, loss,
goals_for, goals_against, points, rank, manual_delta, adjusted, updated_at`

func (r *StandingRepository) ListBySeason(ctx context.Context, seasonID string) ([]standing.Row, error) {
	var rows []standingTableModel
	query := `SELECT ` + standingColumns + ` FROM standings
WHERE season_public_id = $1 ORDER BY rank, team_public_id`
	if err := r.db.SelectContext(ctx, &rows, query, seasonID); err != nil {
		return nil, fmt.Errorf("select standings by season: %w", err)
	}

	out := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowFromModel(row))
	}
	return out, nil
}

func (r *StandingRepository) GetBySeasonTeam(ctx context.Context, seasonID, seasonTeamID string) (standing.Row, bool, error) {
	var row standingTableModel
	query := `SELECT ` + standingColumns + ` FROM standings
WHERE season_public_id = $1 AND team_public_id = $2`
	if err := r.db.GetContext(ctx, &row, query, seasonID, seasonTeamID); err != nil {
		if isNotFound(err) {
			return standing.Row{}, false, nil
		}
		return standing.Row{}, false, fmt.Errorf("get standing row: %w", err)
	}
	return rowFromModel(row), true, nil
}

// ReplaceSeason swaps the whole season table in one transaction so readers
// never observe a half-rebuilt table.
func (r *StandingRepository) ReplaceSeason(ctx context.Context, seasonID string, rows []standing.Row) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin standings transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM standings WHERE season_public_id = $1`, seasonID); err != nil {
		return fmt.Errorf("delete season standings: %w", err)
	}

	insert := `INSERT INTO standings
(season_public_id, team_public_id, played, won, draw, loss, goals_for, goals_against,
 points, rank, manual_delta, adjusted, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, insert,
			row.SeasonID,
			row.SeasonTeamID,
			row.Played,
			row.Won,
			row.Draw,
			row.Loss,
			row.GoalsFor,
			row.GoalsAgainst,
			row.Points,
			row.Rank,
			row.ManualDelta,
			row.Adjusted,
			row.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert standing row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit standings transaction: %w", err)
	}
	return nil
}

func (r *StandingRepository) Upsert(ctx context.Context, row standing.Row) error {
	query := `INSERT INTO standings
(season_public_id, team_public_id, played, won, draw, loss, goals_for, goals_against,
 points, rank, manual_delta, adjusted, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (season_public_id, team_public_id) DO UPDATE SET
 played = EXCLUDED.played,
 won = EXCLUDED.won,
 draw = EXCLUDED.draw,
 loss = EXCLUDED.loss,
 goals_for = EXCLUDED.goals_for,
 goals_against = EXCLUDED.goals_against,
 points = EXCLUDED.points,
 rank = EXCLUDED.rank,
 manual_delta = EXCLUDED.manual_delta,
 adjusted = EXCLUDED.adjusted,
 updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		row.SeasonID,
		row.SeasonTeamID,
		row.Played,
		row.Won,
		row.Draw,
		row.Loss,
		row.GoalsFor,
		row.GoalsAgainst,
		row.Points,
		row.Rank,
		row.ManualDelta,
		row.Adjusted,
		row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert standing row: %w", err)
	}
	return nil
}

func rowFromModel(row standingTableModel) standing.Row {
	return standing.Row{
		SeasonID:     row.SeasonID,
		SeasonTeamID: row.SeasonTeamID,
		Played:       row.Played,
		Won:          row.Won,
		Draw:         row.Draw,
		Loss:         row.Loss,
		GoalsFor:     row.GoalsFor,
		GoalsAgainst: row.GoalsAgainst,
		Points:       row.Points,
		Rank:         row.Rank,
		ManualDelta:  row.ManualDelta,
		Adjusted:     row.Adjusted,
		UpdatedAt:    row.UpdatedAt,
	}
}
