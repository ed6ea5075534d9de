package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ligaops/competition-engine/internal/domain/match"
	"github.com/ligaops/competition-engine/internal/domain/storage"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `public_id, season_public_id, home_team_public_id, away_team_public_id,
status, scheduled_at, home_goals, away_goals, officials_complete, standings_eligible,
version, created_at, updated_at`

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	var row matchTableModel
	query := `SELECT ` + matchColumns + ` FROM matches WHERE public_id = $1`
	if err := r.db.GetContext(ctx, &row, query, matchID); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	var rows []matchTableModel
	query := `SELECT ` + matchColumns + ` FROM matches
WHERE season_public_id = $1 ORDER BY scheduled_at, public_id`
	if err := r.db.SelectContext(ctx, &rows, query, seasonID); err != nil {
		return nil, fmt.Errorf("select matches by season: %w", err)
	}
	return matchesFromRows(rows), nil
}

func (r *MatchRepository) ListBySeasonAndStatuses(ctx context.Context, seasonID string, statuses []match.Status) ([]match.Match, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	var rows []matchTableModel
	query := `SELECT ` + matchColumns + ` FROM matches
WHERE season_public_id = $1 AND status = ANY($2) ORDER BY scheduled_at, public_id`
	if err := r.db.SelectContext(ctx, &rows, query, seasonID, pq.StringArray(values)); err != nil {
		return nil, fmt.Errorf("select matches by statuses: %w", err)
	}
	return matchesFromRows(rows), nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	query := `INSERT INTO matches
(public_id, season_public_id, home_team_public_id, away_team_public_id, status, scheduled_at,
 home_goals, away_goals, officials_complete, standings_eligible, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.SeasonID,
		item.HomeTeamID,
		item.AwayTeamID,
		string(item.Status),
		item.ScheduledAt,
		item.HomeGoals,
		item.AwayGoals,
		item.OfficialsComplete,
		item.StandingsEligible,
		item.Version,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateID
		}
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	query := `UPDATE matches
SET status = $1, scheduled_at = $2, home_goals = $3, away_goals = $4,
 officials_complete = $5, standings_eligible = $6, version = version + 1, updated_at = $7
WHERE public_id = $8 AND version = $9`
	result, err := r.db.ExecContext(ctx, query,
		string(item.Status),
		item.ScheduledAt,
		item.HomeGoals,
		item.AwayGoals,
		item.OfficialsComplete,
		item.StandingsEligible,
		item.UpdatedAt,
		item.ID,
		item.Version,
	)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update match rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrVersionMismatch
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:                row.PublicID,
		SeasonID:          row.SeasonID,
		HomeTeamID:        row.HomeTeamID,
		AwayTeamID:        row.AwayTeamID,
		Status:            match.Status(row.Status),
		ScheduledAt:       row.ScheduledAt,
		HomeGoals:         row.HomeGoals,
		AwayGoals:         row.AwayGoals,
		OfficialsComplete: row.OfficialsComplete,
		StandingsEligible: row.StandingsEligible,
		Version:           row.Version,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func matchesFromRows(rows []matchTableModel) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out
}
