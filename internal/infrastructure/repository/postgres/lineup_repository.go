package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ligaops/competition-engine/internal/domain/lineup"
	"github.com/ligaops/competition-engine/internal/domain/storage"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

const lineupColumns = `match_public_id, side, team_public_id, starter_player_ids,
substitute_player_ids, formation, kit_type, status, rejection_reason, version, updated_at`

func (r *LineupRepository) GetByMatchAndSide(ctx context.Context, matchID string, side lineup.Side) (lineup.Submission, bool, error) {
	var row lineupTableModel
	query := `SELECT ` + lineupColumns + ` FROM lineups WHERE match_public_id = $1 AND side = $2`
	if err := r.db.GetContext(ctx, &row, query, matchID, string(side)); err != nil {
		if isNotFound(err) {
			return lineup.Submission{}, false, nil
		}
		return lineup.Submission{}, false, fmt.Errorf("get lineup by match and side: %w", err)
	}
	return submissionFromRow(row), true, nil
}

func (r *LineupRepository) ListByMatch(ctx context.Context, matchID string) ([]lineup.Submission, error) {
	var rows []lineupTableModel
	query := `SELECT ` + lineupColumns + ` FROM lineups WHERE match_public_id = $1 ORDER BY side`
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select lineups by match: %w", err)
	}

	out := make([]lineup.Submission, 0, len(rows))
	for _, row := range rows {
		out = append(out, submissionFromRow(row))
	}
	return out, nil
}

func (r *LineupRepository) Create(ctx context.Context, item lineup.Submission) error {
	query := `INSERT INTO lineups
(match_public_id, side, team_public_id, starter_player_ids, substitute_player_ids,
 formation, kit_type, status, rejection_reason, version, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		item.MatchID,
		string(item.Side),
		item.SeasonTeamID,
		pq.StringArray(item.Starters),
		pq.StringArray(item.Substitutes),
		nullString(item.Formation),
		nullString(item.KitType),
		string(item.Status),
		nullString(item.RejectionReason),
		item.Version,
		item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateID
		}
		return fmt.Errorf("insert lineup: %w", err)
	}
	return nil
}

func (r *LineupRepository) Update(ctx context.Context, item lineup.Submission) error {
	query := `UPDATE lineups
SET starter_player_ids = $1, substitute_player_ids = $2, formation = $3, kit_type = $4,
 status = $5, rejection_reason = $6, version = version + 1, updated_at = $7
WHERE match_public_id = $8 AND side = $9 AND version = $10`
	result, err := r.db.ExecContext(ctx, query,
		pq.StringArray(item.Starters),
		pq.StringArray(item.Substitutes),
		nullString(item.Formation),
		nullString(item.KitType),
		string(item.Status),
		nullString(item.RejectionReason),
		item.UpdatedAt,
		item.MatchID,
		string(item.Side),
		item.Version,
	)
	if err != nil {
		return fmt.Errorf("update lineup: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lineup rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrVersionMismatch
	}
	return nil
}

func submissionFromRow(row lineupTableModel) lineup.Submission {
	return lineup.Submission{
		MatchID:         row.MatchID,
		Side:            lineup.Side(row.Side),
		SeasonTeamID:    row.SeasonTeamID,
		Starters:        []string(row.Starters),
		Substitutes:     []string(row.Substitutes),
		Formation:       row.Formation.String,
		KitType:         row.KitType.String,
		Status:          lineup.Status(row.Status),
		RejectionReason: row.RejectionReason.String,
		Version:         row.Version,
		UpdatedAt:       row.UpdatedAt,
	}
}
