package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ligaops/competition-engine/internal/domain/discipline"
	"github.com/ligaops/competition-engine/internal/domain/storage"
)

type CardEventRepository struct {
	db *sqlx.DB
}

func NewCardEventRepository(db *sqlx.DB) *CardEventRepository {
	return &CardEventRepository{db: db}
}

const cardEventColumns = `public_id, season_public_id, match_public_id, player_public_id,
team_public_id, card, minute, recorded_at`

func (r *CardEventRepository) Append(ctx context.Context, event discipline.CardEvent) error {
	query := `INSERT INTO card_events
(public_id, season_public_id, match_public_id, player_public_id, team_public_id, card, minute, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.SeasonID,
		event.MatchID,
		event.PlayerID,
		event.SeasonTeamID,
		string(event.Card),
		event.Minute,
		event.RecordedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateID
		}
		return fmt.Errorf("insert card event: %w", err)
	}
	return nil
}

func (r *CardEventRepository) ListBySeason(ctx context.Context, seasonID string) ([]discipline.CardEvent, error) {
	var rows []cardEventTableModel
	query := `SELECT ` + cardEventColumns + ` FROM card_events
WHERE season_public_id = $1 ORDER BY recorded_at, public_id`
	if err := r.db.SelectContext(ctx, &rows, query, seasonID); err != nil {
		return nil, fmt.Errorf("select card events by season: %w", err)
	}
	return cardEventsFromRows(rows), nil
}

func (r *CardEventRepository) ListByMatch(ctx context.Context, matchID string) ([]discipline.CardEvent, error) {
	var rows []cardEventTableModel
	query := `SELECT ` + cardEventColumns + ` FROM card_events
WHERE match_public_id = $1 ORDER BY minute, public_id`
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select card events by match: %w", err)
	}
	return cardEventsFromRows(rows), nil
}

func cardEventsFromRows(rows []cardEventTableModel) []discipline.CardEvent {
	out := make([]discipline.CardEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, discipline.CardEvent{
			ID:           row.PublicID,
			SeasonID:     row.SeasonID,
			MatchID:      row.MatchID,
			PlayerID:     row.PlayerID,
			SeasonTeamID: row.SeasonTeamID,
			Card:         discipline.CardType(row.Card),
			Minute:       row.Minute,
			RecordedAt:   row.RecordedAt,
		})
	}
	return out
}

type SuspensionRepository struct {
	db *sqlx.DB
}

func NewSuspensionRepository(db *sqlx.DB) *SuspensionRepository {
	return &SuspensionRepository{db: db}
}

const suspensionColumns = `public_id, season_public_id, player_public_id, team_public_id,
reason, matches_banned, served_match_ids, status, trigger_match_public_id, version, updated_at`

func (r *SuspensionRepository) GetByID(ctx context.Context, suspensionID string) (discipline.Suspension, bool, error) {
	var row suspensionTableModel
	query := `SELECT ` + suspensionColumns + ` FROM suspensions WHERE public_id = $1`
	if err := r.db.GetContext(ctx, &row, query, suspensionID); err != nil {
		if isNotFound(err) {
			return discipline.Suspension{}, false, nil
		}
		return discipline.Suspension{}, false, fmt.Errorf("get suspension by id: %w", err)
	}
	return suspensionFromRow(row), true, nil
}

func (r *SuspensionRepository) ListBySeason(ctx context.Context, seasonID string) ([]discipline.Suspension, error) {
	var rows []suspensionTableModel
	query := `SELECT ` + suspensionColumns + ` FROM suspensions
WHERE season_public_id = $1 ORDER BY public_id`
	if err := r.db.SelectContext(ctx, &rows, query, seasonID); err != nil {
		return nil, fmt.Errorf("select suspensions by season: %w", err)
	}
	return suspensionsFromRows(rows), nil
}

func (r *SuspensionRepository) ListBySeasonAndPlayer(ctx context.Context, seasonID, playerID string) ([]discipline.Suspension, error) {
	var rows []suspensionTableModel
	query := `SELECT ` + suspensionColumns + ` FROM suspensions
WHERE season_public_id = $1 AND player_public_id = $2 ORDER BY public_id`
	if err := r.db.SelectContext(ctx, &rows, query, seasonID, playerID); err != nil {
		return nil, fmt.Errorf("select suspensions by player: %w", err)
	}
	return suspensionsFromRows(rows), nil
}

func (r *SuspensionRepository) Upsert(ctx context.Context, item discipline.Suspension) error {
	query := `INSERT INTO suspensions
(public_id, season_public_id, player_public_id, team_public_id, reason, matches_banned,
 served_match_ids, status, trigger_match_public_id, version, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (public_id) DO UPDATE SET
 reason = EXCLUDED.reason,
 matches_banned = EXCLUDED.matches_banned,
 served_match_ids = EXCLUDED.served_match_ids,
 status = EXCLUDED.status,
 trigger_match_public_id = EXCLUDED.trigger_match_public_id,
 updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.SeasonID,
		item.PlayerID,
		item.SeasonTeamID,
		string(item.Reason),
		item.MatchesBanned,
		pq.StringArray(item.ServedMatchIDs),
		string(item.Status),
		nullString(item.TriggerMatchID),
		item.Version,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert suspension: %w", err)
	}
	return nil
}

func (r *SuspensionRepository) Update(ctx context.Context, item discipline.Suspension) error {
	query := `UPDATE suspensions
SET served_match_ids = $1, status = $2, version = version + 1, updated_at = $3
WHERE public_id = $4 AND version = $5`
	result, err := r.db.ExecContext(ctx, query,
		pq.StringArray(item.ServedMatchIDs),
		string(item.Status),
		item.UpdatedAt,
		item.ID,
		item.Version,
	)
	if err != nil {
		return fmt.Errorf("update suspension: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update suspension rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrVersionMismatch
	}
	return nil
}

func suspensionFromRow(row suspensionTableModel) discipline.Suspension {
	return discipline.Suspension{
		ID:             row.PublicID,
		SeasonID:       row.SeasonID,
		PlayerID:       row.PlayerID,
		SeasonTeamID:   row.SeasonTeamID,
		Reason:         discipline.Reason(row.Reason),
		MatchesBanned:  row.MatchesBanned,
		ServedMatchIDs: []string(row.ServedMatchIDs),
		Status:         discipline.Status(row.Status),
		TriggerMatchID: row.TriggerMatchID.String,
		Version:        row.Version,
		UpdatedAt:      row.UpdatedAt,
	}
}

func suspensionsFromRows(rows []suspensionTableModel) []discipline.Suspension {
	out := make([]discipline.Suspension, 0, len(rows))
	for _, row := range rows {
		out = append(out, suspensionFromRow(row))
	}
	return out
}
