package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type cardEventTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	SeasonID     string    `db:"season_public_id"`
	MatchID      string    `db:"match_public_id"`
	PlayerID     string    `db:"player_public_id"`
	SeasonTeamID string    `db:"team_public_id"`
	Card         string    `db:"card"`
	Minute       int       `db:"minute"`
	RecordedAt   time.Time `db:"recorded_at"`
}

type suspensionTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	SeasonID       string         `db:"season_public_id"`
	PlayerID       string         `db:"player_public_id"`
	SeasonTeamID   string         `db:"team_public_id"`
	Reason         string         `db:"reason"`
	MatchesBanned  int            `db:"matches_banned"`
	ServedMatchIDs pq.StringArray `db:"served_match_ids"`
	Status         string         `db:"status"`
	TriggerMatchID sql.NullString `db:"trigger_match_public_id"`
	Version        int64          `db:"version"`
	UpdatedAt      time.Time      `db:"updated_at"`
}
