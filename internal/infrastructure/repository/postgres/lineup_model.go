package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type lineupTableModel struct {
	ID              int64          `db:"id"`
	MatchID         string         `db:"match_public_id"`
	Side            string         `db:"side"`
	SeasonTeamID    string         `db:"team_public_id"`
	Starters        pq.StringArray `db:"starter_player_ids"`
	Substitutes     pq.StringArray `db:"substitute_player_ids"`
	Formation       sql.NullString `db:"formation"`
	KitType         sql.NullString `db:"kit_type"`
	Status          string         `db:"status"`
	RejectionReason sql.NullString `db:"rejection_reason"`
	Version         int64          `db:"version"`
	UpdatedAt       time.Time      `db:"updated_at"`
}
