package postgres

import (
	"database/sql"
	"time"
)

type registrationTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	SeasonID     string         `db:"season_public_id"`
	TeamID       string         `db:"team_public_id"`
	Status       string         `db:"status"`
	ReviewerNote sql.NullString `db:"reviewer_note"`
	Payload      []byte         `db:"payload"`
	Version      int64          `db:"version"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
