package postgres

import "time"

type seasonTableModel struct {
	ID                 int64     `db:"id"`
	PublicID           string    `db:"public_id"`
	Name               string    `db:"name"`
	RequiredTeamCount  int       `db:"required_team_count"`
	YellowThreshold    int       `db:"yellow_threshold"`
	YellowBan          int       `db:"yellow_ban"`
	RedCardBan         int       `db:"red_card_ban"`
	MaxForeignStarters int       `db:"max_foreign_starters"`
	MaxSubstitutes     int       `db:"max_substitutes"`
	TieBreakSeed       int64     `db:"tie_break_seed"`
	StartsAt           time.Time `db:"starts_at"`
	EndsAt             time.Time `db:"ends_at"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}
