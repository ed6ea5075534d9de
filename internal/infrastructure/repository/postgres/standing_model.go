package postgres

import "time"

type standingTableModel struct {
	ID           int64     `db:"id"`
	SeasonID     string    `db:"season_public_id"`
	SeasonTeamID string    `db:"team_public_id"`
	Played       int       `db:"played"`
	Won          int       `db:"won"`
	Draw         int       `db:"draw"`
	Loss         int       `db:"loss"`
	GoalsFor     int       `db:"goals_for"`
	GoalsAgainst int       `db:"goals_against"`
	Points       int       `db:"points"`
	Rank         int       `db:"rank"`
	ManualDelta  int       `db:"manual_delta"`
	Adjusted     bool      `db:"adjusted"`
	UpdatedAt    time.Time `db:"updated_at"`
}
