package postgres

import "time"

type matchTableModel struct {
	ID                int64     `db:"id"`
	PublicID          string    `db:"public_id"`
	SeasonID          string    `db:"season_public_id"`
	HomeTeamID        string    `db:"home_team_public_id"`
	AwayTeamID        string    `db:"away_team_public_id"`
	Status            string    `db:"status"`
	ScheduledAt       time.Time `db:"scheduled_at"`
	HomeGoals         int       `db:"home_goals"`
	AwayGoals         int       `db:"away_goals"`
	OfficialsComplete bool      `db:"officials_complete"`
	StandingsEligible bool      `db:"standings_eligible"`
	Version           int64     `db:"version"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}
