package standing

import "time"

// Mode selects the ranking rules for a recompute.
type Mode string

const (
	// ModeLive ranks on points, goal difference and goals scored only.
	ModeLive Mode = "live"
	// ModeFinal additionally breaks remaining ties with head-to-head results
	// and a deterministic, seeded drawing of lots.
	ModeFinal Mode = "final"
)

// Row is one league-table line for a season team. Rows are fully derived;
// administrative overrides are flagged so a recompute can preserve or discard
// them per an explicit caller policy, never silently.
type Row struct {
	SeasonID     string
	SeasonTeamID string
	Played       int
	Won          int
	Draw         int
	Loss         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
	Rank         int
	// ManualDelta is an administrative points adjustment on top of the
	// computed points.
	ManualDelta int
	// Adjusted marks rows touched by an administrative override.
	Adjusted  bool
	UpdatedAt time.Time
}

// GoalDifference is goals scored minus goals conceded.
func (r Row) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}

// TotalPoints includes any administrative adjustment.
func (r Row) TotalPoints() int {
	return r.Points + r.ManualDelta
}
