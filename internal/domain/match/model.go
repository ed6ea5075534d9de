package match

import "time"

// Status is the lifecycle state of a match.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusPreparing  Status = "PREPARING"
	StatusReady      Status = "READY"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
	StatusReported   Status = "REPORTED"
	StatusCompleted  Status = "COMPLETED"
)

// Event is an action that advances the match lifecycle.
type Event string

const (
	EventBeginPreparation Event = "begin_preparation"
	EventMarkReady        Event = "mark_ready"
	EventKickoff          Event = "kickoff"
	EventFinalWhistle     Event = "final_whistle"
	EventReport           Event = "report"
	EventComplete         Event = "complete"
)

// Transition declares one valid state change.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Transitions is the match lifecycle. It only moves forward; a rejected
// lineup keeps a match in PREPARING rather than regressing it, and lineups
// freeze once READY is reached.
var Transitions = []Transition{
	{Event: EventBeginPreparation, Src: StatusScheduled, Dst: StatusPreparing},
	{Event: EventMarkReady, Src: StatusPreparing, Dst: StatusReady},
	{Event: EventKickoff, Src: StatusReady, Dst: StatusInProgress},
	{Event: EventFinalWhistle, Src: StatusInProgress, Dst: StatusFinished},
	{Event: EventReport, Src: StatusFinished, Dst: StatusReported},
	{Event: EventComplete, Src: StatusReported, Dst: StatusCompleted},
}

// Match is one scheduled fixture between two season teams.
type Match struct {
	ID             string
	SeasonID       string
	HomeTeamID     string
	AwayTeamID     string
	Status         Status
	ScheduledAt    time.Time
	HomeGoals      int
	AwayGoals      int
	// OfficialsComplete mirrors the officials-assignment collaborator; the
	// engine reads completeness and never assigns officials itself.
	OfficialsComplete bool
	// StandingsEligible flags the match for standings aggregation; it is set
	// once at the final whistle as part of the idempotent finish contract.
	StandingsEligible bool
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CountsForStandings reports whether the match result feeds the table.
func (m Match) CountsForStandings() bool {
	switch m.Status {
	case StatusFinished, StatusReported, StatusCompleted:
		return true
	default:
		return false
	}
}

// Involves reports whether seasonTeamID plays in this match.
func (m Match) Involves(seasonTeamID string) bool {
	return m.HomeTeamID == seasonTeamID || m.AwayTeamID == seasonTeamID
}
