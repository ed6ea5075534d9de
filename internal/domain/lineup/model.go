package lineup

import "time"

// Side distinguishes the two independent approval tracks of a match.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Status is the approval-track state of one side's matchday squad.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

// Event is an action on a lineup submission.
type Event string

const (
	EventSubmit  Event = "submit"
	EventApprove Event = "approve"
	EventReject  Event = "reject"
	// EventUnlock is a privileged action reverting an approved lineup to
	// SUBMITTED for correction; it is not a normal resubmission.
	EventUnlock Event = "unlock"
)

// Transition declares one valid state change.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Transitions is the approval track per side. Rejection allows resubmission;
// an approved lineup only moves through the explicit unlock action.
var Transitions = []Transition{
	{Event: EventSubmit, Src: StatusPending, Dst: StatusSubmitted},
	{Event: EventSubmit, Src: StatusRejected, Dst: StatusSubmitted},
	{Event: EventApprove, Src: StatusSubmitted, Dst: StatusApproved},
	{Event: EventReject, Src: StatusSubmitted, Dst: StatusRejected},
	{Event: EventUnlock, Src: StatusApproved, Dst: StatusSubmitted},
}

// Submission is one side's matchday squad for one match. Exactly one row
// exists per (match, side); it is created empty in PENDING when the match
// enters preparation.
type Submission struct {
	MatchID         string
	Side            Side
	SeasonTeamID    string
	Starters        []string
	Substitutes     []string
	Formation       string
	KitType         string
	Status          Status
	RejectionReason string
	Version         int64
	UpdatedAt       time.Time
}

// Squad is the proposed starters and bench a team submits.
type Squad struct {
	Starters    []string
	Substitutes []string
	Formation   string
	KitType     string
}
