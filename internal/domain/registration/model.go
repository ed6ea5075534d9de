package registration

import "time"

// Status is the lifecycle state of one team's participation in one season.
type Status string

const (
	StatusDraftInvite   Status = "DRAFT_INVITE"
	StatusInvited       Status = "INVITED"
	StatusAccepted      Status = "ACCEPTED"
	StatusDeclined      Status = "DECLINED"
	StatusSubmitted     Status = "SUBMITTED"
	StatusRequestChange Status = "REQUEST_CHANGE"
	StatusApproved      Status = "APPROVED"
	StatusRejected      Status = "REJECTED"
)

// Event is an action that may move a registration between states.
type Event string

const (
	EventSendInvitation Event = "send_invitation"
	EventAccept         Event = "accept"
	EventDecline        Event = "decline"
	EventSubmit         Event = "submit"
	EventApprove        Event = "approve"
	EventReject         Event = "reject"
	EventRequestChange  Event = "request_change"
)

// Transition declares one valid state change.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Transitions is the full registration workflow. DECLINED and REJECTED are
// terminal; APPROVED is terminal-success. REQUEST_CHANGE loops back through
// SUBMITTED on resubmission.
var Transitions = []Transition{
	{Event: EventSendInvitation, Src: StatusDraftInvite, Dst: StatusInvited},
	{Event: EventAccept, Src: StatusInvited, Dst: StatusAccepted},
	{Event: EventDecline, Src: StatusInvited, Dst: StatusDeclined},
	{Event: EventSubmit, Src: StatusAccepted, Dst: StatusSubmitted},
	{Event: EventSubmit, Src: StatusRequestChange, Dst: StatusSubmitted},
	{Event: EventApprove, Src: StatusSubmitted, Dst: StatusApproved},
	{Event: EventReject, Src: StatusSubmitted, Dst: StatusRejected},
	{Event: EventRequestChange, Src: StatusSubmitted, Dst: StatusRequestChange},
}

// Registration is a team's participation record for one season. Rows are
// never deleted, only status-transitioned.
type Registration struct {
	ID           string
	SeasonID     string
	TeamID       string
	Status       Status
	ReviewerNote string
	// Payload is the submitted registration document (stadium, kit, roster
	// summary). It is opaque to the workflow; a collaborator validates it.
	Payload   []byte
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Readiness reports whether a season has enough approved registrations
// for fixture scheduling to begin.
type Readiness struct {
	Ready    bool
	Approved int
	Required int
	Deficit  int
}
