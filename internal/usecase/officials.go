package usecase

import "context"

// OfficialsAssignment is the collaborator's view of a match's officials and
// their post-match paperwork.
type OfficialsAssignment struct {
	OfficialsComplete         bool
	RefereeReportSubmitted    bool
	SupervisorReportSubmitted bool
}

// OfficialsProvider reads assignment and report status from the officials
// collaborator. The engine never assigns officials itself.
type OfficialsProvider interface {
	AssignmentStatus(ctx context.Context, matchID string) (OfficialsAssignment, error)
}
