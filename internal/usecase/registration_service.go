package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/registration"
	"github.com/ligaops/competition-engine/internal/domain/season"
	"github.com/ligaops/competition-engine/internal/domain/storage"
	idgen "github.com/ligaops/competition-engine/internal/platform/id"
	"github.com/ligaops/competition-engine/internal/platform/statemachine"
)

// ReviewOutcome is the reviewer's decision on a submitted registration.
type ReviewOutcome string

const (
	ReviewApprove       ReviewOutcome = "APPROVE"
	ReviewReject        ReviewOutcome = "REJECT"
	ReviewRequestChange ReviewOutcome = "REQUEST_CHANGE"
)

// SendInvitationsResult summarizes a batch send.
type SendInvitationsResult struct {
	Sent     []registration.Registration
	Failures []SendInvitationFailure
}

type SendInvitationFailure struct {
	RegistrationID string
	Err            error
}

// RegistrationService runs the per-team, per-season registration workflow.
type RegistrationService struct {
	seasonRepo       season.Repository
	registrationRepo registration.Repository
	ids              idgen.Generator
	machine          *statemachine.Machine
	now              func() time.Time
}

func NewRegistrationService(
	seasonRepo season.Repository,
	registrationRepo registration.Repository,
	ids idgen.Generator,
) *RegistrationService {
	return &RegistrationService{
		seasonRepo:       seasonRepo,
		registrationRepo: registrationRepo,
		ids:              ids,
		machine:          newRegistrationMachine(),
		now:              time.Now,
	}
}

func newRegistrationMachine() *statemachine.Machine {
	transitions := make([]statemachine.Transition, 0, len(registration.Transitions))
	for _, t := range registration.Transitions {
		transitions = append(transitions, statemachine.Transition{
			Event: string(t.Event),
			Src:   string(t.Src),
			Dst:   string(t.Dst),
		})
	}
	return statemachine.New(transitions)
}

// Invite creates a draft invitation for a team to join a season.
func (s *RegistrationService) Invite(ctx context.Context, seasonID, teamID string) (registration.Registration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.Invite")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	teamID = strings.TrimSpace(teamID)
	if seasonID == "" || teamID == "" {
		return registration.Registration{}, fmt.Errorf("%w: season_id and team_id are required", ErrInvalidInput)
	}

	if _, exists, err := s.seasonRepo.GetByID(ctx, seasonID); err != nil {
		return registration.Registration{}, fmt.Errorf("get season: %w", err)
	} else if !exists {
		return registration.Registration{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	if _, exists, err := s.registrationRepo.GetBySeasonAndTeam(ctx, seasonID, teamID); err != nil {
		return registration.Registration{}, fmt.Errorf("get registration by season and team: %w", err)
	} else if exists {
		return registration.Registration{}, fmt.Errorf("%w: team %s is already invited to season %s", ErrInvalidInput, teamID, seasonID)
	}

	registrationID, err := s.ids.NewID()
	if err != nil {
		return registration.Registration{}, fmt.Errorf("generate registration id: %w", err)
	}

	now := s.now().UTC()
	item := registration.Registration{
		ID:        registrationID,
		SeasonID:  seasonID,
		TeamID:    teamID,
		Status:    registration.StatusDraftInvite,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.registrationRepo.Create(ctx, item); err != nil {
		if errors.Is(err, storage.ErrDuplicateID) {
			return registration.Registration{}, &ConflictError{Entity: "registration", ID: registrationID}
		}
		return registration.Registration{}, fmt.Errorf("create registration: %w", err)
	}

	return item, nil
}

// SendInvitations moves draft invitations to INVITED. The batch keeps going
// past individual failures and reports them per registration.
func (s *RegistrationService) SendInvitations(ctx context.Context, registrationIDs []string) (SendInvitationsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.SendInvitations")
	defer span.End()

	if len(registrationIDs) == 0 {
		return SendInvitationsResult{}, fmt.Errorf("%w: at least one registration id is required", ErrInvalidInput)
	}

	var result SendInvitationsResult
	for _, registrationID := range registrationIDs {
		item, err := s.transition(ctx, registrationID, registration.EventSendInvitation, func(*registration.Registration) {})
		if err != nil {
			result.Failures = append(result.Failures, SendInvitationFailure{RegistrationID: registrationID, Err: err})
			continue
		}
		result.Sent = append(result.Sent, item)
	}

	return result, nil
}

// Respond records a team's answer to an invitation.
func (s *RegistrationService) Respond(ctx context.Context, registrationID string, accept bool, note string) (registration.Registration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.Respond")
	defer span.End()

	event := registration.EventAccept
	if !accept {
		event = registration.EventDecline
	}
	return s.transition(ctx, registrationID, event, func(item *registration.Registration) {
		item.ReviewerNote = strings.TrimSpace(note)
	})
}

// Submit attaches the registration payload and moves to SUBMITTED. The
// payload (stadium, kit, roster summary) is opaque here; a collaborator
// validates its content.
func (s *RegistrationService) Submit(ctx context.Context, registrationID string, payload []byte) (registration.Registration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.Submit")
	defer span.End()

	if len(payload) == 0 {
		return registration.Registration{}, fmt.Errorf("%w: submission payload is required", ErrInvalidInput)
	}
	return s.transition(ctx, registrationID, registration.EventSubmit, func(item *registration.Registration) {
		item.Payload = payload
	})
}

// Review applies the reviewer's decision to a submitted registration.
func (s *RegistrationService) Review(ctx context.Context, registrationID string, outcome ReviewOutcome, note string) (registration.Registration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.Review")
	defer span.End()

	var event registration.Event
	switch outcome {
	case ReviewApprove:
		event = registration.EventApprove
	case ReviewReject:
		event = registration.EventReject
	case ReviewRequestChange:
		event = registration.EventRequestChange
	default:
		return registration.Registration{}, fmt.Errorf("%w: unknown review outcome %q", ErrInvalidInput, outcome)
	}

	return s.transition(ctx, registrationID, event, func(item *registration.Registration) {
		item.ReviewerNote = strings.TrimSpace(note)
	})
}

// GetByID fetches one registration.
func (s *RegistrationService) GetByID(ctx context.Context, registrationID string) (registration.Registration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.GetByID")
	defer span.End()

	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return registration.Registration{}, fmt.Errorf("%w: registration id is required", ErrInvalidInput)
	}

	item, exists, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	if !exists {
		return registration.Registration{}, fmt.Errorf("%w: registration=%s", ErrNotFound, registrationID)
	}
	return item, nil
}

// ListBySeason lists a season's registrations.
func (s *RegistrationService) ListBySeason(ctx context.Context, seasonID string) ([]registration.Registration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.ListBySeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	items, err := s.registrationRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list registrations by season: %w", err)
	}
	return items, nil
}

// SchedulingReadiness reports whether the season has enough approved teams
// for fixture scheduling. Season-level tooling polls this; nothing pushes it.
func (s *RegistrationService) SchedulingReadiness(ctx context.Context, seasonID string) (registration.Readiness, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.SchedulingReadiness")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return registration.Readiness{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return registration.Readiness{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return registration.Readiness{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	approved, err := s.registrationRepo.CountBySeasonAndStatus(ctx, seasonID, registration.StatusApproved)
	if err != nil {
		return registration.Readiness{}, fmt.Errorf("count approved registrations: %w", err)
	}

	deficit := item.RequiredTeamCount - approved
	if deficit < 0 {
		deficit = 0
	}
	return registration.Readiness{
		Ready:    approved >= item.RequiredTeamCount,
		Approved: approved,
		Required: item.RequiredTeamCount,
		Deficit:  deficit,
	}, nil
}

// transition loads, validates and writes one state change. The repository
// re-checks the read version on write, so the guard and the status update
// are atomic; a lost race surfaces as ConflictError with nothing mutated.
func (s *RegistrationService) transition(
	ctx context.Context,
	registrationID string,
	event registration.Event,
	mutate func(*registration.Registration),
) (registration.Registration, error) {
	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return registration.Registration{}, fmt.Errorf("%w: registration id is required", ErrInvalidInput)
	}

	item, exists, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	if !exists {
		return registration.Registration{}, fmt.Errorf("%w: registration=%s", ErrNotFound, registrationID)
	}

	next, err := s.machine.Apply(ctx, string(item.Status), string(event))
	if err != nil {
		var transitionErr *statemachine.TransitionError
		if errors.As(err, &transitionErr) {
			return registration.Registration{}, &InvalidTransitionError{
				Entity: "registration",
				ID:     registrationID,
				From:   string(item.Status),
				Event:  string(event),
			}
		}
		return registration.Registration{}, fmt.Errorf("apply registration event: %w", err)
	}

	mutate(&item)
	item.Status = registration.Status(next)
	item.UpdatedAt = s.now().UTC()

	if err := s.registrationRepo.Update(ctx, item); err != nil {
		if errors.Is(err, storage.ErrVersionMismatch) {
			return registration.Registration{}, &ConflictError{Entity: "registration", ID: registrationID}
		}
		return registration.Registration{}, fmt.Errorf("update registration: %w", err)
	}
	item.Version++

	return item, nil
}
