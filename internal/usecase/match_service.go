package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/lineup"
	"github.com/ligaops/competition-engine/internal/domain/match"
	"github.com/ligaops/competition-engine/internal/domain/season"
	"github.com/ligaops/competition-engine/internal/domain/storage"
	idgen "github.com/ligaops/competition-engine/internal/platform/id"
	"github.com/ligaops/competition-engine/internal/platform/statemachine"
)

// SuspensionEnforcer applies the post-match served-ban bookkeeping.
type SuspensionEnforcer interface {
	ApplyMatchPlayed(ctx context.Context, played match.Match) error
}

// ScheduleMatchInput creates one fixture.
type ScheduleMatchInput struct {
	SeasonID    string
	HomeTeamID  string
	AwayTeamID  string
	ScheduledAt time.Time
}

// MatchService orchestrates the forward-only match lifecycle and the guards
// between its stages.
type MatchService struct {
	seasonRepo  season.Repository
	matchRepo   match.Repository
	lineupRepo  lineup.Repository
	officials   OfficialsProvider
	suspensions SuspensionEnforcer
	ids         idgen.Generator
	machine     *statemachine.Machine
	now         func() time.Time
}

func NewMatchService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	lineupRepo lineup.Repository,
	officials OfficialsProvider,
	suspensions SuspensionEnforcer,
	ids idgen.Generator,
) *MatchService {
	transitions := make([]statemachine.Transition, 0, len(match.Transitions))
	for _, t := range match.Transitions {
		transitions = append(transitions, statemachine.Transition{
			Event: string(t.Event),
			Src:   string(t.Src),
			Dst:   string(t.Dst),
		})
	}

	return &MatchService{
		seasonRepo:  seasonRepo,
		matchRepo:   matchRepo,
		lineupRepo:  lineupRepo,
		officials:   officials,
		suspensions: suspensions,
		ids:         ids,
		machine:     statemachine.New(transitions),
		now:         time.Now,
	}
}

// Schedule creates a fixture in SCHEDULED.
func (s *MatchService) Schedule(ctx context.Context, input ScheduleMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Schedule")
	defer span.End()

	input.SeasonID = strings.TrimSpace(input.SeasonID)
	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)
	if input.SeasonID == "" || input.HomeTeamID == "" || input.AwayTeamID == "" {
		return match.Match{}, fmt.Errorf("%w: season, home and away team ids are required", ErrInvalidInput)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return match.Match{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	if input.ScheduledAt.IsZero() {
		return match.Match{}, fmt.Errorf("%w: kickoff time is required", ErrInvalidInput)
	}

	if _, exists, err := s.seasonRepo.GetByID(ctx, input.SeasonID); err != nil {
		return match.Match{}, fmt.Errorf("get season: %w", err)
	} else if !exists {
		return match.Match{}, fmt.Errorf("%w: season=%s", ErrNotFound, input.SeasonID)
	}

	matchID, err := s.ids.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	item := match.Match{
		ID:          matchID,
		SeasonID:    input.SeasonID,
		HomeTeamID:  input.HomeTeamID,
		AwayTeamID:  input.AwayTeamID,
		Status:      match.StatusScheduled,
		ScheduledAt: input.ScheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.matchRepo.Create(ctx, item); err != nil {
		if errors.Is(err, storage.ErrDuplicateID) {
			return match.Match{}, &ConflictError{Entity: "match", ID: matchID}
		}
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	return item, nil
}

// BeginPreparation opens the matchday window and seeds one empty PENDING
// lineup row per side. Re-seeding an existing row is a no-op.
func (s *MatchService) BeginPreparation(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.BeginPreparation")
	defer span.End()

	item, err := s.transition(ctx, matchID, match.EventBeginPreparation, nil)
	if err != nil {
		return match.Match{}, err
	}

	now := s.now().UTC()
	seedSides := []struct {
		side   lineup.Side
		teamID string
	}{
		{side: lineup.SideHome, teamID: item.HomeTeamID},
		{side: lineup.SideAway, teamID: item.AwayTeamID},
	}
	for _, seed := range seedSides {
		submission := lineup.Submission{
			MatchID:      item.ID,
			Side:         seed.side,
			SeasonTeamID: seed.teamID,
			Status:       lineup.StatusPending,
			UpdatedAt:    now,
		}
		if err := s.lineupRepo.Create(ctx, submission); err != nil && !errors.Is(err, storage.ErrDuplicateID) {
			return match.Match{}, fmt.Errorf("seed %s lineup: %w", seed.side, err)
		}
	}

	return item, nil
}

// CanEnter lists every unmet condition guarding entry into target. An empty
// result means the guard passes; it says nothing about transition validity
// from the current state.
func (s *MatchService) CanEnter(ctx context.Context, matchID string, target match.Status) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CanEnter")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return s.guardConditions(ctx, item, target)
}

func (s *MatchService) guardConditions(ctx context.Context, item match.Match, target match.Status) ([]string, error) {
	var missing []string

	switch target {
	case match.StatusReady:
		for _, side := range []lineup.Side{lineup.SideHome, lineup.SideAway} {
			submission, exists, err := s.lineupRepo.GetByMatchAndSide(ctx, item.ID, side)
			if err != nil {
				return nil, fmt.Errorf("get %s lineup: %w", side, err)
			}
			if !exists || submission.Status != lineup.StatusApproved {
				missing = append(missing, fmt.Sprintf("%s lineup not approved", side))
			}
		}
		assignment, err := s.officials.AssignmentStatus(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: officials assignment status: %s", ErrDependencyUnavailable, err)
		}
		if !assignment.OfficialsComplete {
			missing = append(missing, "officials assignment incomplete")
		}
	case match.StatusReported:
		assignment, err := s.officials.AssignmentStatus(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: officials assignment status: %s", ErrDependencyUnavailable, err)
		}
		if !assignment.RefereeReportSubmitted {
			missing = append(missing, "referee report not submitted")
		}
		if !assignment.SupervisorReportSubmitted {
			missing = append(missing, "supervisor report not submitted")
		}
	}

	return missing, nil
}

// MarkReady freezes the matchday: both lineups approved and officials in
// place. Lineups cannot change past this point.
func (s *MatchService) MarkReady(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.MarkReady")
	defer span.End()

	return s.transition(ctx, matchID, match.EventMarkReady, func(ctx context.Context, item *match.Match) error {
		missing, err := s.guardConditions(ctx, *item, match.StatusReady)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return &PreconditionError{Target: string(match.StatusReady), Missing: missing}
		}
		item.OfficialsComplete = true
		return nil
	})
}

// Kickoff starts play.
func (s *MatchService) Kickoff(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Kickoff")
	defer span.End()

	return s.transition(ctx, matchID, match.EventKickoff, nil)
}

// Finish records the final score and runs the post-match bookkeeping: the
// result becomes standings-eligible and every suspension that barred a player
// from this match counts one served match. The bookkeeping is idempotent, so
// a retry after a partial failure converges rather than double-counting.
func (s *MatchService) Finish(ctx context.Context, matchID string, homeGoals, awayGoals int) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Finish")
	defer span.End()

	if homeGoals < 0 || awayGoals < 0 {
		return match.Match{}, fmt.Errorf("%w: goals cannot be negative", ErrInvalidInput)
	}

	item, err := s.transition(ctx, matchID, match.EventFinalWhistle, func(_ context.Context, item *match.Match) error {
		item.HomeGoals = homeGoals
		item.AwayGoals = awayGoals
		item.StandingsEligible = true
		return nil
	})
	if err != nil {
		return match.Match{}, err
	}

	if err := s.suspensions.ApplyMatchPlayed(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("apply served suspensions: %w", err)
	}

	return item, nil
}

// Report confirms the officials' paperwork is in.
func (s *MatchService) Report(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Report")
	defer span.End()

	return s.transition(ctx, matchID, match.EventReport, func(ctx context.Context, item *match.Match) error {
		missing, err := s.guardConditions(ctx, *item, match.StatusReported)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return &PreconditionError{Target: string(match.StatusReported), Missing: missing}
		}
		return nil
	})
}

// Complete closes the match administratively.
func (s *MatchService) Complete(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Complete")
	defer span.End()

	return s.transition(ctx, matchID, match.EventComplete, nil)
}

// GetByID fetches one match.
func (s *MatchService) GetByID(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetByID")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

// ListBySeason lists a season's fixtures.
func (s *MatchService) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListBySeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	items, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

// transition loads the match, checks the lifecycle table, runs the optional
// guard-and-mutate hook and writes with the read version. The forward-only
// table means nothing here ever regresses a match.
func (s *MatchService) transition(
	ctx context.Context,
	matchID string,
	event match.Event,
	mutate func(context.Context, *match.Match) error,
) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	next, err := s.machine.Apply(ctx, string(item.Status), string(event))
	if err != nil {
		var transitionErr *statemachine.TransitionError
		if errors.As(err, &transitionErr) {
			return match.Match{}, &InvalidTransitionError{
				Entity: "match",
				ID:     matchID,
				From:   string(item.Status),
				Event:  string(event),
			}
		}
		return match.Match{}, fmt.Errorf("apply match event: %w", err)
	}

	if mutate != nil {
		if err := mutate(ctx, &item); err != nil {
			return match.Match{}, err
		}
	}
	item.Status = match.Status(next)
	item.UpdatedAt = s.now().UTC()

	if err := s.matchRepo.Update(ctx, item); err != nil {
		if errors.Is(err, storage.ErrVersionMismatch) {
			return match.Match{}, &ConflictError{Entity: "match", ID: matchID}
		}
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}
	item.Version++

	return item, nil
}
