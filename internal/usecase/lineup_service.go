package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/lineup"
	"github.com/ligaops/competition-engine/internal/domain/match"
	"github.com/ligaops/competition-engine/internal/domain/roster"
	"github.com/ligaops/competition-engine/internal/domain/season"
	"github.com/ligaops/competition-engine/internal/domain/storage"
	"github.com/ligaops/competition-engine/internal/platform/statemachine"
)

// SuspensionChecker resolves which players are barred from a given match.
type SuspensionChecker interface {
	SuspendedPlayers(ctx context.Context, seasonID, atMatchID string) (map[string]bool, error)
}

// LineupReviewOutcome is the reviewer's decision on a submitted lineup.
type LineupReviewOutcome string

const (
	LineupReviewApprove LineupReviewOutcome = "APPROVE"
	LineupReviewReject  LineupReviewOutcome = "REJECT"
)

// LineupService runs the two independent per-side approval tracks of a match.
type LineupService struct {
	seasonRepo  season.Repository
	matchRepo   match.Repository
	lineupRepo  lineup.Repository
	rosterRepo  roster.Repository
	suspensions SuspensionChecker
	machine     *statemachine.Machine
	now         func() time.Time
}

func NewLineupService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	lineupRepo lineup.Repository,
	rosterRepo roster.Repository,
	suspensions SuspensionChecker,
) *LineupService {
	transitions := make([]statemachine.Transition, 0, len(lineup.Transitions))
	for _, t := range lineup.Transitions {
		transitions = append(transitions, statemachine.Transition{
			Event: string(t.Event),
			Src:   string(t.Src),
			Dst:   string(t.Dst),
		})
	}

	return &LineupService{
		seasonRepo:  seasonRepo,
		matchRepo:   matchRepo,
		lineupRepo:  lineupRepo,
		rosterRepo:  rosterRepo,
		suspensions: suspensions,
		machine:     statemachine.New(transitions),
		now:         time.Now,
	}
}

// Submit validates a proposed squad and, only when it passes every rule,
// moves the side's track to SUBMITTED. A failing squad returns the full
// violation list and leaves the stored submission untouched.
func (s *LineupService) Submit(ctx context.Context, matchID string, side lineup.Side, squad lineup.Squad) (lineup.Submission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Submit")
	defer span.End()

	matchItem, submission, err := s.load(ctx, matchID, side)
	if err != nil {
		return lineup.Submission{}, err
	}
	if matchItem.Status != match.StatusPreparing {
		return lineup.Submission{}, &PreconditionError{
			Target:  "lineup submission",
			Missing: []string{fmt.Sprintf("match must be in %s, is %s", match.StatusPreparing, matchItem.Status)},
		}
	}

	seasonItem, exists, err := s.seasonRepo.GetByID(ctx, matchItem.SeasonID)
	if err != nil {
		return lineup.Submission{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return lineup.Submission{}, fmt.Errorf("%w: season=%s", ErrNotFound, matchItem.SeasonID)
	}

	rosterPlayers, err := s.rosterRepo.ListBySeasonTeam(ctx, matchItem.SeasonID, submission.SeasonTeamID)
	if err != nil {
		return lineup.Submission{}, fmt.Errorf("list roster: %w", err)
	}
	suspended, err := s.suspensions.SuspendedPlayers(ctx, matchItem.SeasonID, matchID)
	if err != nil {
		return lineup.Submission{}, fmt.Errorf("resolve suspended players: %w", err)
	}

	result := lineup.ValidateSquad(squad, rosterPlayers, suspended, seasonItem.Rules)
	if !result.Valid {
		return lineup.Submission{}, &ValidationError{Violations: result.Violations}
	}

	next, err := s.apply(ctx, submission, lineup.EventSubmit)
	if err != nil {
		return lineup.Submission{}, err
	}

	submission.Starters = append([]string(nil), squad.Starters...)
	submission.Substitutes = append([]string(nil), squad.Substitutes...)
	submission.Formation = strings.TrimSpace(squad.Formation)
	submission.KitType = strings.TrimSpace(squad.KitType)
	submission.Status = next
	submission.RejectionReason = ""
	submission.UpdatedAt = s.now().UTC()

	return s.store(ctx, submission)
}

// Review applies the match commissioner's decision on a submitted lineup.
// Rejection requires a reason; approval clears any previous one.
func (s *LineupService) Review(ctx context.Context, matchID string, side lineup.Side, outcome LineupReviewOutcome, reason string) (lineup.Submission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Review")
	defer span.End()

	reason = strings.TrimSpace(reason)

	var event lineup.Event
	switch outcome {
	case LineupReviewApprove:
		event = lineup.EventApprove
	case LineupReviewReject:
		if reason == "" {
			return lineup.Submission{}, fmt.Errorf("%w: rejection requires a reason", ErrInvalidInput)
		}
		event = lineup.EventReject
	default:
		return lineup.Submission{}, fmt.Errorf("%w: unknown review outcome %q", ErrInvalidInput, outcome)
	}

	_, submission, err := s.load(ctx, matchID, side)
	if err != nil {
		return lineup.Submission{}, err
	}

	next, err := s.apply(ctx, submission, event)
	if err != nil {
		return lineup.Submission{}, err
	}

	submission.Status = next
	if event == lineup.EventReject {
		submission.RejectionReason = reason
	} else {
		submission.RejectionReason = ""
	}
	submission.UpdatedAt = s.now().UTC()

	return s.store(ctx, submission)
}

// Unlock reverts an approved lineup to SUBMITTED for correction. It is a
// privileged action and only works while the match is still in preparation;
// once READY the lineups are frozen.
func (s *LineupService) Unlock(ctx context.Context, matchID string, side lineup.Side) (lineup.Submission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Unlock")
	defer span.End()

	matchItem, submission, err := s.load(ctx, matchID, side)
	if err != nil {
		return lineup.Submission{}, err
	}
	if matchItem.Status != match.StatusPreparing {
		return lineup.Submission{}, &PreconditionError{
			Target:  "lineup unlock",
			Missing: []string{fmt.Sprintf("match must be in %s, is %s", match.StatusPreparing, matchItem.Status)},
		}
	}

	next, err := s.apply(ctx, submission, lineup.EventUnlock)
	if err != nil {
		return lineup.Submission{}, err
	}

	submission.Status = next
	submission.UpdatedAt = s.now().UTC()

	return s.store(ctx, submission)
}

// GetByMatch lists both sides' submissions for a match.
func (s *LineupService) GetByMatch(ctx context.Context, matchID string) ([]lineup.Submission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.GetByMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	items, err := s.lineupRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}
	return items, nil
}

func (s *LineupService) load(ctx context.Context, matchID string, side lineup.Side) (match.Match, lineup.Submission, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, lineup.Submission{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if side != lineup.SideHome && side != lineup.SideAway {
		return match.Match{}, lineup.Submission{}, fmt.Errorf("%w: unknown side %q", ErrInvalidInput, side)
	}

	matchItem, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, lineup.Submission{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, lineup.Submission{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	submission, exists, err := s.lineupRepo.GetByMatchAndSide(ctx, matchID, side)
	if err != nil {
		return match.Match{}, lineup.Submission{}, fmt.Errorf("get lineup: %w", err)
	}
	if !exists {
		return match.Match{}, lineup.Submission{}, fmt.Errorf("%w: lineup for match=%s side=%s", ErrNotFound, matchID, side)
	}

	return matchItem, submission, nil
}

func (s *LineupService) apply(ctx context.Context, submission lineup.Submission, event lineup.Event) (lineup.Status, error) {
	next, err := s.machine.Apply(ctx, string(submission.Status), string(event))
	if err != nil {
		var transitionErr *statemachine.TransitionError
		if errors.As(err, &transitionErr) {
			return "", &InvalidTransitionError{
				Entity: "lineup",
				ID:     submission.MatchID + "/" + string(submission.Side),
				From:   string(submission.Status),
				Event:  string(event),
			}
		}
		return "", fmt.Errorf("apply lineup event: %w", err)
	}
	return lineup.Status(next), nil
}

func (s *LineupService) store(ctx context.Context, submission lineup.Submission) (lineup.Submission, error) {
	if err := s.lineupRepo.Update(ctx, submission); err != nil {
		if errors.Is(err, storage.ErrVersionMismatch) {
			return lineup.Submission{}, &ConflictError{
				Entity: "lineup",
				ID:     submission.MatchID + "/" + string(submission.Side),
			}
		}
		return lineup.Submission{}, fmt.Errorf("update lineup: %w", err)
	}
	submission.Version++
	return submission, nil
}
