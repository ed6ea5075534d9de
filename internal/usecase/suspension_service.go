package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/discipline"
	"github.com/ligaops/competition-engine/internal/domain/match"
	"github.com/ligaops/competition-engine/internal/domain/season"
	"github.com/ligaops/competition-engine/internal/domain/storage"
	idgen "github.com/ligaops/competition-engine/internal/platform/id"
)

// RecordCardInput captures one card shown during a match.
type RecordCardInput struct {
	MatchID      string
	PlayerID     string
	SeasonTeamID string
	Card         discipline.CardType
	Minute       int
}

// SuspensionService maintains the derived suspension ledger. Card events are
// the source of truth; suspension rows are a materialization that can always
// be rebuilt from (events, match order, rules).
type SuspensionService struct {
	seasonRepo     season.Repository
	matchRepo      match.Repository
	cardEventRepo  discipline.CardEventRepository
	suspensionRepo discipline.SuspensionRepository
	ids            idgen.Generator
	now            func() time.Time
}

func NewSuspensionService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	cardEventRepo discipline.CardEventRepository,
	suspensionRepo discipline.SuspensionRepository,
	ids idgen.Generator,
) *SuspensionService {
	return &SuspensionService{
		seasonRepo:     seasonRepo,
		matchRepo:      matchRepo,
		cardEventRepo:  cardEventRepo,
		suspensionRepo: suspensionRepo,
		ids:            ids,
		now:            time.Now,
	}
}

// RecordCard appends one card event and recomputes the season's suspensions.
func (s *SuspensionService) RecordCard(ctx context.Context, input RecordCardInput) (discipline.CardEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.RecordCard")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.SeasonTeamID = strings.TrimSpace(input.SeasonTeamID)

	item, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return discipline.CardEvent{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return discipline.CardEvent{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}
	if !item.Involves(input.SeasonTeamID) {
		return discipline.CardEvent{}, fmt.Errorf("%w: team %s does not play in match %s", ErrInvalidInput, input.SeasonTeamID, input.MatchID)
	}

	eventID, err := s.ids.NewID()
	if err != nil {
		return discipline.CardEvent{}, fmt.Errorf("generate card event id: %w", err)
	}

	event := discipline.CardEvent{
		ID:           eventID,
		SeasonID:     item.SeasonID,
		MatchID:      input.MatchID,
		PlayerID:     input.PlayerID,
		SeasonTeamID: input.SeasonTeamID,
		Card:         input.Card,
		Minute:       input.Minute,
		RecordedAt:   s.now().UTC(),
	}
	if err := event.Validate(); err != nil {
		return discipline.CardEvent{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.cardEventRepo.Append(ctx, event); err != nil {
		return discipline.CardEvent{}, fmt.Errorf("append card event: %w", err)
	}

	if _, err := s.Recalculate(ctx, item.SeasonID); err != nil {
		return discipline.CardEvent{}, fmt.Errorf("recalculate after card: %w", err)
	}

	return event, nil
}

// Recalculate rebuilds the season's suspension rows from the full event log.
// Derived facts (trigger, reason, ban length) come from the fold; served
// progress observed on stored rows is reapplied so recomputation never loses
// or double-counts sat-out matches. Rows no longer derivable are cancelled.
// Manually issued suspensions are left alone.
func (s *SuspensionService) Recalculate(ctx context.Context, seasonID string) ([]discipline.Suspension, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.Recalculate")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	seasonItem, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	events, err := s.cardEventRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list card events: %w", err)
	}

	order, err := s.matchOrder(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	derived := discipline.BuildSuspensions(events, order, seasonItem.Rules)

	stored, err := s.suspensionRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list suspensions: %w", err)
	}
	storedByID := make(map[string]discipline.Suspension, len(stored))
	for _, item := range stored {
		storedByID[item.ID] = item
	}

	now := s.now().UTC()
	out := make([]discipline.Suspension, 0, len(derived))
	derivedIDs := make(map[string]struct{}, len(derived))
	for _, item := range derived {
		derivedIDs[item.ID] = struct{}{}

		if prev, ok := storedByID[item.ID]; ok {
			item.Version = prev.Version
			for _, matchID := range prev.ServedMatchIDs {
				item.MarkServed(matchID)
			}
			if prev.Status == discipline.StatusCancelled || prev.Status == discipline.StatusArchived {
				item.Status = prev.Status
			}
		}
		item.UpdatedAt = now

		if err := s.suspensionRepo.Upsert(ctx, item); err != nil {
			return nil, fmt.Errorf("upsert suspension: %w", err)
		}
		out = append(out, item)
	}

	for _, prev := range stored {
		if _, ok := derivedIDs[prev.ID]; ok {
			continue
		}
		if prev.Reason == discipline.ReasonOther {
			out = append(out, prev)
			continue
		}
		if prev.Status != discipline.StatusCancelled {
			prev.Status = discipline.StatusCancelled
			prev.UpdatedAt = now
			if err := s.suspensionRepo.Upsert(ctx, prev); err != nil {
				return nil, fmt.Errorf("cancel suspension: %w", err)
			}
		}
		out = append(out, prev)
	}

	return out, nil
}

// IssueManual records a suspension decided outside the card ledger, such as a
// disciplinary panel ruling. Manual rows survive recomputation untouched.
func (s *SuspensionService) IssueManual(ctx context.Context, seasonID, playerID, seasonTeamID string, matchesBanned int) (discipline.Suspension, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.IssueManual")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	playerID = strings.TrimSpace(playerID)
	seasonTeamID = strings.TrimSpace(seasonTeamID)
	if seasonID == "" || playerID == "" || seasonTeamID == "" {
		return discipline.Suspension{}, fmt.Errorf("%w: season, player and team ids are required", ErrInvalidInput)
	}
	if matchesBanned <= 0 {
		return discipline.Suspension{}, fmt.Errorf("%w: matches banned must be positive", ErrInvalidInput)
	}

	suspensionID, err := s.ids.NewID()
	if err != nil {
		return discipline.Suspension{}, fmt.Errorf("generate suspension id: %w", err)
	}

	item := discipline.Suspension{
		ID:            suspensionID,
		SeasonID:      seasonID,
		PlayerID:      playerID,
		SeasonTeamID:  seasonTeamID,
		Reason:        discipline.ReasonOther,
		MatchesBanned: matchesBanned,
		Status:        discipline.StatusActive,
		UpdatedAt:     s.now().UTC(),
	}
	if err := s.suspensionRepo.Upsert(ctx, item); err != nil {
		return discipline.Suspension{}, fmt.Errorf("upsert manual suspension: %w", err)
	}

	return item, nil
}

// MarkServed counts one completed match toward a suspension's ban. Calling it
// twice with the same match changes nothing.
func (s *SuspensionService) MarkServed(ctx context.Context, suspensionID, matchID string) (discipline.Suspension, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.MarkServed")
	defer span.End()

	suspensionID = strings.TrimSpace(suspensionID)
	matchID = strings.TrimSpace(matchID)
	if suspensionID == "" || matchID == "" {
		return discipline.Suspension{}, fmt.Errorf("%w: suspension and match ids are required", ErrInvalidInput)
	}

	item, exists, err := s.suspensionRepo.GetByID(ctx, suspensionID)
	if err != nil {
		return discipline.Suspension{}, fmt.Errorf("get suspension: %w", err)
	}
	if !exists {
		return discipline.Suspension{}, fmt.Errorf("%w: suspension=%s", ErrNotFound, suspensionID)
	}

	if !item.MarkServed(matchID) {
		return item, nil
	}
	item.UpdatedAt = s.now().UTC()

	if err := s.suspensionRepo.Update(ctx, item); err != nil {
		if errors.Is(err, storage.ErrVersionMismatch) {
			return discipline.Suspension{}, &ConflictError{Entity: "suspension", ID: suspensionID}
		}
		return discipline.Suspension{}, fmt.Errorf("update suspension: %w", err)
	}
	item.Version++

	return item, nil
}

// IsSuspended reports whether fielding playerID in atMatchID is barred. Only
// active suspensions triggered strictly before the queried match count; the
// triggering match itself already ejected the player and is never banned.
func (s *SuspensionService) IsSuspended(ctx context.Context, seasonID, playerID, atMatchID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.IsSuspended")
	defer span.End()

	suspended, err := s.SuspendedPlayers(ctx, seasonID, atMatchID)
	if err != nil {
		return false, err
	}
	return suspended[playerID], nil
}

// SuspendedPlayers resolves the set of players barred from atMatchID.
func (s *SuspensionService) SuspendedPlayers(ctx context.Context, seasonID, atMatchID string) (map[string]bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.SuspendedPlayers")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	atMatchID = strings.TrimSpace(atMatchID)
	if seasonID == "" || atMatchID == "" {
		return nil, fmt.Errorf("%w: season and match ids are required", ErrInvalidInput)
	}

	order, err := s.matchOrder(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	index := discipline.OrderIndex(order)
	at, ok := index[atMatchID]
	if !ok {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, atMatchID)
	}

	items, err := s.suspensionRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list suspensions: %w", err)
	}

	suspended := make(map[string]bool)
	for _, item := range items {
		if item.Status != discipline.StatusActive {
			continue
		}
		// Manual suspensions have no trigger match and apply immediately.
		if item.TriggerMatchID != "" {
			trigger, ok := index[item.TriggerMatchID]
			if !ok || trigger >= at {
				continue
			}
		}
		suspended[item.PlayerID] = true
	}

	return suspended, nil
}

// ApplyMatchPlayed counts a finished match as served for every suspension
// that barred a player of either side from it. It is safe to call again for
// the same match; MarkServed absorbs repeats per (suspension, match) pair.
func (s *SuspensionService) ApplyMatchPlayed(ctx context.Context, played match.Match) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.ApplyMatchPlayed")
	defer span.End()

	order, err := s.matchOrder(ctx, played.SeasonID)
	if err != nil {
		return err
	}
	index := discipline.OrderIndex(order)
	at, ok := index[played.ID]
	if !ok {
		return fmt.Errorf("%w: match=%s", ErrNotFound, played.ID)
	}

	items, err := s.suspensionRepo.ListBySeason(ctx, played.SeasonID)
	if err != nil {
		return fmt.Errorf("list suspensions: %w", err)
	}

	for _, item := range items {
		if item.Status != discipline.StatusActive || !played.Involves(item.SeasonTeamID) {
			continue
		}
		if item.TriggerMatchID != "" {
			trigger, ok := index[item.TriggerMatchID]
			if !ok || trigger >= at {
				continue
			}
		}
		if _, err := s.MarkServed(ctx, item.ID, played.ID); err != nil {
			return fmt.Errorf("mark served %s: %w", item.ID, err)
		}
	}

	return nil
}

// ListBySeason returns the season's suspension rows.
func (s *SuspensionService) ListBySeason(ctx context.Context, seasonID string) ([]discipline.Suspension, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuspensionService.ListBySeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	items, err := s.suspensionRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list suspensions: %w", err)
	}
	return items, nil
}

func (s *SuspensionService) matchOrder(ctx context.Context, seasonID string) ([]discipline.MatchRef, error) {
	matches, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	order := make([]discipline.MatchRef, 0, len(matches))
	for _, m := range matches {
		order = append(order, discipline.MatchRef{ID: m.ID, PlayedAt: m.ScheduledAt})
	}
	return order, nil
}
