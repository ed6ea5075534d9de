package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/match"
	"github.com/ligaops/competition-engine/internal/domain/registration"
	"github.com/ligaops/competition-engine/internal/domain/season"
	"github.com/ligaops/competition-engine/internal/domain/standing"
	"github.com/ligaops/competition-engine/internal/platform/cache"
)

// OverridePolicy tells a recompute what to do with administrative point
// adjustments already on the stored table.
type OverridePolicy string

const (
	PreserveOverrides OverridePolicy = "preserve"
	DiscardOverrides  OverridePolicy = "discard"
)

// StandingService owns the derived league table. The table is never patched
// in place: every recompute rebuilds it from eligible match results and swaps
// the stored season atomically.
type StandingService struct {
	seasonRepo       season.Repository
	registrationRepo registration.Repository
	matchRepo        match.Repository
	standingRepo     standing.Repository
	tables           *cache.Store
	now              func() time.Time
}

func NewStandingService(
	seasonRepo season.Repository,
	registrationRepo registration.Repository,
	matchRepo match.Repository,
	standingRepo standing.Repository,
	tables *cache.Store,
) *StandingService {
	return &StandingService{
		seasonRepo:       seasonRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		standingRepo:     standingRepo,
		tables:           tables,
		now:              time.Now,
	}
}

func tableCacheKey(seasonID string) string {
	return "standings:" + seasonID
}

// Recompute rebuilds the season table from every standings-eligible match.
// The override policy is explicit: preserved adjustments keep influencing the
// ranking, discarded ones disappear entirely.
func (s *StandingService) Recompute(ctx context.Context, seasonID string, mode standing.Mode, policy OverridePolicy) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Recompute")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if mode != standing.ModeLive && mode != standing.ModeFinal {
		return nil, fmt.Errorf("%w: unknown standings mode %q", ErrInvalidInput, mode)
	}
	if policy != PreserveOverrides && policy != DiscardOverrides {
		return nil, fmt.Errorf("%w: unknown override policy %q", ErrInvalidInput, policy)
	}

	seasonItem, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	teamIDs, err := s.approvedTeamIDs(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	var manualDeltas map[string]int
	if policy == PreserveOverrides {
		stored, err := s.standingRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, fmt.Errorf("list standings: %w", err)
		}
		manualDeltas = make(map[string]int)
		for _, row := range stored {
			if row.Adjusted {
				manualDeltas[row.SeasonTeamID] = row.ManualDelta
			}
		}
	}

	rows := standing.ComputeTable(seasonID, teamIDs, matches, mode, seasonItem.Rules.TieBreakSeed, manualDeltas)
	now := s.now().UTC()
	for i := range rows {
		rows[i].UpdatedAt = now
	}

	if err := s.standingRepo.ReplaceSeason(ctx, seasonID, rows); err != nil {
		return nil, fmt.Errorf("replace season standings: %w", err)
	}
	s.tables.Set(ctx, tableCacheKey(seasonID), rows)

	return rows, nil
}

// Table reads the current season table, serving repeat reads from the TTL
// cache until the next recompute refreshes it.
func (s *StandingService) Table(ctx context.Context, seasonID string) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Table")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	if cached, ok := s.tables.Get(ctx, tableCacheKey(seasonID)); ok {
		if rows, ok := cached.([]standing.Row); ok {
			return rows, nil
		}
	}

	rows, err := s.standingRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	s.tables.Set(ctx, tableCacheKey(seasonID), rows)

	return rows, nil
}

// AdjustTeam applies an administrative points delta to one team and rebuilds
// the table with the override preserved. The affected row stays flagged so
// later recomputes know an override exists.
func (s *StandingService) AdjustTeam(ctx context.Context, seasonID, seasonTeamID string, delta int) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.AdjustTeam")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	seasonTeamID = strings.TrimSpace(seasonTeamID)
	if seasonID == "" || seasonTeamID == "" {
		return nil, fmt.Errorf("%w: season and team ids are required", ErrInvalidInput)
	}
	if delta == 0 {
		return nil, fmt.Errorf("%w: adjustment delta cannot be zero", ErrInvalidInput)
	}

	row, exists, err := s.standingRepo.GetBySeasonTeam(ctx, seasonID, seasonTeamID)
	if err != nil {
		return nil, fmt.Errorf("get standing row: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: standings row for team=%s", ErrNotFound, seasonTeamID)
	}

	row.ManualDelta += delta
	row.Adjusted = true
	row.UpdatedAt = s.now().UTC()
	if err := s.standingRepo.Upsert(ctx, row); err != nil {
		return nil, fmt.Errorf("upsert standing row: %w", err)
	}

	return s.Recompute(ctx, seasonID, standing.ModeLive, PreserveOverrides)
}

// ResetTeam removes a team's administrative override and rebuilds the table.
func (s *StandingService) ResetTeam(ctx context.Context, seasonID, seasonTeamID string) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ResetTeam")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	seasonTeamID = strings.TrimSpace(seasonTeamID)
	if seasonID == "" || seasonTeamID == "" {
		return nil, fmt.Errorf("%w: season and team ids are required", ErrInvalidInput)
	}

	row, exists, err := s.standingRepo.GetBySeasonTeam(ctx, seasonID, seasonTeamID)
	if err != nil {
		return nil, fmt.Errorf("get standing row: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: standings row for team=%s", ErrNotFound, seasonTeamID)
	}

	row.ManualDelta = 0
	row.Adjusted = false
	row.UpdatedAt = s.now().UTC()
	if err := s.standingRepo.Upsert(ctx, row); err != nil {
		return nil, fmt.Errorf("upsert standing row: %w", err)
	}

	return s.Recompute(ctx, seasonID, standing.ModeLive, PreserveOverrides)
}

func (s *StandingService) approvedTeamIDs(ctx context.Context, seasonID string) ([]string, error) {
	registrations, err := s.registrationRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	teamIDs := make([]string, 0, len(registrations))
	for _, item := range registrations {
		if item.Status == registration.StatusApproved {
			teamIDs = append(teamIDs, item.TeamID)
		}
	}
	return teamIDs, nil
}
