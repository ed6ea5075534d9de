package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/lineup"
	"github.com/ligaops/competition-engine/internal/domain/match"
	"github.com/ligaops/competition-engine/internal/domain/roster"
	"github.com/ligaops/competition-engine/internal/infrastructure/repository/memory"
)

type stubSuspensions struct {
	suspended map[string]bool
}

func (s stubSuspensions) SuspendedPlayers(_ context.Context, _, _ string) (map[string]bool, error) {
	return s.suspended, nil
}

func testRoster(seasonID, teamID, prefix string, total, foreign int) []roster.Player {
	players := make([]roster.Player, 0, total)
	for i := 0; i < total; i++ {
		players = append(players, roster.Player{
			ID:           fmt.Sprintf("%s-%02d", prefix, i+1),
			SeasonID:     seasonID,
			SeasonTeamID: teamID,
			Name:         fmt.Sprintf("Player %s %d", prefix, i+1),
			ShirtNumber:  i + 1,
			Foreign:      i < foreign,
		})
	}
	return players
}

func playerIDs(players []roster.Player, from, to int) []string {
	ids := make([]string, 0, to-from)
	for _, p := range players[from:to] {
		ids = append(ids, p.ID)
	}
	return ids
}

type lineupFixture struct {
	service    *LineupService
	matchRepo  *memory.MatchRepository
	lineupRepo *memory.LineupRepository
	roster     []roster.Player
}

func newLineupFixture(t *testing.T, suspended map[string]bool) lineupFixture {
	t.Helper()

	players := testRoster(memory.SeasonIDLiga1Indonesia, memory.TeamIDPersija, "psj", 18, 4)
	matchRepo := memory.NewMatchRepository([]match.Match{{
		ID:          "m1",
		SeasonID:    memory.SeasonIDLiga1Indonesia,
		HomeTeamID:  memory.TeamIDPersija,
		AwayTeamID:  memory.TeamIDPersib,
		Status:      match.StatusPreparing,
		ScheduledAt: time.Date(2025, time.September, 6, 15, 30, 0, 0, time.UTC),
	}})

	lineupRepo := memory.NewLineupRepository()
	for _, seed := range []struct {
		side   lineup.Side
		teamID string
	}{
		{side: lineup.SideHome, teamID: memory.TeamIDPersija},
		{side: lineup.SideAway, teamID: memory.TeamIDPersib},
	} {
		if err := lineupRepo.Create(t.Context(), lineup.Submission{
			MatchID:      "m1",
			Side:         seed.side,
			SeasonTeamID: seed.teamID,
			Status:       lineup.StatusPending,
		}); err != nil {
			t.Fatalf("seed lineup failed: %v", err)
		}
	}

	service := NewLineupService(
		memory.NewSeasonRepository(memory.SeedSeasons()),
		matchRepo,
		lineupRepo,
		memory.NewRosterRepository(players),
		stubSuspensions{suspended: suspended},
	)
	return lineupFixture{service: service, matchRepo: matchRepo, lineupRepo: lineupRepo, roster: players}
}

func (f lineupFixture) validSquad() lineup.Squad {
	return lineup.Squad{
		Starters:    playerIDs(f.roster, 0, 11),
		Substitutes: playerIDs(f.roster, 11, 16),
		Formation:   "4-3-3",
		KitType:     "home",
	}
}

func TestLineupService_SubmitValidSquad(t *testing.T) {
	f := newLineupFixture(t, nil)

	submitted, err := f.service.Submit(t.Context(), "m1", lineup.SideHome, f.validSquad())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Status != lineup.StatusSubmitted {
		t.Fatalf("expected SUBMITTED, got %s", submitted.Status)
	}
	if len(submitted.Starters) != 11 || len(submitted.Substitutes) != 5 {
		t.Fatalf("squad not stored: %d starters, %d subs", len(submitted.Starters), len(submitted.Substitutes))
	}
}

func TestLineupService_SubmitTenStartersLeavesStatusUntouched(t *testing.T) {
	f := newLineupFixture(t, nil)

	squad := f.validSquad()
	squad.Starters = squad.Starters[:10]

	_, err := f.service.Submit(t.Context(), "m1", lineup.SideHome, squad)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected typed validation error, got %T", err)
	}
	found := false
	for _, v := range validationErr.Violations {
		if v.Kind == lineup.ViolationStarterCount {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected starter count violation, got %+v", validationErr.Violations)
	}

	stored, _, err := f.lineupRepo.GetByMatchAndSide(t.Context(), "m1", lineup.SideHome)
	if err != nil {
		t.Fatalf("get lineup failed: %v", err)
	}
	if stored.Status != lineup.StatusPending || len(stored.Starters) != 0 {
		t.Fatalf("failed submission must not mutate the stored row: %+v", stored)
	}
}

func TestLineupService_SubmitCollectsAllViolations(t *testing.T) {
	f := newLineupFixture(t, map[string]bool{"psj-01": true})

	squad := f.validSquad()
	squad.Starters = append(squad.Starters[:10], "ghost-99")
	squad.Substitutes[0] = squad.Starters[1]

	_, err := f.service.Submit(t.Context(), "m1", lineup.SideHome, squad)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	kinds := make(map[lineup.ViolationKind]bool)
	for _, v := range validationErr.Violations {
		kinds[v.Kind] = true
	}
	for _, want := range []lineup.ViolationKind{
		lineup.ViolationNotInRoster,
		lineup.ViolationBenchOverlap,
		lineup.ViolationSuspended,
	} {
		if !kinds[want] {
			t.Fatalf("missing %s violation in %+v", want, validationErr.Violations)
		}
	}
}

func TestLineupService_ReviewRejectThenResubmit(t *testing.T) {
	f := newLineupFixture(t, nil)

	if _, err := f.service.Submit(t.Context(), "m1", lineup.SideHome, f.validSquad()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := f.service.Review(t.Context(), "m1", lineup.SideHome, LineupReviewReject, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rejection without reason must fail, got %v", err)
	}

	rejected, err := f.service.Review(t.Context(), "m1", lineup.SideHome, LineupReviewReject, "kit clash with away side")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != lineup.StatusRejected || rejected.RejectionReason == "" {
		t.Fatalf("unexpected rejected row: %+v", rejected)
	}

	resubmitted, err := f.service.Submit(t.Context(), "m1", lineup.SideHome, f.validSquad())
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if resubmitted.Status != lineup.StatusSubmitted || resubmitted.RejectionReason != "" {
		t.Fatalf("resubmission must clear the rejection reason: %+v", resubmitted)
	}

	approved, err := f.service.Review(t.Context(), "m1", lineup.SideHome, LineupReviewApprove, "")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != lineup.StatusApproved || approved.RejectionReason != "" {
		t.Fatalf("unexpected approved row: %+v", approved)
	}
}

func TestLineupService_SidesAreIndependent(t *testing.T) {
	f := newLineupFixture(t, nil)

	if _, err := f.service.Submit(t.Context(), "m1", lineup.SideHome, f.validSquad()); err != nil {
		t.Fatalf("home submit failed: %v", err)
	}

	away, _, err := f.lineupRepo.GetByMatchAndSide(t.Context(), "m1", lineup.SideAway)
	if err != nil {
		t.Fatalf("get away lineup failed: %v", err)
	}
	if away.Status != lineup.StatusPending {
		t.Fatalf("away track must be untouched by home submission, got %s", away.Status)
	}
}

func TestLineupService_UnlockOnlyWhilePreparing(t *testing.T) {
	f := newLineupFixture(t, nil)

	if _, err := f.service.Submit(t.Context(), "m1", lineup.SideHome, f.validSquad()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := f.service.Review(t.Context(), "m1", lineup.SideHome, LineupReviewApprove, ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	unlocked, err := f.service.Unlock(t.Context(), "m1", lineup.SideHome)
	if err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if unlocked.Status != lineup.StatusSubmitted {
		t.Fatalf("expected SUBMITTED after unlock, got %s", unlocked.Status)
	}
	if _, err := f.service.Review(t.Context(), "m1", lineup.SideHome, LineupReviewApprove, ""); err != nil {
		t.Fatalf("re-approve failed: %v", err)
	}

	// Freeze the match; lineups must not change afterwards.
	stored, _, err := f.matchRepo.GetByID(t.Context(), "m1")
	if err != nil {
		t.Fatalf("get match failed: %v", err)
	}
	stored.Status = match.StatusReady
	if err := f.matchRepo.Update(t.Context(), stored); err != nil {
		t.Fatalf("update match failed: %v", err)
	}

	if _, err := f.service.Unlock(t.Context(), "m1", lineup.SideHome); !errors.Is(err, ErrPreconditionNotMet) {
		t.Fatalf("unlock after READY must fail the guard, got %v", err)
	}
}
