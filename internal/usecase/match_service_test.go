package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/discipline"
	"github.com/ligaops/competition-engine/internal/domain/lineup"
	"github.com/ligaops/competition-engine/internal/domain/match"
	"github.com/ligaops/competition-engine/internal/infrastructure/repository/memory"
)

type stubOfficials struct {
	assignments map[string]OfficialsAssignment
	err         error
}

func (s *stubOfficials) AssignmentStatus(_ context.Context, matchID string) (OfficialsAssignment, error) {
	if s.err != nil {
		return OfficialsAssignment{}, s.err
	}
	return s.assignments[matchID], nil
}

type matchFixture struct {
	service     *MatchService
	suspensions *SuspensionService
	lineupRepo  *memory.LineupRepository
	matchRepo   *memory.MatchRepository
	officials   *stubOfficials
}

func newMatchFixture(t *testing.T) matchFixture {
	t.Helper()

	kickoff := time.Date(2025, time.September, 6, 15, 30, 0, 0, time.UTC)
	matches := []match.Match{
		{ID: "m1", SeasonID: memory.SeasonIDLiga1Indonesia, HomeTeamID: memory.TeamIDPersija, AwayTeamID: memory.TeamIDPersib, Status: match.StatusScheduled, ScheduledAt: kickoff},
		{ID: "m2", SeasonID: memory.SeasonIDLiga1Indonesia, HomeTeamID: memory.TeamIDPersib, AwayTeamID: memory.TeamIDPersija, Status: match.StatusScheduled, ScheduledAt: kickoff.AddDate(0, 0, 7)},
	}

	seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons())
	matchRepo := memory.NewMatchRepository(matches)
	lineupRepo := memory.NewLineupRepository()
	officials := &stubOfficials{assignments: map[string]OfficialsAssignment{}}

	suspensions := NewSuspensionService(
		seasonRepo,
		matchRepo,
		memory.NewCardEventRepository(),
		memory.NewSuspensionRepository(),
		&sequenceIDGenerator{prefix: "evt-"},
	)
	service := NewMatchService(
		seasonRepo,
		matchRepo,
		lineupRepo,
		officials,
		suspensions,
		&sequenceIDGenerator{prefix: "match-"},
	)
	return matchFixture{
		service:     service,
		suspensions: suspensions,
		lineupRepo:  lineupRepo,
		matchRepo:   matchRepo,
		officials:   officials,
	}
}

func (f matchFixture) approveLineup(t *testing.T, matchID string, side lineup.Side) {
	t.Helper()
	item, exists, err := f.lineupRepo.GetByMatchAndSide(t.Context(), matchID, side)
	if err != nil || !exists {
		t.Fatalf("lineup row missing for %s/%s: exists=%v err=%v", matchID, side, exists, err)
	}
	item.Status = lineup.StatusApproved
	if err := f.lineupRepo.Update(t.Context(), item); err != nil {
		t.Fatalf("approve lineup failed: %v", err)
	}
}

func TestMatchService_ScheduleRejectsSelfPlay(t *testing.T) {
	f := newMatchFixture(t)

	_, err := f.service.Schedule(t.Context(), ScheduleMatchInput{
		SeasonID:    memory.SeasonIDLiga1Indonesia,
		HomeTeamID:  memory.TeamIDPersija,
		AwayTeamID:  memory.TeamIDPersija,
		ScheduledAt: time.Now(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestMatchService_BeginPreparationSeedsBothLineups(t *testing.T) {
	f := newMatchFixture(t)

	item, err := f.service.BeginPreparation(t.Context(), "m1")
	if err != nil {
		t.Fatalf("begin preparation failed: %v", err)
	}
	if item.Status != match.StatusPreparing {
		t.Fatalf("expected PREPARING, got %s", item.Status)
	}

	rows, err := f.lineupRepo.ListByMatch(t.Context(), "m1")
	if err != nil {
		t.Fatalf("list lineups failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two seeded lineup rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Status != lineup.StatusPending {
			t.Fatalf("seeded row must be PENDING, got %s", row.Status)
		}
	}
}

func TestMatchService_MarkReadyCollectsMissingConditions(t *testing.T) {
	f := newMatchFixture(t)

	if _, err := f.service.BeginPreparation(t.Context(), "m1"); err != nil {
		t.Fatalf("begin preparation failed: %v", err)
	}
	f.approveLineup(t, "m1", lineup.SideHome)

	_, err := f.service.MarkReady(t.Context(), "m1")
	if !errors.Is(err, ErrPreconditionNotMet) {
		t.Fatalf("expected precondition failure, got %v", err)
	}

	var preconditionErr *PreconditionError
	if !errors.As(err, &preconditionErr) {
		t.Fatalf("expected typed precondition error, got %T", err)
	}
	msg := strings.Join(preconditionErr.Missing, "; ")
	if !strings.Contains(msg, "away lineup not approved") {
		t.Fatalf("expected away lineup condition, got %q", msg)
	}
	if !strings.Contains(msg, "officials assignment incomplete") {
		t.Fatalf("expected officials condition, got %q", msg)
	}

	stored, _, err := f.matchRepo.GetByID(t.Context(), "m1")
	if err != nil {
		t.Fatalf("get match failed: %v", err)
	}
	if stored.Status != match.StatusPreparing {
		t.Fatalf("failed guard must leave the match in PREPARING, got %s", stored.Status)
	}
}

func TestMatchService_FullLifecycle(t *testing.T) {
	f := newMatchFixture(t)
	f.officials.assignments["m1"] = OfficialsAssignment{OfficialsComplete: true}

	if _, err := f.service.BeginPreparation(t.Context(), "m1"); err != nil {
		t.Fatalf("begin preparation failed: %v", err)
	}
	f.approveLineup(t, "m1", lineup.SideHome)
	f.approveLineup(t, "m1", lineup.SideAway)

	ready, err := f.service.MarkReady(t.Context(), "m1")
	if err != nil {
		t.Fatalf("mark ready failed: %v", err)
	}
	if ready.Status != match.StatusReady || !ready.OfficialsComplete {
		t.Fatalf("unexpected ready match: %+v", ready)
	}

	if _, err := f.service.Kickoff(t.Context(), "m1"); err != nil {
		t.Fatalf("kickoff failed: %v", err)
	}

	finished, err := f.service.Finish(t.Context(), "m1", 2, 1)
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if finished.Status != match.StatusFinished || !finished.StandingsEligible {
		t.Fatalf("unexpected finished match: %+v", finished)
	}
	if finished.HomeGoals != 2 || finished.AwayGoals != 1 {
		t.Fatalf("score not recorded: %d-%d", finished.HomeGoals, finished.AwayGoals)
	}

	// Reports still outstanding.
	if _, err := f.service.Report(t.Context(), "m1"); !errors.Is(err, ErrPreconditionNotMet) {
		t.Fatalf("expected report precondition failure, got %v", err)
	}

	f.officials.assignments["m1"] = OfficialsAssignment{
		OfficialsComplete:         true,
		RefereeReportSubmitted:    true,
		SupervisorReportSubmitted: true,
	}
	if _, err := f.service.Report(t.Context(), "m1"); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	completed, err := f.service.Complete(t.Context(), "m1")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != match.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", completed.Status)
	}
}

func TestMatchService_LifecycleNeverRegresses(t *testing.T) {
	f := newMatchFixture(t)

	if _, err := f.service.BeginPreparation(t.Context(), "m1"); err != nil {
		t.Fatalf("begin preparation failed: %v", err)
	}
	if _, err := f.service.Finish(t.Context(), "m1", 1, 0); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("finish from PREPARING must be rejected, got %v", err)
	}
	if _, err := f.service.BeginPreparation(t.Context(), "m1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("repeat begin preparation must be rejected, got %v", err)
	}
}

func TestMatchService_FinishMarksSuspensionsServed(t *testing.T) {
	f := newMatchFixture(t)
	f.officials.assignments["m2"] = OfficialsAssignment{OfficialsComplete: true}

	// A red card in the first fixture suspends a Persija player.
	if _, err := f.service.BeginPreparation(t.Context(), "m1"); err != nil {
		t.Fatalf("begin preparation failed: %v", err)
	}
	if _, err := f.suspensions.RecordCard(t.Context(), RecordCardInput{
		MatchID:      "m1",
		PlayerID:     "psj-04",
		SeasonTeamID: memory.TeamIDPersija,
		Card:         discipline.CardRed,
		Minute:       71,
	}); err != nil {
		t.Fatalf("record card failed: %v", err)
	}

	// Play the next fixture involving the suspended player's team.
	if _, err := f.service.BeginPreparation(t.Context(), "m2"); err != nil {
		t.Fatalf("begin preparation m2 failed: %v", err)
	}
	f.approveLineup(t, "m2", lineup.SideHome)
	f.approveLineup(t, "m2", lineup.SideAway)
	if _, err := f.service.MarkReady(t.Context(), "m2"); err != nil {
		t.Fatalf("mark ready m2 failed: %v", err)
	}
	if _, err := f.service.Kickoff(t.Context(), "m2"); err != nil {
		t.Fatalf("kickoff m2 failed: %v", err)
	}
	if _, err := f.service.Finish(t.Context(), "m2", 0, 0); err != nil {
		t.Fatalf("finish m2 failed: %v", err)
	}

	items, err := f.suspensions.ListBySeason(t.Context(), memory.SeasonIDLiga1Indonesia)
	if err != nil {
		t.Fatalf("list suspensions failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one suspension, got %d", len(items))
	}
	if items[0].ServedMatches() != 1 || items[0].ServedMatchIDs[0] != "m2" {
		t.Fatalf("finish must count the match as served: %+v", items[0])
	}
}
