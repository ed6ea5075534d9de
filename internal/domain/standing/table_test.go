package standing

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/ligaops/competition-engine/internal/domain/match"
)

func finished(id, home, away string, homeGoals, awayGoals int) match.Match {
	return match.Match{
		ID:         id,
		SeasonID:   "s1",
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     match.StatusFinished,
		HomeGoals:  homeGoals,
		AwayGoals:  awayGoals,
	}
}

func rankOf(t *testing.T, rows []Row, teamID string) int {
	t.Helper()
	for _, row := range rows {
		if row.SeasonTeamID == teamID {
			return row.Rank
		}
	}
	t.Fatalf("team %s not in table", teamID)
	return 0
}

func TestComputeTable_BasicAggregation(t *testing.T) {
	teams := []string{"a", "b", "c"}
	matches := []match.Match{
		finished("m1", "a", "b", 2, 0),
		finished("m2", "b", "c", 1, 1),
		finished("m3", "c", "a", 0, 3),
	}

	rows := ComputeTable("s1", teams, matches, ModeLive, 1, nil)

	if rows[0].SeasonTeamID != "a" || rows[0].Points != 6 || rows[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[0].GoalsFor != 5 || rows[0].GoalsAgainst != 0 {
		t.Fatalf("unexpected leader goals: %+v", rows[0])
	}
	if rankOf(t, rows, "b") != 2 || rankOf(t, rows, "c") != 3 {
		t.Fatalf("unexpected order: %+v", rows)
	}
	for _, row := range rows {
		if row.Played != 2 {
			t.Fatalf("every team played twice, got %+v", row)
		}
	}
}

func TestComputeTable_IgnoresMatchesNotCounting(t *testing.T) {
	teams := []string{"a", "b"}
	scheduled := finished("m1", "a", "b", 4, 0)
	scheduled.Status = match.StatusScheduled
	inProgress := finished("m2", "a", "b", 4, 0)
	inProgress.Status = match.StatusInProgress

	rows := ComputeTable("s1", teams, []match.Match{scheduled, inProgress}, ModeLive, 1, nil)
	for _, row := range rows {
		if row.Played != 0 || row.Points != 0 {
			t.Fatalf("unplayed match counted: %+v", row)
		}
	}
}

func TestComputeTable_CountsReportedAndCompleted(t *testing.T) {
	teams := []string{"a", "b", "c"}
	reported := finished("m1", "a", "b", 1, 0)
	reported.Status = match.StatusReported
	completed := finished("m2", "a", "c", 1, 0)
	completed.Status = match.StatusCompleted

	rows := ComputeTable("s1", teams, []match.Match{reported, completed}, ModeLive, 1, nil)
	if rankOf(t, rows, "a") != 1 {
		t.Fatalf("expected a on top: %+v", rows)
	}
	if rows[0].Played != 2 || rows[0].Points != 6 {
		t.Fatalf("reported/completed matches must count: %+v", rows[0])
	}
}

func TestComputeTable_OrderIndependent(t *testing.T) {
	teams := []string{"a", "b", "c", "d"}
	matches := []match.Match{
		finished("m1", "a", "b", 2, 1),
		finished("m2", "c", "d", 0, 0),
		finished("m3", "a", "c", 1, 3),
		finished("m4", "b", "d", 2, 2),
		finished("m5", "d", "a", 1, 1),
		finished("m6", "b", "c", 0, 1),
	}

	want := ComputeTable("s1", teams, matches, ModeFinal, 42, nil)
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := make([]match.Match, len(matches))
		copy(shuffled, matches)
		r.Shuffle(len(shuffled), func(x, y int) { shuffled[x], shuffled[y] = shuffled[y], shuffled[x] })

		got := ComputeTable("s1", teams, shuffled, ModeFinal, 42, nil)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("match order changed the table:\n got=%+v\nwant=%+v", got, want)
		}
	}
}

func TestComputeTable_FinalModeHeadToHead(t *testing.T) {
	teams := []string{"a", "b", "c", "d"}
	// a and b finish level on points (6), goal difference (+2) and goals
	// scored (6), but b wins the head-to-head aggregate 4-3.
	matches := []match.Match{
		finished("m1", "a", "b", 1, 3),
		finished("m2", "b", "a", 1, 2),
		finished("m3", "a", "c", 3, 0),
		finished("m4", "b", "d", 2, 1),
	}

	live := ComputeTable("s1", teams, matches, ModeLive, 9, nil)
	if !sameBaseKeys(live[0], live[1]) {
		t.Fatalf("fixture no longer produces a base-key tie: %+v", live[:2])
	}

	rows := ComputeTable("s1", teams, matches, ModeFinal, 9, nil)
	if rankOf(t, rows, "b") != 1 || rankOf(t, rows, "a") != 2 {
		t.Fatalf("head-to-head must put b above a: %+v", rows)
	}
}

func TestComputeTable_FinalModeLotIsDeterministic(t *testing.T) {
	teams := []string{"a", "b"}
	// Two drawn mutual meetings: nothing separates the teams, the seeded lot
	// decides.
	matches := []match.Match{
		finished("m1", "a", "b", 1, 1),
		finished("m2", "b", "a", 2, 2),
	}

	first := ComputeTable("s1", teams, matches, ModeFinal, 1234, nil)
	for i := 0; i < 5; i++ {
		again := ComputeTable("s1", teams, matches, ModeFinal, 1234, nil)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("seeded lot must be reproducible:\nfirst=%+v\nagain=%+v", first, again)
		}
	}

	otherSeed := ComputeTable("s1", teams, matches, ModeFinal, 4321, nil)
	if len(otherSeed) != 2 {
		t.Fatalf("unexpected table size: %+v", otherSeed)
	}
}

func TestComputeTable_ManualDeltasRankAndFlag(t *testing.T) {
	teams := []string{"a", "b"}
	matches := []match.Match{finished("m1", "a", "b", 2, 0)}

	rows := ComputeTable("s1", teams, matches, ModeLive, 1, map[string]int{"b": 6})
	if rankOf(t, rows, "b") != 1 {
		t.Fatalf("manual delta must affect ranking: %+v", rows)
	}
	top := rows[0]
	if !top.Adjusted || top.ManualDelta != 6 || top.TotalPoints() != 6 {
		t.Fatalf("override not reflected: %+v", top)
	}
	if rows[1].Adjusted {
		t.Fatalf("untouched row flagged adjusted: %+v", rows[1])
	}
}
