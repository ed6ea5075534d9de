package lineup

import (
	"fmt"
	"testing"

	"github.com/ligaops/competition-engine/internal/domain/roster"
	"github.com/ligaops/competition-engine/internal/domain/season"
)

func testRoster(size int, foreign int) []roster.Player {
	out := make([]roster.Player, 0, size)
	for i := 0; i < size; i++ {
		out = append(out, roster.Player{
			ID:           fmt.Sprintf("p%02d", i+1),
			SeasonID:     "s1",
			SeasonTeamID: "team-a",
			Foreign:      i < foreign,
		})
	}
	return out
}

func ids(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, fmt.Sprintf("p%02d", i))
	}
	return out
}

func hasViolation(res Result, kind ViolationKind) bool {
	for _, v := range res.Violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

func TestValidateSquad_Valid(t *testing.T) {
	res := ValidateSquad(
		Squad{Starters: ids(1, 11), Substitutes: ids(12, 16)},
		testRoster(18, 3),
		nil,
		season.DefaultRules(),
	)
	if !res.Valid {
		t.Fatalf("expected valid squad, got violations: %+v", res.Violations)
	}
}

func TestValidateSquad_TenStarters(t *testing.T) {
	res := ValidateSquad(
		Squad{Starters: ids(1, 10), Substitutes: ids(12, 16)},
		testRoster(18, 0),
		nil,
		season.DefaultRules(),
	)
	if res.Valid {
		t.Fatal("expected invalid squad")
	}
	if !hasViolation(res, ViolationStarterCount) {
		t.Fatalf("expected starter count violation, got %+v", res.Violations)
	}
}

func TestValidateSquad_AccumulatesAllViolations(t *testing.T) {
	starters := append(ids(1, 9), "p01")          // duplicate, only 10 named
	subs := append(ids(12, 16), "p02")            // six on the bench
	suspended := map[string]bool{"p03": true}     // suspended starter
	starters = append(starters, "p99")            // not on roster

	res := ValidateSquad(
		Squad{Starters: starters, Substitutes: subs},
		testRoster(18, 0),
		suspended,
		season.DefaultRules(),
	)
	if res.Valid {
		t.Fatal("expected invalid squad")
	}
	for _, kind := range []ViolationKind{
		ViolationDuplicatePlayer,
		ViolationSubstituteCount,
		ViolationSuspended,
		ViolationNotInRoster,
	} {
		if !hasViolation(res, kind) {
			t.Fatalf("expected %s violation, got %+v", kind, res.Violations)
		}
	}
}

func TestValidateSquad_BenchOverlap(t *testing.T) {
	subs := append(ids(12, 15), "p01")
	res := ValidateSquad(
		Squad{Starters: ids(1, 11), Substitutes: subs},
		testRoster(18, 0),
		nil,
		season.DefaultRules(),
	)
	if !hasViolation(res, ViolationBenchOverlap) {
		t.Fatalf("expected bench overlap violation, got %+v", res.Violations)
	}
}

func TestValidateSquad_ForeignStarterCap(t *testing.T) {
	res := ValidateSquad(
		Squad{Starters: ids(1, 11), Substitutes: ids(12, 16)},
		testRoster(18, 6),
		nil,
		season.DefaultRules(),
	)
	if !hasViolation(res, ViolationForeignLimit) {
		t.Fatalf("expected foreign limit violation, got %+v", res.Violations)
	}

	res = ValidateSquad(
		Squad{Starters: ids(1, 11), Substitutes: ids(12, 16)},
		testRoster(18, 5),
		nil,
		season.DefaultRules(),
	)
	if hasViolation(res, ViolationForeignLimit) {
		t.Fatalf("five foreign starters must be allowed, got %+v", res.Violations)
	}
}

func TestValidateSquad_SuspendedSubstitute(t *testing.T) {
	res := ValidateSquad(
		Squad{Starters: ids(1, 11), Substitutes: ids(12, 16)},
		testRoster(18, 0),
		map[string]bool{"p14": true},
		season.DefaultRules(),
	)
	if !hasViolation(res, ViolationSuspended) {
		t.Fatalf("expected suspended violation for bench player, got %+v", res.Violations)
	}
}
