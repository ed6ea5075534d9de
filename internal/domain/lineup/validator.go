package lineup

import (
	"fmt"

	"github.com/ligaops/competition-engine/internal/domain/roster"
	"github.com/ligaops/competition-engine/internal/domain/season"
)

// StarterCount is the fixed size of a starting eleven.
const StarterCount = 11

// ViolationKind is a stable, machine-readable lineup violation code.
type ViolationKind string

const (
	ViolationStarterCount    ViolationKind = "STARTER_COUNT"
	ViolationSubstituteCount ViolationKind = "SUBSTITUTE_COUNT"
	ViolationDuplicatePlayer ViolationKind = "DUPLICATE_PLAYER"
	ViolationBenchOverlap    ViolationKind = "BENCH_OVERLAP"
	ViolationForeignLimit    ViolationKind = "FOREIGN_LIMIT"
	ViolationSuspended       ViolationKind = "SUSPENDED_PLAYER"
	ViolationNotInRoster     ViolationKind = "NOT_IN_ROSTER"
)

// Violation is one broken composition rule, with the offending player when
// the rule is player-scoped.
type Violation struct {
	Kind     ViolationKind
	PlayerID string
	Message  string
}

// Result carries every violation found so callers can report all problems
// at once instead of fixing them one by one.
type Result struct {
	Valid      bool
	Violations []Violation
}

// ValidateSquad checks a proposed squad against composition rules, the
// approved season roster and the suspension set. It is a pure function: it
// accumulates violations and never mutates its inputs.
func ValidateSquad(
	squad Squad,
	rosterPlayers []roster.Player,
	suspended map[string]bool,
	rules season.Rules,
) Result {
	var violations []Violation

	if len(squad.Starters) != StarterCount {
		violations = append(violations, Violation{
			Kind:    ViolationStarterCount,
			Message: fmt.Sprintf("lineup must name exactly %d starters, got %d", StarterCount, len(squad.Starters)),
		})
	}
	if len(squad.Substitutes) < 1 || len(squad.Substitutes) > rules.MaxSubstitutes {
		violations = append(violations, Violation{
			Kind:    ViolationSubstituteCount,
			Message: fmt.Sprintf("bench must have between 1 and %d players, got %d", rules.MaxSubstitutes, len(squad.Substitutes)),
		})
	}

	starterSet := make(map[string]struct{}, len(squad.Starters))
	for _, id := range squad.Starters {
		if _, dup := starterSet[id]; dup {
			violations = append(violations, Violation{
				Kind:     ViolationDuplicatePlayer,
				PlayerID: id,
				Message:  fmt.Sprintf("player %s is named twice among starters", id),
			})
			continue
		}
		starterSet[id] = struct{}{}
	}

	benchSet := make(map[string]struct{}, len(squad.Substitutes))
	for _, id := range squad.Substitutes {
		if _, dup := benchSet[id]; dup {
			violations = append(violations, Violation{
				Kind:     ViolationDuplicatePlayer,
				PlayerID: id,
				Message:  fmt.Sprintf("player %s is named twice on the bench", id),
			})
			continue
		}
		benchSet[id] = struct{}{}
		if _, overlap := starterSet[id]; overlap {
			violations = append(violations, Violation{
				Kind:     ViolationBenchOverlap,
				PlayerID: id,
				Message:  fmt.Sprintf("player %s cannot start and sit on the bench", id),
			})
		}
	}

	byID := make(map[string]roster.Player, len(rosterPlayers))
	for _, p := range rosterPlayers {
		byID[p.ID] = p
	}

	foreignStarters := 0
	for _, id := range squad.Starters {
		p, ok := byID[id]
		if !ok {
			violations = append(violations, Violation{
				Kind:     ViolationNotInRoster,
				PlayerID: id,
				Message:  fmt.Sprintf("player %s is not on the approved season roster", id),
			})
			continue
		}
		if p.Foreign {
			foreignStarters++
		}
	}
	if foreignStarters > rules.MaxForeignStarters {
		violations = append(violations, Violation{
			Kind:    ViolationForeignLimit,
			Message: fmt.Sprintf("at most %d foreign players may start, got %d", rules.MaxForeignStarters, foreignStarters),
		})
	}

	for _, id := range squad.Substitutes {
		if _, ok := byID[id]; !ok {
			violations = append(violations, Violation{
				Kind:     ViolationNotInRoster,
				PlayerID: id,
				Message:  fmt.Sprintf("player %s is not on the approved season roster", id),
			})
		}
	}

	for _, id := range append(append([]string(nil), squad.Starters...), squad.Substitutes...) {
		if suspended[id] {
			violations = append(violations, Violation{
				Kind:     ViolationSuspended,
				PlayerID: id,
				Message:  fmt.Sprintf("player %s is suspended for this match", id),
			})
		}
	}

	return Result{Valid: len(violations) == 0, Violations: violations}
}
