package season

import (
	"fmt"
	"time"
)

// Season is one edition of the competition with its own team list, rules and schedule.
type Season struct {
	ID                string
	Name              string
	RequiredTeamCount int
	Rules             Rules
	StartsAt          time.Time
	EndsAt            time.Time
}

// Rules stores the disciplinary and lineup parameters for one season.
// Components receive Rules explicitly so that every recomputation is
// reproducible from (events, rules) alone.
type Rules struct {
	// YellowThreshold is the accumulated yellow card count that triggers a ban.
	YellowThreshold int
	// YellowBan is the number of matches banned on yellow accumulation.
	YellowBan int
	// RedCardBan is the number of matches banned on a straight red card
	// or a second yellow in the same match.
	RedCardBan int
	// MaxForeignStarters caps foreign-status players among the eleven starters.
	MaxForeignStarters int
	// MaxSubstitutes caps the bench size of a matchday squad.
	MaxSubstitutes int
	// TieBreakSeed feeds the deterministic drawing-of-lots tie break.
	// It is recorded season configuration, never wall-clock randomness.
	TieBreakSeed int64
}

func DefaultRules() Rules {
	return Rules{
		YellowThreshold:    2,
		YellowBan:          1,
		RedCardBan:         2,
		MaxForeignStarters: 5,
		MaxSubstitutes:     5,
		TieBreakSeed:       1,
	}
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.RequiredTeamCount <= 1 {
		return fmt.Errorf("season required team count must be at least 2")
	}
	return s.Rules.Validate()
}

func (r Rules) Validate() error {
	if r.YellowThreshold < 2 {
		return fmt.Errorf("yellow threshold must be at least 2")
	}
	if r.YellowBan <= 0 || r.RedCardBan <= 0 {
		return fmt.Errorf("ban lengths must be positive")
	}
	if r.MaxForeignStarters < 0 {
		return fmt.Errorf("max foreign starters cannot be negative")
	}
	if r.MaxSubstitutes < 1 {
		return fmt.Errorf("max substitutes must be at least 1")
	}
	return nil
}
