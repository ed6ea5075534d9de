package discipline

import (
	"fmt"
	"time"
)

// CardType is the kind of disciplinary card shown to a player.
type CardType string

const (
	CardYellow CardType = "yellow"
	CardRed    CardType = "red"
)

// Reason explains why a suspension exists.
type Reason string

const (
	ReasonRedCard        Reason = "RED_CARD"
	ReasonTwoYellowCards Reason = "TWO_YELLOW_CARDS"
	ReasonAccumulation   Reason = "ACCUMULATION"
	ReasonOther          Reason = "OTHER"
)

// Status is the lifecycle state of a suspension.
type Status string

const (
	StatusActive    Status = "active"
	StatusServed    Status = "served"
	StatusCancelled Status = "cancelled"
	StatusArchived  Status = "archived"
)

// CardEvent is one card shown in one match. Events are immutable once
// recorded; they are the append-only input to the suspension ledger.
type CardEvent struct {
	ID           string
	SeasonID     string
	MatchID      string
	PlayerID     string
	SeasonTeamID string
	Card         CardType
	Minute       int
	RecordedAt   time.Time
}

func (e CardEvent) Validate() error {
	if e.SeasonID == "" || e.MatchID == "" || e.PlayerID == "" || e.SeasonTeamID == "" {
		return fmt.Errorf("card event requires season, match, player and team ids")
	}
	if e.Card != CardYellow && e.Card != CardRed {
		return fmt.Errorf("unknown card type %q", e.Card)
	}
	if e.Minute < 0 {
		return fmt.Errorf("card minute cannot be negative")
	}
	return nil
}

// Suspension bans a player from being fielded for a number of upcoming
// matches. Rows are derived from card events; the identity is deterministic
// per (player, trigger match, reason) so recomputation is idempotent.
type Suspension struct {
	ID             string
	SeasonID       string
	PlayerID       string
	SeasonTeamID   string
	Reason         Reason
	MatchesBanned  int
	ServedMatchIDs []string
	Status         Status
	TriggerMatchID string
	Version        int64
	UpdatedAt      time.Time
}

// SuspensionID builds the deterministic identity of a derived suspension.
func SuspensionID(playerID, triggerMatchID string, reason Reason) string {
	return playerID + ":" + triggerMatchID + ":" + string(reason)
}

// ServedMatches reports how many matches of the ban have been sat out.
func (s Suspension) ServedMatches() int {
	return len(s.ServedMatchIDs)
}

// MarkServed records one completed match the suspended player's team played
// while the suspension was active. It is idempotent per match id and reports
// whether the call changed anything. The status flips to served exactly when
// the served count reaches the ban length.
func (s *Suspension) MarkServed(matchID string) bool {
	if s.Status != StatusActive {
		return false
	}
	for _, id := range s.ServedMatchIDs {
		if id == matchID {
			return false
		}
	}
	if len(s.ServedMatchIDs) >= s.MatchesBanned {
		return false
	}
	s.ServedMatchIDs = append(s.ServedMatchIDs, matchID)
	if len(s.ServedMatchIDs) >= s.MatchesBanned {
		s.Status = StatusServed
	}
	return true
}
