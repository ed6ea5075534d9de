package discipline

import (
	"sort"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/season"
)

// MatchRef is the minimal view of a match the ledger needs to order events.
type MatchRef struct {
	ID       string
	PlayedAt time.Time
}

// OrderIndex maps match ids to their chronological position. Matches sort on
// (played-at, id) so an incomplete or out-of-order input still yields a
// stable order.
func OrderIndex(order []MatchRef) map[string]int {
	sorted := make([]MatchRef, len(order))
	copy(sorted, order)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].PlayedAt.Equal(sorted[j].PlayedAt) {
			return sorted[i].PlayedAt.Before(sorted[j].PlayedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	index := make(map[string]int, len(sorted))
	for i, ref := range sorted {
		index[ref.ID] = i
	}
	return index
}

// BuildSuspensions folds a season's card events into suspension records.
//
// Events are re-sorted on (match chronology, minute, event id) before
// processing, so malformed or out-of-order input is tolerated rather than
// rejected. The fold is pure: given the same events, match order and rules it
// always produces the same records, which makes full recomputation idempotent.
//
// Per player, in chronological order:
//   - a red card, or a second yellow in the same match, creates an immediate
//     suspension with the red-card ban length; two yellows in one match are an
//     ejection equivalence and do not count toward the accumulation window
//   - a lone yellow increments the accumulation counter; reaching the season
//     threshold creates a suspension with the yellow ban length and resets the
//     counter to zero, so yellows never carry past a triggered suspension
//
// Returned suspensions are active with no served matches; the caller
// reconciles them against stored rows to preserve served progress.
func BuildSuspensions(events []CardEvent, order []MatchRef, rules season.Rules) []Suspension {
	index := OrderIndex(order)

	sorted := make([]CardEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		mi, mj := index[sorted[i].MatchID], index[sorted[j].MatchID]
		if mi != mj {
			return mi < mj
		}
		if sorted[i].Minute != sorted[j].Minute {
			return sorted[i].Minute < sorted[j].Minute
		}
		return sorted[i].ID < sorted[j].ID
	})

	type playerMatchKey struct {
		playerID string
		matchID  string
	}
	yellows := make(map[playerMatchKey]int)
	reds := make(map[playerMatchKey]bool)
	matchSeen := make(map[playerMatchKey]bool)

	type playerMatch struct {
		playerID     string
		seasonTeamID string
		seasonID     string
		matchID      string
	}
	perMatch := make([]playerMatch, 0, len(sorted))
	for _, e := range sorted {
		key := playerMatchKey{playerID: e.PlayerID, matchID: e.MatchID}
		if !matchSeen[key] {
			matchSeen[key] = true
			perMatch = append(perMatch, playerMatch{
				playerID:     e.PlayerID,
				seasonTeamID: e.SeasonTeamID,
				seasonID:     e.SeasonID,
				matchID:      e.MatchID,
			})
		}
		switch e.Card {
		case CardYellow:
			yellows[key]++
		case CardRed:
			reds[key] = true
		}
	}

	counter := make(map[string]int)
	out := make([]Suspension, 0)

	appendSuspension := func(pm playerMatch, reason Reason, banned int) {
		out = append(out, Suspension{
			ID:             SuspensionID(pm.playerID, pm.matchID, reason),
			SeasonID:       pm.seasonID,
			PlayerID:       pm.playerID,
			SeasonTeamID:   pm.seasonTeamID,
			Reason:         reason,
			MatchesBanned:  banned,
			Status:         StatusActive,
			TriggerMatchID: pm.matchID,
		})
	}

	for _, pm := range perMatch {
		key := playerMatchKey{playerID: pm.playerID, matchID: pm.matchID}
		yellowCount := yellows[key]
		ejected := reds[key] || yellowCount >= 2

		if ejected {
			appendSuspension(pm, ReasonRedCard, rules.RedCardBan)
		}

		// Yellows from a two-yellow ejection are consumed by the red-card
		// equivalence; a lone yellow still accumulates even alongside a
		// straight red.
		if yellowCount == 1 {
			counter[pm.playerID]++
			if counter[pm.playerID] >= rules.YellowThreshold {
				reason := ReasonAccumulation
				if rules.YellowThreshold == 2 {
					reason = ReasonTwoYellowCards
				}
				appendSuspension(pm, reason, rules.YellowBan)
				counter[pm.playerID] = 0
			}
		}
	}

	return out
}
