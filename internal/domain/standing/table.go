package standing

import (
	"encoding/binary"
	"hash/fnv"
	"sort"

	"github.com/ligaops/competition-engine/internal/domain/match"
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

// ComputeTable rebuilds a season table from scratch. Only matches whose
// status counts for standings contribute; the fold is order-independent, so
// processing matches in any sequence yields the same table.
//
// Both modes rank on points desc, goal difference desc, goals-for desc.
// ModeFinal resolves teams still tied after those keys by their head-to-head
// aggregate among the tied group, then by a lot drawn deterministically from
// seed, so a recompute always reproduces the published table.
//
// manualDeltas carries preserved administrative point adjustments keyed by
// season team id; affected rows are flagged Adjusted and ranked on their
// adjusted totals. Pass nil to discard overrides.
func ComputeTable(seasonID string, teamIDs []string, matches []match.Match, mode Mode, seed int64, manualDeltas map[string]int) []Row {
	byTeam := make(map[string]*Row, len(teamIDs))
	for _, id := range teamIDs {
		row := &Row{SeasonID: seasonID, SeasonTeamID: id}
		if delta, ok := manualDeltas[id]; ok {
			row.ManualDelta = delta
			row.Adjusted = true
		}
		byTeam[id] = row
	}

	counted := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if !m.CountsForStandings() {
			continue
		}
		home, okHome := byTeam[m.HomeTeamID]
		away, okAway := byTeam[m.AwayTeamID]
		if !okHome || !okAway {
			continue
		}
		counted = append(counted, m)
		applyResult(home, away, m.HomeGoals, m.AwayGoals)
	}

	rows := make([]Row, 0, len(byTeam))
	for _, row := range byTeam {
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return lessByBaseKeys(rows[i], rows[j])
	})

	if mode == ModeFinal {
		reorderTiedGroups(rows, counted, seed)
	}

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func applyResult(home, away *Row, homeGoals, awayGoals int) {
	home.Played++
	away.Played++
	home.GoalsFor += homeGoals
	home.GoalsAgainst += awayGoals
	away.GoalsFor += awayGoals
	away.GoalsAgainst += homeGoals

	switch {
	case homeGoals > awayGoals:
		home.Won++
		home.Points += pointsWin
		away.Loss++
	case homeGoals < awayGoals:
		away.Won++
		away.Points += pointsWin
		home.Loss++
	default:
		home.Draw++
		away.Draw++
		home.Points += pointsDraw
		away.Points += pointsDraw
	}
}

func lessByBaseKeys(a, b Row) bool {
	if a.TotalPoints() != b.TotalPoints() {
		return a.TotalPoints() > b.TotalPoints()
	}
	if a.GoalDifference() != b.GoalDifference() {
		return a.GoalDifference() > b.GoalDifference()
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	return a.SeasonTeamID < b.SeasonTeamID
}

func sameBaseKeys(a, b Row) bool {
	return a.TotalPoints() == b.TotalPoints() &&
		a.GoalDifference() == b.GoalDifference() &&
		a.GoalsFor == b.GoalsFor
}

// reorderTiedGroups rewrites each run of base-key-tied rows in place using
// the final-mode tie-break chain.
func reorderTiedGroups(rows []Row, matches []match.Match, seed int64) {
	start := 0
	for start < len(rows) {
		end := start + 1
		for end < len(rows) && sameBaseKeys(rows[start], rows[end]) {
			end++
		}
		if end-start > 1 {
			resolveTie(rows[start:end], matches, seed)
		}
		start = end
	}
}

func resolveTie(group []Row, matches []match.Match, seed int64) {
	inGroup := make(map[string]bool, len(group))
	for _, row := range group {
		inGroup[row.SeasonTeamID] = true
	}

	// Mini-table over the mutual matches of the tied teams only.
	mutual := make(map[string]*Row, len(group))
	for _, row := range group {
		mutual[row.SeasonTeamID] = &Row{SeasonTeamID: row.SeasonTeamID}
	}
	for _, m := range matches {
		if !inGroup[m.HomeTeamID] || !inGroup[m.AwayTeamID] {
			continue
		}
		applyResult(mutual[m.HomeTeamID], mutual[m.AwayTeamID], m.HomeGoals, m.AwayGoals)
	}

	sort.SliceStable(group, func(i, j int) bool {
		a, b := *mutual[group[i].SeasonTeamID], *mutual[group[j].SeasonTeamID]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		la, lb := drawLot(seed, group[i].SeasonTeamID), drawLot(seed, group[j].SeasonTeamID)
		if la != lb {
			return la < lb
		}
		return group[i].SeasonTeamID < group[j].SeasonTeamID
	})
}

// drawLot is the recorded-seed substitute for a physical drawing of lots.
// The same seed and team id always draw the same lot, keeping the final
// table auditable and reproducible on recompute.
func drawLot(seed int64, seasonTeamID string) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(seed))
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(seasonTeamID))
	return h.Sum64()
}
