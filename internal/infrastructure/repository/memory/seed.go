package memory

import (
	"time"

	"github.com/ligaops/competition-engine/internal/domain/match"
	"github.com/ligaops/competition-engine/internal/domain/roster"
	"github.com/ligaops/competition-engine/internal/domain/season"
)

const (
	SeasonIDLiga1Indonesia = "idn-liga-1-2025"

	TeamIDPersija   = "idn-persija"
	TeamIDPersib    = "idn-persib"
	TeamIDPersebaya = "idn-persebaya"
	TeamIDBaliUtd   = "idn-baliutd"
)

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:                SeasonIDLiga1Indonesia,
			Name:              "Liga 1 Indonesia 2025/2026",
			RequiredTeamCount: 4,
			Rules:             season.DefaultRules(),
			StartsAt:          time.Date(2025, time.August, 8, 0, 0, 0, 0, time.UTC),
			EndsAt:            time.Date(2026, time.May, 24, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedRoster() []roster.Player {
	return []roster.Player{
		{ID: "psj-01", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDPersija, Name: "Andritany Ardhiyasa", ShirtNumber: 1},
		{ID: "psj-04", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDPersija, Name: "Hansamu Yama", ShirtNumber: 4},
		{ID: "psj-08", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDPersija, Name: "Maciej Gajos", ShirtNumber: 8, Foreign: true},
		{ID: "psj-09", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDPersija, Name: "Gustavo Almeida", ShirtNumber: 9, Foreign: true},
		{ID: "psb-01", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDPersib, Name: "Teja Paku Alam", ShirtNumber: 1},
		{ID: "psb-05", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDPersib, Name: "Nick Kuipers", ShirtNumber: 5, Foreign: true},
		{ID: "psb-10", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDPersib, Name: "Marc Klok", ShirtNumber: 10, Foreign: true},
		{ID: "psb-19", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDPersib, Name: "David da Silva", ShirtNumber: 19, Foreign: true},
		{ID: "prb-03", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDPersebaya, Name: "Dusan Stevanovic", ShirtNumber: 3, Foreign: true},
		{ID: "prb-07", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDPersebaya, Name: "Bruno Moreira", ShirtNumber: 7, Foreign: true},
		{ID: "bu-06", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDBaliUtd, Name: "Ricky Fajrin", ShirtNumber: 6},
		{ID: "bu-11", SeasonID: SeasonIDLiga1Indonesia, SeasonTeamID: TeamIDBaliUtd, Name: "Eber Bessa", ShirtNumber: 11, Foreign: true},
	}
}

func SeedMatches() []match.Match {
	kickoff := time.Date(2025, time.August, 9, 15, 30, 0, 0, time.UTC)
	return []match.Match{
		{
			ID:          "m-psj-psb-r1",
			SeasonID:    SeasonIDLiga1Indonesia,
			HomeTeamID:  TeamIDPersija,
			AwayTeamID:  TeamIDPersib,
			Status:      match.StatusScheduled,
			ScheduledAt: kickoff,
		},
		{
			ID:          "m-prb-bu-r1",
			SeasonID:    SeasonIDLiga1Indonesia,
			HomeTeamID:  TeamIDPersebaya,
			AwayTeamID:  TeamIDBaliUtd,
			Status:      match.StatusScheduled,
			ScheduledAt: kickoff.Add(3 * time.Hour),
		},
	}
}
