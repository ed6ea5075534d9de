package discipline

import (
	"reflect"
	"testing"
	"time"

	"github.com/ligaops/competition-engine/internal/domain/season"
)

var testKickoff = time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

func testOrder(ids ...string) []MatchRef {
	out := make([]MatchRef, 0, len(ids))
	for i, id := range ids {
		out = append(out, MatchRef{ID: id, PlayedAt: testKickoff.Add(time.Duration(i) * 7 * 24 * time.Hour)})
	}
	return out
}

func yellow(id, matchID, playerID string, minute int) CardEvent {
	return CardEvent{ID: id, SeasonID: "s1", MatchID: matchID, PlayerID: playerID, SeasonTeamID: "team-a", Card: CardYellow, Minute: minute}
}

func red(id, matchID, playerID string, minute int) CardEvent {
	return CardEvent{ID: id, SeasonID: "s1", MatchID: matchID, PlayerID: playerID, SeasonTeamID: "team-a", Card: CardRed, Minute: minute}
}

func TestBuildSuspensions(t *testing.T) {
	rules := season.DefaultRules()

	tests := []struct {
		name   string
		events []CardEvent
		order  []MatchRef
		rules  season.Rules
		want   []Suspension
	}{
		{
			name:   "no events no suspensions",
			events: nil,
			order:  testOrder("m1", "m2"),
			rules:  rules,
			want:   []Suspension{},
		},
		{
			name:   "straight red card",
			events: []CardEvent{red("e1", "m1", "p1", 60)},
			order:  testOrder("m1", "m2"),
			rules:  rules,
			want: []Suspension{
				{
					ID:             SuspensionID("p1", "m1", ReasonRedCard),
					SeasonID:       "s1",
					PlayerID:       "p1",
					SeasonTeamID:   "team-a",
					Reason:         ReasonRedCard,
					MatchesBanned:  rules.RedCardBan,
					Status:         StatusActive,
					TriggerMatchID: "m1",
				},
			},
		},
		{
			name: "yellow accumulation across two matches",
			events: []CardEvent{
				yellow("e1", "m1", "p1", 20),
				yellow("e2", "m2", "p1", 75),
			},
			order: testOrder("m1", "m2", "m3"),
			rules: rules,
			want: []Suspension{
				{
					ID:             SuspensionID("p1", "m2", ReasonTwoYellowCards),
					SeasonID:       "s1",
					PlayerID:       "p1",
					SeasonTeamID:   "team-a",
					Reason:         ReasonTwoYellowCards,
					MatchesBanned:  rules.YellowBan,
					Status:         StatusActive,
					TriggerMatchID: "m2",
				},
			},
		},
		{
			name: "two yellows in the same match are a red equivalence",
			events: []CardEvent{
				yellow("e1", "m1", "p1", 30),
				yellow("e2", "m1", "p1", 70),
			},
			order: testOrder("m1", "m2"),
			rules: rules,
			want: []Suspension{
				{
					ID:             SuspensionID("p1", "m1", ReasonRedCard),
					SeasonID:       "s1",
					PlayerID:       "p1",
					SeasonTeamID:   "team-a",
					Reason:         ReasonRedCard,
					MatchesBanned:  rules.RedCardBan,
					Status:         StatusActive,
					TriggerMatchID: "m1",
				},
			},
		},
		{
			name: "same match double yellow does not feed the accumulation window",
			events: []CardEvent{
				yellow("e1", "m1", "p1", 30),
				yellow("e2", "m1", "p1", 70),
				yellow("e3", "m2", "p1", 55),
			},
			order: testOrder("m1", "m2", "m3"),
			rules: rules,
			want: []Suspension{
				{
					ID:             SuspensionID("p1", "m1", ReasonRedCard),
					SeasonID:       "s1",
					PlayerID:       "p1",
					SeasonTeamID:   "team-a",
					Reason:         ReasonRedCard,
					MatchesBanned:  rules.RedCardBan,
					Status:         StatusActive,
					TriggerMatchID: "m1",
				},
			},
		},
		{
			name: "counter resets after a triggered suspension",
			events: []CardEvent{
				yellow("e1", "m1", "p1", 10),
				yellow("e2", "m2", "p1", 10),
				yellow("e3", "m3", "p1", 10),
			},
			order: testOrder("m1", "m2", "m3", "m4"),
			rules: rules,
			want: []Suspension{
				{
					ID:             SuspensionID("p1", "m2", ReasonTwoYellowCards),
					SeasonID:       "s1",
					PlayerID:       "p1",
					SeasonTeamID:   "team-a",
					Reason:         ReasonTwoYellowCards,
					MatchesBanned:  rules.YellowBan,
					Status:         StatusActive,
					TriggerMatchID: "m2",
				},
			},
		},
		{
			name: "higher threshold reports accumulation reason",
			events: []CardEvent{
				yellow("e1", "m1", "p1", 10),
				yellow("e2", "m2", "p1", 10),
				yellow("e3", "m3", "p1", 10),
			},
			order: testOrder("m1", "m2", "m3"),
			rules: season.Rules{YellowThreshold: 3, YellowBan: 1, RedCardBan: 2, MaxForeignStarters: 5, MaxSubstitutes: 5, TieBreakSeed: 1},
			want: []Suspension{
				{
					ID:             SuspensionID("p1", "m3", ReasonAccumulation),
					SeasonID:       "s1",
					PlayerID:       "p1",
					SeasonTeamID:   "team-a",
					Reason:         ReasonAccumulation,
					MatchesBanned:  1,
					Status:         StatusActive,
					TriggerMatchID: "m3",
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildSuspensions(tc.events, tc.order, tc.rules)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected suspensions:\n got=%+v\nwant=%+v", got, tc.want)
			}
		})
	}
}

func TestBuildSuspensions_ToleratesOutOfOrderInput(t *testing.T) {
	rules := season.DefaultRules()
	order := testOrder("m1", "m2", "m3")

	chronological := []CardEvent{
		yellow("e1", "m1", "p1", 20),
		yellow("e2", "m2", "p1", 75),
	}
	shuffled := []CardEvent{chronological[1], chronological[0]}

	a := BuildSuspensions(chronological, order, rules)
	b := BuildSuspensions(shuffled, order, rules)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("event order changed the outcome:\n a=%+v\n b=%+v", a, b)
	}
	if len(a) != 1 || a[0].TriggerMatchID != "m2" {
		t.Fatalf("unexpected trigger: %+v", a)
	}
}

func TestBuildSuspensions_IsIdempotent(t *testing.T) {
	rules := season.DefaultRules()
	order := testOrder("m1", "m2", "m3")
	events := []CardEvent{
		red("e1", "m1", "p1", 12),
		yellow("e2", "m2", "p2", 40),
		yellow("e3", "m3", "p2", 88),
	}

	first := BuildSuspensions(events, order, rules)
	second := BuildSuspensions(events, order, rules)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated fold diverged:\n first=%+v\nsecond=%+v", first, second)
	}
}

func TestSuspension_MarkServed(t *testing.T) {
	s := Suspension{
		ID:             SuspensionID("p1", "m1", ReasonRedCard),
		PlayerID:       "p1",
		Reason:         ReasonRedCard,
		MatchesBanned:  2,
		Status:         StatusActive,
		TriggerMatchID: "m1",
	}

	if !s.MarkServed("m2") {
		t.Fatal("expected first serve to change state")
	}
	if s.MarkServed("m2") {
		t.Fatal("expected repeated serve for same match to be a no-op")
	}
	if s.Status != StatusActive {
		t.Fatalf("status flipped early: %s", s.Status)
	}

	if !s.MarkServed("m3") {
		t.Fatal("expected second serve to change state")
	}
	if s.Status != StatusServed {
		t.Fatalf("expected served status, got %s", s.Status)
	}
	if s.ServedMatches() != s.MatchesBanned {
		t.Fatalf("served %d want %d", s.ServedMatches(), s.MatchesBanned)
	}

	if s.MarkServed("m4") {
		t.Fatal("served suspension must not keep counting")
	}
}
