package model

import (
	"fmt"
	"testing"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		s1, s2   int
		expected MatchOutcome
	}{
		{s1: 2, s2: 1, expected: OutcomeTeam1Win},
		{s1: 0, s2: 3, expected: OutcomeTeam2Win},
		{s1: 0, s2: 0, expected: OutcomeDraw},
		{s1: 4, s2: 4, expected: OutcomeDraw},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d-%d", tc.s1, tc.s2), func(t *testing.T) {
			if got := Outcome(tc.s1, tc.s2); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestOutcomeDeltas_exactlyOneResult(t *testing.T) {
	for _, o := range []MatchOutcome{OutcomeTeam1Win, OutcomeTeam2Win, OutcomeDraw} {
		t.Run(o.String(), func(t *testing.T) {
			a := Standing{TeamName: "a"}
			b := Standing{TeamName: "b"}
			d1, d2 := o.Deltas()
			a.Apply(d1)
			b.Apply(d2)

			if a.Played() != 1 || b.Played() != 1 {
				t.Fatalf("each team should have played exactly once: %v %v", a, b)
			}
			switch o {
			case OutcomeTeam1Win:
				if a.Wins != 1 || b.Losses != 1 {
					t.Errorf("unexpected result: %s %s", a.Record(), b.Record())
				}
			case OutcomeTeam2Win:
				if b.Wins != 1 || a.Losses != 1 {
					t.Errorf("unexpected result: %s %s", a.Record(), b.Record())
				}
			default:
				if a.Draws != 1 || b.Draws != 1 {
					t.Errorf("unexpected result: %s %s", a.Record(), b.Record())
				}
			}
		})
	}
}

func TestRankStandings(t *testing.T) {
	s := []Standing{
		{TeamName: "Echo", Wins: 1, Losses: 1, Draws: 0},
		{TeamName: "Delta", Wins: 3, Losses: 0, Draws: 0},
		{TeamName: "Charlie", Wins: 3, Losses: 1, Draws: 0},
		{TeamName: "Bravo", Wins: 1, Losses: 1, Draws: 2},
		{TeamName: "Alpha", Wins: 1, Losses: 1, Draws: 2},
		{TeamName: "Foxtrot", Wins: 1, Losses: 0, Draws: 0},
	}
	RankStandings(s)

	expected := []string{"Delta", "Charlie", "Foxtrot", "Alpha", "Bravo", "Echo"}
	for i, name := range expected {
		if s[i].TeamName != name {
			t.Errorf("position %d - expected: %s, got: %s", i, name, s[i].TeamName)
		}
	}
}

func TestStandingRecord(t *testing.T) {
	s := Standing{Wins: 2, Losses: 1, Draws: 3}
	if s.Record() != "2W-1L-3D" {
		t.Errorf("unexpected record: %s", s.Record())
	}
}
