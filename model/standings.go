package model

import (
	"cmp"
	"fmt"
	"slices"
)

type Standing struct {
	TeamName    string      `json:"team"`
	Competition Competition `json:"competition"`
	Division    string      `json:"division,omitempty"` // filled in on reads, not stored with the standings row
	Wins        int         `json:"wins"`
	Losses      int         `json:"losses"`
	Draws       int         `json:"draws"`
}

func (s *Standing) Played() int {
	return s.Wins + s.Losses + s.Draws
}

func (s *Standing) Record() string {
	return fmt.Sprintf("%dW-%dL-%dD", s.Wins, s.Losses, s.Draws)
}

// MatchOutcome is exactly one of: team 1 wins, team 2 wins, or a draw.
type MatchOutcome int

const (
	OutcomeDraw MatchOutcome = iota
	OutcomeTeam1Win
	OutcomeTeam2Win
)

func (o MatchOutcome) String() string {
	switch o {
	case OutcomeTeam1Win:
		return "team1_win"
	case OutcomeTeam2Win:
		return "team2_win"
	default:
		return "draw"
	}
}

func Outcome(score1, score2 int) MatchOutcome {
	switch {
	case score1 > score2:
		return OutcomeTeam1Win
	case score1 < score2:
		return OutcomeTeam2Win
	default:
		return OutcomeDraw
	}
}

// StandingsDelta is the change a single outcome applies to one team.
type StandingsDelta struct {
	Wins   int
	Losses int
	Draws  int
}

// Deltas returns the standings change for team 1 and team 2.
func (o MatchOutcome) Deltas() (StandingsDelta, StandingsDelta) {
	switch o {
	case OutcomeTeam1Win:
		return StandingsDelta{Wins: 1}, StandingsDelta{Losses: 1}
	case OutcomeTeam2Win:
		return StandingsDelta{Losses: 1}, StandingsDelta{Wins: 1}
	default:
		return StandingsDelta{Draws: 1}, StandingsDelta{Draws: 1}
	}
}

func (s *Standing) Apply(d StandingsDelta) {
	s.Wins += d.Wins
	s.Losses += d.Losses
	s.Draws += d.Draws
}

// CompareStandings orders by wins descending, losses ascending, draws
// descending and finally team name ascending so the order is reproducible.
func CompareStandings(a, b Standing) int {
	if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Losses, b.Losses); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Draws, a.Draws); c != 0 {
		return c
	}
	return cmp.Compare(a.TeamName, b.TeamName)
}

// RankStandings sorts s in place using CompareStandings.
func RankStandings(s []Standing) {
	slices.SortFunc(s, CompareStandings)
}

// Qualifier is a team promoted from a division, with the record it
// qualified on.
type Qualifier struct {
	Division string   `json:"division"`
	Standing Standing `json:"standing"`
}

type Group struct {
	Name  string   `json:"name"`
	Teams []string `json:"teams"`
}

// Qualification is the outcome of seeding the secondary competition.
type Qualification struct {
	Qualifiers map[string][]Qualifier `json:"qualifiers"` // keyed by division, in rank order
	Groups     []Group                `json:"groups"`
}
