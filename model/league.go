package model

import (
	"slices"
	"strings"
	"time"
)

// Competition tags every team, match and standings row. The primary
// competition is the season-long divisional league; the secondary one is
// re-seeded from its top finishers.
type Competition string

const (
	CompetitionUnknown   Competition = ""
	CompetitionPrimary   Competition = "primary"
	CompetitionSecondary Competition = "secondary"
)

func ParseCompetition(c string) Competition {
	c = strings.ToLower(strings.TrimSpace(c))
	switch c {
	case "primary", "league":
		return CompetitionPrimary
	case "secondary", "champions", "champions league", "champions_league":
		return CompetitionSecondary
	default:
		return CompetitionUnknown
	}
}

func (c Competition) Valid() bool {
	return c == CompetitionPrimary || c == CompetitionSecondary
}

type Team struct {
	Name        string      `json:"name"`
	Competition Competition `json:"competition"`
	// Division is the division name for primary teams ("" until divisions
	// are initiated) and the group name for secondary teams.
	Division string `json:"division,omitempty"`
	// Captain is empty when the captain was removed and no replacement has
	// been named yet.
	Captain string `json:"captain"`
	// Members in roster order. Submitted stat lines are matched to members
	// by position in this slice.
	Members []string  `json:"members"`
	Created time.Time `json:"created"`
}

func (t *Team) HasMember(playerID string) bool {
	return slices.Contains(t.Members, playerID)
}

func (t *Team) IsCaptain(playerID string) bool {
	return t.Captain != "" && t.Captain == playerID
}

// DivisionAssignment is the result of partitioning the primary competition.
type DivisionAssignment struct {
	Division string   `json:"division"`
	Teams    []string `json:"teams"`
}
