package model

import (
	"strings"
	"time"
)

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusCompleted MatchStatus = "completed"
)

func ParseMatchStatus(s string) (MatchStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scheduled":
		return StatusScheduled, true
	case "completed":
		return StatusCompleted, true
	default:
		return "", false
	}
}

type ScheduledMatch struct {
	ID          int32       `json:"id"`
	Competition Competition `json:"competition"`
	Team1       string      `json:"team1"`
	Team2       string      `json:"team2"`
	ScheduledAt time.Time   `json:"scheduled_at"`
	Status      MatchStatus `json:"status"`
	Created     time.Time   `json:"created"`
}

// Side identifies one of the two teams of a match.
type Side int

const (
	Team1 Side = 1
	Team2 Side = 2
)

func (s Side) String() string {
	if s == Team2 {
		return "Team 2"
	}
	return "Team 1"
}

// MatchResult is written exactly once per completed match.
type MatchResult struct {
	MatchID     int32       `json:"match_id"`
	Competition Competition `json:"competition"`
	Team1       string      `json:"team1"`
	Team2       string      `json:"team2"`
	Team1Score  int         `json:"team1_score"`
	Team2Score  int         `json:"team2_score"`
	Team1Lines  []StatLine  `json:"team1_lines"`
	Team2Lines  []StatLine  `json:"team2_lines"`
	Team1Saves  int         `json:"team1_saves"`
	Team2Saves  int         `json:"team2_saves"`
	Recorded    time.Time   `json:"recorded"`
}

// SubmitRequest carries a score submission exactly as collected by the front
// end. Stat lines are free text and are parsed by the engine.
type SubmitRequest struct {
	MatchID     int32
	Competition Competition
	Team1Score  int
	Team2Score  int
	Team1Lines  []string
	Team2Lines  []string
}

// PlayerContribution is one player's stat line attributed to the roster slot
// it was submitted for.
type PlayerContribution struct {
	PlayerID string
	Line     StatLine
}

// ResultRecord is the unit the store commits atomically when a match is
// completed: the result row, the player stat increments, the status change
// and the standings update.
type ResultRecord struct {
	Result        MatchResult
	Contributions []PlayerContribution
	Outcome       MatchOutcome
}
