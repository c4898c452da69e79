package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxStatValue bounds every stat field, score and per-side total. Values are
// stored in INTEGER columns.
const MaxStatValue = math.MaxInt32

// StatLine is one player's contribution to one match.
type StatLine struct {
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Saves   int `json:"saves"`
}

func (l StatLine) String() string {
	return fmt.Sprintf("%d/%d/%d", l.Goals, l.Assists, l.Saves)
}

// ParseStatLine parses the goals/assists/saves text format. All three values
// must be integers between 0 and MaxStatValue.
func ParseStatLine(s string) (StatLine, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return StatLine{}, false
	}

	var vals [3]int
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil || v < 0 {
			return StatLine{}, false
		}
		vals[i] = int(v)
	}
	return StatLine{Goals: vals[0], Assists: vals[1], Saves: vals[2]}, true
}

// ParseStatLines parses the lines submitted for one side. Blank lines are
// skipped, the first malformed line rejects the whole side.
func ParseStatLines(side Side, lines []string) ([]StatLine, error) {
	result := make([]StatLine, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		sl, ok := ParseStatLine(l)
		if !ok {
			return nil, MalformedStatLine(side, l)
		}
		result = append(result, sl)
	}
	return result, nil
}

// SplitStatLines splits a multi-line text block into individual lines.
func SplitStatLines(block string) []string {
	return strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
}

func FormatStatLines(lines []StatLine) string {
	s := make([]string, len(lines))
	for i, l := range lines {
		s[i] = l.String()
	}
	return strings.Join(s, "\n")
}

func SumStatLines(lines []StatLine) StatLine {
	var total StatLine
	for _, l := range lines {
		total.Goals += l.Goals
		total.Assists += l.Assists
		total.Saves += l.Saves
	}
	return total
}

// PlayerStats holds a player's running totals. The primary and secondary
// competitions are counted separately.
type PlayerStats struct {
	PlayerID  string   `json:"player_id"`
	Primary   StatLine `json:"primary"`
	Secondary StatLine `json:"secondary"`
}

func (s *PlayerStats) For(comp Competition) StatLine {
	if comp == CompetitionSecondary {
		return s.Secondary
	}
	return s.Primary
}

// LeagueTotals sums the primary competition stats of every player.
type LeagueTotals struct {
	Players int `json:"players"`
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Saves   int `json:"saves"`
}
