package model

// ValidateScore parses both sides' stat lines and checks that each side's goals
// add up to its declared score. It performs no I/O. Parse errors are reported
// before sum mismatches, and side 1 before side 2.
func ValidateScore(score1, score2 int, lines1, lines2 []string) ([]StatLine, []StatLine, error) {
	if score1 < 0 || score2 < 0 {
		return nil, nil, InvalidArgument("scores must not be negative, got %d and %d", score1, score2)
	}
	if score1 > MaxStatValue || score2 > MaxStatValue {
		return nil, nil, InvalidArgument("scores must not exceed %d, got %d and %d", MaxStatValue, score1, score2)
	}

	stats1, err := ParseStatLines(Team1, lines1)
	if err != nil {
		return nil, nil, err
	}
	stats2, err := ParseStatLines(Team2, lines2)
	if err != nil {
		return nil, nil, err
	}

	total1, err := sideTotals(Team1, stats1)
	if err != nil {
		return nil, nil, err
	}
	total2, err := sideTotals(Team2, stats2)
	if err != nil {
		return nil, nil, err
	}

	if total1.Goals != score1 {
		return nil, nil, ScoreGoalMismatch(Team1, score1, total1.Goals)
	}
	if total2.Goals != score2 {
		return nil, nil, ScoreGoalMismatch(Team2, score2, total2.Goals)
	}

	return stats1, stats2, nil
}

// AttributeStats pairs stat lines with roster members by position. Members
// without a line get nothing; lines beyond the roster size are not attributed.
func AttributeStats(members []string, lines []StatLine) []PlayerContribution {
	n := min(len(members), len(lines))
	result := make([]PlayerContribution, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, PlayerContribution{PlayerID: members[i], Line: lines[i]})
	}
	return result
}

// sideTotals sums one side's lines in 64 bits and rejects totals that do not
// fit MaxStatValue.
func sideTotals(side Side, lines []StatLine) (StatLine, error) {
	var goals, assists, saves int64
	for _, l := range lines {
		goals += int64(l.Goals)
		assists += int64(l.Assists)
		saves += int64(l.Saves)
	}
	if goals > MaxStatValue || assists > MaxStatValue || saves > MaxStatValue {
		return StatLine{}, InvalidArgument("%s's stat totals exceed %d", side, MaxStatValue)
	}
	return StatLine{Goals: int(goals), Assists: int(assists), Saves: int(saves)}, nil
}
