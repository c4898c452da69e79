package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/mww/league_manager/db"
	"github.com/mww/league_manager/model"
	"github.com/sirupsen/logrus"
)

func (c *controller) Submit(ctx context.Context, req model.SubmitRequest) (*model.MatchResult, error) {
	fields := logrus.Fields{
		"match_id":    req.MatchID,
		"competition": req.Competition,
		"score":       fmt.Sprintf("%d-%d", req.Team1Score, req.Team2Score),
	}

	if err := validCompetition(req.Competition); err != nil {
		return nil, c.fail("submit", fields, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.getMatch(ctx, req.MatchID)
	if err != nil {
		return nil, c.fail("submit", fields, err)
	}
	if m.Status != model.StatusScheduled {
		return nil, c.fail("submit", fields, model.AlreadyCompleted(m.ID))
	}
	if m.Competition != req.Competition {
		return nil, c.fail("submit", fields, model.CompetitionMismatch(m.ID, m.Competition, req.Competition))
	}

	lines1, lines2, err := model.ValidateScore(req.Team1Score, req.Team2Score, req.Team1Lines, req.Team2Lines)
	if err != nil {
		return nil, c.fail("submit", fields, err)
	}

	// Stat lines are matched to the rosters as they are now.
	t1, err := c.getTeam(ctx, m.Competition, m.Team1)
	if err != nil {
		return nil, c.fail("submit", fields, err)
	}
	t2, err := c.getTeam(ctx, m.Competition, m.Team2)
	if err != nil {
		return nil, c.fail("submit", fields, err)
	}

	rec := &model.ResultRecord{
		Result: model.MatchResult{
			MatchID:     m.ID,
			Competition: m.Competition,
			Team1:       m.Team1,
			Team2:       m.Team2,
			Team1Score:  req.Team1Score,
			Team2Score:  req.Team2Score,
			Team1Lines:  lines1,
			Team2Lines:  lines2,
			Team1Saves:  model.SumStatLines(lines1).Saves,
			Team2Saves:  model.SumStatLines(lines2).Saves,
		},
		Contributions: append(
			model.AttributeStats(t1.Members, lines1),
			model.AttributeStats(t2.Members, lines2)...),
		Outcome: model.Outcome(req.Team1Score, req.Team2Score),
	}

	if err := c.db.RecordResult(ctx, rec); err != nil {
		return nil, c.fail("submit", fields, translateMatchErr(m.ID, err))
	}

	c.logger.WithFields(fields).WithFields(logrus.Fields{
		"team1":   m.Team1,
		"team2":   m.Team2,
		"outcome": rec.Outcome.String(),
		"players": len(rec.Contributions),
	}).Info("match result recorded")
	return &rec.Result, nil
}

func (c *controller) GetMatchResult(ctx context.Context, matchID int32) (*model.MatchResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, err := c.getMatch(ctx, matchID); err != nil {
		return nil, err
	}

	r, err := c.db.GetMatchResult(ctx, matchID)
	if err != nil {
		if errors.Is(err, db.ErrResultNotFound) {
			return nil, model.NoResult(matchID)
		}
		return nil, fmt.Errorf("error looking up match result: %w", err)
	}
	return r, nil
}
