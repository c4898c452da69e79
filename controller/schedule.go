package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mww/league_manager/db"
	"github.com/mww/league_manager/model"
	"github.com/sirupsen/logrus"
)

// ScheduleMatch does not reject a team playing itself, there is no rule
// against it.
func (c *controller) ScheduleMatch(ctx context.Context, comp model.Competition, team1, team2 string, when time.Time) (*model.ScheduledMatch, error) {
	team1 = strings.TrimSpace(team1)
	team2 = strings.TrimSpace(team2)
	fields := logrus.Fields{"competition": comp, "team1": team1, "team2": team2}

	if err := validCompetition(comp); err != nil {
		return nil, c.fail("schedule_match", fields, err)
	}
	if when.IsZero() {
		return nil, c.fail("schedule_match", fields, model.InvalidArgument("a match time must be provided"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range []string{team1, team2} {
		if _, err := c.getTeam(ctx, comp, name); err != nil {
			return nil, c.fail("schedule_match", fields, err)
		}
	}

	m := &model.ScheduledMatch{
		Competition: comp,
		Team1:       team1,
		Team2:       team2,
		ScheduledAt: when.UTC(),
	}
	if err := c.db.ScheduleMatch(ctx, m); err != nil {
		return nil, c.fail("schedule_match", fields, err)
	}

	c.logger.WithFields(fields).WithFields(logrus.Fields{
		"match_id":  m.ID,
		"scheduled": m.ScheduledAt.Format(time.RFC3339),
	}).Info("match scheduled")
	return m, nil
}

func (c *controller) ListScheduled(ctx context.Context) ([]model.ScheduledMatch, error) {
	return c.ListMatches(ctx, model.StatusScheduled)
}

func (c *controller) ListMatches(ctx context.Context, status model.MatchStatus) ([]model.ScheduledMatch, error) {
	if status != "" && status != model.StatusScheduled && status != model.StatusCompleted {
		return nil, model.InvalidArgument("unknown match status '%s'", status)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	matches, err := c.db.ListMatches(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}
	return matches, nil
}

func (c *controller) GetMatch(ctx context.Context, id int32) (*model.ScheduledMatch, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.getMatch(ctx, id)
}

// MarkCompleted only changes the status. Submit completes a match together
// with its result.
func (c *controller) MarkCompleted(ctx context.Context, id int32) error {
	fields := logrus.Fields{"match_id": id}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.MarkCompleted(ctx, id); err != nil {
		return c.fail("mark_completed", fields, translateMatchErr(id, err))
	}

	c.logger.WithFields(fields).Info("match completed")
	return nil
}

func translateMatchErr(id int32, err error) error {
	switch {
	case errors.Is(err, db.ErrMatchNotFound):
		return model.NoSuchMatch(id)
	case errors.Is(err, db.ErrMatchCompleted):
		return model.AlreadyCompleted(id)
	default:
		return err
	}
}
