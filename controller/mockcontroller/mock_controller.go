package mockcontroller

import (
	"context"
	"time"

	"github.com/mww/league_manager/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) CreateTeam(ctx context.Context, name, captainID string) (*model.Team, error) {
	args := c.Called(ctx, name, captainID)
	return team(args.Get(0)), args.Error(1)
}

func (c *C) AddPlayer(ctx context.Context, teamName, playerID string) (*model.Team, error) {
	args := c.Called(ctx, teamName, playerID)
	return team(args.Get(0)), args.Error(1)
}

func (c *C) RemovePlayer(ctx context.Context, teamName, playerID string) (*model.Team, error) {
	args := c.Called(ctx, teamName, playerID)
	return team(args.Get(0)), args.Error(1)
}

func (c *C) ChangeCaptain(ctx context.Context, teamName, newCaptainID string) (string, error) {
	args := c.Called(ctx, teamName, newCaptainID)
	return args.String(0), args.Error(1)
}

func (c *C) DeleteTeam(ctx context.Context, teamName string) error {
	args := c.Called(ctx, teamName)
	return args.Error(0)
}

func (c *C) GetTeam(ctx context.Context, comp model.Competition, name string) (*model.Team, error) {
	args := c.Called(ctx, comp, name)
	return team(args.Get(0)), args.Error(1)
}

func (c *C) ListTeams(ctx context.Context, comp model.Competition) ([]model.Team, error) {
	args := c.Called(ctx, comp)

	var res []model.Team
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Team)
	}
	return res, args.Error(1)
}

func (c *C) GetPlayerTeam(ctx context.Context, comp model.Competition, playerID string) (*model.Team, error) {
	args := c.Called(ctx, comp, playerID)
	return team(args.Get(0)), args.Error(1)
}

func (c *C) ScheduleMatch(ctx context.Context, comp model.Competition, team1, team2 string, when time.Time) (*model.ScheduledMatch, error) {
	args := c.Called(ctx, comp, team1, team2, when)
	return match(args.Get(0)), args.Error(1)
}

func (c *C) ListScheduled(ctx context.Context) ([]model.ScheduledMatch, error) {
	args := c.Called(ctx)
	return matches(args.Get(0)), args.Error(1)
}

func (c *C) ListMatches(ctx context.Context, status model.MatchStatus) ([]model.ScheduledMatch, error) {
	args := c.Called(ctx, status)
	return matches(args.Get(0)), args.Error(1)
}

func (c *C) GetMatch(ctx context.Context, id int32) (*model.ScheduledMatch, error) {
	args := c.Called(ctx, id)
	return match(args.Get(0)), args.Error(1)
}

func (c *C) MarkCompleted(ctx context.Context, id int32) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *C) Submit(ctx context.Context, req model.SubmitRequest) (*model.MatchResult, error) {
	args := c.Called(ctx, req)
	return result(args.Get(0)), args.Error(1)
}

func (c *C) GetMatchResult(ctx context.Context, matchID int32) (*model.MatchResult, error) {
	args := c.Called(ctx, matchID)
	return result(args.Get(0)), args.Error(1)
}

func (c *C) GetStandings(ctx context.Context, comp model.Competition, division string) ([]model.Standing, error) {
	args := c.Called(ctx, comp, division)

	var res []model.Standing
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Standing)
	}
	return res, args.Error(1)
}

func (c *C) GetPlayerStats(ctx context.Context, playerID string) (*model.PlayerStats, error) {
	args := c.Called(ctx, playerID)

	var s *model.PlayerStats
	if args.Get(0) != nil {
		s = args.Get(0).(*model.PlayerStats)
	}
	return s, args.Error(1)
}

func (c *C) ListPlayerStats(ctx context.Context) ([]model.PlayerStats, error) {
	args := c.Called(ctx)

	var res []model.PlayerStats
	if args.Get(0) != nil {
		res = args.Get(0).([]model.PlayerStats)
	}
	return res, args.Error(1)
}

func (c *C) LeagueTotals(ctx context.Context) (*model.LeagueTotals, error) {
	args := c.Called(ctx)

	var t *model.LeagueTotals
	if args.Get(0) != nil {
		t = args.Get(0).(*model.LeagueTotals)
	}
	return t, args.Error(1)
}

func (c *C) InitiateDivisions(ctx context.Context, teamNames []string, divisionSize int) ([]model.DivisionAssignment, error) {
	args := c.Called(ctx, teamNames, divisionSize)

	var res []model.DivisionAssignment
	if args.Get(0) != nil {
		res = args.Get(0).([]model.DivisionAssignment)
	}
	return res, args.Error(1)
}

func (c *C) InitiateSecondaryCompetition(ctx context.Context, divisions []string, quota, groupSize int) (*model.Qualification, error) {
	args := c.Called(ctx, divisions, quota, groupSize)

	var q *model.Qualification
	if args.Get(0) != nil {
		q = args.Get(0).(*model.Qualification)
	}
	return q, args.Error(1)
}

func team(v any) *model.Team {
	if v == nil {
		return nil
	}
	return v.(*model.Team)
}

func match(v any) *model.ScheduledMatch {
	if v == nil {
		return nil
	}
	return v.(*model.ScheduledMatch)
}

func matches(v any) []model.ScheduledMatch {
	if v == nil {
		return nil
	}
	return v.([]model.ScheduledMatch)
}

func result(v any) *model.MatchResult {
	if v == nil {
		return nil
	}
	return v.(*model.MatchResult)
}
