package mockdb

import (
	"context"

	"github.com/mww/league_manager/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) CreateTeam(ctx context.Context, t *model.Team) error {
	args := db.Called(ctx, t)
	return args.Error(0)
}

func (db *DB) GetTeam(ctx context.Context, comp model.Competition, name string) (*model.Team, error) {
	args := db.Called(ctx, comp, name)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (db *DB) ListTeams(ctx context.Context, comp model.Competition, division string) ([]model.Team, error) {
	args := db.Called(ctx, comp, division)

	var r []model.Team
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Team)
	}
	return r, args.Error(1)
}

func (db *DB) FindPlayerTeam(ctx context.Context, comp model.Competition, playerID string) (string, error) {
	args := db.Called(ctx, comp, playerID)
	return args.String(0), args.Error(1)
}

func (db *DB) FindCaptainTeam(ctx context.Context, comp model.Competition, playerID string) (string, error) {
	args := db.Called(ctx, comp, playerID)
	return args.String(0), args.Error(1)
}

func (db *DB) AddTeamMember(ctx context.Context, comp model.Competition, team, playerID string) error {
	args := db.Called(ctx, comp, team, playerID)
	return args.Error(0)
}

func (db *DB) RemoveTeamMember(ctx context.Context, comp model.Competition, team, playerID string) (bool, error) {
	args := db.Called(ctx, comp, team, playerID)
	return args.Bool(0), args.Error(1)
}

func (db *DB) SetCaptain(ctx context.Context, comp model.Competition, team, playerID string) error {
	args := db.Called(ctx, comp, team, playerID)
	return args.Error(0)
}

func (db *DB) DeleteTeam(ctx context.Context, comp model.Competition, name string) error {
	args := db.Called(ctx, comp, name)
	return args.Error(0)
}

func (db *DB) ScheduleMatch(ctx context.Context, m *model.ScheduledMatch) error {
	args := db.Called(ctx, m)
	return args.Error(0)
}

func (db *DB) GetMatch(ctx context.Context, id int32) (*model.ScheduledMatch, error) {
	args := db.Called(ctx, id)

	var m *model.ScheduledMatch
	if args.Get(0) != nil {
		m = args.Get(0).(*model.ScheduledMatch)
	}
	return m, args.Error(1)
}

func (db *DB) ListMatches(ctx context.Context, status model.MatchStatus) ([]model.ScheduledMatch, error) {
	args := db.Called(ctx, status)

	var r []model.ScheduledMatch
	if args.Get(0) != nil {
		r = args.Get(0).([]model.ScheduledMatch)
	}
	return r, args.Error(1)
}

func (db *DB) MarkCompleted(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) RecordResult(ctx context.Context, r *model.ResultRecord) error {
	args := db.Called(ctx, r)
	return args.Error(0)
}

func (db *DB) GetMatchResult(ctx context.Context, matchID int32) (*model.MatchResult, error) {
	args := db.Called(ctx, matchID)

	var r *model.MatchResult
	if args.Get(0) != nil {
		r = args.Get(0).(*model.MatchResult)
	}
	return r, args.Error(1)
}

func (db *DB) GetPlayerStats(ctx context.Context, playerID string) (*model.PlayerStats, error) {
	args := db.Called(ctx, playerID)

	var s *model.PlayerStats
	if args.Get(0) != nil {
		s = args.Get(0).(*model.PlayerStats)
	}
	return s, args.Error(1)
}

func (db *DB) ListPlayerStats(ctx context.Context) ([]model.PlayerStats, error) {
	args := db.Called(ctx)

	var r []model.PlayerStats
	if args.Get(0) != nil {
		r = args.Get(0).([]model.PlayerStats)
	}
	return r, args.Error(1)
}

func (db *DB) GetLeagueTotals(ctx context.Context) (*model.LeagueTotals, error) {
	args := db.Called(ctx)

	var t *model.LeagueTotals
	if args.Get(0) != nil {
		t = args.Get(0).(*model.LeagueTotals)
	}
	return t, args.Error(1)
}

func (db *DB) GetStandings(ctx context.Context, comp model.Competition, division string) ([]model.Standing, error) {
	args := db.Called(ctx, comp, division)

	var r []model.Standing
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Standing)
	}
	return r, args.Error(1)
}

func (db *DB) AssignDivisions(ctx context.Context, assignments []model.DivisionAssignment) error {
	args := db.Called(ctx, assignments)
	return args.Error(0)
}

func (db *DB) ResetSecondaryCompetition(ctx context.Context, teams []model.Team) error {
	args := db.Called(ctx, teams)
	return args.Error(0)
}
