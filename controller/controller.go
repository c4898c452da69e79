package controller

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/league_manager/db"
	"github.com/mww/league_manager/model"
	"github.com/sirupsen/logrus"
)

// C encapsulates the league rules without worrying about any web layers.
// Every rejection is returned as a *model.Error and leaves the league
// unchanged. Any other error is an infrastructure fault.
type C interface {
	// Creates a primary team captained by captainID, who becomes its only
	// member.
	CreateTeam(ctx context.Context, name, captainID string) (*model.Team, error)
	AddPlayer(ctx context.Context, teamName, playerID string) (*model.Team, error)
	// Removes the player. A removed captain is not replaced, the team is left
	// without one until ChangeCaptain is called.
	RemovePlayer(ctx context.Context, teamName, playerID string) (*model.Team, error)
	// Returns the previous captain, "" if the team had none.
	ChangeCaptain(ctx context.Context, teamName, newCaptainID string) (string, error)
	DeleteTeam(ctx context.Context, teamName string) error
	GetTeam(ctx context.Context, comp model.Competition, name string) (*model.Team, error)
	ListTeams(ctx context.Context, comp model.Competition) ([]model.Team, error)
	GetPlayerTeam(ctx context.Context, comp model.Competition, playerID string) (*model.Team, error)

	ScheduleMatch(ctx context.Context, comp model.Competition, team1, team2 string, when time.Time) (*model.ScheduledMatch, error)
	// Matches still to be played, in the order they were scheduled.
	ListScheduled(ctx context.Context) ([]model.ScheduledMatch, error)
	// Matches with the given status, or every match if status is "".
	ListMatches(ctx context.Context, status model.MatchStatus) ([]model.ScheduledMatch, error)
	GetMatch(ctx context.Context, id int32) (*model.ScheduledMatch, error)
	MarkCompleted(ctx context.Context, id int32) error

	// Validates and records a match score. The result, the player stats, the
	// match status and the standings change together or not at all.
	Submit(ctx context.Context, req model.SubmitRequest) (*model.MatchResult, error)
	GetMatchResult(ctx context.Context, matchID int32) (*model.MatchResult, error)

	// Ranked standings of a competition, or of one division (or group) of it.
	GetStandings(ctx context.Context, comp model.Competition, division string) ([]model.Standing, error)
	GetPlayerStats(ctx context.Context, playerID string) (*model.PlayerStats, error)
	ListPlayerStats(ctx context.Context) ([]model.PlayerStats, error)
	LeagueTotals(ctx context.Context) (*model.LeagueTotals, error)

	// Splits the named primary teams, in the given order, into divisions of
	// divisionSize and zeroes their standings. Primary teams not named are
	// removed from their division and cannot qualify from it.
	InitiateDivisions(ctx context.Context, teamNames []string, divisionSize int) ([]model.DivisionAssignment, error)
	// Rebuilds the secondary competition from the top quota teams of every
	// division, shuffled into groups of groupSize.
	InitiateSecondaryCompetition(ctx context.Context, divisions []string, quota, groupSize int) (*model.Qualification, error)
}

type controller struct {
	clock  clock.Clock
	db     db.DB
	logger *logrus.Logger

	// Mutations hold the write lock for their whole sequence of reads and
	// writes, queries hold the read lock.
	mu sync.RWMutex

	// shuffle has the signature of rand.Shuffle.
	shuffle func(n int, swap func(i, j int))
}

func New(clock clock.Clock, db db.DB, logger *logrus.Logger) (C, error) {
	if db == nil {
		return nil, errors.New("a db is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	c := &controller{
		clock:   clock,
		db:      db,
		logger:  logger,
		shuffle: rand.Shuffle,
	}
	return c, nil
}

// fail logs err and returns it. Rejections are routine and go to debug,
// anything else is logged as an error.
func (c *controller) fail(op string, fields logrus.Fields, err error) error {
	entry := c.logger.WithFields(fields).WithField("op", op)

	var e *model.Error
	if errors.As(err, &e) {
		entry.WithField("code", e.Code).Debug(e.Message)
	} else {
		entry.WithError(err).Error("operation failed")
	}
	return err
}

func (c *controller) getTeam(ctx context.Context, comp model.Competition, name string) (*model.Team, error) {
	t, err := c.db.GetTeam(ctx, comp, name)
	if err != nil {
		if errors.Is(err, db.ErrTeamNotFound) {
			return nil, model.NoSuchTeam(comp, name)
		}
		return nil, fmt.Errorf("error looking up team: %w", err)
	}
	return t, nil
}

func (c *controller) getMatch(ctx context.Context, id int32) (*model.ScheduledMatch, error) {
	m, err := c.db.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrMatchNotFound) {
			return nil, model.NoSuchMatch(id)
		}
		return nil, fmt.Errorf("error looking up match: %w", err)
	}
	return m, nil
}

func validCompetition(comp model.Competition) error {
	if !comp.Valid() {
		return model.InvalidArgument("unknown competition '%s'", comp)
	}
	return nil
}
