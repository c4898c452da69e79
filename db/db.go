package db

import (
	"context"
	"errors"

	"github.com/mww/league_manager/model"
)

var (
	ErrTeamNotFound    error = errors.New("team not found")
	ErrPlayerNotFound  error = errors.New("player not found")
	ErrMatchNotFound   error = errors.New("match not found")
	ErrMatchCompleted  error = errors.New("match already completed")
	ErrResultNotFound  error = errors.New("match result not found")
	ErrUniqueViolation error = errors.New("unique constraint violated")
	ErrNotRostered     error = errors.New("player is not on the team")
)

type DB interface {
	// Creates the team, its captain membership and a zeroed standings row.
	CreateTeam(ctx context.Context, t *model.Team) error
	GetTeam(ctx context.Context, comp model.Competition, name string) (*model.Team, error)
	ListTeams(ctx context.Context, comp model.Competition, division string) ([]model.Team, error)
	// Returns the name of the team the player is on, or ErrPlayerNotFound.
	FindPlayerTeam(ctx context.Context, comp model.Competition, playerID string) (string, error)
	// Returns the name of the team the player captains, or ErrPlayerNotFound.
	FindCaptainTeam(ctx context.Context, comp model.Competition, playerID string) (string, error)
	AddTeamMember(ctx context.Context, comp model.Competition, team, playerID string) error
	// Removes the player and clears the captaincy if the player held it.
	// Returns true if the player was the captain.
	RemoveTeamMember(ctx context.Context, comp model.Competition, team, playerID string) (bool, error)
	SetCaptain(ctx context.Context, comp model.Competition, team, playerID string) error
	// Deletes the team, its memberships and its standings row. Matches are kept.
	DeleteTeam(ctx context.Context, comp model.Competition, name string) error

	ScheduleMatch(ctx context.Context, m *model.ScheduledMatch) error
	GetMatch(ctx context.Context, id int32) (*model.ScheduledMatch, error)
	// Lists the matches with the given status, or all matches when status is
	// empty. Ordered by id.
	ListMatches(ctx context.Context, status model.MatchStatus) ([]model.ScheduledMatch, error)
	MarkCompleted(ctx context.Context, id int32) error

	// Commits a match result, the player stat increments, the status change and
	// the standings update in one transaction.
	RecordResult(ctx context.Context, r *model.ResultRecord) error
	GetMatchResult(ctx context.Context, matchID int32) (*model.MatchResult, error)

	GetPlayerStats(ctx context.Context, playerID string) (*model.PlayerStats, error)
	// Lists every player's stats, most primary goals first.
	ListPlayerStats(ctx context.Context) ([]model.PlayerStats, error)
	GetLeagueTotals(ctx context.Context) (*model.LeagueTotals, error)

	// Standings of a competition, optionally limited to one division. The rows
	// are returned unranked.
	GetStandings(ctx context.Context, comp model.Competition, division string) ([]model.Standing, error)

	// Moves primary teams into divisions and zeroes their standings.
	AssignDivisions(ctx context.Context, assignments []model.DivisionAssignment) error
	// Replaces the whole secondary competition with the given teams: clears
	// teams, memberships and standings, resets the secondary player stats and
	// inserts the teams with zeroed standings.
	ResetSecondaryCompetition(ctx context.Context, teams []model.Team) error
}
