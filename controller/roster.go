package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mww/league_manager/db"
	"github.com/mww/league_manager/model"
	"github.com/sirupsen/logrus"
)

func (c *controller) CreateTeam(ctx context.Context, name, captainID string) (*model.Team, error) {
	name = strings.TrimSpace(name)
	captainID = strings.TrimSpace(captainID)
	fields := logrus.Fields{"team": name, "captain": captainID}

	if name == "" {
		return nil, c.fail("create_team", fields, model.InvalidArgument("team name must be provided"))
	}
	if captainID == "" {
		return nil, c.fail("create_team", fields, model.InvalidArgument("captain must be provided"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.GetTeam(ctx, model.CompetitionPrimary, name)
	switch {
	case err == nil:
		return nil, c.fail("create_team", fields, model.DuplicateTeam(name))
	case !errors.Is(err, db.ErrTeamNotFound):
		return nil, c.fail("create_team", fields, fmt.Errorf("error looking up team: %w", err))
	}

	if team, err := c.db.FindCaptainTeam(ctx, model.CompetitionPrimary, captainID); err == nil {
		return nil, c.fail("create_team", fields, model.AlreadyCaptain(captainID, team))
	} else if !errors.Is(err, db.ErrPlayerNotFound) {
		return nil, c.fail("create_team", fields, err)
	}

	if team, err := c.db.FindPlayerTeam(ctx, model.CompetitionPrimary, captainID); err == nil {
		return nil, c.fail("create_team", fields, model.AlreadyRostered(captainID, team))
	} else if !errors.Is(err, db.ErrPlayerNotFound) {
		return nil, c.fail("create_team", fields, err)
	}

	t := &model.Team{
		Name:        name,
		Competition: model.CompetitionPrimary,
		Captain:     captainID,
		Members:     []string{captainID},
	}
	if err := c.db.CreateTeam(ctx, t); err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			// Lost a race with a writer outside of this process.
			return nil, c.fail("create_team", fields, model.DuplicateTeam(name))
		}
		return nil, c.fail("create_team", fields, err)
	}

	c.logger.WithFields(fields).Info("team created")
	return t, nil
}

func (c *controller) AddPlayer(ctx context.Context, teamName, playerID string) (*model.Team, error) {
	playerID = strings.TrimSpace(playerID)
	fields := logrus.Fields{"team": teamName, "player": playerID}
	if playerID == "" {
		return nil, c.fail("add_player", fields, model.InvalidArgument("player must be provided"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.getTeam(ctx, model.CompetitionPrimary, teamName); err != nil {
		return nil, c.fail("add_player", fields, err)
	}

	if team, err := c.db.FindPlayerTeam(ctx, model.CompetitionPrimary, playerID); err == nil {
		return nil, c.fail("add_player", fields, model.AlreadyRostered(playerID, team))
	} else if !errors.Is(err, db.ErrPlayerNotFound) {
		return nil, c.fail("add_player", fields, err)
	}

	if err := c.db.AddTeamMember(ctx, model.CompetitionPrimary, teamName, playerID); err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			return nil, c.fail("add_player", fields, model.AlreadyRostered(playerID, teamName))
		}
		return nil, c.fail("add_player", fields, err)
	}

	c.logger.WithFields(fields).Info("player added")
	return c.getTeam(ctx, model.CompetitionPrimary, teamName)
}

func (c *controller) RemovePlayer(ctx context.Context, teamName, playerID string) (*model.Team, error) {
	fields := logrus.Fields{"team": teamName, "player": playerID}

	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.getTeam(ctx, model.CompetitionPrimary, teamName)
	if err != nil {
		return nil, c.fail("remove_player", fields, err)
	}
	if !t.HasMember(playerID) {
		return nil, c.fail("remove_player", fields, model.NotRostered(playerID, teamName))
	}

	wasCaptain, err := c.db.RemoveTeamMember(ctx, model.CompetitionPrimary, teamName, playerID)
	if err != nil {
		if errors.Is(err, db.ErrNotRostered) {
			return nil, c.fail("remove_player", fields, model.NotRostered(playerID, teamName))
		}
		return nil, c.fail("remove_player", fields, err)
	}

	c.logger.WithFields(fields).WithField("was_captain", wasCaptain).Info("player removed")
	return c.getTeam(ctx, model.CompetitionPrimary, teamName)
}

func (c *controller) ChangeCaptain(ctx context.Context, teamName, newCaptainID string) (string, error) {
	fields := logrus.Fields{"team": teamName, "captain": newCaptainID}

	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.getTeam(ctx, model.CompetitionPrimary, teamName)
	if err != nil {
		return "", c.fail("change_captain", fields, err)
	}
	if !t.HasMember(newCaptainID) {
		return "", c.fail("change_captain", fields, model.NotRostered(newCaptainID, teamName))
	}
	if t.IsCaptain(newCaptainID) {
		return t.Captain, nil
	}

	if err := c.db.SetCaptain(ctx, model.CompetitionPrimary, teamName, newCaptainID); err != nil {
		if errors.Is(err, db.ErrTeamNotFound) {
			return "", c.fail("change_captain", fields, model.NoSuchTeam(model.CompetitionPrimary, teamName))
		}
		return "", c.fail("change_captain", fields, err)
	}

	c.logger.WithFields(fields).WithField("previous", t.Captain).Info("captain changed")
	return t.Captain, nil
}

func (c *controller) DeleteTeam(ctx context.Context, teamName string) error {
	fields := logrus.Fields{"team": teamName}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.DeleteTeam(ctx, model.CompetitionPrimary, teamName); err != nil {
		if errors.Is(err, db.ErrTeamNotFound) {
			return c.fail("delete_team", fields, model.NoSuchTeam(model.CompetitionPrimary, teamName))
		}
		return c.fail("delete_team", fields, err)
	}

	c.logger.WithFields(fields).Info("team deleted")
	return nil
}

func (c *controller) GetTeam(ctx context.Context, comp model.Competition, name string) (*model.Team, error) {
	if err := validCompetition(comp); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.getTeam(ctx, comp, name)
}

func (c *controller) ListTeams(ctx context.Context, comp model.Competition) ([]model.Team, error) {
	if err := validCompetition(comp); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	teams, err := c.db.ListTeams(ctx, comp, "")
	if err != nil {
		return nil, fmt.Errorf("error listing teams: %w", err)
	}
	return teams, nil
}

func (c *controller) GetPlayerTeam(ctx context.Context, comp model.Competition, playerID string) (*model.Team, error) {
	if err := validCompetition(comp); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	name, err := c.db.FindPlayerTeam(ctx, comp, playerID)
	if err != nil {
		if errors.Is(err, db.ErrPlayerNotFound) {
			return nil, model.NotOnAnyTeam(comp, playerID)
		}
		return nil, fmt.Errorf("error looking up player team: %w", err)
	}
	return c.getTeam(ctx, comp, name)
}
