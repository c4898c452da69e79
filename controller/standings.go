package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/mww/league_manager/db"
	"github.com/mww/league_manager/model"
)

func (c *controller) GetStandings(ctx context.Context, comp model.Competition, division string) ([]model.Standing, error) {
	if err := validCompetition(comp); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.rankedStandings(ctx, comp, division)
}

func (c *controller) rankedStandings(ctx context.Context, comp model.Competition, division string) ([]model.Standing, error) {
	standings, err := c.db.GetStandings(ctx, comp, division)
	if err != nil {
		return nil, fmt.Errorf("error getting standings: %w", err)
	}
	model.RankStandings(standings)
	return standings, nil
}

func (c *controller) GetPlayerStats(ctx context.Context, playerID string) (*model.PlayerStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.db.GetPlayerStats(ctx, playerID)
	if err != nil {
		if errors.Is(err, db.ErrPlayerNotFound) {
			return nil, model.NoSuchPlayer(playerID)
		}
		return nil, fmt.Errorf("error getting player stats: %w", err)
	}
	return s, nil
}

func (c *controller) ListPlayerStats(ctx context.Context) ([]model.PlayerStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats, err := c.db.ListPlayerStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing player stats: %w", err)
	}
	return stats, nil
}

func (c *controller) LeagueTotals(ctx context.Context) (*model.LeagueTotals, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, err := c.db.GetLeagueTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting league totals: %w", err)
	}
	return t, nil
}
