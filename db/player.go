package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mww/league_manager/model"
)

const playerStatsColumns = `player_id, goals, assists, saves, secondary_goals, secondary_assists, secondary_saves`

func (db *postgresDB) GetPlayerStats(ctx context.Context, playerID string) (*model.PlayerStats, error) {
	const query = `SELECT ` + playerStatsColumns + ` FROM player_stats WHERE player_id=@player`

	args := pgx.NamedArgs{
		"player": playerID,
	}
	s, err := scanPlayerStats(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning stats for player %s: %w", playerID, err)
	}
	return s, nil
}

func (db *postgresDB) ListPlayerStats(ctx context.Context) ([]model.PlayerStats, error) {
	const query = `SELECT ` + playerStatsColumns + ` FROM player_stats ORDER BY goals DESC, player_id`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing player stats: %w", err)
	}
	defer rows.Close()

	results := make([]model.PlayerStats, 0, 32)
	for rows.Next() {
		s, err := scanPlayerStats(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning player stats: %w", err)
		}
		results = append(results, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading player stats: %w", err)
	}
	return results, nil
}

func (db *postgresDB) GetLeagueTotals(ctx context.Context) (*model.LeagueTotals, error) {
	const query = `SELECT COUNT(*), COALESCE(SUM(goals), 0), COALESCE(SUM(assists), 0), COALESCE(SUM(saves), 0)
		FROM player_stats`

	var t model.LeagueTotals
	if err := db.pool.QueryRow(ctx, query).Scan(&t.Players, &t.Goals, &t.Assists, &t.Saves); err != nil {
		return nil, fmt.Errorf("error computing league totals: %w", err)
	}
	return &t, nil
}

func scanPlayerStats(row pgx.Row) (*model.PlayerStats, error) {
	var s model.PlayerStats
	err := row.Scan(
		&s.PlayerID,
		&s.Primary.Goals,
		&s.Primary.Assists,
		&s.Primary.Saves,
		&s.Secondary.Goals,
		&s.Secondary.Assists,
		&s.Secondary.Saves)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// addPlayerStats creates a zero row for the player on first contact and then
// adds the line to the triple of the given competition.
func addPlayerStats(ctx context.Context, q querier, comp model.Competition, playerID string, l model.StatLine) error {
	const ensure = `INSERT INTO player_stats (player_id) VALUES (@player) ON CONFLICT (player_id) DO NOTHING`
	const updatePrimary = `UPDATE player_stats
		SET goals=goals+@goals, assists=assists+@assists, saves=saves+@saves
		WHERE player_id=@player`
	const updateSecondary = `UPDATE player_stats
		SET secondary_goals=secondary_goals+@goals,
			secondary_assists=secondary_assists+@assists,
			secondary_saves=secondary_saves+@saves
		WHERE player_id=@player`

	args := pgx.NamedArgs{
		"player":  playerID,
		"goals":   l.Goals,
		"assists": l.Assists,
		"saves":   l.Saves,
	}

	if _, err := q.Exec(ctx, ensure, args); err != nil {
		return fmt.Errorf("error creating stats for player %s: %w", playerID, err)
	}

	update := updatePrimary
	if comp == model.CompetitionSecondary {
		update = updateSecondary
	}
	if _, err := q.Exec(ctx, update, args); err != nil {
		return fmt.Errorf("error updating stats for player %s: %w", playerID, err)
	}
	return nil
}
