package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/mww/league_manager/model"
)

func (db *postgresDB) GetStandings(ctx context.Context, comp model.Competition, division string) ([]model.Standing, error) {
	// Left join so standings of teams that were deleted or never copied into
	// the competition are still reported, with an empty division.
	q := psql.Select("s.team_name", "s.wins", "s.losses", "s.draws", "COALESCE(t.division, '')").
		From("standings s").
		LeftJoin("teams t ON t.competition = s.competition AND t.name = s.team_name").
		Where(sq.Eq{"s.competition": string(comp)}).
		OrderBy("s.team_name")
	if division != "" {
		q = q.Where(sq.Eq{"t.division": division})
	}

	rows, err := qQuery(ctx, db.pool, q)
	if err != nil {
		return nil, fmt.Errorf("error querying standings: %w", err)
	}
	defer rows.Close()

	results := make([]model.Standing, 0, 32)
	for rows.Next() {
		s := model.Standing{Competition: comp}
		if err := rows.Scan(&s.TeamName, &s.Wins, &s.Losses, &s.Draws, &s.Division); err != nil {
			return nil, fmt.Errorf("error scanning standing: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading standings: %w", err)
	}
	return results, nil
}

func insertZeroStanding(ctx context.Context, q querier, comp model.Competition, team string) error {
	const insert = `INSERT INTO standings (competition, team_name, wins, losses, draws)
		VALUES (@competition, @team, 0, 0, 0)
		ON CONFLICT (competition, team_name) DO UPDATE SET wins=0, losses=0, draws=0`

	args := pgx.NamedArgs{
		"competition": string(comp),
		"team":        team,
	}
	if _, err := q.Exec(ctx, insert, args); err != nil {
		return fmt.Errorf("error initializing standings for team %s: %w", team, err)
	}
	return nil
}

// applyStanding adds d to the team's standings, creating the row when the team
// has none yet in that competition.
func applyStanding(ctx context.Context, q querier, comp model.Competition, team string, d model.StandingsDelta) error {
	b := psql.Insert("standings").
		Columns("competition", "team_name", "wins", "losses", "draws").
		Values(string(comp), team, d.Wins, d.Losses, d.Draws).
		Suffix(`ON CONFLICT (competition, team_name) DO UPDATE SET
			wins = standings.wins + EXCLUDED.wins,
			losses = standings.losses + EXCLUDED.losses,
			draws = standings.draws + EXCLUDED.draws`)

	if _, err := qExec(ctx, q, b); err != nil {
		return fmt.Errorf("error updating standings for team %s: %w", team, err)
	}
	return nil
}
