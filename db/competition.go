package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mww/league_manager/model"
)

func (db *postgresDB) AssignDivisions(ctx context.Context, assignments []model.DivisionAssignment) error {
	const clearDivisions = `UPDATE teams SET division='' WHERE competition=@competition AND division <> ''`
	const update = `UPDATE teams SET division=@division WHERE competition=@competition AND name=@team`

	return db.inTx(ctx, func(tx pgx.Tx) error {
		// Teams left out of the new assignment drop out of every division.
		clearArgs := pgx.NamedArgs{"competition": string(model.CompetitionPrimary)}
		if _, err := tx.Exec(ctx, clearDivisions, clearArgs); err != nil {
			return fmt.Errorf("error clearing divisions: %w", err)
		}

		for _, a := range assignments {
			for _, team := range a.Teams {
				args := pgx.NamedArgs{
					"competition": string(model.CompetitionPrimary),
					"division":    a.Division,
					"team":        team,
				}
				tag, err := tx.Exec(ctx, update, args)
				if err != nil {
					return fmt.Errorf("error assigning team %s to %s: %w", team, a.Division, err)
				}
				if tag.RowsAffected() == 0 {
					return fmt.Errorf("error assigning team %s: %w", team, ErrTeamNotFound)
				}

				if err := insertZeroStanding(ctx, tx, model.CompetitionPrimary, team); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (db *postgresDB) ResetSecondaryCompetition(ctx context.Context, teams []model.Team) error {
	const deleteTeams = `DELETE FROM teams WHERE competition=@competition`
	const deleteStandings = `DELETE FROM standings WHERE competition=@competition`
	const resetStats = `UPDATE player_stats SET secondary_goals=0, secondary_assists=0, secondary_saves=0`

	args := pgx.NamedArgs{
		"competition": string(model.CompetitionSecondary),
	}

	created := db.now()
	return db.inTx(ctx, func(tx pgx.Tx) error {
		// Memberships are removed by the ON DELETE CASCADE.
		if _, err := tx.Exec(ctx, deleteTeams, args); err != nil {
			return fmt.Errorf("error clearing secondary teams: %w", err)
		}
		if _, err := tx.Exec(ctx, deleteStandings, args); err != nil {
			return fmt.Errorf("error clearing secondary standings: %w", err)
		}
		if _, err := tx.Exec(ctx, resetStats); err != nil {
			return fmt.Errorf("error resetting secondary player stats: %w", err)
		}

		for i := range teams {
			t := teams[i]
			t.Competition = model.CompetitionSecondary
			if err := insertTeam(ctx, tx, &t, created); err != nil {
				return err
			}
			if err := insertZeroStanding(ctx, tx, model.CompetitionSecondary, t.Name); err != nil {
				return err
			}
		}
		return nil
	})
}
