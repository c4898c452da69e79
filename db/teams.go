package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/league_manager/model"
)

func (db *postgresDB) CreateTeam(ctx context.Context, t *model.Team) error {
	if t == nil {
		return errors.New("CreateTeam - team is nil")
	}

	created := db.now()
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		if err := insertTeam(ctx, tx, t, created); err != nil {
			return err
		}
		return insertZeroStanding(ctx, tx, t.Competition, t.Name)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("error creating team %s: %w", t.Name, ErrUniqueViolation)
		}
		return err
	}

	t.Created = created.Time
	return nil
}

// insertTeam writes the team row followed by its members in roster order.
func insertTeam(ctx context.Context, q querier, t *model.Team, created pgtype.Timestamptz) error {
	const insert = `INSERT INTO teams (competition, name, captain_id, division, created)
		VALUES (@competition, @name, @captain, @division, @created)`

	args := pgx.NamedArgs{
		"competition": string(t.Competition),
		"name":        t.Name,
		"captain": sql.NullString{
			String: t.Captain,
			Valid:  t.Captain != "",
		},
		"division": t.Division,
		"created":  created,
	}
	if _, err := q.Exec(ctx, insert, args); err != nil {
		return fmt.Errorf("error inserting team (%s): %w", t.Name, err)
	}

	for _, m := range t.Members {
		if err := insertMember(ctx, q, t.Competition, t.Name, m); err != nil {
			return err
		}
	}
	return nil
}

func insertMember(ctx context.Context, q querier, comp model.Competition, team, playerID string) error {
	const insert = `INSERT INTO team_members (competition, team_name, player_id)
		VALUES (@competition, @team, @player)`

	args := pgx.NamedArgs{
		"competition": string(comp),
		"team":        team,
		"player":      playerID,
	}
	if _, err := q.Exec(ctx, insert, args); err != nil {
		return fmt.Errorf("error adding player %s to team %s: %w", playerID, team, err)
	}
	return nil
}

func (db *postgresDB) GetTeam(ctx context.Context, comp model.Competition, name string) (*model.Team, error) {
	const query = `SELECT competition, name, captain_id, division, created
		FROM teams WHERE competition=@competition AND name=@name`

	args := pgx.NamedArgs{
		"competition": string(comp),
		"name":        name,
	}
	t, err := scanTeam(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("error scanning team %s: %w", name, err)
	}

	members, err := getMembers(ctx, db.pool, comp, []string{name})
	if err != nil {
		return nil, err
	}
	t.Members = members[name]

	return t, nil
}

func (db *postgresDB) ListTeams(ctx context.Context, comp model.Competition, division string) ([]model.Team, error) {
	q := psql.Select("competition", "name", "captain_id", "division", "created").
		From("teams").
		Where(sq.Eq{"competition": string(comp)}).
		OrderBy("name")
	if division != "" {
		q = q.Where(sq.Eq{"division": division})
	}

	rows, err := qQuery(ctx, db.pool, q)
	if err != nil {
		return nil, fmt.Errorf("error listing teams: %w", err)
	}
	defer rows.Close()

	teams := make([]model.Team, 0, 16)
	names := make([]string, 0, 16)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning team: %w", err)
		}
		teams = append(teams, *t)
		names = append(names, t.Name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading teams: %w", err)
	}

	members, err := getMembers(ctx, db.pool, comp, names)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		teams[i].Members = members[teams[i].Name]
	}

	return teams, nil
}

// getMembers loads the rosters of the named teams, keyed by team name.
func getMembers(ctx context.Context, q querier, comp model.Competition, teams []string) (map[string][]string, error) {
	result := make(map[string][]string, len(teams))
	if len(teams) == 0 {
		return result, nil
	}

	b := psql.Select("team_name", "player_id").
		From("team_members").
		Where(sq.Eq{"competition": string(comp), "team_name": teams}).
		OrderBy("id")

	rows, err := qQuery(ctx, q, b)
	if err != nil {
		return nil, fmt.Errorf("error loading team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var team, player string
		if err := rows.Scan(&team, &player); err != nil {
			return nil, fmt.Errorf("error scanning team member: %w", err)
		}
		result[team] = append(result[team], player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading team members: %w", err)
	}
	return result, nil
}

func scanTeam(row pgx.Row) (*model.Team, error) {
	var t model.Team
	var comp string
	var captain sql.NullString
	var created pgtype.Timestamptz

	err := row.Scan(&comp, &t.Name, &captain, &t.Division, &created)
	if err != nil {
		return nil, err
	}

	t.Competition = model.Competition(comp)
	t.Captain = valueOrEmpty(captain)
	t.Created = created.Time
	t.Members = []string{}
	return &t, nil
}

func (db *postgresDB) FindPlayerTeam(ctx context.Context, comp model.Competition, playerID string) (string, error) {
	const query = `SELECT team_name FROM team_members WHERE competition=@competition AND player_id=@player`
	return db.findTeamName(ctx, query, comp, playerID)
}

func (db *postgresDB) FindCaptainTeam(ctx context.Context, comp model.Competition, playerID string) (string, error) {
	const query = `SELECT name FROM teams WHERE competition=@competition AND captain_id=@player`
	return db.findTeamName(ctx, query, comp, playerID)
}

func (db *postgresDB) findTeamName(ctx context.Context, query string, comp model.Competition, playerID string) (string, error) {
	args := pgx.NamedArgs{
		"competition": string(comp),
		"player":      playerID,
	}

	var name string
	if err := db.pool.QueryRow(ctx, query, args).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrPlayerNotFound
		}
		return "", fmt.Errorf("error looking up team for player %s: %w", playerID, err)
	}
	return name, nil
}

func (db *postgresDB) AddTeamMember(ctx context.Context, comp model.Competition, team, playerID string) error {
	err := insertMember(ctx, db.pool, comp, team, playerID)
	if isUniqueViolation(err) {
		return fmt.Errorf("error adding player %s: %w", playerID, ErrUniqueViolation)
	}
	return err
}

func (db *postgresDB) RemoveTeamMember(ctx context.Context, comp model.Competition, team, playerID string) (bool, error) {
	const deleteMember = `DELETE FROM team_members
		WHERE competition=@competition AND team_name=@team AND player_id=@player`
	const clearCaptain = `UPDATE teams SET captain_id=NULL
		WHERE competition=@competition AND name=@team AND captain_id=@player`

	args := pgx.NamedArgs{
		"competition": string(comp),
		"team":        team,
		"player":      playerID,
	}

	wasCaptain := false
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, deleteMember, args)
		if err != nil {
			return fmt.Errorf("error removing player %s from team %s: %w", playerID, team, err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotRostered
		}

		tag, err = tx.Exec(ctx, clearCaptain, args)
		if err != nil {
			return fmt.Errorf("error clearing captain of team %s: %w", team, err)
		}
		wasCaptain = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return wasCaptain, nil
}

func (db *postgresDB) SetCaptain(ctx context.Context, comp model.Competition, team, playerID string) error {
	const update = `UPDATE teams SET captain_id=@player WHERE competition=@competition AND name=@team`

	args := pgx.NamedArgs{
		"competition": string(comp),
		"team":        team,
		"player":      playerID,
	}
	tag, err := db.pool.Exec(ctx, update, args)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("error setting captain %s: %w", playerID, ErrUniqueViolation)
		}
		return fmt.Errorf("error setting captain of team %s: %w", team, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (db *postgresDB) DeleteTeam(ctx context.Context, comp model.Competition, name string) error {
	const deleteTeam = `DELETE FROM teams WHERE competition=@competition AND name=@name`
	const deleteStanding = `DELETE FROM standings WHERE competition=@competition AND team_name=@name`

	args := pgx.NamedArgs{
		"competition": string(comp),
		"name":        name,
	}

	return db.inTx(ctx, func(tx pgx.Tx) error {
		// Memberships are removed by the ON DELETE CASCADE.
		tag, err := tx.Exec(ctx, deleteTeam, args)
		if err != nil {
			return fmt.Errorf("error deleting team %s: %w", name, err)
		}
		if tag.RowsAffected() == 0 {
			return ErrTeamNotFound
		}

		if _, err := tx.Exec(ctx, deleteStanding, args); err != nil {
			return fmt.Errorf("error deleting standings of team %s: %w", name, err)
		}
		return nil
	})
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}
