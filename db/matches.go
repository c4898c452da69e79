package db

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/league_manager/model"
)

func (db *postgresDB) ScheduleMatch(ctx context.Context, m *model.ScheduledMatch) error {
	if m == nil {
		return errors.New("ScheduleMatch - match is nil")
	}

	const insert = `INSERT INTO scheduled_matches (competition, team1_name, team2_name, scheduled_time, status, created)
		VALUES (@competition, @team1, @team2, @scheduledTime, @status, @created)
		RETURNING id`

	created := db.now()
	args := pgx.NamedArgs{
		"competition": string(m.Competition),
		"team1":       m.Team1,
		"team2":       m.Team2,
		"scheduledTime": pgtype.Timestamptz{
			Time:             m.ScheduledAt.UTC(),
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
		"status":  string(model.StatusScheduled),
		"created": created,
	}

	var id int32
	if err := db.pool.QueryRow(ctx, insert, args).Scan(&id); err != nil {
		return fmt.Errorf("error scheduling match %s vs %s: %w", m.Team1, m.Team2, err)
	}

	m.ID = id
	m.Status = model.StatusScheduled
	m.Created = created.Time
	return nil
}

func (db *postgresDB) GetMatch(ctx context.Context, id int32) (*model.ScheduledMatch, error) {
	return getMatch(ctx, db.pool, id, false)
}

// getMatch reads a match, optionally locking the row for the rest of the
// transaction q belongs to.
func getMatch(ctx context.Context, q querier, id int32, forUpdate bool) (*model.ScheduledMatch, error) {
	b := psql.Select(matchColumns...).
		From("scheduled_matches").
		Where(sq.Eq{"id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building match query: %w", err)
	}

	m, err := scanMatch(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("error scanning match %d: %w", id, err)
	}
	return m, nil
}

var matchColumns = []string{"id", "competition", "team1_name", "team2_name", "scheduled_time", "status", "created"}

func (db *postgresDB) ListMatches(ctx context.Context, status model.MatchStatus) ([]model.ScheduledMatch, error) {
	q := psql.Select(matchColumns...).
		From("scheduled_matches").
		OrderBy("id")
	if status != "" {
		q = q.Where(sq.Eq{"status": string(status)})
	}

	rows, err := qQuery(ctx, db.pool, q)
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}
	defer rows.Close()

	matches := make([]model.ScheduledMatch, 0, 16)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning match: %w", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading matches: %w", err)
	}
	return matches, nil
}

func scanMatch(row pgx.Row) (*model.ScheduledMatch, error) {
	var m model.ScheduledMatch
	var comp, status string
	var scheduled, created pgtype.Timestamptz

	err := row.Scan(&m.ID, &comp, &m.Team1, &m.Team2, &scheduled, &status, &created)
	if err != nil {
		return nil, err
	}

	m.Competition = model.Competition(comp)
	m.Status = model.MatchStatus(status)
	m.ScheduledAt = scheduled.Time
	m.Created = created.Time
	return &m, nil
}

func (db *postgresDB) MarkCompleted(ctx context.Context, id int32) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		return markCompleted(ctx, tx, id)
	})
}

// markCompleted moves a match from scheduled to completed. The conditional
// update makes a second completion fail with ErrMatchCompleted.
func markCompleted(ctx context.Context, q querier, id int32) error {
	const update = `UPDATE scheduled_matches SET status=@completed WHERE id=@id AND status=@scheduled`

	args := pgx.NamedArgs{
		"id":        id,
		"completed": string(model.StatusCompleted),
		"scheduled": string(model.StatusScheduled),
	}
	tag, err := q.Exec(ctx, update, args)
	if err != nil {
		return fmt.Errorf("error completing match %d: %w", id, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Nothing was updated, find out why.
	if _, err := getMatch(ctx, q, id, false); err != nil {
		return err
	}
	return ErrMatchCompleted
}
