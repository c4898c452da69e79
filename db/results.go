package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/league_manager/model"
)

func (db *postgresDB) RecordResult(ctx context.Context, r *model.ResultRecord) error {
	if r == nil {
		return errors.New("RecordResult - record is nil")
	}

	res := &r.Result
	recorded := db.now()

	err := db.inTx(ctx, func(tx pgx.Tx) error {
		m, err := getMatch(ctx, tx, res.MatchID, true)
		if err != nil {
			return err
		}
		if m.Status != model.StatusScheduled {
			return ErrMatchCompleted
		}

		for _, c := range r.Contributions {
			if err := addPlayerStats(ctx, tx, res.Competition, c.PlayerID, c.Line); err != nil {
				return err
			}
		}

		if err := insertResult(ctx, tx, res, recorded); err != nil {
			return err
		}

		if err := markCompleted(ctx, tx, res.MatchID); err != nil {
			return err
		}

		d1, d2 := r.Outcome.Deltas()
		if err := applyStanding(ctx, tx, res.Competition, res.Team1, d1); err != nil {
			return err
		}
		return applyStanding(ctx, tx, res.Competition, res.Team2, d2)
	})
	if err != nil {
		return err
	}

	res.Recorded = recorded.Time
	return nil
}

func insertResult(ctx context.Context, q querier, res *model.MatchResult, recorded pgtype.Timestamptz) error {
	const insert = `INSERT INTO match_results (
		match_id,
		competition,
		team1_score,
		team2_score,
		team1_lines,
		team2_lines,
		team1_saves,
		team2_saves,
		recorded
	) VALUES (
		@matchID,
		@competition,
		@team1Score,
		@team2Score,
		@team1Lines,
		@team2Lines,
		@team1Saves,
		@team2Saves,
		@recorded
	)`

	args := pgx.NamedArgs{
		"matchID":     res.MatchID,
		"competition": string(res.Competition),
		"team1Score":  res.Team1Score,
		"team2Score":  res.Team2Score,
		"team1Lines":  model.FormatStatLines(res.Team1Lines),
		"team2Lines":  model.FormatStatLines(res.Team2Lines),
		"team1Saves":  res.Team1Saves,
		"team2Saves":  res.Team2Saves,
		"recorded":    recorded,
	}
	if _, err := q.Exec(ctx, insert, args); err != nil {
		if isUniqueViolation(err) {
			return ErrMatchCompleted
		}
		return fmt.Errorf("error inserting result for match %d: %w", res.MatchID, err)
	}
	return nil
}

func (db *postgresDB) GetMatchResult(ctx context.Context, matchID int32) (*model.MatchResult, error) {
	const query = `SELECT r.match_id, r.competition, m.team1_name, m.team2_name,
			r.team1_score, r.team2_score, r.team1_lines, r.team2_lines,
			r.team1_saves, r.team2_saves, r.recorded
		FROM match_results r JOIN scheduled_matches m ON m.id = r.match_id
		WHERE r.match_id=@matchID`

	args := pgx.NamedArgs{
		"matchID": matchID,
	}

	var res model.MatchResult
	var comp, lines1, lines2 string
	var recorded pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, args).Scan(
		&res.MatchID,
		&comp,
		&res.Team1,
		&res.Team2,
		&res.Team1Score,
		&res.Team2Score,
		&lines1,
		&lines2,
		&res.Team1Saves,
		&res.Team2Saves,
		&recorded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("error scanning result for match %d: %w", matchID, err)
	}

	res.Competition = model.Competition(comp)
	res.Recorded = recorded.Time

	// The lines were validated before they were stored.
	if res.Team1Lines, err = model.ParseStatLines(model.Team1, model.SplitStatLines(lines1)); err != nil {
		return nil, fmt.Errorf("error parsing stored stat lines for match %d: %w", matchID, err)
	}
	if res.Team2Lines, err = model.ParseStatLines(model.Team2, model.SplitStatLines(lines2)); err != nil {
		return nil, fmt.Errorf("error parsing stored stat lines for match %d: %w", matchID, err)
	}

	return &res, nil
}
