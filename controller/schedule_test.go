package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mww/league_manager/model"
	"github.com/mww/league_manager/testutils"
)

func TestScheduleMatch(t *testing.T) {
	ctrl, _ := newTestController(t, testDB.DB)
	ctx := context.Background()

	t1, err := testutils.InsertTeam(testDB.DB, 1)
	if err != nil {
		t.Fatalf("error inserting team: %v", err)
	}
	t2, err := testutils.InsertTeam(testDB.DB, 1)
	if err != nil {
		t.Fatalf("error inserting team: %v", err)
	}

	tests := map[string]struct {
		comp  model.Competition
		team1 string
		team2 string
		when  time.Time
		exErr error
	}{
		"unknown team 1":      {comp: model.CompetitionPrimary, team1: testutils.NewTeamName(), team2: t2.Name, when: matchTime, exErr: model.ErrNoSuchTeam},
		"unknown team 2":      {comp: model.CompetitionPrimary, team1: t1.Name, team2: testutils.NewTeamName(), when: matchTime, exErr: model.ErrNoSuchTeam},
		"other competition":   {comp: model.CompetitionSecondary, team1: t1.Name, team2: t2.Name, when: matchTime, exErr: model.ErrNoSuchTeam},
		"unknown competition": {comp: model.Competition("cup"), team1: t1.Name, team2: t2.Name, when: matchTime, exErr: model.ErrInvalidArgument},
		"missing time":        {comp: model.CompetitionPrimary, team1: t1.Name, team2: t2.Name, exErr: model.ErrInvalidArgument},
		"self match":          {comp: model.CompetitionPrimary, team1: t1.Name, team2: t1.Name, when: matchTime},
		"valid":               {comp: model.CompetitionPrimary, team1: t1.Name, team2: t2.Name, when: matchTime},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := ctrl.ScheduleMatch(ctx, tc.comp, tc.team1, tc.team2, tc.when)
			if tc.exErr != nil {
				if !errors.Is(err, tc.exErr) {
					t.Errorf("expected error %v, got: %v", tc.exErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.ID <= 0 || m.Status != model.StatusScheduled || m.Competition != tc.comp {
				t.Errorf("unexpected match: %v", m)
			}
		})
	}
}

func TestMatchLifecycle(t *testing.T) {
	ctrl, _ := newTestController(t, testDB.DB)
	ctx := context.Background()

	t1, err := testutils.InsertTeam(testDB.DB, 1)
	if err != nil {
		t.Fatalf("error inserting team: %v", err)
	}
	t2, err := testutils.InsertTeam(testDB.DB, 1)
	if err != nil {
		t.Fatalf("error inserting team: %v", err)
	}

	// Scheduled later but created first, so it is listed first.
	first, err := ctrl.ScheduleMatch(ctx, model.CompetitionPrimary, t1.Name, t2.Name, matchTime.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("error scheduling match: %v", err)
	}
	second, err := ctrl.ScheduleMatch(ctx, model.CompetitionPrimary, t2.Name, t1.Name, matchTime)
	if err != nil {
		t.Fatalf("error scheduling match: %v", err)
	}

	scheduled, err := ctrl.ListScheduled(ctx)
	if err != nil {
		t.Fatalf("error listing matches: %v", err)
	}
	firstIdx, secondIdx := -1, -1
	for i, m := range scheduled {
		switch m.ID {
		case first.ID:
			firstIdx = i
		case second.ID:
			secondIdx = i
		}
	}
	if firstIdx < 0 || secondIdx < 0 || firstIdx > secondIdx {
		t.Errorf("expected matches in creation order, got indexes %d and %d", firstIdx, secondIdx)
	}

	if err := ctrl.MarkCompleted(ctx, first.ID); err != nil {
		t.Fatalf("error completing match: %v", err)
	}
	err = ctrl.MarkCompleted(ctx, first.ID)
	if !errors.Is(err, model.ErrAlreadyCompleted) {
		t.Errorf("expected AlreadyCompleted, got: %v", err)
	}
	err = ctrl.MarkCompleted(ctx, -1)
	if !errors.Is(err, model.ErrNoSuchMatch) {
		t.Errorf("expected NoSuchMatch, got: %v", err)
	}

	completed, err := ctrl.ListMatches(ctx, model.StatusCompleted)
	if err != nil {
		t.Fatalf("error listing matches: %v", err)
	}
	found := false
	for _, m := range completed {
		found = found || m.ID == first.ID
	}
	if !found {
		t.Errorf("expected match #%d to be listed as completed", first.ID)
	}

	if _, err := ctrl.ListMatches(ctx, model.MatchStatus("postponed")); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got: %v", err)
	}
	if _, err := ctrl.GetMatch(ctx, -1); !errors.Is(err, model.ErrNoSuchMatch) {
		t.Errorf("expected NoSuchMatch, got: %v", err)
	}
}
