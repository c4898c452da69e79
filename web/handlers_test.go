package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mww/league_manager/controller/mockcontroller"
	"github.com/mww/league_manager/model"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

var secret = []byte("test-secret")

var testSettings = settings{
	location:     time.UTC,
	divisions:    []string{"Division 1", "Division 2"},
	divisionSize: 8,
	qualifiers:   4,
	groupSize:    4,
}

func newTestRouter(ctrl *mockcontroller.C) http.Handler {
	logger, _ := test.NewNullLogger()
	return getRouter(ctrl, newRender(), logger, secret, testSettings)
}

func token(t *testing.T, playerID string, admin bool) string {
	t.Helper()
	tok, err := NewToken(secret, playerID, admin, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("error creating token: %v", err)
	}
	return tok
}

func doRequest(t *testing.T, h http.Handler, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("error encoding body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var res errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("error decoding error response: %v", err)
	}
	return res.Error
}

func TestAuthenticate(t *testing.T) {
	expired, err := NewToken(secret, "p1", false, time.Now().Add(-2*time.Hour), time.Hour)
	if err != nil {
		t.Fatalf("error creating token: %v", err)
	}
	otherKey, err := NewToken([]byte("other-secret"), "p1", false, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("error creating token: %v", err)
	}

	tests := map[string]struct {
		token    string
		exStatus int
	}{
		"no token":          {token: "", exStatus: http.StatusUnauthorized},
		"garbage":           {token: "not-a-jwt", exStatus: http.StatusUnauthorized},
		"expired":           {token: expired, exStatus: http.StatusUnauthorized},
		"wrong signing key": {token: otherKey, exStatus: http.StatusUnauthorized},
		"valid":             {token: token(t, "p1", false), exStatus: http.StatusCreated},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := &mockcontroller.C{}
			ctrl.On("CreateTeam", mock.Anything, "Alpha", "p1").
				Return(&model.Team{Name: "Alpha", Captain: "p1", Members: []string{"p1"}}, nil)

			rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/teams", tc.token, createTeamRequest{Name: "Alpha"})
			if rec.Code != tc.exStatus {
				t.Errorf("expected status %d, got: %d", tc.exStatus, rec.Code)
			}
			if tc.exStatus == http.StatusUnauthorized {
				ctrl.AssertNotCalled(t, "CreateTeam", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestNewToken_requiresPlayer(t *testing.T) {
	if _, err := NewToken(secret, "", true, time.Now(), time.Hour); err == nil {
		t.Errorf("expected an error for a token without a player")
	}
}

func TestCreateTeamHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("CreateTeam", mock.Anything, "Alpha", "p1").
		Return(&model.Team{Name: "Alpha", Competition: model.CompetitionPrimary, Captain: "p1", Members: []string{"p1"}}, nil)

	rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/teams", token(t, "p1", false), createTeamRequest{Name: "Alpha"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got: %d", rec.Code)
	}

	var team model.Team
	if err := json.NewDecoder(rec.Body).Decode(&team); err != nil {
		t.Fatalf("error decoding team: %v", err)
	}
	if team.Name != "Alpha" || team.Captain != "p1" || team.Competition != model.CompetitionPrimary {
		t.Errorf("unexpected team: %v", team)
	}
	ctrl.AssertExpectations(t)
}

func TestBadRequests(t *testing.T) {
	tests := map[string]struct {
		method string
		path   string
		body   string
	}{
		"malformed json": {method: http.MethodPost, path: "/teams", body: "{"},
		"unknown field":  {method: http.MethodPost, path: "/teams", body: `{"team": "Alpha"}`},
		"match id overflow": {
			method: http.MethodGet, path: "/matches/99999999999",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := &mockcontroller.C{}
			rec := doRequest(t, newTestRouter(ctrl), tc.method, tc.path, token(t, "p1", false), tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got: %d", rec.Code)
			}
			if e := decodeError(t, rec); e.Code != "BAD_REQUEST" {
				t.Errorf("unexpected error code: %s", e.Code)
			}
		})
	}
}

func TestErrorStatus(t *testing.T) {
	tests := map[string]struct {
		err      error
		exStatus int
		exCode   string
		exMsg    string
	}{
		"not found": {
			err:      model.NoSuchTeam(model.CompetitionPrimary, "Ghosts"),
			exStatus: http.StatusNotFound, exCode: "NO_SUCH_TEAM",
			exMsg: "team 'Ghosts' does not exist in the primary competition",
		},
		"conflict": {
			err:      model.DuplicateTeam("Ghosts"),
			exStatus: http.StatusConflict, exCode: "DUPLICATE_TEAM",
			exMsg: "a team named 'Ghosts' already exists",
		},
		"validation": {
			err:      model.InvalidArgument("unknown competition"),
			exStatus: http.StatusUnprocessableEntity, exCode: "INVALID_ARGUMENT",
			exMsg: "unknown competition",
		},
		"permission": {
			err:      model.PermissionDenied("nope"),
			exStatus: http.StatusForbidden, exCode: "PERMISSION_DENIED",
			exMsg: "nope",
		},
		"infrastructure": {
			err:      errors.New("connection refused"),
			exStatus: http.StatusInternalServerError, exCode: "INTERNAL",
			exMsg: "internal error",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := &mockcontroller.C{}
			ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Ghosts").Return(nil, tc.err)

			rec := doRequest(t, newTestRouter(ctrl), http.MethodGet, "/teams/Ghosts", "", nil)
			if rec.Code != tc.exStatus {
				t.Errorf("expected status %d, got: %d", tc.exStatus, rec.Code)
			}
			e := decodeError(t, rec)
			if e.Code != tc.exCode || e.Message != tc.exMsg {
				t.Errorf("unexpected error body: %v", e)
			}
		})
	}
}

func TestTeamPermissions(t *testing.T) {
	alpha := &model.Team{Name: "Alpha", Captain: "cap", Members: []string{"cap", "p2"}}

	tests := map[string]struct {
		token    string
		exStatus int
	}{
		"captain":   {token: "cap", exStatus: http.StatusOK},
		"member":    {token: "p2", exStatus: http.StatusForbidden},
		"stranger":  {token: "p9", exStatus: http.StatusForbidden},
		"admin":     {token: "admin", exStatus: http.StatusOK},
		"anonymous": {token: "", exStatus: http.StatusUnauthorized},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := &mockcontroller.C{}
			ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Alpha").Return(alpha, nil)
			ctrl.On("AddPlayer", mock.Anything, "Alpha", "p3").Return(alpha, nil)

			tok := ""
			if tc.token != "" {
				tok = token(t, tc.token, tc.token == "admin")
			}
			rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/teams/Alpha/members", tok, playerRequest{PlayerID: "p3"})
			if rec.Code != tc.exStatus {
				t.Errorf("expected status %d, got: %d", tc.exStatus, rec.Code)
			}
			if tc.exStatus != http.StatusOK {
				ctrl.AssertNotCalled(t, "AddPlayer", mock.Anything, mock.Anything, mock.Anything)
			}
			if tc.token == "admin" {
				ctrl.AssertNotCalled(t, "GetTeam", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRosterHandlers(t *testing.T) {
	alpha := &model.Team{Name: "Alpha", Captain: "cap", Members: []string{"cap", "p2"}}
	tok := token(t, "cap", false)

	t.Run("remove player", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Alpha").Return(alpha, nil)
		ctrl.On("RemovePlayer", mock.Anything, "Alpha", "p2").
			Return(&model.Team{Name: "Alpha", Captain: "cap", Members: []string{"cap"}}, nil)

		rec := doRequest(t, newTestRouter(ctrl), http.MethodDelete, "/teams/Alpha/members/p2", tok, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got: %d", rec.Code)
		}
		ctrl.AssertExpectations(t)
	})

	t.Run("change captain", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Alpha").Return(alpha, nil)
		ctrl.On("ChangeCaptain", mock.Anything, "Alpha", "p2").Return("cap", nil)

		rec := doRequest(t, newTestRouter(ctrl), http.MethodPut, "/teams/Alpha/captain", tok, playerRequest{PlayerID: "p2"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got: %d", rec.Code)
		}

		var res map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if res["previous_captain"] != "cap" || res["captain"] != "p2" {
			t.Errorf("unexpected response: %v", res)
		}
	})

	t.Run("delete team", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Alpha").Return(alpha, nil)
		ctrl.On("DeleteTeam", mock.Anything, "Alpha").Return(nil)

		rec := doRequest(t, newTestRouter(ctrl), http.MethodDelete, "/teams/Alpha", tok, nil)
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected status 204, got: %d", rec.Code)
		}
		ctrl.AssertExpectations(t)
	})

	t.Run("unknown team", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Ghosts").
			Return(nil, model.NoSuchTeam(model.CompetitionPrimary, "Ghosts"))

		rec := doRequest(t, newTestRouter(ctrl), http.MethodDelete, "/teams/Ghosts", tok, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got: %d", rec.Code)
		}
		ctrl.AssertNotCalled(t, "DeleteTeam", mock.Anything, mock.Anything)
	})
}

func TestScheduleMatchHandler(t *testing.T) {
	alpha := &model.Team{Name: "Alpha", Captain: "cap1"}
	beta := &model.Team{Name: "Beta", Captain: "cap2"}
	when := time.Date(2024, 10, 5, 19, 30, 0, 0, time.UTC)

	tests := map[string]struct {
		player   string
		req      scheduleRequest
		exStatus int
	}{
		"captain of team 1": {
			player:   "cap1",
			req:      scheduleRequest{Team1: "Alpha", Team2: "Beta", Date: "2024-10-05", Time: "19:30"},
			exStatus: http.StatusCreated,
		},
		"captain of team 2": {
			player:   "cap2",
			req:      scheduleRequest{Competition: "primary", Team1: "Alpha", Team2: "Beta", Date: "2024-10-05", Time: "19:30"},
			exStatus: http.StatusCreated,
		},
		"not a captain": {
			player:   "p9",
			req:      scheduleRequest{Team1: "Alpha", Team2: "Beta", Date: "2024-10-05", Time: "19:30"},
			exStatus: http.StatusForbidden,
		},
		"bad date": {
			player:   "cap1",
			req:      scheduleRequest{Team1: "Alpha", Team2: "Beta", Date: "05/10/2024", Time: "19:30"},
			exStatus: http.StatusUnprocessableEntity,
		},
		"bad time": {
			player:   "cap1",
			req:      scheduleRequest{Team1: "Alpha", Team2: "Beta", Date: "2024-10-05", Time: "7pm"},
			exStatus: http.StatusUnprocessableEntity,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := &mockcontroller.C{}
			ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Alpha").Return(alpha, nil)
			ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Beta").Return(beta, nil)
			ctrl.On("ScheduleMatch", mock.Anything, model.CompetitionPrimary, "Alpha", "Beta", mock.MatchedBy(when.Equal)).
				Return(&model.ScheduledMatch{ID: 1, Competition: model.CompetitionPrimary, Team1: "Alpha", Team2: "Beta", ScheduledAt: when, Status: model.StatusScheduled}, nil)

			rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/matches", token(t, tc.player, false), tc.req)
			if rec.Code != tc.exStatus {
				t.Fatalf("expected status %d, got: %d", tc.exStatus, rec.Code)
			}
			if tc.exStatus != http.StatusCreated {
				ctrl.AssertNotCalled(t, "ScheduleMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}

			var m model.ScheduledMatch
			if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
				t.Fatalf("error decoding match: %v", err)
			}
			if m.ID != 1 || !m.ScheduledAt.Equal(when) {
				t.Errorf("unexpected match: %v", m)
			}
		})
	}
}

func TestParseMatchTime(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)

	got, err := parseMatchTime("2024-10-05", "19:30", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 10, 6, 2, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got: %v", want, got)
	}

	_, err = parseMatchTime("2024-13-05", "19:30", loc)
	if !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got: %v", err)
	}
}

func TestSubmitResultHandler(t *testing.T) {
	match := &model.ScheduledMatch{ID: 7, Competition: model.CompetitionPrimary, Team1: "Alpha", Team2: "Beta", Status: model.StatusScheduled}
	body := submitRequest{
		Team1Score: 3,
		Team2Score: 1,
		Team1Stats: "2/0/1\n1/2/0",
		Team2Stats: "1/0/3",
	}
	exReq := model.SubmitRequest{
		MatchID:     7,
		Competition: model.CompetitionPrimary,
		Team1Score:  3,
		Team2Score:  1,
		Team1Lines:  []string{"2/0/1", "1/2/0"},
		Team2Lines:  []string{"1/0/3"},
	}

	t.Run("captain submits", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("GetMatch", mock.Anything, int32(7)).Return(match, nil)
		ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Alpha").Return(&model.Team{Name: "Alpha", Captain: "cap1"}, nil)
		ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Beta").Return(&model.Team{Name: "Beta", Captain: "cap2"}, nil)
		ctrl.On("Submit", mock.Anything, exReq).Return(&model.MatchResult{MatchID: 7, Team1Score: 3, Team2Score: 1}, nil)

		rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/matches/7/result", token(t, "cap2", false), body)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got: %d", rec.Code)
		}
		ctrl.AssertExpectations(t)
	})

	t.Run("team 1 deleted", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("GetMatch", mock.Anything, int32(7)).Return(match, nil)
		ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Alpha").
			Return(nil, model.NoSuchTeam(model.CompetitionPrimary, "Alpha"))
		ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Beta").Return(&model.Team{Name: "Beta", Captain: "cap2"}, nil)
		ctrl.On("Submit", mock.Anything, exReq).Return(nil, model.NoSuchTeam(model.CompetitionPrimary, "Alpha"))

		rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/matches/7/result", token(t, "cap2", false), body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got: %d", rec.Code)
		}
	})

	t.Run("rejected score", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("GetMatch", mock.Anything, int32(7)).Return(match, nil)
		ctrl.On("Submit", mock.Anything, exReq).Return(nil, model.ScoreGoalMismatch(model.Team1, 3, 2))

		rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/matches/7/result", token(t, "admin", true), body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected status 422, got: %d", rec.Code)
		}
		e := decodeError(t, rec)
		if e.Code != "SCORE_GOAL_MISMATCH" || !strings.Contains(e.Message, "doesn't match Team 1's score") {
			t.Errorf("unexpected error body: %v", e)
		}
	})

	t.Run("stranger", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("GetMatch", mock.Anything, int32(7)).Return(match, nil)
		ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Alpha").Return(&model.Team{Name: "Alpha", Captain: "cap1"}, nil)
		ctrl.On("GetTeam", mock.Anything, model.CompetitionPrimary, "Beta").Return(&model.Team{Name: "Beta", Captain: "cap2"}, nil)

		rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/matches/7/result", token(t, "p9", false), body)
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got: %d", rec.Code)
		}
		ctrl.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("unknown match", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("GetMatch", mock.Anything, int32(7)).Return(nil, model.NoSuchMatch(7))

		rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/matches/7/result", token(t, "cap1", false), body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got: %d", rec.Code)
		}
	})
}

func TestReadHandlers(t *testing.T) {
	tests := map[string]struct {
		path  string
		setup func(ctrl *mockcontroller.C)
	}{
		"list teams": {
			path: "/teams?competition=secondary",
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("ListTeams", mock.Anything, model.CompetitionSecondary).Return([]model.Team{{Name: "Alpha"}}, nil)
			},
		},
		"player team": {
			path: "/players/p1/team",
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("GetPlayerTeam", mock.Anything, model.CompetitionPrimary, "p1").Return(&model.Team{Name: "Alpha"}, nil)
			},
		},
		"player stats": {
			path: "/players/p1/stats",
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("GetPlayerStats", mock.Anything, "p1").Return(&model.PlayerStats{PlayerID: "p1"}, nil)
			},
		},
		"all player stats": {
			path: "/players",
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("ListPlayerStats", mock.Anything).Return([]model.PlayerStats{{PlayerID: "p1"}}, nil)
			},
		},
		"league totals": {
			path: "/players/totals",
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("LeagueTotals", mock.Anything).Return(&model.LeagueTotals{Players: 2, Goals: 5}, nil)
			},
		},
		"completed matches": {
			path: "/matches?status=Completed",
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("ListMatches", mock.Anything, model.StatusCompleted).Return([]model.ScheduledMatch{{ID: 1}}, nil)
			},
		},
		"all matches": {
			path: "/matches",
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("ListMatches", mock.Anything, model.MatchStatus("")).Return([]model.ScheduledMatch{{ID: 1}}, nil)
			},
		},
		"match": {
			path: "/matches/3",
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("GetMatch", mock.Anything, int32(3)).Return(&model.ScheduledMatch{ID: 3}, nil)
			},
		},
		"match result": {
			path: "/matches/3/result",
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("GetMatchResult", mock.Anything, int32(3)).Return(&model.MatchResult{MatchID: 3}, nil)
			},
		},
		"division standings": {
			path: "/standings?competition=primary&division=Division+1",
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("GetStandings", mock.Anything, model.CompetitionPrimary, "Division 1").Return([]model.Standing{{TeamName: "Alpha", Wins: 1}}, nil)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := &mockcontroller.C{}
			tc.setup(ctrl)

			rec := doRequest(t, newTestRouter(ctrl), http.MethodGet, tc.path, "", nil)
			if rec.Code != http.StatusOK {
				t.Errorf("expected status 200, got: %d (%s)", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("unexpected content type: %s", ct)
			}
			ctrl.AssertExpectations(t)
		})
	}
}

func TestAdminHandlers(t *testing.T) {
	t.Run("not an admin", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/admin/divisions", token(t, "cap1", false), divisionsRequest{Teams: []string{"Alpha"}})
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got: %d", rec.Code)
		}
		ctrl.AssertNotCalled(t, "InitiateDivisions", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("divisions use the default size", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("InitiateDivisions", mock.Anything, []string{"Alpha", "Beta"}, 8).
			Return([]model.DivisionAssignment{{Division: "Division 1", Teams: []string{"Alpha", "Beta"}}}, nil)

		rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/admin/divisions", token(t, "root", true), divisionsRequest{Teams: []string{"Alpha", "Beta"}})
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got: %d", rec.Code)
		}
		ctrl.AssertExpectations(t)
	})

	t.Run("secondary uses the defaults", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("InitiateSecondaryCompetition", mock.Anything, []string{"Division 1", "Division 2"}, 4, 4).
			Return(&model.Qualification{Groups: []model.Group{{Name: "Group A", Teams: []string{"Alpha"}}}}, nil)

		rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/admin/secondary", token(t, "root", true), secondaryRequest{})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got: %d", rec.Code)
		}

		var q model.Qualification
		if err := json.NewDecoder(rec.Body).Decode(&q); err != nil {
			t.Fatalf("error decoding qualification: %v", err)
		}
		if len(q.Groups) != 1 || q.Groups[0].Name != "Group A" {
			t.Errorf("unexpected qualification: %v", q)
		}
	})

	t.Run("secondary with explicit values", func(t *testing.T) {
		ctrl := &mockcontroller.C{}
		ctrl.On("InitiateSecondaryCompetition", mock.Anything, []string{"Division 3"}, 2, 3).
			Return(nil, model.InvalidArgument("unknown division"))

		req := secondaryRequest{Divisions: []string{"Division 3"}, Qualifiers: 2, GroupSize: 3}
		rec := doRequest(t, newTestRouter(ctrl), http.MethodPost, "/admin/secondary", token(t, "root", true), req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected status 422, got: %d", rec.Code)
		}
		ctrl.AssertExpectations(t)
	})
}
