package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mww/league_manager/controller"
	"github.com/mww/league_manager/model"
	"github.com/unrolled/render"
)

// settings are the league defaults handlers fall back on when a request
// leaves them out.
type settings struct {
	location     *time.Location
	divisions    []string
	divisionSize int
	qualifiers   int
	groupSize    int
}

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func listTeamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := ctrl.ListTeams(r.Context(), competitionParam(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, teams)
	}
}

func getTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := ctrl.GetTeam(r.Context(), competitionParam(r), chi.URLParam(r, "teamName"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, team)
	}
}

type createTeamRequest struct {
	Name string `json:"name"`
}

// createTeamHandler makes the caller the captain of the new team.
func createTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTeamRequest
		if !decode(render, w, r, &req) {
			return
		}

		c, _ := callerFrom(r.Context())
		team, err := ctrl.CreateTeam(r.Context(), req.Name, c.PlayerID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, team)
	}
}

type playerRequest struct {
	PlayerID string `json:"player_id"`
}

func addPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamName := chi.URLParam(r, "teamName")

		var req playerRequest
		if !decode(render, w, r, &req) {
			return
		}
		if err := canManageTeam(r.Context(), ctrl, teamName); err != nil {
			renderError(render, w, err)
			return
		}

		team, err := ctrl.AddPlayer(r.Context(), teamName, req.PlayerID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, team)
	}
}

func removePlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamName := chi.URLParam(r, "teamName")
		if err := canManageTeam(r.Context(), ctrl, teamName); err != nil {
			renderError(render, w, err)
			return
		}

		team, err := ctrl.RemovePlayer(r.Context(), teamName, chi.URLParam(r, "playerID"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, team)
	}
}

func changeCaptainHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamName := chi.URLParam(r, "teamName")

		var req playerRequest
		if !decode(render, w, r, &req) {
			return
		}
		if err := canManageTeam(r.Context(), ctrl, teamName); err != nil {
			renderError(render, w, err)
			return
		}

		previous, err := ctrl.ChangeCaptain(r.Context(), teamName, req.PlayerID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{
			"team":             teamName,
			"captain":          req.PlayerID,
			"previous_captain": previous,
		})
	}
}

func deleteTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamName := chi.URLParam(r, "teamName")
		if err := canManageTeam(r.Context(), ctrl, teamName); err != nil {
			renderError(render, w, err)
			return
		}

		if err := ctrl.DeleteTeam(r.Context(), teamName); err != nil {
			renderError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getPlayerTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := ctrl.GetPlayerTeam(r.Context(), competitionParam(r), chi.URLParam(r, "playerID"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, team)
	}
}

func getPlayerStatsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := ctrl.GetPlayerStats(r.Context(), chi.URLParam(r, "playerID"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, stats)
	}
}

func listPlayerStatsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := ctrl.ListPlayerStats(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, stats)
	}
}

func leagueTotalsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, err := ctrl.LeagueTotals(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, totals)
	}
}

func listMatchesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := model.MatchStatus(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))))
		matches, err := ctrl.ListMatches(r.Context(), status)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, matches)
	}
}

func getMatchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := matchIDParam(render, w, r)
		if !ok {
			return
		}

		m, err := ctrl.GetMatch(r.Context(), id)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, m)
	}
}

func getMatchResultHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := matchIDParam(render, w, r)
		if !ok {
			return
		}

		res, err := ctrl.GetMatchResult(r.Context(), id)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, res)
	}
}

type scheduleRequest struct {
	Competition string `json:"competition"`
	Team1       string `json:"team1"`
	Team2       string `json:"team2"`
	// Date (YYYY-MM-DD) and Time (HH:MM) are in the league's timezone.
	Date string `json:"date"`
	Time string `json:"time"`
}

func scheduleMatchHandler(ctrl controller.C, render *render.Render, s settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		if !decode(render, w, r, &req) {
			return
		}

		comp := parseCompetition(req.Competition)
		when, err := parseMatchTime(req.Date, req.Time, s.location)
		if err != nil {
			renderError(render, w, err)
			return
		}
		if err := canPlay(r.Context(), ctrl, comp, req.Team1, req.Team2); err != nil {
			renderError(render, w, err)
			return
		}

		m, err := ctrl.ScheduleMatch(r.Context(), comp, req.Team1, req.Team2, when)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, m)
	}
}

type submitRequest struct {
	Competition string `json:"competition"`
	Team1Score  int    `json:"team1_score"`
	Team2Score  int    `json:"team2_score"`
	// One goals/assists/saves line per player, in roster order.
	Team1Stats string `json:"team1_stats"`
	Team2Stats string `json:"team2_stats"`
}

func submitResultHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := matchIDParam(render, w, r)
		if !ok {
			return
		}

		var req submitRequest
		if !decode(render, w, r, &req) {
			return
		}

		m, err := ctrl.GetMatch(r.Context(), id)
		if err != nil {
			renderError(render, w, err)
			return
		}
		if err := canPlay(r.Context(), ctrl, m.Competition, m.Team1, m.Team2); err != nil {
			renderError(render, w, err)
			return
		}

		// Without an explicit competition the submission is for the match's own.
		comp := m.Competition
		if strings.TrimSpace(req.Competition) != "" {
			comp = model.ParseCompetition(req.Competition)
		}

		res, err := ctrl.Submit(r.Context(), model.SubmitRequest{
			MatchID:     id,
			Competition: comp,
			Team1Score:  req.Team1Score,
			Team2Score:  req.Team2Score,
			Team1Lines:  model.SplitStatLines(req.Team1Stats),
			Team2Lines:  model.SplitStatLines(req.Team2Stats),
		})
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, res)
	}
}

func standingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		division := strings.TrimSpace(r.URL.Query().Get("division"))
		standings, err := ctrl.GetStandings(r.Context(), competitionParam(r), division)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, standings)
	}
}

type divisionsRequest struct {
	Teams        []string `json:"teams"`
	DivisionSize int      `json:"division_size"`
}

func initiateDivisionsHandler(ctrl controller.C, render *render.Render, s settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req divisionsRequest
		if !decode(render, w, r, &req) {
			return
		}
		if req.DivisionSize == 0 {
			req.DivisionSize = s.divisionSize
		}

		assignments, err := ctrl.InitiateDivisions(r.Context(), req.Teams, req.DivisionSize)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, assignments)
	}
}

type secondaryRequest struct {
	Divisions  []string `json:"divisions"`
	Qualifiers int      `json:"qualifiers"`
	GroupSize  int      `json:"group_size"`
}

func initiateSecondaryHandler(ctrl controller.C, render *render.Render, s settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req secondaryRequest
		if !decode(render, w, r, &req) {
			return
		}
		if len(req.Divisions) == 0 {
			req.Divisions = s.divisions
		}
		if req.Qualifiers == 0 {
			req.Qualifiers = s.qualifiers
		}
		if req.GroupSize == 0 {
			req.GroupSize = s.groupSize
		}

		q, err := ctrl.InitiateSecondaryCompetition(r.Context(), req.Divisions, req.Qualifiers, req.GroupSize)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, q)
	}
}

// decode reads a JSON body into v. On failure the response has been written.
func decode(render *render.Render, w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		badRequest(render, w, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func matchIDParam(render *render.Render, w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "matchID"), 10, 32)
	if err != nil {
		badRequest(render, w, "invalid match id")
		return 0, false
	}
	return int32(id), true
}

// competitionParam defaults to the primary competition when the query leaves
// it out.
func competitionParam(r *http.Request) model.Competition {
	return parseCompetition(r.URL.Query().Get("competition"))
}

func parseCompetition(s string) model.Competition {
	if strings.TrimSpace(s) == "" {
		return model.CompetitionPrimary
	}
	return model.ParseCompetition(s)
}

func parseMatchTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(date)+" "+strings.TrimSpace(clock), loc)
	if err != nil {
		return time.Time{}, model.InvalidArgument("invalid date or time '%s %s', use YYYY-MM-DD and HH:MM", date, clock)
	}
	return t, nil
}
