package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mww/league_manager/controller"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, logger *logrus.Logger, secret []byte, s settings) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	auth := authenticate(secret, render)

	r.Get("/", rootHandler(ctrl, render))

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", listTeamsHandler(ctrl, render))
		r.With(auth).Post("/", createTeamHandler(ctrl, render))

		r.Route("/{teamName}", func(r chi.Router) {
			r.Get("/", getTeamHandler(ctrl, render))

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Delete("/", deleteTeamHandler(ctrl, render))
				r.Post("/members", addPlayerHandler(ctrl, render))
				r.Delete("/members/{playerID}", removePlayerHandler(ctrl, render))
				r.Put("/captain", changeCaptainHandler(ctrl, render))
			})
		})
	})

	r.Route("/players", func(r chi.Router) {
		r.Get("/", listPlayerStatsHandler(ctrl, render))
		r.Get("/totals", leagueTotalsHandler(ctrl, render))
		r.Get("/{playerID}/team", getPlayerTeamHandler(ctrl, render))
		r.Get("/{playerID}/stats", getPlayerStatsHandler(ctrl, render))
	})

	r.Route("/matches", func(r chi.Router) {
		r.Get("/", listMatchesHandler(ctrl, render))
		r.With(auth).Post("/", scheduleMatchHandler(ctrl, render, s))
		r.Get("/{matchID:\\d+}", getMatchHandler(ctrl, render))
		r.Get("/{matchID:\\d+}/result", getMatchResultHandler(ctrl, render))
		r.With(auth).Post("/{matchID:\\d+}/result", submitResultHandler(ctrl, render))
	})

	r.Get("/standings", standingsHandler(ctrl, render))

	r.Route("/admin", func(r chi.Router) {
		r.Use(auth)
		r.Use(requireAdmin(render))
		r.Use(middleware.Timeout(30 * time.Second)) // Set a longer timeout for /admin actions

		r.Post("/divisions", initiateDivisionsHandler(ctrl, render, s))
		r.Post("/secondary", initiateSecondaryHandler(ctrl, render, s))
	})

	return r
}
