package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mww/league_manager/config"
	"github.com/mww/league_manager/controller"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type Server struct {
	server *http.Server
	logger *logrus.Logger
}

func NewServer(cfg *config.Config, ctrl controller.C, logger *logrus.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required to serve the web api")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	render := newRender()
	router := getRouter(ctrl, render, logger, []byte(cfg.JWTSecret), settingsFrom(cfg))

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: router,
		},
		logger: logger,
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.WithError(err).Error("error shutting down server")
		}
	}()

	s.logger.WithField("addr", s.server.Addr).Info("web server is listening")
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.WithError(err).Fatal("fatal error with server")
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		UnEscapeHTML: true,
	})
}

func settingsFrom(cfg *config.Config) settings {
	return settings{
		location:     cfg.Location(),
		divisions:    cfg.Divisions,
		divisionSize: cfg.DivisionSize,
		qualifiers:   cfg.QualifiersPerDivision,
		groupSize:    cfg.GroupSize,
	}
}
