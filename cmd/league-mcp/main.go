package main

import (
	"context"
	"os"

	"github.com/itbasis/go-clock"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mww/league_manager/config"
	"github.com/mww/league_manager/controller"
	"github.com/mww/league_manager/db"
	"github.com/mww/league_manager/mcpserver"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("error loading config")
	}

	// stdout carries the protocol, so logs go to stderr.
	logger := cfg.Logger()
	logger.SetOutput(os.Stderr)

	clock := clock.New()
	db, err := db.New(context.Background(), cfg.ConnString, clock)
	if err != nil {
		logger.WithError(err).Fatal("cannot connect to DB")
	}

	ctrl, err := controller.New(clock, db, logger)
	if err != nil {
		logger.WithError(err).Fatal("error creating a new controller")
	}

	logger.Info("starting league MCP server")
	if err := server.ServeStdio(mcpserver.New(ctrl, logger)); err != nil {
		logger.WithError(err).Fatal("server failed")
	}
}
