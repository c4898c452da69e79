package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/league_manager/config"
	"github.com/mww/league_manager/controller"
	"github.com/mww/league_manager/db"
	"github.com/mww/league_manager/web"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("error loading config")
	}
	logger := cfg.Logger()

	clock := clock.New()
	db, err := db.New(context.Background(), cfg.ConnString, clock)
	if err != nil {
		logger.WithError(err).Fatal("cannot connect to DB")
	}

	ctrl, err := controller.New(clock, db, logger)
	if err != nil {
		logger.WithError(err).Fatal("error creating a new controller")
	}

	server, err := web.NewServer(cfg, ctrl, logger)
	if err != nil {
		logger.WithError(err).Fatal("error creating new web server")
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			logger.Error("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	logger.Info("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
