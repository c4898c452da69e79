package testutils

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/league_manager/containers"
	"github.com/mww/league_manager/db"
	"github.com/mww/league_manager/model"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// counter shared by the id and name generators so every test works on its
// own players and teams.
var ctr = int32(0)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

// Reset empties the database. Used by tests that look at the whole league,
// like dividing every primary team into divisions.
func (db *TestDB) Reset() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.container.Truncate(ctx); err != nil {
		log.Fatalf("error resetting test db: %v", err)
	}
}

func NewPlayerID() string {
	return fmt.Sprintf("%d", 100000+atomic.AddInt32(&ctr, 1))
}

func NewTeamName() string {
	return fmt.Sprintf("Team %d", atomic.AddInt32(&ctr, 1))
}

// InsertTeam stores a primary team captained by a new player with size-1
// additional members, bypassing the controller.
func InsertTeam(db db.DB, size int) (*model.Team, error) {
	captain := NewPlayerID()
	t := &model.Team{
		Name:        NewTeamName(),
		Competition: model.CompetitionPrimary,
		Captain:     captain,
		Members:     []string{captain},
	}
	for i := 1; i < size; i++ {
		t.Members = append(t.Members, NewPlayerID())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.CreateTeam(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// NewLogger returns a logger that discards everything but keeps the entries
// for inspection.
func NewLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}
