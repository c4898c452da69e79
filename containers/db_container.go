package containers

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image      = "postgres:16.3-alpine"
	dbName     = "league_manager"
	dbUser     = "league"
	dbPassword = "secret"
)

// Every table of the schema, children first.
var tables = []string{
	"match_results",
	"scheduled_matches",
	"standings",
	"team_members",
	"teams",
	"player_stats",
}

type DBContainer struct {
	container *postgres.PostgresContainer
	connStr   string
}

// NewDBContainer starts postgres with the league schema loaded. Tests are run
// from a package directory, so the schema is found one level up.
func NewDBContainer() *DBContainer {
	ctx := context.Background()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithInitScripts(filepath.Join("..", "schema", "schema.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(10*time.Second)),
	)
	if err != nil {
		log.Fatalf("error starting container: %v", err)
	}

	// explicitly set sslmode=disable because the container is not configured to use TLS
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("error getting connection string: %v", err)
	}

	return &DBContainer{
		container: container,
		connStr:   connStr,
	}
}

func (c *DBContainer) Shutdown() {
	err := c.container.Terminate(context.Background())
	if err != nil {
		log.Fatalf("error terminating container: %v", err)
	}
}

func (c *DBContainer) ConnectionString() string {
	return c.connStr
}

// Truncate empties every table and restarts the id sequences, for tests that
// need to see the whole league rather than just the rows they created.
func (c *DBContainer) Truncate(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, c.connStr)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	sql := "TRUNCATE " + tables[0]
	for _, t := range tables[1:] {
		sql += ", " + t
	}
	_, err = conn.Exec(ctx, sql+" RESTART IDENTITY CASCADE")
	return err
}
