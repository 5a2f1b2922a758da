// Package testdb starts one PostgreSQL container per test binary and hands out a
// freshly truncated, migrated pool to each test.
package testdb

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/aura-events/venues/pkg/database"
)

var (
	once    sync.Once
	initErr error
	pool    *pgxpool.Pool
)

// Pool returns a pool on a clean, migrated database. Skipped with -short.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in -short mode")
	}
	once.Do(start)
	require.NoError(t, initErr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx, `TRUNCATE locations, organizers RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func start() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		container, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("venues"),
			postgres.WithUsername("venues"),
			postgres.WithPassword("venues"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(time.Minute),
			),
		)
		if err != nil {
			initErr = err
			return
		}
		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			initErr = err
			return
		}
	}

	logger := zap.NewNop()
	p, err := database.NewPostgresPool(ctx, dsn, logger)
	if err != nil {
		initErr = err
		return
	}
	if err := database.Migrate(ctx, p, logger); err != nil {
		p.Close()
		initErr = err
		return
	}
	pool = p
}
