//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "hub"
	pgPassword = "hubpass"
	pgPort     = nat.Port("5432/tcp")
)

var (
	pgContainerOnce sync.Once
	pgContainer     testcontainers.Container
	pgContainerErr  error
)

type postgresAddr struct {
	Host string
	Port nat.Port
}

func (a postgresAddr) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pgUser, pgPassword, a.Host, a.Port.Port(), database)
}

// sharedPostgres starts one throwaway Postgres per test process. Durability
// is switched off; the data directory lives in tmpfs.
func sharedPostgres(t *testing.T) postgresAddr {
	t.Helper()

	pgContainerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		pgContainer, pgContainerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "synchronous_commit=off",
					"-c", "full_page_writes=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return postgresAddr{Host: host, Port: port}.dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "resource-hub-e2e"},
			},
			Started: true,
		})
	})
	require.NoError(t, pgContainerErr, "failed to start postgres container")

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err, "failed to resolve postgres host")
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err, "failed to resolve postgres port")

	return postgresAddr{Host: host, Port: port}
}

// createDatabase gives the caller its own database on the shared server and
// drops it on cleanup. CREATE DATABASE can race the template lock when suites
// start together, so it is retried.
func createDatabase(t *testing.T, addr postgresAddr, name string) {
	t.Helper()

	admin, err := pgxpool.New(context.Background(), addr.dsn("postgres"))
	require.NoError(t, err, "admin connection failed")
	defer admin.Close()

	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		cancel()
		if err == nil || attempt == 5 {
			break
		}
		backoff := min(time.Duration(attempt)*500*time.Millisecond, 3*time.Second)
		slog.Warn("retrying database creation", "attempt", attempt, "error", err.Error(), "retry_wait", backoff)
		time.Sleep(backoff)
	}
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, addr.dsn("postgres"))
		if err != nil {
			slog.Warn("cleanup connection failed", "database", name, "error", err.Error())
			return
		}
		defer pool.Close()
		if _, err := pool.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", name, "error", err.Error())
		}
	})
}
