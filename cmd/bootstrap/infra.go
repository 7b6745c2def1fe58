package bootstrap

import (
	"context"
	"log/slog"

	"resource-hub/internal/infra/db"
	"resource-hub/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config", fx.Provide(config.LoadConfig))

var DBModule = fx.Module("db", fx.Provide(NewPool))

// NewPool connects eagerly so a bad DSN fails the fx graph instead of the
// first request. The pool is closed after the HTTP server and worker stop.
func NewPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, closePool, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.StopHook(func() {
		stat := pool.Stat()
		slog.Info("Draining database pool",
			"acquired_conns", stat.AcquiredConns(),
			"total_conns", stat.TotalConns())
		closePool()
	}))

	return pool, nil
}
