package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"resource-hub/cmd/bootstrap"
	"resource-hub/internal/pkg/config"
	"resource-hub/internal/usecase/commands"

	"go.uber.org/fx"
)

// sweeper completes approved reservations whose window has passed and
// relays queued notifications. The API process never does either.
type sweeper struct {
	cmds   commands.ReservationCommands
	relay  commands.OutboxRelay
	cfg    config.WorkerConfig
	logger *slog.Logger
}

func (s *sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *sweeper) tick(ctx context.Context) {
	completed, err := s.cmds.CompleteExpired(ctx, s.cfg.CompleteBatch)
	if err != nil {
		s.logger.Error("Completion sweep failed", "error", err.Error(), "completed", completed)
	} else if completed > 0 {
		s.logger.Info("Completed expired reservations", "count", completed)
	}

	result, err := s.relay.Relay(ctx, s.cfg.RelayBatch)
	if err != nil {
		s.logger.Error("Outbox relay failed", "error", err.Error())
		return
	}
	if result.Sent > 0 || result.Failed > 0 || result.Unmarked > 0 {
		s.logger.Info("Relayed notifications",
			"sent", result.Sent,
			"failed", result.Failed,
			"unmarked", result.Unmarked)
	}
}

func startSweeper(lc fx.Lifecycle, cmds commands.ReservationCommands, relay commands.OutboxRelay, cfg config.Config, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s := &sweeper{cmds: cmds, relay: relay, cfg: cfg.Worker, logger: logger}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("Starting worker", "interval", cfg.Worker.Interval.String())
			go func() {
				defer close(done)
				s.run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			logger.Info("Stopping worker")
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.WorkerModule,
		fx.Invoke(startSweeper),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("Failed to start worker", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		slog.Error("Failed to stop worker cleanly", "error", err)
	}
}
