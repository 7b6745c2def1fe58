package components

import (
	"context"
	"log/slog"

	"resource-hub/internal/infra/broker"
	"resource-hub/internal/pkg/clock"
	"resource-hub/internal/pkg/config"
	"resource-hub/internal/usecase/commands"
	"resource-hub/internal/usecase/shared"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewEventPublisher,
		NewOutboxRelay,
	),
)

type closingPublisher interface {
	commands.EventPublisher
	Close() error
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) commands.EventPublisher {
	var pub closingPublisher = broker.LogPublisher{}
	if cfg.Kafka.Enabled() {
		pub = broker.NewKafkaPublisher(cfg.Kafka)
	} else {
		slog.Warn("KAFKA_BROKERS not set, notifications will only be logged")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}

func NewOutboxRelay(uow shared.UnitOfWork, pub commands.EventPublisher, clk clock.Clock, cfg config.Config) commands.OutboxRelay {
	return commands.NewOutboxRelay(uow, pub, clk, cfg.Worker.MaxAttempts)
}
