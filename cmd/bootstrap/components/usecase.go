package components

import (
	"resource-hub/internal/domain/reservation"
	"resource-hub/internal/pkg/clock"
	"resource-hub/internal/pkg/config"
	"resource-hub/internal/usecase"
	"resource-hub/internal/usecase/commands"
	"resource-hub/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewBookingPolicy,
	reservation.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewBookingPolicy(cfg config.Config) reservation.Policy {
	return reservation.Policy{
		MinAdvance:  cfg.Booking.MinAdvance,
		MinDuration: cfg.Booking.MinDuration,
		MaxDuration: cfg.Booking.MaxDuration,
	}
}
