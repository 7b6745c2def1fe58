package bootstrap

import (
	"log/slog"
	"os"

	"resource-hub/internal/pkg/config"
	"resource-hub/internal/pkg/logging"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger", fx.Provide(NewLogger))

// NewLogger also installs the logger as the slog default, since stores and
// use cases log through the package-level functions.
func NewLogger(cfg config.Config) *slog.Logger {
	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)
	return logger
}
