package bootstrap

import (
	"log/slog"

	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger also installs the logger as the slog default, which the
// infra layer logs through.
func NewLogger(cfg config.Config) *slog.Logger {
	logger := middleware.NewLogger(cfg.Log)
	slog.SetDefault(logger)
	return logger
}
