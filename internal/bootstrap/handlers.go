package bootstrap

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/eleven-am/battle-narrator/internal/control"
)

const version = "1.0.0"

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideControlHandler(core *Core, logger *slog.Logger) *control.Handler {
	return control.NewHandler(
		core.OpponentTeam,
		core.OpponentHp,
		core.Ally,
		core.Moves,
		core.Cursors,
		core.Screenshots,
		logger,
	)
}

func RegisterRoutes(e *echo.Echo, h *control.Handler) {
	h.RegisterRoutes(e.Group("/api"))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideControlHandler,
	),
	fx.Invoke(RegisterRoutes),
)
