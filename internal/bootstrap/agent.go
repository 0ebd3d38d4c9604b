package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/eleven-am/battle-narrator/internal/notification"
	"github.com/eleven-am/battle-narrator/internal/reader"
	"github.com/eleven-am/battle-narrator/internal/screen"
)

func ProvideAgent(
	cfg *Config,
	fetcher screen.Fetcher,
	core *Core,
	notifier *notification.Notifier,
	logger *slog.Logger,
) *reader.Agent {
	interval := time.Duration(cfg.PollIntervalMs) * time.Millisecond
	return reader.NewAgent(fetcher, core.Controller, notifier, interval, logger)
}

// StartAgent runs the polling loop for the lifetime of the app. A fatal
// error from the loop shuts the whole process down.
func StartAgent(lc fx.Lifecycle, shutdowner fx.Shutdowner, agent *reader.Agent, core *Core, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := agent.Run(ctx); err != nil {
					logger.Error("reader agent stopped", "error", err)
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
			core.Screenshots.Close()
			return nil
		},
	})
}

var AgentModule = fx.Options(
	fx.Provide(ProvideAgent),
	fx.Invoke(StartAgent),
)
