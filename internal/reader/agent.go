package reader

import (
	"context"
	"log/slog"
	"time"

	"github.com/eleven-am/battle-narrator/internal/notification"
	"github.com/eleven-am/battle-narrator/internal/screen"
	"github.com/eleven-am/battle-narrator/internal/shared"
)

// DefaultInterval is the frame polling interval.
const DefaultInterval = 100 * time.Millisecond

// Agent polls frames at a fixed interval and speaks what the controller
// finds. When a frame takes longer than the interval the next one starts
// immediately.
type Agent struct {
	fetcher    screen.Fetcher
	controller *Controller
	notifier   *notification.Notifier
	interval   time.Duration
	logger     *slog.Logger
}

func NewAgent(
	fetcher screen.Fetcher,
	controller *Controller,
	notifier *notification.Notifier,
	interval time.Duration,
	logger *slog.Logger,
) *Agent {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		fetcher:    fetcher,
		controller: controller,
		notifier:   notifier,
		interval:   interval,
		logger:     logger.With("component", "agent"),
	}
}

// Run loops until the context is canceled or a fatal error occurs. Other
// errors are logged and the loop keeps going.
func (a *Agent) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		start := time.Now()
		if err := a.process(ctx); err != nil {
			if shared.IsFatal(err) {
				return err
			}
			a.logger.Warn("frame processing failed", "error", err)
		}

		elapsed := time.Since(start)
		if elapsed > a.interval {
			a.logger.Debug("polling interval overrun", "elapsed", elapsed)
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(a.interval - elapsed):
		}
	}
}

func (a *Agent) process(ctx context.Context) error {
	frame, err := a.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	defer frame.Close()

	notifications, err := a.controller.Handle(ctx, frame)
	for _, n := range notifications {
		if nerr := a.notifier.Notify(n); nerr != nil {
			return nerr
		}
	}
	return err
}
