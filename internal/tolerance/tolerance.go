// Package tolerance keeps fallible external operations running until their
// failures become consecutive enough to warn about or give up on.
package tolerance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eleven-am/battle-narrator/internal/shared"
)

type Event int

const (
	EventErrorCountWarning Event = iota + 1
	EventErrorCountFatal
	EventRecoveryFailed
)

func (e Event) String() string {
	switch e {
	case EventErrorCountWarning:
		return "error_count_warning"
	case EventErrorCountFatal:
		return "error_count_fatal"
	case EventRecoveryFailed:
		return "recovery_failed"
	}
	return "unknown"
}

// Callback receives escalation events. It runs on the caller's goroutine.
type Callback func(Event)

// Recovery attempts to restore the supervised service after a warning.
// It reports whether the service is usable again.
type Recovery func(ctx context.Context) bool

type Config struct {
	WarningCount int
	FatalCount   int
	Callback     Callback
	Recovery     Recovery
	Logger       *slog.Logger
}

// Tolerance counts consecutive failures of one supervised operation.
// Any success resets the streak.
type Tolerance struct {
	warningCount int
	fatalCount   int
	callback     Callback
	recovery     Recovery
	log          *slog.Logger

	count int
}

func New(cfg Config) *Tolerance {
	if cfg.WarningCount <= 0 {
		cfg.WarningCount = 5
	}
	if cfg.FatalCount <= 0 {
		cfg.FatalCount = 15
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Tolerance{
		warningCount: cfg.WarningCount,
		fatalCount:   cfg.FatalCount,
		callback:     cfg.Callback,
		recovery:     cfg.Recovery,
		log:          cfg.Logger.With("component", "tolerance"),
	}
}

// Do runs op under supervision. A nil result resets the failure streak and
// returns nil. A failure increments the streak and returns the failure as-is
// until a threshold is crossed: at every multiple of the warning count the
// callback fires and recovery (if configured) runs; a failed recovery or
// reaching the fatal count returns an error wrapping shared.ErrFatal.
func (t *Tolerance) Do(ctx context.Context, op func() error) error {
	err := op()
	if err == nil {
		t.count = 0
		return nil
	}

	t.count++
	t.log.Debug("supervised operation failed", "count", t.count, "error", err)

	if t.count >= t.fatalCount {
		t.emit(EventErrorCountFatal)
		return fmt.Errorf("%d consecutive failures: %w", t.count, shared.ErrFatal)
	}

	if t.count%t.warningCount == 0 {
		t.emit(EventErrorCountWarning)
		if t.recovery != nil && !t.recovery(ctx) {
			t.emit(EventRecoveryFailed)
			return fmt.Errorf("recovery failed after %d failures: %w", t.count, shared.ErrFatal)
		}
	}
	return err
}

func (t *Tolerance) emit(event Event) {
	if t.callback != nil {
		t.callback(event)
	}
}
