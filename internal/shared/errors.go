package shared

import (
	"errors"
	"time"
)

// ErrFatal marks conditions that must stop the polling loop instead of being
// absorbed by the per-cycle error handler.
var ErrFatal = errors.New("fatal")

func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

type BackoffConfig struct {
	Initial     time.Duration
	MaxDelay    time.Duration
	MaxAttempts int
}

func NormalizeBackoff(cfg BackoffConfig) BackoffConfig {
	if cfg.Initial <= 0 {
		cfg.Initial = 100 * time.Millisecond
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 2 * time.Second
	}
	return cfg
}
