package shared

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsFatal(t *testing.T) {
	if !IsFatal(fmt.Errorf("capture gone: %w", ErrFatal)) {
		t.Error("expected a wrapped fatal error to be fatal")
	}
	if IsFatal(errors.New("transient")) {
		t.Error("expected a plain error to be non-fatal")
	}
}

func TestNormalizeBackoffDefaults(t *testing.T) {
	cfg := NormalizeBackoff(BackoffConfig{})
	if cfg.Initial != 100*time.Millisecond {
		t.Errorf("Initial = %v, want 100ms", cfg.Initial)
	}
	if cfg.MaxDelay != 2*time.Second {
		t.Errorf("MaxDelay = %v, want 2s", cfg.MaxDelay)
	}
	if cfg.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.MaxAttempts)
	}
}

func TestNormalizeBackoffKeepsExplicitValues(t *testing.T) {
	in := BackoffConfig{Initial: time.Second, MaxDelay: 4 * time.Second, MaxAttempts: 2}
	if got := NormalizeBackoff(in); got != in {
		t.Errorf("NormalizeBackoff(%+v) = %+v, want unchanged", in, got)
	}
}
