package tolerance

import (
	"context"
	"errors"
	"testing"

	"github.com/eleven-am/battle-narrator/internal/shared"
)

var errBoom = errors.New("boom")

func failing() error { return errBoom }
func succeeding() error { return nil }

func TestTolerance_ThresholdSequence(t *testing.T) {
	var events []Event
	tol := New(Config{
		WarningCount: 2,
		FatalCount:   4,
		Callback:     func(e Event) { events = append(events, e) },
	})
	ctx := context.Background()

	if err := tol.Do(ctx, failing); !errors.Is(err, errBoom) {
		t.Fatalf("1st failure should return the failure, got %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("1st failure should emit nothing, got %v", events)
	}

	tol.Do(ctx, failing)
	if len(events) != 1 || events[0] != EventErrorCountWarning {
		t.Fatalf("2nd failure should emit one warning, got %v", events)
	}

	tol.Do(ctx, failing)
	if len(events) != 1 {
		t.Fatalf("3rd failure should emit nothing, got %v", events)
	}

	err := tol.Do(ctx, failing)
	if !shared.IsFatal(err) {
		t.Fatalf("4th failure should be fatal, got %v", err)
	}
	if len(events) != 2 || events[1] != EventErrorCountFatal {
		t.Fatalf("4th failure should emit exactly one fatal, got %v", events)
	}
}

func TestTolerance_SuccessResetsStreak(t *testing.T) {
	var events []Event
	tol := New(Config{
		WarningCount: 2,
		FatalCount:   4,
		Callback:     func(e Event) { events = append(events, e) },
	})
	ctx := context.Background()

	tol.Do(ctx, failing)
	if err := tol.Do(ctx, succeeding); err != nil {
		t.Fatalf("success should return nil, got %v", err)
	}
	tol.Do(ctx, failing)
	if len(events) != 0 {
		t.Errorf("streak reset, single failure should emit nothing, got %v", events)
	}
}

func TestTolerance_RecoveryRunsOnWarning(t *testing.T) {
	recovered := 0
	tol := New(Config{
		WarningCount: 2,
		FatalCount:   10,
		Recovery:     func(context.Context) bool { recovered++; return true },
	})
	ctx := context.Background()

	tol.Do(ctx, failing)
	if err := tol.Do(ctx, failing); shared.IsFatal(err) {
		t.Fatalf("successful recovery must not be fatal, got %v", err)
	}
	if recovered != 1 {
		t.Errorf("expected recovery to run once, ran %d times", recovered)
	}
}

func TestTolerance_RecoveryFailureIsFatal(t *testing.T) {
	var events []Event
	tol := New(Config{
		WarningCount: 2,
		FatalCount:   10,
		Callback:     func(e Event) { events = append(events, e) },
		Recovery:     func(context.Context) bool { return false },
	})
	ctx := context.Background()

	tol.Do(ctx, failing)
	err := tol.Do(ctx, failing)
	if !shared.IsFatal(err) {
		t.Fatalf("failed recovery should be fatal, got %v", err)
	}
	if len(events) != 2 || events[0] != EventErrorCountWarning || events[1] != EventRecoveryFailed {
		t.Errorf("expected [warning recovery_failed], got %v", events)
	}
}

func TestTolerance_RepeatedWarnings(t *testing.T) {
	var events []Event
	tol := New(Config{
		WarningCount: 2,
		FatalCount:   100,
		Callback:     func(e Event) { events = append(events, e) },
	})
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		tol.Do(ctx, failing)
	}
	if len(events) != 3 {
		t.Errorf("expected a warning at every multiple of 2, got %v", events)
	}
}
