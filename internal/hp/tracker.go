package hp

import (
	"log/slog"
	"math"
	"sync"
)

// settleTracker suppresses mid-animation HP values. It emits a value once it
// has changed and then stopped changing, or vanished while still changing.
type settleTracker[T any] struct {
	eq     func(a, b T) bool
	logger *slog.Logger

	prev   *T
	stable bool
}

func (t *settleTracker[T]) handle(curr *T) *T {
	prev := t.prev
	t.prev = curr

	if curr == nil {
		if prev == nil || t.stable {
			return nil
		}
		t.stable = true
		t.logger.Debug("hp vanished while settling")
		return prev
	}

	if prev == nil {
		t.stable = true
		return nil
	}

	if !t.eq(*prev, *curr) {
		t.stable = false
		return nil
	}

	if t.stable {
		return nil
	}
	t.stable = true
	t.logger.Debug("hp settled")
	return curr
}

// Tracker decides when to announce an HP value. Command-phase readings are
// authoritative and update the current value directly; move-phase readings
// pass through the settle tracker first.
type Tracker[T any] struct {
	mu   sync.Mutex
	move settleTracker[T]

	current          *T
	requested        bool
	commandRequested bool
}

func NewTracker[T any](eq func(a, b T) bool, logger *slog.Logger) *Tracker[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker[T]{
		move: settleTracker[T]{eq: eq, logger: logger.With("component", "hp_tracker")},
	}
}

// NewAllyTracker tracks the ally's readable HP fraction.
func NewAllyTracker(logger *slog.Logger) *Tracker[VisibleHp] {
	return NewTracker(func(a, b VisibleHp) bool { return a == b }, logger)
}

// NewOpponentTracker tracks the opponent's gauge ratio. Readings within half
// a percent of each other count as unchanged.
func NewOpponentTracker(logger *slog.Logger) *Tracker[float64] {
	return NewTracker(func(a, b float64) bool { return math.Abs(a-b) < 0.005 }, logger)
}

// Current returns the last accepted HP value, nil before any reading.
func (t *Tracker[T]) Current() *T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Request makes the next Handle call emit the current value.
func (t *Tracker[T]) Request() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requested = true
}

// RequestNextCommand makes Handle emit the next time a command-phase value
// is read.
func (t *Tracker[T]) RequestNextCommand() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commandRequested = true
}

// Handle folds one frame's reading into the tracker. The second return is
// true when the value should be announced; the value itself may be nil when
// nothing has been read yet.
func (t *Tracker[T]) Handle(reading Reading[T]) (*T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.update(reading)

	if !t.requested {
		return nil, false
	}
	t.requested = false
	return t.current, true
}

func (t *Tracker[T]) update(reading Reading[T]) {
	var moveValue *T
	if v, ok := reading[SceneMove]; ok {
		moveValue = &v
	}
	settled := t.move.handle(moveValue)

	if v, ok := reading[SceneCommand]; ok {
		t.current = &v
		if t.commandRequested {
			t.commandRequested = false
			t.requested = true
		}
		return
	}

	if settled != nil {
		t.current = settled
		t.requested = true
	}
}
