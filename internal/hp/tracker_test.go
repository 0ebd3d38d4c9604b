package hp

import "testing"

func moveReading(current, max int) Reading[VisibleHp] {
	return Reading[VisibleHp]{SceneMove: {Current: current, Max: max}}
}

func commandReading(current, max int) Reading[VisibleHp] {
	return Reading[VisibleHp]{SceneCommand: {Current: current, Max: max}}
}

func TestTrackerEmitsWhenMoveHpSettles(t *testing.T) {
	tracker := NewAllyTracker(nil)

	steps := []struct {
		reading Reading[VisibleHp]
		want    *VisibleHp
	}{
		{moveReading(100, 100), nil},
		{moveReading(80, 100), nil},
		{moveReading(80, 100), &VisibleHp{Current: 80, Max: 100}},
		{moveReading(80, 100), nil},
	}
	for i, step := range steps {
		value, ok := tracker.Handle(step.reading)
		if step.want == nil {
			if ok {
				t.Errorf("step %d: emitted %+v, want nothing", i, value)
			}
			continue
		}
		if !ok {
			t.Errorf("step %d: emitted nothing, want %+v", i, *step.want)
			continue
		}
		if value == nil || *value != *step.want {
			t.Errorf("step %d: emitted %+v, want %+v", i, value, *step.want)
		}
	}
}

func TestTrackerEmitsWhenMoveHpVanishesWhileSettling(t *testing.T) {
	tracker := NewAllyTracker(nil)

	tracker.Handle(moveReading(100, 100))
	tracker.Handle(moveReading(60, 100))

	value, ok := tracker.Handle(Reading[VisibleHp]{})
	if !ok || value == nil {
		t.Fatalf("emitted nothing, want last unstable value")
	}
	if *value != (VisibleHp{Current: 60, Max: 100}) {
		t.Errorf("emitted %+v, want 60/100", *value)
	}
}

func TestTrackerIgnoresVanishWhileStable(t *testing.T) {
	tracker := NewAllyTracker(nil)

	tracker.Handle(moveReading(100, 100))
	if _, ok := tracker.Handle(Reading[VisibleHp]{}); ok {
		t.Error("emitted after stable value vanished, want nothing")
	}
}

func TestTrackerCommandReadingIsAuthoritative(t *testing.T) {
	tracker := NewAllyTracker(nil)

	if _, ok := tracker.Handle(commandReading(150, 150)); ok {
		t.Error("emitted unrequested command reading")
	}
	current := tracker.Current()
	if current == nil || *current != (VisibleHp{Current: 150, Max: 150}) {
		t.Errorf("current = %+v, want 150/150", current)
	}
}

func TestTrackerRequestEmitsCurrentValue(t *testing.T) {
	tracker := NewAllyTracker(nil)
	tracker.Handle(commandReading(150, 150))

	tracker.Request()
	value, ok := tracker.Handle(Reading[VisibleHp]{})
	if !ok || value == nil || *value != (VisibleHp{Current: 150, Max: 150}) {
		t.Fatalf("emitted %+v, want 150/150", value)
	}

	if _, ok := tracker.Handle(Reading[VisibleHp]{}); ok {
		t.Error("request was not cleared after emitting")
	}
}

func TestTrackerRequestBeforeAnyReadingEmitsNil(t *testing.T) {
	tracker := NewAllyTracker(nil)

	tracker.Request()
	value, ok := tracker.Handle(Reading[VisibleHp]{})
	if !ok {
		t.Fatal("emitted nothing, want a nil-value emission")
	}
	if value != nil {
		t.Errorf("emitted %+v, want nil value", *value)
	}
}

func TestTrackerRequestNextCommandWaitsForCommandReading(t *testing.T) {
	tracker := NewAllyTracker(nil)
	tracker.RequestNextCommand()

	if _, ok := tracker.Handle(moveReading(90, 100)); ok {
		t.Error("emitted on a move reading, want to wait for command")
	}

	value, ok := tracker.Handle(commandReading(90, 100))
	if !ok || value == nil || *value != (VisibleHp{Current: 90, Max: 100}) {
		t.Fatalf("emitted %+v, want 90/100", value)
	}
}

func TestOpponentTrackerToleratesTinyRatioJitter(t *testing.T) {
	tracker := NewOpponentTracker(nil)

	tracker.Handle(Reading[float64]{SceneMove: 1.0})
	tracker.Handle(Reading[float64]{SceneMove: 0.5})

	value, ok := tracker.Handle(Reading[float64]{SceneMove: 0.503})
	if !ok || value == nil {
		t.Fatal("jittered reading did not settle")
	}
	if *value != 0.503 {
		t.Errorf("emitted %v, want 0.503", *value)
	}
}
