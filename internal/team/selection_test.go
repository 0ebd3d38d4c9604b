package team

import (
	"testing"

	"github.com/eleven-am/battle-narrator/internal/pokedex"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
)

func selectionTracker(roster pokedex.Team, readings ...[]int) *SelectionTracker {
	ally := NewAllyTracker(fixedRoster(roster), nil, false)
	if roster != nil {
		ally.Request(false)
		ally.Handle(scene.ImageSelection, nil)
	}

	i := 0
	return NewSelectionTracker(ally, func(*screen.Frame) []int {
		reading := readings[i%len(readings)]
		i++
		return reading
	})
}

func announced(t *testing.T, tracker *SelectionTracker) []*Item {
	t.Helper()
	tracker.Request()
	items, ok := tracker.Handle(scene.ImageSelection, nil)
	if !ok {
		t.Fatal("no announcement after request")
	}
	return items
}

func TestSelectionResolvesItemsAgainstRoster(t *testing.T) {
	roster := pokedex.Team{id(25), id(6), id(445)}
	tracker := selectionTracker(roster, []int{2, 0, 1})

	items := announced(t, tracker)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0] == nil || items[0].IndexInTeam != 2 || *items[0].ID != *id(445) {
		t.Errorf("items[0] = %+v, want slot 2 resolved", items[0])
	}
	if items[1] == nil || *items[1].ID != *id(25) {
		t.Errorf("items[1] = %+v, want slot 0 resolved", items[1])
	}
}

func TestSelectionUnknownSlotBecomesNilItem(t *testing.T) {
	tracker := selectionTracker(pokedex.Team{id(25)}, []int{0, pokedex.SlotUnknown})

	items := announced(t, tracker)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[1] != nil {
		t.Errorf("items[1] = %+v, want nil for an unreadable slot", items[1])
	}
}

func TestSelectionIndexBeyondRosterHasNilID(t *testing.T) {
	tracker := selectionTracker(pokedex.Team{id(25)}, []int{0, 4})

	items := announced(t, tracker)
	if items[1] == nil || items[1].ID != nil {
		t.Errorf("items[1] = %+v, want an item with no identity", items[1])
	}
}

func TestSelectionIgnoresPartiallyHiddenReading(t *testing.T) {
	ally := NewAllyTracker(fixedRoster(pokedex.Team{id(25), id(6), id(445)}), nil, false)
	readings := [][]int{
		{0, 1, 2},
		{0, pokedex.SlotUnknown, 2},
		{0, pokedex.SlotUnknown, 2},
	}
	i := 0
	tracker := NewSelectionTracker(ally, func(*screen.Frame) []int {
		reading := readings[i]
		i++
		return reading
	})

	tracker.Handle(scene.ImageSelection, nil)
	tracker.Handle(scene.ImageSelection, nil)

	tracker.Request()
	items, _ := tracker.Handle(scene.ImageSelection, nil)
	if len(items) != 3 || items[1] == nil || items[1].IndexInTeam != 1 {
		t.Errorf("items = %+v, want the unobscured reading kept", items)
	}
}

func TestSelectionEmptyReadingNeedsFullLookback(t *testing.T) {
	ally := NewAllyTracker(fixedRoster(nil), nil, false)
	readings := [][]int{{0, 1}, {}, {}, {}}
	i := 0
	tracker := NewSelectionTracker(ally, func(*screen.Frame) []int {
		reading := readings[i]
		i++
		return reading
	})

	tracker.Handle(scene.ImageSelection, nil)
	tracker.Handle(scene.ImageSelection, nil)

	tracker.Request()
	items, _ := tracker.Handle(scene.ImageSelection, nil)
	if len(items) != 2 {
		t.Fatalf("one empty reading already forgot the selection: %+v", items)
	}

	tracker.Request()
	items, _ = tracker.Handle(scene.ImageSelection, nil)
	if len(items) != 0 {
		t.Errorf("selection still announced after the lookback filled with empties: %+v", items)
	}
}

func TestHiddenPartially(t *testing.T) {
	tests := []struct {
		name string
		ref  []int
		tgt  []int
		want bool
	}{
		{"slots obscured", []int{0, 1, 2}, []int{pokedex.SlotUnknown, pokedex.SlotUnknown, 2}, true},
		{"slot contradicts", []int{0, 1, 2}, []int{pokedex.SlotUnknown, pokedex.SlotUnknown, 3}, false},
		{"both empty", []int{}, []int{}, true},
		{"length mismatch", []int{0, 1, 2}, []int{0, 1}, false},
	}
	for _, tt := range tests {
		if got := hiddenPartially(tt.ref, tt.tgt); got != tt.want {
			t.Errorf("%s: hiddenPartially(%v, %v) = %t, want %t", tt.name, tt.ref, tt.tgt, got, tt.want)
		}
	}
}
