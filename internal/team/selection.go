package team

import (
	"sync"

	"github.com/eleven-am/battle-narrator/internal/pokedex"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
)

// SelectionFunc reads the selected roster-slot indices from a frame,
// pokedex.SlotUnknown where a slot is unreadable. Supplied by the vision
// recognizer.
type SelectionFunc func(frame *screen.Frame) []int

// Item is one announced selection slot, resolved against the ally roster. A
// nil Item stands for a slot whose roster index could not be read.
type Item struct {
	IndexInTeam int
	ID          *pokedex.ID
}

const selectionLookback = 3

// SelectionTracker follows which ally roster slots are picked for battle.
// The selection list flickers while the cursor moves over it, so the tracker
// keeps a short lookback and ignores readings that only hide known slots.
type SelectionTracker struct {
	ally      *Tracker
	recognize SelectionFunc

	mu        sync.Mutex
	buffer    [][]int
	requested bool
}

func NewSelectionTracker(ally *Tracker, recognize SelectionFunc) *SelectionTracker {
	return &SelectionTracker{ally: ally, recognize: recognize}
}

// Request makes the next Handle call announce the selection.
func (t *SelectionTracker) Request() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requested = true
}

// Handle folds one frame into the tracker. The second return is true when
// the selection should be announced.
func (t *SelectionTracker) Handle(s scene.ImageScene, frame *screen.Frame) ([]*Item, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s == scene.ImageSelection {
		selections := t.recognize(frame)

		// An empty-to-empty transition is worth remembering, so it is
		// accepted as-is. Anything else that only hides known slots is a
		// cursor artifact and is dropped.
		current := t.current()
		if len(current) == 0 || !hiddenPartially(current, selections) {
			t.push(selections)
		}
	}

	if !t.requested {
		return nil, false
	}
	t.requested = false

	roster := t.ally.Current()
	current := t.current()
	items := make([]*Item, 0, len(current))
	for _, index := range current {
		if index == pokedex.SlotUnknown {
			items = append(items, nil)
			continue
		}
		var id *pokedex.ID
		if index < len(roster) {
			id = roster[index]
		}
		items = append(items, &Item{IndexInTeam: index, ID: id})
	}
	return items, true
}

// current returns the newest non-empty reading. A momentary recognition miss
// shows up as an empty list, so emptiness only wins once it fills the whole
// lookback.
func (t *SelectionTracker) current() []int {
	for i := len(t.buffer) - 1; i >= 0; i-- {
		if len(t.buffer[i]) > 0 {
			return t.buffer[i]
		}
	}
	return nil
}

func (t *SelectionTracker) push(selections []int) {
	if len(t.buffer) == selectionLookback {
		copy(t.buffer, t.buffer[1:])
		t.buffer = t.buffer[:selectionLookback-1]
	}
	t.buffer = append(t.buffer, selections)
}

// hiddenPartially reports whether tgt is ref with some slots obscured.
func hiddenPartially(ref, tgt []int) bool {
	if len(ref) != len(tgt) {
		return false
	}
	for i := range ref {
		if ref[i] != tgt[i] && tgt[i] != pokedex.SlotUnknown {
			return false
		}
	}
	return true
}
