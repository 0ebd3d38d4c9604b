// Package team tracks the two rosters and the ally's selection across
// frames.
package team

import (
	"sync"

	"github.com/eleven-am/battle-narrator/internal/pokedex"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
	"github.com/eleven-am/battle-narrator/internal/vision"
)

// Direction tells whose roster a reading belongs to.
type Direction int

const (
	DirectionAlly Direction = iota
	DirectionOpponent
)

// RecognizeFunc reads a full roster from a frame. Supplied by the vision
// recognizer.
type RecognizeFunc func(frame *screen.Frame, pool *vision.Pool) pokedex.Team

// Announcement is an emitted roster reading.
type Announcement struct {
	Direction Direction
	Team      pokedex.Team
	WithTypes bool
}

// Tracker keeps one roster current. Recognition only happens on scenes that
// show the roster, and only when an update or announcement was requested.
type Tracker struct {
	direction  Direction
	recognize  RecognizeFunc
	sceneShows func(scene.ImageScene) bool
	autoNotify bool
	pool       *vision.Pool

	mu              sync.Mutex
	current         pokedex.Team
	requested       bool
	updateRequested bool
	withTypes       bool
}

func NewTracker(
	direction Direction,
	recognize RecognizeFunc,
	sceneShows func(scene.ImageScene) bool,
	autoNotify bool,
	pool *vision.Pool,
) *Tracker {
	return &Tracker{
		direction:  direction,
		recognize:  recognize,
		sceneShows: sceneShows,
		autoNotify: autoNotify,
		pool:       pool,
	}
}

// NewAllyTracker reads the ally roster, which is only shown on the selection
// screen.
func NewAllyTracker(recognize RecognizeFunc, pool *vision.Pool, autoNotify bool) *Tracker {
	return NewTracker(
		DirectionAlly,
		recognize,
		func(s scene.ImageScene) bool { return s == scene.ImageSelection },
		autoNotify,
		pool,
	)
}

// NewOpponentTracker reads the opponent roster, shown on the selection and
// selection-complete screens. Updates always announce.
func NewOpponentTracker(recognize RecognizeFunc, pool *vision.Pool) *Tracker {
	return NewTracker(
		DirectionOpponent,
		recognize,
		func(s scene.ImageScene) bool {
			return s == scene.ImageSelection || s == scene.ImageSelectionComplete
		},
		true,
		pool,
	)
}

// Current returns the roster as last recognized.
func (t *Tracker) Current() pokedex.Team {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Request makes the next Handle call announce the roster, refreshing it
// first if the scene allows.
func (t *Tracker) Request(withTypes bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requested = true
	t.withTypes = withTypes
}

// RequestUpdate refreshes the roster at the next opportunity without forcing
// an announcement.
func (t *Tracker) RequestUpdate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.updateRequested = true
}

// Handle folds one frame into the tracker and returns the announcement to
// make, if any.
func (t *Tracker) Handle(s scene.ImageScene, frame *screen.Frame) *Announcement {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sceneShows(s) {
		if t.updateRequested || t.requested {
			t.current = t.recognize(frame, t.pool)
		}
		if t.updateRequested {
			t.updateRequested = false
			if t.autoNotify {
				t.requested = true
			}
		}
	}

	if !t.requested {
		return nil
	}
	t.requested = false
	return &Announcement{Direction: t.direction, Team: t.current, WithTypes: t.withTypes}
}
