// Package reader drives per-frame recognition and decides what gets spoken
// when.
package reader

import (
	"sync"

	"github.com/eleven-am/battle-narrator/internal/hp"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/team"
)

// AllyRouter resolves the "read my side" request. What that means depends on
// where the player is: during selection it is the picked roster slots,
// in battle it is the ally's HP.
type AllyRouter struct {
	selection *team.SelectionTracker
	allyHp    *hp.Tracker[hp.VisibleHp]

	mu        sync.Mutex
	requested bool
}

func NewAllyRouter(selection *team.SelectionTracker, allyHp *hp.Tracker[hp.VisibleHp]) *AllyRouter {
	return &AllyRouter{selection: selection, allyHp: allyHp}
}

func (r *AllyRouter) Request() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requested = true
}

// Handle routes a pending request based on the stabilized scene.
func (r *AllyRouter) Handle(s scene.Scene) {
	r.mu.Lock()
	requested := r.requested
	r.requested = false
	r.mu.Unlock()
	if !requested {
		return
	}

	switch s.Group() {
	case scene.GroupSelection, scene.GroupSelectionComplete:
		r.selection.Request()
	default:
		r.allyHp.Request()
	}
}
