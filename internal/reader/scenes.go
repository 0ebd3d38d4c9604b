package reader

import (
	"log/slog"

	"github.com/eleven-am/battle-narrator/internal/hp"
	"github.com/eleven-am/battle-narrator/internal/notification"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/team"
)

// SceneFlow reacts to scene transitions: it announces them, refreshes the
// rosters when a selection screen opens, and re-arms the HP trackers when a
// new command phase starts.
type SceneFlow struct {
	opponentTeam *team.Tracker
	allyTeam     *team.Tracker
	opponentHp   *hp.Tracker[float64]
	allyHp       *hp.Tracker[hp.VisibleHp]

	changes        *scene.ChangeDetector
	selectionStart *scene.SelectionStartDetector
	current        scene.Scene
	logger         *slog.Logger
}

func NewSceneFlow(
	opponentTeam, allyTeam *team.Tracker,
	opponentHp *hp.Tracker[float64],
	allyHp *hp.Tracker[hp.VisibleHp],
	logger *slog.Logger,
) *SceneFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &SceneFlow{
		opponentTeam:   opponentTeam,
		allyTeam:       allyTeam,
		opponentHp:     opponentHp,
		allyHp:         allyHp,
		changes:        scene.NewChangeDetector(),
		selectionStart: scene.NewSelectionStartDetector(),
		logger:         logger.With("component", "scene_flow"),
	}
}

func (f *SceneFlow) Handle(s scene.Scene, observed scene.ImageScene) []notification.Notification {
	if f.current != s {
		f.logger.Debug("scene changed", "from", f.current.String(), "to", s.String())
	}
	f.current = s

	f.selectionStart.Update(s)
	if f.selectionStart.Detect(observed) {
		f.opponentTeam.RequestUpdate()
		f.allyTeam.RequestUpdate()
	}

	var out []notification.Notification
	for _, change := range f.changes.Detect(s) {
		if change == scene.ChangeCommandStart {
			f.opponentHp.RequestNextCommand()
			f.allyHp.RequestNextCommand()
		}
		out = append(out, notification.SceneChange{Change: change})
	}
	return out
}
