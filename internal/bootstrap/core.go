package bootstrap

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/eleven-am/battle-narrator/internal/battlelog"
	"github.com/eleven-am/battle-narrator/internal/cursor"
	"github.com/eleven-am/battle-narrator/internal/hp"
	"github.com/eleven-am/battle-narrator/internal/move"
	"github.com/eleven-am/battle-narrator/internal/ocr"
	"github.com/eleven-am/battle-narrator/internal/reader"
	"github.com/eleven-am/battle-narrator/internal/team"
	"github.com/eleven-am/battle-narrator/internal/vision"
)

// Core bundles the per-frame pipeline together with the request flags the
// control handler needs to reach. Both team trackers share one Go type, so
// assembling them in a single provider keeps the graph unambiguous.
type Core struct {
	Controller   *reader.Controller
	OpponentTeam *team.Tracker
	OpponentHp   *hp.Tracker[float64]
	Ally         *reader.AllyRouter
	Moves        *reader.MoveFlow
	Cursors      *reader.CursorFlow
	Screenshots  *reader.Screenshots
}

func ProvideCore(cfg *Config, oracle vision.Oracle, pool *vision.Pool, engine ocr.Engine, logger *slog.Logger) *Core {
	opponentTeam := team.NewOpponentTracker(oracle.RecognizeOpponentTeam, pool)
	allyTeam := team.NewAllyTracker(oracle.RecognizeAllyTeam, pool, cfg.NotifiesAllyTeam)
	selection := team.NewSelectionTracker(allyTeam, oracle.RecognizeSelection)
	opponentHp := hp.NewOpponentTracker(logger)
	allyHp := hp.NewAllyTracker(logger)

	moveReader := move.NewReader(engine, oracle.RecognizeEffectiveness, nil)
	moves := reader.NewMoveFlow(moveReader)
	ally := reader.NewAllyRouter(selection, allyHp)
	screenshots := reader.NewScreenshots(cfg.ScreenshotDir, cfg.ScreenshotBuffer, logger)

	textCursor := cursor.NewTextCursorReader(engine)
	pokemonCursor := cursor.NewPokemonCursorReader(textCursor, engine, nil)
	cursors := reader.NewCursorFlow(cursor.NewCommandCursorReader(), pokemonCursor, moveReader, allyTeam, logger)

	var logFlow *reader.LogFlow
	if cfg.NotifiesLog {
		logFlow = reader.NewLogFlow(battlelog.NewReader(engine, nil))
	}

	// TeraDetector stays unset until a pixel recognizer can supply omen
	// detection and type scoring, same as ProvideOracle.
	controller := reader.NewController(reader.ControllerConfig{
		Oracle:       oracle,
		Screenshots:  screenshots,
		SceneFlow:    reader.NewSceneFlow(opponentTeam, allyTeam, opponentHp, allyHp, logger),
		Ally:         ally,
		OpponentTeam: opponentTeam,
		AllyTeam:     allyTeam,
		Selection:    selection,
		OpponentHp:   opponentHp,
		AllyHp:       allyHp,
		AllyReader:   hp.NewAllyReader(engine, nil),
		Moves:        moves,
		Cursors:      cursors,
		LogFlow:      logFlow,
	})

	return &Core{
		Controller:   controller,
		OpponentTeam: opponentTeam,
		OpponentHp:   opponentHp,
		Ally:         ally,
		Moves:        moves,
		Cursors:      cursors,
		Screenshots:  screenshots,
	}
}

var CoreModule = fx.Options(
	fx.Provide(ProvideCore),
)
