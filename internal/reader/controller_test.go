package reader

import (
	"context"
	"testing"

	"gocv.io/x/gocv"

	"github.com/eleven-am/battle-narrator/internal/hp"
	"github.com/eleven-am/battle-narrator/internal/move"
	"github.com/eleven-am/battle-narrator/internal/notification"
	"github.com/eleven-am/battle-narrator/internal/ocr"
	"github.com/eleven-am/battle-narrator/internal/pokedex"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
	"github.com/eleven-am/battle-narrator/internal/team"
	"github.com/eleven-am/battle-narrator/internal/tera"
	"github.com/eleven-am/battle-narrator/internal/vision"
)

type stubOracle struct {
	scene      scene.ImageScene
	classified int
	roster     pokedex.Team
}

func (o *stubOracle) ClassifyScene(*screen.Frame) scene.ImageScene {
	o.classified++
	return o.scene
}

func (o *stubOracle) RecognizeAllyTeam(*screen.Frame, *vision.Pool) pokedex.Team {
	return o.roster
}

func (o *stubOracle) RecognizeOpponentTeam(*screen.Frame, *vision.Pool) pokedex.Team {
	return o.roster
}

func (o *stubOracle) RecognizeSelection(*screen.Frame) []int { return nil }

func (o *stubOracle) RecognizeEffectiveness(*screen.Frame, move.Scene, int) *move.Effectiveness {
	return nil
}

type alwaysOmen struct{}

func (alwaysOmen) DetectOmen(*screen.Frame) bool { return true }

type noScores struct{}

func (noScores) ScoreTypes(*screen.Frame, *vision.Pool) []tera.Detection { return nil }

func testController(oracle *stubOracle, teraDetector *tera.Detector) *Controller {
	opponentTeam := team.NewOpponentTracker(oracle.RecognizeOpponentTeam, nil)
	allyTeam := team.NewAllyTracker(oracle.RecognizeAllyTeam, nil, false)
	selection := team.NewSelectionTracker(allyTeam, oracle.RecognizeSelection)
	opponentHp := hp.NewOpponentTracker(nil)
	allyHp := hp.NewAllyTracker(nil)
	moveReader := move.NewReader(ocr.Disabled{}, nil, nil)

	return NewController(ControllerConfig{
		Oracle:       oracle,
		Screenshots:  NewScreenshots("", 1, nil),
		TeraDetector: teraDetector,
		SceneFlow:    NewSceneFlow(opponentTeam, allyTeam, opponentHp, allyHp, nil),
		Ally:         NewAllyRouter(selection, allyHp),
		OpponentTeam: opponentTeam,
		AllyTeam:     allyTeam,
		Selection:    selection,
		OpponentHp:   opponentHp,
		AllyHp:       allyHp,
		AllyReader:   hp.NewAllyReader(ocr.Disabled{}, nil),
		Moves:        NewMoveFlow(moveReader),
		Cursors:      NewCursorFlow(nil, nil, moveReader, allyTeam, nil),
	})
}

func testFrame(t *testing.T) *screen.Frame {
	t.Helper()
	frame := screen.NewFrame(gocv.NewMat())
	t.Cleanup(frame.Close)
	return frame
}

func TestControllerAnnouncementOrder(t *testing.T) {
	oracle := &stubOracle{
		scene:  scene.ImageSelection,
		roster: pokedex.Team{{DexNumber: 25}},
	}
	c := testController(oracle, nil)
	c.opponentTeam.Request(false)
	c.moves.Request()

	out, err := c.Handle(context.Background(), testFrame(t))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d notifications %v, want 3", len(out), out)
	}
	if n, ok := out[0].(notification.SceneChange); !ok || n.Change != scene.ChangeSelectionStart {
		t.Errorf("out[0] = %+v, want selection start", out[0])
	}
	if n, ok := out[1].(notification.Team); !ok || n.Direction != team.DirectionOpponent {
		t.Errorf("out[1] = %+v, want the opponent team", out[1])
	}
	if _, ok := out[2].(notification.Moves); !ok {
		t.Errorf("out[2] = %+v, want moves", out[2])
	}
}

func TestControllerSkipsPipelineWhileTeraSampling(t *testing.T) {
	oracle := &stubOracle{scene: scene.ImageCommand}
	detector := tera.NewDetector(alwaysOmen{}, noScores{}, nil, nil)
	c := testController(oracle, detector)

	out, err := c.Handle(context.Background(), testFrame(t))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("notifications during tera sampling: %v", out)
	}
	if oracle.classified != 0 {
		t.Error("scene classification ran while tera detection was in flight")
	}
}

func TestControllerQuietFrameEmitsNothing(t *testing.T) {
	oracle := &stubOracle{scene: scene.ImageUnknown}
	c := testController(oracle, nil)

	for i := 0; i < 3; i++ {
		out, err := c.Handle(context.Background(), testFrame(t))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if len(out) != 0 {
			t.Fatalf("frame %d produced %v, want nothing", i, out)
		}
	}
}

func TestControllerCommandStartArmsHpTrackers(t *testing.T) {
	oracle := &stubOracle{scene: scene.ImageCommand}
	c := testController(oracle, nil)

	out, err := c.Handle(context.Background(), testFrame(t))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %v, want only the command start", out)
	}

	// The next command-phase HP reading must now announce.
	if _, ok := c.allyHp.Handle(hp.Reading[hp.VisibleHp]{
		hp.SceneCommand: {Current: 100, Max: 100},
	}); !ok {
		t.Error("ally tracker was not armed by the command start")
	}
}
