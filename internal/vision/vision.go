// Package vision holds the contracts with the pixel-level game recognizer
// and the worker pool used to spread its CPU-bound sub-work.
package vision

import (
	"github.com/eleven-am/battle-narrator/internal/move"
	"github.com/eleven-am/battle-narrator/internal/pokedex"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
)

// Oracle classifies frames. All methods are pure functions of the frame;
// the only failure mode is an absent/empty result.
type Oracle interface {
	ClassifyScene(frame *screen.Frame) scene.ImageScene
	RecognizeAllyTeam(frame *screen.Frame, pool *Pool) pokedex.Team
	RecognizeOpponentTeam(frame *screen.Frame, pool *Pool) pokedex.Team

	// RecognizeSelection returns the selected roster-slot indices in order,
	// pokedex.SlotUnknown where a slot is unreadable.
	RecognizeSelection(frame *screen.Frame) []int

	RecognizeEffectiveness(frame *screen.Frame, s move.Scene, slot int) *move.Effectiveness
}

// Nop is the degraded-mode oracle used when no recognizer is configured.
type Nop struct{}

func (Nop) ClassifyScene(*screen.Frame) scene.ImageScene { return scene.ImageUnknown }

func (Nop) RecognizeAllyTeam(*screen.Frame, *Pool) pokedex.Team { return nil }

func (Nop) RecognizeOpponentTeam(*screen.Frame, *Pool) pokedex.Team { return nil }

func (Nop) RecognizeSelection(*screen.Frame) []int { return nil }

func (Nop) RecognizeEffectiveness(*screen.Frame, move.Scene, int) *move.Effectiveness {
	return nil
}
