package move

import (
	"context"
	"image"

	"github.com/eleven-am/battle-narrator/internal/ocr"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
)

// EffectivenessFunc recognizes the matchup badge of one move slot from
// pixels. Supplied by the vision recognizer.
type EffectivenessFunc func(frame *screen.Frame, s Scene, slot int) *Effectiveness

// SelectedFunc reports whether a move slot shows the selection highlight.
// Only implemented for the command move list.
type SelectedFunc func(frame *screen.Frame, slot int) bool

type region struct {
	top, bottom, left, right int
}

var nameRegions = map[Scene]region{
	SceneCommand: {610, 646, 1480, 1873},
	ScenePokemon: {381, 420, 880, 1340},
}

var ppRegions = map[Scene]region{
	SceneCommand: {662, 698, 1749, 1873},
	ScenePokemon: {381, 420, 1345, 1505},
}

var slotHeights = map[Scene]int{
	SceneCommand: 112,
	ScenePokemon: 86,
}

const slotCount = 4

// Reader reads the move list with OCR plus the pixel-level recognizers.
type Reader struct {
	engine        ocr.Engine
	effectiveness EffectivenessFunc
	selected      SelectedFunc
}

func NewReader(engine ocr.Engine, effectiveness EffectivenessFunc, selected SelectedFunc) *Reader {
	return &Reader{engine: engine, effectiveness: effectiveness, selected: selected}
}

// Read reads all four slots. Returns nil when the scene has no move list;
// individual slots that fail to read are nil.
func (r *Reader) Read(ctx context.Context, observed scene.ImageScene, frame *screen.Frame) (Moves, error) {
	var s Scene
	switch observed {
	case scene.ImageCommandMove:
		s = SceneCommand
	case scene.ImageCommandPokemon:
		s = ScenePokemon
	default:
		return nil, nil
	}

	moves := make(Moves, slotCount)
	for slot := 0; slot < slotCount; slot++ {
		m, err := r.readSlot(ctx, frame, s, slot)
		if err != nil {
			return nil, err
		}
		moves[slot] = m
	}
	return moves, nil
}

// ReadSelected locates the highlighted slot and reads only that one. Cheaper
// than Read; the index is available even when the slot text is unreadable.
func (r *Reader) ReadSelected(ctx context.Context, observed scene.ImageScene, frame *screen.Frame) (int, *Move, error) {
	if observed != scene.ImageCommandMove {
		return -1, nil, nil
	}

	index := -1
	for slot := 0; slot < slotCount; slot++ {
		if r.selected != nil && r.selected(frame, slot) {
			index = slot
			break
		}
	}
	if index < 0 {
		return -1, nil, nil
	}

	m, err := r.readSlot(ctx, frame, SceneCommand, index)
	return index, m, err
}

func (r *Reader) readSlot(ctx context.Context, frame *screen.Frame, s Scene, slot int) (*Move, error) {
	selected := s == SceneCommand && r.selected != nil && r.selected(frame, slot)

	name, err := r.readName(ctx, frame, s, slot, selected)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}

	pp, err := r.readPP(ctx, frame, s, slot)
	if err != nil {
		return nil, err
	}

	var effectiveness *Effectiveness
	if r.effectiveness != nil {
		effectiveness = r.effectiveness(frame, s, slot)
	}
	return &Move{Name: name, Effectiveness: effectiveness, PP: pp, Selected: selected}, nil
}

func (r *Reader) readName(ctx context.Context, frame *screen.Frame, s Scene, slot int, selected bool) (string, error) {
	reg := nameRegions[s]
	offset := slotHeights[s] * slot
	area := frame.Region(image.Rect(reg.left, reg.top+offset, reg.right, reg.bottom+offset))
	defer area.Close()

	color := ocr.ColorGrey
	if selected {
		color = ocr.ColorBlack
	}
	return r.engine.ReadLine(ctx, area, color)
}

func (r *Reader) readPP(ctx context.Context, frame *screen.Frame, s Scene, slot int) (*PP, error) {
	reg := ppRegions[s]
	offset := slotHeights[s] * slot
	area := frame.Region(image.Rect(reg.left, reg.top+offset, reg.right, reg.bottom+offset))
	defer area.Close()

	fraction, err := r.engine.ReadFraction(ctx, area, ocr.ColorWhiteAndYellowAndRed)
	if err != nil || fraction == nil {
		return nil, err
	}
	return &PP{Current: fraction.Numerator, Max: fraction.Denominator}, nil
}
