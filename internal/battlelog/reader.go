package battlelog

import (
	"context"
	"image"

	"github.com/eleven-am/battle-narrator/internal/ocr"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
)

// BoxFunc reports whether the general log box is drawn. Supplied by the
// vision recognizer.
type BoxFunc func(frame *screen.Frame) bool

const (
	lineHeight = 65
	rubyHeight = 16
)

var logCoordinates = map[Type]struct {
	top, left, right int
}{
	TypeGeneral: {811, 535, 1388},
	TypeBattle:  {782, 285, 1650},
}

var logColors = map[Type]ocr.TextColor{
	TypeGeneral: ocr.ColorWhite,
	TypeBattle:  ocr.ColorWhiteAndYellow,
}

// Reader reads the message log with OCR.
type Reader struct {
	engine ocr.Engine
	box    BoxFunc
}

func NewReader(engine ocr.Engine, box BoxFunc) *Reader {
	return &Reader{engine: engine, box: box}
}

// Read reads whichever log box the frame shows, nil when neither does.
func (r *Reader) Read(ctx context.Context, s scene.ImageScene, frame *screen.Frame) (*Log, error) {
	if r.box != nil && r.box(frame) {
		return r.read(ctx, frame, TypeGeneral)
	}

	// The battle log only ever shows on scenes the classifier cannot name
	// or while a command is being canceled.
	if s != scene.ImageUnknown && s != scene.ImageCommandCanceling {
		return nil, nil
	}
	return r.read(ctx, frame, TypeBattle)
}

func (r *Reader) read(ctx context.Context, frame *screen.Frame, t Type) (*Log, error) {
	c := logCoordinates[t]
	area := frame.Region(image.Rect(c.left, c.top+rubyHeight, c.right, c.top+lineHeight*2))
	defer area.Close()

	lines, err := r.engine.ReadLog(ctx, area, ocr.LogFormat{
		Color:        logColors[t],
		LineHeight:   lineHeight,
		LineInterval: rubyHeight,
	})
	if err != nil || len(lines) == 0 {
		return nil, err
	}
	return &Log{Type: t, Lines: lines}, nil
}
