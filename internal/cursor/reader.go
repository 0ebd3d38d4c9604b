package cursor

import (
	"context"
	"image"

	"gocv.io/x/gocv"

	"github.com/eleven-am/battle-narrator/internal/hp"
	"github.com/eleven-am/battle-narrator/internal/ocr"
	"github.com/eleven-am/battle-narrator/internal/pokedex"
	"github.com/eleven-am/battle-narrator/internal/screen"
)

// AllyPokemonFunc recognizes the ally pokemon on one row of the in-battle
// pokemon menu. Known dex numbers are searched first. Supplied by the vision
// recognizer.
type AllyPokemonFunc func(frame *screen.Frame, index int, preferredDex []int) *pokedex.ID

// TextCursorReader reads the cursor of a plain text submenu. Callers pass
// the coordinates of the menu's white border.
type TextCursorReader struct {
	engine ocr.Engine
}

const (
	textMenuPadding    = 10
	textMenuItemHeight = 80
)

func NewTextCursorReader(engine ocr.Engine) *TextCursorReader {
	return &TextCursorReader{engine: engine}
}

func (r *TextCursorReader) Read(ctx context.Context, frame *screen.Frame, top, left, width int) (*Cursor[string], error) {
	contentTop := top + textMenuPadding
	contentLeft := left + textMenuPadding
	contentWidth := width - textMenuPadding*2

	index := findVerticalCursorIndex(frame.Image, 4, contentTop+60, 10, contentLeft+2, 28, textMenuItemHeight)
	if index < 0 {
		return nil, nil
	}

	cursorTop := contentTop + textMenuItemHeight*index
	area := frame.Region(image.Rect(
		contentLeft+30,
		cursorTop+23,
		contentLeft+contentWidth-30,
		cursorTop+textMenuItemHeight-23,
	))
	defer area.Close()

	text, err := r.engine.ReadLine(ctx, area, ocr.ColorBlack)
	if err != nil {
		return nil, err
	}
	return &Cursor[string]{Index: index, Content: text}, nil
}

// CommandCursorReader reads the top-level command menu cursor.
type CommandCursorReader struct{}

const (
	commandMenuTop        = 780
	commandMenuHeight     = 84
	commandMenuItemHeight = commandMenuHeight + 4
)

func NewCommandCursorReader() *CommandCursorReader {
	return &CommandCursorReader{}
}

func (CommandCursorReader) Read(frame *screen.Frame) *CommandCursor {
	index := findVerticalCursorIndex(
		frame.Image, 3,
		commandMenuTop, commandMenuHeight-2,
		1840, 30,
		commandMenuItemHeight,
	)
	if index < 0 {
		return nil
	}
	return &CommandCursor{Index: index}
}

type pokemonMenuScale struct {
	top, height, left, width, itemHeight, submenuWidth int
}

var pokemonMenuScales = map[PokemonScene]pokemonMenuScale{
	PokemonSceneSelection:      {147, 108, 155, 650, 116, 338},
	PokemonSceneCommandPokemon: {160, 120, 80, 520, 126, 427},
}

var pokemonDetectionHeights = map[PokemonScene]int{
	PokemonSceneSelection:      10,
	PokemonSceneCommandPokemon: 20,
}

const pokemonSubmenuLeftOffset = 10

// PokemonCursorReader reads the cursor on the selection screen and the
// in-battle pokemon menu.
type PokemonCursorReader struct {
	text      *TextCursorReader
	engine    ocr.Engine
	recognize AllyPokemonFunc
}

func NewPokemonCursorReader(text *TextCursorReader, engine ocr.Engine, recognize AllyPokemonFunc) *PokemonCursorReader {
	return &PokemonCursorReader{text: text, engine: engine, recognize: recognize}
}

// Read reads the pokemon cursor. On the selection screen the cursor index
// lines up with the ally roster, so the identity comes from team; on the
// in-battle menu it is recognized from pixels, searching team's dex numbers
// first.
func (r *PokemonCursorReader) Read(ctx context.Context, frame *screen.Frame, s PokemonScene, team pokedex.Team) (*Cursor[PokemonContent], error) {
	scale := pokemonMenuScales[s]
	index := findVerticalCursorIndex(
		frame.Image, 6,
		scale.top+90, pokemonDetectionHeights[s],
		scale.left+2, 18,
		scale.itemHeight,
	)
	if index < 0 {
		return nil, nil
	}

	var visibleHp *hp.VisibleHp
	if s == PokemonSceneCommandPokemon {
		var err error
		visibleHp, err = r.readHp(ctx, frame, scale, index)
		if err != nil {
			return nil, err
		}
	}

	submenu, err := r.text.Read(
		ctx, frame,
		scale.top+scale.itemHeight*index,
		scale.left+scale.width+pokemonSubmenuLeftOffset,
		scale.submenuWidth,
	)
	if err != nil {
		return nil, err
	}

	var id *pokedex.ID
	switch s {
	case PokemonSceneSelection:
		if index < len(team) {
			id = team[index]
		}
	case PokemonSceneCommandPokemon:
		if r.recognize != nil {
			id = r.recognize(frame, index, preferredDexNumbers(team))
		}
	}

	return &Cursor[PokemonContent]{
		Index:   index,
		Content: PokemonContent{ID: id, HP: visibleHp, Submenu: submenu},
	}, nil
}

func (r *PokemonCursorReader) readHp(ctx context.Context, frame *screen.Frame, scale pokemonMenuScale, index int) (*hp.VisibleHp, error) {
	top := scale.top + 72 + scale.itemHeight*index
	area := frame.Region(image.Rect(105, top, 105+200, top+36))
	defer area.Close()

	fraction, err := r.engine.ReadFraction(ctx, area, ocr.ColorGrey)
	if err != nil || fraction == nil {
		return nil, err
	}
	return &hp.VisibleHp{Current: fraction.Numerator, Max: fraction.Denominator}, nil
}

func preferredDexNumbers(team pokedex.Team) []int {
	var dex []int
	for _, id := range team {
		if id != nil {
			dex = append(dex, id.DexNumber)
		}
	}
	return dex
}

// findVerticalCursorIndex scans an evenly spaced vertical menu for the item
// drawn with the yellow selection background. Returns -1 when none is.
func findVerticalCursorIndex(img gocv.Mat, count, top, height, left, width, itemHeight int) int {
	if visible := (img.Rows() - top + itemHeight - height) / itemHeight; visible < count {
		count = visible
	}
	for i := 0; i < count; i++ {
		t := top + itemHeight*i
		target := img.Region(image.Rect(left, t, left+width, t+height))
		selected := isSelectedBackground(target)
		target.Close()
		if selected {
			return i
		}
	}
	return -1
}

func isSelectedBackground(img gocv.Mat) bool {
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(
		img,
		gocv.NewScalar(0, 128, 192, 0),
		gocv.NewScalar(128, 255, 255, 0),
		&mask,
	)
	return gocv.CountNonZero(mask) > img.Rows()*img.Cols()*95/100
}
