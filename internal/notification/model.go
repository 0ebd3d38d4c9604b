// Package notification turns tracked battle events into speech.
package notification

import (
	"github.com/eleven-am/battle-narrator/internal/cursor"
	"github.com/eleven-am/battle-narrator/internal/hp"
	"github.com/eleven-am/battle-narrator/internal/move"
	"github.com/eleven-am/battle-narrator/internal/pokedex"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/team"
	"github.com/eleven-am/battle-narrator/internal/tera"
)

// Notification is a closed set of announceable events.
type Notification interface {
	isNotification()
}

type SceneChange struct {
	Change scene.Change
}

type Team struct {
	Direction team.Direction
	Team      pokedex.Team
	WithTypes bool
}

type Selection struct {
	Items []*team.Item
}

type AllyHp struct {
	Value *hp.VisibleHp
}

type OpponentHp struct {
	Ratio *float64
}

type Moves struct {
	Items move.Moves
}

type Log struct {
	Lines []string
}

type Screenshot struct {
	Succeeded bool
}

type PokemonCursor struct {
	Scene  cursor.PokemonScene
	Cursor *cursor.Cursor[cursor.PokemonContent]
}

type SelectionCompleteButton struct{}

type CommandCursor struct {
	Cursor *cursor.CommandCursor
}

type MoveCursor struct {
	Cursor *cursor.Cursor[*move.Move]
}

type UnknownCursor struct{}

type TeraType struct {
	Primary  tera.Type
	Possible []tera.Type
}

func (SceneChange) isNotification()             {}
func (Team) isNotification()                    {}
func (Selection) isNotification()               {}
func (AllyHp) isNotification()                  {}
func (OpponentHp) isNotification()              {}
func (Moves) isNotification()                   {}
func (Log) isNotification()                     {}
func (Screenshot) isNotification()              {}
func (PokemonCursor) isNotification()           {}
func (SelectionCompleteButton) isNotification() {}
func (CommandCursor) isNotification()           {}
func (MoveCursor) isNotification()              {}
func (UnknownCursor) isNotification()           {}
func (TeraType) isNotification()                {}
