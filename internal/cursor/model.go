// Package cursor reads which menu item the player is pointing at.
package cursor

import (
	"github.com/eleven-am/battle-narrator/internal/hp"
	"github.com/eleven-am/battle-narrator/internal/pokedex"
)

// Cursor is a selected menu item.
type Cursor[T any] struct {
	Index   int
	Content T
}

// CommandCursor points into the top-level command menu, which has no
// readable content per item.
type CommandCursor = Cursor[struct{}]

// PokemonScene tells which of the two pokemon menus a cursor was read from.
type PokemonScene int

const (
	PokemonSceneSelection PokemonScene = iota
	PokemonSceneCommandPokemon
)

// PokemonContent is what could be read about the pokemon under the cursor.
type PokemonContent struct {
	ID      *pokedex.ID
	HP      *hp.VisibleHp
	Submenu *Cursor[string]
}
