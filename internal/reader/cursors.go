package reader

import (
	"context"
	"log/slog"
	"sync"

	"github.com/eleven-am/battle-narrator/internal/cursor"
	"github.com/eleven-am/battle-narrator/internal/move"
	"github.com/eleven-am/battle-narrator/internal/notification"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
	"github.com/eleven-am/battle-narrator/internal/team"
)

// CursorFlow reads whichever cursor the current screen shows, on demand.
type CursorFlow struct {
	command  *cursor.CommandCursorReader
	pokemon  *cursor.PokemonCursorReader
	moves    *move.Reader
	allyTeam *team.Tracker
	logger   *slog.Logger

	mu        sync.Mutex
	requested bool
}

func NewCursorFlow(
	command *cursor.CommandCursorReader,
	pokemon *cursor.PokemonCursorReader,
	moves *move.Reader,
	allyTeam *team.Tracker,
	logger *slog.Logger,
) *CursorFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &CursorFlow{
		command:  command,
		pokemon:  pokemon,
		moves:    moves,
		allyTeam: allyTeam,
		logger:   logger.With("component", "cursor_flow"),
	}
}

func (f *CursorFlow) Request() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested = true
}

func (f *CursorFlow) Handle(ctx context.Context, observed scene.ImageScene, frame *screen.Frame) (notification.Notification, error) {
	f.mu.Lock()
	requested := f.requested
	f.requested = false
	f.mu.Unlock()
	if !requested {
		return nil, nil
	}
	f.logger.Debug("cursor recognition", "scene", observed.String())

	switch observed {
	case scene.ImageSelection:
		c, err := f.pokemon.Read(ctx, frame, cursor.PokemonSceneSelection, f.allyTeam.Current())
		if err != nil {
			return nil, err
		}
		if c == nil {
			// No colored cursor found means, by elimination, the complete
			// button is selected.
			return notification.SelectionCompleteButton{}, nil
		}
		return notification.PokemonCursor{Scene: cursor.PokemonSceneSelection, Cursor: c}, nil

	case scene.ImageCommand:
		return notification.CommandCursor{Cursor: f.command.Read(frame)}, nil

	case scene.ImageCommandMove:
		index, m, err := f.moves.ReadSelected(ctx, observed, frame)
		if err != nil {
			return nil, err
		}
		if index < 0 {
			return notification.MoveCursor{}, nil
		}
		return notification.MoveCursor{
			Cursor: &cursor.Cursor[*move.Move]{Index: index, Content: m},
		}, nil

	case scene.ImageCommandPokemon:
		c, err := f.pokemon.Read(ctx, frame, cursor.PokemonSceneCommandPokemon, f.allyTeam.Current())
		if err != nil {
			return nil, err
		}
		return notification.PokemonCursor{Scene: cursor.PokemonSceneCommandPokemon, Cursor: c}, nil

	default:
		return notification.UnknownCursor{}, nil
	}
}
