package reader

import (
	"context"
	"sync"

	"github.com/eleven-am/battle-narrator/internal/move"
	"github.com/eleven-am/battle-narrator/internal/notification"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
)

// MoveFlow reads the move list on demand.
type MoveFlow struct {
	reader *move.Reader

	mu        sync.Mutex
	requested bool
}

func NewMoveFlow(reader *move.Reader) *MoveFlow {
	return &MoveFlow{reader: reader}
}

func (f *MoveFlow) Request() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested = true
}

func (f *MoveFlow) Handle(ctx context.Context, observed scene.ImageScene, frame *screen.Frame) (notification.Notification, error) {
	f.mu.Lock()
	requested := f.requested
	f.requested = false
	f.mu.Unlock()
	if !requested {
		return nil, nil
	}

	items, err := f.reader.Read(ctx, observed, frame)
	if err != nil {
		return nil, err
	}
	return notification.Moves{Items: items}, nil
}
