package reader

import (
	"context"

	"github.com/eleven-am/battle-narrator/internal/battlelog"
	"github.com/eleven-am/battle-narrator/internal/notification"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
)

// LogFlow reads the message log every frame and releases each message once
// it has stabilized.
type LogFlow struct {
	reader     *battlelog.Reader
	stabilizer *battlelog.Stabilizer
}

func NewLogFlow(reader *battlelog.Reader) *LogFlow {
	return &LogFlow{reader: reader, stabilizer: battlelog.NewStabilizer()}
}

func (f *LogFlow) Handle(ctx context.Context, observed scene.ImageScene, frame *screen.Frame) (notification.Notification, error) {
	log, err := f.reader.Read(ctx, observed, frame)
	if err != nil {
		return nil, err
	}
	stable := f.stabilizer.Handle(log)
	if stable == nil {
		return nil, nil
	}
	return notification.Log{Lines: stable.Lines}, nil
}
