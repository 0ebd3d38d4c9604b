package notification

import (
	"context"
	"log/slog"

	"github.com/eleven-am/battle-narrator/internal/shared"
)

// Talker speaks one text.
type Talker interface {
	Speak(text string) error
}

// Notifier renders notifications and hands them to the talker.
type Notifier struct {
	messenger *Messenger
	talker    Talker
	logger    *slog.Logger
}

func NewNotifier(messenger *Messenger, talker Talker, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{messenger: messenger, talker: talker, logger: logger.With("component", "notifier")}
}

func (n *Notifier) Notify(notification Notification) error {
	text := n.messenger.Text(notification)
	n.logger.Debug("notify", "text", text)
	return n.talker.Speak(text)
}

// DefaultQueueCapacity bounds how many pending utterances may pile up before
// new ones are dropped.
const DefaultQueueCapacity = 10

// QueueTalker decouples speech synthesis latency from the frame loop. Speak
// never blocks; when the backlog is full the newest utterance is dropped. A
// fatal backend error stops the worker and is reported through Err.
type QueueTalker struct {
	inner  Talker
	queue  chan string
	done   chan struct{}
	logger *slog.Logger

	err error
}

func NewQueueTalker(inner Talker, capacity int, logger *slog.Logger) *QueueTalker {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	t := &QueueTalker{
		inner:  inner,
		queue:  make(chan string, capacity),
		done:   make(chan struct{}),
		logger: logger.With("component", "queue_talker"),
	}
	go t.run()
	return t
}

func (t *QueueTalker) run() {
	defer close(t.done)
	for text := range t.queue {
		err := t.inner.Speak(text)
		if err == nil {
			continue
		}
		if shared.IsFatal(err) {
			t.err = err
			return
		}
		t.logger.Warn("speech failed", "error", err)
	}
}

func (t *QueueTalker) Speak(text string) error {
	select {
	case <-t.done:
		return t.err
	default:
	}

	select {
	case t.queue <- text:
	default:
		t.logger.Warn("speech backlog full, utterance dropped", "text", text)
	}
	return nil
}

// Done is closed once the worker has stopped, either by Close or by a fatal
// backend error.
func (t *QueueTalker) Done() <-chan struct{} {
	return t.done
}

// Err reports why the worker stopped. Only valid after Done is closed.
func (t *QueueTalker) Err() error {
	return t.err
}

// Close stops accepting utterances and waits for the backlog to drain, up to
// the context deadline.
func (t *QueueTalker) Close(ctx context.Context) error {
	close(t.queue)
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
