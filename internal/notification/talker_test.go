package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/eleven-am/battle-narrator/internal/shared"
)

type stubTalker struct {
	mu      sync.Mutex
	texts   []string
	started chan struct{}
	block   chan struct{}
	err     error
}

func (s *stubTalker) Speak(text string) error {
	if s.started != nil {
		select {
		case s.started <- struct{}{}:
		default:
		}
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	s.texts = append(s.texts, text)
	s.mu.Unlock()
	return s.err
}

func (s *stubTalker) spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

func TestQueueTalkerSpeaksInOrder(t *testing.T) {
	inner := &stubTalker{}
	talker := NewQueueTalker(inner, 5, nil)

	for _, text := range []string{"a", "b", "c"} {
		if err := talker.Speak(text); err != nil {
			t.Fatalf("Speak(%q): %v", text, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := talker.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	spoken := inner.spoken()
	if len(spoken) != 3 || spoken[0] != "a" || spoken[2] != "c" {
		t.Errorf("spoken = %v, want [a b c]", spoken)
	}
}

func TestQueueTalkerDropsNewestWhenFull(t *testing.T) {
	inner := &stubTalker{
		started: make(chan struct{}, 1),
		block:   make(chan struct{}),
	}
	talker := NewQueueTalker(inner, 2, nil)

	talker.Speak("a")
	<-inner.started // the worker now holds "a", the queue is empty

	talker.Speak("b")
	talker.Speak("c")
	talker.Speak("d") // backlog full, dropped

	close(inner.block)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := talker.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	spoken := inner.spoken()
	if len(spoken) != 3 {
		t.Fatalf("spoken = %v, want the first three utterances", spoken)
	}
	for _, text := range spoken {
		if text == "d" {
			t.Error("dropped utterance was spoken")
		}
	}
}

func TestQueueTalkerFatalErrorStopsWorker(t *testing.T) {
	inner := &stubTalker{err: fmt.Errorf("backend gone: %w", shared.ErrFatal)}
	talker := NewQueueTalker(inner, 5, nil)

	talker.Speak("a")
	select {
	case <-talker.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on a fatal error")
	}

	if !shared.IsFatal(talker.Err()) {
		t.Errorf("Err() = %v, want fatal", talker.Err())
	}
	if err := talker.Speak("b"); !shared.IsFatal(err) {
		t.Errorf("Speak after fatal = %v, want the fatal error", err)
	}
}
