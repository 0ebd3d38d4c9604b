package reader

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/eleven-am/battle-narrator/internal/notification"
	"github.com/eleven-am/battle-narrator/internal/pokedex"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/screen"
	"github.com/eleven-am/battle-narrator/internal/shared"
)

type stubFetcher struct {
	err   error
	calls int
}

func (f *stubFetcher) Fetch(context.Context) (*screen.Frame, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return screen.NewFrame(gocv.NewMat()), nil
}

type nopTalker struct{}

func (nopTalker) Speak(string) error { return nil }

func testAgent(fetcher screen.Fetcher) *Agent {
	controller := testController(&stubOracle{scene: scene.ImageUnknown}, nil)
	messenger := notification.NewMessenger(
		notification.NewAllyHpFormatter(""),
		pokedex.NewMapper(nil),
		nil,
	)
	notifier := notification.NewNotifier(messenger, nopTalker{}, nil)
	return NewAgent(fetcher, controller, notifier, time.Millisecond, nil)
}

func TestAgentStopsOnContextCancel(t *testing.T) {
	fetcher := &stubFetcher{}
	agent := testAgent(fetcher)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := agent.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fetcher.calls == 0 {
		t.Error("agent never fetched a frame")
	}
}

func TestAgentKeepsGoingOnTransientErrors(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("capture hiccup")}
	agent := testAgent(fetcher)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := agent.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fetcher.calls < 2 {
		t.Errorf("agent stopped after %d fetches, want retries", fetcher.calls)
	}
}

func TestAgentPropagatesFatalError(t *testing.T) {
	fatal := fmt.Errorf("capture source gone: %w", shared.ErrFatal)
	agent := testAgent(&stubFetcher{err: fatal})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := agent.Run(ctx)
	if !shared.IsFatal(err) {
		t.Fatalf("Run = %v, want the fatal error", err)
	}
}
