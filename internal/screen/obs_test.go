package screen

import (
	"context"
	"testing"
	"time"

	"github.com/eleven-am/battle-narrator/internal/shared"
)

func TestObsRecoveryStopsOnCanceledContext(t *testing.T) {
	client := NewObsClient(ObsConfig{Host: "127.0.0.1", Port: 1})
	recovery := ObsRecovery(client, shared.BackoffConfig{Initial: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if recovery(ctx) {
		t.Error("recovery reported success with a canceled context")
	}
}

func TestObsRecoveryGivesUpAfterMaxAttempts(t *testing.T) {
	// Port 1 never hosts an obs-websocket listener, so every dial fails.
	client := NewObsClient(ObsConfig{Host: "127.0.0.1", Port: 1})
	recovery := ObsRecovery(client, shared.BackoffConfig{
		Initial:     time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
		MaxAttempts: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if recovery(ctx) {
		t.Error("recovery reported success against a dead endpoint")
	}
}
