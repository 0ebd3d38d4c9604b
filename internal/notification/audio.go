package notification

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
)

// Player plays WAV clips by piping them into an external playback command.
type Player struct {
	command []string
	logger  *slog.Logger
}

func NewPlayer(command []string, logger *slog.Logger) *Player {
	if len(command) == 0 {
		command = []string{"aplay", "-q", "-"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{command: command, logger: logger.With("component", "player")}
}

func (p *Player) Play(wav []byte) error {
	cmd := exec.Command(p.command[0], p.command[1:]...)
	cmd.Stdin = bytes.NewReader(wav)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("audio playback failed: %w", err)
	}
	return nil
}
