package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/eleven-am/battle-narrator/internal/notification"
	"github.com/eleven-am/battle-narrator/internal/pokedex"
	"github.com/eleven-am/battle-narrator/internal/tolerance"
)

func ProvideTalker(lc fx.Lifecycle, cfg *Config, logger *slog.Logger) (notification.Talker, error) {
	tol := tolerance.New(tolerance.Config{
		WarningCount: cfg.SpeechWarningCount,
		FatalCount:   cfg.SpeechFatalCount,
		Logger:       logger,
	})

	var inner notification.Talker
	switch cfg.SpeechBackend {
	case "voicevox":
		sink := notification.NewPlayer(cfg.AudioCommand, logger)
		talker := notification.NewVoicevoxTalker(notification.VoicevoxConfig{
			URL:         cfg.VoicevoxURL,
			Speaker:     cfg.VoicevoxSpeaker,
			VolumeScale: cfg.VoicevoxVolume,
			SpeedScale:  cfg.VoicevoxSpeed,
		}, sink, tol)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := talker.InitializeSpeaker(ctx); err != nil {
					logger.Warn("voicevox speaker warmup failed", "error", err)
				}
				return nil
			},
		})
		inner = talker
	case "bouyomichan":
		inner = notification.NewBouyomichanTalker(notification.BouyomichanConfig{
			URL:   cfg.BouyomichanURL,
			Speed: cfg.BouyomichanSpeed,
		}, tol)
	default:
		return nil, fmt.Errorf("unknown speech backend %q", cfg.SpeechBackend)
	}

	queue := notification.NewQueueTalker(inner, cfg.SpeechQueueSize, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			drainCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
			defer cancel()
			return queue.Close(drainCtx)
		},
	})
	return queue, nil
}

func ProvideMessenger(cfg *Config, mapper *pokedex.Mapper, logger *slog.Logger) *notification.Messenger {
	formatter := notification.NewAllyHpFormatter(notification.AllyHpFormat(cfg.AllyHpFormat))
	return notification.NewMessenger(formatter, mapper, logger)
}

func ProvideNotifier(messenger *notification.Messenger, talker notification.Talker, logger *slog.Logger) *notification.Notifier {
	return notification.NewNotifier(messenger, talker, logger)
}

var VoiceModule = fx.Options(
	fx.Provide(
		ProvideTalker,
		ProvideMessenger,
		ProvideNotifier,
	),
)
