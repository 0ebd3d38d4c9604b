package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/eleven-am/battle-narrator/internal/ocr"
	"github.com/eleven-am/battle-narrator/internal/pokedex"
	"github.com/eleven-am/battle-narrator/internal/screen"
	"github.com/eleven-am/battle-narrator/internal/shared"
	"github.com/eleven-am/battle-narrator/internal/tolerance"
	"github.com/eleven-am/battle-narrator/internal/vision"
)

func ProvideDatabase(cfg *Config) (*gorm.DB, error) {
	return pokedex.Open(cfg.PokedexPath)
}

func ProvideMapper(db *gorm.DB) (*pokedex.Mapper, error) {
	records, err := pokedex.LoadAll(db)
	if err != nil {
		return nil, err
	}
	return pokedex.NewMapper(records), nil
}

func ProvideOcrEngine(lc fx.Lifecycle, cfg *Config, logger *slog.Logger) (ocr.Engine, error) {
	if cfg.OcrDisabled {
		logger.Info("ocr disabled, text recognition will return nothing")
		return ocr.Disabled{}, nil
	}
	engine, err := ocr.NewTesseract(ocr.TesseractConfig{
		Language: cfg.OcrLanguage,
		DataPath: cfg.TessdataPath,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return engine.Close() },
	})
	return engine, nil
}

func ProvideVisionPool(cfg *Config) *vision.Pool {
	return vision.NewPool(cfg.VisionWorkers)
}

// ProvideOracle hands out the degraded oracle. A trained pixel recognizer
// plugs in here once one is available.
func ProvideOracle() vision.Oracle {
	return vision.Nop{}
}

func ProvideFetcher(lc fx.Lifecycle, cfg *Config, logger *slog.Logger) (screen.Fetcher, error) {
	switch cfg.CaptureSource {
	case "obs":
		client := screen.NewObsClient(screen.ObsConfig{
			Host:     cfg.ObsHost,
			Port:     cfg.ObsPort,
			Password: cfg.ObsPassword,
			Logger:   logger,
		})
		tol := tolerance.New(tolerance.Config{
			WarningCount: cfg.CaptureWarningCount,
			FatalCount:   cfg.CaptureFatalCount,
			Recovery: screen.ObsRecovery(client, shared.BackoffConfig{
				Initial: time.Second,
			}),
			Logger: logger,
		})
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return client.Close() },
		})
		return screen.NewObsFetcher(client, cfg.ObsSource, tol), nil

	case "device":
		// The fetcher needs the tolerance at construction and the tolerance
		// needs the fetcher's recovery, so the recovery closes over the
		// variable assigned below.
		var fetcher *screen.DeviceFetcher
		tol := tolerance.New(tolerance.Config{
			WarningCount: cfg.CaptureWarningCount,
			FatalCount:   cfg.CaptureFatalCount,
			Recovery: func(ctx context.Context) bool {
				if fetcher == nil {
					return false
				}
				return fetcher.Recovery()(ctx)
			},
			Logger: logger,
		})
		fetcher, err := screen.NewDeviceFetcher(cfg.DeviceIndex, tol, logger)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return fetcher.Close() },
		})
		return fetcher, nil

	default:
		return nil, fmt.Errorf("unknown capture source %q", cfg.CaptureSource)
	}
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideDatabase,
		ProvideMapper,
		ProvideOcrEngine,
		ProvideVisionPool,
		ProvideOracle,
		ProvideFetcher,
	),
)
