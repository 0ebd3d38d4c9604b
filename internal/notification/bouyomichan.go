package notification

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eleven-am/battle-narrator/internal/tolerance"
)

// BouyomichanConfig tunes the Bouyomichan reading application.
type BouyomichanConfig struct {
	URL   string
	Speed int
}

func (c BouyomichanConfig) withDefaults() BouyomichanConfig {
	if c.URL == "" {
		c.URL = "http://localhost:50080"
	}
	if c.Speed == 0 {
		c.Speed = 150
	}
	return c
}

// BouyomichanTalker speaks through a local Bouyomichan instance.
type BouyomichanTalker struct {
	config    BouyomichanConfig
	client    *http.Client
	tolerance *tolerance.Tolerance
}

func NewBouyomichanTalker(config BouyomichanConfig, t *tolerance.Tolerance) *BouyomichanTalker {
	return &BouyomichanTalker{
		config:    config.withDefaults(),
		client:    &http.Client{Timeout: 3 * time.Second},
		tolerance: t,
	}
}

func (b *BouyomichanTalker) Speak(text string) error {
	ctx := context.Background()
	return b.tolerance.Do(ctx, func() error {
		params := url.Values{
			"text":  {text},
			"speed": {strconv.Itoa(b.config.Speed)},
		}
		req, err := http.NewRequestWithContext(
			ctx, http.MethodGet,
			b.config.URL+"/talk?"+params.Encode(),
			nil,
		)
		if err != nil {
			return err
		}

		res, err := b.client.Do(req)
		if err != nil {
			return fmt.Errorf("bouyomichan request failed: %w", err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected bouyomichan response: %d", res.StatusCode)
		}
		return nil
	})
}
