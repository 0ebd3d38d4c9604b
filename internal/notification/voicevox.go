package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eleven-am/battle-narrator/internal/tolerance"
)

// AudioSink plays one synthesized WAV clip.
type AudioSink interface {
	Play(wav []byte) error
}

// VoicevoxConfig tunes the VOICEVOX synthesis engine.
type VoicevoxConfig struct {
	URL          string
	Speaker      int
	VolumeScale  float64
	SpeedScale   float64
	SamplingRate int
	Stereo       bool
}

func (c VoicevoxConfig) withDefaults() VoicevoxConfig {
	if c.URL == "" {
		c.URL = "http://localhost:50021"
	}
	if c.VolumeScale == 0 {
		c.VolumeScale = 1.0
	}
	if c.SpeedScale == 0 {
		c.SpeedScale = 1.7
	}
	if c.SamplingRate == 0 {
		c.SamplingRate = 16000
	}
	return c
}

const postPhonemeLengthBase = 1.0

// VoicevoxTalker synthesizes speech with a local VOICEVOX engine and plays
// it through the audio sink. Synthesis blocks until done, so it should sit
// behind a QueueTalker.
type VoicevoxTalker struct {
	config    VoicevoxConfig
	client    *http.Client
	sink      AudioSink
	tolerance *tolerance.Tolerance
}

func NewVoicevoxTalker(config VoicevoxConfig, sink AudioSink, t *tolerance.Tolerance) *VoicevoxTalker {
	return &VoicevoxTalker{
		config:    config.withDefaults(),
		client:    &http.Client{Timeout: 3 * time.Second},
		sink:      sink,
		tolerance: t,
	}
}

// InitializeSpeaker warms the configured speaker up so the first utterance
// is not delayed.
func (v *VoicevoxTalker) InitializeSpeaker(ctx context.Context) error {
	params := url.Values{
		"speaker":     {strconv.Itoa(v.config.Speaker)},
		"skip_reinit": {"true"},
	}
	_, err := v.post(ctx, "/initialize_speaker", params, nil, http.StatusNoContent)
	return err
}

func (v *VoicevoxTalker) Speak(text string) error {
	ctx := context.Background()

	var query map[string]any
	err := v.tolerance.Do(ctx, func() error {
		params := url.Values{
			"text":    {text},
			"speaker": {strconv.Itoa(v.config.Speaker)},
		}
		body, err := v.post(ctx, "/audio_query", params, nil, http.StatusOK)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &query)
	})
	if err != nil || query == nil {
		return err
	}

	query["volumeScale"] = v.config.VolumeScale
	query["speedScale"] = v.config.SpeedScale
	query["outputSamplingRate"] = v.config.SamplingRate
	query["outputStereo"] = v.config.Stereo
	query["prePhonemeLength"] = 0.0
	query["postPhonemeLength"] = postPhonemeLengthBase / v.config.SpeedScale
	query["pauseLengthScale"] = 0.8 / v.config.SpeedScale

	var wav []byte
	err = v.tolerance.Do(ctx, func() error {
		payload, err := json.Marshal(query)
		if err != nil {
			return err
		}
		params := url.Values{"speaker": {strconv.Itoa(v.config.Speaker)}}
		wav, err = v.post(ctx, "/synthesis", params, payload, http.StatusOK)
		return err
	})
	if err != nil || wav == nil {
		return err
	}
	return v.sink.Play(wav)
}

func (v *VoicevoxTalker) post(ctx context.Context, path string, params url.Values, payload []byte, wantStatus int) ([]byte, error) {
	target := v.config.URL + path + "?" + params.Encode()
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voicevox request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != wantStatus {
		return nil, fmt.Errorf("unexpected voicevox response: %d", res.StatusCode)
	}
	return io.ReadAll(res.Body)
}
