package screen

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"gocv.io/x/gocv"

	"github.com/eleven-am/battle-narrator/internal/shared"
	"github.com/eleven-am/battle-narrator/internal/tolerance"
)

// ObsClient speaks the obs-websocket v5 protocol, just enough to pull
// source screenshots out of a running OBS Studio.
type ObsClient struct {
	url      string
	password string
	log      *slog.Logger

	mu         sync.Mutex
	conn       *websocket.Conn
	identified bool
	requestSeq atomic.Uint64
}

type ObsConfig struct {
	Host     string
	Port     int
	Password string
	Logger   *slog.Logger
}

func NewObsClient(cfg ObsConfig) *ObsClient {
	if cfg.Host == "" {
		cfg.Host = "[::1]"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &ObsClient{
		url:      fmt.Sprintf("ws://%s:%d", cfg.Host, cfg.Port),
		password: cfg.Password,
		log:      cfg.Logger.With("component", "obs-client"),
	}
}

const (
	obsOpHello           = 0
	obsOpIdentify        = 1
	obsOpIdentified      = 2
	obsOpRequest         = 6
	obsOpRequestResponse = 7
)

type obsMessage struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d"`
}

type obsHello struct {
	Authentication *struct {
		Challenge string `json:"challenge"`
		Salt      string `json:"salt"`
	} `json:"authentication"`
}

type obsRequestResponse struct {
	RequestID     string `json:"requestId"`
	RequestStatus struct {
		Result  bool   `json:"result"`
		Code    int    `json:"code"`
		Comment string `json:"comment"`
	} `json:"requestStatus"`
	ResponseData json.RawMessage `json:"responseData"`
}

// EnsureConnected dials and identifies if the connection is not up yet.
func (c *ObsClient) EnsureConnected(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil && c.identified {
		return nil
	}
	return c.connectLocked(ctx)
}

func (c *ObsClient) connectLocked(ctx context.Context) error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
		c.identified = false
	}

	dialer := websocket.Dialer{HandshakeTimeout: 3 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial obs: %w", err)
	}

	var hello obsMessage
	if err := conn.ReadJSON(&hello); err != nil {
		conn.Close()
		return fmt.Errorf("read hello: %w", err)
	}
	if hello.Op != obsOpHello {
		conn.Close()
		return fmt.Errorf("unexpected opcode %d during handshake", hello.Op)
	}

	var helloData obsHello
	if err := json.Unmarshal(hello.D, &helloData); err != nil {
		conn.Close()
		return fmt.Errorf("decode hello: %w", err)
	}

	identify := map[string]any{"rpcVersion": 1}
	if helloData.Authentication != nil {
		identify["authentication"] = obsAuthString(
			c.password,
			helloData.Authentication.Salt,
			helloData.Authentication.Challenge,
		)
	}
	if err := conn.WriteJSON(obsMessage{Op: obsOpIdentify, D: mustMarshal(identify)}); err != nil {
		conn.Close()
		return fmt.Errorf("send identify: %w", err)
	}

	var identified obsMessage
	if err := conn.ReadJSON(&identified); err != nil {
		conn.Close()
		return fmt.Errorf("read identified: %w", err)
	}
	if identified.Op != obsOpIdentified {
		conn.Close()
		return fmt.Errorf("identification rejected, opcode %d", identified.Op)
	}

	c.conn = conn
	c.identified = true
	c.log.Debug("identified with obs", "url", c.url)
	return nil
}

// GetSourceScreenshot returns the JPEG bytes of one source render.
func (c *ObsClient) GetSourceScreenshot(ctx context.Context, source string, width, height int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil || !c.identified {
		if err := c.connectLocked(ctx); err != nil {
			return nil, err
		}
	}

	requestID := fmt.Sprintf("screenshot-%d", c.requestSeq.Add(1))
	req := map[string]any{
		"requestType": "GetSourceScreenshot",
		"requestId":   requestID,
		"requestData": map[string]any{
			"sourceName":              source,
			"imageFormat":             "jpg",
			"imageWidth":              width,
			"imageHeight":             height,
			"imageCompressionQuality": 100,
		},
	}
	deadline := time.Now().Add(3 * time.Second)
	c.conn.SetWriteDeadline(deadline)
	if err := c.conn.WriteJSON(obsMessage{Op: obsOpRequest, D: mustMarshal(req)}); err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("send screenshot request: %w", err)
	}

	for {
		c.conn.SetReadDeadline(deadline)
		var msg obsMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			c.dropLocked()
			return nil, fmt.Errorf("read screenshot response: %w", err)
		}
		if msg.Op != obsOpRequestResponse {
			continue
		}

		var res obsRequestResponse
		if err := json.Unmarshal(msg.D, &res); err != nil {
			return nil, fmt.Errorf("decode screenshot response: %w", err)
		}
		if res.RequestID != requestID {
			continue
		}
		if !res.RequestStatus.Result {
			return nil, fmt.Errorf("screenshot of source %q failed: %s", source, res.RequestStatus.Comment)
		}

		var data struct {
			ImageData string `json:"imageData"`
		}
		if err := json.Unmarshal(res.ResponseData, &data); err != nil {
			return nil, fmt.Errorf("decode image data: %w", err)
		}
		// imageData is a data URI: "data:image/jpg;base64,<payload>".
		idx := strings.IndexByte(data.ImageData, ',')
		if idx < 0 {
			return nil, fmt.Errorf("malformed image data for source %q", source)
		}
		return base64.StdEncoding.DecodeString(data.ImageData[idx+1:])
	}
}

func (c *ObsClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		c.identified = false
		return err
	}
	return nil
}

func (c *ObsClient) dropLocked() {
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = nil
	c.identified = false
}

func obsAuthString(password, salt, challenge string) string {
	secret := sha256.Sum256([]byte(password + salt))
	secretB64 := base64.StdEncoding.EncodeToString(secret[:])
	auth := sha256.Sum256([]byte(secretB64 + challenge))
	return base64.StdEncoding.EncodeToString(auth[:])
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// ObsFetcher captures frames by asking OBS for source screenshots.
type ObsFetcher struct {
	client *ObsClient
	source string
	width  int
	height int
	tol    *tolerance.Tolerance
}

func NewObsFetcher(client *ObsClient, source string, tol *tolerance.Tolerance) *ObsFetcher {
	return &ObsFetcher{client: client, source: source, width: 1920, height: 1080, tol: tol}
}

func (f *ObsFetcher) Fetch(ctx context.Context) (*Frame, error) {
	var frame *Frame
	err := f.tol.Do(ctx, func() error {
		data, err := f.client.GetSourceScreenshot(ctx, f.source, f.width, f.height)
		if err != nil {
			return err
		}
		mat, err := gocv.IMDecode(data, gocv.IMReadColor)
		if err != nil {
			return fmt.Errorf("decode screenshot: %w", err)
		}
		if mat.Empty() {
			mat.Close()
			return fmt.Errorf("empty screenshot for source %q", f.source)
		}
		frame = NewFrame(mat)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return frame, nil
}

// ObsRecovery reconnects after a connection failure streak. Plugged into the
// fetcher's tolerance supervisor as its recovery procedure. Reconnect
// attempts back off exponentially within the configured bounds.
func ObsRecovery(client *ObsClient, cfg shared.BackoffConfig) tolerance.Recovery {
	cfg = shared.NormalizeBackoff(cfg)
	return func(ctx context.Context) bool {
		delay := cfg.Initial
		for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(delay):
			}
			if client.EnsureConnected(ctx) == nil {
				return true
			}
			delay *= 2
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}
		return false
	}
}
