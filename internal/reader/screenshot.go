package reader

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/eleven-am/battle-narrator/internal/notification"
	"github.com/eleven-am/battle-narrator/internal/screen"
)

type shot struct {
	capturedAt time.Time
	image      gocv.Mat
}

// Screenshots keeps the last few frames and writes them all out when asked,
// so a save request can still capture the moment just before it was made.
type Screenshots struct {
	dir    string
	size   int
	logger *slog.Logger

	mu        sync.Mutex
	buffer    []shot
	requested bool
}

func NewScreenshots(dir string, bufferSize int, logger *slog.Logger) *Screenshots {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Screenshots{dir: dir, size: bufferSize, logger: logger.With("component", "screenshots")}
}

func (s *Screenshots) RequestSaving() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requested = true
}

func (s *Screenshots) Handle(frame *screen.Frame) notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.buffer) == s.size {
		s.buffer[0].image.Close()
		copy(s.buffer, s.buffer[1:])
		s.buffer = s.buffer[:s.size-1]
	}
	s.buffer = append(s.buffer, shot{capturedAt: frame.CapturedAt, image: frame.Image.Clone()})

	if !s.requested {
		return nil
	}
	s.requested = false

	succeeded := true
	for _, sh := range s.buffer {
		if !s.save(sh) {
			succeeded = false
			break
		}
	}
	return notification.Screenshot{Succeeded: succeeded}
}

// Close releases the buffered frames.
func (s *Screenshots) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range s.buffer {
		sh.image.Close()
	}
	s.buffer = nil
}

func (s *Screenshots) save(sh shot) bool {
	name := sh.capturedAt.Format("2006-01-02-15-04-05.000000") + ".jpg"
	path := name
	if s.dir != "" {
		path = filepath.Join(s.dir, name)
	}
	s.logger.Debug("write screenshot", "path", path)
	return gocv.IMWriteWithParams(path, sh.image, []int{gocv.IMWriteJpegQuality, 100})
}
