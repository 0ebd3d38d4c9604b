package tera

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/eleven-am/battle-narrator/internal/screen"
	"github.com/eleven-am/battle-narrator/internal/vision"
)

// OmenDetector recognizes the white flash that precedes terastallization.
// Supplied by the vision recognizer; implementations may keep state across
// frames.
type OmenDetector interface {
	DetectOmen(frame *screen.Frame) bool
}

// TypeScorer scores every tera type candidate against the crystal colors in
// one frame. Supplied by the vision recognizer.
type TypeScorer interface {
	ScoreTypes(frame *screen.Frame, pool *vision.Pool) []Detection
}

const (
	// DefaultBufferSize is how many frames of type scores are summed before
	// a verdict.
	DefaultBufferSize = 4
	// DefaultMaxOmenWait bounds how many frames the omen may last before the
	// detection attempt is abandoned.
	DefaultMaxOmenWait = 20
)

// Detector turns per-frame omen and color readings into tera type verdicts.
// It waits for the omen to pass, then samples type scores over a few frames
// and sums them, so a single noisy frame cannot decide the type.
type Detector struct {
	omen       OmenDetector
	scorer     TypeScorer
	pool       *vision.Pool
	bufferSize int
	maxWait    int
	logger     *slog.Logger

	mu            sync.Mutex
	omenWaitCount int
	scoringType   bool
	buffer        [][]Detection
}

func NewDetector(omen OmenDetector, scorer TypeScorer, pool *vision.Pool, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		omen:       omen,
		scorer:     scorer,
		pool:       pool,
		bufferSize: DefaultBufferSize,
		maxWait:    DefaultMaxOmenWait,
		logger:     logger.With("component", "tera_detector"),
	}
}

// Detecting reports whether a detection attempt is in flight. Callers should
// skip other per-frame work while this is true to keep sampling latency low.
func (d *Detector) Detecting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.omenWaitCount > 0
}

// Detect folds one frame into the detector and returns a verdict once type
// sampling has finished, nil otherwise.
func (d *Detector) Detect(frame *screen.Frame) *Summary {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.omenWaitCount == 0 {
		if d.omen.DetectOmen(frame) {
			d.logger.Debug("tera omen detected")
			d.omenWaitCount++
		}
		return nil
	}

	if !d.scoringType && d.omen.DetectOmen(frame) {
		d.omenWaitCount++
		if d.omenWaitCount > d.maxWait {
			d.logger.Warn("tera omen timed out")
			d.omenWaitCount = 0
		}
		return nil
	}

	d.scoringType = true
	d.buffer = append(d.buffer, d.scorer.ScoreTypes(frame, d.pool))
	if len(d.buffer) < d.bufferSize {
		return nil
	}

	scores := make(map[Type]float64)
	for _, detections := range d.buffer {
		for _, detection := range detections {
			scores[detection.Type] += detection.Score
		}
	}
	detections := make([]Detection, 0, len(scores))
	for t, score := range scores {
		detections = append(detections, Detection{Type: t, Score: score})
	}
	sort.Slice(detections, func(i, j int) bool {
		if detections[i].Score != detections[j].Score {
			return detections[i].Score > detections[j].Score
		}
		return detections[i].Type < detections[j].Type
	})
	d.logger.Debug("tera type detected", "candidates", len(detections))

	d.buffer = nil
	d.omenWaitCount = 0
	d.scoringType = false
	return Summarize(detections)
}

// Summarize picks the best candidate from score-ordered detections, keeping
// runners-up whose summed score reaches three quarters of the best.
func Summarize(detections []Detection) *Summary {
	if len(detections) == 0 {
		return nil
	}
	primary := detections[0]
	var possible []Detection
	for _, d := range detections[1:] {
		if d.Score >= primary.Score*0.75 {
			possible = append(possible, d)
		}
	}
	return &Summary{Primary: primary, Possible: possible}
}
