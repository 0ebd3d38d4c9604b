// Package screen provides the captured frame model and the capture sources
// that produce frames for the polling loop.
package screen

import (
	"context"
	"image"
	"time"

	"gocv.io/x/gocv"
)

// Frame is one captured screen image. It is produced once per poll cycle,
// shared read-only by every detector in that cycle, and closed afterwards.
type Frame struct {
	Image      gocv.Mat
	CapturedAt time.Time
}

func NewFrame(img gocv.Mat) *Frame {
	return &Frame{Image: img, CapturedAt: time.Now()}
}

// Clone copies the pixel buffer. Only the screenshot ring buffer needs this;
// everything else must not retain the frame beyond its cycle.
func (f *Frame) Clone() *Frame {
	return &Frame{Image: f.Image.Clone(), CapturedAt: f.CapturedAt}
}

// Region returns a view into the frame. The view shares storage with the
// frame and must be closed by the caller before the cycle ends.
func (f *Frame) Region(r image.Rectangle) gocv.Mat {
	return f.Image.Region(r)
}

func (f *Frame) Close() {
	f.Image.Close()
}

// Fetcher produces one frame per call. Implementations wrap their transport
// in a tolerance supervisor so transient capture failures escalate instead
// of crashing the loop.
type Fetcher interface {
	Fetch(ctx context.Context) (*Frame, error)
}
