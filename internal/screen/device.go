package screen

import (
	"context"
	"fmt"
	"log/slog"

	"gocv.io/x/gocv"

	"github.com/eleven-am/battle-narrator/internal/tolerance"
)

// DeviceFetcher reads frames straight from a video capture device.
type DeviceFetcher struct {
	index int
	log   *slog.Logger
	tol   *tolerance.Tolerance

	capture *gocv.VideoCapture
}

func NewDeviceFetcher(index int, tol *tolerance.Tolerance, log *slog.Logger) (*DeviceFetcher, error) {
	if log == nil {
		log = slog.Default()
	}
	f := &DeviceFetcher{
		index: index,
		log:   log.With("component", "device-fetcher", "device", index),
		tol:   tol,
	}
	if err := f.open(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *DeviceFetcher) open() error {
	capture, err := gocv.OpenVideoCapture(f.index)
	if err != nil {
		return fmt.Errorf("open capture device %d: %w", f.index, err)
	}
	capture.Set(gocv.VideoCaptureFrameWidth, 1920)
	capture.Set(gocv.VideoCaptureFrameHeight, 1080)
	f.capture = capture
	return nil
}

func (f *DeviceFetcher) Fetch(ctx context.Context) (*Frame, error) {
	var frame *Frame
	err := f.tol.Do(ctx, func() error {
		mat := gocv.NewMat()
		if ok := f.capture.Read(&mat); !ok || mat.Empty() {
			mat.Close()
			return fmt.Errorf("read frame from device %d", f.index)
		}
		frame = NewFrame(mat)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return frame, nil
}

// Recovery reopens the device. Used as the tolerance recovery procedure.
func (f *DeviceFetcher) Recovery() tolerance.Recovery {
	return func(ctx context.Context) bool {
		if f.capture != nil {
			f.capture.Close()
		}
		if err := f.open(); err != nil {
			f.log.Debug("device reopen failed", "error", err)
			return false
		}
		return true
	}
}

func (f *DeviceFetcher) Close() error {
	if f.capture != nil {
		return f.capture.Close()
	}
	return nil
}
