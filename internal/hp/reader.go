package hp

import (
	"context"
	"image"

	"github.com/eleven-am/battle-narrator/internal/ocr"
	"github.com/eleven-am/battle-narrator/internal/screen"
)

// GaugeFunc reports whether the ally HP gauge is drawn for a scene. Supplied
// by the vision recognizer.
type GaugeFunc func(frame *screen.Frame, s Scene) bool

// OpponentFunc reads the opponent gauge ratio for every scene whose gauge is
// visible. Supplied by the vision recognizer.
type OpponentFunc func(frame *screen.Frame) Reading[float64]

type allyRegion struct {
	top, bottom, left, right int
}

var allyRegions = map[Scene]allyRegion{
	SceneCommand: {946, 982, 200, 380},
	SceneMove:    {1002, 1038, 180, 360},
}

// AllyReader reads the ally HP fraction with OCR wherever the gauge is
// visible.
type AllyReader struct {
	engine ocr.Engine
	gauge  GaugeFunc
}

func NewAllyReader(engine ocr.Engine, gauge GaugeFunc) *AllyReader {
	return &AllyReader{engine: engine, gauge: gauge}
}

func (r *AllyReader) Read(ctx context.Context, frame *screen.Frame) (Reading[VisibleHp], error) {
	reading := make(Reading[VisibleHp])
	for _, s := range []Scene{SceneCommand, SceneMove} {
		if r.gauge == nil || !r.gauge(frame, s) {
			continue
		}

		reg := allyRegions[s]
		area := frame.Region(image.Rect(reg.left, reg.top, reg.right, reg.bottom))
		fraction, err := r.engine.ReadFraction(ctx, area, ocr.ColorGrey)
		area.Close()
		if err != nil {
			return nil, err
		}
		if fraction != nil {
			reading[s] = VisibleHp{Current: fraction.Numerator, Max: fraction.Denominator}
		}
	}
	return reading, nil
}
