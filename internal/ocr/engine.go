// Package ocr abstracts the text reading backend. The narrator must keep
// working with no OCR configured; readers treat empty results as a
// transient recognition miss.
package ocr

import (
	"context"

	"gocv.io/x/gocv"
)

// TextColor selects the preprocessing profile for a text region.
type TextColor int

const (
	ColorGrey TextColor = iota
	ColorWhite
	ColorWhiteAndYellow
	ColorWhiteAndYellowAndRed
	ColorBlack
)

// Fraction is a "current/max" pair read off the screen.
type Fraction struct {
	Numerator   int
	Denominator int
}

// LogFormat describes the line layout of a log box.
type LogFormat struct {
	Color        TextColor
	LineHeight   int
	LineInterval int
}

// Engine reads text out of frame regions. Absent text is ("", nil) or
// (nil, nil); errors are reserved for backend failures.
type Engine interface {
	ReadLine(ctx context.Context, region gocv.Mat, color TextColor) (string, error)
	ReadFraction(ctx context.Context, region gocv.Mat, color TextColor) (*Fraction, error)
	ReadLog(ctx context.Context, region gocv.Mat, format LogFormat) ([]string, error)
}

// Disabled is the degraded-mode engine used when no OCR backend is
// configured. Every read reports absence.
type Disabled struct{}

func (Disabled) ReadLine(context.Context, gocv.Mat, TextColor) (string, error) {
	return "", nil
}

func (Disabled) ReadFraction(context.Context, gocv.Mat, TextColor) (*Fraction, error) {
	return nil, nil
}

func (Disabled) ReadLog(context.Context, gocv.Mat, LogFormat) ([]string, error) {
	return nil, nil
}
