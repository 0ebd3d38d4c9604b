package ocr

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// Tesseract reads text with a gosseract client. The client is not safe for
// concurrent use, so reads are serialized.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
	log    *slog.Logger
}

type TesseractConfig struct {
	Language string
	DataPath string
	Logger   *slog.Logger
}

func NewTesseract(cfg TesseractConfig) (*Tesseract, error) {
	if cfg.Language == "" {
		cfg.Language = "jpn"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(cfg.Language); err != nil {
		client.Close()
		return nil, fmt.Errorf("set ocr language %q: %w", cfg.Language, err)
	}
	if cfg.DataPath != "" {
		if err := client.SetTessdataPrefix(cfg.DataPath); err != nil {
			client.Close()
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	return &Tesseract{
		client: client,
		log:    cfg.Logger.With("component", "ocr"),
	}, nil
}

func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}

func (t *Tesseract) ReadLine(ctx context.Context, region gocv.Mat, color TextColor) (string, error) {
	return t.readText(ctx, region, color, gosseract.PSM_SINGLE_LINE)
}

var fractionPattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)

func (t *Tesseract) ReadFraction(ctx context.Context, region gocv.Mat, color TextColor) (*Fraction, error) {
	text, err := t.readText(ctx, region, color, gosseract.PSM_SINGLE_LINE)
	if err != nil || text == "" {
		return nil, err
	}
	match := fractionPattern.FindStringSubmatch(text)
	if match == nil {
		return nil, nil
	}
	numerator, _ := strconv.Atoi(match[1])
	denominator, _ := strconv.Atoi(match[2])
	return &Fraction{Numerator: numerator, Denominator: denominator}, nil
}

func (t *Tesseract) ReadLog(ctx context.Context, region gocv.Mat, format LogFormat) ([]string, error) {
	height := region.Rows()
	step := format.LineHeight + format.LineInterval
	if step <= 0 || height < format.LineHeight {
		return nil, nil
	}

	var lines []string
	for top := 0; top+format.LineHeight <= height; top += step {
		line := region.Region(image.Rect(0, top, region.Cols(), top+format.LineHeight))
		text, err := t.readText(ctx, line, format.Color, gosseract.PSM_SINGLE_LINE)
		line.Close()
		if err != nil {
			return nil, err
		}
		if text != "" {
			lines = append(lines, text)
		}
	}
	return lines, nil
}

func (t *Tesseract) readText(ctx context.Context, region gocv.Mat, color TextColor, psm gosseract.PageSegMode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prepared := binarize(region, color)
	defer prepared.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, prepared)
	if err != nil {
		return "", fmt.Errorf("encode ocr region: %w", err)
	}
	defer buf.Close()

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("set ocr image: %w", err)
	}
	if err := t.client.SetPageSegMode(psm); err != nil {
		return "", fmt.Errorf("set page seg mode: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// binarize lifts the target text color onto a white-on-black image so
// tesseract sees clean glyphs regardless of the game's background art.
func binarize(region gocv.Mat, color TextColor) gocv.Mat {
	grey := gocv.NewMat()
	gocv.CvtColor(region, &grey, gocv.ColorBGRToGray)

	out := gocv.NewMat()
	switch color {
	case ColorBlack:
		gocv.Threshold(grey, &out, 96, 255, gocv.ThresholdBinaryInv)
	case ColorGrey:
		gocv.Threshold(grey, &out, 128, 255, gocv.ThresholdBinary)
	default:
		gocv.Threshold(grey, &out, 192, 255, gocv.ThresholdBinary)
	}
	grey.Close()
	return out
}
