// Package ingestion loads source artwork and attaches device metadata
// for the downstream extraction stages.
package ingestion

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"strconv"
	"time"

	// Registered decoders. BMP/TIFF/WebP come from golang.org/x/image;
	// PNG/JPEG/GIF from the standard library.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Config describes one ingestion run.
type Config struct {
	Source string  // path to the source artwork
	Device string  // device profile label
	Style  string  // artistic intent for metadata tagging
	DPI    float64 // target device resolution
}

// Result is the output of the ingestion stage: a grayscale raster plus
// contextual metadata carried through to the manifest.
type Result struct {
	Source   string
	Gray     *image.Gray
	Metadata map[string]string
}

// Ingest decodes the source image, converts it to grayscale, and
// attaches metadata.
func Ingest(cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("ingestion starting", "source", cfg.Source)

	f, err := os.Open(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("source image not found: %s: %w", cfg.Source, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("unable to decode image at %s: %w", cfg.Source, err)
	}

	gray := toGray(img)
	bounds := gray.Bounds()
	metadata := map[string]string{
		"source":     cfg.Source,
		"device":     cfg.Device,
		"style":      cfg.Style,
		"dpi":        strconv.FormatFloat(cfg.DPI, 'g', -1, 64),
		"created_at": time.Now().UTC().Format(time.RFC3339),
		"format":     format,
		"width":      strconv.Itoa(bounds.Dx()),
		"height":     strconv.Itoa(bounds.Dy()),
	}
	logger.Debug("ingestion metadata", "metadata", metadata)
	logger.Info("ingestion complete", "source", cfg.Source)
	return &Result{Source: cfg.Source, Gray: gray, Metadata: metadata}, nil
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}
