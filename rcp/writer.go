package rcp

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/INLOpen/cloudreaders/compressors"
	"github.com/INLOpen/cloudreaders/core"
)

// WriterOptions configures WritePackage.
type WriterOptions struct {
	// CompressionLevel is the zstd level for channel artifacts.
	// Zero selects core.DefaultCompressionLevel.
	CompressionLevel int
	// Compressor overrides the default zstd codec. When set,
	// CompressionLevel is ignored.
	Compressor core.Compressor
	Logger     *slog.Logger
	Tracer     trace.Tracer
}

func (o *WriterOptions) compressor() (core.Compressor, error) {
	if o.Compressor != nil {
		return o.Compressor, nil
	}
	level := o.CompressionLevel
	if level == 0 {
		level = core.DefaultCompressionLevel
	}
	return compressors.NewZstdCompressor(level)
}

// WritePackage serializes a complete RCP package under root:
// compressed channel files, manifest.json, a derived index.json, and a
// checksums.txt covering every artifact. It returns the Index written
// to disk. The returned Index carries checksums for the manifest and
// channel files only; the checksum of index.json itself appears solely
// in checksums.txt.
//
// Channel column lengths are validated before any file is created.
// Writes are whole-buffer and not atomic as a set: checksums.txt is
// written last, so its absence marks an incomplete package.
func WritePackage(ctx context.Context, root string, manifest *Manifest, touch *TouchChannel, acc *AccChannel, gyro *GyroChannel, opts WriterOptions) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Tracer != nil {
		_, span := opts.Tracer.Start(ctx, "rcp.WritePackage",
			trace.WithAttributes(attribute.String("rcp.root", root)))
		defer span.End()
	}

	if err := touch.Validate(); err != nil {
		return nil, err
	}
	if err := acc.Validate(); err != nil {
		return nil, err
	}
	if err := gyro.Validate(); err != nil {
		return nil, err
	}

	compressor, err := opts.compressor()
	if err != nil {
		return nil, err
	}

	paths := PackagePaths(root)
	channelsDir := filepath.Dir(paths.Channels.TouchPath)
	if err := os.MkdirAll(channelsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create package directory %s: %w", channelsDir, err)
	}

	channelWrites := []struct {
		path    string
		channel Message
	}{
		{paths.Channels.TouchPath, touch},
		{paths.Channels.AccPath, acc},
		{paths.Channels.GyroPath, gyro},
	}
	for _, cw := range channelWrites {
		if err := writeChannel(cw.channel, cw.path, compressor); err != nil {
			return nil, err
		}
		logger.Debug("wrote channel artifact", "path", cw.path)
	}

	if err := writeJSON(manifest.toDict(), paths.ManifestPath); err != nil {
		return nil, err
	}

	// Derive the index from the bytes actually persisted rather than the
	// in-memory channels, so index.json always reflects the on-disk state.
	index, err := buildIndex(paths, compressor)
	if err != nil {
		return nil, err
	}

	checksumInputs := []struct {
		relative string
		full     string
	}{
		{ManifestFile, paths.ManifestPath},
		{TouchFile, paths.Channels.TouchPath},
		{AccFile, paths.Channels.AccPath},
		{GyroFile, paths.Channels.GyroPath},
	}
	for _, in := range checksumInputs {
		entry, err := checksumFile(in.relative, in.full)
		if err != nil {
			return nil, err
		}
		index.Checksums = append(index.Checksums, entry)
	}

	if err := writeJSON(index.toDict(), paths.IndexPath); err != nil {
		return nil, err
	}

	// checksums.txt additionally covers index.json, computed after the
	// file above is finalized. This entry never appears inside the Index.
	indexEntry, err := checksumFile(IndexFile, paths.IndexPath)
	if err != nil {
		return nil, err
	}
	fileEntries := append(append([]Checksum(nil), index.Checksums...), indexEntry)
	if err := writeChecksumFile(fileEntries, paths.ChecksumsPath); err != nil {
		return nil, err
	}

	logger.Info("package written", "root", root,
		"touch_samples", index.TouchSamples,
		"acc_samples", index.AccSamples,
		"gyro_samples", index.GyroSamples,
		"duration_seconds", index.DurationSeconds)
	return index, nil
}

func writeChannel(channel Message, path string, compressor core.Compressor) error {
	raw, err := channel.Serialize()
	if err != nil {
		return err
	}
	compressed, err := compressor.Compress(raw)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return fmt.Errorf("failed to write channel file %s: %w", path, err)
	}
	return nil
}

func buildIndex(paths Paths, compressor core.Compressor) (*Index, error) {
	var touch TouchChannel
	if err := readChannel(paths.Channels.TouchPath, &touch, compressor); err != nil {
		return nil, err
	}
	var acc AccChannel
	if err := readChannel(paths.Channels.AccPath, &acc, compressor); err != nil {
		return nil, err
	}
	var gyro GyroChannel
	if err := readChannel(paths.Channels.GyroPath, &gyro, compressor); err != nil {
		return nil, err
	}

	duration := channelDuration(touch.T)
	if d := channelDuration(acc.T); d > duration {
		duration = d
	}
	if d := channelDuration(gyro.T); d > duration {
		duration = d
	}

	return &Index{
		TouchSamples:    uint64(touch.SampleCount()),
		AccSamples:      uint64(acc.SampleCount()),
		GyroSamples:     uint64(gyro.SampleCount()),
		DurationSeconds: duration,
	}, nil
}

// channelDuration converts a microsecond timestamp column into a span
// in seconds. A single-sample channel spans its own timestamp.
func channelDuration(t []uint64) float64 {
	switch len(t) {
	case 0:
		return 0
	case 1:
		return float64(t[0]) / 1e6
	default:
		return float64(t[len(t)-1]-t[0]) / 1e6
	}
}

func checksumFile(relative, full string) (Checksum, error) {
	data, err := os.ReadFile(full)
	if err != nil {
		return Checksum{}, fmt.Errorf("failed to read %s for checksum: %w", full, err)
	}
	return Checksum{Path: relative, SHA256: fmt.Sprintf("%x", sha256.Sum256(data))}, nil
}

func writeChecksumFile(entries []Checksum, path string) error {
	var buf []byte
	for _, e := range entries {
		buf = append(buf, e.SHA256...)
		buf = append(buf, ' ', ' ')
		buf = append(buf, e.Path...)
		buf = append(buf, '\n')
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("failed to write checksum file %s: %w", path, err)
	}
	return nil
}

// writeJSON persists a message dict as canonical pretty-printed JSON:
// 2-space indent, lexicographically sorted keys, trailing newline.
func writeJSON(dict map[string]any, path string) error {
	data, err := json.MarshalIndent(dict, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON for %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
