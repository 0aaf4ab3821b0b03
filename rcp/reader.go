package rcp

import (
	"fmt"
	"os"

	"github.com/INLOpen/cloudreaders/compressors"
	"github.com/INLOpen/cloudreaders/core"
)

// readChannel reads, decompresses, and parses one channel artifact into
// dst. Compression and codec errors surface unchanged.
func readChannel(path string, dst Message, compressor core.Compressor) error {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read channel file %s: %w", path, err)
	}
	raw, err := compressor.Decompress(compressed)
	if err != nil {
		return err
	}
	return dst.Parse(raw)
}

func defaultCompressor() (core.Compressor, error) {
	return compressors.NewZstdCompressor(core.DefaultCompressionLevel)
}

// ReadTouchChannel loads a touch channel from a zstd .pbz artifact.
func ReadTouchChannel(path string) (*TouchChannel, error) {
	compressor, err := defaultCompressor()
	if err != nil {
		return nil, err
	}
	return ReadTouchChannelWith(path, compressor)
}

// ReadTouchChannelWith loads a touch channel written with an alternate
// codec, matching the compressor handed to WriterOptions.
func ReadTouchChannelWith(path string, compressor core.Compressor) (*TouchChannel, error) {
	var ch TouchChannel
	if err := readChannel(path, &ch, compressor); err != nil {
		return nil, err
	}
	return &ch, nil
}

// ReadAccChannel loads an accelerometer channel from a zstd .pbz artifact.
func ReadAccChannel(path string) (*AccChannel, error) {
	compressor, err := defaultCompressor()
	if err != nil {
		return nil, err
	}
	return ReadAccChannelWith(path, compressor)
}

// ReadAccChannelWith loads an accelerometer channel written with an
// alternate codec.
func ReadAccChannelWith(path string, compressor core.Compressor) (*AccChannel, error) {
	var ch AccChannel
	if err := readChannel(path, &ch, compressor); err != nil {
		return nil, err
	}
	return &ch, nil
}

// ReadGyroChannel loads a gyroscope channel from a zstd .pbz artifact.
func ReadGyroChannel(path string) (*GyroChannel, error) {
	compressor, err := defaultCompressor()
	if err != nil {
		return nil, err
	}
	return ReadGyroChannelWith(path, compressor)
}

// ReadGyroChannelWith loads a gyroscope channel written with an
// alternate codec.
func ReadGyroChannelWith(path string, compressor core.Compressor) (*GyroChannel, error) {
	var ch GyroChannel
	if err := readChannel(path, &ch, compressor); err != nil {
		return nil, err
	}
	return &ch, nil
}

// ReadPackage reloads every channel of a package for verification or
// downstream processing.
func ReadPackage(root string) (*TouchChannel, *AccChannel, *GyroChannel, error) {
	paths := PackagePaths(root)
	touch, err := ReadTouchChannel(paths.Channels.TouchPath)
	if err != nil {
		return nil, nil, nil, err
	}
	acc, err := ReadAccChannel(paths.Channels.AccPath)
	if err != nil {
		return nil, nil, nil, err
	}
	gyro, err := ReadGyroChannel(paths.Channels.GyroPath)
	if err != nil {
		return nil, nil, nil, err
	}
	return touch, acc, gyro, nil
}
