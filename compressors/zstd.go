package compressors

import (
	"errors"

	"github.com/INLOpen/cloudreaders/core"
	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor implements core.Compressor using Zstandard frames.
// Frames produced by Compress embed the uncompressed content size in
// their header, which Decompress uses to size its output exactly.
type ZstdCompressor struct {
	level   int
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

var _ core.Compressor = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a zstd codec at the given compression
// level (1..19, zstd scale). The level is an effort/ratio knob only;
// any level round-trips identically.
func NewZstdCompressor(level int) (*ZstdCompressor, error) {
	if level <= 0 {
		level = core.DefaultCompressionLevel
	}
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, &core.CompressionError{Message: err.Error()}
	}
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(core.MaxDecompressedSize))
	if err != nil {
		enc.Close()
		return nil, &core.CompressionError{Message: err.Error()}
	}
	return &ZstdCompressor{level: level, encoder: enc, decoder: dec}, nil
}

// Compress compresses data into a single zstd frame.
func (c *ZstdCompressor) Compress(data []byte) ([]byte, error) {
	// EncodeAll is safe for concurrent use and records the content size
	// in the frame header because the full input is known up front.
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2+64)), nil
}

// Decompress inflates a zstd frame produced by Compress. The frame
// header's content size is used to pre-size the output; when the frame
// does not declare one, the decoder grows its buffer from
// max(4*len(data), 1024), bounded at core.MaxDecompressedSize.
func (c *ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	var capacity int
	var header zstd.Header
	if err := header.Decode(data); err != nil {
		return nil, &core.CompressionError{Message: err.Error()}
	}
	if header.HasFCS {
		if header.FrameContentSize > core.MaxDecompressedSize {
			return nil, core.ErrOutputTooLarge
		}
		capacity = int(header.FrameContentSize)
	} else {
		capacity = 4 * len(data)
		if capacity < 1024 {
			capacity = 1024
		}
		if capacity > core.MaxDecompressedSize {
			capacity = core.MaxDecompressedSize
		}
	}

	out, err := c.decoder.DecodeAll(data, make([]byte, 0, capacity))
	if err != nil {
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
			return nil, core.ErrOutputTooLarge
		}
		return nil, &core.CompressionError{Message: err.Error()}
	}
	return out, nil
}

func (c *ZstdCompressor) Type() core.CompressionType {
	return core.CompressionZSTD
}

// Level returns the configured zstd compression level.
func (c *ZstdCompressor) Level() int {
	return c.level
}
