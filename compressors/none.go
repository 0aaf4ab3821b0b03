package compressors

import "github.com/INLOpen/cloudreaders/core"

// NoCompressionCompressor implements core.Compressor without performing
// compression.
type NoCompressionCompressor struct{}

var _ core.Compressor = (*NoCompressionCompressor)(nil)

func (c *NoCompressionCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (c *NoCompressionCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

func (c *NoCompressionCompressor) Type() core.CompressionType {
	return core.CompressionNone
}

// ForType returns a compressor for the given type. The level only
// affects zstd; the other codecs ignore it.
func ForType(ct core.CompressionType, level int) (core.Compressor, error) {
	switch ct {
	case core.CompressionNone:
		return &NoCompressionCompressor{}, nil
	case core.CompressionSnappy:
		return NewSnappyCompressor(), nil
	case core.CompressionLZ4:
		return NewLz4Compressor(), nil
	case core.CompressionZSTD:
		return NewZstdCompressor(level)
	default:
		return nil, &core.CompressionError{Message: "unknown compression type"}
	}
}
