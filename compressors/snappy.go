package compressors

import (
	"fmt"

	"github.com/INLOpen/cloudreaders/core"
	"github.com/golang/snappy"
)

// SnappyCompressor implements core.Compressor using the snappy block
// format, which embeds the decoded length in its header.
type SnappyCompressor struct{}

var _ core.Compressor = (*SnappyCompressor)(nil)

func NewSnappyCompressor() *SnappyCompressor {
	return &SnappyCompressor{}
}

func (c *SnappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (c *SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, &core.CompressionError{Message: fmt.Sprintf("snappy decoded length: %v", err)}
	}
	if n > core.MaxDecompressedSize {
		return nil, core.ErrOutputTooLarge
	}
	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, &core.CompressionError{Message: fmt.Sprintf("snappy decompress: %v", err)}
	}
	return out, nil
}

func (c *SnappyCompressor) Type() core.CompressionType {
	return core.CompressionSnappy
}
