package compressors

import (
	"errors"
	"fmt"

	"github.com/INLOpen/cloudreaders/core"
	lz4 "github.com/pierrec/lz4/v4"
)

// LZ4Compressor implements core.Compressor using the LZ4 block format.
// Blocks do not embed the original size, so Decompress grows its
// output buffer until the block fits.
type LZ4Compressor struct{}

var _ core.Compressor = (*LZ4Compressor)(nil)

func NewLz4Compressor() *LZ4Compressor {
	return &LZ4Compressor{}
}

func (c *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, &core.CompressionError{Message: fmt.Sprintf("lz4 compress: %v", err)}
	}
	if n == 0 && len(data) > 0 {
		return nil, &core.CompressionError{Message: "lz4 compression resulted in zero bytes for non-empty input"}
	}
	return dst[:n], nil
}

func (c *LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	// The block format has no embedded content size, so start at
	// max(4*len(data), 1024) and double on underrun.
	size := 4 * len(data)
	if size < 1024 {
		size = 1024
	}
	dst := make([]byte, size)
	for {
		n, err := lz4.UncompressBlock(data, dst)
		if err == nil {
			return dst[:n], nil
		}
		if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			if len(dst) >= core.MaxDecompressedSize {
				return nil, core.ErrOutputTooLarge
			}
			next := len(dst) * 2
			if next > core.MaxDecompressedSize {
				next = core.MaxDecompressedSize
			}
			dst = make([]byte, next)
			continue
		}
		return nil, &core.CompressionError{Message: fmt.Sprintf("lz4 decompress: %v", err)}
	}
}

func (c *LZ4Compressor) Type() core.CompressionType {
	return core.CompressionLZ4
}
