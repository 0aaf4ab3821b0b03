package core

import "fmt"

// CompressionType identifies the compression algorithm used for
// channel artifacts. The value is recorded in the export configuration
// so readers know how to inflate a .pbz file.
type CompressionType byte

const (
	CompressionNone   CompressionType = 0
	CompressionSnappy CompressionType = 1
	CompressionLZ4    CompressionType = 2
	CompressionZSTD   CompressionType = 3
)

// Compressor defines the interface for compression and decompression algorithms.
type Compressor interface {
	// Compress compresses the input data into a self-contained frame/block.
	Compress(data []byte) ([]byte, error)
	// Decompress inflates data previously produced by Compress.
	Decompress(data []byte) ([]byte, error)
	// Type returns the CompressionType identifier for this compressor.
	Type() CompressionType
}

// String returns the string representation of the CompressionType.
func (ct CompressionType) String() string {
	switch ct {
	case CompressionNone:
		return "none"
	case CompressionSnappy:
		return "snappy"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseCompressionType maps a config string to a CompressionType.
func ParseCompressionType(s string) (CompressionType, error) {
	switch s {
	case "", "zstd":
		return CompressionZSTD, nil
	case "none":
		return CompressionNone, nil
	case "snappy":
		return CompressionSnappy, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression type %q", s)
	}
}

const (
	// FormatVersion is the RCP schema revision written into manifests.
	FormatVersion = "rcp_2025"

	// DefaultCompressionLevel is the zstd level used when the caller does
	// not specify one.
	DefaultCompressionLevel = 3

	// MaxDecompressedSize caps decompression output to guard against
	// decompression-bomb inputs.
	MaxDecompressedSize = 1 << 30 // 1 GiB
)
