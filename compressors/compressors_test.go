package compressors

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/INLOpen/cloudreaders/core"
)

func roundTripCases() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{"simple string", []byte("hello world, this is a test of the channel compressor")},
		{"repetitive data", bytes.Repeat([]byte("ab"), 2048)},
		{"empty data", []byte{}},
		{"random-ish data", []byte("82f7b5a3e1d9c0f4b8a6d2c1e0f3a9b8d7c6e5f4a3b2c1d0e9f8a7b6c5d4e3f2")},
	}
}

func TestZstdCompressorRoundTrip(t *testing.T) {
	for level := 1; level <= 19; level++ {
		compressor, err := NewZstdCompressor(level)
		if err != nil {
			t.Fatalf("NewZstdCompressor(%d) returned an unexpected error: %v", level, err)
		}
		if compressor.Type() != core.CompressionZSTD {
			t.Fatalf("Type() got = %v, want %v", compressor.Type(), core.CompressionZSTD)
		}
		for _, tc := range roundTripCases() {
			compressed, err := compressor.Compress(tc.data)
			if err != nil {
				t.Fatalf("level %d %s: Compress() error: %v", level, tc.name, err)
			}
			decompressed, err := compressor.Decompress(compressed)
			if err != nil {
				t.Fatalf("level %d %s: Decompress() error: %v", level, tc.name, err)
			}
			if !bytes.Equal(tc.data, decompressed) {
				t.Errorf("level %d %s: decompressed data does not match original", level, tc.name)
			}
		}
	}
}

func TestZstdDecompressRejectsGarbage(t *testing.T) {
	compressor, err := NewZstdCompressor(core.DefaultCompressionLevel)
	if err != nil {
		t.Fatalf("NewZstdCompressor returned an unexpected error: %v", err)
	}
	if _, err := compressor.Decompress([]byte("not a zstd frame")); !core.IsCompressionError(err) {
		t.Fatalf("expected CompressionError for corrupt frame, got %v", err)
	}
}

func TestZstdDecompressRejectsOversizedFrame(t *testing.T) {
	compressor, err := NewZstdCompressor(core.DefaultCompressionLevel)
	if err != nil {
		t.Fatalf("NewZstdCompressor returned an unexpected error: %v", err)
	}

	// Forge a frame header whose declared content size is 2 GiB: magic,
	// descriptor with single-segment + 8-byte content size, then the size.
	frame := []byte{0x28, 0xb5, 0x2f, 0xfd, 0xe0}
	frame = binary.LittleEndian.AppendUint64(frame, 2<<30)

	if _, err := compressor.Decompress(frame); !errors.Is(err, core.ErrOutputTooLarge) {
		t.Fatalf("expected ErrOutputTooLarge for a 2 GiB frame declaration, got %v", err)
	}
}

func TestSnappyDecompressRejectsOversizedOutput(t *testing.T) {
	compressor := NewSnappyCompressor()

	// A snappy block starts with a varint decoded length; declare 2 GiB
	// with a single body byte behind it.
	header := binary.AppendUvarint(nil, 2<<30)
	header = append(header, 0x00)

	if _, err := compressor.Decompress(header); !errors.Is(err, core.ErrOutputTooLarge) {
		t.Fatalf("expected ErrOutputTooLarge for a 2 GiB length declaration, got %v", err)
	}
}

func TestAlternateCompressorsRoundTrip(t *testing.T) {
	testCompressors := []struct {
		name       string
		compressor core.Compressor
		wantType   core.CompressionType
	}{
		{"snappy", NewSnappyCompressor(), core.CompressionSnappy},
		{"lz4", NewLz4Compressor(), core.CompressionLZ4},
		{"none", &NoCompressionCompressor{}, core.CompressionNone},
	}

	for _, c := range testCompressors {
		t.Run(c.name, func(t *testing.T) {
			if c.compressor.Type() != c.wantType {
				t.Errorf("Type() got = %v, want %v", c.compressor.Type(), c.wantType)
			}
			for _, tc := range roundTripCases() {
				compressed, err := c.compressor.Compress(tc.data)
				if err != nil {
					t.Fatalf("%s: Compress() error: %v", tc.name, err)
				}
				decompressed, err := c.compressor.Decompress(compressed)
				if err != nil {
					t.Fatalf("%s: Decompress() error: %v", tc.name, err)
				}
				if len(tc.data) == 0 && len(decompressed) == 0 {
					continue
				}
				if !bytes.Equal(tc.data, decompressed) {
					t.Errorf("%s: decompressed data does not match original", tc.name)
				}
			}
		})
	}
}

func TestForType(t *testing.T) {
	for _, ct := range []core.CompressionType{
		core.CompressionNone, core.CompressionSnappy, core.CompressionLZ4, core.CompressionZSTD,
	} {
		compressor, err := ForType(ct, core.DefaultCompressionLevel)
		if err != nil {
			t.Fatalf("ForType(%v) returned an unexpected error: %v", ct, err)
		}
		if compressor.Type() != ct {
			t.Errorf("ForType(%v).Type() = %v", ct, compressor.Type())
		}
	}
	if _, err := ForType(core.CompressionType(99), 0); err == nil {
		t.Error("expected error for unknown compression type")
	}
}
