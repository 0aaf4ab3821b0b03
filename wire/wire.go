// Package wire provides the low-level encoding primitives for the RCP
// binary message format: base-128 varints, field tags, length-delimited
// payloads, and little-endian IEEE-754 fixed-width floats. The format is
// a strict subset of the protobuf wire encoding.
package wire

import (
	"encoding/binary"
	"math"

	"github.com/INLOpen/cloudreaders/core"
)

// MaxVarintLen64 is the maximum number of bytes for a varint-encoded
// uint64: ceil(64/7) = 10.
const MaxVarintLen64 = 10

// AppendUvarint appends the base-128 varint encoding of v to buf and
// returns the extended buffer. Bytes are ordered least significant
// first, with the high bit set on every byte except the last.
func AppendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// Uvarint decodes a varint starting at pos and returns the value and
// the position just past it.
func Uvarint(data []byte, pos int) (uint64, int, error) {
	var v uint64
	var shift uint
	for i := 0; ; i++ {
		if pos >= len(data) {
			return 0, pos, &core.TruncatedInputError{What: "varint"}
		}
		if i >= MaxVarintLen64 {
			return 0, pos, &core.TruncatedInputError{What: "varint (too long)"}
		}
		b := data[pos]
		pos++
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v, pos, nil
		}
		shift += 7
	}
}

// AppendTag appends the tag for (field, wireType): varint((field<<3)|wireType).
func AppendTag(buf []byte, field uint64, wireType core.WireType) []byte {
	return AppendUvarint(buf, field<<3|uint64(wireType))
}

// Tag decodes a field tag at pos, returning the field number, wire
// type, and the position just past the tag.
func Tag(data []byte, pos int) (uint64, core.WireType, int, error) {
	raw, pos, err := Uvarint(data, pos)
	if err != nil {
		return 0, 0, pos, err
	}
	return raw >> 3, core.WireType(raw & 0x07), pos, nil
}

// AppendLengthDelimited appends varint(len(payload)) followed by payload.
func AppendLengthDelimited(buf, payload []byte) []byte {
	buf = AppendUvarint(buf, uint64(len(payload)))
	return append(buf, payload...)
}

// LengthDelimited decodes a length-delimited payload at pos. The
// returned slice aliases data.
func LengthDelimited(data []byte, pos int) ([]byte, int, error) {
	length, pos, err := Uvarint(data, pos)
	if err != nil {
		return nil, pos, err
	}
	end := pos + int(length)
	if length > uint64(len(data)) || end > len(data) || end < pos {
		return nil, pos, &core.TruncatedInputError{What: "length-delimited payload"}
	}
	return data[pos:end], end, nil
}

// AppendFixed32 appends the little-endian IEEE-754 encoding of a float32.
func AppendFixed32(buf []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
}

// Fixed32 decodes a little-endian float32 at pos, consuming exactly 4 bytes.
func Fixed32(data []byte, pos int) (float32, int, error) {
	if pos+4 > len(data) {
		return 0, pos, &core.TruncatedInputError{What: "fixed32"}
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(data[pos:])), pos + 4, nil
}

// AppendFixed64 appends the little-endian IEEE-754 encoding of a float64.
func AppendFixed64(buf []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
}

// Fixed64 decodes a little-endian float64 at pos, consuming exactly 8 bytes.
func Fixed64(data []byte, pos int) (float64, int, error) {
	if pos+8 > len(data) {
		return 0, pos, &core.TruncatedInputError{What: "fixed64"}
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(data[pos:])), pos + 8, nil
}
