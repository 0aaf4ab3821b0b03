package core

import (
	"errors"
	"fmt"
)

// WireType identifies how a field value is encoded on the wire.
type WireType uint8

const (
	WireVarint          WireType = 0
	WireFixed64         WireType = 1
	WireLengthDelimited WireType = 2
	WireFixed32         WireType = 5
)

func (w WireType) String() string {
	switch w {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireLengthDelimited:
		return "length-delimited"
	case WireFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("wiretype(%d)", uint8(w))
	}
}

// TruncatedInputError reports a wire-format buffer that ended before a
// value was fully decodable.
type TruncatedInputError struct {
	What string // e.g. "varint", "fixed32", "length-delimited payload"
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input while decoding %s", e.What)
}

// UnknownFieldError reports a field number the strict schema does not
// recognize. Unknown fields are never skipped.
type UnknownFieldError struct {
	Message string // message type being decoded
	Field   uint64
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %d in %s message", e.Field, e.Message)
}

// WireTypeMismatchError reports a known field number paired with an
// unexpected wire type.
type WireTypeMismatchError struct {
	Message string
	Field   uint64
	Got     WireType
	Want    WireType
}

func (e *WireTypeMismatchError) Error() string {
	return fmt.Sprintf("field %d in %s message has wire type %s, want %s",
		e.Field, e.Message, e.Got, e.Want)
}

// ColumnLengthMismatchError reports a channel whose parallel columns do
// not share a length, detected at encode or decode time.
type ColumnLengthMismatchError struct {
	Channel string
	Lengths []int
}

func (e *ColumnLengthMismatchError) Error() string {
	return fmt.Sprintf("%s channel has mismatched column lengths %v", e.Channel, e.Lengths)
}

// CompressionError wraps an error reported by the underlying
// compression library, message passed through verbatim.
type CompressionError struct {
	Message string
}

func (e *CompressionError) Error() string {
	return fmt.Sprintf("compression error: %s", e.Message)
}

// ErrOutputTooLarge is returned when decompression output would exceed
// MaxDecompressedSize.
var ErrOutputTooLarge = errors.New("decompressed output exceeds size ceiling")

// IsTruncatedInput checks if an error is a TruncatedInputError.
func IsTruncatedInput(err error) bool {
	var truncated *TruncatedInputError
	return errors.As(err, &truncated)
}

// IsUnknownField checks if an error is an UnknownFieldError.
func IsUnknownField(err error) bool {
	var unknown *UnknownFieldError
	return errors.As(err, &unknown)
}

// IsWireTypeMismatch checks if an error is a WireTypeMismatchError.
func IsWireTypeMismatch(err error) bool {
	var mismatch *WireTypeMismatchError
	return errors.As(err, &mismatch)
}

// IsColumnLengthMismatch checks if an error is a ColumnLengthMismatchError.
func IsColumnLengthMismatch(err error) bool {
	var mismatch *ColumnLengthMismatchError
	return errors.As(err, &mismatch)
}

// IsCompressionError checks if an error is a CompressionError.
func IsCompressionError(err error) bool {
	var compression *CompressionError
	return errors.As(err, &compression)
}
