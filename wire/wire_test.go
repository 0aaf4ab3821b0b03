package wire

import (
	"bytes"
	"math"
	"testing"

	"github.com/INLOpen/cloudreaders/core"
)

func TestUvarintRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		v    uint64
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one", 1, []byte{0x01}},
		{"boundary 127", 127, []byte{0x7f}},
		{"boundary 128", 128, []byte{0x80, 0x01}},
		{"300", 300, []byte{0xac, 0x02}},
		{"max uint64", math.MaxUint64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := AppendUvarint(nil, tc.v)
			if !bytes.Equal(buf, tc.want) {
				t.Fatalf("AppendUvarint(%d) = %x, want %x", tc.v, buf, tc.want)
			}
			got, pos, err := Uvarint(buf, 0)
			if err != nil {
				t.Fatalf("Uvarint returned an unexpected error: %v", err)
			}
			if got != tc.v || pos != len(buf) {
				t.Errorf("Uvarint = (%d, %d), want (%d, %d)", got, pos, tc.v, len(buf))
			}
		})
	}
}

func TestUvarintTruncated(t *testing.T) {
	// All continuation bits set, no terminating byte.
	_, _, err := Uvarint([]byte{0x80, 0x80, 0x80}, 0)
	if !core.IsTruncatedInput(err) {
		t.Fatalf("expected TruncatedInputError, got %v", err)
	}
	_, _, err = Uvarint(nil, 0)
	if !core.IsTruncatedInput(err) {
		t.Fatalf("expected TruncatedInputError on empty buffer, got %v", err)
	}
}

func TestTagRoundTrip(t *testing.T) {
	buf := AppendTag(nil, 5, core.WireLengthDelimited)
	field, wt, pos, err := Tag(buf, 0)
	if err != nil {
		t.Fatalf("Tag returned an unexpected error: %v", err)
	}
	if field != 5 || wt != core.WireLengthDelimited || pos != len(buf) {
		t.Errorf("Tag = (%d, %v, %d), want (5, length-delimited, %d)", field, wt, pos, len(buf))
	}
}

func TestLengthDelimited(t *testing.T) {
	payload := []byte("cloud readers")
	buf := AppendLengthDelimited(nil, payload)
	got, pos, err := LengthDelimited(buf, 0)
	if err != nil {
		t.Fatalf("LengthDelimited returned an unexpected error: %v", err)
	}
	if !bytes.Equal(got, payload) || pos != len(buf) {
		t.Errorf("LengthDelimited = (%q, %d), want (%q, %d)", got, pos, payload, len(buf))
	}

	// Declared length exceeds the remaining buffer.
	truncated := AppendUvarint(nil, 64)
	truncated = append(truncated, 'x')
	if _, _, err := LengthDelimited(truncated, 0); !core.IsTruncatedInput(err) {
		t.Fatalf("expected TruncatedInputError, got %v", err)
	}
}

func TestFixedWidthFloats(t *testing.T) {
	buf := AppendFixed32(nil, 1.5)
	f32, pos, err := Fixed32(buf, 0)
	if err != nil || f32 != 1.5 || pos != 4 {
		t.Fatalf("Fixed32 = (%v, %d, %v), want (1.5, 4, nil)", f32, pos, err)
	}

	buf = AppendFixed64(nil, -300.25)
	f64, pos, err := Fixed64(buf, 0)
	if err != nil || f64 != -300.25 || pos != 8 {
		t.Fatalf("Fixed64 = (%v, %d, %v), want (-300.25, 8, nil)", f64, pos, err)
	}

	if _, _, err := Fixed32([]byte{1, 2, 3}, 0); !core.IsTruncatedInput(err) {
		t.Fatalf("expected TruncatedInputError for short fixed32, got %v", err)
	}
	if _, _, err := Fixed64([]byte{1, 2, 3, 4, 5, 6, 7}, 0); !core.IsTruncatedInput(err) {
		t.Fatalf("expected TruncatedInputError for short fixed64, got %v", err)
	}
}
