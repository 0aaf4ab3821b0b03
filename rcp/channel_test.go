package rcp

import (
	"reflect"
	"testing"

	"github.com/INLOpen/cloudreaders/core"
	"github.com/INLOpen/cloudreaders/wire"
)

func TestTouchChannelRoundTrip(t *testing.T) {
	original := TouchChannel{
		T:        []uint64{0, 50_000, 100_000},
		X:        []float32{0.0, 1.0, 2.0},
		Y:        []float32{0.0, 1.5, 3.0},
		Pressure: []float32{0.5, 0.55, 0.6},
		Size:     []float32{1.0, 1.1, 1.2},
	}
	data, err := original.Serialize()
	if err != nil {
		t.Fatalf("Serialize returned an unexpected error: %v", err)
	}
	var decoded TouchChannel
	if err := decoded.Parse(data); err != nil {
		t.Fatalf("Parse returned an unexpected error: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestMotionChannelRoundTrip(t *testing.T) {
	acc := AccChannel{
		T: []uint64{0, 40_000, 80_000},
		X: []float32{0.0, 0.1, 0.2},
		Y: []float32{0.0, 0.05, 0.1},
		Z: []float32{-9.81, -9.80, -9.82},
	}
	data, err := acc.Serialize()
	if err != nil {
		t.Fatalf("Serialize returned an unexpected error: %v", err)
	}

	var decodedAcc AccChannel
	if err := decodedAcc.Parse(data); err != nil {
		t.Fatalf("Parse returned an unexpected error: %v", err)
	}
	if !reflect.DeepEqual(decodedAcc, acc) {
		t.Errorf("acc round trip mismatch:\n got %+v\nwant %+v", decodedAcc, acc)
	}

	// Acc and gyro share a wire shape; the same bytes decode as either.
	var decodedGyro GyroChannel
	if err := decodedGyro.Parse(data); err != nil {
		t.Fatalf("gyro Parse returned an unexpected error: %v", err)
	}
	if !reflect.DeepEqual(decodedGyro.T, acc.T) {
		t.Errorf("gyro timestamps mismatch: got %v, want %v", decodedGyro.T, acc.T)
	}
}

func TestZeroValuedElementsSurviveRoundTrip(t *testing.T) {
	// Repeated columns must emit zero-valued elements; otherwise the
	// columns shrink on decode and the length invariant breaks.
	original := AccChannel{
		T: []uint64{0, 1},
		X: []float32{0, 0},
		Y: []float32{0, 0},
		Z: []float32{0, 0},
	}
	data, err := original.Serialize()
	if err != nil {
		t.Fatalf("Serialize returned an unexpected error: %v", err)
	}
	var decoded AccChannel
	if err := decoded.Parse(data); err != nil {
		t.Fatalf("Parse returned an unexpected error: %v", err)
	}
	if decoded.SampleCount() != 2 {
		t.Errorf("SampleCount = %d, want 2", decoded.SampleCount())
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestColumnLengthMismatchOnSerialize(t *testing.T) {
	bad := TouchChannel{
		T:        []uint64{0, 1},
		X:        []float32{0.0},
		Y:        []float32{0.0, 1.0},
		Pressure: []float32{0.1, 0.2},
		Size:     []float32{0.2, 0.3},
	}
	if _, err := bad.Serialize(); !core.IsColumnLengthMismatch(err) {
		t.Fatalf("expected ColumnLengthMismatchError, got %v", err)
	}
}

func TestColumnLengthMismatchOnParse(t *testing.T) {
	// Two timestamps but a single x element.
	buf := wire.AppendTag(nil, 1, core.WireVarint)
	buf = wire.AppendUvarint(buf, 0)
	buf = wire.AppendTag(buf, 1, core.WireVarint)
	buf = wire.AppendUvarint(buf, 1)
	buf = wire.AppendTag(buf, 2, core.WireFixed32)
	buf = wire.AppendFixed32(buf, 1.0)

	var acc AccChannel
	if err := acc.Parse(buf); !core.IsColumnLengthMismatch(err) {
		t.Fatalf("expected ColumnLengthMismatchError, got %v", err)
	}
}

func TestEmptyChannelRoundTrip(t *testing.T) {
	var empty GyroChannel
	data, err := empty.Serialize()
	if err != nil {
		t.Fatalf("Serialize returned an unexpected error: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("empty channel should serialize to zero bytes, got %d", len(data))
	}
	var decoded GyroChannel
	if err := decoded.Parse(data); err != nil {
		t.Fatalf("Parse returned an unexpected error: %v", err)
	}
	if decoded.SampleCount() != 0 {
		t.Errorf("SampleCount = %d, want 0", decoded.SampleCount())
	}
}
