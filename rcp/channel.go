package rcp

import (
	"github.com/INLOpen/cloudreaders/core"
	"github.com/INLOpen/cloudreaders/wire"
)

// TouchChannel holds parallel sample columns for the pen/touch stream.
// Timestamps are microseconds; the remaining columns are normalized or
// device-scaled floats. All columns must share a length.
type TouchChannel struct {
	T        []uint64
	X        []float32
	Y        []float32
	Pressure []float32
	Size     []float32
}

var _ Message = (*TouchChannel)(nil)

// Validate checks the equal-length column invariant.
func (ch *TouchChannel) Validate() error {
	return checkColumns("touch", len(ch.T), len(ch.X), len(ch.Y), len(ch.Pressure), len(ch.Size))
}

// SampleCount returns the number of samples in the channel.
func (ch *TouchChannel) SampleCount() int { return len(ch.T) }

// Timestamps returns the t column.
func (ch *TouchChannel) Timestamps() []uint64 { return ch.T }

func (ch *TouchChannel) Serialize() ([]byte, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	var buf []byte
	// Repeated columns emit one tag+value per element, zero values
	// included, so the column lengths survive the round trip.
	for _, v := range ch.T {
		buf = wire.AppendTag(buf, 1, core.WireVarint)
		buf = wire.AppendUvarint(buf, v)
	}
	buf = appendFloatColumn(buf, 2, ch.X)
	buf = appendFloatColumn(buf, 3, ch.Y)
	buf = appendFloatColumn(buf, 4, ch.Pressure)
	buf = appendFloatColumn(buf, 5, ch.Size)
	return buf, nil
}

func (ch *TouchChannel) Parse(data []byte) error {
	*ch = TouchChannel{}
	pos := 0
	for pos < len(data) {
		field, wt, next, err := wire.Tag(data, pos)
		if err != nil {
			return err
		}
		pos = next
		switch field {
		case 1:
			if wt != core.WireVarint {
				return &core.WireTypeMismatchError{Message: "TouchChannel", Field: field, Got: wt, Want: core.WireVarint}
			}
			var v uint64
			v, pos, err = wire.Uvarint(data, pos)
			if err != nil {
				return err
			}
			ch.T = append(ch.T, v)
		case 2, 3, 4, 5:
			if wt != core.WireFixed32 {
				return &core.WireTypeMismatchError{Message: "TouchChannel", Field: field, Got: wt, Want: core.WireFixed32}
			}
			var v float32
			v, pos, err = wire.Fixed32(data, pos)
			if err != nil {
				return err
			}
			switch field {
			case 2:
				ch.X = append(ch.X, v)
			case 3:
				ch.Y = append(ch.Y, v)
			case 4:
				ch.Pressure = append(ch.Pressure, v)
			case 5:
				ch.Size = append(ch.Size, v)
			}
		default:
			return &core.UnknownFieldError{Message: "TouchChannel", Field: field}
		}
	}
	return ch.Validate()
}

func (ch *TouchChannel) toDict() map[string]any {
	return map[string]any{
		"t":        timeColumnDict(ch.T),
		"x":        floatColumnDict(ch.X),
		"y":        floatColumnDict(ch.Y),
		"pressure": floatColumnDict(ch.Pressure),
		"size":     floatColumnDict(ch.Size),
	}
}

// AccChannel holds accelerometer samples in t/x/y/z column layout
// (microseconds and m/s^2).
type AccChannel struct {
	T []uint64
	X []float32
	Y []float32
	Z []float32
}

var _ Message = (*AccChannel)(nil)

func (ch *AccChannel) Validate() error {
	return checkColumns("acc", len(ch.T), len(ch.X), len(ch.Y), len(ch.Z))
}

func (ch *AccChannel) SampleCount() int { return len(ch.T) }

func (ch *AccChannel) Timestamps() []uint64 { return ch.T }

func (ch *AccChannel) Serialize() ([]byte, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	return serializeMotion(ch.T, ch.X, ch.Y, ch.Z), nil
}

func (ch *AccChannel) Parse(data []byte) error {
	t, x, y, z, err := parseMotion("AccChannel", data)
	if err != nil {
		return err
	}
	*ch = AccChannel{T: t, X: x, Y: y, Z: z}
	return ch.Validate()
}

func (ch *AccChannel) toDict() map[string]any {
	return motionDict(ch.T, ch.X, ch.Y, ch.Z)
}

// GyroChannel holds gyroscope samples in t/x/y/z column layout
// (microseconds and rad/s).
type GyroChannel struct {
	T []uint64
	X []float32
	Y []float32
	Z []float32
}

var _ Message = (*GyroChannel)(nil)

func (ch *GyroChannel) Validate() error {
	return checkColumns("gyro", len(ch.T), len(ch.X), len(ch.Y), len(ch.Z))
}

func (ch *GyroChannel) SampleCount() int { return len(ch.T) }

func (ch *GyroChannel) Timestamps() []uint64 { return ch.T }

func (ch *GyroChannel) Serialize() ([]byte, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	return serializeMotion(ch.T, ch.X, ch.Y, ch.Z), nil
}

func (ch *GyroChannel) Parse(data []byte) error {
	t, x, y, z, err := parseMotion("GyroChannel", data)
	if err != nil {
		return err
	}
	*ch = GyroChannel{T: t, X: x, Y: y, Z: z}
	return ch.Validate()
}

func (ch *GyroChannel) toDict() map[string]any {
	return motionDict(ch.T, ch.X, ch.Y, ch.Z)
}

// --- shared column helpers ---

func checkColumns(channel string, lengths ...int) error {
	for _, n := range lengths[1:] {
		if n != lengths[0] {
			return &core.ColumnLengthMismatchError{Channel: channel, Lengths: lengths}
		}
	}
	return nil
}

func appendFloatColumn(buf []byte, field uint64, col []float32) []byte {
	for _, v := range col {
		buf = wire.AppendTag(buf, field, core.WireFixed32)
		buf = wire.AppendFixed32(buf, v)
	}
	return buf
}

func serializeMotion(t []uint64, x, y, z []float32) []byte {
	var buf []byte
	for _, v := range t {
		buf = wire.AppendTag(buf, 1, core.WireVarint)
		buf = wire.AppendUvarint(buf, v)
	}
	buf = appendFloatColumn(buf, 2, x)
	buf = appendFloatColumn(buf, 3, y)
	buf = appendFloatColumn(buf, 4, z)
	return buf
}

func parseMotion(message string, data []byte) (t []uint64, x, y, z []float32, err error) {
	pos := 0
	for pos < len(data) {
		field, wt, next, tagErr := wire.Tag(data, pos)
		if tagErr != nil {
			return nil, nil, nil, nil, tagErr
		}
		pos = next
		switch field {
		case 1:
			if wt != core.WireVarint {
				return nil, nil, nil, nil, &core.WireTypeMismatchError{Message: message, Field: field, Got: wt, Want: core.WireVarint}
			}
			var v uint64
			v, pos, err = wire.Uvarint(data, pos)
			if err != nil {
				return nil, nil, nil, nil, err
			}
			t = append(t, v)
		case 2, 3, 4:
			if wt != core.WireFixed32 {
				return nil, nil, nil, nil, &core.WireTypeMismatchError{Message: message, Field: field, Got: wt, Want: core.WireFixed32}
			}
			var v float32
			v, pos, err = wire.Fixed32(data, pos)
			if err != nil {
				return nil, nil, nil, nil, err
			}
			switch field {
			case 2:
				x = append(x, v)
			case 3:
				y = append(y, v)
			case 4:
				z = append(z, v)
			}
		default:
			return nil, nil, nil, nil, &core.UnknownFieldError{Message: message, Field: field}
		}
	}
	return t, x, y, z, nil
}

func motionDict(t []uint64, x, y, z []float32) map[string]any {
	return map[string]any{
		"t": timeColumnDict(t),
		"x": floatColumnDict(x),
		"y": floatColumnDict(y),
		"z": floatColumnDict(z),
	}
}

func timeColumnDict(t []uint64) []uint64 {
	if t == nil {
		return []uint64{}
	}
	return t
}

func floatColumnDict(col []float32) []float32 {
	if col == nil {
		return []float32{}
	}
	return col
}
