// Package rcp implements the RCP 2025 columnar package format: the
// message schema (manifest, index, checksum, sample channels), the
// on-disk package layout, and the writer/reader/verifier that tie them
// together.
//
// The wire encoding is a strict subset of the protobuf format. Unknown
// fields and wire-type mismatches are hard errors rather than being
// skipped; packages produced by one revision of the schema are not
// forward compatible with older readers.
package rcp

import (
	"sort"

	"github.com/INLOpen/cloudreaders/core"
	"github.com/INLOpen/cloudreaders/wire"
)

// Message is the capability set shared by every RCP message type.
type Message interface {
	// Serialize encodes the message into its binary wire form.
	Serialize() ([]byte, error)
	// Parse decodes the binary wire form into the receiver, replacing
	// its previous contents.
	Parse(data []byte) error
}

// Checksum records the SHA-256 digest of one package artifact.
type Checksum struct {
	Path   string // relative, forward-slash
	SHA256 string // 64 lowercase hex chars
}

var _ Message = (*Checksum)(nil)

func (c *Checksum) Serialize() ([]byte, error) {
	var buf []byte
	if c.Path != "" {
		buf = wire.AppendTag(buf, 1, core.WireLengthDelimited)
		buf = wire.AppendLengthDelimited(buf, []byte(c.Path))
	}
	if c.SHA256 != "" {
		buf = wire.AppendTag(buf, 2, core.WireLengthDelimited)
		buf = wire.AppendLengthDelimited(buf, []byte(c.SHA256))
	}
	return buf, nil
}

func (c *Checksum) Parse(data []byte) error {
	*c = Checksum{}
	pos := 0
	for pos < len(data) {
		field, wt, next, err := wire.Tag(data, pos)
		if err != nil {
			return err
		}
		pos = next
		switch field {
		case 1, 2:
			if wt != core.WireLengthDelimited {
				return &core.WireTypeMismatchError{Message: "Checksum", Field: field, Got: wt, Want: core.WireLengthDelimited}
			}
			raw, next, err := wire.LengthDelimited(data, pos)
			if err != nil {
				return err
			}
			pos = next
			if field == 1 {
				c.Path = string(raw)
			} else {
				c.SHA256 = string(raw)
			}
		default:
			return &core.UnknownFieldError{Message: "Checksum", Field: field}
		}
	}
	return nil
}

func (c *Checksum) toDict() map[string]any {
	return map[string]any{"path": c.Path, "sha256": c.SHA256}
}

// Manifest describes one export: identity, provenance, and a free-form
// attribute map merged from the upstream pipeline stages.
type Manifest struct {
	Version       string
	PackageID     string
	Source        string
	DeviceProfile string
	DPI           float64
	CreatedAt     string // ISO-8601 UTC with "Z" suffix
	Attributes    map[string]string
}

var _ Message = (*Manifest)(nil)

func (m *Manifest) Serialize() ([]byte, error) {
	var buf []byte
	appendString := func(field uint64, v string) {
		if v != "" {
			buf = wire.AppendTag(buf, field, core.WireLengthDelimited)
			buf = wire.AppendLengthDelimited(buf, []byte(v))
		}
	}
	appendString(1, m.Version)
	appendString(2, m.PackageID)
	appendString(3, m.Source)
	appendString(4, m.DeviceProfile)
	if m.DPI != 0 {
		buf = wire.AppendTag(buf, 5, core.WireFixed64)
		buf = wire.AppendFixed64(buf, m.DPI)
	}
	appendString(6, m.CreatedAt)

	// Sorted keys keep encodes deterministic across calls; the contract
	// only requires stability within one call.
	keys := make([]string, 0, len(m.Attributes))
	for k := range m.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var entry []byte
		entry = wire.AppendTag(entry, 1, core.WireLengthDelimited)
		entry = wire.AppendLengthDelimited(entry, []byte(k))
		entry = wire.AppendTag(entry, 2, core.WireLengthDelimited)
		entry = wire.AppendLengthDelimited(entry, []byte(m.Attributes[k]))
		buf = wire.AppendTag(buf, 7, core.WireLengthDelimited)
		buf = wire.AppendLengthDelimited(buf, entry)
	}
	return buf, nil
}

func (m *Manifest) Parse(data []byte) error {
	*m = Manifest{Attributes: make(map[string]string)}
	pos := 0
	for pos < len(data) {
		field, wt, next, err := wire.Tag(data, pos)
		if err != nil {
			return err
		}
		pos = next
		switch field {
		case 1, 2, 3, 4, 6:
			if wt != core.WireLengthDelimited {
				return &core.WireTypeMismatchError{Message: "Manifest", Field: field, Got: wt, Want: core.WireLengthDelimited}
			}
			raw, next, err := wire.LengthDelimited(data, pos)
			if err != nil {
				return err
			}
			pos = next
			switch field {
			case 1:
				m.Version = string(raw)
			case 2:
				m.PackageID = string(raw)
			case 3:
				m.Source = string(raw)
			case 4:
				m.DeviceProfile = string(raw)
			case 6:
				m.CreatedAt = string(raw)
			}
		case 5:
			if wt != core.WireFixed64 {
				return &core.WireTypeMismatchError{Message: "Manifest", Field: field, Got: wt, Want: core.WireFixed64}
			}
			m.DPI, pos, err = wire.Fixed64(data, pos)
			if err != nil {
				return err
			}
		case 7:
			if wt != core.WireLengthDelimited {
				return &core.WireTypeMismatchError{Message: "Manifest", Field: field, Got: wt, Want: core.WireLengthDelimited}
			}
			raw, next, err := wire.LengthDelimited(data, pos)
			if err != nil {
				return err
			}
			pos = next
			if err := m.parseAttributeEntry(raw); err != nil {
				return err
			}
		default:
			return &core.UnknownFieldError{Message: "Manifest", Field: field}
		}
	}
	return nil
}

func (m *Manifest) parseAttributeEntry(entry []byte) error {
	var key, value string
	pos := 0
	for pos < len(entry) {
		field, wt, next, err := wire.Tag(entry, pos)
		if err != nil {
			return err
		}
		pos = next
		switch field {
		case 1, 2:
			if wt != core.WireLengthDelimited {
				return &core.WireTypeMismatchError{Message: "Manifest.attributes", Field: field, Got: wt, Want: core.WireLengthDelimited}
			}
			raw, next, err := wire.LengthDelimited(entry, pos)
			if err != nil {
				return err
			}
			pos = next
			if field == 1 {
				key = string(raw)
			} else {
				value = string(raw)
			}
		default:
			return &core.UnknownFieldError{Message: "Manifest.attributes", Field: field}
		}
	}
	if key != "" {
		m.Attributes[key] = value
	}
	return nil
}

func (m *Manifest) toDict() map[string]any {
	attrs := make(map[string]string, len(m.Attributes))
	for k, v := range m.Attributes {
		attrs[k] = v
	}
	return map[string]any{
		"version":        m.Version,
		"package_id":     m.PackageID,
		"source":         m.Source,
		"device_profile": m.DeviceProfile,
		"dpi":            m.DPI,
		"created_at":     m.CreatedAt,
		"attributes":     attrs,
	}
}

// Index summarizes the channel artifacts actually persisted on disk.
// It is derived by re-reading the written channel files, never from
// caller-supplied sample data.
type Index struct {
	TouchSamples    uint64
	AccSamples      uint64
	GyroSamples     uint64
	DurationSeconds float64
	Checksums       []Checksum
}

var _ Message = (*Index)(nil)

func (ix *Index) Serialize() ([]byte, error) {
	var buf []byte
	appendCount := func(field uint64, v uint64) {
		if v != 0 {
			buf = wire.AppendTag(buf, field, core.WireVarint)
			buf = wire.AppendUvarint(buf, v)
		}
	}
	appendCount(1, ix.TouchSamples)
	appendCount(2, ix.AccSamples)
	appendCount(3, ix.GyroSamples)
	if ix.DurationSeconds != 0 {
		buf = wire.AppendTag(buf, 4, core.WireFixed64)
		buf = wire.AppendFixed64(buf, ix.DurationSeconds)
	}
	for i := range ix.Checksums {
		payload, err := ix.Checksums[i].Serialize()
		if err != nil {
			return nil, err
		}
		buf = wire.AppendTag(buf, 5, core.WireLengthDelimited)
		buf = wire.AppendLengthDelimited(buf, payload)
	}
	return buf, nil
}

func (ix *Index) Parse(data []byte) error {
	*ix = Index{}
	pos := 0
	for pos < len(data) {
		field, wt, next, err := wire.Tag(data, pos)
		if err != nil {
			return err
		}
		pos = next
		switch field {
		case 1, 2, 3:
			if wt != core.WireVarint {
				return &core.WireTypeMismatchError{Message: "Index", Field: field, Got: wt, Want: core.WireVarint}
			}
			var v uint64
			v, pos, err = wire.Uvarint(data, pos)
			if err != nil {
				return err
			}
			switch field {
			case 1:
				ix.TouchSamples = v
			case 2:
				ix.AccSamples = v
			case 3:
				ix.GyroSamples = v
			}
		case 4:
			if wt != core.WireFixed64 {
				return &core.WireTypeMismatchError{Message: "Index", Field: field, Got: wt, Want: core.WireFixed64}
			}
			ix.DurationSeconds, pos, err = wire.Fixed64(data, pos)
			if err != nil {
				return err
			}
		case 5:
			if wt != core.WireLengthDelimited {
				return &core.WireTypeMismatchError{Message: "Index", Field: field, Got: wt, Want: core.WireLengthDelimited}
			}
			raw, next, err := wire.LengthDelimited(data, pos)
			if err != nil {
				return err
			}
			pos = next
			var c Checksum
			if err := c.Parse(raw); err != nil {
				return err
			}
			ix.Checksums = append(ix.Checksums, c)
		default:
			return &core.UnknownFieldError{Message: "Index", Field: field}
		}
	}
	return nil
}

func (ix *Index) toDict() map[string]any {
	checksums := make([]map[string]any, 0, len(ix.Checksums))
	for i := range ix.Checksums {
		checksums = append(checksums, ix.Checksums[i].toDict())
	}
	return map[string]any{
		"touch_samples":    ix.TouchSamples,
		"acc_samples":      ix.AccSamples,
		"gyro_samples":     ix.GyroSamples,
		"duration_seconds": ix.DurationSeconds,
		"checksums":        checksums,
	}
}
