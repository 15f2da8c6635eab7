package bytecode

import (
	"fmt"

	"github.com/probe-ir/probe/internal/ir"
)

// DialectName tags the custom section with the dialect's identity.
const DialectName = "probe"

// WriteSection emits a dialect section: identity tag, two-varint version
// header, then zero or more attribute records. The section is always
// written at the Current version.
func WriteSection(attrs []ir.Attr) ([]byte, error) {
	w := NewWriter()
	w.WriteString(DialectName)
	w.WriteUvarint(uint64(Current.Major))
	w.WriteUvarint(uint64(Current.Minor))
	for i, attr := range attrs {
		if err := EncodeAttr(w, attr); err != nil {
			return nil, fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return w.Bytes(), nil
}

// WriteSectionAt emits a dialect section the way a producer at the
// given version would have: the header names that version and the
// records use its wire layout. Used to fabricate streams from older
// producers when exercising the upgrade path.
func WriteSectionAt(version Version, attrs []ir.Attr) ([]byte, error) {
	w := NewWriter()
	w.WriteString(DialectName)
	w.WriteUvarint(uint64(version.Major))
	w.WriteUvarint(uint64(version.Minor))
	for i, attr := range attrs {
		pairs, ok := attr.(ir.PairsAttr)
		if !ok {
			return nil, fmt.Errorf("encode record %d: %w", i, &DecodeError{
				Code:    ErrCodeUnsupportedAttr,
				Message: fmt.Sprintf("no custom encoding for attribute %T", attr),
			})
		}
		w.WriteUvarint(kindAttrPairs)
		if version.Major < 2 {
			w.WriteUvarint(uint64(pairs.V1))
			w.WriteUvarint(uint64(pairs.V0))
		} else {
			w.WriteUvarint(uint64(pairs.V0))
			w.WriteUvarint(uint64(pairs.V1))
		}
	}
	return w.Bytes(), nil
}

// ReadSection parses a dialect section and decodes every record using
// the layout named in the header. The producing version is returned so
// the caller can drive the upgrade entry point.
func ReadSection(data []byte) (Version, []ir.Attr, error) {
	r := NewReader(data)
	version, err := readHeader(r)
	if err != nil {
		return Version{}, nil, err
	}
	attrs, err := readRecords(r, version)
	return version, attrs, err
}

// LoadSection is the deserializer entry point: it reads the version
// header, runs the upgrade pass over the module before any record is
// interpreted, then decodes the records.
func LoadSection(data []byte, module *ir.Module) (Version, []ir.Attr, error) {
	r := NewReader(data)
	version, err := readHeader(r)
	if err != nil {
		return Version{}, nil, err
	}
	if err := Upgrade(module.Op, version); err != nil {
		return version, nil, err
	}
	attrs, err := readRecords(r, version)
	return version, attrs, err
}

// readHeader consumes the identity tag and the two-varint version pair.
func readHeader(r *Reader) (Version, error) {
	name, err := r.ReadString()
	if err != nil {
		return Version{}, fmt.Errorf("read section identity: %w", err)
	}
	if name != DialectName {
		return Version{}, &DecodeError{
			Code:    ErrCodeBadSection,
			Message: fmt.Sprintf("section identity %q is not %q", name, DialectName),
		}
	}
	major, err := r.ReadUvarint()
	if err != nil {
		return Version{}, fmt.Errorf("read major version: %w", err)
	}
	minor, err := r.ReadUvarint()
	if err != nil {
		return Version{}, fmt.Errorf("read minor version: %w", err)
	}
	return Version{Major: uint32(major), Minor: uint32(minor)}, nil
}

// readRecords decodes attribute records until the stream is exhausted.
func readRecords(r *Reader, version Version) ([]ir.Attr, error) {
	var attrs []ir.Attr
	for r.Remaining() > 0 {
		attr, err := DecodeAttr(r, version)
		if err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(attrs), err)
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}
