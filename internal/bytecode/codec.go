package bytecode

import (
	"fmt"

	"github.com/probe-ir/probe/internal/ir"
)

// Wire kind tags. Exactly one encoded attribute kind exists.
const kindAttrPairs = 0

// EncodeAttr writes one attribute record in the Current version's
// layout: kind tag, then v0, then v1. Attribute kinds without a custom
// encoding are rejected rather than silently passed through.
func EncodeAttr(w *Writer, attr ir.Attr) error {
	pairs, ok := attr.(ir.PairsAttr)
	if !ok {
		return &DecodeError{
			Code:    ErrCodeUnsupportedAttr,
			Message: fmt.Sprintf("no custom encoding for attribute %T", attr),
		}
	}
	w.WriteUvarint(kindAttrPairs)
	w.WriteUvarint(uint64(pairs.V0))
	w.WriteUvarint(uint64(pairs.V1))
	return nil
}

// decodeFn is one pure decode function for one version window.
type decodeFn func(*Reader) (ir.Attr, error)

// decodeTable maps version windows to record layouts, checked in order.
// Add a row here when a new version appears; never branch inline.
var decodeTable = []struct {
	supports func(Version) bool
	decode   decodeFn
}{
	{func(v Version) bool { return v.Major < 2 }, decodePairsLegacy},
	{func(v Version) bool { return v.Major == 2 && v.Minor == 0 }, decodePairsCurrent},
}

// DecodeAttr reads one attribute record using the layout the given
// version wrote. A version no table row supports is an
// ErrCodeUnsupportedVersion failure, never a best-effort guess.
func DecodeAttr(r *Reader, version Version) (ir.Attr, error) {
	for _, entry := range decodeTable {
		if entry.supports(version) {
			return entry.decode(r)
		}
	}
	return nil, &DecodeError{
		Code: ErrCodeUnsupportedVersion,
		Message: fmt.Sprintf("stream version %s is newer than supported version %s",
			version, Current),
	}
}

// readPairsKind consumes and checks the record's kind tag.
func readPairsKind(r *Reader) error {
	kind, err := r.ReadUvarint()
	if err != nil {
		return err
	}
	if kind != kindAttrPairs {
		return &DecodeError{
			Code:    ErrCodeUnknownKind,
			Message: fmt.Sprintf("unknown attribute kind tag %d", kind),
			Offset:  r.Offset(),
		}
	}
	return nil
}

// decodePairsCurrent reads the 2.0 layout: v0 first, v1 second.
func decodePairsCurrent(r *Reader) (ir.Attr, error) {
	if err := readPairsKind(r); err != nil {
		return nil, err
	}
	v0, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	v1, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return ir.PairsAttr{V0: int64(v0), V1: int64(v1)}, nil
}

// decodePairsLegacy reads the pre-2.0 layout: v1 first, v0 second.
// The in-memory attribute comes out identical either way.
func decodePairsLegacy(r *Reader) (ir.Attr, error) {
	if err := readPairsKind(r); err != nil {
		return nil, err
	}
	v1, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	v0, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return ir.PairsAttr{V0: int64(v0), V1: int64(v1)}, nil
}
