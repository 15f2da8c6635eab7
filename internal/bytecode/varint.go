package bytecode

import (
	"encoding/binary"
	"fmt"
)

// Writer accumulates varint-encoded wire bytes.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteUvarint appends an unsigned varint.
func (w *Writer) WriteUvarint(v uint64) {
	w.buf = binary.AppendUvarint(w.buf, v)
}

// WriteString appends a length-prefixed string.
func (w *Writer) WriteString(s string) {
	w.WriteUvarint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteBytes appends a length-prefixed byte blob.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteUvarint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// Bytes returns the accumulated wire bytes. The slice aliases the
// writer's buffer; callers must not keep writing after reading it.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reader consumes varint-encoded wire bytes.
type Reader struct {
	data []byte
	off  int
}

// NewReader creates a reader over the given bytes.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadUvarint consumes one unsigned varint.
// A truncated or over-long varint yields ErrCodeTruncated.
func (r *Reader) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.off:])
	if n <= 0 {
		return 0, &DecodeError{
			Code:    ErrCodeTruncated,
			Message: "truncated varint",
			Offset:  r.off,
		}
	}
	r.off += n
	return v, nil
}

// ReadString consumes one length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return "", err
	}
	if uint64(r.Remaining()) < n {
		return "", &DecodeError{
			Code:    ErrCodeTruncated,
			Message: fmt.Sprintf("string of length %d exceeds remaining %d bytes", n, r.Remaining()),
			Offset:  r.off,
		}
	}
	s := string(r.data[r.off : r.off+int(n)])
	r.off += int(n)
	return s, nil
}

// ReadBytes consumes one length-prefixed byte blob.
func (r *Reader) ReadBytes() ([]byte, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Offset returns the current stream position.
func (r *Reader) Offset() int {
	return r.off
}
