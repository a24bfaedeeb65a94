// Package wire implements the length-prefixed serialization format shared by
// all multi-part QuantumShield objects.
//
// Wire Format:
//
// All integers are little-endian. Variable-length fields are prefixed with a
// uint32 length:
//
//	+--------+----------+--------+----------+
//	| Len A  | Field A  | Len B  | Field B  |
//	| 4B LE  | Variable | 4B LE  | Variable |
//	+--------+----------+--------+----------+
//
// An empty field is encoded as a zero length followed by nothing. Truncated
// input and length fields exceeding the buffer produce ErrParse.
package wire

import (
	"encoding/binary"

	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
)

// Builder accumulates a wire-encoded byte buffer.
type Builder struct {
	buf []byte
}

// NewBuilder creates a Builder with the given capacity hint.
func NewBuilder(capacity int) *Builder {
	return &Builder{buf: make([]byte, 0, capacity)}
}

// Uint16 appends a little-endian uint16.
func (b *Builder) Uint16(v uint16) *Builder {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
	return b
}

// Uint32 appends a little-endian uint32.
func (b *Builder) Uint32(v uint32) *Builder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

// Uint64 appends a little-endian uint64.
func (b *Builder) Uint64(v uint64) *Builder {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
	return b
}

// Bytes appends a uint32 length prefix followed by p.
func (b *Builder) Bytes(p []byte) *Builder {
	b.Uint32(uint32(len(p)))
	b.buf = append(b.buf, p...)
	return b
}

// String appends a uint32 length prefix followed by the UTF-8 bytes of s.
func (b *Builder) String(s string) *Builder {
	return b.Bytes([]byte(s))
}

// Build returns the encoded buffer.
func (b *Builder) Build() []byte {
	return b.buf
}

// Reader consumes a wire-encoded byte buffer.
type Reader struct {
	data []byte
	off  int
}

// NewReader creates a Reader over data. The Reader does not take ownership;
// decoded byte fields are copies.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	if r.off+2 > len(r.data) {
		return 0, qerrors.NewCryptoError("wire.Uint16", qerrors.ErrParse)
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	if r.off+4 > len(r.data) {
		return 0, qerrors.NewCryptoError("wire.Uint32", qerrors.ErrParse)
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	if r.off+8 > len(r.data) {
		return 0, qerrors.NewCryptoError("wire.Uint64", qerrors.ErrParse)
	}
	v := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

// Bytes reads a uint32 length prefix and returns a copy of the following
// field. A zero length yields an empty, non-nil slice.
func (r *Reader) Bytes() ([]byte, error) {
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if uint64(r.off)+uint64(n) > uint64(len(r.data)) {
		return nil, qerrors.NewCryptoError("wire.Bytes", qerrors.ErrParse)
	}
	out := make([]byte, n)
	copy(out, r.data[r.off:r.off+int(n)])
	r.off += int(n)
	return out, nil
}

// String reads a uint32 length prefix and returns the following field as a
// string.
func (r *Reader) String() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}
