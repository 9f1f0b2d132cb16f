package zwire

import (
	"encoding/binary"
	"math"

	"github.com/rawbytedev/zwire/internal/common"
)

// minSessionFree is the smallest capacity a Session grows to.
const minSessionFree = 64

// Session is a growable byte region plus a write cursor, the default
// serialization destination. Growth doubles the backing array; a write
// that would overflow grows first and retries, never writing partially.
//
// INVARIANT: end <= len(buf) == cap(buf).
type Session struct {
	buf []byte
	end int
}

// NewSession returns an empty session with a small initial capacity.
func NewSession() *Session {
	return &Session{buf: make([]byte, minSessionFree)}
}

// NewSessionSize returns an empty session pre-sized for n bytes.
func NewSessionSize(n int) *Session {
	if n < minSessionFree {
		n = minSessionFree
	}
	return &Session{buf: make([]byte, n)}
}

// Bytes returns the written region. The slice aliases the session's
// backing array and is valid until the next write or Reset.
func (s *Session) Bytes() []byte { return s.buf[:s.end] }

// Len returns the number of bytes written so far.
func (s *Session) Len() int { return s.end }

// Reset moves the cursor back to 0, keeping the allocation.
func (s *Session) Reset() { s.end = 0 }

// Truncate cuts the written region to n bytes.
//
// REQUIRES: 0 <= n <= Len().
func (s *Session) Truncate(n int) { s.end = n }

// reserve ensures at least n free bytes after the cursor.
func (s *Session) reserve(n int) {
	if len(s.buf)-s.end >= n {
		return
	}
	newlen := len(s.buf) * 2
	if newlen-s.end < n {
		newlen = s.end + n + minSessionFree
	}
	grown := make([]byte, newlen)
	copy(grown, s.buf[:s.end])
	s.buf = grown
}

// grow advances the cursor by n and returns the reserved bytes.
func (s *Session) grow(n int) []byte {
	s.reserve(n)
	b := s.buf[s.end : s.end+n]
	s.end += n
	return b
}

// pad extends the written region with zero bytes up to offset n. Used
// when a caller asks to start writing past the current end.
func (s *Session) pad(n int) {
	if n <= s.end {
		return
	}
	b := s.grow(n - s.end)
	for i := range b {
		b[i] = 0
	}
}

// WriteByte appends a single byte.
func (s *Session) WriteByte(c byte) {
	s.grow(1)[0] = c
}

// Write appends p whole.
func (s *Session) Write(p []byte) {
	copy(s.grow(len(p)), p)
}

// WriteUint16 appends v little-endian.
func (s *Session) WriteUint16(v uint16) {
	binary.LittleEndian.PutUint16(s.grow(2), v)
}

// WriteUint32 appends v little-endian.
func (s *Session) WriteUint32(v uint32) {
	binary.LittleEndian.PutUint32(s.grow(4), v)
}

// WriteUint64 appends v little-endian.
func (s *Session) WriteUint64(v uint64) {
	binary.LittleEndian.PutUint64(s.grow(8), v)
}

// WriteFloat32 appends the IEEE 754 bits of v little-endian.
func (s *Session) WriteFloat32(v float32) {
	s.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 appends the IEEE 754 bits of v little-endian.
func (s *Session) WriteFloat64(v float64) {
	s.WriteUint64(math.Float64bits(v))
}

// WriteVarUint appends x as an LEB128 varint.
//
// REQUIRES: x <= common.MaxVarUint.
func (s *Session) WriteVarUint(x uint64) {
	var scratch [common.MaxVarintGroups]byte
	enc := common.AppendVarUint(scratch[:0], x)
	copy(s.grow(len(enc)), enc)
}
