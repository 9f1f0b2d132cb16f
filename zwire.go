// Package zwire is a schema-driven binary serialization engine. A
// compiled Schema describes the shape of a value (dictionaries of named
// fields, lists, maps, nested to any depth); Ser packs a matching value
// into a compact little-endian byte sequence and Des reconstructs an
// equivalent value from those bytes. Migrate re-encodes a payload from
// one schema to another through an optional transform.
//
// The wire format carries no magic number or schema fingerprint:
// decoding a buffer with the wrong schema is undefined. Length and
// count prefixes are plain fixed-width unsigned integers sized by the
// schema's width class; integers may also be encoded as LEB128 varints
// with zig-zag mapping for signed values.
package zwire

import "sync/atomic"

// ZType is the contract every encodable type satisfies. Implementations
// are immutable, stateless and freely shareable; composite ZTypes hold
// their constituent ZTypes.
type ZType interface {
	// FixedSize returns (n, true) when the encoded size is statically
	// known, (0, false) when it depends on the value.
	FixedSize() (int, bool)

	// Encode writes the value's bytes into s. The value must already
	// match the ZType's native shape; no coercion across kinds is
	// attempted.
	Encode(v any, s *Session) error

	// Decode reads the value starting at off and returns it along with
	// the offset of the byte following it. It never reads past len(b).
	// In Tolerant mode a composite that runs out of bytes returns the
	// partial value accumulated so far instead of an error.
	Decode(b []byte, off int, mode Mode) (any, int, error)
}

// Mode selects how decoding reacts to a buffer that ends early.
type Mode int

const (
	// Strict surfaces any out-of-bounds read as ErrTruncated.
	Strict Mode = iota
	// Tolerant turns truncation into a best-effort partial result:
	// dictionary fields not yet read are omitted, list and map decoding
	// stops before the element that would overrun.
	Tolerant
)

// Width is the bit width of a list/map count prefix or string/blob
// length prefix, bounding the maximum element count at 2^w - 1.
type Width uint8

const (
	W8  Width = 8
	W16 Width = 16
	W32 Width = 32
)

// DefaultWidth is used when a composite constructor is given no
// explicit width class.
const DefaultWidth = W32

func (w Width) valid() bool {
	return w == W8 || w == W16 || w == W32
}

// bytes returns the prefix size in bytes.
func (w Width) bytes() int { return int(w) / 8 }

// max returns the largest count/length the prefix can represent.
func (w Width) max() uint64 { return 1<<uint(w) - 1 }

// truncateStrings is the one process-wide policy switch: when set,
// strings and blobs longer than their prefix maximum are silently
// clipped during encode instead of failing with ErrStringTooLong.
var truncateStrings atomic.Bool

// SetStringTruncation switches the oversized-string policy for the
// whole process. Default is off (encode fails with ErrStringTooLong).
func SetStringTruncation(on bool) { truncateStrings.Store(on) }

// StringTruncation reports the current oversized-string policy.
func StringTruncation() bool { return truncateStrings.Load() }
