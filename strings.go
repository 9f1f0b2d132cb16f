package zwire

import "fmt"

// Length-prefixed string and blob types. The prefix is a plain
// fixed-width unsigned integer sized by the width class, followed by
// the raw bytes. Oversized payloads fail with ErrStringTooLong unless
// the process-wide truncation policy is on, in which case they are
// clipped to the prefix maximum.
var (
	String8  ZType = stringType{width: W8}
	String16 ZType = stringType{width: W16}
	String32 ZType = stringType{width: W32}

	Blob8  ZType = blobType{width: W8}
	Blob16 ZType = blobType{width: W16}
	Blob32 ZType = blobType{width: W32}
)

// writePrefix writes an element count or byte length using the width
// class, applying the string-truncation escape hatch when allowed.
// Returns the possibly clipped count.
func writePrefix(s *Session, w Width, n uint64, clip bool) (uint64, error) {
	if n > w.max() {
		if !clip {
			return 0, fmt.Errorf("length %d exceeds %d-bit prefix: %w", n, w, ErrStringTooLong)
		}
		n = w.max()
	}
	switch w {
	case W8:
		s.WriteByte(byte(n))
	case W16:
		s.WriteUint16(uint16(n))
	default:
		s.WriteUint32(uint32(n))
	}
	return n, nil
}

// readPrefix reads a count/length prefix at off.
func readPrefix(b []byte, off int, w Width, mode Mode) (uint64, int, error) {
	if err := need(b, off, w.bytes()); err != nil {
		return 0, off, err
	}
	v, next, err := uintType{bits: int(w)}.Decode(b, off, mode)
	if err != nil {
		return 0, off, err
	}
	switch n := v.(type) {
	case uint8:
		return uint64(n), next, nil
	case uint16:
		return uint64(n), next, nil
	default:
		return uint64(n.(uint32)), next, nil
	}
}

type stringType struct{ width Width }

func (stringType) FixedSize() (int, bool) { return 0, false }

func (t stringType) Encode(v any, s *Session) error {
	var raw []byte
	switch x := v.(type) {
	case string:
		raw = []byte(x)
	case []byte:
		raw = x
	default:
		return fmt.Errorf("string%d: got %T: %w", t.width, v, ErrTypeMismatch)
	}
	n, err := writePrefix(s, t.width, uint64(len(raw)), StringTruncation())
	if err != nil {
		return err
	}
	s.Write(raw[:n])
	return nil
}

func (t stringType) Decode(b []byte, off int, mode Mode) (any, int, error) {
	n, next, err := readPrefix(b, off, t.width, mode)
	if err != nil {
		return nil, off, err
	}
	if err := need(b, next, int(n)); err != nil {
		return nil, off, err
	}
	return string(b[next : next+int(n)]), next + int(n), nil
}

type blobType struct{ width Width }

func (blobType) FixedSize() (int, bool) { return 0, false }

func (t blobType) Encode(v any, s *Session) error {
	var raw []byte
	switch x := v.(type) {
	case []byte:
		raw = x
	case string:
		raw = []byte(x)
	default:
		return fmt.Errorf("blob%d: got %T: %w", t.width, v, ErrTypeMismatch)
	}
	n, err := writePrefix(s, t.width, uint64(len(raw)), StringTruncation())
	if err != nil {
		return err
	}
	s.Write(raw[:n])
	return nil
}

// Decode returns a copy of the payload bytes, never a view into b.
func (t blobType) Decode(b []byte, off int, mode Mode) (any, int, error) {
	n, next, err := readPrefix(b, off, t.width, mode)
	if err != nil {
		return nil, off, err
	}
	if err := need(b, next, int(n)); err != nil {
		return nil, off, err
	}
	out := make([]byte, n)
	copy(out, b[next:next+int(n)])
	return out, next + int(n), nil
}
