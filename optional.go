package zwire

import "fmt"

// Optional decorates any ZType with a one-byte presence flag ahead of
// the inner encoding. A nil value writes only the flag byte 0x00; a
// present value writes 0x01 followed by the inner encoding. Decoding
// 0x00 returns nil without ever invoking the inner decoder.
func Optional(inner ZType) ZType {
	if inner == nil {
		panic("zwire: Optional needs an inner ZType")
	}
	return optionalType{inner: inner}
}

type optionalType struct{ inner ZType }

// FixedSize is always variable: the encoded size depends on presence.
func (optionalType) FixedSize() (int, bool) { return 0, false }

func (t optionalType) Encode(v any, s *Session) error {
	if v == nil {
		s.WriteByte(0)
		return nil
	}
	s.WriteByte(1)
	return t.inner.Encode(v, s)
}

func (t optionalType) Decode(b []byte, off int, mode Mode) (any, int, error) {
	if err := need(b, off, 1); err != nil {
		return nil, off, err
	}
	switch b[off] {
	case 0:
		return nil, off + 1, nil
	case 1:
		return t.inner.Decode(b, off+1, mode)
	default:
		return nil, off, fmt.Errorf("presence byte 0x%02x: %w", b[off], ErrTypeMismatch)
	}
}
