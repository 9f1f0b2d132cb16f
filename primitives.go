package zwire

import (
	"fmt"
	"math"

	"github.com/rawbytedev/zwire/internal/common"
)

// Fixed-width primitive catalog. Every numeric encodes little-endian;
// decode returns the narrow native Go type (Uint8 yields uint8, and so
// on). Encode accepts any Go integer or float kind and range-checks
// against the declared width.
var (
	Bool    ZType = boolType{}
	Uint8   ZType = uintType{bits: 8}
	Uint16  ZType = uintType{bits: 16}
	Uint32  ZType = uintType{bits: 32}
	Uint64  ZType = uintType{bits: 64}
	Int8    ZType = intType{bits: 8}
	Int16   ZType = intType{bits: 16}
	Int32   ZType = intType{bits: 32}
	Int64   ZType = intType{bits: 64}
	Float32 ZType = floatType{bits: 32}
	Float64 ZType = floatType{bits: 64}

	// Byte is a raw single byte, identical on the wire to Uint8.
	Byte ZType = uintType{bits: 8}
)

// coerceUint reads v as an unsigned integer. ok is false when v is not
// an integer at all; neg is true when v is a negative signed integer
// (always out of range for unsigned targets).
func coerceUint(v any) (u uint64, neg, ok bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), false, true
	case uint8:
		return uint64(n), false, true
	case uint16:
		return uint64(n), false, true
	case uint32:
		return uint64(n), false, true
	case uint64:
		return n, false, true
	case int:
		return uint64(n), n < 0, true
	case int8:
		return uint64(n), n < 0, true
	case int16:
		return uint64(n), n < 0, true
	case int32:
		return uint64(n), n < 0, true
	case int64:
		return uint64(n), n < 0, true
	default:
		return 0, false, false
	}
}

// coerceInt reads v as a signed integer. overflow is true when v is an
// unsigned value above MaxInt64.
func coerceInt(v any) (i int64, overflow, ok bool) {
	switch n := v.(type) {
	case int:
		return int64(n), false, true
	case int8:
		return int64(n), false, true
	case int16:
		return int64(n), false, true
	case int32:
		return int64(n), false, true
	case int64:
		return n, false, true
	case uint:
		return int64(n), uint64(n) > math.MaxInt64, true
	case uint8:
		return int64(n), false, true
	case uint16:
		return int64(n), false, true
	case uint32:
		return int64(n), false, true
	case uint64:
		return int64(n), n > math.MaxInt64, true
	default:
		return 0, false, false
	}
}

// coerceFloat reads v as a float, accepting integer kinds as well.
func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, over, ok := coerceInt(v); ok && !over {
		return float64(i), true
	}
	if u, _, ok := coerceUint(v); ok {
		return float64(u), true
	}
	return 0, false
}

// need checks that n bytes are readable at off.
func need(b []byte, off, n int) error {
	if off < 0 || n < 0 || off+n > len(b) {
		return ErrTruncated
	}
	return nil
}

type boolType struct{}

func (boolType) FixedSize() (int, bool) { return 1, true }

func (boolType) Encode(v any, s *Session) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("bool: got %T: %w", v, ErrTypeMismatch)
	}
	if b {
		s.WriteByte(1)
	} else {
		s.WriteByte(0)
	}
	return nil
}

func (boolType) Decode(b []byte, off int, _ Mode) (any, int, error) {
	if err := need(b, off, 1); err != nil {
		return nil, off, err
	}
	return b[off] != 0, off + 1, nil
}

type uintType struct{ bits int }

func (t uintType) FixedSize() (int, bool) { return t.bits / 8, true }

func (t uintType) Encode(v any, s *Session) error {
	u, neg, ok := coerceUint(v)
	if !ok {
		return fmt.Errorf("uint%d: got %T: %w", t.bits, v, ErrTypeMismatch)
	}
	if neg || (t.bits < 64 && u > 1<<uint(t.bits)-1) {
		return fmt.Errorf("uint%d: %v: %w", t.bits, v, ErrOutOfRange)
	}
	switch t.bits {
	case 8:
		s.WriteByte(byte(u))
	case 16:
		s.WriteUint16(uint16(u))
	case 32:
		s.WriteUint32(uint32(u))
	default:
		s.WriteUint64(u)
	}
	return nil
}

func (t uintType) Decode(b []byte, off int, _ Mode) (any, int, error) {
	n := t.bits / 8
	if err := need(b, off, n); err != nil {
		return nil, off, err
	}
	switch t.bits {
	case 8:
		return b[off], off + 1, nil
	case 16:
		return common.Uint16At(b[off:]), off + 2, nil
	case 32:
		return common.Uint32At(b[off:]), off + 4, nil
	default:
		return common.Uint64At(b[off:]), off + 8, nil
	}
}

type intType struct{ bits int }

func (t intType) FixedSize() (int, bool) { return t.bits / 8, true }

func (t intType) Encode(v any, s *Session) error {
	i, over, ok := coerceInt(v)
	if !ok {
		return fmt.Errorf("int%d: got %T: %w", t.bits, v, ErrTypeMismatch)
	}
	if over {
		return fmt.Errorf("int%d: %v: %w", t.bits, v, ErrOutOfRange)
	}
	if t.bits < 64 {
		lim := int64(1) << uint(t.bits-1)
		if i < -lim || i >= lim {
			return fmt.Errorf("int%d: %d: %w", t.bits, i, ErrOutOfRange)
		}
	}
	switch t.bits {
	case 8:
		s.WriteByte(byte(i))
	case 16:
		s.WriteUint16(uint16(i))
	case 32:
		s.WriteUint32(uint32(i))
	default:
		s.WriteUint64(uint64(i))
	}
	return nil
}

func (t intType) Decode(b []byte, off int, _ Mode) (any, int, error) {
	n := t.bits / 8
	if err := need(b, off, n); err != nil {
		return nil, off, err
	}
	switch t.bits {
	case 8:
		return int8(b[off]), off + 1, nil
	case 16:
		return int16(common.Uint16At(b[off:])), off + 2, nil
	case 32:
		return int32(common.Uint32At(b[off:])), off + 4, nil
	default:
		return int64(common.Uint64At(b[off:])), off + 8, nil
	}
}

type floatType struct{ bits int }

func (t floatType) FixedSize() (int, bool) { return t.bits / 8, true }

func (t floatType) Encode(v any, s *Session) error {
	f, ok := coerceFloat(v)
	if !ok {
		return fmt.Errorf("float%d: got %T: %w", t.bits, v, ErrTypeMismatch)
	}
	if t.bits == 32 {
		s.WriteFloat32(float32(f))
	} else {
		s.WriteFloat64(f)
	}
	return nil
}

func (t floatType) Decode(b []byte, off int, _ Mode) (any, int, error) {
	n := t.bits / 8
	if err := need(b, off, n); err != nil {
		return nil, off, err
	}
	if t.bits == 32 {
		return common.Float32At(b[off:]), off + 4, nil
	}
	return common.Float64At(b[off:]), off + 8, nil
}
