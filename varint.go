package zwire

import (
	"fmt"

	"github.com/rawbytedev/zwire/internal/common"
)

// Variable-length integers: LEB128, 7 value bits per group, high bit as
// continuation, low group first, at most 8 groups. Signed values are
// zig-zag mapped first so small magnitudes stay short either side of
// zero. The 8-group cap puts the unsigned domain at [0, 2^56) and the
// signed domain at [-2^55, 2^55); values outside it fail encoding with
// ErrOutOfRange. Full 64-bit values belong to Uint64 and Int64.
var (
	VarUint ZType = varUintType{}
	VarInt  ZType = varIntType{}
)

// readVarUint wraps common.ReadVarUint with the engine's error kinds.
func readVarUint(b []byte, off int) (uint64, int, error) {
	if off < 0 || off > len(b) {
		return 0, off, ErrTruncated
	}
	u, n := common.ReadVarUint(b[off:])
	switch {
	case n == 0:
		return 0, off, ErrTruncated
	case n < 0:
		return 0, off, ErrMalformedVarint
	}
	return u, off + n, nil
}

type varUintType struct{}

func (varUintType) FixedSize() (int, bool) { return 0, false }

func (varUintType) Encode(v any, s *Session) error {
	u, neg, ok := coerceUint(v)
	if !ok {
		return fmt.Errorf("varuint: got %T: %w", v, ErrTypeMismatch)
	}
	if neg || u > common.MaxVarUint {
		return fmt.Errorf("varuint: %v: %w", v, ErrOutOfRange)
	}
	s.WriteVarUint(u)
	return nil
}

func (varUintType) Decode(b []byte, off int, _ Mode) (any, int, error) {
	u, next, err := readVarUint(b, off)
	if err != nil {
		return nil, off, err
	}
	return u, next, nil
}

type varIntType struct{}

func (varIntType) FixedSize() (int, bool) { return 0, false }

func (varIntType) Encode(v any, s *Session) error {
	i, over, ok := coerceInt(v)
	if !ok {
		return fmt.Errorf("varint: got %T: %w", v, ErrTypeMismatch)
	}
	if over {
		return fmt.Errorf("varint: %v: %w", v, ErrOutOfRange)
	}
	z := common.ZigZag(i)
	if z > common.MaxVarUint {
		return fmt.Errorf("varint: %d: %w", i, ErrOutOfRange)
	}
	s.WriteVarUint(z)
	return nil
}

func (varIntType) Decode(b []byte, off int, _ Mode) (any, int, error) {
	u, next, err := readVarUint(b, off)
	if err != nil {
		return nil, off, err
	}
	return common.UnZigZag(u), next, nil
}
