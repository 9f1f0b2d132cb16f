package zwire

import "fmt"

// BitBools returns a ZType packing exactly n booleans into ceil(n/8)
// bytes. Bit i of byte i/8 is boolean i, least significant bit first;
// trailing pad bits in the final byte are zero. Encode accepts a []bool
// of length n and decode returns one. Variable-length boolean sequences
// belong to a List over Bool, not to this primitive.
func BitBools(n int) ZType {
	if n < 1 {
		panic("zwire: BitBools needs at least one boolean")
	}
	return bitBoolsType{count: n}
}

type bitBoolsType struct{ count int }

func (t bitBoolsType) FixedSize() (int, bool) { return (t.count + 7) / 8, true }

func (t bitBoolsType) Encode(v any, s *Session) error {
	bools, ok := v.([]bool)
	if !ok {
		// []any with all-bool elements shows up for values that came
		// through a generic decode or a config file.
		elems, isAny := v.([]any)
		if !isAny {
			return fmt.Errorf("bitbools: got %T: %w", v, ErrTypeMismatch)
		}
		bools = make([]bool, len(elems))
		for i, e := range elems {
			b, isBool := e.(bool)
			if !isBool {
				return fmt.Errorf("bitbools: element %d is %T: %w", i, e, ErrTypeMismatch)
			}
			bools[i] = b
		}
	}
	if len(bools) != t.count {
		return fmt.Errorf("bitbools: got %d values, want %d: %w", len(bools), t.count, ErrOutOfRange)
	}
	var cur byte
	for i, b := range bools {
		if b {
			cur |= 1 << uint(i%8)
		}
		if i%8 == 7 {
			s.WriteByte(cur)
			cur = 0
		}
	}
	if t.count%8 != 0 {
		s.WriteByte(cur)
	}
	return nil
}

func (t bitBoolsType) Decode(b []byte, off int, _ Mode) (any, int, error) {
	n, _ := t.FixedSize()
	if err := need(b, off, n); err != nil {
		return nil, off, err
	}
	out := make([]bool, t.count)
	for i := range out {
		out[i] = b[off+i/8]&(1<<uint(i%8)) != 0
	}
	return out, off + n, nil
}
