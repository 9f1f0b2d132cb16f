package zwire

import (
	"errors"
	"fmt"
)

// Ser encodes v against schema zt into a fresh right-sized buffer. The
// session backing the buffer is call-scoped, so concurrent Ser calls
// never share state.
func Ser(zt ZType, v any) ([]byte, error) {
	s := sessionFor(zt)
	if err := zt.Encode(v, s); err != nil {
		return nil, err
	}
	out := make([]byte, s.Len())
	copy(out, s.Bytes())
	return out, nil
}

// SerAt encodes v into the caller-owned session s starting at off and
// returns the offset following the written bytes, enabling repeated
// appends into one buffer across calls. An offset past the current end
// zero-fills the gap; an offset before it truncates the session first.
// On error the session keeps whatever was written before the failure.
func SerAt(zt ZType, v any, s *Session, off int) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d: %w", off, ErrOutOfRange)
	}
	if off > s.Len() {
		s.pad(off)
	} else {
		s.Truncate(off)
	}
	if err := zt.Encode(v, s); err != nil {
		return s.Len(), err
	}
	return s.Len(), nil
}

// Des strictly decodes the whole of buf against schema zt.
func Des(zt ZType, buf []byte) (any, error) {
	v, _, err := DesAt(zt, buf, 0, Strict)
	return v, err
}

// DesAt decodes buf against zt starting at off and returns the value
// and next offset. In Tolerant mode truncation yields the best-effort
// partial value and the offset reached: composites propagate the
// partial decoded so far together with ErrTruncated, which is absorbed
// here; a truncated bare primitive yields nil.
func DesAt(zt ZType, buf []byte, off int, mode Mode) (any, int, error) {
	v, next, err := zt.Decode(buf, off, mode)
	if err != nil && mode == Tolerant && errors.Is(err, ErrTruncated) {
		return v, next, nil
	}
	return v, next, err
}

// Migrate re-encodes buf from the old schema to the new one. The buffer
// is decoded strictly (a payload malformed under its own schema is a
// hard failure, truncation is never tolerated here); transform, when
// non-nil, maps the decoded value to the new schema's shape before
// encoding. Underlying decode and encode errors propagate verbatim.
// Fields the new schema requires but the transformed value lacks fail
// with ErrMissingField unless wrapped in Optional.
func Migrate(oldSchema, newSchema ZType, buf []byte, transform func(any) (any, error)) ([]byte, error) {
	v, _, err := oldSchema.Decode(buf, 0, Strict)
	if err != nil {
		return nil, err
	}
	if transform != nil {
		if v, err = transform(v); err != nil {
			return nil, err
		}
	}
	return Ser(newSchema, v)
}

// sessionFor sizes the initial session from the schema's size class so
// fixed-layout payloads encode without growth.
func sessionFor(zt ZType) *Session {
	if n, fixed := zt.FixedSize(); fixed {
		return NewSessionSize(n)
	}
	return NewSession()
}
