package zwire

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// Schema constructors. A compiled schema is itself a ZType and nests
// freely inside another schema's field, element, key or value position.
// Constructors consume already-built ZTypes, so self-referential
// schemas cannot be expressed.

// NewDict compiles a dictionary schema from named fields. Field names
// are sorted bytewise once at compile time; that sorted order is the
// wire order, so insertion order never leaks into the encoding.
func NewDict(fields map[string]ZType) (ZType, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("dictionary with no fields: %w", ErrBadSchema)
	}
	d := dictType{fields: make([]dictField, 0, len(fields))}
	for name, zt := range fields {
		if zt == nil {
			return nil, fmt.Errorf("field %q has nil type: %w", name, ErrBadSchema)
		}
		d.fields = append(d.fields, dictField{name: name, ztype: zt})
	}
	sort.Slice(d.fields, func(i, j int) bool { return d.fields[i].name < d.fields[j].name })
	return d, nil
}

// NewList compiles a list schema over one element type. The optional
// width class (default W32) sizes the count prefix and bounds the
// element count at 2^w - 1.
func NewList(elem ZType, width ...Width) (ZType, error) {
	if elem == nil {
		return nil, fmt.Errorf("list with nil element type: %w", ErrBadSchema)
	}
	w, err := pickWidth(width)
	if err != nil {
		return nil, err
	}
	return listType{elem: elem, width: w}, nil
}

// NewMap compiles a map schema over a key and value type. The key type
// must decode to a comparable Go value (dictionaries, lists, maps,
// blobs, bit-packed groups and optionals are rejected). Entries are
// encoded sorted by their encoded key bytes, so wire output is
// deterministic regardless of map iteration order.
func NewMap(key, val ZType, width ...Width) (ZType, error) {
	if key == nil || val == nil {
		return nil, fmt.Errorf("map with nil key or value type: %w", ErrBadSchema)
	}
	if !comparableKey(key) {
		return nil, fmt.Errorf("map key type %T does not decode to a comparable value: %w", key, ErrBadSchema)
	}
	w, err := pickWidth(width)
	if err != nil {
		return nil, err
	}
	return mapType{key: key, val: val, width: w}, nil
}

func pickWidth(width []Width) (Width, error) {
	switch len(width) {
	case 0:
		return DefaultWidth, nil
	case 1:
		if !width[0].valid() {
			return 0, fmt.Errorf("width class %d: %w", width[0], ErrBadSchema)
		}
		return width[0], nil
	default:
		return 0, fmt.Errorf("more than one width class: %w", ErrBadSchema)
	}
}

// comparableKey reports whether zt decodes to a value usable as a Go
// map key.
func comparableKey(zt ZType) bool {
	switch zt.(type) {
	case boolType, uintType, intType, floatType, varUintType, varIntType, stringType:
		return true
	default:
		return false
	}
}

// writeCount writes a list/map element count using the width class.
func writeCount(s *Session, w Width, n int) error {
	if uint64(n) > w.max() {
		return fmt.Errorf("count %d exceeds %d-bit prefix: %w", n, w, ErrTooManyElements)
	}
	switch w {
	case W8:
		s.WriteByte(byte(n))
	case W16:
		s.WriteUint16(uint16(n))
	default:
		s.WriteUint32(uint32(n))
	}
	return nil
}

type dictField struct {
	name  string
	ztype ZType
}

type dictType struct {
	fields []dictField
}

func (dictType) FixedSize() (int, bool) { return 0, false }

func (t dictType) Encode(v any, s *Session) error {
	get, err := fieldGetter(v)
	if err != nil {
		return err
	}
	for _, f := range t.fields {
		fv, present := get(f.name)
		if !present || fv == nil {
			if _, opt := f.ztype.(optionalType); opt {
				s.WriteByte(0)
				continue
			}
			return fmt.Errorf("field %q: %w", f.name, ErrMissingField)
		}
		if err := f.ztype.Encode(fv, s); err != nil {
			return fmt.Errorf("field %q: %w", f.name, err)
		}
	}
	return nil
}

// Decode in Tolerant mode stops at the first field that runs out of
// bytes and reports ErrTruncated alongside the partial map, so an
// enclosing composite stops too instead of reading later fields from
// the truncated field's leftover bytes. A partially decoded composite
// field is kept; a field that yielded nothing is omitted. Only DesAt
// turns the propagated ErrTruncated into a nil-error partial result.
func (t dictType) Decode(b []byte, off int, mode Mode) (any, int, error) {
	out := make(map[string]any, len(t.fields))
	for _, f := range t.fields {
		v, next, err := f.ztype.Decode(b, off, mode)
		if err != nil {
			if mode == Tolerant && errors.Is(err, ErrTruncated) {
				if v != nil {
					out[f.name] = v
					return out, next, ErrTruncated
				}
				return out, off, ErrTruncated
			}
			return nil, off, fmt.Errorf("field %q: %w", f.name, err)
		}
		if v != nil {
			out[f.name] = v
		}
		off = next
	}
	return out, off, nil
}

// fieldGetter adapts any value holding named fields to a lookup
// function. map[string]any is the fast path; any other map keyed by
// strings goes through reflection.
func fieldGetter(v any) (func(string) (any, bool), error) {
	if m, ok := v.(map[string]any); ok {
		return func(name string) (any, bool) {
			fv, present := m[name]
			return fv, present
		}, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("dictionary: got %T: %w", v, ErrTypeMismatch)
	}
	return func(name string) (any, bool) {
		fv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !fv.IsValid() {
			return nil, false
		}
		return fv.Interface(), true
	}, nil
}

type listType struct {
	elem  ZType
	width Width
}

func (listType) FixedSize() (int, bool) { return 0, false }

func (t listType) Encode(v any, s *Session) error {
	elems, err := asSlice(v)
	if err != nil {
		return err
	}
	if err := writeCount(s, t.width, len(elems)); err != nil {
		return err
	}
	for i, e := range elems {
		if err := t.elem.Encode(e, s); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func (t listType) Decode(b []byte, off int, mode Mode) (any, int, error) {
	cnt, next, err := readPrefix(b, off, t.width, mode)
	if err != nil {
		if mode == Tolerant && errors.Is(err, ErrTruncated) {
			return []any{}, off, ErrTruncated
		}
		return nil, off, err
	}
	out := make([]any, 0, min(int(cnt), 1024))
	off = next
	for i := 0; i < int(cnt); i++ {
		v, next, err := t.elem.Decode(b, off, mode)
		if err != nil {
			if mode == Tolerant && errors.Is(err, ErrTruncated) {
				if v != nil {
					out = append(out, v)
					return out, next, ErrTruncated
				}
				return out, off, ErrTruncated
			}
			return nil, off, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
		off = next
	}
	return out, off, nil
}

// asSlice flattens any slice or array value into []any. []any passes
// through untouched.
func asSlice(v any) ([]any, error) {
	if elems, ok := v.([]any); ok {
		return elems, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("list: got %T: %w", v, ErrTypeMismatch)
	}
	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, nil
}

type mapType struct {
	key   ZType
	val   ZType
	width Width
}

func (mapType) FixedSize() (int, bool) { return 0, false }

func (t mapType) Encode(v any, s *Session) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return fmt.Errorf("map: got %T: %w", v, ErrTypeMismatch)
	}
	// Pre-encode keys so entries can be ordered by key bytes; map
	// iteration order must never reach the wire.
	type entry struct {
		kb  []byte
		val any
	}
	entries := make([]entry, 0, rv.Len())
	scratch := NewSession()
	for it := rv.MapRange(); it.Next(); {
		scratch.Reset()
		if err := t.key.Encode(it.Key().Interface(), scratch); err != nil {
			return fmt.Errorf("map key: %w", err)
		}
		kb := make([]byte, scratch.Len())
		copy(kb, scratch.Bytes())
		entries = append(entries, entry{kb: kb, val: it.Value().Interface()})
	}
	sort.Slice(entries, func(i, j int) bool { return bytes.Compare(entries[i].kb, entries[j].kb) < 0 })
	if err := writeCount(s, t.width, len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		s.Write(e.kb)
		if err := t.val.Encode(e.val, s); err != nil {
			return fmt.Errorf("map value: %w", err)
		}
	}
	return nil
}

func (t mapType) Decode(b []byte, off int, mode Mode) (any, int, error) {
	cnt, next, err := readPrefix(b, off, t.width, mode)
	if err != nil {
		if mode == Tolerant && errors.Is(err, ErrTruncated) {
			return map[any]any{}, off, ErrTruncated
		}
		return nil, off, err
	}
	out := make(map[any]any, min(int(cnt), 1024))
	off = next
	for i := 0; i < int(cnt); i++ {
		k, afterKey, err := t.key.Decode(b, off, mode)
		if err != nil {
			if mode == Tolerant && errors.Is(err, ErrTruncated) {
				return out, off, ErrTruncated
			}
			return nil, off, fmt.Errorf("map key %d: %w", i, err)
		}
		v, afterVal, err := t.val.Decode(b, afterKey, mode)
		if err != nil {
			if mode == Tolerant && errors.Is(err, ErrTruncated) {
				if v != nil {
					out[k] = v
					return out, afterVal, ErrTruncated
				}
				return out, off, ErrTruncated
			}
			return nil, off, fmt.Errorf("map value %d: %w", i, err)
		}
		out[k] = v
		off = afterVal
	}
	return out, off, nil
}
