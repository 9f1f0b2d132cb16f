package zwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictRoundTrip(t *testing.T) {
	schema, err := NewDict(map[string]ZType{
		"name":   String8,
		"health": Uint16,
		"alive":  Bool,
		"score":  VarInt,
	})
	require.NoError(t, err)

	data, err := Ser(schema, map[string]any{
		"name":   "kara",
		"health": 180,
		"alive":  true,
		"score":  -12,
	})
	require.NoError(t, err)

	back, err := Des(schema, data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":   "kara",
		"health": uint16(180),
		"alive":  true,
		"score":  int64(-12),
	}, back)
}

func TestDictWireOrderIsSorted(t *testing.T) {
	schema, err := NewDict(map[string]ZType{"b": Uint8, "a": Uint8, "c": Uint8})
	require.NoError(t, err)

	data, err := Ser(schema, map[string]any{"c": 3, "a": 1, "b": 2})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)
}

func TestDictDeterminism(t *testing.T) {
	schema, err := NewDict(map[string]ZType{
		"alpha": Uint8, "beta": String8, "gamma": VarUint,
	})
	require.NoError(t, err)

	first := map[string]any{}
	first["gamma"] = 7
	first["alpha"] = 1
	first["beta"] = "x"

	second := map[string]any{}
	second["beta"] = "x"
	second["gamma"] = 7
	second["alpha"] = 1

	a, err := Ser(schema, first)
	require.NoError(t, err)
	b, err := Ser(schema, second)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestDictMissingField(t *testing.T) {
	schema, err := NewDict(map[string]ZType{"a": Uint8, "b": Uint8})
	require.NoError(t, err)

	_, err = Ser(schema, map[string]any{"a": 1})
	require.ErrorIs(t, err, ErrMissingField)
}

func TestDictOptionalField(t *testing.T) {
	schema, err := NewDict(map[string]ZType{
		"id":   Uint8,
		"nick": Optional(String8),
	})
	require.NoError(t, err)

	// absent optional: presence byte only
	data, err := Ser(schema, map[string]any{"id": 9})
	require.NoError(t, err)
	require.Equal(t, []byte{9, 0}, data)

	back, err := Des(schema, data)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"id": uint8(9)}, back)

	// present optional
	data, err = Ser(schema, map[string]any{"id": 9, "nick": "ace"})
	require.NoError(t, err)
	require.Equal(t, []byte{9, 1, 3, 'a', 'c', 'e'}, data)

	back, err = Des(schema, data)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"id": uint8(9), "nick": "ace"}, back)
}

func TestDictBadDefinitions(t *testing.T) {
	_, err := NewDict(nil)
	require.ErrorIs(t, err, ErrBadSchema)

	_, err = NewDict(map[string]ZType{})
	require.ErrorIs(t, err, ErrBadSchema)

	_, err = NewDict(map[string]ZType{"a": nil})
	require.ErrorIs(t, err, ErrBadSchema)
}

func TestListRoundTrip(t *testing.T) {
	schema, err := NewList(VarUint, W16)
	require.NoError(t, err)

	data, err := Ser(schema, []any{1, 2, 300})
	require.NoError(t, err)
	require.Equal(t, []byte{3, 0, 0x01, 0x02, 0xAC, 0x02}, data)

	back, err := Des(schema, data)
	require.NoError(t, err)
	require.Equal(t, []any{uint64(1), uint64(2), uint64(300)}, back)
}

func TestListTypedSlice(t *testing.T) {
	schema, err := NewList(Uint8, W8)
	require.NoError(t, err)

	data, err := Ser(schema, []uint8{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []byte{3, 1, 2, 3}, data)
}

func TestListWidthBoundary(t *testing.T) {
	schema, err := NewList(Uint8, W8)
	require.NoError(t, err)

	elems := make([]any, 255)
	for i := range elems {
		elems[i] = uint8(i)
	}
	data, err := Ser(schema, elems)
	require.NoError(t, err)
	require.Len(t, data, 256)

	back, err := Des(schema, data)
	require.NoError(t, err)
	require.Len(t, back, 255)

	elems = append(elems, uint8(0))
	_, err = Ser(schema, elems)
	require.ErrorIs(t, err, ErrTooManyElements)
}

func TestListDefaultWidth(t *testing.T) {
	schema, err := NewList(Uint8)
	require.NoError(t, err)

	data, err := Ser(schema, []any{7})
	require.NoError(t, err)
	// 32-bit count prefix by default
	require.Equal(t, []byte{1, 0, 0, 0, 7}, data)
}

func TestMapDeterministicOrder(t *testing.T) {
	schema, err := NewMap(String8, Uint8, W8)
	require.NoError(t, err)

	in := map[string]any{"b": 2, "a": 1, "c": 3}
	var first []byte
	// map iteration order varies between runs; wire bytes must not
	for i := 0; i < 8; i++ {
		data, err := Ser(schema, in)
		require.NoError(t, err)
		if first == nil {
			first = data
			// sorted by encoded key bytes
			require.Equal(t, []byte{3, 1, 'a', 1, 1, 'b', 2, 1, 'c', 3}, data)
		} else {
			require.Equal(t, first, data)
		}
	}

	back, err := Des(schema, first)
	require.NoError(t, err)
	require.Equal(t, map[any]any{"a": uint8(1), "b": uint8(2), "c": uint8(3)}, back)
}

func TestMapKeyMustBeComparable(t *testing.T) {
	_, err := NewMap(Blob8, Uint8)
	require.ErrorIs(t, err, ErrBadSchema)

	list, err := NewList(Uint8)
	require.NoError(t, err)
	_, err = NewMap(list, Uint8)
	require.ErrorIs(t, err, ErrBadSchema)

	_, err = NewMap(Optional(Uint8), Uint8)
	require.ErrorIs(t, err, ErrBadSchema)
}

func TestNestedSchemas(t *testing.T) {
	item, err := NewDict(map[string]ZType{"id": VarUint, "qty": Uint8})
	require.NoError(t, err)
	inventory, err := NewList(item, W8)
	require.NoError(t, err)
	player, err := NewDict(map[string]ZType{
		"name":  String8,
		"items": inventory,
	})
	require.NoError(t, err)

	in := map[string]any{
		"name": "kara",
		"items": []any{
			map[string]any{"id": 10, "qty": 2},
			map[string]any{"id": 300, "qty": 1},
		},
	}
	data, err := Ser(player, in)
	require.NoError(t, err)

	back, err := Des(player, data)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"name": "kara",
		"items": []any{
			map[string]any{"id": uint64(10), "qty": uint8(2)},
			map[string]any{"id": uint64(300), "qty": uint8(1)},
		},
	}, back)
}

func TestTolerantDictTruncation(t *testing.T) {
	schema, err := NewDict(map[string]ZType{"a": Uint8, "b": Uint32})
	require.NoError(t, err)

	full, err := Ser(schema, map[string]any{"a": 5, "b": 99})
	require.NoError(t, err)

	// only the first field made it
	partial := full[:1]

	_, _, err = DesAt(schema, partial, 0, Strict)
	require.ErrorIs(t, err, ErrTruncated)

	v, next, err := DesAt(schema, partial, 0, Tolerant)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": uint8(5)}, v)
	require.Equal(t, len(partial), next)
}

func TestTolerantListTruncation(t *testing.T) {
	schema, err := NewList(Uint16, W8)
	require.NoError(t, err)

	full, err := Ser(schema, []any{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, full, 7)

	// count says 3 but only two elements and one stray byte arrived
	partial := full[:6]

	_, _, err = DesAt(schema, partial, 0, Strict)
	require.ErrorIs(t, err, ErrTruncated)

	v, next, err := DesAt(schema, partial, 0, Tolerant)
	require.NoError(t, err)
	require.Equal(t, []any{uint16(1), uint16(2)}, v)
	// stops before the element that would overrun
	require.Equal(t, 5, next)
}

func TestTolerantMapTruncation(t *testing.T) {
	schema, err := NewMap(Uint8, Uint8, W8)
	require.NoError(t, err)

	full, err := Ser(schema, map[uint8]uint8{1: 10, 2: 20})
	require.NoError(t, err)
	require.Len(t, full, 5)

	// second pair's value is missing
	partial := full[:4]
	v, next, err := DesAt(schema, partial, 0, Tolerant)
	require.NoError(t, err)
	require.Equal(t, map[any]any{uint8(1): uint8(10)}, v)
	require.Equal(t, 3, next)
}

func TestTolerantNestedDictTruncation(t *testing.T) {
	inner, err := NewDict(map[string]ZType{"a": Uint8, "b": Uint32})
	require.NoError(t, err)
	outer, err := NewDict(map[string]ZType{"x": inner, "y": Uint8})
	require.NoError(t, err)

	full, err := Ser(outer, map[string]any{
		"x": map[string]any{"a": 5, "b": 99},
		"y": 1,
	})
	require.NoError(t, err)
	require.Len(t, full, 6)

	// cut inside x.b: its leftover bytes must not be read as y
	partial := full[:3]

	_, _, err = DesAt(outer, partial, 0, Strict)
	require.ErrorIs(t, err, ErrTruncated)

	v, next, err := DesAt(outer, partial, 0, Tolerant)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"x": map[string]any{"a": uint8(5)}}, v)
	require.Equal(t, 1, next)
}

func TestTolerantListOfDictsTruncation(t *testing.T) {
	elem, err := NewDict(map[string]ZType{"a": Uint8, "b": Uint32})
	require.NoError(t, err)
	schema, err := NewList(elem, W8)
	require.NoError(t, err)

	full, err := Ser(schema, []any{
		map[string]any{"a": 1, "b": 2},
		map[string]any{"a": 3, "b": 4},
	})
	require.NoError(t, err)
	require.Len(t, full, 11)

	// second element loses most of its b field
	partial := full[:8]
	v, next, err := DesAt(schema, partial, 0, Tolerant)
	require.NoError(t, err)
	require.Equal(t, []any{
		map[string]any{"a": uint8(1), "b": uint32(2)},
		map[string]any{"a": uint8(3)},
	}, v)
	require.Equal(t, 7, next)
}

func TestDictInputViaReflection(t *testing.T) {
	schema, err := NewDict(map[string]ZType{"x": Uint8})
	require.NoError(t, err)

	// a typed map still works through the reflection path
	data, err := Ser(schema, map[string]uint8{"x": 7})
	require.NoError(t, err)
	require.Equal(t, []byte{7}, data)
}
