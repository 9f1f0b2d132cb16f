package zwire

import "testing"

func benchSchema(b *testing.B) ZType {
	b.Helper()
	item, err := NewDict(map[string]ZType{"id": VarUint, "qty": Uint8})
	if err != nil {
		b.Fatal(err)
	}
	items, err := NewList(item, W8)
	if err != nil {
		b.Fatal(err)
	}
	schema, err := NewDict(map[string]ZType{
		"name":   String8,
		"health": Uint16,
		"pos_x":  Float32,
		"pos_y":  Float32,
		"items":  items,
	})
	if err != nil {
		b.Fatal(err)
	}
	return schema
}

func benchValue() map[string]any {
	return map[string]any{
		"name":   "benchplayer",
		"health": 180,
		"pos_x":  float32(12.5),
		"pos_y":  float32(-3.25),
		"items": []any{
			map[string]any{"id": 10, "qty": 2},
			map[string]any{"id": 300, "qty": 1},
			map[string]any{"id": 70000, "qty": 64},
		},
	}
}

func BenchmarkSerDict(b *testing.B) {
	schema := benchSchema(b)
	v := benchValue()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Ser(schema, v)
	}
}

func BenchmarkSerAtReusedSession(b *testing.B) {
	schema := benchSchema(b)
	v := benchValue()
	s := NewSessionSize(256)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = SerAt(schema, v, s, 0)
	}
}

func BenchmarkDesDict(b *testing.B) {
	schema := benchSchema(b)
	data, err := Ser(schema, benchValue())
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Des(schema, data)
	}
}

func BenchmarkVarUint(b *testing.B) {
	s := NewSessionSize(64)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Reset()
		s.WriteVarUint(uint64(i) & (1<<56 - 1))
	}
}
