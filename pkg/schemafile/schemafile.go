// Package schemafile compiles zwire schemas from YAML definitions, so
// schema shapes can live in config files next to the payloads they
// describe.
//
// A definition node is either a registered type name or a one-key
// mapping naming a composite:
//
//	dict:
//	  name: {string: 16}
//	  health: uint16
//	  pos: vector3
//	  tags: {list: {of: {string: 8}, width: 8}}
//	  inventory: {map: {key: {string: 8}, value: varuint, width: 16}}
//	  nick: {optional: {string: 8}}
//	  flags: {bitbools: 5}
package schemafile

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/zwire"
	"github.com/rawbytedev/zwire/pkg/geom"
)

var (
	regMu    sync.RWMutex
	registry = map[string]zwire.ZType{
		"bool":    zwire.Bool,
		"byte":    zwire.Byte,
		"uint8":   zwire.Uint8,
		"uint16":  zwire.Uint16,
		"uint32":  zwire.Uint32,
		"uint64":  zwire.Uint64,
		"int8":    zwire.Int8,
		"int16":   zwire.Int16,
		"int32":   zwire.Int32,
		"int64":   zwire.Int64,
		"float32": zwire.Float32,
		"float64": zwire.Float64,
		"varuint": zwire.VarUint,
		"varint":  zwire.VarInt,

		"string":   zwire.String32,
		"string8":  zwire.String8,
		"string16": zwire.String16,
		"string32": zwire.String32,
		"blob":     zwire.Blob32,
		"blob8":    zwire.Blob8,
		"blob16":   zwire.Blob16,
		"blob32":   zwire.Blob32,

		"vector2":    geom.Vector2,
		"vector3":    geom.Vector3,
		"color":      geom.Color,
		"coloralpha": geom.ColorAlpha,
		"rotation":   geom.Rotation,
		"curvekey":   geom.CurveKey,
	}
)

// Register adds a named ZType to the definition vocabulary. Domain
// value catalogs register themselves here so schema files can name
// them. Re-registering a name overwrites it.
func Register(name string, zt zwire.ZType) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[name] = zt
}

func lookup(name string) (zwire.ZType, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	zt, ok := registry[name]
	return zt, ok
}

// Load reads and compiles a schema definition file.
func Load(path string) (zwire.ZType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse compiles a YAML schema definition.
func Parse(data []byte) (zwire.ZType, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return compile(root, "$")
}

func compile(node any, path string) (zwire.ZType, error) {
	switch n := node.(type) {
	case string:
		zt, ok := lookup(n)
		if !ok {
			return nil, fmt.Errorf("schemafile: %s: unknown type %q", path, n)
		}
		return zt, nil
	case map[string]any:
		return compileComposite(n, path)
	default:
		return nil, fmt.Errorf("schemafile: %s: expected type name or composite, got %T", path, node)
	}
}

func compileComposite(n map[string]any, path string) (zwire.ZType, error) {
	if len(n) != 1 {
		return nil, fmt.Errorf("schemafile: %s: composite needs exactly one key, got %d", path, len(n))
	}
	var kind string
	var body any
	for k, v := range n {
		kind, body = k, v
	}
	switch kind {
	case "dict":
		return compileDict(body, path+".dict")
	case "list":
		return compileList(body, path+".list")
	case "map":
		return compileMap(body, path+".map")
	case "optional":
		inner, err := compile(body, path+".optional")
		if err != nil {
			return nil, err
		}
		return zwire.Optional(inner), nil
	case "string", "blob":
		return compileSized(kind, body, path)
	case "bitbools":
		cnt, ok := asInt(body)
		if !ok || cnt < 1 {
			return nil, fmt.Errorf("schemafile: %s.bitbools: want a positive count, got %v", path, body)
		}
		return zwire.BitBools(cnt), nil
	default:
		return nil, fmt.Errorf("schemafile: %s: unknown composite %q", path, kind)
	}
}

func compileDict(body any, path string) (zwire.ZType, error) {
	m, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemafile: %s: want field mapping, got %T", path, body)
	}
	fields := make(map[string]zwire.ZType, len(m))
	// deterministic error order
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		zt, err := compile(m[name], path+"."+name)
		if err != nil {
			return nil, err
		}
		fields[name] = zt
	}
	d, err := zwire.NewDict(fields)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", path, err)
	}
	return d, nil
}

func compileList(body any, path string) (zwire.ZType, error) {
	var elemNode any = body
	var widths []zwire.Width
	if m, ok := body.(map[string]any); ok {
		if of, has := m["of"]; has {
			elemNode = of
			w, err := widthOf(m, path)
			if err != nil {
				return nil, err
			}
			widths = w
		}
	}
	elem, err := compile(elemNode, path)
	if err != nil {
		return nil, err
	}
	l, err := zwire.NewList(elem, widths...)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", path, err)
	}
	return l, nil
}

func compileMap(body any, path string) (zwire.ZType, error) {
	m, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemafile: %s: want key/value mapping, got %T", path, body)
	}
	keyNode, hasKey := m["key"]
	valNode, hasVal := m["value"]
	if !hasKey || !hasVal {
		return nil, fmt.Errorf("schemafile: %s: needs both key and value", path)
	}
	key, err := compile(keyNode, path+".key")
	if err != nil {
		return nil, err
	}
	val, err := compile(valNode, path+".value")
	if err != nil {
		return nil, err
	}
	widths, err := widthOf(m, path)
	if err != nil {
		return nil, err
	}
	mt, err := zwire.NewMap(key, val, widths...)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", path, err)
	}
	return mt, nil
}

func compileSized(kind string, body any, path string) (zwire.ZType, error) {
	bits, ok := asInt(body)
	if !ok {
		return nil, fmt.Errorf("schemafile: %s.%s: want 8, 16 or 32, got %v", path, kind, body)
	}
	name := fmt.Sprintf("%s%d", kind, bits)
	zt, found := lookup(name)
	if !found {
		return nil, fmt.Errorf("schemafile: %s.%s: want 8, 16 or 32, got %d", path, kind, bits)
	}
	return zt, nil
}

func widthOf(m map[string]any, path string) ([]zwire.Width, error) {
	raw, has := m["width"]
	if !has {
		return nil, nil
	}
	w, ok := asInt(raw)
	if !ok || (w != 8 && w != 16 && w != 32) {
		return nil, fmt.Errorf("schemafile: %s.width: want 8, 16 or 32, got %v", path, raw)
	}
	return []zwire.Width{zwire.Width(w)}, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
