// Package geom is the fixed-layout domain value catalog: geometric and
// animation values encoded as a known sequence of little-endian numeric
// sub-fields. Each type satisfies the zwire ZType contract and plugs
// into any schema position like a built-in primitive.
package geom

import (
	"fmt"
	"math"

	"github.com/rawbytedev/zwire"
	"github.com/rawbytedev/zwire/internal/common"
)

// Vec2 is a 2D vector, wire layout X then Y as float32.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D vector, wire layout X, Y, Z as float32.
type Vec3 struct {
	X, Y, Z float32
}

// RGB is an opaque color, one byte per channel.
type RGB struct {
	R, G, B uint8
}

// RGBA is a color with alpha, one byte per channel.
type RGBA struct {
	R, G, B, A uint8
}

// Quat is a rotation quaternion, wire layout X, Y, Z, W as float32.
// Encoding normalizes the quaternion, so round-trips are exact only up
// to normalization and float32 rounding.
type Quat struct {
	X, Y, Z, W float32
}

// Key is one animation curve key: time and value as float32 plus an
// interpolation tag byte.
type Key struct {
	Time          float32
	Value         float32
	Interpolation uint8
}

var (
	Vector2    zwire.ZType = vec2Type{}
	Vector3    zwire.ZType = vec3Type{}
	Color      zwire.ZType = rgbType{}
	ColorAlpha zwire.ZType = rgbaType{}
	Rotation   zwire.ZType = quatType{}
	CurveKey   zwire.ZType = keyType{}
)

type vec2Type struct{}

func (vec2Type) FixedSize() (int, bool) { return 8, true }

func (vec2Type) Encode(v any, s *zwire.Session) error {
	val, ok := v.(Vec2)
	if !ok {
		return fmt.Errorf("vector2: got %T: %w", v, zwire.ErrTypeMismatch)
	}
	s.WriteFloat32(val.X)
	s.WriteFloat32(val.Y)
	return nil
}

func (vec2Type) Decode(b []byte, off int, _ zwire.Mode) (any, int, error) {
	if off+8 > len(b) {
		return nil, off, zwire.ErrTruncated
	}
	return Vec2{
		X: common.Float32At(b[off:]),
		Y: common.Float32At(b[off+4:]),
	}, off + 8, nil
}

type vec3Type struct{}

func (vec3Type) FixedSize() (int, bool) { return 12, true }

func (vec3Type) Encode(v any, s *zwire.Session) error {
	val, ok := v.(Vec3)
	if !ok {
		return fmt.Errorf("vector3: got %T: %w", v, zwire.ErrTypeMismatch)
	}
	s.WriteFloat32(val.X)
	s.WriteFloat32(val.Y)
	s.WriteFloat32(val.Z)
	return nil
}

func (vec3Type) Decode(b []byte, off int, _ zwire.Mode) (any, int, error) {
	if off+12 > len(b) {
		return nil, off, zwire.ErrTruncated
	}
	return Vec3{
		X: common.Float32At(b[off:]),
		Y: common.Float32At(b[off+4:]),
		Z: common.Float32At(b[off+8:]),
	}, off + 12, nil
}

type rgbType struct{}

func (rgbType) FixedSize() (int, bool) { return 3, true }

func (rgbType) Encode(v any, s *zwire.Session) error {
	val, ok := v.(RGB)
	if !ok {
		return fmt.Errorf("color: got %T: %w", v, zwire.ErrTypeMismatch)
	}
	s.WriteByte(val.R)
	s.WriteByte(val.G)
	s.WriteByte(val.B)
	return nil
}

func (rgbType) Decode(b []byte, off int, _ zwire.Mode) (any, int, error) {
	if off+3 > len(b) {
		return nil, off, zwire.ErrTruncated
	}
	return RGB{R: b[off], G: b[off+1], B: b[off+2]}, off + 3, nil
}

type rgbaType struct{}

func (rgbaType) FixedSize() (int, bool) { return 4, true }

func (rgbaType) Encode(v any, s *zwire.Session) error {
	val, ok := v.(RGBA)
	if !ok {
		return fmt.Errorf("coloralpha: got %T: %w", v, zwire.ErrTypeMismatch)
	}
	s.WriteByte(val.R)
	s.WriteByte(val.G)
	s.WriteByte(val.B)
	s.WriteByte(val.A)
	return nil
}

func (rgbaType) Decode(b []byte, off int, _ zwire.Mode) (any, int, error) {
	if off+4 > len(b) {
		return nil, off, zwire.ErrTruncated
	}
	return RGBA{R: b[off], G: b[off+1], B: b[off+2], A: b[off+3]}, off + 4, nil
}

type quatType struct{}

func (quatType) FixedSize() (int, bool) { return 16, true }

func (quatType) Encode(v any, s *zwire.Session) error {
	q, ok := v.(Quat)
	if !ok {
		return fmt.Errorf("rotation: got %T: %w", v, zwire.ErrTypeMismatch)
	}
	mag := math.Sqrt(float64(q.X)*float64(q.X) + float64(q.Y)*float64(q.Y) +
		float64(q.Z)*float64(q.Z) + float64(q.W)*float64(q.W))
	if mag == 0 {
		return fmt.Errorf("rotation: zero quaternion: %w", zwire.ErrOutOfRange)
	}
	s.WriteFloat32(float32(float64(q.X) / mag))
	s.WriteFloat32(float32(float64(q.Y) / mag))
	s.WriteFloat32(float32(float64(q.Z) / mag))
	s.WriteFloat32(float32(float64(q.W) / mag))
	return nil
}

func (quatType) Decode(b []byte, off int, _ zwire.Mode) (any, int, error) {
	if off+16 > len(b) {
		return nil, off, zwire.ErrTruncated
	}
	return Quat{
		X: common.Float32At(b[off:]),
		Y: common.Float32At(b[off+4:]),
		Z: common.Float32At(b[off+8:]),
		W: common.Float32At(b[off+12:]),
	}, off + 16, nil
}

type keyType struct{}

func (keyType) FixedSize() (int, bool) { return 9, true }

func (keyType) Encode(v any, s *zwire.Session) error {
	k, ok := v.(Key)
	if !ok {
		return fmt.Errorf("curvekey: got %T: %w", v, zwire.ErrTypeMismatch)
	}
	s.WriteFloat32(k.Time)
	s.WriteFloat32(k.Value)
	s.WriteByte(k.Interpolation)
	return nil
}

func (keyType) Decode(b []byte, off int, _ zwire.Mode) (any, int, error) {
	if off+9 > len(b) {
		return nil, off, zwire.ErrTruncated
	}
	return Key{
		Time:          common.Float32At(b[off:]),
		Value:         common.Float32At(b[off+4:]),
		Interpolation: b[off+8],
	}, off + 9, nil
}
