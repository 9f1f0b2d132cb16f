package common

import (
	"encoding/binary"
	"math"
)

// MaxVarintGroups caps a varint at 8 LEB128 groups. Eight 7-bit groups
// give a 56-bit payload domain; the engine range-checks values against
// MaxVarUint before encoding.
const MaxVarintGroups = 8

// MaxVarUint is the largest value an 8-group varint can carry.
const MaxVarUint = 1<<(7*MaxVarintGroups) - 1

// AppendVarUint appends x as LEB128 groups, low group first.
//
// REQUIRES: x <= MaxVarUint (callers range-check first).
func AppendVarUint(buf []byte, x uint64) []byte {
	for x >= 0x80 {
		buf = append(buf, byte(x)|0x80)
		x >>= 7
	}
	return append(buf, byte(x))
}

// ReadVarUint decodes a varint from b. Returns the value and bytes
// consumed; n == 0 means b ended mid-sequence, n == -1 means the
// continuation bit was still set after MaxVarintGroups groups.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == MaxVarintGroups {
			return 0, -1
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	if len(b) >= MaxVarintGroups {
		return 0, -1
	}
	return 0, 0
}

// ZigZag maps signed to unsigned preserving small magnitude.
func ZigZag(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63)
}

// UnZigZag reverses ZigZag.
func UnZigZag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// VarUintLen reports how many bytes AppendVarUint emits for x.
func VarUintLen(x uint64) int {
	n := 1
	for x >= 0x80 {
		x >>= 7
		n++
	}
	return n
}

// Fixed-width little-endian helpers shared by the primitive catalog and
// the geom value types.

func AppendUint16(buf []byte, v uint16) []byte {
	var scratch [2]byte
	binary.LittleEndian.PutUint16(scratch[:], v)
	return append(buf, scratch[:]...)
}

func AppendUint32(buf []byte, v uint32) []byte {
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], v)
	return append(buf, scratch[:]...)
}

func AppendUint64(buf []byte, v uint64) []byte {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], v)
	return append(buf, scratch[:]...)
}

func AppendFloat32(buf []byte, v float32) []byte {
	return AppendUint32(buf, math.Float32bits(v))
}

func AppendFloat64(buf []byte, v float64) []byte {
	return AppendUint64(buf, math.Float64bits(v))
}

func Uint16At(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func Uint32At(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func Uint64At(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

func Float32At(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func Float64At(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
