package tensor

import (
	"encoding/binary"
	"math"
)

// codec encodes and decodes a single element of one data type at the start
// of a byte window. Storage is fixed little-endian. Each dtype carries both
// an integer and a floating view so integer values round-trip exactly over
// the full 64-bit range and float narrowing stays in one place.
type codec struct {
	width    int
	putInt   func(b []byte, v int64)
	getInt   func(b []byte) int64
	putFloat func(b []byte, v float64)
	getFloat func(b []byte) float64
}

// codecs is the closed dispatch table mapping DataType to its codec.
// Indexed by the DataType constants; missing entries would fail loudly
// with a nil function call, so the table must stay exhaustive.
var codecs = [...]codec{
	Int8: {
		width:    1,
		putInt:   func(b []byte, v int64) { b[0] = byte(int8(v)) },
		getInt:   func(b []byte) int64 { return int64(int8(b[0])) },
		putFloat: func(b []byte, v float64) { b[0] = byte(int8(truncInt64(v))) },
		getFloat: func(b []byte) float64 { return float64(int8(b[0])) },
	},
	Int16: {
		width:    2,
		putInt:   func(b []byte, v int64) { binary.LittleEndian.PutUint16(b, uint16(int16(v))) },
		getInt:   func(b []byte) int64 { return int64(int16(binary.LittleEndian.Uint16(b))) },
		putFloat: func(b []byte, v float64) { binary.LittleEndian.PutUint16(b, uint16(int16(truncInt64(v)))) },
		getFloat: func(b []byte) float64 { return float64(int16(binary.LittleEndian.Uint16(b))) },
	},
	Int32: {
		width:    4,
		putInt:   func(b []byte, v int64) { binary.LittleEndian.PutUint32(b, uint32(int32(v))) },
		getInt:   func(b []byte) int64 { return int64(int32(binary.LittleEndian.Uint32(b))) },
		putFloat: func(b []byte, v float64) { binary.LittleEndian.PutUint32(b, uint32(int32(truncInt64(v)))) },
		getFloat: func(b []byte) float64 { return float64(int32(binary.LittleEndian.Uint32(b))) },
	},
	Int64: {
		width:    8,
		putInt:   func(b []byte, v int64) { binary.LittleEndian.PutUint64(b, uint64(v)) },
		getInt:   func(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) },
		putFloat: func(b []byte, v float64) { binary.LittleEndian.PutUint64(b, uint64(truncInt64(v))) },
		getFloat: func(b []byte) float64 { return float64(int64(binary.LittleEndian.Uint64(b))) },
	},
	Float32: {
		width:    4,
		putInt:   func(b []byte, v int64) { binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v))) },
		getInt:   func(b []byte) int64 { return truncInt64(float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))) },
		putFloat: func(b []byte, v float64) { binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v))) },
		getFloat: func(b []byte) float64 { return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))) },
	},
	Float64: {
		width:    8,
		putInt:   func(b []byte, v int64) { binary.LittleEndian.PutUint64(b, math.Float64bits(float64(v))) },
		getInt:   func(b []byte) int64 { return truncInt64(math.Float64frombits(binary.LittleEndian.Uint64(b))) },
		putFloat: func(b []byte, v float64) { binary.LittleEndian.PutUint64(b, math.Float64bits(v)) },
		getFloat: func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) },
	},
}

// truncInt64 converts a float to int64 with truncation toward zero,
// saturating at the int64 limits. NaN maps to 0. Out-of-range float to
// integer conversion is platform-dependent in Go, so the clamp keeps the
// narrowing deterministic.
func truncInt64(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}
