// Package tensor provides the core 2D tensor type for the Slate ML library.
package tensor

// DataType represents runtime type information for tensor elements.
type DataType int

// Supported element types.
const (
	Int8 DataType = iota
	Int16
	Int32
	Int64
	Float32
	Float64
)

// Size returns the byte size of one element of this type.
func (dt DataType) Size() int {
	return codecs[dt].width
}

// IsFloat reports whether the data type is a floating-point kind.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// valid reports whether dt is one of the declared data types.
func (dt DataType) valid() bool {
	return dt >= Int8 && dt <= Float64
}
