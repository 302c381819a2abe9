package tensor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slate-ml/slate/internal/device"
)

// Residency describes whether a tensor's data additionally exists as a
// device-memory mirror of the host buffer.
type Residency int

// Residency states. The device mirror duplicates, never replaces, the
// host buffer.
const (
	HostOnly Residency = iota
	DeviceMirrored
)

// String returns a human-readable residency name.
func (r Residency) String() string {
	switch r {
	case HostOnly:
		return "host-only"
	case DeviceMirrored:
		return "device-mirrored"
	default:
		return "unknown"
	}
}

// Tensor is a dense row-major 2D array of scalars, all of one data type
// at any instant. Elements live in a contiguous host byte buffer encoded
// per the current dtype; the buffer may additionally be mirrored in
// device memory (see LoadToDevice).
//
// A Tensor is not safe for concurrent mutation from multiple goroutines;
// no internal synchronization is provided.
type Tensor struct {
	rows  int
	cols  int
	dtype DataType
	data  []byte

	// dev is non-nil exactly when the tensor is DeviceMirrored, and is
	// exclusively owned by this tensor. ctx is the context that
	// allocated it; there is no automatic host/device coherence.
	dev *device.Buffer
	ctx device.Context
}

// New creates a zero-filled host-only tensor.
func New(rows, cols int, dt DataType) (*Tensor, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, rows, cols)
	}
	if !dt.valid() {
		return nil, fmt.Errorf("%w: unknown dtype %d", ErrInvalidDimension, int(dt))
	}
	return &Tensor{
		rows:  rows,
		cols:  cols,
		dtype: dt,
		data:  make([]byte, rows*cols*dt.Size()),
	}, nil
}

// Rows returns the number of rows.
func (t *Tensor) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Tensor) Cols() int { return t.cols }

// DType returns the tensor's current data type.
func (t *Tensor) DType() DataType { return t.dtype }

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int { return t.rows * t.cols }

// ByteSize returns the host buffer size in bytes.
func (t *Tensor) ByteSize() int { return len(t.data) }

// Residency returns the tensor's current residency state.
func (t *Tensor) Residency() Residency {
	if t.dev != nil {
		return DeviceMirrored
	}
	return HostOnly
}

// Data returns the raw host byte buffer. Direct access to underlying
// memory; use with caution.
func (t *Tensor) Data() []byte { return t.data }

// window returns the byte window for element (row, col).
func (t *Tensor) window(row, col int) ([]byte, error) {
	if row < 0 || row >= t.rows || col < 0 || col >= t.cols {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfRange, row, col, t.rows, t.cols)
	}
	off := (row*t.cols + col) * t.dtype.Size()
	return t.data[off : off+t.dtype.Size()], nil
}

// At returns the element at (row, col) as a float64.
// Integer magnitudes beyond 2^53 lose precision in the float64 view;
// use AtInt for exact integer access.
func (t *Tensor) At(row, col int) (float64, error) {
	w, err := t.window(row, col)
	if err != nil {
		return 0, err
	}
	return codecs[t.dtype].getFloat(w), nil
}

// AtInt returns the element at (row, col) as an int64. For floating
// dtypes the value is truncated toward zero.
func (t *Tensor) AtInt(row, col int) (int64, error) {
	w, err := t.window(row, col)
	if err != nil {
		return 0, err
	}
	return codecs[t.dtype].getInt(w), nil
}

// Set encodes v into the element at (row, col), narrowing to the current
// dtype: truncation toward zero for integer kinds, standard float
// narrowing for Float32.
func (t *Tensor) Set(row, col int, v float64) error {
	w, err := t.window(row, col)
	if err != nil {
		return err
	}
	codecs[t.dtype].putFloat(w, v)
	return nil
}

// SetInt encodes v into the element at (row, col). Integer kinds keep
// the low bits of v exactly; floating kinds round per float conversion.
func (t *Tensor) SetInt(row, col int, v int64) error {
	w, err := t.window(row, col)
	if err != nil {
		return err
	}
	codecs[t.dtype].putInt(w, v)
	return nil
}

// String renders the tensor row-major, one bracketed row per line with
// comma-separated values.
func (t *Tensor) String() string {
	var sb strings.Builder
	c := codecs[t.dtype]
	for i := 0; i < t.rows; i++ {
		sb.WriteString("[")
		for j := 0; j < t.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			w, _ := t.window(i, j)
			if t.dtype.IsFloat() {
				bits := 64
				if t.dtype == Float32 {
					bits = 32
				}
				sb.WriteString(strconv.FormatFloat(c.getFloat(w), 'g', -1, bits))
			} else {
				sb.WriteString(strconv.FormatInt(c.getInt(w), 10))
			}
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
