// Copyright 2025 Slate ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/slate-ml/slate/internal/tensor"
)

// Tensor is a dense row-major 2D array of scalars, all of one data type
// at any instant. See the package documentation for semantics.
type Tensor = tensor.Tensor

// DataType represents runtime type information for tensor elements.
type DataType = tensor.DataType

// Supported element types.
const (
	Int8    = tensor.Int8
	Int16   = tensor.Int16
	Int32   = tensor.Int32
	Int64   = tensor.Int64
	Float32 = tensor.Float32
	Float64 = tensor.Float64
)

// Residency describes whether a tensor's data additionally exists as a
// device-memory mirror of the host buffer.
type Residency = tensor.Residency

// Residency states.
const (
	HostOnly       = tensor.HostOnly
	DeviceMirrored = tensor.DeviceMirrored
)

// Errors returned by tensor operations.
var (
	ErrInvalidDimension = tensor.ErrInvalidDimension
	ErrIndexOutOfRange  = tensor.ErrIndexOutOfRange
	ErrShapeMismatch    = tensor.ErrShapeMismatch
	ErrUnsupportedDtype = tensor.ErrUnsupportedDtype
)

// New creates a zero-filled host-only tensor.
func New(rows, cols int, dt DataType) (*Tensor, error) {
	return tensor.New(rows, cols, dt)
}

// Randn creates a rows x cols tensor filled with standard normal samples.
func Randn(rows, cols int, dt DataType) (*Tensor, error) {
	return tensor.Randn(rows, cols, dt)
}

// Arange creates a column vector with values start, start+step, ... up
// to but excluding end.
func Arange(start, end, step float64, dt DataType) (*Tensor, error) {
	return tensor.Arange(start, end, step, dt)
}

// Linspace creates a column vector of num points linearly spaced from
// start to end inclusive.
func Linspace(start, end float64, num int, dt DataType) (*Tensor, error) {
	return tensor.Linspace(start, end, num, dt)
}
