package tensor

import "errors"

// Sentinel errors returned by tensor operations. All failures are local
// and synchronous; callers match with errors.Is.
var (
	// ErrInvalidDimension indicates non-positive rows or columns at
	// construction.
	ErrInvalidDimension = errors.New("tensor: invalid dimension")

	// ErrIndexOutOfRange indicates an element access outside the
	// tensor's bounds.
	ErrIndexOutOfRange = errors.New("tensor: index out of range")

	// ErrShapeMismatch indicates addition between differently-shaped
	// tensors.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrUnsupportedDtype indicates a device-path operation on a data
	// type the device capability cannot accumulate (integer kinds).
	ErrUnsupportedDtype = errors.New("tensor: dtype not supported on device")
)
