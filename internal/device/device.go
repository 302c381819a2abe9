// Package device defines the narrow compute capability the tensor core
// needs from a GPU runtime: raw buffer allocation, host/device byte copies,
// and a scaled-vector-accumulate primitive (y := alpha*x + y) over float32
// and float64 buffers. Any runtime providing these four concerns is
// substitutable; cuda and webgpu are the real implementations and
// MockContext is the in-memory one used by tests.
package device

import "errors"

// Sentinel errors reported by Context implementations. Implementations
// wrap their native failure details around these so callers can match
// with errors.Is.
var (
	// ErrAllocation indicates a device buffer allocation failed.
	ErrAllocation = errors.New("device: allocation failed")

	// ErrTransfer indicates a host/device copy failed.
	ErrTransfer = errors.New("device: transfer failed")

	// ErrUnsupported indicates the context cannot perform the requested
	// operation (for example float64 axpy on WebGPU).
	ErrUnsupported = errors.New("device: operation not supported")
)

// Buffer is an opaque handle to a device allocation. The meaning of Ptr
// is private to the Context that produced the buffer; callers must not
// fabricate or reinterpret handles.
type Buffer struct {
	Ptr uintptr
	Len int
}

// Size returns the allocation size in bytes.
func (b Buffer) Size() int { return b.Len }

// Context is a compute device capable of holding tensor mirrors and
// accumulating vectors. Every call blocks until the device operation has
// completed; there is no cancellation at this layer.
//
// A Context may be shared by many tensors, but a single Buffer is owned
// by exactly one tensor and must only be freed through the Context that
// allocated it.
type Context interface {
	// Alloc allocates n bytes of device memory.
	Alloc(n int) (Buffer, error)

	// Free releases a buffer previously returned by Alloc.
	Free(b Buffer) error

	// CopyToDevice copies len(src) bytes from host memory into dst.
	CopyToDevice(dst Buffer, src []byte) error

	// CopyFromDevice copies len(dst) bytes from src into host memory.
	CopyFromDevice(dst []byte, src Buffer) error

	// Saxpy computes y := alpha*x + y over n float32 elements.
	Saxpy(n int, alpha float32, x, y Buffer) error

	// Daxpy computes y := alpha*x + y over n float64 elements.
	Daxpy(n int, alpha float64, x, y Buffer) error

	// Name returns a human-readable context name.
	Name() string
}
