//go:build !windows

// Package webgpu implements the device capability on WebGPU.
// The go-webgpu bindings currently support Windows only; on other
// platforms New reports an error and IsAvailable returns false.
package webgpu

import (
	"fmt"

	"github.com/slate-ml/slate/internal/device"
)

// Verify that Context implements device.Context.
var _ device.Context = (*Context)(nil)

// Context is a placeholder on platforms without WebGPU support.
type Context struct{}

// New reports that WebGPU is not supported on this platform.
func New() (*Context, error) {
	return nil, fmt.Errorf("webgpu: not supported on this platform: %w", device.ErrUnsupported)
}

// IsAvailable returns false on platforms without WebGPU support.
func IsAvailable() bool { return false }

// Release is a no-op.
func (c *Context) Release() {}

// Name returns the context name.
func (c *Context) Name() string { return "webgpu" }

func (c *Context) Alloc(n int) (device.Buffer, error) {
	return device.Buffer{}, fmt.Errorf("webgpu: %w", device.ErrUnsupported)
}

func (c *Context) Free(b device.Buffer) error {
	return fmt.Errorf("webgpu: %w", device.ErrUnsupported)
}

func (c *Context) CopyToDevice(dst device.Buffer, src []byte) error {
	return fmt.Errorf("webgpu: %w", device.ErrUnsupported)
}

func (c *Context) CopyFromDevice(dst []byte, src device.Buffer) error {
	return fmt.Errorf("webgpu: %w", device.ErrUnsupported)
}

func (c *Context) Saxpy(n int, alpha float32, x, y device.Buffer) error {
	return fmt.Errorf("webgpu: %w", device.ErrUnsupported)
}

func (c *Context) Daxpy(n int, alpha float64, x, y device.Buffer) error {
	return fmt.Errorf("webgpu: %w", device.ErrUnsupported)
}
