// Copyright 2025 Slate ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package device exposes the compute capability tensors mirror into:
// buffer allocation, host/device copies, and scaled-vector accumulation.
//
// Implementations:
//   - device/cuda: NVIDIA GPUs via the CUDA runtime and cuBLAS
//   - device/webgpu: cross-platform GPUs via WebGPU (float32 only)
//   - MockContext: host-memory fake for tests
package device

import (
	"github.com/slate-ml/slate/internal/device"
)

// Context is a compute device capable of holding tensor mirrors and
// accumulating vectors. Every call blocks until the device operation
// has completed.
type Context = device.Context

// Buffer is an opaque handle to a device allocation.
type Buffer = device.Buffer

// MockContext is a device context backed by host memory, for testing.
type MockContext = device.MockContext

// NewMockContext creates an empty MockContext.
func NewMockContext() *MockContext {
	return device.NewMockContext()
}

// Errors reported by Context implementations.
var (
	ErrAllocation  = device.ErrAllocation
	ErrTransfer    = device.ErrTransfer
	ErrUnsupported = device.ErrUnsupported
)
