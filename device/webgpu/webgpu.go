// Copyright 2025 Slate ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU device context for GPU-resident
// tensors.
//
// WebGPU covers float32 tensors only: WGSL has no 64-bit float type, so
// Daxpy reports device.ErrUnsupported and float64 tensors need the cuda
// context. The go-webgpu bindings are Windows-only today; on other
// platforms New returns an error and IsAvailable returns false.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	a, _ := tensor.Randn(1024, 1024, tensor.Float32)
//	_ = a.LoadToDevice(gpu)
package webgpu

import (
	"github.com/slate-ml/slate/internal/device"
	"github.com/slate-ml/slate/internal/device/webgpu"
)

// Context is a WebGPU device context.
type Context = webgpu.Context

// Compile-time check that Context implements device.Context.
var _ device.Context = (*Context)(nil)

// New creates a new WebGPU context. Call Release when done to free GPU
// resources.
func New() (*Context, error) {
	return webgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
func IsAvailable() bool {
	return webgpu.IsAvailable()
}
