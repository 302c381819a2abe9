// Copyright 2025 Slate ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cuda provides the CUDA device context for GPU-resident tensors.
//
// The CUDA runtime and cuBLAS shared libraries are loaded at run time
// with purego; no cgo and no build tags are involved. On systems without
// the libraries, New and Default return an error and IsAvailable returns
// false.
//
// Example:
//
//	import (
//	    "github.com/slate-ml/slate/device/cuda"
//	    "github.com/slate-ml/slate/tensor"
//	)
//
//	func main() {
//	    ctx, err := cuda.Default()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    a, _ := tensor.Randn(1024, 1024, tensor.Float32)
//	    if err := a.LoadToDevice(ctx); err != nil {
//	        log.Fatal(err)
//	    }
//	}
package cuda

import (
	"github.com/slate-ml/slate/internal/device"
	"github.com/slate-ml/slate/internal/device/cuda"
)

// Context is a CUDA device context holding a cuBLAS handle.
type Context = cuda.Context

// Compile-time check that Context implements device.Context.
var _ device.Context = (*Context)(nil)

// New creates a Context bound to device 0. Call Release when done,
// except on the Default context.
func New() (*Context, error) {
	return cuda.New()
}

// Default returns the process-wide CUDA context, created lazily on
// first use and torn down only at process exit.
func Default() (*Context, error) {
	return cuda.Default()
}

// IsAvailable checks if the CUDA libraries can be loaded on the current
// system. It's useful for graceful fallback to host-path computation
// when no GPU is available.
func IsAvailable() bool {
	return cuda.IsAvailable()
}
