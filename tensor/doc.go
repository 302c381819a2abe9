// Copyright 2025 Slate ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides a minimal multi-dtype 2D tensor for the Slate
// ML library.
//
// # Overview
//
// A Tensor is a dense row-major 2D array of scalars stored in a raw host
// byte buffer and encoded per its current data type. This package
// provides:
//   - Six element types (int8..int64, float32, float64) with in-place
//     conversion between them (ChangeDType)
//   - Element access through a dtype-aware codec (At/Set, AtInt/SetInt)
//   - Optional device residency: the host buffer can be mirrored into
//     device memory and element-wise addition dispatches to a device
//     axpy call when both operands are mirrored
//   - Generators: Randn, Arange, Linspace
//
// # Basic Usage
//
//	import (
//	    "github.com/slate-ml/slate/tensor"
//	    "github.com/slate-ml/slate/device/cuda"
//	)
//
//	func main() {
//	    a, _ := tensor.Randn(3, 3, tensor.Float32)
//	    b, _ := tensor.Randn(3, 3, tensor.Float32)
//
//	    // Host addition.
//	    c, _ := a.Add(b)
//
//	    // Device addition when CUDA is present.
//	    if ctx, err := cuda.Default(); err == nil {
//	        _ = a.LoadToDevice(ctx)
//	        _ = b.LoadToDevice(ctx)
//	        c, _ = a.Add(b)
//	    }
//	    fmt.Println(c)
//	}
//
// # Numeric Behavior
//
// Integer encodes truncate toward the target bit width; float32 encodes
// narrow per IEEE-754. Host-path addition sums through a float64
// intermediate, so integer operands with magnitudes beyond 2^53 lose
// precision — this is a known, documented limitation of the addition
// path, not of element storage.
//
// A Tensor is not safe for concurrent mutation from multiple goroutines.
package tensor
