// Copyright 2025 Slate ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/slate-ml/slate/device"
	"github.com/slate-ml/slate/tensor"
)

// TestMockContextInterface verifies that device.MockContext implements
// device.Context.
func TestMockContextInterface(_ *testing.T) {
	var _ device.Context = (*device.MockContext)(nil)
}

// TestPublicAPI exercises the exported surface end to end: construct,
// mutate, mirror, convert, add, render.
func TestPublicAPI(t *testing.T) {
	ctx := device.NewMockContext()

	a, err := tensor.New(2, 2, tensor.Float32)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b, err := tensor.New(2, 2, tensor.Float32)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if err := a.Set(i, j, float64(i*2+j)); err != nil {
				t.Fatal(err)
			}
			if err := b.Set(i, j, 1); err != nil {
				t.Fatal(err)
			}
		}
	}

	if err := a.LoadToDevice(ctx); err != nil {
		t.Fatalf("LoadToDevice failed: %v", err)
	}
	if err := b.LoadToDevice(ctx); err != nil {
		t.Fatalf("LoadToDevice failed: %v", err)
	}
	if a.Residency() != tensor.DeviceMirrored {
		t.Fatalf("Residency() = %v, want DeviceMirrored", a.Residency())
	}

	c, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if v, _ := c.At(1, 1); v != 4 {
		t.Errorf("At(1,1) = %v, want 4", v)
	}

	if err := c.ChangeDType(tensor.Int64); err != nil {
		t.Fatalf("ChangeDType failed: %v", err)
	}
	if got := c.String(); got != "[1, 2]\n[3, 4]\n" {
		t.Errorf("String() = %q", got)
	}

	if err := a.UnloadFromDevice(); err != nil {
		t.Fatal(err)
	}
	if err := b.UnloadFromDevice(); err != nil {
		t.Fatal(err)
	}
	if ctx.LiveAllocs() != 0 {
		t.Errorf("LiveAllocs() = %d, want 0", ctx.LiveAllocs())
	}
}

// TestGenerators verifies the re-exported generator functions.
func TestGenerators(t *testing.T) {
	r, err := tensor.Arange(0, 10, 2, tensor.Int32)
	if err != nil {
		t.Fatalf("Arange failed: %v", err)
	}
	if r.Rows() != 5 || r.Cols() != 1 {
		t.Errorf("Arange shape = %dx%d, want 5x1", r.Rows(), r.Cols())
	}

	l, err := tensor.Linspace(0, 1, 5, tensor.Float32)
	if err != nil {
		t.Fatalf("Linspace failed: %v", err)
	}
	if l.Rows() != 5 {
		t.Errorf("Linspace rows = %d, want 5", l.Rows())
	}

	n, err := tensor.Randn(3, 2, tensor.Float64)
	if err != nil {
		t.Fatalf("Randn failed: %v", err)
	}
	if n.DType() != tensor.Float64 {
		t.Errorf("Randn dtype = %v, want Float64", n.DType())
	}
}

// TestErrorsExported verifies the sentinel errors survive the facade.
func TestErrorsExported(t *testing.T) {
	if _, err := tensor.New(0, 1, tensor.Int8); !errors.Is(err, tensor.ErrInvalidDimension) {
		t.Errorf("error = %v, want ErrInvalidDimension", err)
	}
}
