package tensor

import (
	"errors"
	"math"
	"testing"
)

func mustNew(t *testing.T, rows, cols int, dt DataType) *Tensor {
	t.Helper()
	tensor, err := New(rows, cols, dt)
	if err != nil {
		t.Fatalf("New(%d, %d, %s) failed: %v", rows, cols, dt, err)
	}
	return tensor
}

func TestNewInvalidDimensions(t *testing.T) {
	tests := []struct {
		rows, cols int
	}{
		{0, 3},
		{3, 0},
		{-1, 3},
		{3, -2},
		{0, 0},
	}

	for _, tt := range tests {
		if _, err := New(tt.rows, tt.cols, Float32); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimension", tt.rows, tt.cols, err)
		}
	}
}

func TestNewZeroFilled(t *testing.T) {
	x := mustNew(t, 2, 3, Int16)

	if x.Rows() != 2 || x.Cols() != 3 {
		t.Errorf("shape = %dx%d, want 2x3", x.Rows(), x.Cols())
	}
	if x.ByteSize() != 2*3*2 {
		t.Errorf("ByteSize() = %d, want 12", x.ByteSize())
	}
	if x.Residency() != HostOnly {
		t.Errorf("Residency() = %s, want host-only", x.Residency())
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			v, err := x.At(i, j)
			if err != nil {
				t.Fatalf("At(%d,%d) failed: %v", i, j, err)
			}
			if v != 0 {
				t.Errorf("At(%d,%d) = %v, want 0", i, j, v)
			}
		}
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	tests := []struct {
		dtype DataType
		value float64
	}{
		{Int8, -128},
		{Int8, 127},
		{Int16, -32768},
		{Int16, 32767},
		{Int32, -2147483648},
		{Int32, 2147483647},
		{Int64, -1234567890},
		{Float32, 0.25},
		{Float32, -1e10},
		{Float64, math.Pi},
		{Float64, -2.5e300},
	}

	for _, tt := range tests {
		x := mustNew(t, 2, 2, tt.dtype)
		if err := x.Set(1, 1, tt.value); err != nil {
			t.Fatalf("%s: Set failed: %v", tt.dtype, err)
		}
		got, err := x.At(1, 1)
		if err != nil {
			t.Fatalf("%s: At failed: %v", tt.dtype, err)
		}
		if got != tt.value {
			t.Errorf("%s: round trip of %v gave %v", tt.dtype, tt.value, got)
		}
	}
}

func TestSetGetIntExact(t *testing.T) {
	// Values beyond 2^53 don't survive a float64 intermediate; the
	// integer accessors must carry them exactly.
	x := mustNew(t, 1, 1, Int64)
	const big = int64(1)<<62 + 12345

	if err := x.SetInt(0, 0, big); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}
	got, err := x.AtInt(0, 0)
	if err != nil {
		t.Fatalf("AtInt failed: %v", err)
	}
	if got != big {
		t.Errorf("AtInt = %d, want %d", got, big)
	}
}

func TestSetNarrowing(t *testing.T) {
	tests := []struct {
		dtype DataType
		value float64
		want  float64
	}{
		{Int8, 3.9, 3},       // truncation toward zero
		{Int8, -3.9, -3},     // truncation toward zero
		{Int16, 7.5, 7},      // truncation toward zero
		{Int32, math.NaN(), 0},
		{Float32, 1.1, float64(float32(1.1))},
	}

	for _, tt := range tests {
		x := mustNew(t, 1, 1, tt.dtype)
		if err := x.Set(0, 0, tt.value); err != nil {
			t.Fatalf("%s: Set failed: %v", tt.dtype, err)
		}
		got, _ := x.At(0, 0)
		if got != tt.want {
			t.Errorf("%s: Set(%v) decoded to %v, want %v", tt.dtype, tt.value, got, tt.want)
		}
	}
}

func TestIndexOutOfRange(t *testing.T) {
	x := mustNew(t, 2, 3, Float64)

	bad := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 3}, {5, 5}}
	for _, idx := range bad {
		if _, err := x.At(idx[0], idx[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("At(%d,%d) error = %v, want ErrIndexOutOfRange", idx[0], idx[1], err)
		}
		if err := x.Set(idx[0], idx[1], 1); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Set(%d,%d) error = %v, want ErrIndexOutOfRange", idx[0], idx[1], err)
		}
	}
}

func TestString(t *testing.T) {
	x := mustNew(t, 2, 3, Int32)
	n := int64(0)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			n++
			if err := x.SetInt(i, j, n); err != nil {
				t.Fatal(err)
			}
		}
	}

	want := "[1, 2, 3]\n[4, 5, 6]\n"
	if got := x.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStringFloat(t *testing.T) {
	x := mustNew(t, 1, 2, Float32)
	if err := x.Set(0, 0, 0.25); err != nil {
		t.Fatal(err)
	}
	if err := x.Set(0, 1, -1.5); err != nil {
		t.Fatal(err)
	}

	want := "[0.25, -1.5]\n"
	if got := x.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestResidencyString(t *testing.T) {
	if HostOnly.String() != "host-only" {
		t.Errorf("HostOnly.String() = %q", HostOnly.String())
	}
	if DeviceMirrored.String() != "device-mirrored" {
		t.Errorf("DeviceMirrored.String() = %q", DeviceMirrored.String())
	}
}
