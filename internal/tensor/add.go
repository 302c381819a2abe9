package tensor

import "fmt"

// Add returns a new tensor holding the element-wise sum of t and other.
// The result has t's shape and dtype and is always a fresh host-only
// tensor; neither operand is modified.
//
// The device path is taken only when both operands are mirrored on the
// same context and the dtype is Float32 or Float64. It seeds a mirror
// from t, accumulates other into it with a single axpy (alpha=1), syncs
// the result back, and releases the result's mirror. Every other case
// takes the host path.
//
// Known limitation, kept for compatibility with the original semantics:
// the host path sums through a float64 intermediate, so integer operands
// with magnitudes beyond 2^53 lose precision.
func (t *Tensor) Add(other *Tensor) (*Tensor, error) {
	if t.rows != other.rows || t.cols != other.cols {
		return nil, fmt.Errorf("%w: %dx%d + %dx%d",
			ErrShapeMismatch, t.rows, t.cols, other.rows, other.cols)
	}

	result, err := New(t.rows, t.cols, t.dtype)
	if err != nil {
		return nil, err
	}

	if t.dev != nil && other.dev != nil && t.ctx == other.ctx {
		return t.addDevice(other, result)
	}
	return t.addHost(other, result)
}

// addHost sums element-wise on the host through a float64 intermediate.
func (t *Tensor) addHost(other, result *Tensor) (*Tensor, error) {
	for i := 0; i < t.rows; i++ {
		for j := 0; j < t.cols; j++ {
			a, err := t.At(i, j)
			if err != nil {
				return nil, err
			}
			b, err := other.At(i, j)
			if err != nil {
				return nil, err
			}
			if err := result.Set(i, j, a+b); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// addDevice accumulates other into a device mirror seeded from t.
// Base is t, accumulate is other; the asymmetry is part of the contract.
func (t *Tensor) addDevice(other, result *Tensor) (*Tensor, error) {
	if !t.dtype.IsFloat() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDtype, t.dtype)
	}

	copy(result.data, t.data)
	if err := result.LoadToDevice(t.ctx); err != nil {
		return nil, fmt.Errorf("device add: %w", err)
	}

	n := t.rows * t.cols
	var err error
	switch t.dtype {
	case Float32:
		err = t.ctx.Saxpy(n, 1.0, *other.dev, *result.dev)
	case Float64:
		err = t.ctx.Daxpy(n, 1.0, *other.dev, *result.dev)
	}
	if err != nil {
		_ = result.dropMirror()
		return nil, fmt.Errorf("device add: %w", err)
	}

	if err := result.UnloadFromDevice(); err != nil {
		_ = result.dropMirror()
		return nil, fmt.Errorf("device add: %w", err)
	}
	return result, nil
}
