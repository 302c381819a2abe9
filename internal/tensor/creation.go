package tensor

import (
	"fmt"
	"math"
	"math/rand"
)

// Randn creates a rows x cols tensor filled with samples from the
// standard normal distribution, encoded per dt.
// Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
func Randn(rows, cols int, dt DataType) (*Tensor, error) {
	t, err := New(rows, cols, dt)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if err := t.Set(i, j, rand.NormFloat64()); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// Arange creates a column vector with values start, start+step, ... up
// to but excluding end. The length is ceil((end-start)/step) and the
// shape is (n, 1).
func Arange(start, end, step float64, dt DataType) (*Tensor, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: zero step", ErrInvalidDimension)
	}
	n := int(math.Ceil((end - start) / step))
	t, err := New(n, 1, dt)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := t.Set(i, 0, start+float64(i)*step); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Linspace creates a column vector of num points linearly spaced from
// start to end, inclusive of both endpoints. num must be at least 2.
func Linspace(start, end float64, num int, dt DataType) (*Tensor, error) {
	if num < 2 {
		return nil, fmt.Errorf("%w: linspace needs at least 2 points, got %d", ErrInvalidDimension, num)
	}
	t, err := New(num, 1, dt)
	if err != nil {
		return nil, err
	}
	step := (end - start) / float64(num-1)
	for i := 0; i < num; i++ {
		if err := t.Set(i, 0, start+float64(i)*step); err != nil {
			return nil, err
		}
	}
	return t, nil
}
