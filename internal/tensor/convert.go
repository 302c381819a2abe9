package tensor

import "fmt"

// ChangeDType converts the tensor to a new data type in place,
// re-encoding every element in row-major order. A no-op when dt equals
// the current dtype. The old buffer is only replaced once the new one is
// fully populated, so an interrupted conversion never leaves the tensor
// partially converted.
//
// Conversions between two integer kinds go through an exact int64
// intermediate; any conversion touching a float kind goes through
// float64, with the usual narrowing loss.
//
// If the tensor is device-mirrored, the mirror is torn down and rebuilt
// against the new byte layout; the host buffer is the single source of
// truth during conversion. On a mirror-rebuild failure the tensor stays
// valid but host-only.
func (t *Tensor) ChangeDType(dt DataType) error {
	if dt == t.dtype {
		return nil
	}
	if !dt.valid() {
		return fmt.Errorf("%w: unknown dtype %d", ErrInvalidDimension, int(dt))
	}

	oldCodec := codecs[t.dtype]
	newCodec := codecs[dt]
	newData := make([]byte, t.rows*t.cols*newCodec.width)

	exact := !t.dtype.IsFloat() && !dt.IsFloat()
	n := t.rows * t.cols
	for i := 0; i < n; i++ {
		src := t.data[i*oldCodec.width:]
		dst := newData[i*newCodec.width:]
		if exact {
			newCodec.putInt(dst, oldCodec.getInt(src))
		} else {
			newCodec.putFloat(dst, oldCodec.getFloat(src))
		}
	}

	mirrored := t.dev != nil
	ctx := t.ctx
	if mirrored {
		if err := t.dropMirror(); err != nil {
			return fmt.Errorf("change dtype: %w", err)
		}
	}

	t.data = newData
	t.dtype = dt

	if mirrored {
		if err := t.LoadToDevice(ctx); err != nil {
			return fmt.Errorf("change dtype: %w", err)
		}
	}
	return nil
}
