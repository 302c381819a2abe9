package device

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32bytes(values ...float32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func f64bytes(values ...float64) []byte {
	out := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(v))
	}
	return out
}

func TestMockAllocFree(t *testing.T) {
	ctx := NewMockContext()

	buf, err := ctx.Alloc(16)
	require.NoError(t, err)
	assert.Equal(t, 16, buf.Size())
	assert.Equal(t, 1, ctx.LiveAllocs())

	require.NoError(t, ctx.Free(buf))
	assert.Equal(t, 0, ctx.LiveAllocs())

	// Double free reports an error.
	assert.Error(t, ctx.Free(buf))
}

func TestMockAllocInvalidSize(t *testing.T) {
	ctx := NewMockContext()

	_, err := ctx.Alloc(0)
	assert.ErrorIs(t, err, ErrAllocation)
	_, err = ctx.Alloc(-4)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestMockCopyRoundTrip(t *testing.T) {
	ctx := NewMockContext()

	buf, err := ctx.Alloc(8)
	require.NoError(t, err)

	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, ctx.CopyToDevice(buf, src))

	dst := make([]byte, 8)
	require.NoError(t, ctx.CopyFromDevice(dst, buf))
	assert.Equal(t, src, dst)
}

func TestMockCopyBoundsChecked(t *testing.T) {
	ctx := NewMockContext()

	buf, err := ctx.Alloc(4)
	require.NoError(t, err)

	err = ctx.CopyToDevice(buf, make([]byte, 8))
	assert.ErrorIs(t, err, ErrTransfer)

	err = ctx.CopyFromDevice(make([]byte, 8), buf)
	assert.ErrorIs(t, err, ErrTransfer)

	err = ctx.CopyToDevice(Buffer{Ptr: 999, Len: 4}, make([]byte, 4))
	assert.ErrorIs(t, err, ErrTransfer)
}

func TestMockInjectedFailures(t *testing.T) {
	ctx := NewMockContext()

	ctx.FailNextAlloc = true
	_, err := ctx.Alloc(4)
	assert.ErrorIs(t, err, ErrAllocation)

	// The failure is one-shot.
	buf, err := ctx.Alloc(4)
	require.NoError(t, err)

	ctx.FailNextCopy = true
	err = ctx.CopyToDevice(buf, make([]byte, 4))
	assert.ErrorIs(t, err, ErrTransfer)
	require.NoError(t, ctx.CopyToDevice(buf, make([]byte, 4)))
}

func TestMockSaxpy(t *testing.T) {
	ctx := NewMockContext()

	x, err := ctx.Alloc(12)
	require.NoError(t, err)
	y, err := ctx.Alloc(12)
	require.NoError(t, err)

	require.NoError(t, ctx.CopyToDevice(x, f32bytes(1, 2, 3)))
	require.NoError(t, ctx.CopyToDevice(y, f32bytes(10, 20, 30)))

	require.NoError(t, ctx.Saxpy(3, 2.0, x, y))

	assert.Equal(t, f32bytes(12, 24, 36), ctx.Bytes(y))
	// x is untouched.
	assert.Equal(t, f32bytes(1, 2, 3), ctx.Bytes(x))
}

func TestMockDaxpy(t *testing.T) {
	ctx := NewMockContext()

	x, err := ctx.Alloc(16)
	require.NoError(t, err)
	y, err := ctx.Alloc(16)
	require.NoError(t, err)

	require.NoError(t, ctx.CopyToDevice(x, f64bytes(0.5, -0.5)))
	require.NoError(t, ctx.CopyToDevice(y, f64bytes(1, 1)))

	require.NoError(t, ctx.Daxpy(2, 1.0, x, y))
	assert.Equal(t, f64bytes(1.5, 0.5), ctx.Bytes(y))
}

func TestMockAxpyBoundsChecked(t *testing.T) {
	ctx := NewMockContext()

	x, err := ctx.Alloc(8)
	require.NoError(t, err)
	y, err := ctx.Alloc(8)
	require.NoError(t, err)

	assert.ErrorIs(t, ctx.Saxpy(3, 1.0, x, y), ErrTransfer)
	assert.ErrorIs(t, ctx.Daxpy(2, 1.0, x, y), ErrTransfer)
}
