package tensor

import (
	"fmt"

	"github.com/slate-ml/slate/internal/device"
)

// LoadToDevice mirrors the host buffer into device memory on ctx.
// A no-op if the tensor is already mirrored. On failure the tensor
// remains host-only with no allocation outstanding.
func (t *Tensor) LoadToDevice(ctx device.Context) error {
	if t.dev != nil {
		return nil
	}
	buf, err := ctx.Alloc(len(t.data))
	if err != nil {
		return fmt.Errorf("load to device: %w", err)
	}
	if err := ctx.CopyToDevice(buf, t.data); err != nil {
		_ = ctx.Free(buf)
		return fmt.Errorf("load to device: %w", err)
	}
	t.dev = &buf
	t.ctx = ctx
	return nil
}

// UnloadFromDevice copies the device mirror back into the host buffer
// (the one path where device state overwrites host state), then frees
// the mirror. A no-op if the tensor is host-only.
func (t *Tensor) UnloadFromDevice() error {
	if t.dev == nil {
		return nil
	}
	if err := t.ctx.CopyFromDevice(t.data, *t.dev); err != nil {
		return fmt.Errorf("unload from device: %w", err)
	}
	if err := t.ctx.Free(*t.dev); err != nil {
		return fmt.Errorf("unload from device: %w", err)
	}
	t.dev = nil
	t.ctx = nil
	return nil
}

// dropMirror frees the device mirror without copying it back. Used when
// the host buffer is authoritative (dtype conversion, failed add).
func (t *Tensor) dropMirror() error {
	if t.dev == nil {
		return nil
	}
	err := t.ctx.Free(*t.dev)
	t.dev = nil
	t.ctx = nil
	return err
}
