//go:build windows

// Package webgpu implements the device capability on WebGPU.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
//
// WebGPU has no 64-bit float support in WGSL, so Daxpy reports
// device.ErrUnsupported; float64 tensors need the cuda context.
package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/slate-ml/slate/internal/device"
)

// Verify that Context implements device.Context.
var _ device.Context = (*Context)(nil)

// Context is a WebGPU device context. Allocations are storage buffers
// addressed by opaque handles; the axpy pipeline is compiled once and
// cached.
type Context struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu       sync.Mutex
	next     uintptr
	buffers  map[uintptr]*wgpu.Buffer
	pipeline *wgpu.ComputePipeline
}

// New creates a new WebGPU context.
// Returns an error if WebGPU is not available or initialization fails.
func New() (ctx *Context, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	dev, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := dev.GetQueue()
	if queue == nil {
		dev.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Context{
		instance: instance,
		adapter:  adapter,
		device:   dev,
		queue:    queue,
		next:     1,
		buffers:  make(map[uintptr]*wgpu.Buffer),
	}, nil
}

// IsAvailable checks if WebGPU is available on the current system.
func IsAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

// Release releases all WebGPU resources, including any buffers still
// allocated through this context.
func (c *Context) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for ptr, buf := range c.buffers {
		buf.Release()
		delete(c.buffers, ptr)
	}
	if c.pipeline != nil {
		c.pipeline.Release()
		c.pipeline = nil
	}
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}

// Name returns the context name.
func (c *Context) Name() string { return "webgpu" }

// align4 rounds n up to the 4-byte granularity WebGPU copies require.
func align4(n int) uint64 {
	return uint64((n + 3) &^ 3)
}

// lookup resolves a handle to its wgpu buffer.
func (c *Context) lookup(b device.Buffer) (*wgpu.Buffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf, ok := c.buffers[b.Ptr]
	if !ok {
		return nil, fmt.Errorf("webgpu: unknown buffer %#x", b.Ptr)
	}
	return buf, nil
}

// Alloc allocates n bytes as a storage buffer.
func (c *Context) Alloc(n int) (buf device.Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = device.Buffer{}
			err = fmt.Errorf("webgpu: alloc of %d bytes: %v: %w", n, r, device.ErrAllocation)
		}
	}()

	if n <= 0 {
		return device.Buffer{}, fmt.Errorf("webgpu: invalid size %d: %w", n, device.ErrAllocation)
	}
	b := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  align4(n),
	})
	if b == nil {
		return device.Buffer{}, fmt.Errorf("webgpu: buffer creation failed: %w", device.ErrAllocation)
	}

	c.mu.Lock()
	ptr := c.next
	c.next++
	c.buffers[ptr] = b
	c.mu.Unlock()
	return device.Buffer{Ptr: ptr, Len: n}, nil
}

// Free releases a buffer allocated through this context.
func (c *Context) Free(b device.Buffer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf, ok := c.buffers[b.Ptr]
	if !ok {
		return fmt.Errorf("webgpu: free of unknown buffer %#x", b.Ptr)
	}
	buf.Release()
	delete(c.buffers, b.Ptr)
	return nil
}

// stagingUpload creates a mapped staging buffer holding data, padded to
// copy granularity.
func (c *Context) stagingUpload(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := align4(len(data))
	buffer := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	mappedPtr := buffer.GetMappedRange(0, size)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()
	return buffer
}

// CopyToDevice copies host bytes into a device buffer through a mapped
// staging buffer.
func (c *Context) CopyToDevice(dst device.Buffer, src []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("webgpu: host->device copy: %v: %w", r, device.ErrTransfer)
		}
	}()

	if len(src) > dst.Len {
		return fmt.Errorf("webgpu: copy of %d bytes into %d-byte buffer: %w", len(src), dst.Len, device.ErrTransfer)
	}
	dstBuf, err := c.lookup(dst)
	if err != nil {
		return fmt.Errorf("%w: %w", device.ErrTransfer, err)
	}

	staging := c.stagingUpload(src, wgpu.BufferUsageCopySrc)
	defer staging.Release()

	encoder := c.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(staging, 0, dstBuf, 0, align4(len(src)))
	cmdBuffer := encoder.Finish(nil)
	c.queue.Submit(cmdBuffer)
	return nil
}

// CopyFromDevice copies a device buffer back to host bytes.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (c *Context) CopyFromDevice(dst []byte, src device.Buffer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("webgpu: device->host copy: %v: %w", r, device.ErrTransfer)
		}
	}()

	if len(dst) > src.Len {
		return fmt.Errorf("webgpu: copy of %d bytes from %d-byte buffer: %w", len(dst), src.Len, device.ErrTransfer)
	}
	srcBuf, err := c.lookup(src)
	if err != nil {
		return fmt.Errorf("%w: %w", device.ErrTransfer, err)
	}

	size := align4(len(dst))
	staging := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := c.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuf, 0, staging, 0, size)
	cmdBuffer := encoder.Finish(nil)
	c.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(c.device, wgpu.MapModeRead, 0, size); err != nil {
		return fmt.Errorf("webgpu: failed to map staging buffer: %w: %w", err, device.ErrTransfer)
	}
	mappedPtr := staging.GetMappedRange(0, size)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(dst, mappedSlice)
	staging.Unmap()
	return nil
}

// axpyPipeline compiles the axpy compute pipeline on first use.
func (c *Context) axpyPipeline() *wgpu.ComputePipeline {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pipeline == nil {
		shader := c.device.CreateShaderModuleWGSL(axpyShader)
		c.pipeline = c.device.CreateComputePipelineSimple(nil, shader, "main")
	}
	return c.pipeline
}

// Saxpy computes y := alpha*x + y over n float32 elements on the GPU.
func (c *Context) Saxpy(n int, alpha float32, x, y device.Buffer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("webgpu: saxpy: %v: %w", r, device.ErrTransfer)
		}
	}()

	if n*4 > x.Len || n*4 > y.Len {
		return fmt.Errorf("webgpu: saxpy over %d elements exceeds buffer size: %w", n, device.ErrTransfer)
	}
	xBuf, err := c.lookup(x)
	if err != nil {
		return err
	}
	yBuf, err := c.lookup(y)
	if err != nil {
		return err
	}

	pipeline := c.axpyPipeline()

	// Uniform block: size u32, alpha f32, padded to 16 bytes.
	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(n))
	binary.LittleEndian.PutUint32(params[4:8], math.Float32bits(alpha))
	paramsBuf := c.stagingUpload(params, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	defer paramsBuf.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := c.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, xBuf, 0, align4(x.Len)),
		wgpu.BufferBindingEntry(1, yBuf, 0, align4(y.Len)),
		wgpu.BufferBindingEntry(2, paramsBuf, 0, 16),
	})
	defer bindGroup.Release()

	encoder := c.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	workgroups := uint32((n + workgroupSize - 1) / workgroupSize)
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	c.queue.Submit(cmdBuffer)
	return nil
}

// Daxpy is not supported: WGSL has no f64 type.
func (c *Context) Daxpy(n int, alpha float64, x, y device.Buffer) error {
	return fmt.Errorf("webgpu: float64 axpy: %w", device.ErrUnsupported)
}
