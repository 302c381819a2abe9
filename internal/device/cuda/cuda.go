// Package cuda implements the device capability on NVIDIA GPUs by
// loading the CUDA runtime and cuBLAS shared libraries at run time with
// purego. No cgo is involved; when the libraries are absent every entry
// point reports a plain error.
package cuda

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/slate-ml/slate/internal/device"
)

// Verify that Context implements device.Context.
var _ device.Context = (*Context)(nil)

// cudaMemcpyKind values from the CUDA runtime API.
const (
	memcpyHostToDevice int32 = 1
	memcpyDeviceToHost int32 = 2
)

// lib holds the registered native entry points. Populated once by
// ensureLoaded and never torn down; the process-wide CUDA state lives
// until process exit.
var lib struct {
	cudaSetDevice      func(dev int32) int32
	cudaMalloc         func(devPtr *uintptr, size uint64) int32
	cudaFree           func(devPtr uintptr) int32
	cudaMemcpy         func(dst, src uintptr, count uint64, kind int32) int32
	cudaGetErrorString func(rc int32) string

	cublasCreate  func(handle *uintptr) int32
	cublasDestroy func(handle uintptr) int32
	cublasSaxpy   func(handle uintptr, n int32, alpha *float32, x uintptr, incx int32, y uintptr, incy int32) int32
	cublasDaxpy   func(handle uintptr, n int32, alpha *float64, x uintptr, incx int32, y uintptr, incy int32) int32
}

var (
	loadMu  sync.Mutex
	loaded  bool
	loadErr error
)

// loadFirst tries each candidate library name and returns the first
// handle that loads.
func loadFirst(names []string) (uintptr, error) {
	var lastErr error
	for _, name := range names {
		h, err := loadLibrary(name)
		if err == nil && h != 0 {
			return h, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no candidate library found")
	}
	return 0, lastErr
}

func register(fptr any, handle uintptr, symbol string) error {
	sym, err := getSymbol(handle, symbol)
	if err != nil || sym == 0 {
		return fmt.Errorf("cuda: symbol %s not found: %w", symbol, err)
	}
	purego.RegisterFunc(fptr, sym)
	return nil
}

// ensureLoaded loads libcudart and libcublas and registers the entry
// points used by Context. Safe to call repeatedly; the result is cached.
func ensureLoaded() error {
	loadMu.Lock()
	defer loadMu.Unlock()
	if loaded {
		return loadErr
	}
	loaded = true
	loadErr = load()
	return loadErr
}

func load() error {
	cudart, err := loadFirst(cudartNames)
	if err != nil {
		return fmt.Errorf("cuda: CUDA runtime library not available: %w", err)
	}
	cublas, err := loadFirst(cublasNames)
	if err != nil {
		return fmt.Errorf("cuda: cuBLAS library not available: %w", err)
	}

	for _, s := range []struct {
		fptr   any
		handle uintptr
		name   string
	}{
		{&lib.cudaSetDevice, cudart, "cudaSetDevice"},
		{&lib.cudaMalloc, cudart, "cudaMalloc"},
		{&lib.cudaFree, cudart, "cudaFree"},
		{&lib.cudaMemcpy, cudart, "cudaMemcpy"},
		{&lib.cudaGetErrorString, cudart, "cudaGetErrorString"},
		{&lib.cublasCreate, cublas, "cublasCreate_v2"},
		{&lib.cublasDestroy, cublas, "cublasDestroy_v2"},
		{&lib.cublasSaxpy, cublas, "cublasSaxpy_v2"},
		{&lib.cublasDaxpy, cublas, "cublasDaxpy_v2"},
	} {
		if err := register(s.fptr, s.handle, s.name); err != nil {
			return err
		}
	}
	return nil
}

// errString renders a CUDA runtime error code.
func errString(rc int32) string {
	if lib.cudaGetErrorString == nil {
		return fmt.Sprintf("cuda error %d", rc)
	}
	return lib.cudaGetErrorString(rc)
}

// Context is a CUDA device context holding a cuBLAS handle.
type Context struct {
	blas uintptr
}

// New creates a Context bound to device 0.
func New() (*Context, error) {
	if err := ensureLoaded(); err != nil {
		return nil, err
	}
	if rc := lib.cudaSetDevice(0); rc != 0 {
		return nil, fmt.Errorf("cuda: cudaSetDevice: %s", errString(rc))
	}
	var handle uintptr
	if rc := lib.cublasCreate(&handle); rc != 0 {
		return nil, fmt.Errorf("cuda: cublasCreate failed with status %d", rc)
	}
	return &Context{blas: handle}, nil
}

// Release destroys the context's cuBLAS handle. Must not be called on
// the Default context, which lives until process exit.
func (c *Context) Release() {
	if c.blas != 0 {
		lib.cublasDestroy(c.blas)
		c.blas = 0
	}
}

var (
	defaultMu  sync.Mutex
	defaultCtx *Context
)

// Default returns the process-wide CUDA context, created lazily on
// first use and torn down only at process exit.
func Default() (*Context, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCtx != nil {
		return defaultCtx, nil
	}
	ctx, err := New()
	if err != nil {
		return nil, err
	}
	defaultCtx = ctx
	return defaultCtx, nil
}

// IsAvailable reports whether the CUDA libraries can be loaded on this
// system. Useful for graceful fallback to the host path.
func IsAvailable() bool {
	return ensureLoaded() == nil
}

// Name returns the context name.
func (c *Context) Name() string { return "cuda" }

// Alloc allocates n bytes of device memory.
func (c *Context) Alloc(n int) (device.Buffer, error) {
	if n <= 0 {
		return device.Buffer{}, fmt.Errorf("cuda: invalid size %d: %w", n, device.ErrAllocation)
	}
	var ptr uintptr
	if rc := lib.cudaMalloc(&ptr, uint64(n)); rc != 0 {
		return device.Buffer{}, fmt.Errorf("cuda: cudaMalloc(%d): %s: %w", n, errString(rc), device.ErrAllocation)
	}
	return device.Buffer{Ptr: ptr, Len: n}, nil
}

// Free releases device memory.
func (c *Context) Free(b device.Buffer) error {
	if rc := lib.cudaFree(b.Ptr); rc != 0 {
		return fmt.Errorf("cuda: cudaFree: %s", errString(rc))
	}
	return nil
}

// CopyToDevice copies host bytes into a device buffer.
func (c *Context) CopyToDevice(dst device.Buffer, src []byte) error {
	if len(src) == 0 {
		return nil
	}
	if len(src) > dst.Len {
		return fmt.Errorf("cuda: copy of %d bytes into %d-byte buffer: %w", len(src), dst.Len, device.ErrTransfer)
	}
	rc := lib.cudaMemcpy(dst.Ptr, uintptr(unsafe.Pointer(&src[0])), uint64(len(src)), memcpyHostToDevice)
	runtime.KeepAlive(src)
	if rc != 0 {
		return fmt.Errorf("cuda: cudaMemcpy host->device: %s: %w", errString(rc), device.ErrTransfer)
	}
	return nil
}

// CopyFromDevice copies a device buffer back into host bytes.
func (c *Context) CopyFromDevice(dst []byte, src device.Buffer) error {
	if len(dst) == 0 {
		return nil
	}
	if len(dst) > src.Len {
		return fmt.Errorf("cuda: copy of %d bytes from %d-byte buffer: %w", len(dst), src.Len, device.ErrTransfer)
	}
	rc := lib.cudaMemcpy(uintptr(unsafe.Pointer(&dst[0])), src.Ptr, uint64(len(dst)), memcpyDeviceToHost)
	runtime.KeepAlive(dst)
	if rc != 0 {
		return fmt.Errorf("cuda: cudaMemcpy device->host: %s: %w", errString(rc), device.ErrTransfer)
	}
	return nil
}

// Saxpy computes y := alpha*x + y over n float32 elements with cuBLAS.
func (c *Context) Saxpy(n int, alpha float32, x, y device.Buffer) error {
	if rc := lib.cublasSaxpy(c.blas, int32(n), &alpha, x.Ptr, 1, y.Ptr, 1); rc != 0 {
		return fmt.Errorf("cuda: cublasSaxpy failed with status %d", rc)
	}
	return nil
}

// Daxpy computes y := alpha*x + y over n float64 elements with cuBLAS.
func (c *Context) Daxpy(n int, alpha float64, x, y device.Buffer) error {
	if rc := lib.cublasDaxpy(c.blas, int32(n), &alpha, x.Ptr, 1, y.Ptr, 1); rc != 0 {
		return fmt.Errorf("cuda: cublasDaxpy failed with status %d", rc)
	}
	return nil
}
