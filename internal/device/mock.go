package device

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
)

// Verify that MockContext implements Context.
var _ Context = (*MockContext)(nil)

// MockContext is a device context backed by host memory, for testing.
// It tracks live allocations so tests can assert that residency
// transitions neither leak nor double-free, and it can inject failures
// to exercise error paths.
type MockContext struct {
	mu      sync.Mutex
	next    uintptr
	buffers map[uintptr][]byte

	// FailNextAlloc makes the next Alloc call fail with ErrAllocation.
	FailNextAlloc bool
	// FailNextCopy makes the next copy in either direction fail with
	// ErrTransfer.
	FailNextCopy bool
}

// NewMockContext creates an empty MockContext.
func NewMockContext() *MockContext {
	return &MockContext{next: 1, buffers: make(map[uintptr][]byte)}
}

// Name returns the context name.
func (m *MockContext) Name() string { return "mock" }

// LiveAllocs returns the number of outstanding device allocations.
func (m *MockContext) LiveAllocs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffers)
}

// Bytes returns a copy of the buffer's current device-side contents.
func (m *MockContext) Bytes(b Buffer) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.buffers[b.Ptr]))
	copy(out, m.buffers[b.Ptr])
	return out
}

// Alloc allocates n bytes of fake device memory.
func (m *MockContext) Alloc(n int) (Buffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNextAlloc {
		m.FailNextAlloc = false
		return Buffer{}, fmt.Errorf("mock: injected failure: %w", ErrAllocation)
	}
	if n <= 0 {
		return Buffer{}, fmt.Errorf("mock: invalid size %d: %w", n, ErrAllocation)
	}
	ptr := m.next
	m.next++
	m.buffers[ptr] = make([]byte, n)
	return Buffer{Ptr: ptr, Len: n}, nil
}

// Free releases a fake allocation.
func (m *MockContext) Free(b Buffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.buffers[b.Ptr]; !ok {
		return fmt.Errorf("mock: free of unknown buffer %#x", b.Ptr)
	}
	delete(m.buffers, b.Ptr)
	return nil
}

// CopyToDevice copies host bytes into a fake allocation.
func (m *MockContext) CopyToDevice(dst Buffer, src []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNextCopy {
		m.FailNextCopy = false
		return fmt.Errorf("mock: injected failure: %w", ErrTransfer)
	}
	buf, ok := m.buffers[dst.Ptr]
	if !ok || len(src) > len(buf) {
		return fmt.Errorf("mock: bad copy of %d bytes to buffer %#x: %w", len(src), dst.Ptr, ErrTransfer)
	}
	copy(buf, src)
	return nil
}

// CopyFromDevice copies a fake allocation back into host bytes.
func (m *MockContext) CopyFromDevice(dst []byte, src Buffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNextCopy {
		m.FailNextCopy = false
		return fmt.Errorf("mock: injected failure: %w", ErrTransfer)
	}
	buf, ok := m.buffers[src.Ptr]
	if !ok || len(dst) > len(buf) {
		return fmt.Errorf("mock: bad copy of %d bytes from buffer %#x: %w", len(dst), src.Ptr, ErrTransfer)
	}
	copy(dst, buf)
	return nil
}

// Saxpy computes y := alpha*x + y over float32 buffers.
func (m *MockContext) Saxpy(n int, alpha float32, x, y Buffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	xb, okX := m.buffers[x.Ptr]
	yb, okY := m.buffers[y.Ptr]
	if !okX || !okY || n*4 > len(xb) || n*4 > len(yb) {
		return fmt.Errorf("mock: saxpy over %d elements: %w", n, ErrTransfer)
	}
	for i := 0; i < n; i++ {
		xv := math.Float32frombits(binary.LittleEndian.Uint32(xb[i*4:]))
		yv := math.Float32frombits(binary.LittleEndian.Uint32(yb[i*4:]))
		binary.LittleEndian.PutUint32(yb[i*4:], math.Float32bits(alpha*xv+yv))
	}
	return nil
}

// Daxpy computes y := alpha*x + y over float64 buffers.
func (m *MockContext) Daxpy(n int, alpha float64, x, y Buffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	xb, okX := m.buffers[x.Ptr]
	yb, okY := m.buffers[y.Ptr]
	if !okX || !okY || n*8 > len(xb) || n*8 > len(yb) {
		return fmt.Errorf("mock: daxpy over %d elements: %w", n, ErrTransfer)
	}
	for i := 0; i < n; i++ {
		xv := math.Float64frombits(binary.LittleEndian.Uint64(xb[i*8:]))
		yv := math.Float64frombits(binary.LittleEndian.Uint64(yb[i*8:]))
		binary.LittleEndian.PutUint64(yb[i*8:], math.Float64bits(alpha*xv+yv))
	}
	return nil
}
