package backend

import (
	"bytes"
	"sync"
)

// Memory is an in-memory backend of fixed size for headless rendering and
// tests.
type Memory struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	width  int
	height int
	events chan ResizeEvent
	writes int
}

// NewMemory creates a memory backend of the given size.
func NewMemory(width, height int) *Memory {
	return &Memory{
		width:  width,
		height: height,
		events: make(chan ResizeEvent, 1),
	}
}

// Init does nothing.
func (m *Memory) Init() error { return nil }

// Shutdown does nothing.
func (m *Memory) Shutdown() {}

// Write appends p to the buffer.
func (m *Memory) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	return m.buf.Write(p)
}

// Size returns the configured size.
func (m *Memory) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// Resize changes the size and emits a resize event.
func (m *Memory) Resize(width, height int) {
	m.mu.Lock()
	m.width, m.height = width, height
	m.mu.Unlock()
	sendLatest(m.events, ResizeEvent{Width: width, Height: height})
}

// Resizes returns the resize event channel.
func (m *Memory) Resizes() <-chan ResizeEvent {
	return m.events
}

// Interactive reports true so callers exercise the diff path.
func (m *Memory) Interactive() bool { return true }

// String returns everything written so far.
func (m *Memory) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.String()
}

// Writes returns the number of Write calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Reset discards the written output.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf.Reset()
	m.writes = 0
}
