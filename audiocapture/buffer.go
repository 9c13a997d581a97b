package audiocapture

import "sync"

// Buffer is an append-only sample buffer for one recording session.
// The capture callback appends while Stop takes the accumulated samples,
// so access is guarded.
type Buffer struct {
	mu      sync.Mutex
	samples []float32
}

// NewBuffer creates an empty session buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append copies samples into the buffer.
func (b *Buffer) Append(samples []float32) {
	b.mu.Lock()
	b.samples = append(b.samples, samples...)
	b.mu.Unlock()
}

// Take moves the accumulated samples out of the buffer, leaving it empty.
func (b *Buffer) Take() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	samples := b.samples
	b.samples = nil
	return samples
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}
