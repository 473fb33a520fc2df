// Package tjbuf is a growable byte sink for the encoder, with amortized
// O(1) append and a pooling discipline adapted from agilira-iris's
// internal/bufferpool (a *bytes.Buffer pool for zero-allocation logging):
// buffers are recycled across Encode calls, and one grown past a cap is
// dropped instead of retained, to bound pool memory under bursty input.
package tjbuf

import "sync"

const (
	// initialCapacity is the doubling floor (spec §4.1).
	initialCapacity = 64

	// maxPooledCapacity is the retention ceiling; a buffer that grew past
	// this during one Encode call is not returned to the pool.
	maxPooledCapacity = 1 << 20
)

var (
	getCount, putCount, allocCount, dropCount int64
	mu                                        sync.Mutex
)

var pool = sync.Pool{
	New: func() any {
		mu.Lock()
		allocCount++
		mu.Unlock()
		b := &Buffer{data: make([]byte, 0, initialCapacity)}
		return b
	},
}

// Buffer is a contiguous byte sink owned by one Encode call. The slice
// returned by Bytes is backed by an array one byte longer than its length
// whose last byte is zero, satisfying consumers that read the result as a
// C string; that sentinel is never included in the reported length. The
// Buffer's own backing array is not zeroed past its length.
type Buffer struct {
	data []byte
}

// Get returns a clean Buffer from the pool.
func Get() *Buffer {
	mu.Lock()
	getCount++
	mu.Unlock()
	b := pool.Get().(*Buffer)
	b.data = b.data[:0]
	return b
}

// Put returns b to the pool, dropping its backing array if it grew past
// maxPooledCapacity.
func Put(b *Buffer) {
	if b == nil {
		return
	}
	mu.Lock()
	putCount++
	mu.Unlock()

	if cap(b.data) > maxPooledCapacity {
		mu.Lock()
		dropCount++
		mu.Unlock()
		b.data = make([]byte, 0, initialCapacity)
	} else {
		b.data = b.data[:0]
	}
	pool.Put(b)
}

// Stats reports pool activity, mirroring bufferpool.Stats for test and
// benchmark introspection.
type Stats struct {
	Gets, Puts, Allocations, Drops int64
}

// GetStats returns a snapshot of pool activity counters.
func GetStats() Stats {
	mu.Lock()
	defer mu.Unlock()
	return Stats{Gets: getCount, Puts: putCount, Allocations: allocCount, Drops: dropCount}
}

// ResetStats zeroes the pool activity counters. Test-only.
func ResetStats() {
	mu.Lock()
	defer mu.Unlock()
	getCount, putCount, allocCount, dropCount = 0, 0, 0, 0
}

// Reserve guarantees at least n bytes of spare tail capacity, growing by
// doubling with a minimum increment of n (spec §4.1).
func (b *Buffer) Reserve(n int) {
	if cap(b.data)-len(b.data) >= n {
		return
	}
	need := len(b.data) + n
	newCap := cap(b.data)
	if newCap == 0 {
		newCap = initialCapacity
	}
	for newCap < need {
		newCap *= 2
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) {
	b.Reserve(1)
	b.data = append(b.data, c)
}

// WriteString appends s verbatim ("raw bytes in" per spec §4.1).
func (b *Buffer) WriteString(s string) {
	b.Reserve(len(s))
	b.data = append(b.data, s...)
}

// Write appends p verbatim.
func (b *Buffer) Write(p []byte) {
	b.Reserve(len(p))
	b.data = append(b.data, p...)
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the accumulated bytes, copied out so the pooled backing
// array can be safely reused after Put.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.data)+1)
	copy(out, b.data)
	// out[len(b.data)] stays zero: the NUL sentinel, excluded from the
	// returned slice's reported length.
	return out[:len(b.data)]
}
