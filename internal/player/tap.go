package player

import (
	"encoding/binary"
	"sync"
)

// Tap is a thread-safe ring of int16 PCM samples fed from the playback path.
// The analyzer pulls the most recent window from it each tick; writes never
// block and silently overwrite the oldest samples, so a slow consumer can
// not stall playback.
type Tap struct {
	samples []int16
	size    int
	w       int // next write index
	fill    int
	mu      sync.Mutex
}

// NewTap creates a tap holding the given number of samples.
func NewTap(size int) *Tap {
	if size < 1 {
		size = 1
	}
	return &Tap{samples: make([]int16, size), size: size}
}

// Write decodes little-endian 16-bit PCM bytes into the ring. A trailing odd
// byte is dropped.
func (t *Tap) Write(p []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(p) / 2
	for i := 0; i < n; i++ {
		t.samples[t.w] = int16(binary.LittleEndian.Uint16(p[i*2:]))
		t.w = (t.w + 1) % t.size
	}
	t.fill += n
	if t.fill > t.size {
		t.fill = t.size
	}
}

// RecentInto copies the most recent len(dst) samples into dst, oldest first.
// When fewer samples have been written the leading entries are zero. Returns
// the number of real samples copied.
func (t *Tap) RecentInto(dst []int16) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(dst)
	if n > t.fill {
		n = t.fill
	}
	pad := len(dst) - n
	for i := 0; i < pad; i++ {
		dst[i] = 0
	}
	start := (t.w - n + t.size) % t.size
	for i := 0; i < n; i++ {
		dst[pad+i] = t.samples[(start+i)%t.size]
	}
	return n
}

// Clear empties the ring; used when a new track starts.
func (t *Tap) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w = 0
	t.fill = 0
}
