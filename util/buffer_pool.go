package util

import "sync"

// BufferPool hands out fixed-size byte buffers for datagram reads, avoiding
// a fresh allocation per packet in receive loops.
type BufferPool struct {
	bufferSize int

	buffers [][]byte
	mu      sync.Mutex
}

func NewBufferPool(bufferSize, prealloc int) *BufferPool {
	if bufferSize <= 0 {
		panic("Buffer size must be greater than zero")
	}
	bp := &BufferPool{bufferSize: bufferSize}
	for i := 0; i < prealloc; i++ {
		bp.buffers = append(bp.buffers, make([]byte, bufferSize))
	}
	return bp
}

func (bp *BufferPool) Get() []byte {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if n := len(bp.buffers); n > 0 {
		b := bp.buffers[n-1]
		bp.buffers = bp.buffers[:n-1]
		return b
	}
	return make([]byte, bp.bufferSize)
}

func (bp *BufferPool) Put(b []byte) {
	if len(b) != bp.bufferSize || cap(b) != bp.bufferSize {
		panic("Trying to put buffer with invalid size into pool")
	}
	bp.mu.Lock()
	bp.buffers = append(bp.buffers, b)
	bp.mu.Unlock()
}
