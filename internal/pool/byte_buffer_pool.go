package pool

import "sync"

// BlobBufferDefaultSize is the default size of the ByteBuffer obtained from the pool.
const (
	BlobBufferDefaultSize  = 1024 * 16  // 16KiB
	BlobBufferMaxThreshold = 1024 * 128 // 128KiB
)

// ByteBuffer is a growable byte buffer backing one rendered frame's text
// (package render): every call to Format/DisplayFrame checks one out,
// appends through MustWrite, and reads the result back via Bytes.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data to the buffer, growing it via append as needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int // Optional maximum size threshold for buffers
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

// blobDefaultPool backs every rendered frame's text buffer. This module
// decodes and renders one frame at a time, so there is no second,
// larger-scale blob tier the way the teacher's blob/blob-set split had; one
// pool sized for a typical frame's text is all render's usage needs.
var blobDefaultPool = NewByteBufferPool(BlobBufferDefaultSize, BlobBufferMaxThreshold)

// GetBlobBuffer retrieves a ByteBuffer from the default pool.
func GetBlobBuffer() *ByteBuffer {
	return blobDefaultPool.Get()
}

// PutBlobBuffer returns a ByteBuffer to the default pool.
func PutBlobBuffer(bb *ByteBuffer) {
	blobDefaultPool.Put(bb)
}
