// Package tablepool provides the optional large-table backing store
// referenced by ExtraData.Pool: row bytes for tables too large to keep
// fully decoded in memory are spilled here, LZ4-compressed, and addressed
// by handle. It also pools the scratch buffers the table engine uses while
// decoding and re-encoding rows, shaped for this package's row-oriented
// buffers rather than a generic byte slice pool.
package tablepool

import "sync"

const (
	rowBufferDefaultSize = 1024 * 4   // 4KiB, enough for most single rows
	rowBufferMaxRetained = 1024 * 256 // discard oversized buffers past this
)

// ByteBuffer is a reusable, growable byte slice.
type ByteBuffer struct {
	B []byte
}

func newByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

func (bb *ByteBuffer) Bytes() []byte { return bb.B }
func (bb *ByteBuffer) Reset()        { bb.B = bb.B[:0] }
func (bb *ByteBuffer) Len() int      { return len(bb.B) }

func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool pools ByteBuffers for row encode/decode scratch space.
type ByteBufferPool struct {
	pool sync.Pool
}

func NewByteBufferPool(defaultSize int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return newByteBuffer(defaultSize) },
		},
	}
}

func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if cap(bb.B) > rowBufferMaxRetained {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var rowBufferPool = NewByteBufferPool(rowBufferDefaultSize)

// GetRowBuffer retrieves a scratch buffer from the package-default pool.
func GetRowBuffer() *ByteBuffer { return rowBufferPool.Get() }

// PutRowBuffer returns a scratch buffer to the package-default pool.
func PutRowBuffer(bb *ByteBuffer) { rowBufferPool.Put(bb) }
