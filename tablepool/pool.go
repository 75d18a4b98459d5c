package tablepool

import (
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; it carries internal
// state worth reusing across many small row-blob compressions.
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

type entry struct {
	data            []byte
	uncompressedLen int
	raw             bool
}

// Handle addresses a blob spilled into a Pool.
type Handle uint64

// Pool is the backing store a very large table's rows can be spilled to
// instead of living fully decoded in memory. Every Get is idempotent: it
// decompresses a fresh copy and never mutates pool state, so the same
// handle may be read concurrently by clones of the same table.
type Pool struct {
	mu      sync.Mutex
	entries map[Handle]entry
	next    Handle
}

// NewPool returns an empty backing store.
func NewPool() *Pool {
	return &Pool{entries: make(map[Handle]entry)}
}

// Put compresses data and stores it, returning a handle for later Get calls.
func (p *Pool) Put(data []byte) (Handle, error) {
	compressed, raw, err := compressBlock(data)
	if err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	h := p.next
	p.next++
	p.entries[h] = entry{data: compressed, uncompressedLen: len(data), raw: raw}
	return h, nil
}

// Get decompresses and returns the blob stored under h.
func (p *Pool) Get(h Handle) ([]byte, bool, error) {
	p.mu.Lock()
	e, ok := p.entries[h]
	p.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	if e.raw {
		out := make([]byte, len(e.data))
		copy(out, e.data)
		return out, true, nil
	}

	out := make([]byte, e.uncompressedLen)
	n, err := lz4.UncompressBlock(e.data, out)
	if err != nil {
		return nil, true, err
	}
	return out[:n], true, nil
}

// Delete removes a blob from the store. It is a no-op for an unknown handle.
func (p *Pool) Delete(h Handle) {
	p.mu.Lock()
	delete(p.entries, h)
	p.mu.Unlock()
}

// compressBlock returns the LZ4-compressed form of data, or (data, true,
// nil) when lz4 reports the block as incompressible (its documented
// n==0 outcome).
func compressBlock(data []byte) ([]byte, bool, error) {
	if len(data) == 0 {
		return nil, false, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, false, err
	}
	if n == 0 {
		return data, true, nil
	}
	return dst[:n], false, nil
}
