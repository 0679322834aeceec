package cache

import "io"

// Reader streams bytes through a cache, from a start address up to a limit
// address (exclusive). It lets an instruction decoder fetch through the
// cache while still seeing io.EOF at the end of the image.
type Reader struct {
	cache *Cache
	addr  uint64
	limit uint64
}

// NewReader creates a reader fetching [start, limit) through c.
func NewReader(c *Cache, start, limit uint64) *Reader {
	return &Reader{cache: c, addr: start, limit: limit}
}

// Addr returns the address of the next byte to be read.
func (r *Reader) Addr() uint64 {
	return r.addr
}

// Read implements io.Reader. A single call never crosses a block boundary.
func (r *Reader) Read(b []byte) (int, error) {
	if r.addr >= r.limit {
		return 0, io.EOF
	}
	if len(b) == 0 {
		return 0, nil
	}

	blockSize := uint64(r.cache.config.BlockSize)
	n := blockSize - r.addr%blockSize
	if n > r.limit-r.addr {
		n = r.limit - r.addr
	}
	if n > uint64(len(b)) {
		n = uint64(len(b))
	}

	result := r.cache.Read(r.addr, int(n))
	copy(b, result.Data)
	r.addr += n

	return int(n), nil
}
