// Package loader provides access to Y86-64 object files.
//
// Object files are flat images: byte N of the file lives at address N. A
// caller either streams the file directly from a starting offset (OpenAt) or
// loads the whole image into simulated memory (Load).
package loader

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/sarchlab/akita/v4/mem/mem"
)

// ParseOffset parses a starting offset given on the command line. Decimal,
// 0x-prefixed hexadecimal and 0-prefixed octal forms are accepted.
func ParseOffset(s string) (uint64, error) {
	offset, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	if offset > math.MaxInt64 {
		return 0, fmt.Errorf("invalid offset %q: out of range", s)
	}
	return offset, nil
}

// OpenAt opens the object file at path and positions it at offset.
func OpenAt(path string, offset uint64) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open object file: %w", err)
	}

	if _, err := f.Seek(int64(offset), io.SeekStart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to seek to 0x%X: %w", offset, err)
	}

	return f, nil
}

// Program is an object file image loaded into memory.
type Program struct {
	// Path is the file the image was loaded from.
	Path string

	size    uint64
	storage *mem.Storage
}

// Load reads the whole object file at path into a memory image.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read object file: %w", err)
	}

	return FromBytes(path, data)
}

// FromBytes builds a memory image holding data at address 0.
func FromBytes(path string, data []byte) (*Program, error) {
	size := uint64(len(data))

	// Storage cannot be empty; an empty image still reads as zero bytes.
	capacity := size
	if capacity == 0 {
		capacity = 1
	}

	prog := &Program{
		Path:    path,
		size:    size,
		storage: mem.NewStorage(capacity),
	}

	if size > 0 {
		if err := prog.storage.Write(0, data); err != nil {
			return nil, fmt.Errorf("failed to store object image: %w", err)
		}
	}

	return prog, nil
}

// Size returns the image size in bytes.
func (p *Program) Size() uint64 {
	return p.size
}

// Read returns size bytes starting at addr. Bytes beyond the end of the
// image read as zero.
func (p *Program) Read(addr uint64, size int) []byte {
	data := make([]byte, size)
	if addr >= p.size {
		return data
	}

	n := uint64(size)
	if n > p.size-addr {
		n = p.size - addr
	}

	stored, err := p.storage.Read(addr, n)
	if err != nil {
		return data
	}
	copy(data, stored)

	return data
}

// NewReader returns a reader over the image starting at offset. It reports
// io.EOF at the end of the image.
func (p *Program) NewReader(offset uint64) io.Reader {
	return &imageReader{prog: p, addr: offset}
}

type imageReader struct {
	prog *Program
	addr uint64
}

func (r *imageReader) Read(b []byte) (int, error) {
	if r.addr >= r.prog.size {
		return 0, io.EOF
	}
	if len(b) == 0 {
		return 0, nil
	}

	n := uint64(len(b))
	if n > r.prog.size-r.addr {
		n = r.prog.size - r.addr
	}

	data, err := r.prog.storage.Read(r.addr, n)
	if err != nil {
		return 0, fmt.Errorf("failed to read image at 0x%X: %w", r.addr, err)
	}

	copy(b, data)
	r.addr += n

	return int(n), nil
}
