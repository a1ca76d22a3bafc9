package pisa

import (
	"encoding/binary"
	"errors"
	"fmt"
	go_iterators "github.com/lezhnev74/go-iterators"
	"golang.org/x/exp/mmap"
)

// ErrTruncatedCollection reports a sequence file that ends inside a record.
var ErrTruncatedCollection = errors.New("pisa: truncated collection file")

// Collection iterates the count-prefixed u32 records of one sequence file
// (.docs, .freqs or .sizes). It implements Iterator.
type Collection struct {
	mm  *mmap.ReaderAt
	off int64
}

// OpenCollection maps the sequence file into memory.
func OpenCollection(path string) (*Collection, error) {
	mm, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pisa: open %s: %w", path, err)
	}
	return &Collection{mm: mm}, nil
}

// Next returns the next record's element sequence.
func (c *Collection) Next() ([]uint32, error) {
	if c.off >= int64(c.mm.Len()) {
		return nil, go_iterators.EmptyIterator
	}

	var hdr [4]byte
	if _, err := c.mm.ReadAt(hdr[:], c.off); err != nil {
		return nil, fmt.Errorf("%w: record header at offset %d", ErrTruncatedCollection, c.off)
	}
	c.off += 4

	n := binary.LittleEndian.Uint32(hdr[:])
	values := make([]uint32, n)
	if n == 0 {
		return values, nil
	}

	raw := make([]byte, 4*int64(n))
	if _, err := c.mm.ReadAt(raw, c.off); err != nil {
		return nil, fmt.Errorf("%w: %d elements declared at offset %d", ErrTruncatedCollection, n, c.off)
	}
	c.off += int64(len(raw))

	for i := range values {
		values[i] = binary.LittleEndian.Uint32(raw[4*i:])
	}
	return values, nil
}

func (c *Collection) Close() error {
	if c.mm == nil {
		return nil
	}
	mm := c.mm
	c.mm = nil
	return mm.Close()
}
