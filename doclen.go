package cif2pisa

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/RoaringBitmap/roaring"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedLengthLine reports an unparsable line in the document lengths file.
var ErrMalformedLengthLine = errors.New("malformed document length line")

// DocSizes maps document ids to document lengths.
// Ids in the source file may come in any order and need not be contiguous.
// Duplicate ids keep the last value seen.
type DocSizes struct {
	lengths map[uint32]uint32
	ids     *roaring.Bitmap
}

func NewDocSizes() *DocSizes {
	return &DocSizes{
		lengths: make(map[uint32]uint32),
		ids:     roaring.New(),
	}
}

// LoadDocSizes reads the whole two-column lengths file.
func LoadDocSizes(path string) (*DocSizes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("doclen: open %s: %w", path, err)
	}
	defer f.Close()

	ds := NewDocSizes()
	if err := ds.Load(f); err != nil {
		return nil, fmt.Errorf("doclen: %s: %w", path, err)
	}
	return ds, nil
}

// Load parses whitespace-separated (docid, length) pairs, one per line,
// until the source is exhausted. Any ill-formed line aborts the load.
func (ds *DocSizes) Load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			return fmt.Errorf("%w: line %d: %q", ErrMalformedLengthLine, lineNo, sc.Text())
		}
		docid, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fmt.Errorf("%w: line %d: docid: %v", ErrMalformedLengthLine, lineNo, err)
		}
		length, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("%w: line %d: length: %v", ErrMalformedLengthLine, lineNo, err)
		}
		ds.lengths[uint32(docid)] = uint32(length)
		ds.ids.Add(uint32(docid))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("doclen: read: %w", err)
	}
	return nil
}

// Get returns the stored length for the docid.
func (ds *DocSizes) Get(docid uint32) (uint32, bool) {
	l, ok := ds.lengths[docid]
	return l, ok
}

// Count is the number of distinct documents in the table.
func (ds *DocSizes) Count() uint32 {
	return uint32(ds.ids.GetCardinality())
}

// Lengths flattens the table to lengths ordered by ascending docid.
func (ds *DocSizes) Lengths() []uint32 {
	out := make([]uint32, 0, ds.ids.GetCardinality())
	it := ds.ids.Iterator()
	for it.HasNext() {
		out = append(out, ds.lengths[it.Next()])
	}
	return out
}
