package cif

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	go_iterators "github.com/lezhnev74/go-iterators"
	"golang.org/x/exp/mmap"
	"io"
)

var (
	// ErrTruncatedStream reports a stream that ended in the middle of a record.
	ErrTruncatedStream = errors.New("cif: truncated stream")
	// ErrMalformedRecord reports framed bytes that do not decode into a PostingsList.
	ErrMalformedRecord = errors.New("cif: malformed record")
)

// maxRecordLen matches the protobuf coded-stream default message limit.
const maxRecordLen = 64 << 20

// Reader streams PostingsList records out of a common index format export.
// It implements Iterator and consumes the source in a single forward pass.
// A clean end of input at a record boundary yields EmptyIterator.
type Reader struct {
	src *bufio.Reader
	mm  *mmap.ReaderAt
	buf []byte
}

// NewReader reads framed records from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: bufio.NewReaderSize(r, 1<<16)}
}

// OpenFile maps the export file into memory and reads records from the mapping.
func OpenFile(path string) (*Reader, error) {
	mm, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cif: open %s: %w", path, err)
	}
	r := NewReader(io.NewSectionReader(mm, 0, int64(mm.Len())))
	r.mm = mm
	return r, nil
}

// Next decodes the next framed record.
func (r *Reader) Next() (*PostingsList, error) {
	frameLen, err := binary.ReadUvarint(r.src)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, go_iterators.EmptyIterator
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: record length cut off", ErrTruncatedStream)
		}
		return nil, fmt.Errorf("%w: record length: %v", ErrMalformedRecord, err)
	}
	if frameLen > maxRecordLen {
		return nil, fmt.Errorf("%w: record of %d bytes exceeds the %d limit", ErrMalformedRecord, frameLen, maxRecordLen)
	}

	if uint64(cap(r.buf)) < frameLen {
		r.buf = make([]byte, frameLen)
	}
	frame := r.buf[:frameLen]
	if _, err := io.ReadFull(r.src, frame); err != nil {
		return nil, fmt.Errorf("%w: %d bytes declared, stream ended early", ErrTruncatedStream, frameLen)
	}

	pl := &PostingsList{}
	if err := pl.unmarshal(frame); err != nil {
		return nil, err
	}
	return pl, nil
}

func (r *Reader) Close() error {
	if r.mm == nil {
		return nil
	}
	mm := r.mm
	r.mm = nil
	return mm.Close()
}
