// Package pisa writes and reads the uncompressed binary collection layout:
// parallel .docs/.freqs/.sizes sequence files plus a plain-text lexicon.
// Each binary record is a 4-byte little-endian element count followed by
// that many 4-byte little-endian elements.
package pisa

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrOutputOpen reports a destination path that cannot be opened for writing.
var ErrOutputOpen = errors.New("pisa: cannot open output")

// Artifact suffixes appended to the output basename.
const (
	DocsSuffix    = ".docs"
	FreqsSuffix   = ".freqs"
	SizesSuffix   = ".sizes"
	LexiconSuffix = ".lexicon.plain"
	TermLexSuffix = ".termlex"
)

// Source is the fully accumulated index the writer serializes.
type Source interface {
	// Postings returns the ascending docid sequence and the parallel
	// frequency sequence for the term id, both empty when absent.
	Postings(termID uint32) (docs, tfs []uint32)
	// Term returns the term string stored under the id.
	Term(termID uint32) (string, bool)
	// NumDocs is the cardinality of the document size table.
	NumDocs() uint32
	// Lengths lists document lengths ordered by ascending docid.
	Lengths() []uint32
}

// EncodeU32Sequence writes one count-prefixed little-endian u32 record.
func EncodeU32Sequence(w io.Writer, values []uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(len(values)))
	if _, err := w.Write(b[:]); err != nil {
		return err
	}
	for _, v := range values {
		binary.LittleEndian.PutUint32(b[:], v)
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// Write emits the four collection artifacts in one deterministic pass.
// The term id range [0, termCount) is walked in ascending order, ids with
// nothing stored produce empty records and empty lexicon lines.
// A failed write leaves whatever bytes were flushed on disk.
func Write(basename string, src Source, termCount uint32) error {
	docsF, err := os.Create(basename + DocsSuffix)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputOpen, basename+DocsSuffix, err)
	}
	defer docsF.Close()
	freqsF, err := os.Create(basename + FreqsSuffix)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputOpen, basename+FreqsSuffix, err)
	}
	defer freqsF.Close()
	sizesF, err := os.Create(basename + SizesSuffix)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputOpen, basename+SizesSuffix, err)
	}
	defer sizesF.Close()
	lexF, err := os.Create(basename + LexiconSuffix)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputOpen, basename+LexiconSuffix, err)
	}
	defer lexF.Close()

	docs := bufio.NewWriter(docsF)
	freqs := bufio.NewWriter(freqsF)
	lex := bufio.NewWriter(lexF)

	// The leading .docs record carries the document count,
	// downstream readers rely on it as a pseudo postings list.
	if err := EncodeU32Sequence(docs, []uint32{src.NumDocs()}); err != nil {
		return fmt.Errorf("pisa: docs header: %w", err)
	}

	for id := uint32(0); id < termCount; id++ {
		d, f := src.Postings(id)
		if err := EncodeU32Sequence(docs, d); err != nil {
			return fmt.Errorf("pisa: docs record %d: %w", id, err)
		}
		if err := EncodeU32Sequence(freqs, f); err != nil {
			return fmt.Errorf("pisa: freqs record %d: %w", id, err)
		}
		term, _ := src.Term(id)
		if _, err := lex.WriteString(term); err != nil {
			return fmt.Errorf("pisa: lexicon line %d: %w", id, err)
		}
		if err := lex.WriteByte('\n'); err != nil {
			return fmt.Errorf("pisa: lexicon line %d: %w", id, err)
		}
	}

	sizes := bufio.NewWriter(sizesF)
	if err := EncodeU32Sequence(sizes, src.Lengths()); err != nil {
		return fmt.Errorf("pisa: sizes record: %w", err)
	}

	for _, w := range []*bufio.Writer{docs, freqs, sizes, lex} {
		if err := w.Flush(); err != nil {
			return fmt.Errorf("pisa: flush: %w", err)
		}
	}
	return nil
}
