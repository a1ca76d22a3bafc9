package cif2pisa

import (
	"errors"
	"fmt"
	"github.com/ronanh/intcomp"
	"github.com/searchlabs/cif2pisa/cif"
)

// ErrPostingCountMismatch reports a record whose declared df does not match
// the number of postings it carries. The input contradicts its own header,
// so the whole run aborts.
var ErrPostingCountMismatch = errors.New("postings count does not match the declared df")

// run keeps one term's decoded postings compressed in memory.
// Both sequences are unpacked again during the write pass.
type run struct {
	docs []uint32 // compressed absolute ids
	tfs  []uint32 // compressed frequencies
	n    int
}

// Index accumulates decoded postings lists keyed by term id,
// next to the document size table and the term strings.
// Term ids may be sparse in storage, the writer treats the
// [0, termCount) range as dense and substitutes empty lists.
type Index struct {
	runs  map[uint32]run
	terms map[uint32]string
	sizes *DocSizes

	maxID    uint32
	hasTerms bool
}

func NewIndex(sizes *DocSizes) *Index {
	return &Index{
		runs:  make(map[uint32]run),
		terms: make(map[uint32]string),
		sizes: sizes,
	}
}

// Add validates the record against its declared df, delta-decodes the
// postings and stores them under termID.
func (idx *Index) Add(term string, termID uint32, declaredDF uint64, postings []cif.Posting) error {
	if declaredDF != uint64(len(postings)) {
		return fmt.Errorf("%w: term %q: df=%d, postings=%d", ErrPostingCountMismatch, term, declaredDF, len(postings))
	}

	docs, tfs, err := deltaDecode(postings)
	if err != nil {
		return fmt.Errorf("term %q: %w", term, err)
	}

	r := run{n: len(postings)}
	if r.n > 0 {
		r.docs = intcomp.CompressUint32(docs, nil)
		r.tfs = intcomp.CompressUint32(tfs, nil)
	}
	idx.runs[termID] = r
	idx.terms[termID] = term

	if !idx.hasTerms || termID > idx.maxID {
		idx.maxID = termID
	}
	idx.hasTerms = true
	return nil
}

// Postings returns the decoded run for the term id,
// empty sequences when nothing was stored under it.
func (idx *Index) Postings(termID uint32) (docs, tfs []uint32) {
	r, ok := idx.runs[termID]
	if !ok || r.n == 0 {
		return []uint32{}, []uint32{}
	}
	return intcomp.UncompressUint32(r.docs, nil), intcomp.UncompressUint32(r.tfs, nil)
}

// Term returns the term string stored under the id.
func (idx *Index) Term(termID uint32) (string, bool) {
	t, ok := idx.terms[termID]
	return t, ok
}

// TermCount is the dense id range implied by the highest stored id.
func (idx *Index) TermCount() uint32 {
	if !idx.hasTerms {
		return 0
	}
	return idx.maxID + 1
}

// NumDocs is the cardinality of the document size table.
func (idx *Index) NumDocs() uint32 { return idx.sizes.Count() }

// Lengths lists every document length ordered by ascending docid.
func (idx *Index) Lengths() []uint32 { return idx.sizes.Lengths() }
