package cif2pisa

import (
	"fmt"
	"github.com/searchlabs/cif2pisa/cif"
)

// deltaDecode rebuilds absolute document ids from gap-encoded postings.
// The running base starts at 0, so the first gap is the absolute id itself.
// Decoded ids must come out strictly increasing, anything else means the
// record contradicts the sorted-postings contract of the format.
func deltaDecode(postings []cif.Posting) (docs, tfs []uint32, err error) {
	docs = make([]uint32, len(postings))
	tfs = make([]uint32, len(postings))

	prev := uint32(0)
	for i, p := range postings {
		abs := prev + p.Docid
		if i > 0 && abs <= prev {
			return nil, nil, fmt.Errorf("%w: docid %d after %d is not increasing", cif.ErrMalformedRecord, abs, prev)
		}
		docs[i] = abs
		tfs[i] = p.Tf
		prev = abs
	}
	return docs, tfs, nil
}
