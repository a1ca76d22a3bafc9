// Package cif reads and writes the length-delimited postings records of
// the common index format, a protobuf export of an inverted text index.
package cif

// Posting is one document occurrence inside a postings list.
// Docid carries the gap from the previous posting's absolute document id,
// the first posting's gap is the absolute id itself.
type Posting struct {
	Docid uint32
	Tf    uint32
}

// PostingsList is one length-delimited record of the common index format:
// a term, its declared document and collection frequencies,
// and the gap-encoded postings.
type PostingsList struct {
	Term     string
	Df       uint64
	Cf       uint64
	Postings []Posting
}
