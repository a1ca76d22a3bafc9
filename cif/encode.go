package cif

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// AppendPostingsList appends one framed record in the length-delimited
// wire layout the Reader consumes: a varint byte length followed by the
// serialized PostingsList message.
func AppendPostingsList(b []byte, pl *PostingsList) []byte {
	msg := appendPostingsListMessage(nil, pl)
	b = protowire.AppendVarint(b, uint64(len(msg)))
	return append(b, msg...)
}

func appendPostingsListMessage(b []byte, pl *PostingsList) []byte {
	b = protowire.AppendTag(b, fieldTerm, protowire.BytesType)
	b = protowire.AppendString(b, pl.Term)
	b = protowire.AppendTag(b, fieldDf, protowire.VarintType)
	b = protowire.AppendVarint(b, pl.Df)
	b = protowire.AppendTag(b, fieldCf, protowire.VarintType)
	b = protowire.AppendVarint(b, pl.Cf)
	for _, p := range pl.Postings {
		b = protowire.AppendTag(b, fieldPostings, protowire.BytesType)
		b = protowire.AppendBytes(b, appendPostingMessage(nil, p))
	}
	return b
}

func appendPostingMessage(b []byte, p Posting) []byte {
	b = protowire.AppendTag(b, fieldDocid, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Docid))
	b = protowire.AppendTag(b, fieldTf, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Tf))
	return b
}
