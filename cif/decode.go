package cif

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the common index format messages.
const (
	fieldTerm     = protowire.Number(1)
	fieldDf       = protowire.Number(2)
	fieldCf       = protowire.Number(3)
	fieldPostings = protowire.Number(4)

	fieldDocid = protowire.Number(1)
	fieldTf    = protowire.Number(2)
)

// unmarshal decodes one framed PostingsList message.
// The schema is small enough to walk the wire format directly,
// unknown fields are skipped.
func (pl *PostingsList) unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: field tag: %v", ErrMalformedRecord, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldTerm && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return fmt.Errorf("%w: term: %v", ErrMalformedRecord, protowire.ParseError(n))
			}
			pl.Term = v
			b = b[n:]
		case num == fieldDf && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: df: %v", ErrMalformedRecord, protowire.ParseError(n))
			}
			pl.Df = v
			b = b[n:]
		case num == fieldCf && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: cf: %v", ErrMalformedRecord, protowire.ParseError(n))
			}
			pl.Cf = v
			b = b[n:]
		case num == fieldPostings && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("%w: posting: %v", ErrMalformedRecord, protowire.ParseError(n))
			}
			var p Posting
			if err := p.unmarshal(v); err != nil {
				return err
			}
			pl.Postings = append(pl.Postings, p)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %v", ErrMalformedRecord, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return nil
}

func (p *Posting) unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: posting tag: %v", ErrMalformedRecord, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldDocid && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: docid: %v", ErrMalformedRecord, protowire.ParseError(n))
			}
			if v > math.MaxUint32 {
				return fmt.Errorf("%w: docid gap %d overflows uint32", ErrMalformedRecord, v)
			}
			p.Docid = uint32(v)
			b = b[n:]
		case num == fieldTf && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: tf: %v", ErrMalformedRecord, protowire.ParseError(n))
			}
			if v > math.MaxUint32 {
				return fmt.Errorf("%w: tf %d overflows uint32", ErrMalformedRecord, v)
			}
			p.Tf = uint32(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: posting field %d: %v", ErrMalformedRecord, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return nil
}
