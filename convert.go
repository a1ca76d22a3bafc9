// Package cif2pisa converts a protocol-buffer encoded common index format
// export into the flat binary collection layout consumed by PISA-style
// search tooling. The conversion is a batch, all-or-nothing run: the whole
// input is accumulated in memory, then serialized in one deterministic pass.
package cif2pisa

import (
	"errors"
	"fmt"
	go_iterators "github.com/lezhnev74/go-iterators"
	"github.com/searchlabs/cif2pisa/cif"
	"github.com/searchlabs/cif2pisa/pisa"
	"log/slog"
)

const progressEvery = 100_000

// Options tweak the conversion outputs.
type Options struct {
	// BuildLexiconFST additionally writes <basename>.termlex,
	// an FST mapping term strings to term ids.
	BuildLexiconFST bool
}

// Convert reads the postings export and the document lengths file and
// writes the collection artifacts under outputBasename. Term ids are
// assigned in stream encounter order. Any error aborts the run, partial
// output may remain on disk.
func Convert(postingsPath, doclenPath, outputBasename string, opts Options) error {
	sizes, err := LoadDocSizes(doclenPath)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	slog.Info("document lengths loaded", "documents", sizes.Count())

	r, err := cif.OpenFile(postingsPath)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	defer r.Close()

	idx := NewIndex(sizes)
	termID := uint32(0)
	for {
		pl, err := r.Next()
		if errors.Is(err, go_iterators.EmptyIterator) {
			break
		}
		if err != nil {
			return fmt.Errorf("convert: record %d: %w", termID, err)
		}
		if err := idx.Add(pl.Term, termID, pl.Df, pl.Postings); err != nil {
			return fmt.Errorf("convert: record %d: %w", termID, err)
		}
		termID++
		if termID%progressEvery == 0 {
			slog.Info("postings lists processed", "count", termID)
		}
	}
	slog.Info("postings accumulated", "terms", termID)

	if err := pisa.Write(outputBasename, idx, termID); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if opts.BuildLexiconFST {
		if err := pisa.BuildLexicon(outputBasename+pisa.TermLexSuffix, idx, termID); err != nil {
			return fmt.Errorf("convert: %w", err)
		}
	}
	slog.Info("collection written", "basename", outputBasename)
	return nil
}
