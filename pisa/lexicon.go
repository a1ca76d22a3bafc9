package pisa

import (
	"fmt"
	"github.com/blevesearch/vellum"
	"os"
	"slices"
	"strings"
)

// BuildLexicon writes an FST file mapping term -> term id for ids in
// [0, termCount). The plain lexicon keeps the positional record, the FST
// answers term lookups, so ids with no stored term are simply skipped.
// Terms are sorted before insertion as vellum requires ascending keys.
func BuildLexicon(path string, src Source, termCount uint32) error {
	type entry struct {
		term string
		id   uint32
	}
	entries := make([]entry, 0, termCount)
	for id := uint32(0); id < termCount; id++ {
		term, ok := src.Term(id)
		if !ok {
			continue
		}
		entries = append(entries, entry{term, id})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.term, b.term)
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputOpen, path, err)
	}

	builder, err := vellum.New(f, nil)
	if err != nil {
		f.Close()
		return fmt.Errorf("pisa: lexicon: fst: %w", err)
	}
	for _, e := range entries {
		if err := builder.Insert([]byte(e.term), uint64(e.id)); err != nil {
			f.Close()
			return fmt.Errorf("pisa: lexicon: fst insert %q: %w", e.term, err)
		}
	}
	if err := builder.Close(); err != nil {
		f.Close()
		return fmt.Errorf("pisa: lexicon: fst close: %w", err)
	}
	return f.Close()
}
