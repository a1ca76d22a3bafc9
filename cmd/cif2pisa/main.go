package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/searchlabs/cif2pisa"
)

func main() {
	postings := flag.String("postings", "", "path to the common index format postings export")
	doclen := flag.String("doclen", "", "path to the document lengths file (docid and length per line)")
	output := flag.String("output", "", "output basename for the collection artifacts")
	lexiconFST := flag.Bool("lexicon-fst", false, "also build the FST term lexicon")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *postings == "" || *doclen == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "usage: cif2pisa --postings <path> --doclen <path> --output <basename>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	err := cif2pisa.Convert(*postings, *doclen, *output, cif2pisa.Options{BuildLexiconFST: *lexiconFST})
	if err != nil {
		slog.Error("conversion failed", "error", err)
		os.Exit(1)
	}
}
