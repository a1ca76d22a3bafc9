package cif2pisa

import (
	"encoding/binary"
	"github.com/blevesearch/vellum"
	"github.com/searchlabs/cif2pisa/cif"
	"github.com/searchlabs/cif2pisa/pisa"
	"github.com/stretchr/testify/require"
	"os"
	"path"
	"testing"
)

func writeInputs(t *testing.T, dir string, lists []*cif.PostingsList, doclen string) (postingsPath, doclenPath string) {
	var stream []byte
	for _, pl := range lists {
		stream = cif.AppendPostingsList(stream, pl)
	}
	postingsPath = path.Join(dir, "postings.cif")
	require.NoError(t, os.WriteFile(postingsPath, stream, os.ModePerm))

	doclenPath = path.Join(dir, "doclen.txt")
	require.NoError(t, os.WriteFile(doclenPath, []byte(doclen), os.ModePerm))
	return postingsPath, doclenPath
}

func u32le(values ...uint32) []byte {
	b := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(b[4*i:], v)
	}
	return b
}

func readFile(t *testing.T, fpath string) []byte {
	b, err := os.ReadFile(fpath)
	require.NoError(t, err)
	return b
}

func TestConvert(t *testing.T) {
	d, err := os.MkdirTemp("", "")
	require.NoError(t, err)
	defer os.RemoveAll(d)

	postingsPath, doclenPath := writeInputs(t, d,
		[]*cif.PostingsList{
			{Term: "cat", Df: 2, Cf: 3, Postings: []cif.Posting{{Docid: 5, Tf: 1}, {Docid: 3, Tf: 2}}},
		},
		"5\t10\n8\t20\n",
	)

	basename := path.Join(d, "inv")
	require.NoError(t, Convert(postingsPath, doclenPath, basename, Options{}))

	require.Equal(t, u32le(1, 2, 2, 5, 8), readFile(t, basename+pisa.DocsSuffix))
	require.Equal(t, u32le(2, 1, 2), readFile(t, basename+pisa.FreqsSuffix))
	require.Equal(t, u32le(2, 10, 20), readFile(t, basename+pisa.SizesSuffix))
	require.Equal(t, []byte("cat\n"), readFile(t, basename+pisa.LexiconSuffix))
}

func TestConvertIdempotent(t *testing.T) {
	d, err := os.MkdirTemp("", "")
	require.NoError(t, err)
	defer os.RemoveAll(d)

	postingsPath, doclenPath := writeInputs(t, d,
		[]*cif.PostingsList{
			{Term: "cat", Df: 2, Cf: 3, Postings: []cif.Posting{{Docid: 5, Tf: 1}, {Docid: 3, Tf: 2}}},
			{Term: "dog", Df: 1, Cf: 1, Postings: []cif.Posting{{Docid: 8, Tf: 4}}},
		},
		"5\t10\n8\t20\n",
	)

	basename := path.Join(d, "inv")
	require.NoError(t, Convert(postingsPath, doclenPath, basename, Options{}))
	first := map[string][]byte{}
	for _, suffix := range []string{pisa.DocsSuffix, pisa.FreqsSuffix, pisa.SizesSuffix, pisa.LexiconSuffix} {
		first[suffix] = readFile(t, basename+suffix)
	}

	require.NoError(t, Convert(postingsPath, doclenPath, basename, Options{}))
	for _, suffix := range []string{pisa.DocsSuffix, pisa.FreqsSuffix, pisa.SizesSuffix, pisa.LexiconSuffix} {
		require.Equal(t, first[suffix], readFile(t, basename+suffix), "artifact %s", suffix)
	}
}

func TestConvertCountMismatch(t *testing.T) {
	d, err := os.MkdirTemp("", "")
	require.NoError(t, err)
	defer os.RemoveAll(d)

	postingsPath, doclenPath := writeInputs(t, d,
		[]*cif.PostingsList{
			{Term: "cat", Df: 3, Cf: 3, Postings: []cif.Posting{{Docid: 5, Tf: 1}, {Docid: 3, Tf: 2}}},
		},
		"5\t10\n",
	)

	err = Convert(postingsPath, doclenPath, path.Join(d, "inv"), Options{})
	require.ErrorIs(t, err, ErrPostingCountMismatch)
}

func TestConvertEmptyStream(t *testing.T) {
	d, err := os.MkdirTemp("", "")
	require.NoError(t, err)
	defer os.RemoveAll(d)

	postingsPath, doclenPath := writeInputs(t, d, nil, "0\t4\n1\t5\n2\t6\n")

	basename := path.Join(d, "inv")
	require.NoError(t, Convert(postingsPath, doclenPath, basename, Options{}))

	require.Equal(t, u32le(1, 3), readFile(t, basename+pisa.DocsSuffix))
	require.Empty(t, readFile(t, basename+pisa.FreqsSuffix))
	require.Equal(t, u32le(3, 4, 5, 6), readFile(t, basename+pisa.SizesSuffix))
	require.Empty(t, readFile(t, basename+pisa.LexiconSuffix))
}

func TestConvertLexiconFST(t *testing.T) {
	d, err := os.MkdirTemp("", "")
	require.NoError(t, err)
	defer os.RemoveAll(d)

	postingsPath, doclenPath := writeInputs(t, d,
		[]*cif.PostingsList{
			{Term: "zebra", Df: 1, Cf: 1, Postings: []cif.Posting{{Docid: 1, Tf: 1}}},
			{Term: "cat", Df: 1, Cf: 1, Postings: []cif.Posting{{Docid: 2, Tf: 1}}},
		},
		"1\t10\n2\t20\n",
	)

	basename := path.Join(d, "inv")
	require.NoError(t, Convert(postingsPath, doclenPath, basename, Options{BuildLexiconFST: true}))

	fst, err := vellum.Open(basename + pisa.TermLexSuffix)
	require.NoError(t, err)
	defer fst.Close()

	v, ok, err := fst.Get([]byte("zebra"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(0), v)

	v, ok, err = fst.Get([]byte("cat"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(1), v)
}

func TestConvertRoundtrip(t *testing.T) {
	d, err := os.MkdirTemp("", "")
	require.NoError(t, err)
	defer os.RemoveAll(d)

	lists := []*cif.PostingsList{
		{Term: "a", Df: 3, Cf: 5, Postings: []cif.Posting{{Docid: 1, Tf: 2}, {Docid: 4, Tf: 1}, {Docid: 2, Tf: 2}}},
		{Term: "b", Df: 1, Cf: 9, Postings: []cif.Posting{{Docid: 7, Tf: 9}}},
	}
	postingsPath, doclenPath := writeInputs(t, d, lists, "1\t3\n5\t4\n7\t5\n")

	basename := path.Join(d, "inv")
	require.NoError(t, Convert(postingsPath, doclenPath, basename, Options{}))

	docsIt, err := pisa.OpenCollection(basename + pisa.DocsSuffix)
	require.NoError(t, err)
	defer docsIt.Close()
	freqsIt, err := pisa.OpenCollection(basename + pisa.FreqsSuffix)
	require.NoError(t, err)
	defer freqsIt.Close()

	header, err := docsIt.Next()
	require.NoError(t, err)
	require.Equal(t, []uint32{3}, header)

	for _, pl := range lists {
		docs, err := docsIt.Next()
		require.NoError(t, err)
		tfs, err := freqsIt.Next()
		require.NoError(t, err)
		require.Len(t, docs, len(pl.Postings))
		require.Len(t, tfs, len(pl.Postings))

		// re-derive the gaps and compare against the source record
		prev := uint32(0)
		for i, p := range pl.Postings {
			require.Equal(t, p.Docid, docs[i]-prev)
			require.Equal(t, p.Tf, tfs[i])
			require.Greater(t, docs[i], prev, "docs record must be strictly ascending")
			prev = docs[i]
		}
	}
}
