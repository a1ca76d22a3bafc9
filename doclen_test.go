package cif2pisa

import (
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestDocSizesLoad(t *testing.T) {
	ds := NewDocSizes()
	require.NoError(t, ds.Load(strings.NewReader("5\t10\n8\t20\n")))

	require.Equal(t, uint32(2), ds.Count())
	require.Equal(t, []uint32{10, 20}, ds.Lengths())

	l, ok := ds.Get(8)
	require.True(t, ok)
	require.Equal(t, uint32(20), l)
}

func TestDocSizesLoadUnsortedAndSpaces(t *testing.T) {
	// row order in the source file does not matter, lengths come out by ascending docid
	ds := NewDocSizes()
	require.NoError(t, ds.Load(strings.NewReader("8 20\n2   7\n5\t10\n")))

	require.Equal(t, uint32(3), ds.Count())
	require.Equal(t, []uint32{7, 10, 20}, ds.Lengths())
}

func TestDocSizesLoadDuplicateLastWins(t *testing.T) {
	ds := NewDocSizes()
	require.NoError(t, ds.Load(strings.NewReader("5\t10\n5\t11\n")))

	require.Equal(t, uint32(1), ds.Count())
	require.Equal(t, []uint32{11}, ds.Lengths())
}

func TestDocSizesLoadMalformed(t *testing.T) {
	for _, input := range []string{
		"5\n",
		"5\t10\t3\n",
		"cat\t10\n",
		"5\tlong\n",
		"5\t10\n\n8\t20\n",
		"-1\t10\n",
	} {
		ds := NewDocSizes()
		err := ds.Load(strings.NewReader(input))
		require.ErrorIs(t, err, ErrMalformedLengthLine, "input %q", input)
	}
}

func TestDocSizesEmpty(t *testing.T) {
	ds := NewDocSizes()
	require.NoError(t, ds.Load(strings.NewReader("")))

	require.Equal(t, uint32(0), ds.Count())
	require.Empty(t, ds.Lengths())
}
