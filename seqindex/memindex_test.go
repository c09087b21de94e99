package seqindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemIndexAddRejectedAfterCompute(t *testing.T) {
	idx := NewMemIndex()
	require.True(t, idx.AddSequence("ACGTACGT", 0))
	require.True(t, idx.ComputeIndex())
	require.False(t, idx.AddSequence("TTTT", 1))
}

func TestMemIndexMatchSignatureIngroupAndOutgroup(t *testing.T) {
	idx := NewMemIndex()
	idx.AddSequence("ACGTACGT", 0) // exact "ACGT" window
	idx.AddSequence("ACGAACGA", 1) // one mismatch vs "ACGT" at offset 0
	idx.AddSequence("TTTTTTTT", 2) // no close window
	idx.ComputeIndex()

	matched, og, ok := idx.MatchSignature("ACGT", 0, 1, false)
	require.True(t, ok)
	require.Equal(t, []uint32{0}, matched.Raw())
	require.Equal(t, uint32(1), og)
}

func TestMemIndexFetchSignatureStreamsEnumerator(t *testing.T) {
	idx := NewMemIndex()
	idx.ComputeIndex()
	require.True(t, idx.InitFetchSignature(1, false))

	var got []string
	for {
		s, ok := idx.FetchNextSignature()
		if !ok {
			break
		}
		got = append(got, s)
	}
	require.Equal(t, []string{"A", "C", "G", "T"}, got)
}
