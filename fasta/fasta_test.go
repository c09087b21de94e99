package fasta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMultiRecord(t *testing.T) {
	in := ">seqA description here\nACGT\nACGT\n>seqB\nTTTT\n"
	recs, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "seqA", recs[0].Name)
	require.Equal(t, "ACGTACGT", recs[0].Seq)
	require.Equal(t, "seqB", recs[1].Name)
	require.Equal(t, "TTTT", recs[1].Seq)
}

func TestParseRejectsDataBeforeHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("ACGT\n>seqA\nACGT\n"))
	require.Error(t, err)
}

func TestParseRejectsEmptyName(t *testing.T) {
	_, err := Parse(strings.NewReader(">\nACGT\n"))
	require.Error(t, err)
}
