package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fourLeafTree = "((A,B),(C,D));"

// Deliberately short (4nt) so the §4.7 enumerator only has to walk 4^4
// candidates; production signature lengths (15-25nt) are infeasible to
// brute-force enumerate in a test.
const fourLeafSeqs = `>A
AAAA
>B
AAAA
>C
CCCC
>D
CCCC
`

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestOnepassEndToEnd exercises the onepass verb's whole pipeline
// (parse tree, parse sequences, enumerate+filter+match candidates,
// absorb into the CaSSiS tree, emit classic CSV) against the spec.md
// §8 Scenario A/B four-leaf fixture.
func TestOnepassEndToEnd(t *testing.T) {
	dir := t.TempDir()
	treePath := writeTemp(t, dir, "t.nwk", fourLeafTree)
	seqPath := writeTemp(t, dir, "seqs.fasta", fourLeafSeqs)
	outPath := filepath.Join(dir, "out.csv")

	onepassTree = treePath
	onepassSeqs = []string{seqPath}
	onepassMM = 0
	onepassDist = 0
	onepassLen = "4-4"
	onepassGC = "0-100"
	onepassTemp = "-1000-1000"
	onepassOG = 1
	onepassOut = "classic"
	onepassRC = false
	onepassWM = false
	onepassPar = 2
	onepassOutFile = outPath

	require.NoError(t, runOnepass())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "node,best_ingroup_coverage")
}

// fourLeafSeqsReversed names the exact same organisms/sequences as
// fourLeafSeqs but in the opposite FASTA record order, so that
// FASTA-record order and the tree's left-to-right leaf order disagree.
const fourLeafSeqsReversed = `>D
CCCC
>C
CCCC
>B
AAAA
>A
AAAA
`

// TestOnepassLeafOrderIndependentOfFASTAOrder guards against leaf ids
// being minted in FASTA-record order instead of the tree's
// left-to-right order (spec §4.5 "Construction"). Build must run
// before sequences are loaded so that tree leaves get the canonical
// left-to-right ids and the loaded sequences merely look those ids up
// by name; reversing the FASTA record order must not change a single
// result.
func TestOnepassLeafOrderIndependentOfFASTAOrder(t *testing.T) {
	runWithSeqs := func(t *testing.T, seqs string) string {
		t.Helper()
		dir := t.TempDir()
		treePath := writeTemp(t, dir, "t.nwk", fourLeafTree)
		seqPath := writeTemp(t, dir, "seqs.fasta", seqs)
		outPath := filepath.Join(dir, "out.csv")

		onepassTree = treePath
		onepassSeqs = []string{seqPath}
		onepassMM = 0
		onepassDist = 0
		onepassLen = "4-4"
		onepassGC = "0-100"
		onepassTemp = "-1000-1000"
		onepassOG = 1
		onepassOut = "classic"
		onepassRC = false
		onepassWM = false
		onepassPar = 1
		onepassOutFile = outPath

		require.NoError(t, runOnepass())
		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		return string(data)
	}

	forward := runWithSeqs(t, fourLeafSeqs)
	reversed := runWithSeqs(t, fourLeafSeqsReversed)
	require.Equal(t, forward, reversed)
}

// TestCreateThenProcess exercises the two-pass pipeline end to end:
// `create` builds a BGRT from sequences alone, `process` traverses it
// against a tree and emits results, and `info` reads back the BGRT's
// embedded parameters.
func TestCreateThenProcess(t *testing.T) {
	dir := t.TempDir()
	treePath := writeTemp(t, dir, "t.nwk", fourLeafTree)
	seqPath := writeTemp(t, dir, "seqs.fasta", fourLeafSeqs)
	bgrtPath := filepath.Join(dir, "out.bgrt")
	resultPath := filepath.Join(dir, "result.csv")

	createBGRT = bgrtPath
	createSeqs = []string{seqPath}
	createMM = 0
	createDist = 0
	createLen = "4-4"
	createGC = "0-100"
	createTemp = "-1000-1000"
	createComment = "test fixture"
	require.NoError(t, runCreate())

	infoBGRT = bgrtPath
	require.NoError(t, runInfo())

	processBGRT = bgrtPath
	processTree = treePath
	processOG = 1
	processOut = "text"
	processPar = 2
	processOutFile = resultPath
	require.NoError(t, runProcess())

	data, err := os.ReadFile(resultPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "node ")
}
