package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/evolbioinfo/cassis/idset"
	"github.com/evolbioinfo/cassis/namemap"
	"github.com/evolbioinfo/cassis/phylotree"
	"github.com/stretchr/testify/require"
)

func buildTinyTree(t *testing.T) (*phylotree.Tree, *namemap.Map) {
	a, b := phylotree.NewNode("A"), phylotree.NewNode("B")
	root := phylotree.NewNode("")
	phylotree.ConnectNodes(root, a, b)
	names := namemap.New()
	tr := phylotree.Build(root, 0, names, false)
	tr.AddMatching("AAAA", idset.NewSorted(0, 1), 0)
	return tr, names
}

func TestClassicWriterUsesRealCommas(t *testing.T) {
	tr, names := buildTinyTree(t)
	var buf bytes.Buffer
	require.NoError(t, New(FormatClassic).Write(&buf, tr, names))

	out := buf.String()
	require.Contains(t, out, "node,best_ingroup_coverage,coverage_0\n")
	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		require.True(t, strings.Contains(line, ","), "row must be comma-separated: %q", line)
	}
}

func TestDetailedWriterListsSignaturesPerNode(t *testing.T) {
	tr, names := buildTinyTree(t)
	var buf bytes.Buffer
	require.NoError(t, New(FormatDetailed).Write(&buf, tr, names))
	require.Contains(t, buf.String(), "AAAA")
}

func TestTextWriterSkipsEmptySlots(t *testing.T) {
	tr, names := buildTinyTree(t)
	var buf bytes.Buffer
	require.NoError(t, New(FormatText).Write(&buf, tr, names))
	require.Contains(t, buf.String(), "AAAA")
	// Leaves A and B record nothing at k=0, so no empty k line is printed.
	require.NotContains(t, buf.String(), "coverage=0:")
}

func TestWriteKFiltersSingleBudget(t *testing.T) {
	tr, names := buildTinyTree(t)
	var buf bytes.Buffer
	require.NoError(t, WriteK(&buf, tr, names, 0))
	require.Contains(t, buf.String(), "AAAA")
}
