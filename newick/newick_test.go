package newick

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evolbioinfo/cassis/namemap"
	"github.com/evolbioinfo/cassis/phylotree"
)

func TestParseFourLeafTree(t *testing.T) {
	root, err := Parse("((A,B),(C,D));")
	require.NoError(t, err)
	require.False(t, root.Leaf())

	names := namemap.New()
	tr := phylotree.Build(root, 0, names, false)
	require.Equal(t, 4, tr.NumLeaves())

	a, _ := names.Lookup("A")
	d, _ := names.Lookup("D")
	require.Equal(t, tr.Leaf(a).ThisID(), a)
	require.Equal(t, tr.Leaf(d).ThisID(), d)
}

func TestParseBranchLengthsAndGroupNames(t *testing.T) {
	root, err := Parse("((A:0.1,B:0.2)ab:0.3,(C:0.1,D:0.1)cd:0.4)root:0;")
	require.NoError(t, err)
	require.Equal(t, "root", root.Name())
	require.InDelta(t, 0.3, root.Left().BranchLength(), 1e-9)
	require.Equal(t, "ab", root.Left().Name())
}

func TestParseQuotedNamesAndComments(t *testing.T) {
	root, err := Parse(`('species one',"species two")[a comment];`)
	require.NoError(t, err)
	require.Equal(t, "species one", root.Left().Name())
	require.Equal(t, "species two", root.Right().Name())
}

func TestParseRejectsMultifurcation(t *testing.T) {
	_, err := Parse("(A,B,C);")
	require.Error(t, err)
}

func TestParseRejectsUnbalancedParens(t *testing.T) {
	_, err := Parse("((A,B);")
	require.Error(t, err)
}
