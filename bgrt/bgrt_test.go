package bgrt

import (
	"testing"

	"github.com/evolbioinfo/cassis/idset"
	"github.com/stretchr/testify/require"
)

func sorted(ids ...idset.Id) *idset.Sorted { return idset.NewSorted(ids...) }

// TestScenarioC_ThreeOverlappingSets exercises spec.md §8 Scenario C:
// inserting ({0,1,2},"s1"), ({0,1,3},"s2"), ({0,1},"s3") should produce a
// {0,1} node holding s3, with two children {2} and {3} holding s1/s2.
func TestScenarioC_ThreeOverlappingSets(t *testing.T) {
	tr := New(4, Params{})
	tr.Insert("s1", sorted(0, 1, 2), 0)
	tr.Insert("s2", sorted(0, 1, 3), 0)
	tr.Insert("s3", sorted(0, 1), 0)

	root := tr.Roots[0]
	require.NotNil(t, root)
	require.Equal(t, []idset.Id{0, 1}, root.Species().Raw())
	require.Equal(t, []string{"s3"}, root.Signatures())
	require.Len(t, root.Children(), 2)

	childSpecies := [][]idset.Id{
		root.Children()[0].Species().Raw(),
		root.Children()[1].Species().Raw(),
	}
	require.Contains(t, childSpecies, []idset.Id{2})
	require.Contains(t, childSpecies, []idset.Id{3})

	for _, c := range root.Children() {
		if c.Species().Raw()[0] == 2 {
			require.Equal(t, []string{"s1"}, c.Signatures())
		} else {
			require.Equal(t, []string{"s2"}, c.Signatures())
		}
	}
}

func TestInsertExactMatchAppendsSignature(t *testing.T) {
	tr := New(4, Params{})
	tr.Insert("s1", sorted(0, 1), 5)
	tr.Insert("s2", sorted(0, 1), 7)

	root := tr.Roots[0]
	require.Equal(t, []string{"s1", "s2"}, root.Signatures())
	require.Equal(t, []idset.Id{5, 7}, root.OutgroupMatches().Raw())
}

func TestInsertDisjointSetsCreateSiblingRoots(t *testing.T) {
	tr := New(4, Params{})
	tr.Insert("s1", sorted(0), 0)
	tr.Insert("s2", sorted(1), 0)

	require.NotNil(t, tr.Roots[0])
	require.NotNil(t, tr.Roots[1])
	require.Equal(t, []string{"s1"}, tr.Roots[0].Signatures())
	require.Equal(t, []string{"s2"}, tr.Roots[1].Signatures())
}

func TestInsertSupersetSplitsIntoParentChild(t *testing.T) {
	tr := New(6, Params{})
	tr.Insert("base", sorted(0, 1), 0)
	tr.Insert("wide", sorted(0, 1, 2, 3), 0)

	root := tr.Roots[0]
	require.Equal(t, []idset.Id{0, 1}, root.Species().Raw())
	require.Equal(t, []string{"base"}, root.Signatures())
	require.Len(t, root.Children(), 1)
	require.Equal(t, []idset.Id{2, 3}, root.Children()[0].Species().Raw())
	require.Equal(t, []string{"wide"}, root.Children()[0].Signatures())
}

func TestInsertPathUnionMatchesInsertedSet(t *testing.T) {
	tr := New(8, Params{})
	tr.Insert("s1", sorted(0, 1, 2), 0)
	tr.Insert("s2", sorted(0, 1, 3), 0)
	tr.Insert("s3", sorted(0, 1), 0)

	inserted := map[string][]idset.Id{"s1": {0, 1, 2}, "s2": {0, 1, 3}, "s3": {0, 1}}
	for _, n := range []*Node{tr.Roots[0], tr.Roots[0].Children()[0], tr.Roots[0].Children()[1]} {
		union := PathUnion(n)
		// every signature's node has the set it was inserted with as path union
		for _, sig := range n.Signatures() {
			require.Equal(t, inserted[sig], union.Raw())
		}
	}

	root := tr.Roots[0]
	for _, c := range root.Children() {
		union := PathUnion(c)
		require.True(t, sorted(0, 1, 2).Len() == union.Len() || sorted(0, 1, 3).Len() == union.Len())
	}
}
