package bgrt

import (
	"math/rand"
	"testing"

	"github.com/evolbioinfo/cassis/idset"
	"github.com/stretchr/testify/require"
)

// TestInvariantChildrenSortedByMinSpecies checks spec.md §8 invariant 2:
// children are sorted by min(species) with no duplicate key.
func TestInvariantChildrenSortedByMinSpecies(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tr := New(20, Params{})
	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(5)
		seen := map[idset.Id]bool{}
		s := &idset.Sorted{}
		for len(seen) < n {
			v := idset.Id(rng.Intn(20))
			if !seen[v] {
				seen[v] = true
				s.Insert(v)
			}
		}
		tr.Insert("sig", s, idset.Id(rng.Intn(3)))
	}

	tr.Walk(func(node *Node) {
		children := node.Children()
		for i := 1; i < len(children); i++ {
			require.Less(t, children[i-1].Species().Min(), children[i].Species().Min())
		}
		require.Greater(t, node.Species().Len(), 0, "no node should have empty species")
	})
}

// TestInvariantPathUnionStartsAtRootIndex checks spec.md §8 invariant 1:
// for any node reached from root slot r, the union of species along the
// path has minimum exactly r.
func TestInvariantPathUnionStartsAtRootIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	tr := New(20, Params{})
	for i := 0; i < 100; i++ {
		n := 1 + rng.Intn(4)
		seen := map[idset.Id]bool{}
		s := &idset.Sorted{}
		for len(seen) < n {
			v := idset.Id(rng.Intn(20))
			if !seen[v] {
				seen[v] = true
				s.Insert(v)
			}
		}
		tr.Insert("sig", s, 0)
	}

	for r, root := range tr.Roots {
		if root == nil {
			continue
		}
		tr2 := root
		walkCheck(t, tr2, idset.Id(r))
	}
}

func walkCheck(t *testing.T, n *Node, rootIdx idset.Id) {
	union := PathUnion(n)
	require.Equal(t, rootIdx, union.Min())
	for _, c := range n.Children() {
		walkCheck(t, c, rootIdx)
	}
}
