// Package bgrt implements the Bipartite Graph Representation Tree
// (spec §4.4): a trie over sorted ID sets with shared-prefix factoring,
// storing the signatures that produce exactly a given matched-ID set.
//
// Grounded on original_source/src/lib/cassis/bgrt.h's BgrTreeNode
// (species/signatures/supposed_outgroup_matches/children/parent/next)
// shape, translated to plain *Node pointers (see DESIGN.md's arena
// Open Question) instead of handle-indexed arenas.
package bgrt

import (
	"sort"

	"github.com/evolbioinfo/cassis/idset"
)

// Node is one node of the BGRT.
type Node struct {
	species   *idset.Sorted
	signatures []string
	outgroup   *idset.Unordered
	children   []*Node
	parent     *Node

	// ingroupArray is traversal scratch (spec §4.6), lazily sized to the
	// phylogenetic tree's depth and reset by the caller before each
	// phylogenetic node's descent.
	ingroupArray []int
}

// Species returns the node's incremental species set (the IDs covered
// by this node but not by any ancestor).
func (n *Node) Species() *idset.Sorted { return n.species }

// Signatures returns the ordered signature list stored at this node.
func (n *Node) Signatures() []string { return n.signatures }

// OutgroupMatches returns the per-signature supposed-outgroup-match
// counts, aligned by index with Signatures().
func (n *Node) OutgroupMatches() *idset.Unordered { return n.outgroup }

// Children returns the node's children, ordered by min(species).
func (n *Node) Children() []*Node { return n.children }

// Parent returns the node's parent, or nil at a root-array entry.
func (n *Node) Parent() *Node { return n.parent }

// IngroupAt returns the scratch cell at index depth, or -1 ("unset") when
// that cell has not been written. It never grows the array; SetIngroupAt
// does.
func (n *Node) IngroupAt(depth int) int {
	if depth >= len(n.ingroupArray) {
		return -1
	}
	return n.ingroupArray[depth]
}

// SetIngroupAt lazily grows the scratch array and stores v at depth.
func (n *Node) SetIngroupAt(depth, v int) {
	if depth >= len(n.ingroupArray) {
		grown := make([]int, depth+1)
		for i := range grown {
			grown[i] = -1
		}
		copy(grown, n.ingroupArray)
		n.ingroupArray = grown
	}
	n.ingroupArray[depth] = v
}

// ResetScratch clears the traversal scratch array. Called once per
// top-level traversal root before a fresh §4.6 pass.
func (n *Node) ResetScratch() {
	n.ingroupArray = nil
	for _, c := range n.children {
		c.ResetScratch()
	}
}

func newLeaf(species *idset.Sorted, sig string, og idset.Id) *Node {
	return &Node{
		species:    species,
		signatures: []string{sig},
		outgroup:   idset.NewUnordered(og),
	}
}

// insertChildSorted places (species, sig, og) among parent's children,
// descending into an existing child whose min(species) matches, or
// creating a new sorted-in child otherwise (spec §4.4 case 4's "not
// found" branch, and the split/subset cases' second attachment).
func insertChildSorted(parent *Node, species *idset.Sorted, sig string, og idset.Id) {
	want := species.Min()
	idx := sort.Search(len(parent.children), func(i int) bool {
		return parent.children[i].species.Min() >= want
	})
	if idx < len(parent.children) && parent.children[idx].species.Min() == want {
		replaced := insert(parent.children[idx], species, sig, og)
		replaced.parent = parent
		parent.children[idx] = replaced
		return
	}
	leaf := newLeaf(species, sig, og)
	leaf.parent = parent
	parent.children = append(parent.children, nil)
	copy(parent.children[idx+1:], parent.children[idx:])
	parent.children[idx] = leaf
}

// insert implements the generic overlap procedure (spec §4.4) at node n,
// inserting (species, sig, og). Returns the node that must occupy n's
// former slot (n itself, unless a split/subset case replaces it).
func insert(n *Node, species *idset.Sorted, sig string, og idset.Id) *Node {
	onlyNew, onlyN, both := idset.Diff(species, n.species)

	switch {
	case onlyNew != nil && onlyN != nil:
		// Case 2: split. A new node with species = A∩B takes n's slot;
		// n becomes its child reduced to B\A; A\B is inserted as a
		// second child (always falls through to the exact-match case).
		parent := n.parent
		newParent := &Node{species: both, parent: parent}
		n.species = onlyN
		n.parent = newParent
		newParent.children = []*Node{n}
		insertChildSorted(newParent, onlyNew, sig, og)
		return newParent

	case onlyN != nil && onlyNew == nil:
		// Case 3: species ⊂ n.species. A new node with species = A∩B
		// (== species) takes n's slot; n becomes its child reduced to
		// B\A; the signature attaches to the new node directly.
		parent := n.parent
		newParent := &Node{
			species:    both,
			parent:     parent,
			signatures: []string{sig},
			outgroup:   idset.NewUnordered(og),
		}
		n.species = onlyN
		n.parent = newParent
		newParent.children = []*Node{n}
		return newParent

	case onlyNew != nil && onlyN == nil:
		// Case 4: species ⊃ n.species. Descend into n's children to
		// place the remainder A\B; n itself is unchanged.
		insertChildSorted(n, onlyNew, sig, og)
		return n

	default:
		// Case 5: exact match.
		n.signatures = append(n.signatures, sig)
		if n.outgroup == nil {
			n.outgroup = &idset.Unordered{}
		}
		n.outgroup.Append(og)
		return n
	}
}
