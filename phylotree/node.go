// Package phylotree implements the CaSSiS phylogenetic tree (spec §3,
// §4.5): a strictly binary tree carrying per-k best-coverage signature
// lists, an Euler-tour + sparse-table structure for O(1) LCA, and the
// one-pass matching-propagation algorithm.
//
// Grounded on pythseq-gotree/tree/tree.go's Tree/Node API shape
// (NewNode, ConnectNodes, ReinitIndexes, ComputeDepths, recursive
// *Recur private helpers), adapted from gotree's unrooted n-ary
// multifurcating tree to a strictly binary rooted one, and from
// gotree's per-edge bitset.BitSet to a per-node bitset group mask.
package phylotree

import (
	"github.com/fredericlemoine/bitset"

	"github.com/evolbioinfo/cassis/idset"
)

// Node is one node of a CaSSiS tree. Leaves have both Left and Right
// nil; this_id is then the leaf's organism id (spec §3).
type Node struct {
	left, right, parent *Node

	name   string
	thisID idset.Id

	leftmostID, rightmostID idset.Id
	depth                   int
	branchLength            float64

	group *idset.Sorted
	mask  *bitset.BitSet

	numMatches           []int
	signatures           [][]string
	bestIngroupCoverage  int
	startingSolution     idset.Id
}

// NewNode allocates a detached node named name (empty for an unnamed
// internal node). Call ConnectNodes to assemble a tree, then Build to
// finish construction.
func NewNode(name string) *Node {
	return &Node{name: name, thisID: idset.Undef, startingSolution: idset.Undef}
}

// ConnectNodes makes left and right the children of parent. The caller
// supplies the tree in whatever shape an external parenthesised-tree
// reader produced (spec §6, out of scope here).
func ConnectNodes(parent, left, right *Node) {
	parent.left, parent.right = left, right
	left.parent, right.parent = parent, parent
}

// Leaf reports whether n has no children.
func (n *Node) Leaf() bool { return n.left == nil && n.right == nil }

// Left returns n's left child, or nil for a leaf.
func (n *Node) Left() *Node { return n.left }

// Right returns n's right child, or nil for a leaf.
func (n *Node) Right() *Node { return n.right }

// Parent returns n's parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Name returns the name given at construction (organism name for
// leaves, optional group name for internal nodes).
func (n *Node) Name() string { return n.name }

// ThisID returns the dense organism id for a leaf, or idset.Undef for
// an internal node (spec §3 `this_id`).
func (n *Node) ThisID() idset.Id { return n.thisID }

// LeftmostID and RightmostID bound the contiguous id range of the
// leaves beneath n (spec §3 invariant).
func (n *Node) LeftmostID() idset.Id  { return n.leftmostID }
func (n *Node) RightmostID() idset.Id { return n.rightmostID }

// Depth returns n's depth, possibly comb-collapsed (spec §4.5).
func (n *Node) Depth() int { return n.depth }

// SetBranchLength records n's informational branch length.
func (n *Node) SetBranchLength(l float64) { n.branchLength = l }

// BranchLength returns n's informational branch length.
func (n *Node) BranchLength() float64 { return n.branchLength }

// Group returns the sorted set of leaf ids beneath n.
func (n *Node) Group() *idset.Sorted { return n.group }

// NumMatches returns the best ingroup coverage recorded for outgroup
// budget k.
func (n *Node) NumMatches(k int) int { return n.numMatches[k] }

// Signatures returns the signatures tying for the best coverage at
// outgroup budget k.
func (n *Node) Signatures(k int) []string { return n.signatures[k] }

// BestIngroupCoverage returns max over k of NumMatches(k).
func (n *Node) BestIngroupCoverage() int { return n.bestIngroupCoverage }

// StartingSolution returns the cached BGRT root-array index that
// produced n's best traversal result so far (spec §4.6).
func (n *Node) StartingSolution() idset.Id { return n.startingSolution }

// SetStartingSolution records a new traversal seed for n.
func (n *Node) SetStartingSolution(root idset.Id) { n.startingSolution = root }

func (n *Node) containsID(id idset.Id) bool {
	return id >= n.leftmostID && id <= n.rightmostID
}
