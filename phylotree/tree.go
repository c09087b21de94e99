package phylotree

import (
	"math/bits"

	"github.com/fredericlemoine/bitset"

	"github.com/evolbioinfo/cassis/idset"
	"github.com/evolbioinfo/cassis/namemap"
)

// Tree is a constructed CaSSiS phylogenetic tree: the node graph plus
// the Euler-tour/sparse-table LCA structure (spec §3 "CaSSiS tree").
type Tree struct {
	root  *Node
	K     int
	Pool  *Pool
	leaves []*Node // indexed by dense organism id

	eulerTour   []*Node
	level       []int
	firstVisit  []int // indexed by leaf id
	sparseTable [][]int
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node { return t.root }

// NumLeaves returns the number of organisms in the tree.
func (t *Tree) NumLeaves() int { return len(t.leaves) }

// Leaf returns the leaf node for a dense organism id.
func (t *Tree) Leaf(id idset.Id) *Node { return t.leaves[id] }

// Build finishes construction of a tree assembled with NewNode/ConnectNodes:
// it assigns dense organism ids to leaves in left-to-right order (spec
// §4.5 "Construction"), registering each leaf's name with names; computes
// leftmost/rightmost id ranges and per-node groups bottom-up; computes
// depths (with optional comb-collapsing reduction); and builds the
// Euler-tour + sparse-table LCA structure. k is the outgroup budget K,
// sizing every node's num_matches/signatures arrays to k+1 slots.
func Build(root *Node, k int, names *namemap.Map, reduceDepth bool) *Tree {
	t := &Tree{root: root, K: k, Pool: NewPool()}
	assignIDs(root, names, &t.leaves)
	finishBuild(t, root, k, reduceDepth)
	return t
}

// BuildEnforced is like Build, but for use when names already holds the
// authoritative organism set (e.g. reloaded from a BGRT file, spec §6):
// it still completes construction for every leaf (spec §7 "no abort"),
// but reports whether every leaf name was already registered in names.
// A leaf naming an organism names has never seen mints a new id exactly
// as Build would, so the returned Tree is always fully usable; the
// bool lets the caller surface spec §7's "Duplicate / missing ID"
// partial-success condition instead of silently proceeding as if the
// tree and the BGRT's organism sets were guaranteed identical.
func BuildEnforced(root *Node, k int, names *namemap.Map, reduceDepth bool) (*Tree, bool) {
	known := make(map[string]bool, names.Len())
	for _, n := range names.Names() {
		known[n] = true
	}
	ok := true
	t := &Tree{root: root, K: k, Pool: NewPool()}
	assignIDsChecked(root, names, &t.leaves, known, &ok)
	finishBuild(t, root, k, reduceDepth)
	return t, ok
}

func finishBuild(t *Tree, root *Node, k int, reduceDepth bool) {
	numLeaves := len(t.leaves)
	allocScratch(root, k)
	buildMasks(root, uint(numLeaves))

	if reduceDepth {
		computeDepthsReduced(root, 0)
	} else {
		computeDepthsPlain(root, 0)
	}

	t.buildEulerTour()
	t.buildSparseTable()
}

func assignIDs(n *Node, names *namemap.Map, leaves *[]*Node) {
	if n.Leaf() {
		id := names.Append(n.name)
		n.thisID = id
		n.leftmostID, n.rightmostID = id, id
		n.group = idset.NewSorted(id)
		*leaves = append(*leaves, n)
		return
	}
	assignIDs(n.left, names, leaves)
	assignIDs(n.right, names, leaves)
	n.leftmostID = n.left.leftmostID
	n.rightmostID = n.right.rightmostID
	n.group = unionGroups(n.left.group, n.right.group)
}

func assignIDsChecked(n *Node, names *namemap.Map, leaves *[]*Node, known map[string]bool, ok *bool) {
	if n.Leaf() {
		if !known[n.name] {
			*ok = false
		}
		id := names.Append(n.name)
		n.thisID = id
		n.leftmostID, n.rightmostID = id, id
		n.group = idset.NewSorted(id)
		*leaves = append(*leaves, n)
		return
	}
	assignIDsChecked(n.left, names, leaves, known, ok)
	assignIDsChecked(n.right, names, leaves, known, ok)
	n.leftmostID = n.left.leftmostID
	n.rightmostID = n.right.rightmostID
	n.group = unionGroups(n.left.group, n.right.group)
}

func unionGroups(a, b *idset.Sorted) *idset.Sorted {
	return a.Union(b.Raw())
}

func allocScratch(n *Node, k int) {
	n.numMatches = make([]int, k+1)
	n.signatures = make([][]string, k+1)
	n.startingSolution = idset.Undef
	if n.Leaf() {
		return
	}
	allocScratch(n.left, k)
	allocScratch(n.right, k)
}

func buildMasks(n *Node, numLeaves uint) {
	m := bitset.New(numLeaves)
	for _, id := range n.group.Raw() {
		m.Set(uint(id))
	}
	n.mask = m
	if !n.Leaf() {
		buildMasks(n.left, numLeaves)
		buildMasks(n.right, numLeaves)
	}
}

// computeDepthsPlain assigns depth+1 to both children of every internal
// node, root = 0.
func computeDepthsPlain(n *Node, depth int) {
	n.depth = depth
	if n.Leaf() {
		return
	}
	computeDepthsPlain(n.left, depth+1)
	computeDepthsPlain(n.right, depth+1)
}

// computeDepthsReduced implements spec §4.5's comb-collapsing rebalance:
// whenever a node has exactly one leaf child, that leaf is made the left
// child and given the parent's own depth (no increment); otherwise both
// children get depth+1.
func computeDepthsReduced(n *Node, depth int) {
	n.depth = depth
	if n.Leaf() {
		return
	}
	leftIsLeaf := n.left.Leaf()
	rightIsLeaf := n.right.Leaf()
	if leftIsLeaf != rightIsLeaf {
		if rightIsLeaf {
			n.left, n.right = n.right, n.left
		}
		computeDepthsReduced(n.left, depth)
		computeDepthsReduced(n.right, depth+1)
		return
	}
	computeDepthsReduced(n.left, depth+1)
	computeDepthsReduced(n.right, depth+1)
}

func (t *Tree) buildEulerTour() {
	t.firstVisit = make([]int, len(t.leaves))
	for i := range t.firstVisit {
		t.firstVisit[i] = -1
	}
	t.eulerRec(t.root, 0)
}

func (t *Tree) eulerRec(n *Node, depth int) {
	if n.Leaf() && t.firstVisit[n.thisID] == -1 {
		t.firstVisit[n.thisID] = len(t.eulerTour)
	}
	t.eulerTour = append(t.eulerTour, n)
	t.level = append(t.level, depth)

	if n.left != nil {
		t.eulerRec(n.left, depth+1)
		t.eulerTour = append(t.eulerTour, n)
		t.level = append(t.level, depth)
	}
	if n.right != nil {
		t.eulerRec(n.right, depth+1)
		t.eulerTour = append(t.eulerTour, n)
		t.level = append(t.level, depth)
	}
}

// buildSparseTable builds the O(n log n) RMQ-over-level sparse table
// (spec §3 "sparse_table[pos][k]").
func (t *Tree) buildSparseTable() {
	n := len(t.level)
	if n == 0 {
		return
	}
	logn := bits.Len(uint(n)) + 1
	t.sparseTable = make([][]int, logn)
	t.sparseTable[0] = make([]int, n)
	for i := 0; i < n; i++ {
		t.sparseTable[0][i] = i
	}
	for j := 1; j < logn; j++ {
		width := 1 << uint(j)
		prevWidth := 1 << uint(j-1)
		if width > n {
			t.sparseTable[j] = []int{}
			continue
		}
		row := make([]int, n-width+1)
		for i := 0; i+width <= n; i++ {
			left := t.sparseTable[j-1][i]
			right := t.sparseTable[j-1][i+prevWidth]
			if t.level[left] <= t.level[right] {
				row[i] = left
			} else {
				row[i] = right
			}
		}
		t.sparseTable[j] = row
	}
}

func (t *Tree) queryMinPos(l, r int) int {
	if l > r {
		l, r = r, l
	}
	length := r - l + 1
	k := bits.Len(uint(length)) - 1
	left := t.sparseTable[k][l]
	right := t.sparseTable[k][r-(1<<uint(k))+1]
	if t.level[left] <= t.level[right] {
		return left
	}
	return right
}

// LCA returns the lowest common ancestor of the leaves with organism
// ids u and v, answered in O(1) via the Euler-tour sparse table (spec
// §3 invariant).
func (t *Tree) LCA(u, v idset.Id) *Node {
	if u == v {
		return t.leaves[u]
	}
	pos := t.queryMinPos(t.firstVisit[u], t.firstVisit[v])
	return t.eulerTour[pos]
}
