package bgrt

import "github.com/evolbioinfo/cassis/idset"

// Params bundles the parameters embedded in a serialised BGRT file's
// header (spec §6 payload header), and used by `cassis info`.
type Params struct {
	Base4Compressed  bool
	NumSpecies       uint32
	IngroupMMDist    uint32
	OutgroupMMDist   uint32
	MinLen, MaxLen   uint32
	MinGC, MaxGC     float32
	MinTemp, MaxTemp float32
	Comment          string
}

// Tree is the Bipartite Graph Representation Tree: an array of length
// NumSpecies whose entry i is the root of the subtree containing every
// matched-ID set whose minimum element is i (spec §3, "BGRT root
// array").
type Tree struct {
	Params Params
	Roots  []*Node
}

// New allocates an empty Tree with a root array sized for numSpecies
// distinct organism ids.
func New(numSpecies uint32, p Params) *Tree {
	p.NumSpecies = numSpecies
	return &Tree{Params: p, Roots: make([]*Node, numSpecies)}
}

// Insert places one (signature, matched-ids, outgroup-count) triple
// (spec §4.4 top-level dispatch). matched must be non-empty.
func (t *Tree) Insert(signature string, matched *idset.Sorted, outgroupCount idset.Id) {
	if matched.Len() == 0 {
		return
	}
	m := matched.Min()
	if t.Roots[m] == nil {
		t.Roots[m] = newLeaf(matched, signature, outgroupCount)
		return
	}
	t.Roots[m] = insert(t.Roots[m], matched, signature, outgroupCount)
	t.Roots[m].parent = nil
}

// ResetScratch clears every node's traversal scratch array. The §4.6
// traversal calls it before each phylogenetic node's own descent.
func (t *Tree) ResetScratch() {
	for _, r := range t.Roots {
		if r != nil {
			r.ResetScratch()
		}
	}
}

// PathUnion returns the union of species along the root-to-n path,
// which by construction equals the matched-ID set of any signature
// attached directly at n (spec §4.4 invariant). Used by tests.
func PathUnion(n *Node) *idset.Sorted {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	out := &idset.Sorted{}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, id := range chain[i].species.Raw() {
			out.Insert(id)
		}
	}
	return out
}

// Walk visits every node of the tree in pre-order (root array entries in
// index order, then each subtree depth-first).
func (t *Tree) Walk(visit func(*Node)) {
	for _, r := range t.Roots {
		if r != nil {
			walkRec(r, visit)
		}
	}
}

func walkRec(n *Node, visit func(*Node)) {
	visit(n)
	for _, c := range n.children {
		walkRec(c, visit)
	}
}

// NodeCount returns the total number of nodes in the tree.
func (t *Tree) NodeCount() int {
	count := 0
	t.Walk(func(*Node) { count++ })
	return count
}

// SignatureCount returns the total number of signatures stored across
// all nodes.
func (t *Tree) SignatureCount() int {
	count := 0
	t.Walk(func(n *Node) { count += len(n.signatures) })
	return count
}
