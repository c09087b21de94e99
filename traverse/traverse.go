// Package traverse implements the BGRT-vs-tree branch-and-bound
// traversal (spec §4.6): for each node of a CaSSiS phylogenetic tree,
// walk a BGRT collecting the best signatures subject to an outgroup
// budget, using per-branch upper bounds to prune and an optional
// worker pool to parallelise the search over BGRT root entries.
//
// Grounded on original_source/src/lib/cassis/search.h/search.cpp for
// the recursive branch-and-bound shape, and on
// pythseq-gotree/support/booster.go's ComputeValue for the
// worker-pool-over-shared-cursor concurrency idiom (mutex-protected
// index, coarse per-target-node lock for the critical section).
package traverse

import (
	"sync"

	"github.com/evolbioinfo/cassis/bgrt"
	"github.com/evolbioinfo/cassis/idset"
	"github.com/evolbioinfo/cassis/phylotree"
)

// Options configures one traversal run (spec §5 concurrency model).
type Options struct {
	K       int
	Workers int // 0 or 1 runs the sequential path.
}

// Run performs the full pre-order traversal of pt against bg, updating
// every phylogenetic node's num_matches/signatures/starting_solution in
// place. bg may be reused across independent runs.
func Run(bg *bgrt.Tree, pt *phylotree.Tree, opts Options) {
	visit(bg, pt, pt.Root(), opts)
}

// visit processes one phylogenetic node. The BGRT's ingroup_array
// scratch (spec §4.6 steps 3 and 6) is reset before each node's own
// descent: the scratch is indexed only by phylogenetic depth, and two
// different phylogenetic nodes can share a depth while having
// completely unrelated groups (e.g. siblings), so a bound cached while
// visiting one node must never be consulted while visiting another —
// it must apply only to the current node's own BGRT descent.
func visit(bg *bgrt.Tree, pt *phylotree.Tree, n *phylotree.Node, opts Options) {
	bg.ResetScratch()
	roots := selectRoots(bg, pt, n, opts.K)
	runRoots(bg, pt, n, roots, opts)
	if !n.Leaf() {
		visit(bg, pt, n.Left(), opts)
		visit(bg, pt, n.Right(), opts)
	}
}

// selectRoots implements spec §4.6's "Starting solution selection": for
// K=0 only root entries indexed by members of n's own group can ever
// reach n, so only those are visited. For K>0 every root entry is
// visited, ordered starting from the parent's cached starting_solution
// (a strong first guess) and wrapping modulo the number of roots.
func selectRoots(bg *bgrt.Tree, pt *phylotree.Tree, n *phylotree.Node, k int) []idset.Id {
	numRoots := idset.Id(len(bg.Roots))
	if numRoots == 0 {
		return nil
	}
	if k == 0 {
		// Leaf ids minted for organisms the BGRT does not know have no
		// root entry and are skipped.
		group := n.Group().Raw()
		out := make([]idset.Id, 0, len(group))
		for _, id := range group {
			if id < numRoots {
				out = append(out, id)
			}
		}
		return out
	}
	start := idset.Id(0)
	if n.Parent() != nil && n.Parent().StartingSolution() != idset.Undef {
		start = n.Parent().StartingSolution() % numRoots
	}
	out := make([]idset.Id, numRoots)
	for i := range out {
		out[i] = (start + idset.Id(i)) % numRoots
	}
	return out
}

func runRoots(bg *bgrt.Tree, pt *phylotree.Tree, n *phylotree.Node, roots []idset.Id, opts Options) {
	if opts.Workers <= 1 || len(roots) <= 1 {
		for _, r := range roots {
			root := bg.Roots[r]
			if root == nil {
				continue
			}
			if descend(root, n, 0, 0, opts.K, pt, nil) {
				n.SetStartingSolution(r)
			}
		}
		return
	}

	var cursorMu sync.Mutex
	var nodeMu sync.Mutex
	idx := 0
	var wg sync.WaitGroup
	workers := opts.Workers
	if workers > len(roots) {
		workers = len(roots)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				cursorMu.Lock()
				if idx >= len(roots) {
					cursorMu.Unlock()
					return
				}
				r := roots[idx]
				idx++
				cursorMu.Unlock()

				root := bg.Roots[r]
				if root == nil {
					continue
				}
				if descend(root, n, 0, 0, opts.K, pt, &nodeMu) {
					nodeMu.Lock()
					n.SetStartingSolution(r)
					nodeMu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
}

// descend implements spec §4.6 steps 1-7 at one BGRT node b, with
// ingroupAcc/outgroupAcc carrying the match counts accumulated along the
// BGRT path so far (BGRT nodes hold only incremental species). It
// reports whether any candidate signature it recorded at n was a strict
// improvement.
func descend(b *bgrt.Node, n *phylotree.Node, ingroupAcc, outgroupAcc, k int, pt *phylotree.Tree, nodeMu *sync.Mutex) bool {
	depth := n.Depth()

	// Step 3: best-achievable bound. If this BGRT subtree already could
	// not beat n's weakest-covered k-slot earlier in n's own descent, it
	// cannot beat it now either (scratch was reset for n at the start of
	// visit, and is monotonically non-decreasing within n's traversal).
	if cached := b.IngroupAt(depth); cached >= 0 && cached < minAchievable(n, k) {
		return false
	}

	// Step 4: merge b's incremental species with n's group.
	gotIngroup, gotOutgroup := intersectCount(b.Species(), n.Group())
	ingroupAcc += gotIngroup
	outgroupAcc += gotOutgroup
	if outgroupAcc > k {
		return false
	}

	// Step 5: record every candidate signature at b.
	improved := false
	sigs := b.Signatures()
	if len(sigs) > 0 {
		og := b.OutgroupMatches()
		if nodeMu != nil {
			nodeMu.Lock()
		}
		for i, sig := range sigs {
			totalOG := outgroupAcc + int(og.At(i))
			if totalOG <= k && ingroupAcc > 0 {
				if pt.UpdateNode(n, totalOG, ingroupAcc, sig) {
					improved = true
				}
			}
		}
		if nodeMu != nil {
			nodeMu.Unlock()
		}
	}

	// Step 6: push the new best ingroup count into b's own scratch cell,
	// then up the BGRT parent chain for every ancestor whose recorded
	// value at depth D is smaller (spec §4.6 step 6). Ancestors further
	// up are already >= any ancestor we've already reached, so stop at
	// the first one that doesn't improve.
	for cur := b; cur != nil; cur = cur.Parent() {
		if ingroupAcc <= cur.IngroupAt(depth) {
			break
		}
		cur.SetIngroupAt(depth, ingroupAcc)
	}

	// Step 7: recurse into children.
	for _, c := range b.Children() {
		if descend(c, n, ingroupAcc, outgroupAcc, k, pt, nodeMu) {
			improved = true
		}
	}
	return improved
}

func minAchievable(n *phylotree.Node, k int) int {
	best := n.NumMatches(0)
	for i := 1; i <= k; i++ {
		if m := n.NumMatches(i); m < best {
			best = m
		}
	}
	if best < 1 {
		return 1
	}
	return best
}

// intersectCount merges two sorted id sets in one linear pass, counting
// elements of b shared with group (ingroup) and elements of b not in
// group (outgroup) — spec §4.6 step 4.
func intersectCount(b, group *idset.Sorted) (ingroup, outgroup int) {
	bi, gi := b.Raw(), group.Raw()
	i, j := 0, 0
	for i < len(bi) && j < len(gi) {
		switch {
		case bi[i] < gi[j]:
			outgroup++
			i++
		case bi[i] > gi[j]:
			j++
		default:
			ingroup++
			i++
			j++
		}
	}
	outgroup += len(bi) - i
	return
}
