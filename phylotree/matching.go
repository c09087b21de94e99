package phylotree

import "github.com/evolbioinfo/cassis/idset"

// AddMatching implements spec §4.5's one-pass matching-propagation
// algorithm: absorb one (signature, matched-ids, extra-outgroup) triple
// into the tree, updating every node whose best coverage at some
// outgroup budget improves.
//
// Grounded on original_source/cassis/tree.cpp's addMatching split
// between downward propagation from the LCA and upward propagation to
// the root.
func (t *Tree) AddMatching(signature string, matchedIDs *idset.Sorted, extraOutgroup int) bool {
	if extraOutgroup > t.K || matchedIDs.Len() == 0 {
		return false
	}
	canonical := t.Pool.Intern(signature)
	lca := t.LCA(matchedIDs.Min(), matchedIDs.Max())

	propagateDown(lca, matchedIDs, extraOutgroup, canonical, t.K)
	for cur := lca.parent; cur != nil; cur = cur.parent {
		applyUpdate(cur, extraOutgroup, matchedIDs.Len(), canonical)
	}
	return true
}

// UpdateNode applies the spec §4.5 step 4 update rule directly at n, with
// no propagation to other nodes. This is the entry point the §4.6
// BGRT-vs-tree traversal uses to record a candidate signature found
// while visiting n (spec §4.6 step 5). It reports whether the update
// was a strict improvement, which the traversal uses to refresh n's
// starting_solution.
func (t *Tree) UpdateNode(n *Node, totalOutgroup, ingroup int, sig string) bool {
	return applyUpdate(n, totalOutgroup, ingroup, sig)
}

// propagateDown walks from n (initially the LCA) towards the leaves,
// recomputing the outgroup count fresh at every node and pruning
// subtrees whose total outgroup would exceed K.
func propagateDown(n *Node, matchedIDs *idset.Sorted, extraOutgroup int, sig string, k int) {
	if n == nil {
		return
	}
	outside := countOutside(n, matchedIDs)
	totalOutgroup := extraOutgroup + outside
	if totalOutgroup > k {
		return
	}
	ingroup := matchedIDs.Len() - outside
	applyUpdate(n, totalOutgroup, ingroup, sig)

	propagateDown(n.left, matchedIDs, extraOutgroup, sig, k)
	propagateDown(n.right, matchedIDs, extraOutgroup, sig, k)
}

// countOutside counts elements of matchedIDs outside [n.leftmostID,
// n.rightmostID] (spec §4.5 step 4's out_left + out_right).
func countOutside(n *Node, matchedIDs *idset.Sorted) int {
	count := 0
	for _, id := range matchedIDs.Raw() {
		if !n.containsID(id) {
			count++
		}
	}
	return count
}

// applyUpdate implements spec §4.5 step 4's per-node update rule at
// outgroup-budget slot k: on strict improvement the signature list is
// replaced; on a tie the signature is appended, deduplicated so that
// idempotent re-insertion (spec §8 invariant 8) never grows the list.
func applyUpdate(n *Node, k, ingroup int, sig string) bool {
	if ingroup < n.numMatches[k] {
		return false
	}
	strict := ingroup > n.numMatches[k]
	if strict {
		n.numMatches[k] = ingroup
		n.signatures[k] = []string{sig}
	} else if !containsString(n.signatures[k], sig) {
		n.signatures[k] = append(n.signatures[k], sig)
	}
	if ingroup > n.bestIngroupCoverage {
		n.bestIngroupCoverage = ingroup
	}
	return strict
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
