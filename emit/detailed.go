package emit

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/evolbioinfo/cassis/namemap"
	"github.com/evolbioinfo/cassis/phylotree"
)

// DetailedWriter emits the long-format signature listing described in
// spec §6 ("a second set of CSVs, one per outgroup count, listing
// signatures"): one row per (node, outgroup count, signature) triple,
// so a caller that wants the original per-k file split can filter this
// single stream by its outgroup_count column, or call WriteK directly
// per k value.
type DetailedWriter struct{}

func (DetailedWriter) Write(w io.Writer, tree *phylotree.Tree, names *namemap.Map) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"node", "outgroup_count", "signature"}); err != nil {
		return err
	}
	var writeErr error
	walkPreOrder(tree.Root(), func(n *phylotree.Node) {
		if writeErr != nil {
			return
		}
		for k := 0; k <= tree.K; k++ {
			for _, sig := range n.Signatures(k) {
				if writeErr = cw.Write([]string{nodeLabel(n, names), strconv.Itoa(k), sig}); writeErr != nil {
					return
				}
			}
		}
	})
	return writeErr
}

// WriteK emits only outgroup-count slot k, one row per (node,
// signature) pair — the literal "one CSV per outgroup count" split.
func WriteK(w io.Writer, tree *phylotree.Tree, names *namemap.Map, k int) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"node", "signature"}); err != nil {
		return err
	}
	var writeErr error
	walkPreOrder(tree.Root(), func(n *phylotree.Node) {
		if writeErr != nil {
			return
		}
		for _, sig := range n.Signatures(k) {
			if writeErr = cw.Write([]string{nodeLabel(n, names), sig}); writeErr != nil {
				return
			}
		}
	})
	return writeErr
}
