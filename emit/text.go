package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/evolbioinfo/cassis/namemap"
	"github.com/evolbioinfo/cassis/phylotree"
)

// TextWriter emits the per-node text dump of spec §6: one block per
// node naming its best coverage and, for every outgroup budget, the
// signatures tying for that coverage.
type TextWriter struct{}

func (TextWriter) Write(w io.Writer, tree *phylotree.Tree, names *namemap.Map) error {
	var writeErr error
	walkPreOrder(tree.Root(), func(n *phylotree.Node) {
		if writeErr != nil {
			return
		}
		if _, err := fmt.Fprintf(w, "node %s (best=%d)\n", nodeLabel(n, names), n.BestIngroupCoverage()); err != nil {
			writeErr = err
			return
		}
		for k := 0; k <= tree.K; k++ {
			sigs := n.Signatures(k)
			if len(sigs) == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "  k=%d coverage=%d: %s\n", k, n.NumMatches(k), strings.Join(sigs, ", ")); err != nil {
				writeErr = err
				return
			}
		}
	})
	return writeErr
}
