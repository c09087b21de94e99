// Package emit implements the result emitters of spec §6: tabular
// (CSV) and per-node text dumps of a traversed CaSSiS tree. Out of
// scope per spec §1 ("result emitters... specify their contracts
// only"); these are thin reference implementations so cmd has
// something real to call and to exercise the core end to end.
package emit

import (
	"fmt"
	"io"

	"github.com/evolbioinfo/cassis/namemap"
	"github.com/evolbioinfo/cassis/phylotree"
)

// Writer emits one traversed tree's results to w.
type Writer interface {
	Write(w io.Writer, tree *phylotree.Tree, names *namemap.Map) error
}

// Format selects an emitter implementation (spec §6 `--out`).
type Format string

const (
	FormatClassic  Format = "classic"
	FormatDetailed Format = "detailed"
	FormatText     Format = "text"
)

// New returns the Writer for format, or nil for an unrecognised one.
func New(format Format) Writer {
	switch format {
	case FormatClassic:
		return ClassicWriter{}
	case FormatDetailed:
		return DetailedWriter{}
	case FormatText:
		return TextWriter{}
	default:
		return nil
	}
}

func nodeLabel(n *phylotree.Node, names *namemap.Map) string {
	if n.Leaf() {
		return names.Name(n.ThisID())
	}
	if name := n.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("internal_%d_%d", n.LeftmostID(), n.RightmostID())
}

func walkPreOrder(n *phylotree.Node, visit func(*phylotree.Node)) {
	if n == nil {
		return
	}
	visit(n)
	walkPreOrder(n.Left(), visit)
	walkPreOrder(n.Right(), visit)
}
