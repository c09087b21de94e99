package emit

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/evolbioinfo/cassis/namemap"
	"github.com/evolbioinfo/cassis/phylotree"
)

// ClassicWriter emits one CSV with a row per tree node and one
// coverage column per outgroup-match budget (spec §6 "tabular... one
// CSV with per-node rows and per-outgroup-count columns").
//
// Grounded on bebop-poly/rbs_calculator/csv_helper/csv_helper.go's use
// of encoding/csv.Writer. Spec §9's Open Question flags an observed bug
// where one branch of the original concatenates these columns without
// separators; that bug is NOT replicated here — every row is written
// through csv.Writer, which always comma-separates.
type ClassicWriter struct{}

func (ClassicWriter) Write(w io.Writer, tree *phylotree.Tree, names *namemap.Map) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"node", "best_ingroup_coverage"}
	for k := 0; k <= tree.K; k++ {
		header = append(header, "coverage_"+strconv.Itoa(k))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	var writeErr error
	walkPreOrder(tree.Root(), func(n *phylotree.Node) {
		if writeErr != nil {
			return
		}
		row := []string{nodeLabel(n, names), strconv.Itoa(n.BestIngroupCoverage())}
		for k := 0; k <= tree.K; k++ {
			row = append(row, strconv.Itoa(n.NumMatches(k)))
		}
		writeErr = cw.Write(row)
	})
	return writeErr
}
