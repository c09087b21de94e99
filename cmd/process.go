package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evolbioinfo/cassis/bgrt"
	"github.com/evolbioinfo/cassis/emit"
	"github.com/evolbioinfo/cassis/internal/iolog"
	"github.com/evolbioinfo/cassis/newick"
	"github.com/evolbioinfo/cassis/phylotree"
	"github.com/evolbioinfo/cassis/traverse"
)

var (
	processBGRT    string
	processTree    string
	processOG      int
	processOut     string
	processPar     int
	processOutFile string
)

// processCmd implements spec.md §2's two-pass pipeline, pass two: load
// a previously-built BGRT (spec §4.8/§6), build the CaSSiS tree for the
// given --tree, and run the branch-and-bound BGRT-vs-tree traversal
// (spec §4.6) to fill in every node's per-k signature lists.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Traverse a saved BGRT against a tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	RootCmd.AddCommand(processCmd)
	processCmd.Flags().StringVar(&processBGRT, "bgrt", "", "Input BGRT file")
	processCmd.Flags().StringVar(&processTree, "tree", "", "Input phylogenetic tree")
	processCmd.Flags().IntVar(&processOG, "og", 0, "Maximum tolerated outgroup matches (K)")
	processCmd.Flags().StringVar(&processOut, "out", "classic", "Result format: classic|detailed|text")
	processCmd.Flags().IntVar(&processPar, "par", 1, "Worker count for the BGRT-vs-tree traversal")
	processCmd.Flags().StringVarP(&processOutFile, "output", "o", "", "Output file (default: stdout)")
	_ = processCmd.MarkFlagRequired("bgrt")
	_ = processCmd.MarkFlagRequired("tree")
}

func runProcess() error {
	f, err := os.Open(processBGRT)
	if err != nil {
		return fmt.Errorf("opening %s: %w", processBGRT, err)
	}
	bg, names, err := bgrt.Read(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("reading BGRT %s: %w", processBGRT, err)
	}

	root, err := newick.ParseFile(processTree)
	if err != nil {
		return fmt.Errorf("parsing tree %s: %w", processTree, err)
	}

	// spec §7 "Duplicate / missing ID": a tree naming an organism
	// absent from the BGRT's name map is not fatal; BuildEnforced still
	// completes construction and reports the mismatch here.
	pt, ok := phylotree.BuildEnforced(root, processOG, names, true)
	if !ok {
		iolog.Warn("tree %s names organisms not present in BGRT %s", processTree, processBGRT)
	}

	traverse.Run(bg, pt, traverse.Options{K: processOG, Workers: processPar})

	writer := emit.New(emit.Format(processOut))
	if writer == nil {
		return fmt.Errorf("unknown --out format %q", processOut)
	}
	w, closeFn, err := openOutput(processOutFile)
	if err != nil {
		return err
	}
	defer closeFn()
	return writer.Write(w, pt, names)
}
