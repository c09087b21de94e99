// Package cmd implements the CaSSiS CLI driver (spec.md §2 "C9
// Driver", §6 "CLI surface"): a single executable with four verbs
// (onepass, create, process, info) orchestrating the two pipelines
// described in spec.md §2 over the core packages.
//
// One file per verb, package-level flag variables bound in each verb's
// init(), following pythseq-gotree/cmd's cobra layout.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/evolbioinfo/cassis/internal/iolog"
)

var verbose bool

// RootCmd is the cassis root command; every verb registers itself onto
// it from its own init().
var RootCmd = &cobra.Command{
	Use:   "cassis",
	Short: "CaSSiS: comprehensive and sensitive signature search",
	Long: `CaSSiS computes, for every node of a phylogenetic tree, the set of
short oligonucleotide signatures that hybridize with the sequences in
that node's subtree (the ingroup) while matching few or no sequences
outside it (the outgroup).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		iolog.Verbose = verbose
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
}

// Execute runs the root command. Any returned error is spec §7's
// "propagates to the CLI which prints to stderr and exits non-zero".
func Execute() error {
	return RootCmd.Execute()
}
