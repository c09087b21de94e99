package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evolbioinfo/cassis/bgrt"
)

var infoBGRT string

// infoCmd implements spec.md §6's `info` verb: print the parameter set
// embedded in a BGRT file's header (spec §6 payload header), per the
// SPEC_FULL.md "info verb detail" supplemented feature.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the parameters embedded in a BGRT file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo()
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoBGRT, "bgrt", "", "Input BGRT file")
	_ = infoCmd.MarkFlagRequired("bgrt")
}

func runInfo() error {
	f, err := os.Open(infoBGRT)
	if err != nil {
		return fmt.Errorf("opening %s: %w", infoBGRT, err)
	}
	defer f.Close()
	bg, names, err := bgrt.Read(f)
	if err != nil {
		return fmt.Errorf("reading BGRT %s: %w", infoBGRT, err)
	}

	p := bg.Params
	fmt.Printf("species          : %d\n", p.NumSpecies)
	fmt.Printf("base4_compressed : %v\n", p.Base4Compressed)
	fmt.Printf("ingroup_mm_dist  : %d\n", p.IngroupMMDist)
	fmt.Printf("outgroup_mm_dist : %d\n", p.OutgroupMMDist)
	fmt.Printf("length range     : %d-%d\n", p.MinLen, p.MaxLen)
	fmt.Printf("gc range         : %.3f-%.3f\n", p.MinGC, p.MaxGC)
	fmt.Printf("temp range       : %.1f-%.1f\n", p.MinTemp, p.MaxTemp)
	fmt.Printf("comment          : %s\n", p.Comment)
	fmt.Printf("names registered : %d\n", names.Len())
	fmt.Printf("bgrt nodes       : %d\n", bg.NodeCount())
	fmt.Printf("signatures       : %d\n", bg.SignatureCount())
	return nil
}
