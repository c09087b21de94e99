package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evolbioinfo/cassis/bgrt"
	"github.com/evolbioinfo/cassis/idset"
	"github.com/evolbioinfo/cassis/namemap"
	"github.com/evolbioinfo/cassis/seqindex"
	"github.com/evolbioinfo/cassis/thermo"
)

var (
	createBGRT    string
	createSeqs    []string
	createMM      int
	createDist    int
	createLen     string
	createGC      string
	createTemp    string
	createIndex   string
	createComment string
)

// createCmd implements spec.md §2's two-pass pipeline, pass one: the
// same sequence-index/thermodynamics/match front end as onepass, but
// every (signature, matched-ids) pair is inserted into a BGRT (spec
// §4.4) instead of a CaSSiS tree, and the result is serialised to disk
// (spec §4.8/§6) for later `cassis process` runs against any tree over
// the same organism set.
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Build a BGRT file from sequences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate()
	},
}

func init() {
	RootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createBGRT, "bgrt", "", "Output BGRT file")
	createCmd.Flags().StringArrayVar(&createSeqs, "seq", nil, "Input sequence file (repeatable)")
	createCmd.Flags().IntVar(&createMM, "mm", 0, "Ingroup mismatch count")
	createCmd.Flags().IntVar(&createDist, "dist", 0, "Outgroup mismatch window upper bound")
	createCmd.Flags().StringVar(&createLen, "len", "18-18", "Signature length range MIN-MAX")
	createCmd.Flags().StringVar(&createGC, "gc", "0-100", "G+C% range MIN-MAX")
	createCmd.Flags().StringVar(&createTemp, "temp", "-1000-1000", "Melting temperature range MIN-MAX (deg C)")
	createCmd.Flags().StringVar(&createIndex, "index", "minipt", "Sequence search index: minipt|arbpt|ptpan")
	createCmd.Flags().StringVar(&createComment, "comment", "", "Comment embedded in the BGRT header")
	_ = createCmd.MarkFlagRequired("bgrt")
	_ = createCmd.MarkFlagRequired("seq")
}

func runCreate() error {
	minLen, maxLen, err := parseIntRange(createLen)
	if err != nil {
		return fmt.Errorf("--len: %w", err)
	}
	minGC, maxGC, err := parseFloatRange(createGC)
	if err != nil {
		return fmt.Errorf("--gc: %w", err)
	}
	minTemp, maxTemp, err := parseFloatRange(createTemp)
	if err != nil {
		return fmt.Errorf("--temp: %w", err)
	}

	names := namemap.New()
	idx := seqindex.NewMemIndex()
	if err := loadSequencesInto(idx, names, createSeqs); err != nil {
		return err
	}
	if !idx.ComputeIndex() {
		return fmt.Errorf("index: compute failed")
	}

	bg := bgrt.New(uint32(names.Len()), bgrt.Params{
		IngroupMMDist:  uint32(createMM),
		OutgroupMMDist: uint32(createDist),
		MinLen:         uint32(minLen),
		MaxLen:         uint32(maxLen),
		MinGC:          float32(minGC / 100),
		MaxGC:          float32(maxGC / 100),
		MinTemp:        float32(minTemp),
		MaxTemp:        float32(maxTemp),
		Comment:        createComment,
	})

	filter := &thermo.Filter{
		GC:            thermo.Range{Min: minGC / 100, Max: maxGC / 100},
		Tm:            thermo.Range{Min: minTemp, Max: maxTemp},
		UseSantaLucia: true,
		Params:        thermo.DefaultParams(),
	}

	// BGRT insertion (bgrt.Tree.Insert) mutates shared trie structure
	// and is not safe for concurrent callers, unlike phylotree's
	// AddMatching; create always runs the candidate scan single
	// threaded (spec §6 lists no --par flag for create).
	err = enumerateMatches(idx, filter, matchOpts{
		MinLen: minLen, MaxLen: maxLen,
		MM: createMM, Dist: createDist,
		Workers: 1,
	}, func(sig string, matched *idset.Sorted, outgroup idset.Id) {
		bg.Insert(sig, matched, outgroup)
	})
	if err != nil {
		return err
	}

	f, err := os.Create(createBGRT)
	if err != nil {
		return fmt.Errorf("creating %s: %w", createBGRT, err)
	}
	defer f.Close()
	if err := bgrt.Write(f, bg, names); err != nil {
		return fmt.Errorf("writing %s: %w", createBGRT, err)
	}
	return nil
}
