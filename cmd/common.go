package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/evolbioinfo/cassis/fasta"
	"github.com/evolbioinfo/cassis/idset"
	"github.com/evolbioinfo/cassis/namemap"
	"github.com/evolbioinfo/cassis/oligo"
	"github.com/evolbioinfo/cassis/seqindex"
	"github.com/evolbioinfo/cassis/thermo"
)

// parseIntRange parses a "MIN-MAX" CLI flag value (spec.md §6 "--len
// MIN-MAX").
func parseIntRange(s string) (min, max int, err error) {
	a, b, err := splitRange(s)
	if err != nil {
		return 0, 0, err
	}
	if min, err = strconv.Atoi(a); err != nil {
		return 0, 0, fmt.Errorf("range %q: %w", s, err)
	}
	if max, err = strconv.Atoi(b); err != nil {
		return 0, 0, fmt.Errorf("range %q: %w", s, err)
	}
	return min, max, nil
}

// parseFloatRange parses a "MIN-MAX" CLI flag value (spec.md §6 "--gc
// MIN-MAX", "--temp MIN-MAX"), tolerating a leading '-' on MIN.
func parseFloatRange(s string) (min, max float64, err error) {
	a, b, err := splitRange(s)
	if err != nil {
		return 0, 0, err
	}
	if min, err = strconv.ParseFloat(a, 64); err != nil {
		return 0, 0, fmt.Errorf("range %q: %w", s, err)
	}
	if max, err = strconv.ParseFloat(b, 64); err != nil {
		return 0, 0, fmt.Errorf("range %q: %w", s, err)
	}
	return min, max, nil
}

func splitRange(s string) (a, b string, err error) {
	start := 0
	if strings.HasPrefix(s, "-") {
		start = 1
	}
	idx := strings.IndexByte(s[start:], '-')
	if idx < 0 {
		return "", "", fmt.Errorf("range %q: expected MIN-MAX", s)
	}
	sep := start + idx
	return s[:sep], s[sep+1:], nil
}

// openOutput returns a writer for path, or os.Stdout for an empty path
// (spec.md §6's --output flag defaults to stdout).
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

// loadSequencesInto reads every FASTA file in paths, registers each
// record's name in names (minting dense ids in first-seen order, spec
// §4.2) and adds the sequence to idx (spec §6's consumed
// add_sequence(seq, id) interface).
func loadSequencesInto(idx seqindex.Index, names *namemap.Map, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("at least one --seq file is required")
	}
	for _, path := range paths {
		recs, err := fasta.ParseFile(path)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			id := names.Append(rec.Name)
			if !idx.AddSequence(rec.Seq, id) {
				return fmt.Errorf("index rejected sequence %q from %s", rec.Name, path)
			}
		}
	}
	return nil
}

// matchOpts bundles the matching-related CLI flags shared by onepass
// and create (spec §6's "matching/thermo/index subset").
type matchOpts struct {
	MinLen, MaxLen int
	MM, Dist       int
	IsRNA          bool
	RejectRC       bool
	Weighted       bool
	Workers        int
}

// enumerateMatches drives the spec §4.7/§6 candidate pipeline: for
// every length in [MinLen, MaxLen], stream candidate signatures from
// idx, apply the thermodynamics filter (spec §4.3), query idx for the
// matched-ids/outgroup-count pair (spec §6 match_signature), optionally
// reject by the --rc rule (spec §6: "reject if reverse complement hits
// extra organisms"), and invoke onMatch for every surviving candidate.
//
// Candidate filtering/matching for a single length is fan-out across
// opts.Workers goroutines reading from a shared channel, with onMatch
// itself serialised by a mutex — the embarrassingly-parallel producer
// side of spec §5's worker-pool model, grounded on
// pythseq-gotree/support/booster.go's mutex-guarded shared-counter
// idiom, adapted from ComputeValue's shared boot-tree cursor to a
// shared candidate-signature channel.
func enumerateMatches(idx seqindex.Index, filter *thermo.Filter, opts matchOpts, onMatch func(sig string, matched *idset.Sorted, outgroup idset.Id)) error {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	var mu sync.Mutex

	for length := opts.MinLen; length <= opts.MaxLen; length++ {
		if !idx.InitFetchSignature(length, opts.IsRNA) {
			return fmt.Errorf("index: cannot enumerate length-%d signatures", length)
		}

		jobs := make(chan string, 4*workers)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for sig := range jobs {
					processCandidate(idx, filter, opts, sig, &mu, onMatch)
				}
			}()
		}
		for {
			sig, ok := idx.FetchNextSignature()
			if !ok {
				break
			}
			jobs <- sig
		}
		close(jobs)
		wg.Wait()
	}
	return nil
}

func processCandidate(idx seqindex.Index, filter *thermo.Filter, opts matchOpts, sig string, mu *sync.Mutex, onMatch func(string, *idset.Sorted, idset.Id)) {
	if filter != nil && !filter.Passes(sig) {
		return
	}
	matched, outgroup, ok := idx.MatchSignature(sig, opts.MM, opts.Dist, opts.Weighted)
	if !ok || matched == nil || matched.Len() == 0 {
		return
	}
	if opts.RejectRC {
		rc := oligo.ReverseComplement(sig)
		rcMatched, _, rcOK := idx.MatchSignature(rc, opts.MM, opts.Dist, opts.Weighted)
		if rcOK && rcMatched != nil && !rcMatched.IsSubsetOf(matched) {
			return
		}
	}
	mu.Lock()
	onMatch(sig, matched, outgroup)
	mu.Unlock()
}
