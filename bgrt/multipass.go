package bgrt

import "github.com/evolbioinfo/cassis/idset"

// Entry is one (signature, matched-ids, outgroup-count) triple destined
// for a BGRT build.
type Entry struct {
	Signature     string
	Matched       *idset.Sorted
	OutgroupCount idset.Id
}

// ChoosePrefixLength implements spec §9's multi-pass heuristic: the
// smallest prefix length p such that estimatedMemory/5^p fits
// availableMemory. p=0 (a single, ordinary pass) is returned whenever
// the full build already fits.
func ChoosePrefixLength(estimatedMemory, availableMemory uint64) int {
	if availableMemory == 0 || estimatedMemory <= availableMemory {
		return 0
	}
	p := 0
	denom := uint64(1)
	for estimatedMemory/denom > availableMemory {
		p++
		denom *= 5
		if p > 12 {
			// Even a 5^12-way split doesn't help; give up growing p
			// further and let the caller fail loudly instead of looping.
			break
		}
	}
	return p
}

// MultiPassBuilder implements spec §9's multi-pass BGRT build: when the
// full signature space does not fit in memory at once, partition it by
// a fixed-length prefix over {A, C, G, T, N} and build/flush one
// independent subtree per prefix.
//
// Grounded on spec §9's "Multi-pass BGRT build" design note directly;
// kept in scope because §2's driver (C9) explicitly budgets for the
// resource-exhaustion handling named in §7.
type MultiPassBuilder struct {
	NumSpecies uint32
	Params     Params
	PrefixLen  int
}

// NewMultiPassBuilder returns a builder for prefixLen (see
// ChoosePrefixLength). prefixLen=0 degenerates to a single ordinary
// pass over every entry.
func NewMultiPassBuilder(numSpecies uint32, params Params, prefixLen int) *MultiPassBuilder {
	return &MultiPassBuilder{NumSpecies: numSpecies, Params: params, PrefixLen: prefixLen}
}

// Build runs one pass per prefix of length PrefixLen: fetch(prefix)
// supplies only the entries whose signature starts with that prefix,
// the pass inserts them into a fresh Tree, and flush(prefix, tree)
// persists that subtree (e.g. by bgrt.Write to a per-prefix file)
// before it is discarded. Prefixes for which fetch returns no entries
// are skipped without calling flush.
func (b *MultiPassBuilder) Build(fetch func(prefix string) []Entry, flush func(prefix string, tree *Tree) error) error {
	for _, prefix := range prefixes(b.PrefixLen) {
		entries := fetch(prefix)
		if len(entries) == 0 {
			continue
		}
		tree := New(b.NumSpecies, b.Params)
		for _, e := range entries {
			tree.Insert(e.Signature, e.Matched, e.OutgroupCount)
		}
		if err := flush(prefix, tree); err != nil {
			return err
		}
	}
	return nil
}

var prefixLetters = [5]byte{'A', 'C', 'G', 'T', 'N'}

func prefixes(length int) []string {
	if length <= 0 {
		return []string{""}
	}
	total := 1
	for i := 0; i < length; i++ {
		total *= 5
	}
	out := make([]string, 0, total)
	buf := make([]byte, length)
	var rec func(pos int)
	rec = func(pos int) {
		if pos == length {
			out = append(out, string(buf))
			return
		}
		for _, l := range prefixLetters {
			buf[pos] = l
			rec(pos + 1)
		}
	}
	rec(0)
	return out
}
