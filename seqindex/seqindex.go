// Package seqindex specifies the sequence-search index contract CaSSiS
// consumes but does not implement (spec §1 "Out of scope": "the
// underlying sequence search index... specified only by its
// interface"), plus a small in-memory reference implementation used to
// exercise the `onepass`/`create` pipelines end to end in tests.
//
// Grounded on spec §6's consumed-interface listing
// (add_sequence/compute_index/init_fetch_signature/
// fetch_next_signature/match_signature).
package seqindex

import "github.com/evolbioinfo/cassis/idset"

// Index is the contract any real k-mer/prefix-tree index (miniPT,
// ARBpt, PTPan — spec §6 `--index`) implements. Methods return false on
// any failure the CLI should treat as fatal I/O/parse error (spec §7);
// FetchNextSignature's second return is the §4.7-style "no more
// signatures" sentinel.
type Index interface {
	// AddSequence registers one organism's sequence under id. Valid only
	// before ComputeIndex is called.
	AddSequence(seq string, id idset.Id) bool

	// ComputeIndex finalises the index. Idempotent: calling it again
	// after success is a no-op that returns true.
	ComputeIndex() bool

	// InitFetchSignature starts a streaming enumeration of every
	// candidate signature of the given length over the index's content.
	InitFetchSignature(length int, isRNA bool) bool

	// FetchNextSignature returns the next candidate signature, or ("",
	// false) once exhausted.
	FetchNextSignature() (string, bool)

	// MatchSignature reports the organism ids signature matches with at
	// most mm mismatches (the ingroup window), and separately counts ids
	// matched with between mm and mmDist mismatches (the "supposed
	// outgroup" window used as the BGRT's per-signature outgroup-match
	// count). ok is false if signature contains characters the index
	// cannot search (e.g. ambiguity codes it does not expand).
	MatchSignature(signature string, mm, mmDist int, useWeighted bool) (matched *idset.Sorted, outgroupCount idset.Id, ok bool)
}
