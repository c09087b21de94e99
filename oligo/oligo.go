// Package oligo provides small sequence helpers shared by the
// thermodynamics filter and the CLI's --rc flag: reverse-complement and
// base classification, grounded on bebop-poly's primers.go / checks.go.
//
// spec.md §9 flags that the original complement.h indexes with
// len(seq)-i (reading one byte past the string). That off-by-one is
// deliberately not replicated here: ReverseComplement complements
// seq[len-1-i].
package oligo

import "strings"

var complement = map[byte]byte{
	'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C',
	'U': 'A',
	'a': 't', 't': 'a', 'c': 'g', 'g': 'c', 'u': 'a',
	'N': 'N', 'n': 'n',
}

// ReverseComplement returns the reverse complement of seq. Bytes with no
// known complement (ambiguity codes beyond N) are passed through
// unchanged, keeping the function total over arbitrary input.
func ReverseComplement(seq string) string {
	out := make([]byte, len(seq))
	n := len(seq)
	for i := 0; i < n; i++ {
		c := seq[n-1-i]
		if comp, ok := complement[c]; ok {
			out[i] = comp
		} else {
			out[i] = c
		}
	}
	return string(out)
}

// IsSelfComplementary reports whether seq equals its own reverse
// complement, case-insensitively.
func IsSelfComplementary(seq string) bool {
	return strings.EqualFold(seq, ReverseComplement(seq))
}

// IsDNA reports whether every base in seq is one of A/C/G/T (any case).
func IsDNA(seq string) bool {
	for _, b := range []byte(strings.ToUpper(seq)) {
		switch b {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return true
}

// IsRNA reports whether every base in seq is one of A/C/G/U (any case).
func IsRNA(seq string) bool {
	for _, b := range []byte(strings.ToUpper(seq)) {
		switch b {
		case 'A', 'C', 'G', 'U':
		default:
			return false
		}
	}
	return true
}

// StripAmbiguous removes any byte that is not A/C/G/T/U (case
// insensitive), as required by spec §4.3/§7 ("ambiguous/unknown bases
// are dropped before computation").
func StripAmbiguous(seq string) string {
	var b strings.Builder
	b.Grow(len(seq))
	for _, c := range []byte(strings.ToUpper(seq)) {
		switch c {
		case 'A', 'C', 'G', 'T', 'U':
			b.WriteByte(c)
		}
	}
	return b.String()
}
