// Package thermo implements the thermodynamics filter (spec §4.3): a
// predicate over candidate oligonucleotide strings based on G+C content
// and melting temperature, computed either with the short-sequence
// Marmur/Doty approximation or the SantaLucia nearest-neighbour model.
//
// Grounded on bebop-poly/primers.go's nearestNeighborsThermodynamics
// table and SantaLucia function shape, adapted from poly's
// whole-sequence self-complementarity penalty to the spec's per-terminal
// corrections.
package thermo

import (
	"math"
	"strings"

	"github.com/evolbioinfo/cassis/oligo"
)

// pair holds enthalpy (ΔH, kcal/mol) and entropy (ΔS, cal/mol·K) values
// for a nearest-neighbour dinucleotide step.
type pair struct{ H, S float64 }

// nearestNeighbor is the SantaLucia 1998 unified NN parameter table,
// grounded verbatim on bebop-poly/primers.go's
// nearestNeighborsThermodynamics map.
var nearestNeighbor = map[string]pair{
	"AA": {-7.6, -21.3}, "TT": {-7.6, -21.3},
	"AT": {-7.2, -20.4}, "TA": {-7.2, -21.3},
	"CA": {-8.5, -22.7}, "TG": {-8.5, -22.7},
	"GT": {-8.4, -22.4}, "AC": {-8.4, -22.4},
	"CT": {-7.8, -21.0}, "AG": {-7.8, -21.0},
	"GA": {-8.2, -22.2}, "TC": {-8.2, -22.2},
	"CG": {-10.6, -27.2}, "GC": {-9.8, -24.4},
	"GG": {-8.0, -19.9}, "CC": {-8.0, -19.9},
}

// terminalAT / terminalGC are the per-terminal-base corrections from
// spec.md §4.3 (+2.3/+4.1 for A·T ends, +0.1/-2.8 for G·C ends) — this
// replaces poly's single whole-molecule self-complementarity penalty.
var terminalAT = pair{2.3, 4.1}
var terminalGC = pair{0.1, -2.8}

const gasConstant = 1.987 // cal / (mol·K)

// Params bundles the concentration inputs the melting-temperature model
// needs (spec §4.3).
type Params struct {
	OligoConc float64 // c_oligo, mol/L
	NaConc    float64 // [Na+], mol/L
	MgConc    float64 // [Mg2+], mol/L
}

// DefaultParams mirrors the conventional defaults used by bebop-poly's
// CalcTM (500nM oligo, 50mM Na+, no Mg2+).
func DefaultParams() Params {
	return Params{OligoConc: 500e-9, NaConc: 50e-3, MgConc: 0}
}

// GCContent returns the fraction (0..1) of G/C bases in seq, computed
// over the ambiguity-stripped sequence.
func GCContent(seq string) float64 {
	seq = oligo.StripAmbiguous(seq)
	if len(seq) == 0 {
		return 0
	}
	gc := strings.Count(seq, "G") + strings.Count(seq, "C")
	return float64(gc) / float64(len(seq))
}

// BasicTm computes the "quick" melting temperature: Marmur/Doty for
// sequences shorter than 14nt, Wallace's rule-of-thumb otherwise (spec
// §4.3).
func BasicTm(seq string) float64 {
	seq = oligo.StripAmbiguous(seq)
	l := len(seq)
	if l == 0 {
		return math.NaN()
	}
	a := float64(strings.Count(seq, "A") + strings.Count(seq, "T"))
	gc := float64(strings.Count(seq, "G") + strings.Count(seq, "C"))
	if l < 14 {
		return 4*gc + 2*a
	}
	return 64.9 + 41*(gc-16.4)/float64(l)
}

// SantaLucia computes the nearest-neighbour melting temperature using
// the unified SantaLucia 1998 parameters, terminal-base corrections and
// a salt correction (spec §4.3). Returns NaN/0/0 if seq (after stripping
// ambiguous bases) has fewer than 2 bases.
func SantaLucia(seq string, p Params) (tm, dH, dS float64) {
	seq = oligo.StripAmbiguous(seq)
	l := len(seq)
	if l < 2 {
		return math.NaN(), 0, 0
	}

	for i := 0; i+1 < l; i++ {
		np := nearestNeighbor[seq[i:i+2]]
		dH += np.H
		dS += np.S
	}

	for _, end := range []byte{seq[0], seq[l-1]} {
		if end == 'A' || end == 'T' {
			dH += terminalAT.H
			dS += terminalAT.S
		} else {
			dH += terminalGC.H
			dS += terminalGC.S
		}
	}

	saltEffect := p.NaConc + 140*p.MgConc
	if saltEffect > 0 {
		dS += 0.368 * float64(l) * math.Log(saltEffect)
	}

	tm = 1000*dH/(dS+gasConstant*math.Log(p.OligoConc/4)) - 273.15
	return
}

// Range is an inclusive [Min, Max] bound; Predicate accepts any value
// within. A zero Range (Min==Max==0) is treated as "unset" only by the
// caller's construction convention — Filter always treats both bounds as
// literal, so an unconstrained range must be supplied as
// [-Inf, +Inf] explicitly.
type Range struct {
	Min, Max float64
}

// Contains reports whether v falls within [r.Min, r.Max] inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Filter is the thermodynamics predicate over candidate strings (spec
// §4.3): passes if the computed GC% and Tm both fall within the
// configured ranges. Uses the SantaLucia model when UseSantaLucia is
// set, otherwise BasicTm.
type Filter struct {
	GC            Range
	Tm            Range
	UseSantaLucia bool
	Params        Params
}

// NewFilter returns a Filter using the SantaLucia model with default
// concentration parameters.
func NewFilter(gc, tmRange Range) *Filter {
	return &Filter{GC: gc, Tm: tmRange, UseSantaLucia: true, Params: DefaultParams()}
}

// Passes evaluates the predicate for seq. An empty remainder after
// ambiguous-base stripping always rejects (spec §7).
func (f *Filter) Passes(seq string) bool {
	stripped := oligo.StripAmbiguous(seq)
	if len(stripped) == 0 {
		return false
	}
	gc := GCContent(stripped)
	if !f.GC.Contains(gc) {
		return false
	}
	var tm float64
	if f.UseSantaLucia && len(stripped) >= 2 {
		tm, _, _ = SantaLucia(stripped, f.Params)
	} else {
		tm = BasicTm(stripped)
	}
	return f.Tm.Contains(tm)
}
