package thermo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGCContent(t *testing.T) {
	require.InDelta(t, 0.5, GCContent("ACGT"), 1e-9)
	require.InDelta(t, 0.0, GCContent("AAAA"), 1e-9)
	require.InDelta(t, 1.0, GCContent("GCGC"), 1e-9)
}

func TestBasicTmShortUsesMarmurDoty(t *testing.T) {
	// 4*(G+C) + 2*(A+T) for a 4nt sequence.
	require.InDelta(t, 4*2+2*2, BasicTm("ACGT"), 1e-9)
}

func TestBasicTmLongUsesWallace(t *testing.T) {
	seq := "ACGTACGTACGTACGT" // 16nt, 8 GC
	got := BasicTm(seq)
	want := 64.9 + 41*(8.0-16.4)/16.0
	require.InDelta(t, want, got, 1e-9)
}

func TestSantaLuciaRequiresAtLeastTwoBases(t *testing.T) {
	tm, dH, dS := SantaLucia("A", DefaultParams())
	require.True(t, math.IsNaN(tm))
	require.Equal(t, 0.0, dH)
	require.Equal(t, 0.0, dS)
}

func TestSantaLuciaTerminalCorrectionDiffersATvsGC(t *testing.T) {
	_, dhAT, _ := SantaLucia("ATAT", DefaultParams())
	_, dhGC, _ := SantaLucia("GCGC", DefaultParams())
	require.NotEqual(t, dhAT, dhGC)
}

func TestFilterRejectsEmptyAfterStripping(t *testing.T) {
	f := NewFilter(Range{0, 1}, Range{0, 200})
	require.False(t, f.Passes("NNNN"))
}

func TestFilterPassesWithinRanges(t *testing.T) {
	f := &Filter{GC: Range{0.4, 0.6}, Tm: Range{0, 100}, UseSantaLucia: false}
	require.True(t, f.Passes("ACGT"))
}

func TestFilterRejectsOutsideGC(t *testing.T) {
	f := &Filter{GC: Range{0.8, 1.0}, Tm: Range{0, 200}, UseSantaLucia: false}
	require.False(t, f.Passes("AAAA"))
}
