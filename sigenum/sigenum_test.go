package sigenum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScenarioF_EnumerateL2DNA exercises spec.md §8 Scenario F.
func TestScenarioF_EnumerateL2DNA(t *testing.T) {
	want := []string{
		"AA", "AC", "AG", "AT",
		"CA", "CC", "CG", "CT",
		"GA", "GC", "GG", "GT",
		"TA", "TC", "TG", "TT",
	}

	e := New(2, DNA)
	var got []string
	for {
		s, ok := e.Next()
		if !ok {
			break
		}
		got = append(got, s)
	}
	require.Equal(t, want, got)

	s, ok := e.Next()
	require.False(t, ok)
	require.Empty(t, s)
}

func TestEnumeratorRNAUsesU(t *testing.T) {
	e := New(1, RNA)
	var got []string
	for {
		s, ok := e.Next()
		if !ok {
			break
		}
		got = append(got, s)
	}
	require.Equal(t, []string{"A", "C", "G", "U"}, got)
}

func TestEnumeratorRemaining(t *testing.T) {
	e := New(2, DNA)
	require.Equal(t, uint64(16), e.Remaining())
	e.Next()
	require.Equal(t, uint64(15), e.Remaining())
}
