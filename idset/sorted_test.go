package idset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortedInsertMaintainsOrder(t *testing.T) {
	s := &Sorted{}
	for _, v := range []Id{5, 1, 3, 1, 9, 0} {
		s.Insert(v)
	}
	require.Equal(t, []Id{0, 1, 3, 5, 9}, s.Raw())
}

func TestSortedInsertDuplicateReturnsExistingPosition(t *testing.T) {
	s := &Sorted{}
	s.Insert(1)
	s.Insert(2)
	s.Insert(3)
	pos := s.Insert(2)
	require.Equal(t, 1, pos)
	require.Equal(t, []Id{1, 2, 3}, s.Raw())
}

func TestSortedGrowthNeverShrinks(t *testing.T) {
	s := &Sorted{}
	for i := Id(0); i < 600; i++ {
		s.Insert(i)
	}
	capBefore := cap(s.Raw())
	require.Equal(t, 600, s.Len())
	// Removing is not supported; ensure cap only grows across inserts.
	s.Insert(600)
	require.GreaterOrEqual(t, cap(s.Raw()), capBefore)
}

func TestSortedIsSubsetOf(t *testing.T) {
	a := NewSorted(1, 2, 3)
	b := NewSorted(0, 1, 2, 3, 4)
	require.True(t, a.IsSubsetOf(b))
	require.False(t, b.IsSubsetOf(a))

	empty := &Sorted{}
	require.True(t, empty.IsSubsetOf(a))
	require.False(t, a.IsSubsetOf(empty))
}

func TestDiffThreeWay(t *testing.T) {
	a := NewSorted(1, 2, 3, 7)
	b := NewSorted(2, 3, 4, 5)

	onlyA, onlyB, both := Diff(a, b)
	require.Equal(t, []Id{1, 7}, onlyA.Raw())
	require.Equal(t, []Id{4, 5}, onlyB.Raw())
	require.Equal(t, []Id{2, 3}, both.Raw())
}

func TestDiffAbsentWhenEmpty(t *testing.T) {
	a := NewSorted(1, 2, 3)
	b := NewSorted(1, 2, 3)
	onlyA, onlyB, both := Diff(a, b)
	require.Nil(t, onlyA)
	require.Nil(t, onlyB)
	require.Equal(t, []Id{1, 2, 3}, both.Raw())
}

func TestDiffExactDisjoint(t *testing.T) {
	a := NewSorted(1, 2)
	b := NewSorted(3, 4)
	onlyA, onlyB, both := Diff(a, b)
	require.Equal(t, []Id{1, 2}, onlyA.Raw())
	require.Equal(t, []Id{3, 4}, onlyB.Raw())
	require.Nil(t, both)
}

func TestSortedCloneIsIndependent(t *testing.T) {
	a := NewSorted(1, 2, 3)
	b := a.Clone()
	b.Insert(4)
	require.Equal(t, []Id{1, 2, 3}, a.Raw())
	require.Equal(t, []Id{1, 2, 3, 4}, b.Raw())
}

func TestUnorderedPreservesInsertionOrder(t *testing.T) {
	u := &Unordered{}
	u.Append(3)
	u.Append(1)
	u.Append(3)
	require.Equal(t, []Id{3, 1, 3}, u.Raw())
	require.Equal(t, 3, u.Len())
}
