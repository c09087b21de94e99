package namemap

import (
	"testing"

	"github.com/evolbioinfo/cassis/idset"
	"github.com/stretchr/testify/require"
)

func TestAppendAssignsDenseIdsInFirstSeenOrder(t *testing.T) {
	m := New()
	require.Equal(t, idset.Id(0), m.Append("alpha"))
	require.Equal(t, idset.Id(1), m.Append("beta"))
	require.Equal(t, idset.Id(0), m.Append("alpha"))
	require.Equal(t, 2, m.Len())
}

func TestLookupAndName(t *testing.T) {
	m := New()
	m.Append("alpha")
	id, ok := m.Lookup("alpha")
	require.True(t, ok)
	require.Equal(t, "alpha", m.Name(id))

	_, ok = m.Lookup("missing")
	require.False(t, ok)
}

func TestUndefMapsToEmptyName(t *testing.T) {
	m := New()
	m.Append("alpha")
	require.Equal(t, "", m.Name(idset.Undef))
	require.Equal(t, "", m.Name(999))
}

func TestCloneIsIndependent(t *testing.T) {
	m := New()
	m.Append("alpha")
	clone := m.Clone()
	clone.Append("beta")
	require.Equal(t, 1, m.Len())
	require.Equal(t, 2, clone.Len())
}
