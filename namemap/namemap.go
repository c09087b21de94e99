// Package namemap implements the bijection between organism names and
// dense integer ids (spec §4.2), grounded on the tipIndex/name pairing
// used throughout gotree's Tree type.
package namemap

import "github.com/evolbioinfo/cassis/idset"

// Map is a bijection between organism names and dense ids assigned by
// append in first-seen order.
type Map struct {
	nameToID map[string]idset.Id
	idToName []string
}

// New returns an empty Map.
func New() *Map {
	return &Map{nameToID: make(map[string]idset.Id)}
}

// Append returns the id for name, minting a new dense id if name has not
// been seen before.
func (m *Map) Append(name string) idset.Id {
	if id, ok := m.nameToID[name]; ok {
		return id
	}
	id := idset.Id(len(m.idToName))
	m.nameToID[name] = id
	m.idToName = append(m.idToName, name)
	return id
}

// Lookup returns the id bound to name, and whether name is known.
func (m *Map) Lookup(name string) (idset.Id, bool) {
	id, ok := m.nameToID[name]
	return id, ok
}

// Name returns the name bound to id. Returns "" for idset.Undef or any
// id outside the current range (spec §4.2: "UNDEF maps to the empty name").
func (m *Map) Name(id idset.Id) string {
	if id == idset.Undef || int(id) >= len(m.idToName) {
		return ""
	}
	return m.idToName[id]
}

// Len returns the number of distinct names registered.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.idToName)
}

// Names returns every registered name, indexed by id.
func (m *Map) Names() []string {
	return m.idToName
}

// Clone deep-copies the Map (spec §4.2: "deep-copy assignment").
func (m *Map) Clone() *Map {
	out := New()
	out.idToName = make([]string, len(m.idToName))
	copy(out.idToName, m.idToName)
	out.nameToID = make(map[string]idset.Id, len(m.nameToID))
	for k, v := range m.nameToID {
		out.nameToID[k] = v
	}
	return out
}
