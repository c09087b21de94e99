package idset

// Unordered is an insertion-ordered multiset of Ids. The BGRT uses it to
// store the "supposed outgroup match" count reported by the sequence
// index for each signature, aligned by index with the node's signature
// list (spec §3).
type Unordered struct {
	vals []Id
}

// NewUnordered builds an Unordered multiset from the given values, in
// the order given.
func NewUnordered(vals ...Id) *Unordered {
	return &Unordered{vals: append([]Id(nil), vals...)}
}

// Append adds v to the end of the multiset.
func (u *Unordered) Append(v Id) {
	u.vals = append(u.vals, v)
}

// Len returns the number of elements.
func (u *Unordered) Len() int {
	if u == nil {
		return 0
	}
	return len(u.vals)
}

// At returns the i-th inserted element.
func (u *Unordered) At(i int) Id {
	return u.vals[i]
}

// Raw exposes the backing slice read-only.
func (u *Unordered) Raw() []Id {
	if u == nil {
		return nil
	}
	return u.vals
}
