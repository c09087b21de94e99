package phylotree

import "sync"

// Pool is the CaSSiS tree's canonical signature-string arena (spec §3
// "signature lifecycle"): every signature inserted via AddMatching is
// interned here once, so any number of per-node signatures[k] lists can
// reference the same backing string without the tree ever holding two
// distinct owners of the same text.
//
// Grounded on original_source/cassis/pool.h's StrPool: a map keyed by
// the string's own value, returning the existing entry on a repeat
// insert instead of allocating a duplicate.
type Pool struct {
	mu      sync.Mutex
	strings map[string]string
}

// NewPool returns an empty signature pool.
func NewPool() *Pool {
	return &Pool{strings: make(map[string]string)}
}

// Intern returns the canonical copy of s, registering s as canonical on
// first sight.
func (p *Pool) Intern(s string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if canon, ok := p.strings[s]; ok {
		return canon
	}
	p.strings[s] = s
	return s
}

// Len returns the number of distinct signatures interned so far.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.strings)
}
