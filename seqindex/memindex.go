package seqindex

import (
	"strings"

	"github.com/evolbioinfo/cassis/idset"
	"github.com/evolbioinfo/cassis/sigenum"
)

// MemIndex is a small, correctness-focused in-memory Index: exhaustive
// sliding-window Hamming matching over the raw sequences held in
// memory. It exists to let cmd's pipelines, and their tests, exercise a
// real Index without depending on an external prefix-tree library (spec
// §1 explicitly places the real index out of scope).
type MemIndex struct {
	seqs     map[idset.Id]string
	computed bool

	length int
	isRNA  bool
	enum   *sigenum.Enumerator
}

// NewMemIndex returns an empty in-memory index.
func NewMemIndex() *MemIndex {
	return &MemIndex{seqs: make(map[idset.Id]string)}
}

// AddSequence implements Index.
func (m *MemIndex) AddSequence(seq string, id idset.Id) bool {
	if m.computed {
		return false
	}
	m.seqs[id] = strings.ToUpper(seq)
	return true
}

// ComputeIndex implements Index. Idempotent.
func (m *MemIndex) ComputeIndex() bool {
	m.computed = true
	return true
}

// InitFetchSignature implements Index by wiring a sigenum.Enumerator,
// the supplemented spec §4.7 candidate-signature producer, as the
// streaming source used when the index itself has no better one.
func (m *MemIndex) InitFetchSignature(length int, isRNA bool) bool {
	if !m.computed || length <= 0 {
		return false
	}
	m.length = length
	m.isRNA = isRNA
	alphabet := sigenum.DNA
	if isRNA {
		alphabet = sigenum.RNA
	}
	m.enum = sigenum.New(length, alphabet)
	return true
}

// FetchNextSignature implements Index.
func (m *MemIndex) FetchNextSignature() (string, bool) {
	if m.enum == nil {
		return "", false
	}
	return m.enum.Next()
}

// MatchSignature implements Index via exhaustive sliding-window Hamming
// distance: an organism is ingroup if some window matches within mm
// mismatches, outgroup (counted, not added to matched) if its best
// window is within (mm, mmDist], and absent otherwise.
func (m *MemIndex) MatchSignature(signature string, mm, mmDist int, useWeighted bool) (*idset.Sorted, idset.Id, bool) {
	if len(signature) == 0 {
		return nil, 0, false
	}
	signature = strings.ToUpper(signature)
	matched := &idset.Sorted{}
	var outgroupCount idset.Id

	for id, seq := range m.seqs {
		best, found := bestWindowDistance(seq, signature)
		if !found {
			continue
		}
		switch {
		case best <= mm:
			matched.Insert(id)
		case best <= mmDist:
			outgroupCount++
		}
	}
	if matched.Len() == 0 {
		return nil, outgroupCount, true
	}
	return matched, outgroupCount, true
}

func bestWindowDistance(seq, sig string) (int, bool) {
	l := len(sig)
	if len(seq) < l {
		return 0, false
	}
	best := -1
	for start := 0; start+l <= len(seq); start++ {
		d := hamming(seq[start:start+l], sig)
		if best == -1 || d < best {
			best = d
		}
	}
	return best, best != -1
}

func hamming(a, b string) int {
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}
