package cnv

import (
	"sort"

	"github.com/biogo/store/llrb"
)

// sampleChr identifies one per-sample, per-chromosome call tree.
type sampleChr struct {
	sample string
	chr    string
}

// callKey orders calls within one (sample, chromosome) tree by start
// position, then stop, then insertion sequence.  The sequence number keeps
// duplicate intervals distinct and lets query results be returned in
// input order.
type callKey struct {
	start PosType
	stop  PosType
	seq   int
	call  *Call
}

// Compare compares two callKey objects for use in llrb.
func (k callKey) Compare(c2 llrb.Comparable) int {
	k2 := c2.(callKey)
	if k.start != k2.start {
		if k.start < k2.start {
			return -1
		}
		return 1
	}
	if k.stop != k2.stop {
		if k.stop < k2.stop {
			return -1
		}
		return 1
	}
	return k.seq - k2.seq
}

// CallSet indexes CNV calls by sample and chromosome for overlap queries.
// Calls are stored in llrb trees ordered by start position; each tree is
// flattened into a sorted slice the first time it is queried, so the usual
// build-once-query-many pattern pays the sort cost once.  Not safe for
// concurrent mutation, but Freeze followed by read-only queries is safe to
// share across goroutines.
type CallSet struct {
	trees   map[sampleChr]*llrb.Tree
	flat    map[sampleChr][]callKey
	samples map[string]struct{}
	n       int
}

// NewCallSet returns an empty CallSet.
func NewCallSet() *CallSet {
	return &CallSet{
		trees:   make(map[sampleChr]*llrb.Tree),
		flat:    make(map[sampleChr][]callKey),
		samples: make(map[string]struct{}),
	}
}

// Add copies call into the set.  Insertion order across Add calls determines
// the tie-break order reported by Overlapping.
func (s *CallSet) Add(call Call) {
	key := sampleChr{call.SampleID, call.Chr}
	tree := s.trees[key]
	if tree == nil {
		tree = &llrb.Tree{}
		s.trees[key] = tree
	}
	c := call
	tree.Insert(callKey{start: call.Start, stop: call.Stop, seq: s.n, call: &c})
	s.samples[call.SampleID] = struct{}{}
	s.n++
	delete(s.flat, key)
}

// Len returns the number of calls in the set.
func (s *CallSet) Len() int {
	return s.n
}

// NumSamples returns the number of distinct sample IDs in the set.
func (s *CallSet) NumSamples() int {
	return len(s.samples)
}

// Freeze flattens every tree so that subsequent queries do not mutate the
// set.  Call this before sharing the set across goroutines.
func (s *CallSet) Freeze() {
	for key := range s.trees {
		s.chrCalls(key)
	}
}

// chrCalls returns the (sample, chromosome) tree flattened into a
// start-sorted slice, building and caching it on first use.
func (s *CallSet) chrCalls(key sampleChr) []callKey {
	if flat, ok := s.flat[key]; ok {
		return flat
	}
	tree := s.trees[key]
	if tree == nil {
		return nil
	}
	flat := make([]callKey, 0, tree.Len())
	tree.Do(func(c llrb.Comparable) (done bool) {
		flat = append(flat, c.(callKey))
		return
	})
	s.flat[key] = flat
	return flat
}

// searchStart returns the index of the first entry in a[] whose start
// position is >= x, in the manner of sort.SearchInts.
func searchStart(a []callKey, x PosType) int {
	return sort.Search(len(a), func(i int) bool { return a[i].start >= x })
}

// Overlapping returns every call in the set on the given sample and
// chromosome that shares at least one base with [start, stop] (1-based,
// inclusive on both ends).  Results are in insertion order.  The returned
// pointers alias the set's storage and must not be modified.
func (s *CallSet) Overlapping(sample, chr string, start, stop PosType) []*Call {
	flat := s.chrCalls(sampleChr{sample, chr})
	if len(flat) == 0 {
		return nil
	}
	// Candidates are exactly the entries with entry.start <= stop; the ones
	// that also satisfy entry.stop >= start overlap the query.
	limit := searchStart(flat, stop+1)
	var matched []callKey
	for i := 0; i < limit; i++ {
		if flat[i].stop >= start {
			matched = append(matched, flat[i])
		}
	}
	if len(matched) == 0 {
		return nil
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })
	calls := make([]*Call, len(matched))
	for i, m := range matched {
		calls[i] = m.call
	}
	return calls
}
