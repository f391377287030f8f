// SPDX-License-Identifier: MIT

package svt

import "sync"

// scratch is the two-pass subassignment driver's per-call arena (§5,
// §9): order and compact are sized once, between Pass 1 and Pass 2, to
// the largest IDS and the largest possible post-merge leaf length seen
// during Pass 1, then reused across every leaf touched in Pass 2.
type scratch struct {
	order   []int   // stable-sort permutation scratch, sized to max IDS length
	compact []int32 // compactLeaf scratch, sized to max post-merge leaf length
}

func (s *scratch) reset() {
	s.order = s.order[:0]
	s.compact = s.compact[:0]
}

// scratchPool amortises the arena's backing-array allocations across
// subassignment calls, the same way the teacher's node pool amortises
// node allocations across table insertions: a call borrows a *scratch on
// entry and returns it on exit, regardless of success or error.
var scratchPool = sync.Pool{
	New: func() any { return new(scratch) },
}

func getScratch() *scratch {
	return scratchPool.Get().(*scratch)
}

func putScratch(s *scratch) {
	s.reset()
	scratchPool.Put(s)
}

// growOrder ensures order has length >= n, overwriting its contents (callers
// always fully repopulate it before reading).
func (s *scratch) growOrder(n int) []int {
	if cap(s.order) < n {
		s.order = make([]int, n)
	} else {
		s.order = s.order[:n]
	}
	return s.order
}

// growCompact ensures the compaction buffer has capacity >= n and returns
// a pointer to it; compactLeaf further resizes *buf itself if still too small for a
// particular leaf (defensive: max_postmerge_len is an upper bound, not
// always reached for every leaf).
func (s *scratch) growCompact(n int) *[]int32 {
	if cap(s.compact) < n {
		s.compact = make([]int32, n)
	}
	return &s.compact
}
