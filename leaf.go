// SPDX-License-Identifier: MIT

package svt

import "sort"

// leaf is a compressed sparse 1-D vector: pos[i] is the strictly
// increasing, 1-based position of vals[i] along the leaf's axis (axis 0
// of the SVT). A leaf is never empty; an all-zero run is represented by
// the absent child, one level up, not by a zero-length leaf.
type leaf struct {
	pos  []int32
	vals []any
}

// newLeaf validates and wraps pos/vals into a leaf. It does not copy its
// arguments; callers must hand over ownership.
func newLeaf(pos []int32, vals []any) (*leaf, error) {
	if len(pos) != len(vals) {
		return nil, newErrorf(StructuralError, "svt", "newLeaf",
			"pos and vals length mismatch: %d vs %d", len(pos), len(vals))
	}
	if len(pos) == 0 {
		return nil, newErrorf(StructuralError, "svt", "newLeaf",
			"a leaf must hold at least one entry")
	}
	if len(pos) > maxLeafLen {
		return nil, newErrorf(TooManyNonZeros, "svt", "newLeaf",
			"leaf length %d exceeds %d", len(pos), maxLeafLen)
	}
	for i := 1; i < len(pos); i++ {
		if pos[i] <= pos[i-1] {
			return nil, newErrorf(StructuralError, "svt", "newLeaf",
				"positions must be strictly ascending, got %d after %d", pos[i], pos[i-1])
		}
	}
	return &leaf{pos: pos, vals: vals}, nil
}

// maxLeafLen is 2^31 - 1, the largest leaf length (and largest total
// non-zero count) the engine will build or accept.
const maxLeafLen = 1<<31 - 1

// split returns the leaf's parallel pos/vals arrays as a read-only view.
// Callers must not mutate the returned slices.
func (l *leaf) split() ([]int32, []any) {
	return l.pos, l.vals
}

// clone returns a shallow copy of l: new backing arrays, elements copied
// by assignment (list-kind values remain reference-shared, per §3.1).
func (l *leaf) clone() *leaf {
	if l == nil {
		return nil
	}
	cp := &leaf{
		pos:  append([]int32(nil), l.pos...),
		vals: append([]any(nil), l.vals...),
	}
	return cp
}

// len reports the number of entries in l, or 0 for a nil leaf.
func (l *leaf) len() int {
	if l == nil {
		return 0
	}
	return len(l.pos)
}

// mergeLeaves performs an ordered two-way merge of a and b on position.
// On a duplicate position, b's value wins (assignment semantics: b is
// the incoming write). The result may contain zero values; run it
// through compactLeaf before storing it in the tree.
func mergeLeaves(a, b *leaf) *leaf {
	na, nb := a.len(), b.len()
	pos := make([]int32, 0, na+nb)
	vals := make([]any, 0, na+nb)

	i, j := 0, 0
	for i < na && j < nb {
		switch {
		case a.pos[i] < b.pos[j]:
			pos = append(pos, a.pos[i])
			vals = append(vals, a.vals[i])
			i++
		case a.pos[i] > b.pos[j]:
			pos = append(pos, b.pos[j])
			vals = append(vals, b.vals[j])
			j++
		default:
			pos = append(pos, b.pos[j])
			vals = append(vals, b.vals[j])
			i++
			j++
		}
	}
	for ; i < na; i++ {
		pos = append(pos, a.pos[i])
		vals = append(vals, a.vals[i])
	}
	for ; j < nb; j++ {
		pos = append(pos, b.pos[j])
		vals = append(vals, b.vals[j])
	}

	return &leaf{pos: pos, vals: vals}
}

// compactLeaf returns l with zero-valued entries removed, or nil if every
// entry is zero (an all-absent leaf collapses to the absent child). scratch
// is a caller-owned buffer of length >= l.len(), reused across leaves by
// the subassignment driver's scratch arena; it is resized in place if too
// small and the grown slice is returned via *scratch.
func compactLeaf(k Kind, l *leaf, scratch *[]int32) *leaf {
	if l == nil || l.len() == 0 {
		return nil
	}
	if cap(*scratch) < l.len() {
		*scratch = make([]int32, l.len())
	}
	keep := (*scratch)[:0]
	for i, v := range l.vals {
		if !isZero(k, v) {
			keep = append(keep, int32(i))
		}
	}
	if len(keep) == 0 {
		return nil
	}
	if len(keep) == l.len() {
		return l
	}

	pos := make([]int32, len(keep))
	vals := make([]any, len(keep))
	for j, i := range keep {
		pos[j] = l.pos[i]
		vals[j] = l.vals[i]
	}
	return &leaf{pos: pos, vals: vals}
}

// sortAndDedupLast sorts idx (positions) and a parallel vals slice
// stably by position, keeping only the last occurrence of each
// repeated position in the original order. Used by both the 1-D
// subassignment fast path and leaf-from-IDS construction (§4.5).
//
// orderBuf, if non-nil and with sufficient capacity, is reused for the
// sort permutation instead of allocating; pass nil to always allocate.
func sortAndDedupLast(idx []int32, vals []any, orderBuf []int) ([]int32, []any) {
	n := len(idx)
	var order []int
	if cap(orderBuf) >= n {
		order = orderBuf[:n]
	} else {
		order = make([]int, n)
	}
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return idx[order[a]] < idx[order[b]]
	})

	outPos := make([]int32, 0, n)
	outVals := make([]any, 0, n)
	i := 0
	for i < n {
		j := i
		for j+1 < n && idx[order[j+1]] == idx[order[i]] {
			j++
		}
		// [i,j] is a run of equal positions in sorted order; order is
		// stable, so order[j] is the run's last-occurring original index.
		outPos = append(outPos, idx[order[i]])
		outVals = append(outVals, vals[order[j]])
		i = j + 1
	}
	return outPos, outVals
}
