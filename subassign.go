// SPDX-License-Identifier: MIT

package svt

import "math"

// Lindex is a linear-index vector accepted by SubassignByLindex: either
// 32-bit integers or (possibly fractional, possibly NaN) doubles,
// matching the two representations the external caller may hold (§6).
type Lindex struct {
	asI32 []int32
	asF64 []float64
}

// LindexFromInt32 wraps a 32-bit linear-index vector.
func LindexFromInt32(v []int32) Lindex { return Lindex{asI32: v} }

// LindexFromFloat64 wraps a double-precision linear-index vector, for
// indices beyond the 32-bit range.
func LindexFromFloat64(v []float64) Lindex { return Lindex{asF64: v} }

func (l Lindex) len() int {
	if l.asI32 != nil {
		return len(l.asI32)
	}
	return len(l.asF64)
}

func (l Lindex) valueAt(i int) (int64, error) {
	if l.asI32 != nil {
		return int64(l.asI32[i]), nil
	}
	f := l.asF64[i]
	if math.IsNaN(f) {
		return 0, newErrorf(InvalidLinearIndex, "svt", "Lindex.valueAt", "NaN is not a valid linear index")
	}
	if f != math.Trunc(f) {
		return 0, newErrorf(InvalidLinearIndex, "svt", "Lindex.valueAt", "linear index %v is not an integer", f)
	}
	return int64(f), nil
}

// SubassignByMindex produces a new SVT equal to x with x[Mindex[i,:]] :=
// vals[i] for every row i, duplicate rows resolved last-write-wins, zero
// values dropped. mindex is L x len(dim), column-major, 1-based (§6).
func SubassignByMindex(dim []int64, kind Kind, x *SVT, mindex []int32, vals []any) (*SVT, error) {
	n := len(dim)
	L := len(vals)
	if len(mindex) != L*n {
		return nil, newErrorf(DimensionError, "svt", "SubassignByMindex",
			"Mindex has %d entries, expected %d (L=%d rows x N=%d cols)", len(mindex), L*n, L, n)
	}

	coords := make([][]int64, L)
	for i := 0; i < L; i++ {
		c := make([]int64, n)
		for j := 0; j < n; j++ {
			c[j] = int64(mindex[j*L+i])
		}
		if err := checkCoords(c, dim); err != nil {
			return nil, err
		}
		coords[i] = c
	}
	return subassign(dim, kind, x, coords, vals)
}

// SubassignByLindex is the Lindex-driven counterpart of
// SubassignByMindex: lindex[i] is a 1-based flat index into an array of
// shape dim.
func SubassignByLindex(dim []int64, kind Kind, x *SVT, lindex Lindex, vals []any) (*SVT, error) {
	L := lindex.len()
	if L != len(vals) {
		return nil, newErrorf(DimensionError, "svt", "SubassignByLindex",
			"lindex has %d entries, vals has %d", L, len(vals))
	}

	cumdim := cumDims(dim)
	coords := make([][]int64, L)
	for i := 0; i < L; i++ {
		v, err := lindex.valueAt(i)
		if err != nil {
			return nil, err
		}
		c, err := linearToCoord(v, dim, cumdim)
		if err != nil {
			return nil, err
		}
		coords[i] = c
	}
	return subassign(dim, kind, x, coords, vals)
}

// subassign is the shared two-pass driver (§4.5) once every row's
// coordinate vector has already been validated and materialised.
func subassign(dim []int64, kind Kind, x *SVT, coords [][]int64, vals []any) (*SVT, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if x.Kind != kind {
		return nil, newErrorf(TypeMismatch, "svt", "subassign", "vals kind %s does not match SVT kind %s", kind, x.Kind)
	}

	L := len(coords)
	if L == 0 {
		return x, nil
	}

	if len(dim) == 1 {
		return subassign1D(kind, x, coords, vals)
	}

	n := len(dim)
	useI64 := int64(L) > maxLeafLen

	private := map[*node]bool{}
	root := x.root
	maxIDSLen := 0
	maxPostMergeLen := 0

	// Pass 1: dispatch.
	for i := 0; i < L; i++ {
		coord := coords[i]

		rootNode := ensurePrivate(private, root)
		root = rootNode
		cur := rootNode
		for axis := n - 1; axis >= 2; axis-- {
			idx := uint(coord[axis] - 1)
			child, _ := cur.children.Get(idx)
			childNode := ensurePrivate(private, child)
			cur.children.InsertAt(idx, childNode)
			cur = childNode
		}
		b := cur
		idx1 := uint(coord[1] - 1)

		cell, _ := b.children.Get(idx1)
		switch c := cell.(type) {
		case nil:
			ids := idsAppend(nil, useI64, int64(i))
			b.children.InsertAt(idx1, ids)
			if l := idsLen(ids); l > maxIDSLen {
				maxIDSLen = l
			}
			if l := idsLen(ids); l > maxPostMergeLen {
				maxPostMergeLen = l
			}
			if idsLen(ids) > maxLeafLen {
				return nil, newErrorf(IDSTooLarge, "svt", "subassign", "incoming updates to one leaf exceed %d", maxLeafLen)
			}
		case *leaf:
			ids := idsAppend(nil, useI64, int64(i))
			ext := &extLeaf{leaf: c, ids: ids}
			b.children.InsertAt(idx1, ext)
			if l := idsLen(ids); l > maxIDSLen {
				maxIDSLen = l
			}
			if pm := c.len() + idsLen(ids); pm > maxPostMergeLen {
				maxPostMergeLen = pm
			}
		case *idsI32, *idsI64:
			ids := idsAppend(c, useI64, int64(i))
			b.children.InsertAt(idx1, ids)
			if l := idsLen(ids); l > maxIDSLen {
				maxIDSLen = l
			}
			if l := idsLen(ids); l > maxPostMergeLen {
				maxPostMergeLen = l
			}
			if idsLen(ids) > maxLeafLen {
				return nil, newErrorf(IDSTooLarge, "svt", "subassign", "incoming updates to one leaf exceed %d", maxLeafLen)
			}
		case *extLeaf:
			c.ids = idsAppend(c.ids, useI64, int64(i))
			l := idsLen(c.ids)
			if l > maxIDSLen {
				maxIDSLen = l
			}
			if pm := c.leaf.len() + l; pm > maxPostMergeLen {
				maxPostMergeLen = pm
			}
			if l > maxLeafLen {
				return nil, newErrorf(IDSTooLarge, "svt", "subassign", "incoming updates to one leaf exceed %d", maxLeafLen)
			}
		default:
			return nil, newErrorf(StructuralError, "svt", "subassign", "unexpected cell %T during dispatch", cell)
		}
	}

	// Pass 2: absorb.
	sc := getScratch()
	defer putScratch(sc)
	sc.growOrder(maxIDSLen)
	sc.growCompact(maxPostMergeLen)

	rootNode := root.(*node)
	if err := absorbNode(kind, coords, vals, sc, private, rootNode, n); err != nil {
		return nil, err
	}

	var finalRoot any
	if !rootNode.isEmpty() {
		finalRoot = rootNode
	}
	return &SVT{Kind: kind, Dim: dim, root: finalRoot}, nil
}

// subassign1D is the N=1 fast path (§4.5): no tree, a direct sort/dedup/
// merge against the existing Leaf, if any.
func subassign1D(kind Kind, x *SVT, coords [][]int64, vals []any) (*SVT, error) {
	L := len(coords)
	if L > maxLeafLen {
		return nil, newErrorf(IDSTooLarge, "svt", "subassign1D",
			"batch of %d updates exceeds the 1-D fast path's limit of %d", L, maxLeafLen)
	}
	pos := make([]int32, L)
	for i, c := range coords {
		pos[i] = int32(c[0])
	}
	dpos, dvals := sortAndDedupLast(pos, vals, nil)
	incoming := &leaf{pos: dpos, vals: dvals}

	merged := incoming
	if x.root != nil {
		merged = mergeLeaves(x.root.(*leaf), incoming)
	}

	buf := make([]int32, len(merged.pos))
	compacted := compactLeaf(kind, merged, &buf)

	var root any
	if compacted != nil {
		root = compacted
	}
	return &SVT{Kind: kind, Dim: x.Dim, root: root}, nil
}

// ensurePrivate returns a node the caller may mutate directly: cell as-is
// if it is already a private (this-call-owned) node, a fresh empty node
// if cell is absent, or a shallow clone of cell registered as private
// otherwise. This is the copy-on-write discipline of §5: a given input
// node is cloned at most once per subassignment call.
func ensurePrivate(private map[*node]bool, cell any) *node {
	nd, ok := cell.(*node)
	if !ok {
		nd = newNode()
		private[nd] = true
		return nd
	}
	if private[nd] {
		return nd
	}
	clone := nd.cloneShallow()
	private[clone] = true
	return clone
}

// idsAppend appends offset off to cell (nil, *idsI32, or *idsI64) and
// returns the (possibly newly allocated) IDS cell. useI64 selects the
// offset width for a freshly created IDS; an existing IDS keeps its
// established width.
func idsAppend(cell any, useI64 bool, off int64) any {
	switch c := cell.(type) {
	case *idsI64:
		c.append(off)
		return c
	case *idsI32:
		c.append(int32(off))
		return c
	default:
		if useI64 {
			ids := &idsI64{}
			ids.append(off)
			return ids
		}
		ids := &idsI32{}
		ids.append(int32(off))
		return ids
	}
}

func idsLen(cell any) int {
	switch c := cell.(type) {
	case *idsI32:
		return c.len()
	case *idsI64:
		return c.len()
	default:
		return 0
	}
}

func idsOffsets(cell any) []int64 {
	switch c := cell.(type) {
	case *idsI32:
		out := make([]int64, len(c.offs))
		for i, v := range c.offs {
			out[i] = int64(v)
		}
		return out
	case *idsI64:
		return c.offs
	default:
		return nil
	}
}

// absorbNode is the Pass-2 recursion: nd is a private (this-call-owned)
// node of dimensionality depth. At depth 2, every occupied slot holds a
// bottom cell to resolve; above that, only children that were themselves
// touched this call (marked private) need recursing into.
func absorbNode(kind Kind, coords [][]int64, vals []any, sc *scratch, private map[*node]bool, nd *node, depth int) error {
	idxs := nd.children.Indices(nil)

	if depth == 2 {
		for _, idx := range idxs {
			cell, _ := nd.children.Get(idx)
			resolved, err := resolveBottom(kind, coords, vals, sc, cell)
			if err != nil {
				return err
			}
			if resolved == nil {
				nd.children.DeleteAt(idx)
			} else {
				nd.children.InsertAt(idx, resolved)
			}
		}
		return nil
	}

	for _, idx := range idxs {
		child, _ := nd.children.Get(idx)
		childNode, ok := child.(*node)
		if !ok || !private[childNode] {
			continue
		}
		if err := absorbNode(kind, coords, vals, sc, private, childNode, depth-1); err != nil {
			return err
		}
		if childNode.isEmpty() {
			nd.children.DeleteAt(idx)
		}
	}
	return nil
}

// resolveBottom turns a bottom-slot transient cell into its final form:
// a compacted Leaf, or nil (absent). An untouched Leaf passes through
// unchanged.
func resolveBottom(kind Kind, coords [][]int64, vals []any, sc *scratch, cell any) (any, error) {
	switch c := cell.(type) {
	case *leaf:
		return c, nil
	case *idsI32, *idsI64:
		return buildFromOffsets(kind, coords, vals, sc, idsOffsets(c), nil)
	case *extLeaf:
		return buildFromOffsets(kind, coords, vals, sc, idsOffsets(c.ids), c.leaf)
	default:
		return nil, newErrorf(StructuralError, "svt", "resolveBottom", "unexpected cell %T during absorb", cell)
	}
}

// buildFromOffsets implements "building a Leaf from an IDS" (§4.5): sort
// stably by axis-0 coordinate, dedup keeping the last occurrence (batch
// order is preserved by IDS append order), merge with any existing leaf
// (incoming wins), then compact away zeros.
func buildFromOffsets(kind Kind, coords [][]int64, vals []any, sc *scratch, offs []int64, existing *leaf) (*leaf, error) {
	pos := make([]int32, len(offs))
	vs := make([]any, len(offs))
	for i, off := range offs {
		pos[i] = int32(coords[off][0])
		vs[i] = vals[off]
	}
	dpos, dvals := sortAndDedupLast(pos, vs, sc.order)
	incoming := &leaf{pos: dpos, vals: dvals}

	merged := incoming
	if existing != nil {
		merged = mergeLeaves(existing, incoming)
	}

	buf := sc.growCompact(len(merged.pos))
	return compactLeaf(kind, merged, buf), nil
}
