// SPDX-License-Identifier: MIT

package svt

// SVTToCOO produces the coordinate-form representation of s: an i32
// matrix nzindex of shape k x len(dim), stored column-major (column j
// holds axis-j coordinates), and a parallel nzdata of length k. Rows are
// emitted depth-first: slowest-varying is the outermost axis (len(dim)-1),
// fastest is leaf position order (§4.3).
func SVTToCOO(dim []int64, s *SVT) (nzindex []int32, nzdata []any, err error) {
	if err := checkKind(s.Kind); err != nil {
		return nil, nil, err
	}
	n := len(dim)
	if n == 0 {
		return nil, nil, newErrorf(DimensionError, "svt", "SVTToCOO", "N=0 is not supported")
	}

	type row struct {
		coord []int32
		val   any
	}
	var rows []row
	path := make([]int64, n)

	var walk func(cell any, depth int) error
	walk = func(cell any, depth int) error {
		if cell == nil {
			return nil
		}
		if depth == 1 {
			lf, ok := cell.(*leaf)
			if !ok {
				return newErrorf(StructuralError, "svt", "SVTToCOO", "expected leaf at depth 1, got %T", cell)
			}
			for i, p := range lf.pos {
				coord := make([]int32, n)
				coord[0] = p
				for j := 1; j < n; j++ {
					coord[j] = int32(path[j])
				}
				rows = append(rows, row{coord: coord, val: lf.vals[i]})
			}
			return nil
		}
		nd, ok := cell.(*node)
		if !ok {
			return newErrorf(StructuralError, "svt", "SVTToCOO", "expected node at depth %d, got %T", depth, cell)
		}
		idxs := nd.children.Indices(nil)
		for rank, idx := range idxs {
			path[depth-1] = int64(idx) + 1
			if err := walk(nd.children.Items[rank], depth-1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(s.root, n); err != nil {
		return nil, nil, err
	}

	k := len(rows)
	if k > maxLeafLen {
		return nil, nil, newErrorf(TooManyNonZeros, "svt", "SVTToCOO",
			"%d non-zeros exceeds the representable maximum of %d", k, maxLeafLen)
	}

	nzindex = make([]int32, k*n)
	nzdata = make([]any, k)
	for i, r := range rows {
		for j := 0; j < n; j++ {
			nzindex[j*k+i] = r.coord[j]
		}
		nzdata[i] = r.val
	}
	return nzindex, nzdata, nil
}

// COOToSVT builds an SVT from a coordinate-form representation, via the
// two-pass grow/fill construction: Pass 1 grows the interior Node tree
// and, at the node one level above the bottom leaves, tallies how many
// incoming entries will land in each eventual leaf; Pass 2 revisits the
// same rows, replacing each tally with a freshly sized leaf-in-progress
// and appending into it, freezing it into a Leaf once full. Entries
// within each eventual leaf must be supplied in ascending axis-0 order;
// no sort is performed during construction (mirroring the reference
// implementation this algorithm is modelled on), so out-of-order input
// surfaces as a StructuralError — checked incrementally by appendLeaf.append
// for N>=2, or by newLeaf's ex-post scan for the N=1 fast path.
func COOToSVT(dim []int64, kind Kind, nzindex []int32, nzdata []any) (*SVT, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	n := len(dim)
	if n == 0 {
		return nil, newErrorf(DimensionError, "svt", "COOToSVT", "N=0 is not supported")
	}
	for _, d := range dim {
		if d == 0 {
			return nil, newErrorf(DimensionError, "svt", "COOToSVT", "zero-size axes are not supported")
		}
	}

	k := len(nzdata)
	if len(nzindex) != k*n {
		return nil, newErrorf(DimensionError, "svt", "COOToSVT",
			"nzindex has %d entries, expected %d (k=%d rows x N=%d cols)", len(nzindex), k*n, k, n)
	}
	if k == 0 {
		return &SVT{Kind: kind, Dim: dim, root: nil}, nil
	}

	coordAt := func(i int) ([]int64, error) {
		coord := make([]int64, n)
		for j := 0; j < n; j++ {
			coord[j] = int64(nzindex[j*k+i])
		}
		if err := checkCoordsOOB(coord, dim); err != nil {
			return nil, err
		}
		return coord, nil
	}

	if n == 1 {
		pos := make([]int32, k)
		vals := make([]any, k)
		for i := 0; i < k; i++ {
			coord, err := coordAt(i)
			if err != nil {
				return nil, err
			}
			pos[i] = int32(coord[0])
			vals[i] = nzdata[i]
		}
		lf, err := newLeaf(pos, vals)
		if err != nil {
			return nil, err
		}
		return &SVT{Kind: kind, Dim: dim, root: lf}, nil
	}

	var root any

	// Pass 1: grow.
	for i := 0; i < k; i++ {
		coord, err := coordAt(i)
		if err != nil {
			return nil, err
		}
		b := growToB(&root, coord)
		idx1 := uint(coord[1] - 1)
		if cell, ok := b.children.Get(idx1); ok {
			cell.(*counterCell).n++
		} else {
			b.children.InsertAt(idx1, &counterCell{n: 1})
		}
	}

	// Pass 2: fill.
	for i := 0; i < k; i++ {
		coord, err := coordAt(i) // already validated in pass 1
		if err != nil {
			return nil, err
		}
		b := growToB(&root, coord)
		idx1 := uint(coord[1] - 1)

		cell, _ := b.children.Get(idx1)
		var al *appendLeaf
		switch c := cell.(type) {
		case *counterCell:
			al = &appendLeaf{pos: make([]int32, c.n), vals: make([]any, c.n)}
			b.children.InsertAt(idx1, al)
		case *appendLeaf:
			al = c
		default:
			return nil, newErrorf(StructuralError, "svt", "COOToSVT", "unexpected cell %T during fill pass", cell)
		}
		if err := al.append(int32(coord[0]), nzdata[i]); err != nil {
			return nil, err
		}
		if al.full() {
			b.children.InsertAt(idx1, al.freeze())
		}
	}

	return &SVT{Kind: kind, Dim: dim, root: root}, nil
}

// checkCoordsOOB validates a COO row's coordinates against dim, reporting
// OutOfBoundCoord rather than InvalidCoordinate: §4.3 names this
// condition distinctly from the Mindex/Lindex validation of §4.5.
func checkCoordsOOB(coord []int64, dim []int64) error {
	for j, c := range coord {
		if c < 1 || c > dim[j] {
			return newErrorf(OutOfBoundCoord, "svt", "COOToSVT",
				"coordinate %d on axis %d is outside [1, %d]", c, j, dim[j])
		}
	}
	return nil
}

// growToB grows Node layers from *rootPtr down to the node of
// dimensionality 2 (indexed by coord[1]) along coord[N-1..2], creating
// empty Nodes along the way as needed, and returns that node. Requires
// len(dim) >= 2; for len(dim) == 2 it returns the root itself without
// creating anything beyond it.
func growToB(rootPtr *any, coord []int64) *node {
	if *rootPtr == nil {
		*rootPtr = newNode()
	}
	cur := (*rootPtr).(*node)

	for axis := len(coord) - 1; axis >= 2; axis-- {
		idx := uint(coord[axis] - 1)
		child, ok := cur.children.Get(idx)
		var childNode *node
		if ok {
			childNode = child.(*node)
		} else {
			childNode = newNode()
			cur.children.InsertAt(idx, childNode)
		}
		cur = childNode
	}
	return cur
}
