// SPDX-License-Identifier: MIT

package svt

// SVTToCSC converts a 2-D SVT to compressed-sparse-column form: colptr
// has ncol+1 entries, rowidx and x each have length colptr[ncol] (the
// total non-zero count). rowidx is 0-based, matching the dgCMatrix "i"
// slot convention (§6).
func SVTToCSC(dim []int64, s *SVT) (colptr []int32, rowidx []int32, x []any, err error) {
	if len(dim) != 2 {
		return nil, nil, nil, newErrorf(DimensionError, "svt", "SVTToCSC", "CSC is only defined for N=2, got N=%d", len(dim))
	}
	if err := checkKind(s.Kind); err != nil {
		return nil, nil, nil, err
	}
	ncol := dim[1]

	colptr = make([]int32, ncol+1)
	nd, _ := s.root.(*node)

	var total int64
	for col := int64(0); col < ncol; col++ {
		colptr[col] = int32(total)
		if nd == nil {
			continue
		}
		child, ok := nd.children.Get(uint(col))
		if !ok {
			continue
		}
		lf, ok := child.(*leaf)
		if !ok {
			return nil, nil, nil, newErrorf(StructuralError, "svt", "SVTToCSC", "expected leaf in column %d, got %T", col, child)
		}
		total += int64(lf.len())
		if total > maxLeafLen {
			return nil, nil, nil, newErrorf(TooManyNonZeros, "svt", "SVTToCSC", "total non-zeros exceed %d", maxLeafLen)
		}
		for _, p := range lf.pos {
			rowidx = append(rowidx, p-1)
		}
		x = append(x, lf.vals...)
	}
	colptr[ncol] = int32(total)

	return colptr, rowidx, x, nil
}

// CSCToSVT builds a 2-D SVT from a dgCMatrix-style (Dim, colptr, rowidx,
// x) triple. Each column with a non-empty colptr range becomes a Leaf;
// rowidx entries are converted from 0-based to the Leaf's 1-based
// positions.
func CSCToSVT(dim []int64, kind Kind, colptr []int32, rowidx []int32, x []any) (*SVT, error) {
	if len(dim) != 2 {
		return nil, newErrorf(DimensionError, "svt", "CSCToSVT", "CSC is only defined for N=2, got N=%d", len(dim))
	}
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if dim[0] == 0 || dim[1] == 0 {
		return nil, newErrorf(DimensionError, "svt", "CSCToSVT", "zero-size axes are not supported")
	}
	ncol := dim[1]
	if int64(len(colptr)) != ncol+1 {
		return nil, newErrorf(DimensionError, "svt", "CSCToSVT", "colptr has %d entries, expected %d", len(colptr), ncol+1)
	}
	if len(rowidx) != len(x) {
		return nil, newErrorf(DimensionError, "svt", "CSCToSVT", "rowidx/x length mismatch: %d vs %d", len(rowidx), len(x))
	}

	nd := newNode()
	populated := false
	for col := int64(0); col < ncol; col++ {
		start, end := colptr[col], colptr[col+1]
		if end <= start {
			continue
		}
		width := int(end - start)
		pos := make([]int32, width)
		vals := make([]any, width)
		for i := 0; i < width; i++ {
			r := rowidx[int(start)+i]
			if int64(r) < 0 || int64(r) >= dim[0] {
				return nil, newErrorf(OutOfBoundCoord, "svt", "CSCToSVT", "row index %d out of bounds for %d rows", r, dim[0])
			}
			pos[i] = r + 1
			vals[i] = x[int(start)+i]
		}
		lf, err := newLeaf(pos, vals)
		if err != nil {
			return nil, err
		}
		nd.children.InsertAt(uint(col), lf)
		populated = true
	}

	var root any
	if populated {
		root = nd
	}
	return &SVT{Kind: kind, Dim: dim, root: root}, nil
}
