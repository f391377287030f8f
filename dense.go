// SPDX-License-Identifier: MIT

package svt

// SVTToDense materialises s into a zero-initialised flat buffer of length
// product(dim), in column-major (Fortran) order matching the external
// dense N-array convention: the fastest-varying axis is axis 0.
func SVTToDense(dim []int64, s *SVT) ([]any, error) {
	if err := checkKind(s.Kind); err != nil {
		return nil, err
	}
	n := len(dim)
	if n == 0 {
		return nil, newErrorf(DimensionError, "svt", "SVTToDense", "N=0 is not supported")
	}

	total := int64(1)
	for _, d := range dim {
		total *= d
	}
	out := make([]any, total)
	zv := zeroValue(s.Kind)
	for i := range out {
		out[i] = zv
	}

	var walk func(cell any, depth int, flatOffset, flatLen int64) error
	walk = func(cell any, depth int, flatOffset, flatLen int64) error {
		if cell == nil {
			return nil
		}
		if depth == 1 {
			lf, ok := cell.(*leaf)
			if !ok {
				return newErrorf(StructuralError, "svt", "SVTToDense", "expected leaf at depth 1, got %T", cell)
			}
			if int64(len(out))-flatOffset < flatLen {
				return newErrorf(StructuralError, "svt", "SVTToDense", "leaf slice out of bounds")
			}
			for i, p := range lf.pos {
				out[flatOffset+int64(p)-1] = lf.vals[i]
			}
			return nil
		}
		nd, ok := cell.(*node)
		if !ok {
			return newErrorf(StructuralError, "svt", "SVTToDense", "expected node at depth %d, got %T", depth, cell)
		}
		axisLen := dim[depth-1]
		if flatLen%axisLen != 0 {
			return newErrorf(StructuralError, "svt", "SVTToDense", "node of wrong length at depth %d", depth)
		}
		childLen := flatLen / axisLen
		idxs := nd.children.Indices(nil)
		for rank, idx := range idxs {
			childOffset := flatOffset + int64(idx)*childLen
			if err := walk(nd.children.Items[rank], depth-1, childOffset, childLen); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(s.root, n, 0, total); err != nil {
		return nil, err
	}
	return out, nil
}

// DenseToSVT builds an SVT from a flat, column-major dense buffer of
// length product(dim). Non-zero is determined by the per-kind zero
// predicate (§9's open-question resolution: not a hardcoded integer
// test).
func DenseToSVT(dim []int64, kind Kind, dense []any) (*SVT, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	n := len(dim)
	if n == 0 {
		return nil, newErrorf(DimensionError, "svt", "DenseToSVT", "N=0 is not supported")
	}
	for _, d := range dim {
		if d == 0 {
			return nil, newErrorf(DimensionError, "svt", "DenseToSVT", "zero-size axes are not supported")
		}
	}

	total := int64(1)
	for _, d := range dim {
		total *= d
	}
	if int64(len(dense)) != total {
		return nil, newErrorf(DimensionError, "svt", "DenseToSVT", "dense buffer has %d elements, expected %d", len(dense), total)
	}

	var build func(depth int, flatOffset, flatLen int64) (any, error)
	build = func(depth int, flatOffset, flatLen int64) (any, error) {
		if depth == 1 {
			var pos []int32
			var vals []any
			for i := int64(0); i < flatLen; i++ {
				v := dense[flatOffset+i]
				if !isZero(kind, v) {
					pos = append(pos, int32(i)+1)
					vals = append(vals, v)
				}
			}
			if len(pos) == 0 {
				return nil, nil
			}
			return newLeaf(pos, vals)
		}

		axisLen := dim[depth-1]
		childLen := flatLen / axisLen
		nd := newNode()
		for idx := int64(0); idx < axisLen; idx++ {
			child, err := build(depth-1, flatOffset+idx*childLen, childLen)
			if err != nil {
				return nil, err
			}
			if child != nil {
				nd.children.InsertAt(uint(idx), child)
			}
		}
		if nd.isEmpty() {
			return nil, nil
		}
		return nd, nil
	}

	root, err := build(n, 0, total)
	if err != nil {
		return nil, err
	}
	return &SVT{Kind: kind, Dim: dim, root: root}, nil
}
