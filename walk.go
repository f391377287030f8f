// SPDX-License-Identifier: MIT

package svt

// NZCount returns the total number of non-zero entries in s: the sum of
// every bottom leaf's length. An absent SVT has a count of zero.
func NZCount(s *SVT) uint64 {
	if s == nil {
		return 0
	}
	return nzCountCell(s.root)
}

func nzCountCell(cell any) uint64 {
	switch c := cell.(type) {
	case nil:
		return 0
	case *leaf:
		return uint64(c.len())
	case *node:
		var total uint64
		for _, child := range c.children.Items {
			total += nzCountCell(child)
		}
		return total
	default:
		panic("svt: nzCountCell called on a transient cell")
	}
}

// cumDims returns cumdim where cumdim[j] = product of dim[0..j], used to
// convert a flat linear index into per-axis coordinates (§4.2).
func cumDims(dim []int64) []int64 {
	cumdim := make([]int64, len(dim))
	var acc int64 = 1
	for j, d := range dim {
		acc *= d
		cumdim[j] = acc
	}
	return cumdim
}

// checkCoord validates a 1-based coordinate against its axis size.
func checkCoord(coord int64, axisSize int64, axis int) error {
	if coord < 1 || coord > axisSize {
		return newErrorf(InvalidCoordinate, "svt", "checkCoord",
			"coordinate %d on axis %d is outside [1, %d]", coord, axis, axisSize)
	}
	return nil
}

// checkCoords validates a full N-length 1-based coordinate vector.
func checkCoords(coord []int64, dim []int64) error {
	if len(coord) != len(dim) {
		return newErrorf(DimensionError, "svt", "checkCoords",
			"coordinate has %d axes, expected %d", len(coord), len(dim))
	}
	for j, c := range coord {
		if err := checkCoord(c, dim[j], j); err != nil {
			return err
		}
	}
	return nil
}

// linearToCoord converts a 1-based linear index into 1-based per-axis
// coordinates using cumdim (§4.2: child = idx0/cumdim[j-1], idx0 mod'd by
// the same, descending from axis N-1 to axis 1; axis 0 takes the
// remainder).
func linearToCoord(lidx int64, dim []int64, cumdim []int64) ([]int64, error) {
	n := len(dim)
	if lidx < 1 || lidx > cumdim[n-1] {
		return nil, newErrorf(InvalidLinearIndex, "svt", "linearToCoord",
			"linear index %d outside [1, %d]", lidx, cumdim[n-1])
	}

	coord := make([]int64, n)
	idx0 := lidx - 1
	for j := n - 1; j >= 1; j-- {
		coord[j] = idx0/cumdim[j-1] + 1
		idx0 = idx0 % cumdim[j-1]
	}
	coord[0] = idx0 + 1
	return coord, nil
}

// descendByCoord is a read-only walk from root along axes N-1 downto 1,
// following the 1-based coord. It never creates nodes: a missing branch
// simply yields a nil bottom cell. Returns the bottom cell (absent or a
// *leaf) selected by coord[N-1..1]; coord[0] is only bounds-checked, and
// the leaf is not searched for it.
func descendByCoord(root any, dim []int64, coord []int64) (any, error) {
	if err := checkCoords(coord, dim); err != nil {
		return nil, err
	}

	n := len(dim)
	if n == 1 {
		return root, nil
	}

	cur := root
	for axis := n - 1; axis >= 1; axis-- {
		curNode, ok := cur.(*node)
		if !ok {
			return nil, nil
		}
		child, _ := curNode.children.Get(uint(coord[axis] - 1))
		if axis == 1 {
			return child, nil
		}
		cur = child
	}
	panic("unreachable")
}

// descendByLinear converts lidx to coordinates and delegates to
// descendByCoord.
func descendByLinear(root any, dim []int64, cumdim []int64, lidx int64) (any, error) {
	coord, err := linearToCoord(lidx, dim, cumdim)
	if err != nil {
		return nil, err
	}
	return descendByCoord(root, dim, coord)
}
