// SPDX-License-Identifier: MIT

package svt

import "strconv"

// RowSource is the external collaborator named in §6: a producer of
// sparse integer CSV rows, one row per call to Next. It is out of scope
// to implement here (tokenizing, buffered I/O); callers supply one.
type RowSource interface {
	// Next returns the next row's name and its raw, comma/sep-stripped
	// (col, value-token) pairs, or ok=false at end of stream. value
	// tokens are decimal integers; an empty token parses to zero (§6).
	Next() (name string, cols []int32, valueTokens []string, ok bool, err error)
}

// ReadSparseCSVAsSVT assembles an SVT from row, building either a
// transposed layout (one Leaf per row, outer axis indexed by row) or a
// non-transposed layout (one Leaf per column, folded at end of stream).
// ncol is the expected column count of a non-transposed result and the
// leaf width for a transposed one.
func ReadSparseCSVAsSVT(rows RowSource, kind Kind, transpose bool, ncol int64) (rowNames []string, svt *SVT, err error) {
	if err := checkKind(kind); err != nil {
		return nil, nil, err
	}

	if transpose {
		return readTransposed(rows, kind, ncol)
	}
	return readNonTransposed(rows, kind, ncol)
}

func readTransposed(rows RowSource, kind Kind, ncol int64) ([]string, *SVT, error) {
	var names []string
	nd := newNode()

	rowIdx := uint(0)
	for {
		name, cols, toks, ok, err := rows.Next()
		if err != nil {
			return nil, nil, newErrorf(ReadError, "svt", "readTransposed", "%v", err)
		}
		if !ok {
			break
		}
		names = append(names, name)

		lf, err := leafFromTokens(kind, cols, toks)
		if err != nil {
			return nil, nil, err
		}
		if lf != nil {
			nd.children.InsertAt(rowIdx, lf)
		}
		rowIdx++
	}

	var root any
	if !nd.isEmpty() {
		root = nd
	}
	return names, &SVT{Kind: kind, Dim: []int64{ncol, int64(rowIdx)}, root: root}, nil
}

func readNonTransposed(rows RowSource, kind Kind, ncol int64) ([]string, *SVT, error) {
	var names []string
	colPos := make([][]int32, ncol)
	colVals := make([][]any, ncol)

	rowIdx := int32(1)
	for {
		name, cols, toks, ok, err := rows.Next()
		if err != nil {
			return nil, nil, newErrorf(ReadError, "svt", "readNonTransposed", "%v", err)
		}
		if !ok {
			break
		}
		names = append(names, name)

		for i, col := range cols {
			v, err := parseValue(kind, toks[i])
			if err != nil {
				return nil, nil, err
			}
			if col < 1 || int64(col) > ncol {
				return nil, nil, newErrorf(OutOfBoundCoord, "svt", "readNonTransposed", "column %d outside [1, %d]", col, ncol)
			}
			if isZero(kind, v) {
				continue
			}
			colPos[col-1] = append(colPos[col-1], rowIdx)
			colVals[col-1] = append(colVals[col-1], v)
		}
		rowIdx++
	}

	nd := newNode()
	for j := int64(0); j < ncol; j++ {
		if len(colPos[j]) == 0 {
			continue
		}
		lf, err := newLeaf(colPos[j], colVals[j])
		if err != nil {
			return nil, nil, err
		}
		nd.children.InsertAt(uint(j), lf)
	}

	var root any
	if !nd.isEmpty() {
		root = nd
	}
	return names, &SVT{Kind: kind, Dim: []int64{int64(rowIdx - 1), ncol}, root: root}, nil
}

func leafFromTokens(kind Kind, cols []int32, toks []string) (*leaf, error) {
	var pos []int32
	var vals []any
	for i, col := range cols {
		v, err := parseValue(kind, toks[i])
		if err != nil {
			return nil, err
		}
		if isZero(kind, v) {
			continue
		}
		pos = append(pos, col)
		vals = append(vals, v)
	}
	if len(pos) == 0 {
		return nil, nil
	}
	return newLeaf(pos, vals)
}

// parseValue parses a decimal-integer CSV token per the element kind;
// an empty token is zero (§6's integer-parser primitive).
func parseValue(kind Kind, tok string) (any, error) {
	if tok == "" {
		return zeroValue(kind), nil
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return nil, wrapErrorf(ReadError, err, "svt", "parseValue", "invalid integer token %q", tok)
	}
	switch kind {
	case KindInt32:
		return int32(n), nil
	case KindFloat64:
		return float64(n), nil
	case KindByte:
		return byte(n), nil
	case KindBool:
		return n != 0, nil
	default:
		return nil, newErrorf(UnsupportedElementType, "svt", "parseValue",
			"kind %s is not readable from a decimal-integer CSV stream", kind)
	}
}

// ReadSparseCSVAsCOO is the COO-shaped counterpart named in §6: same row
// stream, output as parallel coordinate vectors instead of an SVT.
func ReadSparseCSVAsCOO(rows RowSource, kind Kind) (rowNames []string, nzrow []int32, nzcol []int32, nzvals []any, err error) {
	rowIdx := int32(1)
	for {
		name, cols, toks, ok, rerr := rows.Next()
		if rerr != nil {
			return nil, nil, nil, nil, newErrorf(ReadError, "svt", "ReadSparseCSVAsCOO", "%v", rerr)
		}
		if !ok {
			break
		}
		rowNames = append(rowNames, name)

		for i, col := range cols {
			v, verr := parseValue(kind, toks[i])
			if verr != nil {
				return nil, nil, nil, nil, verr
			}
			if isZero(kind, v) {
				continue
			}
			nzrow = append(nzrow, rowIdx)
			nzcol = append(nzcol, col)
			nzvals = append(nzvals, v)
		}
		rowIdx++
	}
	return rowNames, nzrow, nzcol, nzvals, nil
}
