// SPDX-License-Identifier: MIT

package svt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestCSCScenario3 is the 4x3 integer dgCMatrix round-trip scenario (§8.3).
func TestCSCScenario3(t *testing.T) {
	dim := []int64{4, 3}
	colptr := []int32{0, 1, 1, 3}
	rowidx := []int32{2, 0, 3}
	x := []any{int32(10), int32(20), int32(30)}

	s, err := CSCToSVT(dim, KindInt32, colptr, rowidx, x)
	if err != nil {
		t.Fatalf("CSCToSVT: %v", err)
	}

	nd := s.root.(*node)
	if _, ok := nd.children.Get(1); ok {
		t.Errorf("column 1 (0-based) expected absent")
	}
	if nd.children.Len() != 2 {
		t.Errorf("expected 2 populated columns, got %d", nd.children.Len())
	}

	gotColptr, gotRowidx, gotX, err := SVTToCSC(dim, s)
	if err != nil {
		t.Fatalf("SVTToCSC: %v", err)
	}
	if diff := cmp.Diff(colptr, gotColptr); diff != "" {
		t.Errorf("colptr mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(rowidx, gotRowidx); diff != "" {
		t.Errorf("rowidx mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(x, gotX); diff != "" {
		t.Errorf("x mismatch (-want +got):\n%s", diff)
	}
}

func TestCSCWrongDimension(t *testing.T) {
	_, err := SVTToCSC([]int64{3, 3, 3}, &SVT{Kind: KindInt32, Dim: []int64{3, 3, 3}})
	if err == nil {
		t.Fatal("expected DimensionError for N != 2")
	}
	if kind, _ := KindOf(err); kind != DimensionError {
		t.Errorf("error kind = %v, want DimensionError", kind)
	}
}

func TestCSCOutOfBoundRow(t *testing.T) {
	dim := []int64{2, 1}
	colptr := []int32{0, 1}
	rowidx := []int32{5}
	x := []any{int32(1)}
	_, err := CSCToSVT(dim, KindInt32, colptr, rowidx, x)
	if err == nil {
		t.Fatal("expected OutOfBoundCoord")
	}
	if kind, _ := KindOf(err); kind != OutOfBoundCoord {
		t.Errorf("error kind = %v, want OutOfBoundCoord", kind)
	}
}
