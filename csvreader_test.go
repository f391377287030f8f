// SPDX-License-Identifier: MIT

package svt

import "testing"

// fakeRowSource replays a fixed slice of rows, grounded on the table-driven
// fake-producer style used throughout the teacher's own tests.
type fakeRowSource struct {
	names []string
	cols  [][]int32
	toks  [][]string
	i     int
}

func (f *fakeRowSource) Next() (string, []int32, []string, bool, error) {
	if f.i >= len(f.names) {
		return "", nil, nil, false, nil
	}
	name, cols, toks := f.names[f.i], f.cols[f.i], f.toks[f.i]
	f.i++
	return name, cols, toks, true, nil
}

func newTestRows() *fakeRowSource {
	return &fakeRowSource{
		names: []string{"r1", "r2", "r3"},
		cols:  [][]int32{{1, 3}, {2}, {1, 2, 3}},
		toks:  [][]string{{"10", "30"}, {"5"}, {"", "0", "7"}},
	}
}

func TestReadSparseCSVAsSVTTransposed(t *testing.T) {
	names, s, err := ReadSparseCSVAsSVT(newTestRows(), KindInt32, true, 3)
	if err != nil {
		t.Fatalf("ReadSparseCSVAsSVT: %v", err)
	}
	if len(names) != 3 || names[1] != "r2" {
		t.Errorf("names = %v, want [r1 r2 r3]", names)
	}
	// r1: cols 1,3 -> 10,30; r2: col 2 -> 5; r3: "" and "0" are zero and
	// dropped, "7" at col 3 survives. Total non-zeros: 2+1+1=4.
	if got := NZCount(s); got != 4 {
		t.Errorf("NZCount = %d, want 4", got)
	}
}

func TestReadSparseCSVAsSVTNonTransposed(t *testing.T) {
	names, s, err := ReadSparseCSVAsSVT(newTestRows(), KindInt32, false, 3)
	if err != nil {
		t.Fatalf("ReadSparseCSVAsSVT: %v", err)
	}
	if len(names) != 3 {
		t.Errorf("names = %v, want 3 entries", names)
	}
	if got := NZCount(s); got != 4 {
		t.Errorf("NZCount = %d, want 4", got)
	}
	if s.Dim[0] != 3 || s.Dim[1] != 3 {
		t.Errorf("Dim = %v, want [3 3]", s.Dim)
	}
}

func TestReadSparseCSVAsCOO(t *testing.T) {
	names, nzrow, nzcol, nzvals, err := ReadSparseCSVAsCOO(newTestRows(), KindInt32)
	if err != nil {
		t.Fatalf("ReadSparseCSVAsCOO: %v", err)
	}
	if len(names) != 3 {
		t.Errorf("names = %v, want 3 entries", names)
	}
	if len(nzrow) != 4 || len(nzcol) != 4 || len(nzvals) != 4 {
		t.Errorf("expected 4 non-zeros, got row=%v col=%v vals=%v", nzrow, nzcol, nzvals)
	}
}

func TestReadSparseCSVBadToken(t *testing.T) {
	rows := &fakeRowSource{
		names: []string{"r1"},
		cols:  [][]int32{{1}},
		toks:  [][]string{{"not-a-number"}},
	}
	_, _, err := ReadSparseCSVAsCOO(rows, KindInt32)
	if err == nil {
		t.Fatal("expected ReadError for a malformed integer token")
	}
	if kind, _ := KindOf(err); kind != ReadError {
		t.Errorf("error kind = %v, want ReadError", kind)
	}
}

func TestReadSparseCSVColumnOutOfBound(t *testing.T) {
	rows := &fakeRowSource{
		names: []string{"r1"},
		cols:  [][]int32{{9}},
		toks:  [][]string{{"1"}},
	}
	_, _, err := ReadSparseCSVAsSVT(rows, KindInt32, false, 3)
	if err == nil {
		t.Fatal("expected OutOfBoundCoord for a column past ncol")
	}
	if kind, _ := KindOf(err); kind != OutOfBoundCoord {
		t.Errorf("error kind = %v, want OutOfBoundCoord", kind)
	}
}
