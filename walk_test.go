// SPDX-License-Identifier: MIT

package svt

import "testing"

func TestCumDims(t *testing.T) {
	got := cumDims([]int64{3, 4, 2})
	want := []int64{3, 12, 24}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cumDims()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLinearToCoord(t *testing.T) {
	dim := []int64{5, 5, 5}
	cumdim := cumDims(dim)

	cases := []struct {
		lidx int64
		want []int64
	}{
		{1, []int64{1, 1, 1}},
		{5, []int64{5, 1, 1}},
		{6, []int64{1, 2, 1}},
		{125, []int64{5, 5, 5}},
	}
	for _, c := range cases {
		got, err := linearToCoord(c.lidx, dim, cumdim)
		if err != nil {
			t.Fatalf("linearToCoord(%d): %v", c.lidx, err)
		}
		for j := range c.want {
			if got[j] != c.want[j] {
				t.Errorf("linearToCoord(%d) = %v, want %v", c.lidx, got, c.want)
				break
			}
		}
	}

	if _, err := linearToCoord(0, dim, cumdim); err == nil {
		t.Error("linearToCoord(0): expected error")
	}
	if _, err := linearToCoord(126, dim, cumdim); err == nil {
		t.Error("linearToCoord(126): expected error")
	}
}

func TestNZCountAbsent(t *testing.T) {
	s := &SVT{Kind: KindFloat64, Dim: []int64{3, 3}, root: nil}
	if got := NZCount(s); got != 0 {
		t.Errorf("NZCount(absent) = %d, want 0", got)
	}
}

func TestNZCountTree(t *testing.T) {
	dim := []int64{3, 4}
	nzindex := []int32{
		1, 3, 2, 3,
		1, 1, 3, 4,
	}
	nzdata := []any{1.5, 2.5, 3.5, 4.5}
	s, err := COOToSVT(dim, KindFloat64, nzindex, nzdata)
	if err != nil {
		t.Fatalf("COOToSVT: %v", err)
	}
	if got := NZCount(s); got != 4 {
		t.Errorf("NZCount = %d, want 4", got)
	}
}
