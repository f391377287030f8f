// SPDX-License-Identifier: MIT

package svt

import (
	"strings"
	"testing"
)

func TestDumpAbsent(t *testing.T) {
	s := &SVT{Kind: KindFloat64, Dim: []int64{3, 3}, root: nil}
	out := s.String()
	if !strings.Contains(out, "absent") {
		t.Errorf("String() = %q, want it to mention \"absent\"", out)
	}
}

func TestDumpPopulated(t *testing.T) {
	dim := []int64{3, 4}
	s, err := COOToSVT(dim, KindFloat64, []int32{1, 2, 2, 3}, []any{1.5, 2.5})
	if err != nil {
		t.Fatalf("COOToSVT: %v", err)
	}
	out := s.String()
	if !strings.Contains(out, "node occupied=2") {
		t.Errorf("String() = %q, want \"node occupied=2\"", out)
	}
	if !strings.Contains(out, "leaf pos=") {
		t.Errorf("String() = %q, want at least one leaf line", out)
	}
}
