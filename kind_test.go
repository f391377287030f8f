// SPDX-License-Identifier: MIT

package svt

import "testing"

func TestKindValid(t *testing.T) {
	for k := KindBool; k <= KindList; k++ {
		if !k.Valid() {
			t.Errorf("Kind %d expected valid", k)
		}
	}
	if Kind(nKinds).Valid() {
		t.Errorf("Kind(nKinds) expected invalid")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindBool:    "bool",
		KindInt32:   "int32",
		KindFloat64: "float64",
		KindComplex: "complex",
		KindByte:    "byte",
		KindString:  "string",
		KindList:    "list",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestIsZero(t *testing.T) {
	cases := []struct {
		k    Kind
		v    any
		want bool
	}{
		{KindBool, false, true},
		{KindBool, true, false},
		{KindInt32, int32(0), true},
		{KindInt32, int32(1), false},
		{KindFloat64, 0.0, true},
		{KindFloat64, -1.5, false},
		{KindComplex, complex128(0), true},
		{KindByte, byte(0), true},
		{KindString, "", true},
		{KindString, "x", false},
		{KindList, nil, true},
		{KindList, []any{1}, false},
	}
	for _, c := range cases {
		if got := isZero(c.k, c.v); got != c.want {
			t.Errorf("isZero(%s, %v) = %v, want %v", c.k, c.v, got, c.want)
		}
	}
}

func TestCheckKind(t *testing.T) {
	if err := checkKind(KindBool); err != nil {
		t.Errorf("checkKind(KindBool) = %v, want nil", err)
	}
	err := checkKind(Kind(nKinds))
	if err == nil {
		t.Fatal("checkKind(invalid) = nil, want error")
	}
	if kind, ok := KindOf(err); !ok || kind != UnsupportedElementType {
		t.Errorf("KindOf(err) = (%v, %v), want (UnsupportedElementType, true)", kind, ok)
	}
}
