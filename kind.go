// SPDX-License-Identifier: MIT

package svt

// Kind is the closed enumeration of element types an SVT can hold. It is
// a runtime tag, not a compile-time type parameter: a given SVT carries
// exactly one Kind for its lifetime, but the Kind of a call is only known
// at the external API boundary (mirroring the dynamically-typed host
// array this engine's leaves ultimately feed).
type Kind uint8

const (
	KindBool Kind = iota
	KindInt32
	KindFloat64
	KindComplex
	KindByte
	KindString
	KindList

	nKinds
)

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(invalid)"
}

var kindNames = [...]string{
	KindBool:    "bool",
	KindInt32:   "int32",
	KindFloat64: "float64",
	KindComplex: "complex",
	KindByte:    "byte",
	KindString:  "string",
	KindList:    "list",
}

// Valid reports whether k is one of the seven supported kinds.
func (k Kind) Valid() bool {
	return k < nKinds
}

// kindOps is the per-kind dispatch table referenced by §9 of the design
// notes: rather than parameterising the whole tree by a Go type per kind,
// a leaf's values are stored boxed (as any) and every place that needs to
// know "is this the zero value of its kind" or "what is the zero value"
// goes through this table, selected once per call by the Kind tag.
type kindOps struct {
	isZero func(v any) bool
	zero   func() any
}

var kindTable = [nKinds]kindOps{
	KindBool: {
		isZero: func(v any) bool { return !v.(bool) },
		zero:   func() any { return false },
	},
	KindInt32: {
		isZero: func(v any) bool { return v.(int32) == 0 },
		zero:   func() any { return int32(0) },
	},
	KindFloat64: {
		isZero: func(v any) bool { return v.(float64) == 0 },
		zero:   func() any { return float64(0) },
	},
	KindComplex: {
		isZero: func(v any) bool { return v.(complex128) == 0 },
		zero:   func() any { return complex128(0) },
	},
	KindByte: {
		isZero: func(v any) bool { return v.(byte) == 0 },
		zero:   func() any { return byte(0) },
	},
	KindString: {
		isZero: func(v any) bool { return v.(string) == "" },
		zero:   func() any { return "" },
	},
	KindList: {
		// A list slot's absent value is the null list slot; list
		// elements are opaque and compared by reference, so the only
		// well-defined zero test is "no value at all".
		isZero: func(v any) bool { return v == nil },
		zero:   func() any { return nil },
	},
}

// isZero reports whether v is the zero/absent value for kind k.
func isZero(k Kind, v any) bool {
	return kindTable[k].isZero(v)
}

// zeroValue returns the zero/absent value for kind k.
func zeroValue(k Kind) any {
	return kindTable[k].zero()
}

// checkKind validates that tag is one of the seven supported kinds.
func checkKind(tag Kind) error {
	if !tag.Valid() {
		return newErrorf(UnsupportedElementType, "svt", "checkKind",
			"element type tag %d is not one of the seven supported kinds", uint8(tag))
	}
	return nil
}
