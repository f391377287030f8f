// SPDX-License-Identifier: MIT

package svt

import (
	"testing"

	fuzz "github.com/trailofbits/go-fuzz-utils"
)

// FuzzCOORoundTrip checks that converting a random COO batch into an SVT
// and back produces a dense form stable under a second round-trip: the
// two-pass grow/fill engine must agree with itself. Batches COOToSVT
// rejects (rows out of ascending axis-0 order within a leaf, or
// duplicate coordinates) are skipped.
func FuzzCOORoundTrip(f *testing.F) {
	f.Add([]byte{3, 4, 10, 1, 1, 5, 2, 3, 7, 2, 3, 9})
	f.Add([]byte{0})
	f.Add([]byte{5, 5, 200, 1, 1, 1, 1, 5, 5, 5, 5, 5, 5, 5, 5})

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}

		r0, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}
		r1, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}
		dim := []int64{int64(r0%6 + 1), int64(r1%6 + 1)}

		count, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}
		k := int(count % 12)

		nzindex := make([]int32, 0, k*2)
		nzdata := make([]any, 0, k)
		idx0 := make([]int32, 0, k)
		idx1 := make([]int32, 0, k)
		for i := 0; i < k; i++ {
			c0, err := tp.GetByte()
			if err != nil {
				t.Skip(err)
			}
			c1, err := tp.GetByte()
			if err != nil {
				t.Skip(err)
			}
			v, err := tp.GetByte()
			if err != nil {
				t.Skip(err)
			}
			idx0 = append(idx0, int32(c0)%int32(dim[0])+1)
			idx1 = append(idx1, int32(c1)%int32(dim[1])+1)
			nzdata = append(nzdata, int32(v))
		}
		nzindex = append(nzindex, idx0...)
		nzindex = append(nzindex, idx1...)

		s, err := COOToSVT(dim, KindInt32, nzindex, nzdata)
		if err != nil {
			t.Skip(err)
		}

		d1, err := SVTToDense(dim, s)
		if err != nil {
			t.Fatalf("SVTToDense: %v", err)
		}

		gotIndex, gotData, err := SVTToCOO(dim, s)
		if err != nil {
			t.Fatalf("SVTToCOO: %v", err)
		}
		s2, err := COOToSVT(dim, KindInt32, gotIndex, gotData)
		if err != nil {
			t.Fatalf("COOToSVT (round 2): %v", err)
		}
		d2, err := SVTToDense(dim, s2)
		if err != nil {
			t.Fatalf("SVTToDense (round 2): %v", err)
		}

		for i := range d1 {
			if d1[i].(int32) != d2[i].(int32) {
				t.Fatalf("round-trip divergence at flat index %d: %v != %v", i, d1[i], d2[i])
			}
		}
	})
}

// FuzzSubassignAgreesWithDense checks that SubassignByMindex applied to an
// initially-absent SVT agrees, entry by entry, with naively scattering the
// same rows into a dense buffer with last-write-wins semantics.
func FuzzSubassignAgreesWithDense(f *testing.F) {
	f.Add([]byte{4, 4, 6, 1, 1, 10, 2, 2, 20, 1, 1, 0})
	f.Add([]byte{1, 1, 1, 1, 1, 5})

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}

		r0, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}
		r1, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}
		dim := []int64{int64(r0%4 + 1), int64(r1%4 + 1)}
		total := dim[0] * dim[1]

		count, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}
		L := int(count % 10)

		mindex := make([]int32, 0, L*2)
		vals := make([]any, 0, L)
		idx0 := make([]int32, 0, L)
		idx1 := make([]int32, 0, L)
		dense := make([]int32, total)

		for i := 0; i < L; i++ {
			c0, err := tp.GetByte()
			if err != nil {
				t.Skip(err)
			}
			c1, err := tp.GetByte()
			if err != nil {
				t.Skip(err)
			}
			v, err := tp.GetByte()
			if err != nil {
				t.Skip(err)
			}
			r := int32(c0)%int32(dim[0]) + 1
			c := int32(c1)%int32(dim[1]) + 1
			idx0 = append(idx0, r)
			idx1 = append(idx1, c)
			vals = append(vals, int32(v))
			dense[int64(c-1)*dim[0]+int64(r-1)] = int32(v)
		}
		mindex = append(mindex, idx0...)
		mindex = append(mindex, idx1...)

		s := &SVT{Kind: KindInt32, Dim: dim, root: nil}
		got, err := SubassignByMindex(dim, KindInt32, s, mindex, vals)
		if err != nil {
			t.Fatalf("SubassignByMindex: %v", err)
		}

		gotDense, err := SVTToDense(dim, got)
		if err != nil {
			t.Fatalf("SVTToDense: %v", err)
		}
		for i := range dense {
			if gotDense[i].(int32) != dense[i] {
				t.Fatalf("mismatch at flat index %d: svt=%v dense=%v", i, gotDense[i], dense[i])
			}
		}
	})
}
