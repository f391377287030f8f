// SPDX-License-Identifier: MIT

// Package sparse implements a generic array with popcount compression:
// a bitset records which slots are occupied, and a slice packs the
// occupied values contiguously, indexed by the bitset's rank.
//
// This is the storage primitive behind an SVT node's children: a node of
// dimensionality d has dim[d-1] conceptual child slots, almost all of
// which are absent, so paying for a full dim[d-1]-length slice per node
// would waste memory in proportion to sparsity rather than density.
package sparse

import (
	"github.com/bits-and-blooms/bitset"
)

// Array is a popcount-compressed sparse array: Bits.Test(i) reports
// whether slot i is occupied, and Items holds the occupied values in
// slot-index order.
type Array[T any] struct {
	Bits  *bitset.BitSet
	Items []T
}

func (s *Array[T]) bits() *bitset.BitSet {
	if s.Bits == nil {
		s.Bits = bitset.New(0)
	}
	return s.Bits
}

// rank0 maps a bitset index to its Items index. Only valid when
// Bits.Test(i) is true.
func (s *Array[T]) rank0(i uint) int {
	return int(s.bits().Rank(i)) - 1
}

// Len returns the number of occupied slots.
func (s *Array[T]) Len() int {
	return len(s.Items)
}

// Indices appends the occupied slot indices, in ascending order, to buf
// and returns the result. Items is already held in the same order (it is
// packed by rank), so callers that need (index, value) pairs can zip the
// returned slice against Items directly.
func (s *Array[T]) Indices(buf []uint) []uint {
	if s.Bits == nil {
		return buf
	}
	for i, ok := s.Bits.NextSet(0); ok; i, ok = s.Bits.NextSet(i + 1) {
		buf = append(buf, i)
	}
	return buf
}

// Test reports whether slot i is occupied.
func (s *Array[T]) Test(i uint) bool {
	return s.bits().Test(i)
}

// Get returns the value at slot i, if occupied.
func (s *Array[T]) Get(i uint) (value T, ok bool) {
	if s.Test(i) {
		return s.Items[s.rank0(i)], true
	}
	return
}

// MustGet returns the value at slot i. Callers must have already
// established that i is occupied; otherwise behavior is undefined.
func (s *Array[T]) MustGet(i uint) T {
	return s.Items[s.rank0(i)]
}

// UpdateAt sets the value at slot i via a callback receiving the previous
// value (and whether it was present), returning the new value.
func (s *Array[T]) UpdateAt(i uint, cb func(T, bool) T) (newValue T, wasPresent bool) {
	var rank int

	var oldValue T
	if wasPresent = s.Test(i); wasPresent {
		rank = s.rank0(i)
		oldValue = s.Items[rank]
	}

	newValue = cb(oldValue, wasPresent)

	if wasPresent {
		s.Items[rank] = newValue
		return newValue, wasPresent
	}

	s.bits().Set(i)
	rank = s.rank0(i)
	s.insertItem(rank, newValue)

	return newValue, wasPresent
}

// InsertAt sets the value at slot i, overwriting any existing occupant.
// Reports whether a value was already present.
func (s *Array[T]) InsertAt(i uint, value T) (exists bool) {
	if s.Len() != 0 && s.Test(i) {
		s.Items[s.rank0(i)] = value
		return true
	}

	s.bits().Set(i)
	s.insertItem(s.rank0(i), value)

	return false
}

// DeleteAt removes the value at slot i, if occupied.
func (s *Array[T]) DeleteAt(i uint) (value T, exists bool) {
	if s.Len() == 0 || !s.Test(i) {
		return
	}

	rank := s.rank0(i)
	value = s.Items[rank]

	s.deleteItem(rank)
	s.bits().Clear(i)

	return value, true
}

// Copy returns a shallow copy of the Array: the bitset and Items backing
// slice are both new, but elements themselves are copied by assignment.
func (s *Array[T]) Copy() *Array[T] {
	if s == nil {
		return nil
	}

	cp := &Array[T]{
		Items: append(s.Items[:0:0], s.Items...),
	}
	if s.Bits != nil {
		cp.Bits = s.Bits.Clone()
	}

	return cp
}

// insertItem inserts item at Items index i, shifting the tail right.
func (s *Array[T]) insertItem(i int, item T) {
	if len(s.Items) < cap(s.Items) {
		s.Items = s.Items[:len(s.Items)+1]
	} else {
		var zero T
		s.Items = append(s.Items, zero)
	}

	copy(s.Items[i+1:], s.Items[i:])
	s.Items[i] = item
}

// deleteItem removes Items index i, shifting the tail left, clearing
// the vacated tail slot so it doesn't keep a stale reference alive, and
// clipping the capacity of Items to its new length.
func (s *Array[T]) deleteItem(i int) {
	var zero T

	nl := len(s.Items) - 1
	copy(s.Items[i:], s.Items[i+1:])

	s.Items[nl] = zero
	s.Items = s.Items[:nl:nl]
}
