// SPDX-License-Identifier: MIT

package svt

import "github.com/s4sparse/svt/internal/sparse"

// SVT is a Sparse Vector Tree: an N-dimensional sparse array whose
// non-zero values all share Kind. Node child slots are 0-based
// (slot c-1 holds coordinate c); leaf positions along axis 0 are stored
// 1-based, as at the external API (§6).
//
// The zero value of SVT is not meaningful; construct one via the
// converter or subassignment entry points.
type SVT struct {
	Kind Kind
	Dim  []int64

	// root is nil for the all-zero array (the absent value), a *leaf when
	// len(Dim) == 1, or a *node otherwise. No other concrete type ever
	// escapes to a caller; counterCell/appendLeaf/idsI32/idsI64/extLeaf are
	// transient cell kinds used only inside a single driver call (§9).
	root any
}

// node is an interior SVT cell: a fixed-length vector of children
// spanning one axis. children.Test(i) false means "absent at slot i".
// A child, once present, is one of: *node (recursing toward the leaves),
// *leaf (a bottom child, depth 1 above axis 0), or — only during an
// in-flight construction/subassignment call — one of the transient cell
// kinds below.
type node struct {
	children sparse.Array[any]
}

// counterCell is a transient Pass-1 cell used by coo_to_svt's grow pass.
// It occupies a single slot of the node one level above the bottom
// leaves (the node of dimensionality 2, indexed by coord[1]): n counts
// how many incoming non-zeros will land in the leaf that will eventually
// occupy this slot. It is never observed outside coo_to_svt.
type counterCell struct {
	n int32
}

// appendLeaf is a transient Pass-2 cell used by coo_to_svt's fill pass: a
// leaf under construction, sized up front from its counterCell tally.
// Freezing (once filled == len(pos)) discards filled and yields a *leaf.
type appendLeaf struct {
	pos    []int32
	vals   []any
	filled int32
}

// append adds (p, v) as the next entry. It enforces the same strictly
// ascending invariant newLeaf validates for the N=1 path: since entries
// arrive one at a time here rather than as a complete slice, the check
// is incremental (each p must exceed the previously appended position)
// instead of a single ex-post scan.
func (a *appendLeaf) append(p int32, v any) error {
	if a.filled > 0 && p <= a.pos[a.filled-1] {
		return newErrorf(StructuralError, "svt", "appendLeaf.append",
			"positions must be strictly ascending within a leaf, got %d after %d", p, a.pos[a.filled-1])
	}
	a.pos[a.filled] = p
	a.vals[a.filled] = v
	a.filled++
	return nil
}

func (a *appendLeaf) full() bool {
	return int(a.filled) == len(a.pos)
}

func (a *appendLeaf) freeze() *leaf {
	return &leaf{pos: a.pos, vals: a.vals}
}

// idsI32 and idsI64 are transient Pass-1 cells of the subassignment
// engine (§4.5): an Incoming Data Subset, a growable list of offsets
// into the caller's Mindex/Lindex and vals arrays. Two widths exist so
// that ordinary (Mindex- or short-Lindex-driven) updates pay only i32
// bookkeeping, while a long Lindex update can still address offsets
// beyond 2^31-1.
type idsI32 struct {
	offs []int32
}

type idsI64 struct {
	offs []int64
}

func (d *idsI32) append(off int32) { d.offs = append(d.offs, off) }
func (d *idsI64) append(off int64) { d.offs = append(d.offs, off) }

func (d *idsI32) len() int { return len(d.offs) }
func (d *idsI64) len() int { return len(d.offs) }

// extLeaf is a transient Pass-1/Pass-2 cell: an existing bottom Leaf that
// has received at least one incoming write in this subassignment call.
// ids is either *idsI32 or *idsI64, matching the driver's offset width
// for this call.
type extLeaf struct {
	leaf *leaf
	ids  any
}

// isEmpty reports whether n has no occupied children at all. An empty
// node is never stored in the tree; it collapses to the absent value
// one level up (§3.3).
func (n *node) isEmpty() bool {
	return n.children.Len() == 0
}

// cloneShallow returns a copy of n whose children array is independent
// (new bitset, new Items backing slice) but whose child cells are shared
// by reference with n. This is the unit of copy-on-write for the
// subassignment engine's path-copy discipline (§5): a Node is cloned at
// most once per call, the first time a descent touches it while it is
// still identical to the corresponding node in the input tree.
func (n *node) cloneShallow() *node {
	return &node{children: *n.children.Copy()}
}

// newNode returns an empty node. It takes no axis length: no slots are
// preallocated, matching the sparse storage's pay-for-what's-occupied
// design.
func newNode() *node {
	return &node{}
}
