// SPDX-License-Identifier: MIT

// Package svt implements the Sparse Vector Tree (SVT): a recursive,
// pointer-tree representation of an N-dimensional sparse array whose
// bottom leaves are compressed sparse 1-D vectors.
//
// An SVT is either absent (every element is the zero value of its kind)
// or a tree of Nodes, each spanning one axis of the array, terminating
// in Leaves over the innermost axis (axis 0); a 1-D SVT is a single Leaf. The package provides
// conversions between an SVT and three alternative representations —
// coordinate (COO), compressed-sparse-column (CSC, for 2-D arrays), and
// fully materialised dense arrays — plus a two-pass engine for merging
// bulk (index, value) updates into an existing SVT without mutating it,
// producing a new tree that shares unmodified branches with the input.
package svt
