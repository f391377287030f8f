// SPDX-License-Identifier: MIT

package svt

import (
	"fmt"
	"io"
	"strings"
)

// String returns a hierarchical diagram of s, useful for debugging and
// test failure output; just a wrapper for [Fdump].
func (s *SVT) String() string {
	w := new(strings.Builder)
	if err := Fdump(w, s); err != nil {
		panic(err)
	}
	return w.String()
}

// Fdump writes a recursive, indented diagram of s to w: one line per
// Node (its occupied slot count; the axis length is not printed), one
// "[slot]:" line per occupied child, and one line per Leaf (its
// positions and values).
func Fdump(w io.Writer, s *SVT) error {
	if _, err := fmt.Fprintf(w, "SVT kind=%s dim=%v\n", s.Kind, s.Dim); err != nil {
		return err
	}
	return dumpCell(w, s.root, len(s.Dim), 1)
}

func dumpCell(w io.Writer, cell any, depth, indent int) error {
	pad := strings.Repeat("  ", indent)
	switch c := cell.(type) {
	case nil:
		_, err := fmt.Fprintf(w, "%sabsent\n", pad)
		return err
	case *leaf:
		_, err := fmt.Fprintf(w, "%sleaf pos=%v vals=%v\n", pad, c.pos, c.vals)
		return err
	case *node:
		idxs := c.children.Indices(nil)
		if _, err := fmt.Fprintf(w, "%snode occupied=%d\n", pad, len(idxs)); err != nil {
			return err
		}
		for rank, idx := range idxs {
			if _, err := fmt.Fprintf(w, "%s[%d]:\n", pad, idx); err != nil {
				return err
			}
			if err := dumpCell(w, c.children.Items[rank], depth-1, indent+1); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintf(w, "%s<transient %T>\n", pad, c)
		return err
	}
}
