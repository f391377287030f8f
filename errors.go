// SPDX-License-Identifier: MIT

package svt

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorKind is the closed taxonomy of error conditions the engine can
// raise (design.md §7). There are no numeric codes; callers branch on
// Kind, not on string matching.
type ErrorKind uint8

const (
	UnsupportedElementType ErrorKind = iota
	TypeMismatch
	InvalidCoordinate
	InvalidLinearIndex
	OutOfBoundCoord
	TooManyNonZeros
	IDSTooLarge
	StructuralError
	DimensionError
	ReadError
)

var errorKindNames = [...]string{
	UnsupportedElementType: "UnsupportedElementType",
	TypeMismatch:           "TypeMismatch",
	InvalidCoordinate:      "InvalidCoordinate",
	InvalidLinearIndex:     "InvalidLinearIndex",
	OutOfBoundCoord:        "OutOfBoundCoord",
	TooManyNonZeros:        "TooManyNonZeros",
	IDSTooLarge:            "IDSTooLarge",
	StructuralError:        "StructuralError",
	DimensionError:         "DimensionError",
	ReadError:              "ReadError",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "ErrorKind(invalid)"
}

// Error is the single error type returned by every public operation in
// this package. All errors are fatal for the call: no partial result and
// no observable mutation of caller-owned input is ever returned alongside
// one.
type Error struct {
	Kind      ErrorKind
	Component string // raising component; every error in this package uses "svt"
	Func      string // function that raised the error
	cause     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s.%s: %s", e.Kind, e.Component, e.Func, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// newErrorf builds an *Error whose cause carries a stack trace, following
// the teacher's Non-goal-carried ambient error-handling stack: cockroachdb
// errors.NewWithDepthf instead of bare fmt.Errorf, so a StructuralError raised deep
// in a recursive walk keeps enough context to debug (design notes §9
// replaces the original longjmp-based error propagation with explicit,
// stack-carrying result values).
func newErrorf(kind ErrorKind, component, fn, format string, args ...any) error {
	return &Error{
		Kind:      kind,
		Component: component,
		Func:      fn,
		cause:     errors.NewWithDepthf(1, format, args...),
	}
}

// wrapErrorf wraps an existing error with component/function context,
// preserving the original Kind when cause is itself an *Error produced by
// this package (e.g. a StructuralError surfacing through several levels
// of recursion), and otherwise tagging it with kind — the classification
// a non-package cause (e.g. a strconv parse failure) gets at the point it
// first crosses into this package's error taxonomy.
func wrapErrorf(kind ErrorKind, cause error, component, fn, format string, args ...any) error {
	var svtErr *Error
	if errors.As(cause, &svtErr) {
		kind = svtErr.Kind
	}
	return &Error{
		Kind:      kind,
		Component: component,
		Func:      fn,
		cause:     errors.Wrapf(cause, format, args...),
	}
}

// KindOf extracts the ErrorKind from err, if err (or something it wraps)
// is an *Error produced by this package.
func KindOf(err error) (ErrorKind, bool) {
	var svtErr *Error
	if errors.As(err, &svtErr) {
		return svtErr.Kind, true
	}
	return 0, false
}
