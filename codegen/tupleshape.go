package codegen

import (
	"fmt"
	"strings"
)

// The value produced by a compiled sequence is a right-nested chain
// of pairs.  Flattening rewrites the first numElts links of that
// chain into one tuple of fixed arity, leaving whatever follows bound
// to `tail`.  nestedShape and flatShape compute the two sides of that
// rewrite as OCaml pattern/expression text.

// nestedShape returns the pattern matching the first numElts elements
// of a chain holding numAvail elements in total.  A trailing `tail`
// binding is present exactly when elements remain beyond the
// extracted ones.
func nestedShape(numElts, numAvail int) string {
	checkShape(numElts, numAvail)
	if numElts == 0 {
		return "()"
	}
	var acc string
	if numElts < numAvail {
		acc = "tail"
	} else {
		acc = elt(numElts - 1)
		numElts--
	}
	for i := numElts - 1; i >= 0; i-- {
		acc = fmt.Sprintf("(%s, %s)", elt(i), acc)
	}
	return acc
}

// flatShape returns the expression rebuilding the flattened chain:
// one tuple of numElts elements, wrapped by `wrap` when the caller
// needs to tag it, followed by the untouched tail when one exists.  A
// zero-length tuple never carries a tail.
func flatShape(numElts, numAvail int, wrap func(string) string) string {
	checkShape(numElts, numAvail)
	tuple := flatTuple(numElts)
	if wrap != nil {
		tuple = wrap(tuple)
	}
	if numElts > 0 && numElts < numAvail {
		return fmt.Sprintf("(%s, tail)", tuple)
	}
	return tuple
}

func flatTuple(numElts int) string {
	switch numElts {
	case 0:
		return "()"
	case 1:
		return elt(0)
	default:
		elts := make([]string, numElts)
		for i := range elts {
			elts[i] = elt(i)
		}
		return "(" + strings.Join(elts, ", ") + ")"
	}
}

func elt(i int) string {
	return fmt.Sprintf("e%d", i)
}

// checkShape guards against generator bugs, not user input: the
// counts are bookkeeping the compiler maintains itself.
func checkShape(numElts, numAvail int) {
	if numElts < 0 || numAvail < 0 || numElts > numAvail {
		panic(fmt.Sprintf("invalid tuple shape: numElts=%d numAvail=%d", numElts, numAvail))
	}
}
