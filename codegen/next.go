package codegen

import (
	"fmt"

	"github.com/dmitris/ocaml-tree-sitter-core/indent"
)

// next tracks the continuation of a sequence while it is compiled
// from its last element back to its first.  `captured` is how many
// chain elements the continuation's matcher still produces and `keep`
// how many of those are meaningful; the difference is throwaway slots
// contributed by the end-of-sequence or trivial-success matchers.
//
// The zero value is the Nothing sentinel: the sequence ends here and
// matches successfully with no result.
type next struct {
	set      bool
	captured int
	keep     int
	code     frag
}

func newNext(captured, keep int, code frag) next {
	n := next{set: true, captured: captured, keep: keep, code: code}
	n.check()
	return n
}

func (n next) isNothing() bool { return !n.set }

func (n next) check() {
	if n.keep < 0 || n.captured < n.keep {
		panic(fmt.Sprintf("inconsistent continuation counts: captured=%d keep=%d",
			n.captured, n.keep))
	}
}

// flatten materializes the Nothing sentinel as a trivial
// always-succeeding matcher so that callers can treat every
// continuation uniformly.
func (n next) flatten() next {
	if n.isNothing() {
		return newNext(0, 0, funLine("Combine.parse_success"))
	}
	return n
}

// mapCode applies f to the code component only.  Nothing stays
// Nothing: f is never called on a sentinel.
func (n next) mapCode(f func(frag) frag) next {
	if n.isNothing() {
		return n
	}
	return newNext(n.captured, n.keep, f(n.code))
}

// prependOne grows the continuation by exactly one captured and kept
// element.  The wrapper receives the matcher for everything after the
// new element; on Nothing, that is the trivial success matcher, whose
// unit result occupies a throwaway chain slot.
func prependOne(n next, makeWrapper func(tail frag) frag) next {
	if n.isNothing() {
		return newNext(2, 1, makeWrapper(funLine("Combine.parse_success")))
	}
	return newNext(n.captured+1, n.keep+1, makeWrapper(n.code))
}

// prependMatcher prepends one element matcher to the continuation by
// sequential composition: matchElt consumes a prefix of the nodes and
// the tail matcher runs on whatever is left.
func prependMatcher(matchElt frag, n next) next {
	return prependOne(n, func(tail frag) frag {
		return funFrag(
			indent.Line("Combine.parse_seq"),
			indent.Block(matchElt.arg()),
			indent.Block(tail.arg()),
		)
	})
}
