package codegen

import (
	"fmt"

	"github.com/dmitris/ocaml-tree-sitter-core/grammar"
	"github.com/dmitris/ocaml-tree-sitter-core/indent"
)

type emitter struct {
	grammar *grammar.Grammar

	// rule currently being compiled, for error context
	rule string
}

func newEmitter(g *grammar.Grammar) *emitter {
	return &emitter{grammar: g}
}

// compileBody compiles one rule body variant against the continuation
// for everything that follows it in the enclosing sequence.
func (e *emitter) compileBody(b grammar.Body, n next) (next, error) {
	switch b := b.(type) {
	case *grammar.SymbolBody:
		if _, ok := e.grammar.Lookup(b.Name); !ok {
			return next{}, &GenError{Rule: e.rule, Message: fmt.Sprintf("undeclared rule %q", b.Name)}
		}
		return prependMatcher(funLine("parse_"+b.Name), n), nil

	case *grammar.StringBody:
		return prependMatcher(leafMatcher(b.Value), n), nil

	case *grammar.PatternBody:
		return prependMatcher(leafMatcher(b.Value), n), nil

	case *grammar.BlankBody:
		return prependMatcher(funLine("_parse_blank"), n), nil

	case *grammar.RepeatBody:
		return e.compileRepeat("Combine.parse_repeat", b.Content, n)

	case *grammar.Repeat1Body:
		return e.compileRepeat("Combine.parse_repeat1", b.Content, n)

	case *grammar.ChoiceBody:
		return e.compileChoice(b.Members, n)

	case *grammar.SeqBody:
		if len(b.Members) == 0 {
			return prependMatcher(funLine("_parse_blank"), n), nil
		}
		nx, err := e.compileElements(b.Members, n)
		if err != nil {
			return next{}, err
		}
		return e.flattenHead(nx, len(b.Members), nil), nil

	default:
		panic(fmt.Sprintf("unknown rule body variant: %T", b))
	}
}

// compileElements compiles a run of sequence elements right-to-left,
// each one prepending onto the accumulated continuation.  Every
// element contributes exactly one chain slot, so the continuation
// grows by len(bodies) captured and kept elements.
func (e *emitter) compileElements(bodies []grammar.Body, n next) (next, error) {
	var err error
	for i := len(bodies) - 1; i >= 0; i-- {
		n, err = e.compileBody(bodies[i], n)
		if err != nil {
			return next{}, err
		}
	}
	return n, nil
}

// compileRepeat compiles Repeat/Repeat1 as a call to the matching
// runtime combinator, parameterized by the standalone matcher for one
// repetition and the matcher for the rest of the sequence.
func (e *emitter) compileRepeat(combinator string, content grammar.Body, n next) (next, error) {
	elt, err := e.compileStandalone(content)
	if err != nil {
		return next{}, err
	}
	return prependOne(n, func(tail frag) frag {
		return funFrag(
			indent.Line(combinator),
			indent.Block(elt.arg()),
			indent.Block(tail.arg()),
		)
	}), nil
}

// compileStandalone compiles a sub-body as a self-contained matcher
// with its own empty continuation and its own flattening pass.  No
// partial tuple state crosses a repetition or choice boundary.
func (e *emitter) compileStandalone(b grammar.Body) (frag, error) {
	nx, err := e.compileBody(b, next{})
	if err != nil {
		return frag{}, err
	}
	nx = nx.flatten()
	nx = e.flattenHead(nx, nx.keep, nil)
	return nx.code, nil
}

// compileChoice compiles ordered alternatives sharing one
// continuation.  The shared tail matcher is bound exactly once, each
// alternative is compiled as its own sequence ending in a call to
// that binding, and its flattened tuple is tagged with a `Case<i>
// polymorphic variant.  Polymorphic variants need no type
// declaration, so two choices in one grammar can reuse the same tag
// at different payload types.  Alternatives are tried in listed
// order; the first success wins and a failure of all of them is the
// failure of the whole choice.
func (e *emitter) compileChoice(members []grammar.Body, n next) (next, error) {
	if len(members) == 0 {
		return next{}, &GenError{Rule: e.rule, Message: "empty choice"}
	}

	cases := make([]frag, len(members))
	for i, m := range members {
		// Each alternative sees the shared tail only through its
		// binding name, never through the tail's code.
		var (
			tailRef = newNext(1, 0, funLine("parse_tail"))
			alt     next
			err     error
		)
		if seq, ok := m.(*grammar.SeqBody); ok && len(seq.Members) > 0 {
			// An alternative that is itself a sequence flattens
			// directly into the tagged tuple.
			alt, err = e.compileElements(seq.Members, tailRef)
		} else {
			alt, err = e.compileBody(m, tailRef)
		}
		if err != nil {
			return next{}, err
		}
		tag := fmt.Sprintf("`Case%d", i)
		alt = e.flattenHead(alt, alt.keep, func(tuple string) string {
			return tag + " " + tuple
		})
		cases[i] = alt.code
	}

	return prependOne(n, func(tail frag) frag {
		tree := indent.Tree{
			indent.Line("let parse_tail ="),
			indent.Block(tail.fun()),
			indent.Line("in"),
		}
		for i, c := range cases {
			tree = append(tree,
				indent.Line(fmt.Sprintf("let parse_case%d =", i)),
				indent.Block(c.fun()),
				indent.Line("in"),
			)
		}
		for i := range cases {
			tree = append(tree,
				indent.Line(fmt.Sprintf("match parse_case%d nodes with", i)),
				indent.Line("| Some _ as res -> res"),
			)
			if i < len(cases)-1 {
				tree = append(tree, indent.Line("| None ->"))
			} else {
				tree = append(tree, indent.Line("| None -> None"))
			}
		}
		return bodyFrag(tree...)
	}), nil
}

// flattenHead collapses the first numElts chain elements of the
// continuation into one tuple, exposing them as a single opaque
// element to the enclosing sequence.  When the rewrite would be the
// identity there is nothing to emit.
func (e *emitter) flattenHead(n next, numElts int, wrap func(string) string) next {
	n = n.flatten()
	if numElts > n.keep {
		panic(fmt.Sprintf("flattening %d elements but only %d are kept", numElts, n.keep))
	}
	if wrap == nil && numElts <= 1 {
		return n
	}
	pattern := nestedShape(numElts, n.captured)
	flat := flatShape(numElts, n.captured, wrap)
	n = n.mapCode(func(code frag) frag {
		return funFrag(
			indent.Line("Combine.map_fst"),
			indent.Block{indent.Line(fmt.Sprintf("(fun %s -> %s)", pattern, flat))},
			indent.Block(code.arg()),
		)
	})
	return newNext(n.captured-numElts+1, n.keep-numElts+1, n.code)
}

func leafMatcher(text string) frag {
	return funLine("_parse_leaf " + ocamlQuote(text))
}
