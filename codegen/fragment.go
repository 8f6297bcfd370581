// Package codegen translates an abstract grammar rule set into the
// source text of a recursive-descent OCaml parser over tree-sitter
// CST nodes.
//
// Every generated matcher has the same shape: it takes the list of
// sibling nodes still to be consumed and returns an optional pair of
// the parsed value and the remaining nodes.  Sequences are compiled
// continuation-style, from the last element back to the first, so
// that each element wraps the matcher for everything after it.
package codegen

import (
	"strings"

	"github.com/dmitris/ocaml-tree-sitter-core/indent"
)

type fragForm int

const (
	// formFun is a ready-to-call matcher expression.
	formFun fragForm = iota

	// formBody is an expression that is only valid where the
	// remaining node list is already bound to the name `nodes`.
	formBody
)

// frag is a self-contained generated-code expression in one of the
// two equivalent matcher forms.  Fragments are never mutated after
// construction, only wrapped; converting between the forms changes
// the binding of the input node list and nothing else.
type frag struct {
	form fragForm
	tree indent.Tree
}

func funFrag(nodes ...indent.Node) frag {
	return frag{form: formFun, tree: indent.Tree(nodes)}
}

func bodyFrag(nodes ...indent.Node) frag {
	return frag{form: formBody, tree: indent.Tree(nodes)}
}

func funLine(s string) frag {
	return funFrag(indent.Line(s))
}

// fun returns the fragment as a matcher expression.
func (f frag) fun() indent.Tree {
	if f.form == formFun {
		return f.tree
	}
	return indent.Tree{
		indent.Line("(fun nodes ->"),
		indent.Block(f.tree),
		indent.Line(")"),
	}
}

// body returns the fragment as an expression over the bound name
// `nodes`.
func (f frag) body() indent.Tree {
	if f.form == formBody {
		return f.tree
	}
	return applyTo(f.tree, "nodes")
}

// arg returns the matcher expression in a form safe for argument
// position: atoms pass through, anything else is parenthesized.
func (f frag) arg() indent.Tree {
	if f.form == formBody {
		// the lambda wrapper is already parenthesized
		return f.fun()
	}
	t := f.fun()
	if len(t) == 1 {
		if line, ok := t[0].(indent.Line); ok && !strings.Contains(string(line), " ") {
			return t
		}
	}
	return parenthesize(t)
}

// applyTo appends one more argument to an application expression.
func applyTo(t indent.Tree, arg string) indent.Tree {
	if len(t) == 1 {
		if line, ok := t[0].(indent.Line); ok {
			return indent.Tree{indent.Line(string(line) + " " + arg)}
		}
	}
	out := make(indent.Tree, len(t), len(t)+1)
	copy(out, t)
	return append(out, indent.Block{indent.Line(arg)})
}

// parenthesize wraps an expression tree in parentheses by editing its
// first and last rendered lines in place of introducing extra ones.
func parenthesize(t indent.Tree) indent.Tree {
	t = cloneTree(t)
	if !editFirstLine(t, func(s string) string { return "(" + s }) {
		return indent.Tree{indent.Line("()")}
	}
	editLastLine(t, func(s string) string { return s + ")" })
	return t
}

func cloneTree(t indent.Tree) indent.Tree {
	out := make(indent.Tree, len(t))
	for i, n := range t {
		switch n := n.(type) {
		case indent.Block:
			out[i] = indent.Block(cloneTree(indent.Tree(n)))
		case indent.Inline:
			out[i] = indent.Inline(cloneTree(indent.Tree(n)))
		default:
			out[i] = n
		}
	}
	return out
}

func editFirstLine(t indent.Tree, f func(string) string) bool {
	for i, n := range t {
		switch n := n.(type) {
		case indent.Line:
			t[i] = indent.Line(f(string(n)))
			return true
		case indent.Block:
			if editFirstLine(indent.Tree(n), f) {
				return true
			}
		case indent.Inline:
			if editFirstLine(indent.Tree(n), f) {
				return true
			}
		}
	}
	return false
}

func editLastLine(t indent.Tree, f func(string) string) bool {
	for i := len(t) - 1; i >= 0; i-- {
		switch n := t[i].(type) {
		case indent.Line:
			t[i] = indent.Line(f(string(n)))
			return true
		case indent.Block:
			if editLastLine(indent.Tree(n), f) {
				return true
			}
		case indent.Inline:
			if editLastLine(indent.Tree(n), f) {
				return true
			}
		}
	}
	return false
}
