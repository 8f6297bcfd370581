// Package indent represents generated source code as a tree of lines
// and indented blocks, deferring all layout decisions to a single
// renderer.  Trees are built bottom-up and never mutated afterwards.
package indent

import "strings"

// Node is one element of an indentation tree.
type Node interface {
	node()
}

// Tree is an ordered forest of nodes.
type Tree []Node

// Line is a single literal line of output.
type Line string

// Block renders its children one indentation level deeper.
type Block Tree

// Inline splices its children at the current indentation level.
type Inline Tree

// Empty renders nothing.  It is a placeholder for code paths that
// must produce a node but have nothing to say.
type Empty struct{}

func (Line) node()   {}
func (Block) node()  {}
func (Inline) node() {}
func (Empty) node()  {}

// Render renders the tree with two-space indentation.
func Render(t Tree) string {
	return RenderWith(t, "  ")
}

// RenderWith renders the tree using `space` as the indentation unit.
func RenderWith(t Tree, space string) string {
	r := &renderer{buffer: &strings.Builder{}, space: space}
	r.render(t)
	return r.buffer.String()
}

type renderer struct {
	buffer      *strings.Builder
	indentLevel int
	space       string
}

func (r *renderer) render(t Tree) {
	for _, n := range t {
		switch n := n.(type) {
		case Line:
			r.writeLine(string(n))
		case Block:
			r.indentLevel++
			r.render(Tree(n))
			r.indentLevel--
		case Inline:
			r.render(Tree(n))
		case Empty:
		}
	}
}

func (r *renderer) writeLine(s string) {
	if s != "" {
		for i := 0; i < r.indentLevel; i++ {
			r.buffer.WriteString(r.space)
		}
		r.buffer.WriteString(s)
	}
	r.buffer.WriteString("\n")
}
