package indent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		tree     Tree
		expected string
	}{
		{
			name:     "single line",
			tree:     Tree{Line("let x = 1")},
			expected: "let x = 1\n",
		},
		{
			name: "block indents one level",
			tree: Tree{
				Line("let f x ="),
				Block{Line("x + 1")},
			},
			expected: "let f x =\n  x + 1\n",
		},
		{
			name: "nested blocks",
			tree: Tree{
				Line("a"),
				Block{
					Line("b"),
					Block{Line("c")},
				},
			},
			expected: "a\n  b\n    c\n",
		},
		{
			name: "inline splices at the same level",
			tree: Tree{
				Line("a"),
				Inline{Line("b"), Line("c")},
			},
			expected: "a\nb\nc\n",
		},
		{
			name: "empty marker renders nothing",
			tree: Tree{
				Line("a"),
				Empty{},
				Line("b"),
			},
			expected: "a\nb\n",
		},
		{
			name: "blank line carries no indentation",
			tree: Tree{
				Line("a"),
				Block{
					Line(""),
					Line("b"),
				},
			},
			expected: "a\n\n  b\n",
		},
		{
			name: "inline inside a block keeps the block level",
			tree: Tree{
				Line("a"),
				Block{
					Inline{Line("b"), Line("c")},
				},
			},
			expected: "a\n  b\n  c\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Render(test.tree))
		})
	}
}

func TestRenderWith(t *testing.T) {
	tree := Tree{
		Line("a"),
		Block{Line("b")},
	}
	assert.Equal(t, "a\n\tb\n", RenderWith(tree, "\t"))
}
