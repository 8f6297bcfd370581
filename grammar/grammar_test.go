package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyText(t *testing.T) {
	tests := []struct {
		name     string
		body     Body
		expected string
	}{
		{
			name:     "symbol",
			body:     NewSymbol("expression"),
			expected: "expression",
		},
		{
			name:     "string",
			body:     NewString("+"),
			expected: "'+'",
		},
		{
			name:     "pattern",
			body:     NewPattern("[0-9]+"),
			expected: "/[0-9]+/",
		},
		{
			name:     "blank",
			body:     NewBlank(),
			expected: "''",
		},
		{
			name:     "repeat",
			body:     NewRepeat(NewSymbol("item")),
			expected: "item*",
		},
		{
			name:     "repeat1",
			body:     NewRepeat1(NewSymbol("item")),
			expected: "item+",
		},
		{
			name:     "choice",
			body:     NewChoice(NewString("+"), NewString("-")),
			expected: "('+' | '-')",
		},
		{
			name:     "sequence",
			body:     NewSeq(NewSymbol("a"), NewSymbol("b")),
			expected: "(a b)",
		},
		{
			name:     "nested",
			body:     NewSeq(NewSymbol("a"), NewRepeat(NewChoice(NewString("x"), NewBlank()))),
			expected: "(a ('x' | '')*)",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.body.Text())
		})
	}
}

func TestGrammarValidate(t *testing.T) {
	valid := &Grammar{
		Name:       "calc",
		Entrypoint: "program",
		Rules: []Rule{
			{Name: "program", Body: NewRepeat(NewSymbol("expression"))},
			{Name: "expression", Body: NewChoice(NewSymbol("number"), NewString("-"))},
			{Name: "number", Body: NewPattern("[0-9]+")},
		},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name     string
		grammar  *Grammar
		expected string
	}{
		{
			name:     "no rules",
			grammar:  &Grammar{Name: "empty"},
			expected: "has no rules",
		},
		{
			name: "duplicate rule names",
			grammar: &Grammar{
				Name:       "dup",
				Entrypoint: "a",
				Rules: []Rule{
					{Name: "a", Body: NewBlank()},
					{Name: "a", Body: NewBlank()},
				},
			},
			expected: "duplicate rule name",
		},
		{
			name: "missing entrypoint",
			grammar: &Grammar{
				Name:  "noentry",
				Rules: []Rule{{Name: "a", Body: NewBlank()}},
			},
			expected: "no entrypoint",
		},
		{
			name: "entrypoint not declared",
			grammar: &Grammar{
				Name:       "badentry",
				Entrypoint: "b",
				Rules:      []Rule{{Name: "a", Body: NewBlank()}},
			},
			expected: "not a declared rule",
		},
		{
			name: "undeclared symbol",
			grammar: &Grammar{
				Name:       "dangling",
				Entrypoint: "a",
				Rules:      []Rule{{Name: "a", Body: NewSeq(NewSymbol("b"), NewString("x"))}},
			},
			expected: "undeclared rule",
		},
		{
			name: "empty choice",
			grammar: &Grammar{
				Name:       "emptychoice",
				Entrypoint: "a",
				Rules:      []Rule{{Name: "a", Body: NewRepeat(NewChoice())}},
			},
			expected: "empty choice",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.grammar.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.expected)
		})
	}
}

func TestGrammarLookup(t *testing.T) {
	g := &Grammar{
		Rules: []Rule{
			{Name: "a", Body: NewBlank()},
			{Name: "b", Body: NewSymbol("a")},
		},
	}

	r, ok := g.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, "b", r.Name)

	_, ok = g.Lookup("c")
	assert.False(t, ok)
}
