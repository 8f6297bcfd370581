package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arithmeticGrammar = `{
  "name": "arithmetic",
  "rules": {
    "program": {
      "type": "REPEAT",
      "content": {"type": "SYMBOL", "name": "expression"}
    },
    "expression": {
      "type": "CHOICE",
      "members": [
        {"type": "SYMBOL", "name": "sum"},
        {"type": "SYMBOL", "name": "number"}
      ]
    },
    "sum": {
      "type": "PREC_LEFT",
      "value": 1,
      "content": {
        "type": "SEQ",
        "members": [
          {"type": "SYMBOL", "name": "expression"},
          {"type": "STRING", "value": "+"},
          {"type": "SYMBOL", "name": "expression"}
        ]
      }
    },
    "number": {
      "type": "TOKEN",
      "content": {"type": "PATTERN", "value": "[0-9]+"}
    }
  },
  "extras": [
    {"type": "PATTERN", "value": "\\s"},
    {"type": "SYMBOL", "name": "comment"}
  ]
}`

func TestLoad(t *testing.T) {
	g, err := Load([]byte(arithmeticGrammar))
	require.NoError(t, err)

	assert.Equal(t, "arithmetic", g.Name)
	assert.Equal(t, "program", g.Entrypoint)
	assert.Equal(t, []string{"comment"}, g.Extras)

	// rule order must survive decoding: the first rule is the entrypoint
	names := make([]string, len(g.Rules))
	for i, r := range g.Rules {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"program", "expression", "sum", "number"}, names)

	// PREC_LEFT unwraps to its content
	sum, ok := g.Lookup("sum")
	require.True(t, ok)
	seq, ok := sum.Body.(*SeqBody)
	require.True(t, ok)
	require.Len(t, seq.Members, 3)
	assert.Equal(t, "'+'", seq.Members[1].Text())

	// TOKEN unwraps to its content
	number, ok := g.Lookup("number")
	require.True(t, ok)
	assert.Equal(t, "/[0-9]+/", number.Body.Text())
}

func TestLoadNormalization(t *testing.T) {
	tests := []struct {
		name     string
		rule     string
		expected string
	}{
		{
			name:     "single member choice collapses",
			rule:     `{"type": "CHOICE", "members": [{"type": "STRING", "value": "x"}]}`,
			expected: "'x'",
		},
		{
			name:     "empty seq becomes blank",
			rule:     `{"type": "SEQ", "members": []}`,
			expected: "''",
		},
		{
			name:     "single member seq collapses",
			rule:     `{"type": "SEQ", "members": [{"type": "SYMBOL", "name": "a"}]}`,
			expected: "a",
		},
		{
			name: "alias unwraps to content",
			rule: `{"type": "ALIAS", "value": "other", "named": true,
				"content": {"type": "SYMBOL", "name": "a"}}`,
			expected: "a",
		},
		{
			name: "field unwraps to content",
			rule: `{"type": "FIELD", "name": "left",
				"content": {"type": "SYMBOL", "name": "a"}}`,
			expected: "a",
		},
		{
			name: "optional stays a choice with blank",
			rule: `{"type": "CHOICE", "members": [
				{"type": "SYMBOL", "name": "a"},
				{"type": "BLANK"}]}`,
			expected: "(a | '')",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := `{"name": "t", "rules": {"r": ` + test.rule + `}}`
			g, err := Load([]byte(doc))
			require.NoError(t, err)
			require.Len(t, g.Rules, 1)
			assert.Equal(t, test.expected, g.Rules[0].Body.Text())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected string
	}{
		{
			name:     "not json",
			doc:      "rules:",
			expected: "invalid grammar document",
		},
		{
			name:     "no rules",
			doc:      `{"name": "empty"}`,
			expected: "declares no rules",
		},
		{
			name:     "unsupported construct",
			doc:      `{"name": "t", "rules": {"r": {"type": "EXTERNAL"}}}`,
			expected: "unsupported rule construct",
		},
		{
			name:     "rules not an object",
			doc:      `{"name": "t", "rules": [1, 2]}`,
			expected: "rules must be a JSON object",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load([]byte(test.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.expected)
		})
	}
}
