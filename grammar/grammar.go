// Package grammar models a tree-sitter grammar as an abstract rule
// set: an ordered list of named rules whose bodies are trees of
// symbols, literals, patterns, repetitions, choices and sequences.
package grammar

import (
	"fmt"
	"strings"
)

// Body is one node within a rule body tree.
type Body interface {
	// Text is the compact grammar-notation representation of the
	// body, useful for stringifying a rule again
	Text() string

	// String returns the debug representation of the body
	String() string
}

// Body Type: Symbol

type SymbolBody struct {
	Name string
}

func NewSymbol(name string) *SymbolBody { return &SymbolBody{Name: name} }

func (b SymbolBody) Text() string   { return b.Name }
func (b SymbolBody) String() string { return fmt.Sprintf("Symbol(%s)", b.Name) }

// Body Type: String

type StringBody struct {
	Value string
}

func NewString(v string) *StringBody { return &StringBody{Value: v} }

func (b StringBody) Text() string   { return fmt.Sprintf("'%s'", b.Value) }
func (b StringBody) String() string { return fmt.Sprintf("String(%s)", b.Value) }

// Body Type: Pattern

type PatternBody struct {
	Value string
}

func NewPattern(v string) *PatternBody { return &PatternBody{Value: v} }

func (b PatternBody) Text() string   { return fmt.Sprintf("/%s/", b.Value) }
func (b PatternBody) String() string { return fmt.Sprintf("Pattern(%s)", b.Value) }

// Body Type: Blank

type BlankBody struct{}

func NewBlank() *BlankBody { return &BlankBody{} }

func (b BlankBody) Text() string   { return "''" }
func (b BlankBody) String() string { return "Blank" }

// Body Type: Repeat

type RepeatBody struct {
	Content Body
}

func NewRepeat(content Body) *RepeatBody { return &RepeatBody{Content: content} }

func (b RepeatBody) Text() string   { return fmt.Sprintf("%s*", b.Content.Text()) }
func (b RepeatBody) String() string { return fmt.Sprintf("Repeat(%s)", b.Content) }

// Body Type: Repeat1

type Repeat1Body struct {
	Content Body
}

func NewRepeat1(content Body) *Repeat1Body { return &Repeat1Body{Content: content} }

func (b Repeat1Body) Text() string   { return fmt.Sprintf("%s+", b.Content.Text()) }
func (b Repeat1Body) String() string { return fmt.Sprintf("Repeat1(%s)", b.Content) }

// Body Type: Choice

type ChoiceBody struct {
	Members []Body
}

func NewChoice(members ...Body) *ChoiceBody { return &ChoiceBody{Members: members} }

func (b ChoiceBody) Text() string   { return "(" + bodiesText(b.Members, " | ") + ")" }
func (b ChoiceBody) String() string { return bodiesString("Choice", b.Members) }

// Body Type: Seq

type SeqBody struct {
	Members []Body
}

func NewSeq(members ...Body) *SeqBody { return &SeqBody{Members: members} }

func (b SeqBody) Text() string   { return "(" + bodiesText(b.Members, " ") + ")" }
func (b SeqBody) String() string { return bodiesString("Seq", b.Members) }

// Rule is a single named grammar production.
type Rule struct {
	Name string
	Body Body
}

func (r Rule) Text() string   { return fmt.Sprintf("%s <- %s", r.Name, r.Body.Text()) }
func (r Rule) String() string { return fmt.Sprintf("Rule[%s](%s)", r.Name, r.Body) }

// Grammar is an ordered rule set with a designated entrypoint rule
// and the node kinds that may appear anywhere in a parse tree without
// being mentioned by any rule (comments, usually).
type Grammar struct {
	Name       string
	Entrypoint string
	Rules      []Rule
	Extras     []string
}

// Lookup finds a rule by name.
func (g *Grammar) Lookup(name string) (*Rule, bool) {
	for i := range g.Rules {
		if g.Rules[i].Name == name {
			return &g.Rules[i], true
		}
	}
	return nil, false
}

// Validate checks the structural invariants the code generator relies
// on: unique rule names, a resolvable entrypoint, every symbol
// reference naming a declared rule, and no empty choice.  It does not
// attempt any grammar analysis beyond that.
func (g *Grammar) Validate() error {
	if len(g.Rules) == 0 {
		return fmt.Errorf("grammar %q has no rules", g.Name)
	}
	seen := make(map[string]bool, len(g.Rules))
	for _, r := range g.Rules {
		if seen[r.Name] {
			return fmt.Errorf("duplicate rule name %q", r.Name)
		}
		seen[r.Name] = true
	}
	if g.Entrypoint == "" {
		return fmt.Errorf("grammar %q has no entrypoint", g.Name)
	}
	if !seen[g.Entrypoint] {
		return fmt.Errorf("entrypoint %q is not a declared rule", g.Entrypoint)
	}
	for _, r := range g.Rules {
		if err := checkBody(r.Name, r.Body, seen); err != nil {
			return err
		}
	}
	return nil
}

func checkBody(rule string, b Body, declared map[string]bool) error {
	switch b := b.(type) {
	case *SymbolBody:
		if !declared[b.Name] {
			return fmt.Errorf("rule %q references undeclared rule %q", rule, b.Name)
		}
	case *RepeatBody:
		return checkBody(rule, b.Content, declared)
	case *Repeat1Body:
		return checkBody(rule, b.Content, declared)
	case *ChoiceBody:
		if len(b.Members) == 0 {
			return fmt.Errorf("rule %q contains an empty choice", rule)
		}
		for _, m := range b.Members {
			if err := checkBody(rule, m, declared); err != nil {
				return err
			}
		}
	case *SeqBody:
		for _, m := range b.Members {
			if err := checkBody(rule, m, declared); err != nil {
				return err
			}
		}
	}
	return nil
}

// Helpers

func bodiesText(items []Body, sep string) string {
	var s strings.Builder
	for i, b := range items {
		s.WriteString(b.Text())
		if i < len(items)-1 {
			s.WriteString(sep)
		}
	}
	return s.String()
}

func bodiesString(name string, items []Body) string {
	var s strings.Builder
	s.WriteString(name)
	s.WriteString("(")
	for i, b := range items {
		s.WriteString(b.String())
		if i < len(items)-1 {
			s.WriteString(", ")
		}
	}
	s.WriteString(")")
	return s.String()
}
