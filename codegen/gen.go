package codegen

import (
	"fmt"
	"strings"

	"github.com/dmitris/ocaml-tree-sitter-core/grammar"
	"github.com/dmitris/ocaml-tree-sitter-core/indent"
)

// Generate compiles the grammar into the source text of an OCaml
// parser module: a fixed preamble, one mutually recursive matcher per
// rule, and a root driver wired to the entrypoint rule.
func Generate(g *grammar.Grammar, cfg *Config) (string, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := g.Validate(); err != nil {
		return "", err
	}

	entry := cfg.GetString("grammar.entrypoint")
	if entry == "" {
		entry = g.Entrypoint
	}
	if _, ok := g.Lookup(entry); !ok {
		return "", &GenError{Message: fmt.Sprintf("entrypoint %q is not a declared rule", entry)}
	}

	e := newEmitter(g)
	out := indent.Tree{}

	if cfg.GetBool("gen.header") {
		out = append(out,
			indent.Line(fmt.Sprintf("(* Parser for %s. Generated by ocaml-tree-sitter. Do not edit. *)", g.Name)),
			indent.Line(""),
		)
	}

	out = append(out, preamble()...)
	out = append(out, indent.Line(""))

	removeExtras := cfg.GetBool("gen.remove_extras") && len(g.Extras) > 0
	if removeExtras {
		out = append(out, extrasBinding(g.Extras), indent.Line(""))
	}

	for i, r := range g.Rules {
		binding, err := e.compileRule(r, i == 0)
		if err != nil {
			return "", err
		}
		out = append(out, indent.Inline(binding))
	}

	out = append(out, indent.Line(""))
	out = append(out, rootDriver(entry, removeExtras)...)

	return indent.Render(out), nil
}

// compileRule emits one binding of the mutually recursive matcher
// group.  A rule whose whole body is a single terminal needs no
// recursive structure: it binds straight to the leaf matcher, keyed
// by the rule's own name.  Anything else is guarded by the rule-entry
// primitive and compiled against an explicit end-of-sequence
// continuation, so unmatched trailing children fail the rule.
func (e *emitter) compileRule(r grammar.Rule, first bool) (indent.Tree, error) {
	e.rule = r.Name

	keyword := "and"
	if first {
		keyword = "let rec"
	}

	var matcher frag
	if isLeafBody(r.Body) {
		matcher = funLine("_parse_leaf " + ocamlQuote(r.Name))
	} else {
		nx, err := e.compileBody(r.Body, newNext(1, 0, funLine("Combine.parse_end")))
		if err != nil {
			return nil, err
		}
		nx = e.flattenHead(nx, nx.keep, nil)
		matcher = funFrag(
			indent.Line("Combine.parse_rule "+ocamlQuote(r.Name)),
			indent.Block(nx.code.arg()),
		)
	}

	return indent.Tree{
		indent.Line(fmt.Sprintf("%s parse_%s = fun nodes ->", keyword, r.Name)),
		indent.Block(matcher.body()),
	}, nil
}

func isLeafBody(b grammar.Body) bool {
	switch b.(type) {
	case *grammar.SymbolBody, *grammar.StringBody, *grammar.PatternBody, *grammar.BlankBody:
		return true
	}
	return false
}

// preamble defines the leaf-matching and token-extraction helpers
// shared by every generated rule.
func preamble() indent.Tree {
	return indent.Tree{
		indent.Line("let _extract_token node ="),
		indent.Block{indent.Line("(Run.location node, Run.text node)")},
		indent.Line(""),
		indent.Line("let _parse_leaf kind ="),
		indent.Block{indent.Line("Combine.parse_leaf kind _extract_token")},
		indent.Line(""),
		indent.Line("let _parse_blank ="),
		indent.Block{indent.Line("Combine.parse_success")},
	}
}

func extrasBinding(extras []string) indent.Line {
	quoted := make([]string, len(extras))
	for i, x := range extras {
		quoted[i] = ocamlQuote(x)
	}
	return indent.Line(fmt.Sprintf("let extras = [ %s ]", strings.Join(quoted, "; ")))
}

func rootDriver(entry string, removeExtras bool) indent.Tree {
	body := indent.Tree{}
	if removeExtras {
		body = append(body, indent.Line("let root = Run.remove_extras extras root in"))
	}
	body = append(body, indent.Line("Combine.parse_root "+ocamlQuote(entry)+" parse_"+entry+" root"))
	return indent.Tree{
		indent.Line("let parse root ="),
		indent.Block(body),
	}
}

var ocamlEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func ocamlQuote(s string) string {
	return `"` + ocamlEscaper.Replace(s) + `"`
}
