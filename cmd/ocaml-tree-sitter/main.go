package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/dmitris/ocaml-tree-sitter-core/codegen"
	"github.com/dmitris/ocaml-tree-sitter-core/grammar"
)

type opts struct {
	Grammar     string
	Output      string
	Entrypoint  string
	EmitRuntime bool
	KeepExtras  bool
	NoHeader    bool
	DumpGrammar bool
}

func main() {
	op := &opts{}
	flags := pflag.NewFlagSet("ocaml-tree-sitter", pflag.ExitOnError)
	flags.StringVar(&op.Grammar, "grammar", "grammar.json", "Path to the tree-sitter grammar.json file")
	flags.StringVar(&op.Output, "output", "Parse.ml", "Path of the generated parser, or - for STDOUT")
	flags.StringVar(&op.Entrypoint, "entrypoint", "", "Entrypoint rule; defaults to the grammar's first rule")
	flags.BoolVar(&op.EmitRuntime, "emit-runtime", false, "Also write the runtime library next to the output")
	flags.BoolVar(&op.KeepExtras, "keep-extras", false, "Do not strip extra nodes before matching")
	flags.BoolVar(&op.NoHeader, "no-header", false, "Omit the generated-file header comment")
	flags.BoolVar(&op.DumpGrammar, "dump-grammar", false, "Print the loaded rule set and exit")
	_ = flags.Parse(os.Args[1:])

	g, err := grammar.LoadFile(op.Grammar)
	if err != nil {
		fatal("Can't load grammar: %s", err)
	}

	if op.DumpGrammar {
		for _, r := range g.Rules {
			fmt.Println(r.Text())
		}
		return
	}

	cfg := codegen.NewConfig()
	cfg.SetBool("gen.header", !op.NoHeader)
	cfg.SetBool("gen.remove_extras", !op.KeepExtras)
	cfg.SetString("grammar.entrypoint", op.Entrypoint)

	output, err := codegen.Generate(g, cfg)
	if err != nil {
		fatal("Can't generate parser: %s", err)
	}

	if op.Output == "-" {
		fmt.Print(output)
	} else if err := os.WriteFile(op.Output, []byte(output), 0644); err != nil {
		fatal("Can't write output: %s", err)
	}

	if op.EmitRuntime {
		files, err := codegen.RuntimeFiles()
		if err != nil {
			fatal("Can't read runtime library: %s", err)
		}
		dir := "."
		if op.Output != "-" {
			dir = filepath.Dir(op.Output)
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
				fatal("Can't write runtime file: %s", err)
			}
		}
	}
}

// fatal prints an error message and exits with code 1.
func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: ")
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintf(os.Stderr, "\n")
	os.Exit(1)
}
