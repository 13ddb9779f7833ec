package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/kzok/tinycc/lexer"
)

// tokensCmd dumps the token stream produced by the lexer, one token per
// line, without invoking the parser.
type tokensCmd struct{}

func (*tokensCmd) Name() string     { return "tokens" }
func (*tokensCmd) Synopsis() string { return "Print the token stream for a C source file" }
func (*tokensCmd) Usage() string {
	return `tokens file.c:
  Print every token the lexer produces, one per line.
`
}
func (*tokensCmd) SetFlags(f *flag.FlagSet) {}

func (t *tokensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: tinycc tokens file.c")
		return subcommands.ExitUsageError
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %s\n", args[0], err)
		return subcommands.ExitFailure
	}

	toks, err := lexer.Tokenize(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	for _, tok := range toks {
		fmt.Printf("%-10s %q (offset %d)\n", tok.Type, tok.Literal, tok.Offset)
	}
	return subcommands.ExitSuccess
}
