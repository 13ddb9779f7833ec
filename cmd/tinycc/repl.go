package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/kzok/tinycc/codegen"
	"github.com/kzok/tinycc/parser"
)

// replCmd reads single-function C snippets interactively and prints the
// assembly each one lowers to. It has no notion of incremental state
// across lines: every line is parsed and compiled as a standalone
// program, which means a useful snippet is a complete function.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Interactively compile C snippets to assembly" }
func (*replCmd) Usage() string {
	return `repl:
  Read a complete function from each line and print its assembly.
`
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (*replCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New("tinycc> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error starting line editor: %s\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading input: %s\n", err)
			return subcommands.ExitFailure
		}
		if line == "" {
			continue
		}

		prog, err := parser.Parse(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		comp := codegen.New()
		asm, err := comp.Compile(prog)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Print(asm)
	}
}
