package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/subcommands"

	"github.com/kzok/tinycc/codegen"
	"github.com/kzok/tinycc/config"
	"github.com/kzok/tinycc/internal/trace"
	"github.com/kzok/tinycc/parser"
)

// compileCmd compiles a C source file to assembly and, unless -S is
// given, assembles and links it into a native binary via gcc.
type compileCmd struct {
	debug   bool
	assem   bool
	link    bool
	run     bool
	out     string
	cfgPath string
}

func (*compileCmd) Name() string     { return "compile" }
func (*compileCmd) Synopsis() string { return "Compile a C source file to x86-64 assembly" }
func (*compileCmd) Usage() string {
	return `compile [-debug] [-S] [-o out] [-run] file.c:
  Compile a single C source file.
`
}

func (c *compileCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.debug, "debug", false, "insert a debug breakpoint in generated functions")
	f.BoolVar(&c.assem, "S", false, "print assembly to stdout instead of linking")
	f.BoolVar(&c.run, "run", false, "run the produced binary after linking")
	f.StringVar(&c.out, "o", "a.out", "output binary path")
	f.StringVar(&c.cfgPath, "config", "", "path to a tinycc.toml config file")
}

func (c *compileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: tinycc compile [flags] file.c")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig(c.cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %s\n", err)
		return subcommands.ExitFailure
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %s\n", args[0], err)
		return subcommands.ExitFailure
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	comp := codegen.New()
	comp.SetDebug(c.debug || cfg.Codegen.Debug)
	comp.SetCommentVerbosity(codegen.CommentVerbosity(cfg.Codegen.CommentVerbosity))
	var traceLog *trace.Log
	if cfg.Codegen.Trace {
		traceLog = trace.NewLog()
		comp.SetTrace(traceLog)
	}

	asm, err := comp.Compile(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error compiling: %s\n", err)
		return subcommands.ExitFailure
	}

	if traceLog != nil {
		for _, e := range traceLog.Entries() {
			fmt.Fprintf(os.Stderr, "trace: %c %s\n", e.Op, e.Label)
		}
	}

	if c.assem {
		fmt.Print(asm)
		return subcommands.ExitSuccess
	}

	if err := assembleAndLink(asm, c.out); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return subcommands.ExitFailure
	}

	if c.run {
		exe := exec.Command(c.out)
		exe.Stdout = os.Stdout
		exe.Stderr = os.Stderr
		if err := exe.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "error running %s: %s\n", c.out, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// assembleAndLink pipes asm to gcc, treating it as assembler input, and
// produces a static binary at out.
func assembleAndLink(asm, out string) error {
	gcc := exec.Command("gcc", "-static", "-o", out, "-x", "assembler", "-")
	gcc.Stdout = os.Stdout
	gcc.Stderr = os.Stderr

	var b bytes.Buffer
	b.WriteString(asm)
	gcc.Stdin = &b

	if err := gcc.Run(); err != nil {
		return fmt.Errorf("error invoking gcc: %w", err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}
