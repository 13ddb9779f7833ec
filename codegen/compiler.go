// Package codegen implements the stack-machine code generator: a
// deterministic, single-pass walk of a typed Program that emits x86-64
// assembly text (Intel syntax, AT&T-assembler compatible via
// ".intel_syntax noprefix") to an in-memory buffer.
//
// The program stack doubles as the generator's value stack: every
// expression leaves exactly one pushed quadword on entry to its parent,
// and every statement - with one documented exception, see genStmt -
// leaves the stack exactly as it found it.
package codegen

import (
	"fmt"
	"strings"

	"github.com/kzok/tinycc/ast"
	"github.com/kzok/tinycc/internal/evalstack"
	"github.com/kzok/tinycc/internal/trace"
)

// CommentVerbosity controls how much explanatory text codegen writes
// alongside the instructions it emits.
type CommentVerbosity string

const (
	CommentFull  CommentVerbosity = "full"
	CommentTerse CommentVerbosity = "terse"
	CommentNone  CommentVerbosity = "none"
)

// Compiler walks a Program and accumulates assembly text.
type Compiler struct {
	debug     bool
	verbosity CommentVerbosity
	trace     *trace.Log
	evalDepth *evalstack.Stack[string] // debug-mode shadow stack, see emitPush/emitPop

	buf          strings.Builder
	labelCounter int
}

// New creates a Compiler with default (full-comment, no-debug,
// no-trace) settings.
func New() *Compiler {
	return &Compiler{verbosity: CommentFull}
}

// SetDebug toggles emission of an int3 breakpoint at the end of every
// function prologue, right after the frame is set up.
func (c *Compiler) SetDebug(v bool) { c.debug = v }

// SetCommentVerbosity controls how many "# [...]" annotations the
// generator writes alongside instructions.
func (c *Compiler) SetCommentVerbosity(v CommentVerbosity) { c.verbosity = v }

// SetTrace attaches a trace.Log that records one Entry per emitted
// logical operation, for the compile subcommand's trace output. It is purely
// observational: detaching it changes no emitted instruction.
func (c *Compiler) SetTrace(log *trace.Log) { c.trace = log }

// Compile lowers prog to a complete assembly-language program.
func (c *Compiler) Compile(prog *ast.Program) (string, error) {
	c.evalDepth = evalstack.New[string]()

	c.raw(".intel_syntax noprefix")

	if len(prog.Globals) > 0 {
		c.raw(".data")
		c.emitData(prog.Globals)
	}

	c.raw(".text")
	for _, fn := range prog.Functions {
		if err := c.emitFunction(fn); err != nil {
			return "", err
		}
	}

	return c.buf.String(), nil
}

// emitData writes one label and one ".zero <size>" line per global. Per
// the design's documented limitation, string-literal globals reserve
// their footprint but do not emit their byte content (see DESIGN.md).
func (c *Compiler) emitData(globals []*ast.Variable) {
	for _, g := range globals {
		c.raw(g.Name + ":")
		c.directive(".zero %d", g.Type.Size())
	}
}

func (c *Compiler) nextLabel() int {
	n := c.labelCounter
	c.labelCounter++
	return n
}

func (c *Compiler) traceOp(op trace.Op, label string) {
	if c.trace != nil {
		c.trace.Record(op, label)
	}
}

// --- low-level emission helpers -------------------------------------------------

// raw writes a line with no leading indentation: labels and directives.
func (c *Compiler) raw(line string) {
	c.buf.WriteString(line)
	c.buf.WriteByte('\n')
}

// inst writes a single tab-indented instruction line.
func (c *Compiler) inst(format string, args ...interface{}) {
	c.buf.WriteByte('\t')
	fmt.Fprintf(&c.buf, format, args...)
	c.buf.WriteByte('\n')
}

// directive writes a tab-indented assembler directive (e.g. ".zero 8").
func (c *Compiler) directive(format string, args ...interface{}) {
	c.inst(format, args...)
}

// label writes a local or global label definition.
func (c *Compiler) label(name string) {
	c.raw(name + ":")
}

// comment writes an annotation line, honoring the configured verbosity.
func (c *Compiler) comment(s string) {
	if c.verbosity == CommentNone {
		return
	}
	c.inst("# %s", s)
}

// emitPush writes a "push <operand>" instruction and, in debug mode,
// records the push on the shadow evaluation stack.
func (c *Compiler) emitPush(operandFormat string, args ...interface{}) {
	c.inst("push "+operandFormat, args...)
	if c.debug {
		c.evalDepth.Push(fmt.Sprintf(operandFormat, args...))
	}
}

// emitPop writes a "pop <reg>" instruction and, in debug mode, consumes
// one entry from the shadow evaluation stack.
func (c *Compiler) emitPop(reg string) {
	c.inst("pop %s", reg)
	if c.debug {
		c.evalDepth.Pop() // best-effort: a pop from an empty shadow stack is ignored; assertBalanced only detects excess entries
	}
}

// assertBalanced returns an error if, in debug mode, the shadow stack
// holds more than maxResidual entries - evidence that some statement
// failed to discard a value it should have.
func (c *Compiler) assertBalanced(maxResidual int) error {
	if !c.debug {
		return nil
	}
	if n := c.evalDepth.Len(); n > maxResidual {
		return fmt.Errorf("codegen: internal error: stack imbalance detected (%d residual values, expected at most %d)", n, maxResidual)
	}
	return nil
}
