package codegen

import (
	"fmt"

	"github.com/kzok/tinycc/ast"
	"github.com/kzok/tinycc/internal/evalstack"
	"github.com/kzok/tinycc/internal/trace"
)

var argRegs64 = [6]string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}
var argRegs8 = [6]string{"dil", "sil", "dl", "cl", "r8b", "r9b"}

// emitFunction writes one function's full prologue, body, and trailing
// fallthrough epilogue.
func (c *Compiler) emitFunction(fn *ast.Function) error {
	c.labelCounter = 0
	c.evalDepth = evalstack.New[string]()
	c.traceOp(trace.Prologue, fn.Name)

	c.raw(".global " + fn.Name)
	c.label(fn.Name)
	c.inst("push rbp")
	c.inst("mov rbp, rsp")
	c.inst("sub rsp, %d", fn.StackSize)

	if c.debug {
		c.comment("debug breakpoint")
		c.inst("int3")
	}

	if err := c.emitParamMoves(fn.Params); err != nil {
		return err
	}

	for i, stmt := range fn.Body {
		isLast := i == len(fn.Body)-1
		if err := c.genStmt(stmt, isLast); err != nil {
			return err
		}
	}

	// At most one residual value may remain: whatever the last
	// top-level statement left for the fallthrough epilogue below.
	if err := c.assertBalanced(1); err != nil {
		return fmt.Errorf("function %q: %w", fn.Name, err)
	}

	c.comment("trailing fallthrough epilogue")
	c.traceOp(trace.Epilogue, fn.Name)
	c.emitPop("rax")
	c.inst("mov rsp, rbp")
	c.inst("pop rbp")
	c.inst("ret")
	return nil
}

// emitParamMoves stores the first 6 parameters from their SysV argument
// registers into their stack slots. Parameter sizes other than 1 and 8
// bytes, and functions with more than 6 parameters, are unsupported.
func (c *Compiler) emitParamMoves(params []*ast.Variable) error {
	if len(params) > len(argRegs64) {
		return fmt.Errorf("codegen: function has %d parameters, only %d are supported", len(params), len(argRegs64))
	}
	for i, p := range params {
		switch p.Type.Size() {
		case 1:
			c.inst("mov byte ptr [rbp-%d], %s", p.Offset, argRegs8[i])
		case 8:
			c.inst("mov qword ptr [rbp-%d], %s", p.Offset, argRegs64[i])
		default:
			return fmt.Errorf("codegen: parameter %q has unsupported size %d", p.Name, p.Type.Size())
		}
	}
	return nil
}
