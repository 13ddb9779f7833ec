package codegen

import (
	"fmt"

	"github.com/kzok/tinycc/ast"
	"github.com/kzok/tinycc/internal/trace"
)

// genStmt lowers a statement node.
//
// Every statement leaves the stack exactly as it found it, with one
// exception: the literal last statement of a function body, if it is a
// bare expression statement, leaves its value on the stack for the
// function's trailing fallthrough epilogue to consume. isLastTopLevel
// is true only for that position; every nested or non-final statement
// discards whatever value its top-level expression produced. A Block
// threads isLastTopLevel through to its own last child so that a
// top-level "{ ...; 42; }" still reaches the epilogue correctly.
func (c *Compiler) genStmt(node *ast.Node, isLastTopLevel bool) error {
	switch node.Kind {
	case ast.Null:
		return nil

	case ast.Block:
		for i, s := range node.Stmts {
			last := isLastTopLevel && i == len(node.Stmts)-1
			if err := c.genStmt(s, last); err != nil {
				return err
			}
		}
		return nil

	case ast.If:
		return c.genIf(node)

	case ast.While:
		return c.genWhile(node)

	case ast.For:
		return c.genFor(node)

	case ast.Return:
		return c.genReturn(node)

	default:
		// A bare expression used as a statement: an assignment,
		// function call, or any other expr followed by ";".
		if err := c.genExpr(node); err != nil {
			return err
		}
		if !isLastTopLevel {
			c.emitPop("rax")
		}
		return nil
	}
}

func (c *Compiler) genIf(node *ast.Node) error {
	n := c.nextLabel()
	if err := c.genExpr(node.Cond); err != nil {
		return err
	}
	c.emitPop("rax")
	c.inst("cmp rax, 0")

	if node.Else == nil {
		c.inst("je .L.end.%d", n)
		c.traceOp(trace.CondJump, fmt.Sprintf(".L.end.%d", n))
		if err := c.genStmt(node.Then, false); err != nil {
			return err
		}
		c.label(fmt.Sprintf(".L.end.%d", n))
		return nil
	}

	c.inst("je .L.else.%d", n)
	c.traceOp(trace.CondJump, fmt.Sprintf(".L.else.%d", n))
	if err := c.genStmt(node.Then, false); err != nil {
		return err
	}
	c.inst("jmp .L.end.%d", n)
	c.label(fmt.Sprintf(".L.else.%d", n))
	if err := c.genStmt(node.Else, false); err != nil {
		return err
	}
	c.label(fmt.Sprintf(".L.end.%d", n))
	return nil
}

func (c *Compiler) genWhile(node *ast.Node) error {
	n := c.nextLabel()
	c.label(fmt.Sprintf(".L.begin.%d", n))
	c.traceOp(trace.Label, fmt.Sprintf(".L.begin.%d", n))
	if err := c.genExpr(node.Cond); err != nil {
		return err
	}
	c.emitPop("rax")
	c.inst("cmp rax, 0")
	c.inst("je .L.end.%d", n)
	if err := c.genStmt(node.Body, false); err != nil {
		return err
	}
	c.inst("jmp .L.begin.%d", n)
	c.traceOp(trace.Jump, fmt.Sprintf(".L.begin.%d", n))
	c.label(fmt.Sprintf(".L.end.%d", n))
	return nil
}

func (c *Compiler) genFor(node *ast.Node) error {
	n := c.nextLabel()

	if node.Init != nil {
		if err := c.genExpr(node.Init); err != nil {
			return err
		}
		c.emitPop("rax")
	}

	c.label(fmt.Sprintf(".L.begin.%d", n))
	c.traceOp(trace.Label, fmt.Sprintf(".L.begin.%d", n))

	if node.Cond != nil {
		if err := c.genExpr(node.Cond); err != nil {
			return err
		}
		c.emitPop("rax")
		c.inst("cmp rax, 0")
		c.inst("je .L.end.%d", n)
	}

	if err := c.genStmt(node.Body, false); err != nil {
		return err
	}

	if node.Inc != nil {
		if err := c.genExpr(node.Inc); err != nil {
			return err
		}
		c.emitPop("rax")
	}

	c.inst("jmp .L.begin.%d", n)
	c.traceOp(trace.Jump, fmt.Sprintf(".L.begin.%d", n))
	c.label(fmt.Sprintf(".L.end.%d", n))
	return nil
}

func (c *Compiler) genReturn(node *ast.Node) error {
	if err := c.genExpr(node.Value); err != nil {
		return err
	}
	c.emitPop("rax")
	c.inst("mov rsp, rbp")
	c.inst("pop rbp")
	c.inst("ret")
	c.traceOp(trace.Epilogue, "return")
	return nil
}
