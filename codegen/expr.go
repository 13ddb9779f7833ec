package codegen

import (
	"fmt"

	"github.com/kzok/tinycc/ast"
	"github.com/kzok/tinycc/internal/trace"
)

// genAddr pushes the address of an lvalue node. VariableRef resolves to
// a fixed rbp-relative offset (locals) or a label address (globals);
// Deref's address is simply the value its target expression computes
// (a pointer already points at the thing being dereferenced).
func (c *Compiler) genAddr(node *ast.Node) error {
	switch node.Kind {
	case ast.VariableRef:
		v := node.Var
		if v.IsLocal {
			c.inst("mov rax, rbp")
			c.inst("sub rax, %d", v.Offset)
			c.emitPush("rax")
		} else {
			c.emitPush("offset %s", v.Name)
		}
		return nil

	case ast.Deref:
		return c.genExpr(node.Target)

	default:
		return fmt.Errorf("codegen: internal error: node kind %d is not an lvalue", node.Kind)
	}
}

// genExprLoadable pushes the address of node, then loads through it
// unless node's type is an array: an array rvalue is its own address.
func (c *Compiler) genExprLoadable(node *ast.Node) error {
	if err := c.genAddr(node); err != nil {
		return err
	}
	if node.Ty.Kind == ast.Array {
		return nil
	}
	c.emitPop("rax")
	if node.Ty.Size() == 1 {
		c.inst("movsx rax, byte ptr [rax]")
	} else {
		c.inst("mov rax, [rax]")
	}
	c.emitPush("rax")
	return nil
}

// genExpr lowers node, leaving exactly one value pushed on the stack.
func (c *Compiler) genExpr(node *ast.Node) error {
	switch node.Kind {
	case ast.Number:
		c.emitPush("%d", node.NumberValue)
		c.traceOp(trace.Push, "")
		return nil

	case ast.VariableRef, ast.Deref:
		return c.genExprLoadable(node)

	case ast.Addr:
		c.traceOp(trace.Addr, "")
		return c.genAddr(node.Target)

	case ast.Assign:
		return c.genAssign(node)

	case ast.Add, ast.Sub, ast.Mul, ast.Div,
		ast.Equal, ast.NotEqual, ast.LessThan, ast.LessThanEqual:
		return c.genBinary(node)

	case ast.FunCall:
		return c.genCall(node)

	default:
		return fmt.Errorf("codegen: internal error: node kind %d is not an expression", node.Kind)
	}
}

// genAssign: evaluate the lhs address, then the rhs value, pop rhs into
// rdi and the address into rax, store sized by the lhs type, and push
// rdi back as the value of the assignment expression.
func (c *Compiler) genAssign(node *ast.Node) error {
	if err := c.genAddr(node.LHS); err != nil {
		return err
	}
	if err := c.genExpr(node.RHS); err != nil {
		return err
	}
	c.emitPop("rdi")
	c.emitPop("rax")
	if node.LHS.Ty.Kind == ast.Array {
		return fmt.Errorf("codegen: cannot store into an array-typed lvalue")
	}
	switch node.LHS.Ty.Size() {
	case 1:
		c.inst("mov [rax], dil")
	case 8:
		c.inst("mov [rax], rdi")
	default:
		return fmt.Errorf("codegen: cannot store a value of size %d", node.LHS.Ty.Size())
	}
	c.emitPush("rdi")
	c.traceOp(trace.Assign, "")
	return nil
}

// genBinary: evaluate both operands, pop rhs into rdi and lhs into rax,
// apply the operator, push the single result in rax.
func (c *Compiler) genBinary(node *ast.Node) error {
	if err := c.genExpr(node.LHS); err != nil {
		return err
	}
	if err := c.genExpr(node.RHS); err != nil {
		return err
	}
	c.emitPop("rdi")
	c.emitPop("rax")

	switch node.Kind {
	case ast.Add:
		if node.Ty.IsPointerLike() {
			c.inst("imul rdi, %d", node.Ty.BaseType().Size())
		}
		c.inst("add rax, rdi")
		c.traceOp(trace.Add, "")

	case ast.Sub:
		if node.Ty.IsPointerLike() {
			c.inst("imul rdi, %d", node.Ty.BaseType().Size())
		}
		c.inst("sub rax, rdi")
		c.traceOp(trace.Sub, "")

	case ast.Mul:
		c.inst("imul rax, rdi")
		c.traceOp(trace.Mul, "")

	case ast.Div:
		c.inst("cqo")
		c.inst("idiv rdi")
		c.traceOp(trace.Div, "")

	case ast.Equal:
		c.inst("cmp rax, rdi")
		c.inst("sete al")
		c.inst("movzx rax, al")
		c.traceOp(trace.Equal, "")

	case ast.NotEqual:
		c.inst("cmp rax, rdi")
		c.inst("setne al")
		c.inst("movzx rax, al")
		c.traceOp(trace.NotEqual, "")

	case ast.LessThan:
		c.inst("cmp rax, rdi")
		c.inst("setl al")
		c.inst("movzx rax, al")
		c.traceOp(trace.LessThan, "")

	case ast.LessThanEqual:
		c.inst("cmp rax, rdi")
		c.inst("setle al")
		c.inst("movzx rax, al")
		c.traceOp(trace.LessEq, "")
	}

	c.emitPush("rax")
	return nil
}

// genCall evaluates each argument left to right, pops them into the
// SysV argument registers in reverse, and calls through a dynamic
// 16-byte stack-alignment check since the generator has no static
// knowledge of rsp's parity at an arbitrary call site.
func (c *Compiler) genCall(node *ast.Node) error {
	if len(node.Args) > len(argRegs64) {
		return fmt.Errorf("codegen: call to %q has %d arguments, only %d are supported", node.FuncName, len(node.Args), len(argRegs64))
	}
	for _, arg := range node.Args {
		if err := c.genExpr(arg); err != nil {
			return err
		}
	}
	for i := len(node.Args) - 1; i >= 0; i-- {
		c.emitPop(argRegs64[i])
	}

	n := c.nextLabel()
	c.inst("mov rax, rsp")
	c.inst("and rax, 15")
	c.inst("jnz .L.call.%d", n)
	c.inst("mov rax, 0")
	c.inst("call %s", node.FuncName)
	c.inst("jmp .L.end.%d", n)
	c.label(fmt.Sprintf(".L.call.%d", n))
	c.inst("sub rsp, 8")
	c.inst("mov rax, 0")
	c.inst("call %s", node.FuncName)
	c.inst("add rsp, 8")
	c.label(fmt.Sprintf(".L.end.%d", n))
	c.emitPush("rax")
	c.traceOp(trace.Call, node.FuncName)
	return nil
}
