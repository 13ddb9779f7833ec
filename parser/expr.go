package parser

import (
	"fmt"

	"github.com/kzok/tinycc/ast"
	"github.com/kzok/tinycc/token"
)

// expr := assign
func (p *Parser) parseExpr() (*ast.Node, error) {
	return p.parseAssign()
}

// assign := equality [ "=" assign ] -- right-associative
func (p *Parser) parseAssign() (*ast.Node, error) {
	lhs, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	if p.cur.consumeSign("=") {
		offset := p.cur.previous().Offset
		rhs, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return p.newAssign(lhs, rhs, offset)
	}
	return lhs, nil
}

// equality := relational { ("==" | "!=") relational }
func (p *Parser) parseEquality() (*ast.Node, error) {
	lhs, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur.consumeSign("=="):
			rhs, err := p.parseRelational()
			if err != nil {
				return nil, err
			}
			lhs = p.newComparison(ast.Equal, lhs, rhs)
		case p.cur.consumeSign("!="):
			rhs, err := p.parseRelational()
			if err != nil {
				return nil, err
			}
			lhs = p.newComparison(ast.NotEqual, lhs, rhs)
		default:
			return lhs, nil
		}
	}
}

// relational := add { ("<" | "<=" | ">" | ">=") add } -- >,>= desugar by swap
func (p *Parser) parseRelational() (*ast.Node, error) {
	lhs, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur.consumeSign("<"):
			rhs, err := p.parseAdd()
			if err != nil {
				return nil, err
			}
			lhs = p.newComparison(ast.LessThan, lhs, rhs)
		case p.cur.consumeSign("<="):
			rhs, err := p.parseAdd()
			if err != nil {
				return nil, err
			}
			lhs = p.newComparison(ast.LessThanEqual, lhs, rhs)
		case p.cur.consumeSign(">"):
			rhs, err := p.parseAdd()
			if err != nil {
				return nil, err
			}
			// a > b desugars to b < a: identical assembly, operands swapped.
			lhs = p.newComparison(ast.LessThan, rhs, lhs)
		case p.cur.consumeSign(">="):
			rhs, err := p.parseAdd()
			if err != nil {
				return nil, err
			}
			lhs = p.newComparison(ast.LessThanEqual, rhs, lhs)
		default:
			return lhs, nil
		}
	}
}

// add := mul { ("+" | "-") mul }
func (p *Parser) parseAdd() (*ast.Node, error) {
	lhs, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur.consumeSign("+"):
			offset := p.cur.previous().Offset
			rhs, err := p.parseMul()
			if err != nil {
				return nil, err
			}
			lhs, err = p.newAddSub(ast.Add, lhs, rhs, offset)
			if err != nil {
				return nil, err
			}
		case p.cur.consumeSign("-"):
			offset := p.cur.previous().Offset
			rhs, err := p.parseMul()
			if err != nil {
				return nil, err
			}
			lhs, err = p.newAddSub(ast.Sub, lhs, rhs, offset)
			if err != nil {
				return nil, err
			}
		default:
			return lhs, nil
		}
	}
}

// mul := unary { ("*" | "/") unary }
func (p *Parser) parseMul() (*ast.Node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur.consumeSign("*"):
			rhs, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			lhs = p.newArith(ast.Mul, lhs, rhs)
		case p.cur.consumeSign("/"):
			rhs, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			lhs = p.newArith(ast.Div, lhs, rhs)
		default:
			return lhs, nil
		}
	}
}

// unary := "+" primary
//        | "-" primary   -- parsed as 0 - primary
//        | "&" unary
//        | "*" unary
//        | postfix
func (p *Parser) parseUnary() (*ast.Node, error) {
	switch {
	case p.cur.consumeSign("+"):
		return p.parsePrimary()

	case p.cur.consumeSign("-"):
		offset := p.cur.previous().Offset
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		zero := &ast.Node{Kind: ast.Number, NumberValue: 0, Ty: ast.IntType}
		return p.newAddSub(ast.Sub, zero, operand, offset)

	case p.cur.consumeSign("&"):
		offset := p.cur.previous().Offset
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.newAddr(operand, offset)

	case p.cur.consumeSign("*"):
		offset := p.cur.previous().Offset
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.newDeref(operand, offset)

	default:
		return p.parsePostfix()
	}
}

// postfix := primary { "[" expr "]" } -- a[b] ≡ *(a + b)
func (p *Parser) parsePostfix() (*ast.Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur.consumeSign("[") {
		offset := p.cur.previous().Offset
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.cur.expectSign("]"); err != nil {
			return nil, err
		}
		sum, err := p.newAddSub(ast.Add, node, idx, offset)
		if err != nil {
			return nil, err
		}
		node, err = p.newDeref(sum, offset)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// primary := "sizeof" unary
//          | "(" expr ")"
//          | ident [ "(" func_args ")" ]
//          | string_literal
//          | number
func (p *Parser) parsePrimary() (*ast.Node, error) {
	switch {
	case p.cur.consumeKeyword(token.SIZEOF):
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if operand.Ty == nil {
			return nil, newError(p.source, p.cur.previous().Offset, Semantic, "sizeof operand has unknown type")
		}
		return &ast.Node{Kind: ast.Number, NumberValue: uint32(operand.Ty.Size()), Ty: ast.IntType}, nil

	case p.cur.consumeSign("("):
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.cur.expectSign(")"); err != nil {
			return nil, err
		}
		return e, nil

	case p.cur.current().Type == token.IDENT:
		name, _ := p.cur.consumeIdent()
		if p.cur.consumeSign("(") {
			return p.parseCall(name)
		}
		identTok := p.cur.previous()
		v, ok := p.resolve(name)
		if !ok {
			return nil, newError(p.source, identTok.Offset, Semantic, "undefined identifier %q", name)
		}
		return &ast.Node{Kind: ast.VariableRef, Var: v, Ty: v.Type}, nil

	case p.cur.current().Type == token.STRING:
		body, _ := p.cur.consumeStr()
		v := p.addStringLiteral(body)
		return &ast.Node{Kind: ast.VariableRef, Var: v, Ty: v.Type}, nil

	default:
		n, err := p.cur.expectNumber()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.Number, NumberValue: n, Ty: ast.IntType}, nil
	}
}

// parseCall parses func_args ")" after the identifier and opening "(" have
// already been consumed.
func (p *Parser) parseCall(name string) (*ast.Node, error) {
	var args []*ast.Node
	if !p.cur.consumeSign(")") {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.consumeSign(",") {
				continue
			}
			if err := p.cur.expectSign(")"); err != nil {
				return nil, err
			}
			break
		}
	}
	return &ast.Node{Kind: ast.FunCall, FuncName: name, Args: args, Ty: ast.IntType}, nil
}

// addStringLiteral installs a compiler-synthesized global named
// ".L.data.<n>" for a string-literal body, and returns it for the caller
// to reference from a VariableRef node.
func (p *Parser) addStringLiteral(body string) *ast.Variable {
	name := fmt.Sprintf(".L.data.%d", p.stringLiteral)
	p.stringLiteral++
	content := body
	v := &ast.Variable{
		Name:    name,
		Type:    ast.NewArray(ast.CharType, len(body)+1),
		IsLocal: false,
		Content: &content,
	}
	p.globals = append(p.globals, v)
	return v
}

// isLvalue reports whether n denotes a memory location: a named
// variable or a pointer dereference.
func isLvalue(n *ast.Node) bool {
	return n.Kind == ast.VariableRef || n.Kind == ast.Deref
}

// newAssign builds an Assign node, enforcing that lhs is an lvalue whose
// declared type is not Array(..).
func (p *Parser) newAssign(lhs, rhs *ast.Node, offset int) (*ast.Node, error) {
	if !isLvalue(lhs) {
		return nil, newError(p.source, offset, Semantic, "left-hand side of assignment is not an lvalue")
	}
	if lhs.Ty != nil && lhs.Ty.Kind == ast.Array {
		return nil, newError(p.source, offset, Semantic, "cannot assign to an array-typed lvalue")
	}
	return &ast.Node{Kind: ast.Assign, LHS: lhs, RHS: rhs, Ty: lhs.Ty}, nil
}

// newAddr builds an Addr node. An array-typed operand decays to a
// pointer to its element type; any other operand's address is a
// pointer to its own type.
func (p *Parser) newAddr(target *ast.Node, offset int) (*ast.Node, error) {
	if !isLvalue(target) {
		return nil, newError(p.source, offset, Semantic, "operand of '&' is not an lvalue")
	}
	if target.Ty == nil {
		return nil, newError(p.source, offset, Semantic, "operand of '&' has unknown type")
	}
	var result *ast.Type
	if target.Ty.Kind == ast.Array {
		result = ast.NewPointer(target.Ty.Base)
	} else {
		result = ast.NewPointer(target.Ty)
	}
	return &ast.Node{Kind: ast.Addr, Target: target, Ty: result}, nil
}

// newDeref builds a Deref node. The operand must be a Pointer or Array;
// the result type is the pointee/element type.
func (p *Parser) newDeref(target *ast.Node, offset int) (*ast.Node, error) {
	if target.Ty == nil || (target.Ty.Kind != ast.Pointer && target.Ty.Kind != ast.Array) {
		return nil, newError(p.source, offset, Semantic, "cannot dereference a non-pointer, non-array expression")
	}
	return &ast.Node{Kind: ast.Deref, Target: target, Ty: target.Ty.BaseType()}, nil
}

// newAddSub builds an Add or Sub node. For Add, if rhs (not lhs) is
// pointer/array-typed the parser canonicalizes by swapping operands so
// the pointer/array sits on the left; Sub is never canonicalized. If,
// after any swap, rhs is still pointer/array-typed the combination is a
// fatal type error (pointer+pointer, or int-pointer).
func (p *Parser) newAddSub(kind ast.NodeKind, lhs, rhs *ast.Node, offset int) (*ast.Node, error) {
	if kind == ast.Add && !lhs.Ty.IsPointerLike() && rhs.Ty.IsPointerLike() {
		lhs, rhs = rhs, lhs
	}
	if rhs.Ty.IsPointerLike() {
		return nil, newError(p.source, offset, Semantic,
			"invalid pointer arithmetic: right operand must not be a pointer or array")
	}
	return &ast.Node{Kind: kind, LHS: lhs, RHS: rhs, Ty: lhs.Ty}, nil
}

// newArith builds a Mul or Div node; the result is always Int.
func (p *Parser) newArith(kind ast.NodeKind, lhs, rhs *ast.Node) *ast.Node {
	return &ast.Node{Kind: kind, LHS: lhs, RHS: rhs, Ty: ast.IntType}
}

// newComparison builds an Equal/NotEqual/LessThan/LessThanEqual node;
// the result is always Int.
func (p *Parser) newComparison(kind ast.NodeKind, lhs, rhs *ast.Node) *ast.Node {
	return &ast.Node{Kind: kind, LHS: lhs, RHS: rhs, Ty: ast.IntType}
}
