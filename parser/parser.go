// Package parser implements the recursive-descent parser described by
// the design: one-token lookahead over the lexer's token stream,
// scoped name resolution (locals shadow globals), array type-suffix
// construction, and type synthesis performed as each node is built.
package parser

import (
	"github.com/kzok/tinycc/ast"
	"github.com/kzok/tinycc/lexer"
	"github.com/kzok/tinycc/token"
)

// Parser holds the mutable state threaded through a single parse: the
// token cursor, the program-wide globals and string-literal counter,
// and the locals/stack-offset bookkeeping for whichever function body
// is currently being parsed.
type Parser struct {
	cur    *cursor
	source string

	globals       []*ast.Variable
	stringLiteral int

	curLocals     []*ast.Variable
	runningOffset int

	functions []*ast.Function
}

// Parse tokenizes and parses source into a Program. Any lexical,
// syntactic, or semantic error aborts the parse and returns a non-nil
// *Error; no partial Program is returned on error.
func Parse(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		lerr := err.(*lexer.Error)
		return nil, newError(source, lerr.Offset, Lexical, "%s", lerr.Message)
	}

	p := &Parser{
		cur:    newCursor(source, tokens),
		source: source,
	}

	if err := p.parseProgram(); err != nil {
		return nil, err
	}

	return &ast.Program{Functions: p.functions, Globals: p.globals}, nil
}

// program := { toplevel } EOF
func (p *Parser) parseProgram() error {
	for !p.cur.atEOF() {
		if err := p.parseToplevel(); err != nil {
			return err
		}
	}
	return nil
}

// toplevel := base_type ident ( "(" func_rest | type_suffix ";" )
func (p *Parser) parseToplevel() error {
	base, err := p.readBaseType()
	if err != nil {
		return err
	}

	name, err := p.cur.expectIdent()
	if err != nil {
		return err
	}

	if p.cur.consumeSign("(") {
		fn, err := p.parseFunctionRest(name)
		if err != nil {
			return err
		}
		p.functions = append(p.functions, fn)
		return nil
	}

	ty, err := p.readTypeSuffix(base)
	if err != nil {
		return err
	}
	if err := p.cur.expectSign(";"); err != nil {
		return err
	}
	p.globals = append(p.globals, &ast.Variable{Name: name, Type: ty, IsLocal: false})
	return nil
}

// parseFunctionRest parses func_params and the function body, resetting
// the per-function local/offset bookkeeping first. The opening "(" has
// already been consumed by the caller.
func (p *Parser) parseFunctionRest(name string) (*ast.Function, error) {
	p.curLocals = nil
	p.runningOffset = 0

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	if err := p.cur.expectSign("{"); err != nil {
		return nil, err
	}

	var body []*ast.Node
	for !p.cur.consumeSign("}") {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	return &ast.Function{
		Name:      name,
		Params:    params,
		Locals:    p.curLocals,
		Body:      body,
		StackSize: roundUp8(p.runningOffset),
	}, nil
}

// func_params := ")" | base_type ident type_suffix { "," base_type ident type_suffix } ")"
func (p *Parser) parseParams() ([]*ast.Variable, error) {
	if p.cur.consumeSign(")") {
		return nil, nil
	}

	var params []*ast.Variable
	for {
		base, err := p.readBaseType()
		if err != nil {
			return nil, err
		}
		name, err := p.cur.expectIdent()
		if err != nil {
			return nil, err
		}
		ty, err := p.readTypeSuffix(base)
		if err != nil {
			return nil, err
		}
		params = append(params, p.addLocal(name, ty))

		if p.cur.consumeSign(",") {
			continue
		}
		if err := p.cur.expectSign(")"); err != nil {
			return nil, err
		}
		break
	}
	return params, nil
}

func roundUp8(n int) int {
	return (n + 7) &^ 7
}

// addLocal appends a new local/parameter, assigning it the next
// running-sum offset: the byte offset of the k-th local equals the sum
// of sizes of every local declared at or before it.
func (p *Parser) addLocal(name string, ty *ast.Type) *ast.Variable {
	p.runningOffset += ty.Size()
	v := &ast.Variable{Name: name, Type: ty, IsLocal: true, Offset: p.runningOffset}
	p.curLocals = append(p.curLocals, v)
	return v
}

// resolve looks up name, searching the current function's locals (most
// recently declared first, so a later declaration shadows an earlier
// one of the same name) and then the program's globals.
func (p *Parser) resolve(name string) (*ast.Variable, bool) {
	for i := len(p.curLocals) - 1; i >= 0; i-- {
		if p.curLocals[i].Name == name {
			return p.curLocals[i], true
		}
	}
	for i := len(p.globals) - 1; i >= 0; i-- {
		if p.globals[i].Name == name {
			return p.globals[i], true
		}
	}
	return nil, false
}

// stmt := "{" { stmt } "}"
//       | "if" "(" expr ")" stmt [ "else" stmt ]
//       | "while" "(" expr ")" stmt
//       | "for" "(" [ expr ] ";" [ expr ] ";" [ expr ] ")" stmt
//       | "return" expr ";"
//       | declaration
//       | expr ";"
func (p *Parser) parseStmt() (*ast.Node, error) {
	switch {
	case p.cur.consumeSign("{"):
		var stmts []*ast.Node
		for !p.cur.consumeSign("}") {
			s, err := p.parseStmt()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
		}
		return &ast.Node{Kind: ast.Block, Stmts: stmts}, nil

	case p.cur.consumeKeyword(token.IF):
		if err := p.cur.expectSign("("); err != nil {
			return nil, err
		}
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.cur.expectSign(")"); err != nil {
			return nil, err
		}
		then, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		var els *ast.Node
		if p.cur.consumeKeyword(token.ELSE) {
			els, err = p.parseStmt()
			if err != nil {
				return nil, err
			}
		}
		return &ast.Node{Kind: ast.If, Cond: cond, Then: then, Else: els}, nil

	case p.cur.consumeKeyword(token.WHILE):
		if err := p.cur.expectSign("("); err != nil {
			return nil, err
		}
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.cur.expectSign(")"); err != nil {
			return nil, err
		}
		body, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.While, Cond: cond, Body: body}, nil

	case p.cur.consumeKeyword(token.FOR):
		return p.parseFor()

	case p.cur.consumeKeyword(token.RETURN):
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.cur.expectSign(";"); err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.Return, Value: value}, nil

	case p.cur.isTypename():
		return p.parseDeclaration()

	default:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.cur.expectSign(";"); err != nil {
			return nil, err
		}
		return e, nil
	}
}

func (p *Parser) parseFor() (*ast.Node, error) {
	if err := p.cur.expectSign("("); err != nil {
		return nil, err
	}

	var init, cond, inc *ast.Node
	var err error

	if !p.atSign(";") {
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.cur.expectSign(";"); err != nil {
		return nil, err
	}

	if !p.atSign(";") {
		cond, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.cur.expectSign(";"); err != nil {
		return nil, err
	}

	if !p.atSign(")") {
		inc, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.cur.expectSign(")"); err != nil {
		return nil, err
	}

	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	return &ast.Node{Kind: ast.For, Init: init, Cond: cond, Inc: inc, Body: body}, nil
}

func (p *Parser) atSign(s string) bool {
	tok := p.cur.current()
	return tok.Type == token.SIGN && tok.Literal == s
}

// declaration := base_type ident type_suffix [ "=" expr ] ";"
func (p *Parser) parseDeclaration() (*ast.Node, error) {
	base, err := p.readBaseType()
	if err != nil {
		return nil, err
	}
	name, err := p.cur.expectIdent()
	if err != nil {
		return nil, err
	}
	ty, err := p.readTypeSuffix(base)
	if err != nil {
		return nil, err
	}

	v := p.addLocal(name, ty)

	var result *ast.Node
	if p.cur.consumeSign("=") {
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		offset := p.cur.previous().Offset
		lhs := &ast.Node{Kind: ast.VariableRef, Var: v, Ty: v.Type}
		result, err = p.newAssign(lhs, rhs, offset)
		if err != nil {
			return nil, err
		}
	} else {
		result = ast.NewNull()
	}

	if err := p.cur.expectSign(";"); err != nil {
		return nil, err
	}
	return result, nil
}
