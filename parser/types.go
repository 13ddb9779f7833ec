package parser

import (
	"github.com/kzok/tinycc/ast"
	"github.com/kzok/tinycc/token"
)

// readBaseType reads a base type keyword (int/char) followed by a run
// of '*' signs, each of which wraps the type in another Pointer layer.
func (p *Parser) readBaseType() (*ast.Type, error) {
	var base *ast.Type
	switch {
	case p.cur.consumeKeyword(token.INT):
		base = ast.IntType
	case p.cur.consumeKeyword(token.CHAR):
		base = ast.CharType
	default:
		return nil, p.cur.unexpected("a type ('int' or 'char')")
	}

	for p.cur.consumeSign("*") {
		base = ast.NewPointer(base)
	}
	return base, nil
}

// readTypeSuffix parses zero or more "[N]" brackets and folds them,
// right-to-left, into nested Array types around base. "int a[2][3]"
// reads dims [2, 3] and produces Array(Array(Int, 3), 2): an array of
// 2 arrays of 3 ints.
func (p *Parser) readTypeSuffix(base *ast.Type) (*ast.Type, error) {
	if !p.cur.consumeSign("[") {
		return base, nil
	}

	n, err := p.cur.expectNumber()
	if err != nil {
		return nil, err
	}
	if err := p.cur.expectSign("]"); err != nil {
		return nil, err
	}

	inner, err := p.readTypeSuffix(base)
	if err != nil {
		return nil, err
	}
	return ast.NewArray(inner, int(n)), nil
}
