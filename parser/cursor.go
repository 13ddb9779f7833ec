package parser

import (
	"errors"

	"github.com/kzok/tinycc/token"
)

var errOverflow = errors.New("integer literal out of range")

// cursor walks a flat token slice with one-token lookahead.
type cursor struct {
	tokens []token.Token
	pos    int
	source string
}

func newCursor(source string, tokens []token.Token) *cursor {
	return &cursor{tokens: tokens, source: source}
}

// current returns the token the cursor has not yet consumed.
func (c *cursor) current() token.Token {
	return c.tokens[c.pos]
}

// previous returns the most recently consumed token; used to anchor
// diagnostics that should point at "what we just finished reading"
// rather than "what comes next".
func (c *cursor) previous() token.Token {
	if c.pos == 0 {
		return c.tokens[0]
	}
	return c.tokens[c.pos-1]
}

func (c *cursor) advance() token.Token {
	tok := c.current()
	if tok.Type != token.EOF {
		c.pos++
	}
	return tok
}

func (c *cursor) atEOF() bool {
	return c.current().Type == token.EOF
}

// consumeSign consumes and returns true if the current token is the
// sign s; otherwise leaves the cursor untouched and returns false.
func (c *cursor) consumeSign(s string) bool {
	if c.current().Type == token.SIGN && c.current().Literal == s {
		c.advance()
		return true
	}
	return false
}

// consumeKeyword behaves like consumeSign for a keyword Type.
func (c *cursor) consumeKeyword(k token.Type) bool {
	if c.current().Type == k {
		c.advance()
		return true
	}
	return false
}

// consumeIdent consumes an identifier and returns its text, or ("",
// false) if the current token is not an identifier.
func (c *cursor) consumeIdent() (string, bool) {
	if c.current().Type == token.IDENT {
		tok := c.advance()
		return tok.Literal, true
	}
	return "", false
}

func (c *cursor) consumeStr() (string, bool) {
	if c.current().Type == token.STRING {
		tok := c.advance()
		return tok.Literal, true
	}
	return "", false
}

// isTypename peeks for a base-type keyword without consuming.
func (c *cursor) isTypename() bool {
	return c.current().IsTypename()
}

// expectSign consumes the sign s or raises a Syntax error.
func (c *cursor) expectSign(s string) error {
	if c.consumeSign(s) {
		return nil
	}
	return c.unexpected("'" + s + "'")
}

func (c *cursor) expectKeyword(k token.Type, name string) error {
	if c.consumeKeyword(k) {
		return nil
	}
	return c.unexpected("'" + name + "'")
}

func (c *cursor) expectIdent() (string, error) {
	if name, ok := c.consumeIdent(); ok {
		return name, nil
	}
	return "", c.unexpected("an identifier")
}

// expectNumber consumes a NUMBER token and returns its parsed value.
func (c *cursor) expectNumber() (uint32, error) {
	if c.current().Type != token.NUMBER {
		return 0, c.unexpected("a number")
	}
	tok := c.advance()
	n, err := parseUint32(tok.Literal)
	if err != nil {
		return 0, newError(c.source, tok.Offset, Syntax, "invalid integer literal %q", tok.Literal)
	}
	return n, nil
}

func (c *cursor) unexpected(expected string) error {
	tok := c.current()
	return newError(c.source, tok.Offset, Syntax, "expected %s, found %q", expected, describeToken(tok))
}

func describeToken(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return tok.Literal
}

func parseUint32(s string) (uint32, error) {
	var n uint64
	for i := 0; i < len(s); i++ {
		n = n*10 + uint64(s[i]-'0')
		if n > 0xFFFFFFFF {
			return 0, errOverflow
		}
	}
	return uint32(n), nil
}
