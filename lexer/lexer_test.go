package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kzok/tinycc/token"
)

func TestTokenizeSimpleProgram(t *testing.T) {
	toks, err := Tokenize("int main() { return 0; }")
	require.NoError(t, err)

	want := []token.Token{
		{Type: token.INT, Literal: "int", Offset: 0},
		{Type: token.IDENT, Literal: "main", Offset: 4},
		{Type: token.SIGN, Literal: "(", Offset: 8},
		{Type: token.SIGN, Literal: ")", Offset: 9},
		{Type: token.SIGN, Literal: "{", Offset: 11},
		{Type: token.RETURN, Literal: "return", Offset: 13},
		{Type: token.NUMBER, Literal: "0", Offset: 20},
		{Type: token.SIGN, Literal: ";", Offset: 21},
		{Type: token.SIGN, Literal: "}", Offset: 23},
		{Type: token.EOF, Literal: "", Offset: 24},
	}
	assert.Equal(t, want, toks)
}

func TestTokenizeLongestMatchOperators(t *testing.T) {
	toks, err := Tokenize("a<=b>=c!=d==e<f>g")
	require.NoError(t, err)

	var signs []string
	for _, tok := range toks {
		if tok.Type == token.SIGN {
			signs = append(signs, tok.Literal)
		}
	}
	assert.Equal(t, []string{"<=", ">=", "!=", "==", "<", ">"}, signs)
}

func TestTokenizeStringLiteral(t *testing.T) {
	toks, err := Tokenize(`"hello, world"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "hello, world", toks[0].Literal)
}

func TestTokenizeUnterminatedStringIsFatal(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	require.Error(t, err)
	lerr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 0, lerr.Offset)
}

func TestTokenizeUnrecognizedCharacterIsFatal(t *testing.T) {
	_, err := Tokenize("int a; a = 1 @ 2;")
	require.Error(t, err)
	lerr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 13, lerr.Offset)
}

func TestTokenizeKeywordsVsIdentifiers(t *testing.T) {
	toks, err := Tokenize("int integer while whileLoop")
	require.NoError(t, err)
	require.Len(t, toks, 5) // + EOF
	assert.Equal(t, token.INT, toks[0].Type)
	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, token.WHILE, toks[2].Type)
	assert.Equal(t, token.IDENT, toks[3].Type)
}
