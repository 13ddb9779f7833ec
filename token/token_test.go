package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdentifier(t *testing.T) {
	cases := []struct {
		ident string
		want  Type
	}{
		{"return", RETURN},
		{"if", IF},
		{"else", ELSE},
		{"while", WHILE},
		{"for", FOR},
		{"int", INT},
		{"char", CHAR},
		{"sizeof", SIZEOF},
		{"foo", IDENT},
		{"int2", IDENT},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, LookupIdentifier(c.ident), c.ident)
	}
}

func TestIsTypename(t *testing.T) {
	assert.True(t, Token{Type: INT}.IsTypename())
	assert.True(t, Token{Type: CHAR}.IsTypename())
	assert.False(t, Token{Type: IDENT}.IsTypename())
	assert.False(t, Token{Type: RETURN}.IsTypename())
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, Token{Type: WHILE}.IsKeyword())
	assert.True(t, Token{Type: SIZEOF}.IsKeyword())
	assert.False(t, Token{Type: IDENT}.IsKeyword())
	assert.False(t, Token{Type: SIGN}.IsKeyword())
}

func TestSignsAreSortedSetWithNoDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Signs {
		assert.False(t, seen[s], "duplicate sign %q", s)
		seen[s] = true
	}
	// longest-match first: no sign is longer than the one before it.
	for i := 1; i < len(Signs); i++ {
		assert.LessOrEqual(t, len(Signs[i]), len(Signs[i-1]), "sign %q out of order", Signs[i])
	}
	// every multi-char comparison operator must appear so the lexer's
	// longest-match scan can find it before its single-char prefix.
	assert.Contains(t, Signs, "==")
	assert.Contains(t, Signs, "<=")
	assert.Contains(t, Signs, ">=")
	assert.Contains(t, Signs, "!=")
}
