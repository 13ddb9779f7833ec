// Package lexer turns a source buffer into a flat sequence of tokens.
//
// It is the Tokenizer described by the design: it classifies whitespace
// (dropped), decimal integer literals, a closed set of multi-character
// punctuation signs (matched longest-first), identifiers, reserved
// keywords, and string literals, and tags every token with its byte
// offset for diagnostics.
package lexer

import (
	"sort"
	"strings"

	"github.com/kzok/tinycc/token"
)

// Error is returned when the input contains a byte that cannot begin
// any recognized token.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Lexer holds the scanning cursor over a source buffer.
type Lexer struct {
	input   string
	pos     int // current byte offset
	readPos int // next byte offset to read
	ch      byte
	signs   []string // Signs, sorted longest-first
}

// New creates a Lexer over input.
func New(input string) *Lexer {
	l := &Lexer{input: input, signs: sortedSigns()}
	l.readChar()
	return l
}

func sortedSigns() []string {
	signs := make([]string, len(token.Signs))
	copy(signs, token.Signs)
	sort.Slice(signs, func(i, j int) bool { return len(signs[i]) > len(signs[j]) })
	return signs
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekAt(off int) byte {
	idx := l.pos + off
	if idx < 0 || idx >= len(l.input) {
		return 0
	}
	return l.input[idx]
}

// Tokenize scans the entire input and returns the token sequence,
// terminated by a single EOF token. It returns a non-nil *Error, never
// a partial token slice, if a byte cannot be tokenized.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens, nil
}

// NextToken scans and returns the next token, advancing the cursor past
// it. It returns *Error if the current byte cannot begin any token.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	offset := l.pos

	if l.ch == 0 {
		return token.Token{Type: token.EOF, Literal: "", Offset: offset}, nil
	}

	if isDigit(l.ch) {
		return l.readNumber(offset), nil
	}

	if l.ch == '"' {
		return l.readString(offset)
	}

	if sign, ok := l.matchSign(); ok {
		for i := 0; i < len(sign); i++ {
			l.readChar()
		}
		return token.Token{Type: token.SIGN, Literal: sign, Offset: offset}, nil
	}

	if isIdentStart(l.ch) {
		return l.readIdentifier(offset), nil
	}

	return token.Token{}, &Error{
		Offset:  offset,
		Message: "cannot tokenize: unrecognized character",
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// matchSign tries every sign, longest first, against the remaining
// input. Ordering matters: multi-character signs must be tried before
// any single-character sign that is a proper prefix of them.
func (l *Lexer) matchSign() (string, bool) {
	rest := l.input[l.pos:]
	for _, s := range l.signs {
		if strings.HasPrefix(rest, s) {
			return s, true
		}
	}
	return "", false
}

func (l *Lexer) readNumber(offset int) token.Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return token.Token{Type: token.NUMBER, Literal: l.input[start:l.pos], Offset: offset}
}

func (l *Lexer) readIdentifier(offset int) token.Token {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.pos]

	kind := token.LookupIdentifier(lit)
	return token.Token{Type: kind, Literal: lit, Offset: offset}
}

func (l *Lexer) readString(offset int) (token.Token, error) {
	// swallow the opening quote
	l.readChar()
	start := l.pos
	for l.ch != '"' {
		if l.ch == 0 {
			return token.Token{}, &Error{
				Offset:  offset,
				Message: "cannot tokenize: unterminated string literal",
			}
		}
		l.readChar()
	}
	body := l.input[start:l.pos]
	// swallow the closing quote
	l.readChar()
	return token.Token{Type: token.STRING, Literal: body, Offset: offset}, nil
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isIdentStart(ch byte) bool { return isLetter(ch) }

func isIdentPart(ch byte) bool { return isLetter(ch) || isDigit(ch) }
