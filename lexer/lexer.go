// Package lexer turns TDLang source bytes into a token.Token stream.
//
// The lexer is byte-oriented: it does not interpret multibyte UTF-8
// sequences inside identifiers, matching the C-locale behavior of the
// original tool this language was lifted from.
package lexer

import (
	"github.com/tdlang/compiler/token"
)

// Lexer is a forward-only scanner over a fixed buffer, with a single-token
// lookahead buffer so the parser can peek without consuming.
type Lexer struct {
	src  []byte
	pos  int
	line int

	peeked  *token.Token
	peekPos int
}

// New returns a Lexer positioned at the start of src.
func New(src []byte) *Lexer {
	return &Lexer{
		src:  src,
		pos:  0,
		line: 1,
	}
}

// Next consumes and returns the next token.
func (l *Lexer) Next() token.Token {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil

		return t
	}

	return l.scan()
}

// Peek returns the next token without consuming it. Calling Peek multiple
// times in a row without an intervening Next returns the same token.
func (l *Lexer) Peek() token.Token {
	if l.peeked == nil {
		t := l.scan()
		l.peeked = &t
	}

	return *l.peeked
}

// Line reports the current 1-based source line, i.e. the line the next
// token (if any) will start on.
func (l *Lexer) Line() int {
	return l.Peek().Line
}

func (l *Lexer) scan() token.Token {
	for {
		l.skipWhitespace()

		if !l.skipComment() {
			break
		}
	}

	line := l.line

	if l.atEnd() {
		return token.Token{Tag: token.END_OF_FILE, Line: line}
	}

	c := l.src[l.pos]

	switch {
	case isDigit(c):
		return l.number(line)
	case isIdentStart(c):
		return l.identifier(line)
	}

	switch c {
	case '{':
		return l.punct(token.LBRACE, line)
	case '}':
		return l.punct(token.RBRACE, line)
	case '(':
		return l.punct(token.LPAREN, line)
	case ')':
		return l.punct(token.RPAREN, line)
	case '[':
		return l.punct(token.LBRACKET, line)
	case ']':
		return l.punct(token.RBRACKET, line)
	case ',':
		return l.punct(token.COMMA, line)
	case ';':
		return l.punct(token.SEMICOLON, line)
	case '=':
		return l.punct(token.EQUAL, line)
	}

	l.pos++

	return token.Token{Tag: token.UNKNOWN, Lexeme: string(c), Line: line}
}

// skipWhitespace skips spaces, tabs, carriage returns, and newlines,
// incrementing the line counter on each newline.
func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch l.src[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
		case '\n':
			l.pos++
			l.line++
		default:
			return
		}
	}
}

// skipComment skips a single "// ... \n" comment if one starts at pos, and
// reports whether it skipped anything (so the caller can re-run whitespace
// skipping: comments and whitespace alternate until neither applies).
func (l *Lexer) skipComment() bool {
	if l.pos+1 >= len(l.src) || l.src[l.pos] != '/' || l.src[l.pos+1] != '/' {
		return false
	}

	for !l.atEnd() && l.src[l.pos] != '\n' {
		l.pos++
	}

	return true
}

func (l *Lexer) number(line int) token.Token {
	start := l.pos

	for !l.atEnd() && isDigit(l.src[l.pos]) {
		l.pos++
	}

	tag := token.INT

	if !l.atEnd() && l.src[l.pos] == '.' {
		tag = token.FLOAT
		l.pos++

		for !l.atEnd() && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}

	return token.Token{Tag: tag, Lexeme: string(l.src[start:l.pos]), Line: line}
}

func (l *Lexer) identifier(line int) token.Token {
	start := l.pos

	for !l.atEnd() && isIdentPart(l.src[l.pos]) {
		l.pos++
	}

	lexeme := string(l.src[start:l.pos])

	if tag, ok := token.Keywords[lexeme]; ok {
		return token.Token{Tag: tag, Lexeme: lexeme, Line: line}
	}

	return token.Token{Tag: token.IDENT, Lexeme: lexeme, Line: line}
}

func (l *Lexer) punct(tag token.Tag, line int) token.Token {
	lexeme := string(l.src[l.pos])
	l.pos++

	return token.Token{Tag: tag, Lexeme: lexeme, Line: line}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
