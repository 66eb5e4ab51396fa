package lexer

import (
	"testing"

	"github.com/tdlang/compiler/token"
)

func TestKeywordsAndIdents(t *testing.T) {
	l := New([]byte("map enemy Goblin tower wave spawn place at size path count start interval"))

	want := []token.Tag{
		token.MAP, token.ENEMY, token.IDENT, token.TOWER, token.WAVE,
		token.SPAWN, token.PLACE, token.AT, token.SIZE, token.PATH,
		token.COUNT, token.START, token.INTERVAL, token.END_OF_FILE,
	}

	for i, w := range want {
		if got := l.Next().Tag; got != w {
			t.Fatalf("token %d: got %v, want %v", i, got, w)
		}
	}
}

func TestIdentLexemeRoundTrip(t *testing.T) {
	src := []byte("Goblin_2 ArcherTower")
	l := New(src)

	tk := l.Next()
	if tk.Tag != token.IDENT || tk.Lexeme != "Goblin_2" {
		t.Fatalf("got %v", tk)
	}

	tk = l.Next()
	if tk.Tag != token.IDENT || tk.Lexeme != "ArcherTower" {
		t.Fatalf("got %v", tk)
	}
}

func TestNumbers(t *testing.T) {
	l := New([]byte("42 3.14 0 0.5"))

	cases := []struct {
		tag    token.Tag
		lexeme string
	}{
		{token.INT, "42"},
		{token.FLOAT, "3.14"},
		{token.INT, "0"},
		{token.FLOAT, "0.5"},
	}

	for _, c := range cases {
		tk := l.Next()
		if tk.Tag != c.tag || tk.Lexeme != c.lexeme {
			t.Fatalf("got %v, want %v %q", tk, c.tag, c.lexeme)
		}
	}
}

func TestPunctuation(t *testing.T) {
	l := New([]byte("{}()[],;="))

	want := []token.Tag{
		token.LBRACE, token.RBRACE, token.LPAREN, token.RPAREN,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.SEMICOLON, token.EQUAL,
	}

	for i, w := range want {
		if got := l.Next().Tag; got != w {
			t.Fatalf("token %d: got %v, want %v", i, got, w)
		}
	}
}

func TestCommentsAndWhitespace(t *testing.T) {
	l := New([]byte("  // a comment\n\tmap // trailing\n  M"))

	tk := l.Next()
	if tk.Tag != token.MAP {
		t.Fatalf("got %v", tk)
	}

	tk = l.Next()
	if tk.Tag != token.IDENT || tk.Lexeme != "M" {
		t.Fatalf("got %v", tk)
	}
}

func TestUnknownToken(t *testing.T) {
	l := New([]byte("@"))

	tk := l.Next()
	if tk.Tag != token.UNKNOWN || tk.Lexeme != "@" {
		t.Fatalf("got %v", tk)
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	l := New([]byte("map M"))

	first := l.Peek()
	second := l.Peek()

	if first != second {
		t.Fatalf("peek not idempotent: %v != %v", first, second)
	}

	if l.Next() != first {
		t.Fatalf("next after peek mismatch")
	}

	if l.Next().Tag != token.IDENT {
		t.Fatalf("expected IDENT after MAP")
	}
}

func TestLineCounting(t *testing.T) {
	l := New([]byte("map\nM\n{"))

	if tk := l.Next(); tk.Line != 1 {
		t.Fatalf("map line = %d, want 1", tk.Line)
	}
	if tk := l.Next(); tk.Line != 2 {
		t.Fatalf("M line = %d, want 2", tk.Line)
	}
	if tk := l.Next(); tk.Line != 3 {
		t.Fatalf("{ line = %d, want 3", tk.Line)
	}
}
