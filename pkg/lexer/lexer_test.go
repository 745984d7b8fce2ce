package lexer

import (
	"testing"

	"github.com/krizos/zs/pkg/token"
)

func TestNextTokenCore(t *testing.T) {
	src := `mut a = 1 + 2 * 3;
proc f(x) { return x; }
try { throw {msg: "boom"}; } catch(e) { print(e.msg); }`

	want := []token.Kind{
		token.MUT, token.IDENT, token.ASSIGN, token.INT, token.PLUS, token.INT, token.STAR, token.INT, token.SEMI,
		token.PROC, token.IDENT, token.LPAREN, token.IDENT, token.RPAREN, token.LBRACE,
		token.RETURN, token.IDENT, token.SEMI, token.RBRACE,
		token.TRY, token.LBRACE, token.THROW, token.LBRACE, token.IDENT, token.COLON, token.STRING, token.RBRACE, token.SEMI, token.RBRACE,
		token.CATCH, token.LPAREN, token.IDENT, token.RPAREN, token.LBRACE,
		token.IDENT, token.LPAREN, token.IDENT, token.DOT, token.IDENT, token.RPAREN, token.SEMI, token.RBRACE,
		token.EOF,
	}

	l := New(src, "test.zs")
	for i, wantKind := range want {
		tok := l.NextToken()
		if tok.Kind != wantKind {
			t.Fatalf("token %d: got %s (%q), want %s", i, tok.Kind, tok.Lexeme, wantKind)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc"`, "t.zs")
	tok := l.NextToken()
	if tok.Kind != token.STRING {
		t.Fatalf("got %s, want STRING", tok.Kind)
	}
	if tok.Literal != "a\nb\tc" {
		t.Fatalf("got %q, want %q", tok.Literal, "a\nb\tc")
	}
}

func TestFloatVsIntVsDot(t *testing.T) {
	l := New(`3.14 7 a.b`, "t.zs")
	tests := []struct {
		kind   token.Kind
		lexeme string
	}{
		{token.FLOAT, "3.14"},
		{token.INT, "7"},
		{token.IDENT, "a"},
		{token.DOT, "."},
		{token.IDENT, "b"},
	}
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Kind != want.kind || tok.Lexeme != want.lexeme {
			t.Fatalf("token %d: got %s(%q), want %s(%q)", i, tok.Kind, tok.Lexeme, want.kind, want.lexeme)
		}
	}
}

func TestLineTracking(t *testing.T) {
	l := New("a\nb\nc", "t.zs")
	lines := []int{1, 2, 3}
	for i, want := range lines {
		tok := l.NextToken()
		if tok.Line != want {
			t.Fatalf("token %d: line %d, want %d", i, tok.Line, want)
		}
	}
}
