// Package parser builds an ast.Program from a token stream, via a
// recursive-descent statement parser over a Pratt (precedence-climbing)
// expression parser — the same two-layer split as teacher's
// pkg/parser/{parser,stmt,expr,decl}.go.
package parser

import (
	"fmt"

	"github.com/krizos/zs/pkg/ast"
	"github.com/krizos/zs/pkg/lexer"
	"github.com/krizos/zs/pkg/token"
)

// Parser consumes tokens from a Lexer and produces an ast.Program.
//
// Convention: every parse function is entered with p.cur on the
// construct's own first token (or, for infix/postfix parse functions, on
// the operator token) and returns with p.cur on the construct's own last
// consumed token — never past it. Advancing past a required terminator or
// separator is the caller's job, via expect (peek-checked) or accept
// (cur-checked).
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors []string
}

// New creates a Parser reading from l, primed with the first two tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("%s:%d: %s", p.cur.Path, p.cur.Line, msg))
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

// expect verifies the next token is k and advances onto it, so cur becomes
// k. Use after a sub-parse that leaves cur on its own last token, to
// consume a required terminator or separator (';', ')', '}', ...).
func (p *Parser) expect(k token.Kind) bool {
	if p.peek.Kind == k {
		p.next()
		return true
	}
	p.errorf("expected %s, got %s (%q)", k, p.peek.Kind, p.peek.Lexeme)
	return false
}

// ParseProgram parses the entire token stream into an ast.Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt := p.parseStmt()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
		p.next()
		if len(p.errors) > 200 {
			break // runaway error recovery guard
		}
	}
	return prog
}
