package parser

import (
	"github.com/krizos/zs/pkg/ast"
	"github.com/krizos/zs/pkg/token"
)

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Kind {
	case token.IMPORT:
		return p.parseImport()
	case token.PUBLIC:
		return p.parsePublicDecl()
	case token.MUT:
		return p.parseVarDecl(false)
	case token.PROC:
		return p.parseProcDecl(false)
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.TRY:
		return p.parseTry()
	case token.THROW:
		return p.parseThrow()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		line := p.cur.Line
		p.expect(token.SEMI)
		return ast.NewBreak(line)
	case token.CONTINUE:
		line := p.cur.Line
		p.expect(token.SEMI)
		return ast.NewContinue(line)
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseImport() ast.Stmt {
	line := p.cur.Line // cur == 'import'
	if !p.expect(token.STRING) {
		return nil
	}
	pathTok := p.cur
	alias := ""
	if p.peekIs(token.AS) {
		p.next() // cur == 'as'
		if !p.expect(token.IDENT) {
			return nil
		}
		alias = p.cur.Lexeme
	}
	p.expect(token.SEMI)
	return ast.NewImport(line, pathTok.Literal, alias)
}

func (p *Parser) parsePublicDecl() ast.Stmt {
	p.next() // move past 'public' onto 'proc' or 'mut'
	if p.curIs(token.PROC) {
		return p.parseProcDecl(true)
	}
	return p.parseVarDecl(true)
}

func (p *Parser) parseVarDecl(public bool) ast.Stmt {
	line := p.cur.Line // cur == 'mut'
	if !p.expect(token.IDENT) {
		return nil
	}
	name := p.cur.Lexeme
	if !p.expect(token.ASSIGN) {
		return nil
	}
	p.next() // move to the initializer's first token
	value := p.parseExpr(lowest)
	p.expect(token.SEMI)
	return ast.NewVarDecl(line, name, value, public)
}

func (p *Parser) parseProcDecl(public bool) ast.Stmt {
	line := p.cur.Line // cur == 'proc'
	if !p.expect(token.IDENT) {
		return nil
	}
	name := p.cur.Lexeme
	params := p.parseParamList()
	if !p.expect(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return ast.NewProcDecl(line, name, params, body, public)
}

// parseParamList parses a parenthesized, comma-separated identifier list.
// Entered with cur on the token just before '(' (a name, or 'proc' for an
// anonymous literal); leaves cur on ')'.
func (p *Parser) parseParamList() []string {
	if !p.expect(token.LPAREN) {
		return nil
	}
	var params []string
	if p.peekIs(token.RPAREN) {
		p.next()
		return params
	}
	p.next() // move to first param name
	params = append(params, p.cur.Lexeme)
	for p.peekIs(token.COMMA) {
		p.next() // cur == ','
		p.next() // cur == next param name
		params = append(params, p.cur.Lexeme)
	}
	p.expect(token.RPAREN)
	return params
}

// parseBlock parses a brace-delimited statement list. Entered with cur on
// '{'; leaves cur on '}'.
func (p *Parser) parseBlock() *ast.Block {
	line := p.cur.Line
	p.next() // move past '{'
	var stmts []ast.Stmt
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStmt()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.next()
	}
	return ast.NewBlock(line, stmts)
}

func (p *Parser) parseIf() ast.Stmt {
	line := p.cur.Line // cur == 'if'
	if !p.expect(token.LPAREN) {
		return nil
	}
	p.next() // move to condition's first token
	cond := p.parseExpr(lowest)
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	then := p.parseBlock()

	var elifs []ast.IfClause
	for p.peekIs(token.ELIF) {
		p.next() // cur == 'elif'
		if !p.expect(token.LPAREN) {
			return nil
		}
		p.next()
		ec := p.parseExpr(lowest)
		if !p.expect(token.RPAREN) {
			return nil
		}
		if !p.expect(token.LBRACE) {
			return nil
		}
		eb := p.parseBlock()
		elifs = append(elifs, ast.IfClause{Cond: ec, Body: eb})
	}

	var els *ast.Block
	if p.peekIs(token.ELSE) {
		p.next() // cur == 'else'
		if !p.expect(token.LBRACE) {
			return nil
		}
		els = p.parseBlock()
	}
	return ast.NewIf(line, cond, then, elifs, els)
}

func (p *Parser) parseWhile() ast.Stmt {
	line := p.cur.Line // cur == 'while'
	if !p.expect(token.LPAREN) {
		return nil
	}
	p.next()
	cond := p.parseExpr(lowest)
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return ast.NewWhile(line, cond, body)
}

func (p *Parser) parseFor() ast.Stmt {
	line := p.cur.Line // cur == 'for'
	if !p.expect(token.LPAREN) {
		return nil
	}

	var init ast.Stmt
	if !p.peekIs(token.SEMI) {
		p.next()
		init = p.parseForClauseStmt()
	}
	if !p.curIs(token.SEMI) {
		p.expect(token.SEMI)
	}

	var cond ast.Expr
	if !p.peekIs(token.SEMI) {
		p.next()
		cond = p.parseExpr(lowest)
	}
	p.expect(token.SEMI)

	var post ast.Stmt
	if !p.peekIs(token.RPAREN) {
		p.next()
		if p.curIs(token.MUT) {
			post = p.parseForClauseStmt()
		} else {
			e := p.parseExpr(lowest)
			post = ast.NewExprStmt(e.Line(), e)
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return ast.NewFor(line, init, cond, post, body)
}

// parseForClauseStmt parses a `mut x = e` or bare expression inside a
// for(...) header. Entered with cur on the clause's first token; leaves cur
// on the clause's own last token without consuming a trailing semicolon —
// the for-loop header manages its own semicolons.
func (p *Parser) parseForClauseStmt() ast.Stmt {
	if p.curIs(token.MUT) {
		line := p.cur.Line
		if !p.expect(token.IDENT) {
			return nil
		}
		name := p.cur.Lexeme
		if !p.expect(token.ASSIGN) {
			return nil
		}
		p.next()
		value := p.parseExpr(lowest)
		return ast.NewVarDecl(line, name, value, false)
	}
	e := p.parseExpr(lowest)
	return ast.NewExprStmt(e.Line(), e)
}

func (p *Parser) parseTry() ast.Stmt {
	line := p.cur.Line // cur == 'try'
	if !p.expect(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	if !p.expect(token.CATCH) {
		return nil
	}
	if !p.expect(token.LPAREN) {
		return nil
	}
	if !p.expect(token.IDENT) {
		return nil
	}
	catchVar := p.cur.Lexeme
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	catch := p.parseBlock()
	return ast.NewTry(line, body, catchVar, catch)
}

func (p *Parser) parseThrow() ast.Stmt {
	line := p.cur.Line // cur == 'throw'
	var value ast.Expr
	if !p.peekIs(token.SEMI) {
		p.next()
		value = p.parseExpr(lowest)
	}
	p.expect(token.SEMI)
	return ast.NewThrow(line, value)
}

func (p *Parser) parseReturn() ast.Stmt {
	line := p.cur.Line // cur == 'return'
	var value ast.Expr
	if !p.peekIs(token.SEMI) {
		p.next()
		value = p.parseExpr(lowest)
	}
	p.expect(token.SEMI)
	return ast.NewReturn(line, value)
}

func (p *Parser) parseExprStmt() ast.Stmt {
	line := p.cur.Line
	e := p.parseExpr(lowest)
	p.expect(token.SEMI)
	return ast.NewExprStmt(line, e)
}
