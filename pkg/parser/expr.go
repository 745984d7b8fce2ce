package parser

import (
	"strconv"

	"github.com/krizos/zs/pkg/ast"
	"github.com/krizos/zs/pkg/token"
)

// Precedence levels, lowest to highest — standard Pratt-parser ladder.
const (
	lowest int = iota
	assignPrec
	orPrec
	andPrec
	bitOrPrec
	bitXorPrec
	bitAndPrec
	equalsPrec
	compPrec
	shiftPrec
	sumPrec
	productPrec
	prefixPrec
	callPrec
	indexPrec
)

var precedences = map[token.Kind]int{
	token.ASSIGN:   assignPrec,
	token.OR:       orPrec,
	token.AND:      andPrec,
	token.BOR:      bitOrPrec,
	token.BXOR:     bitXorPrec,
	token.BAND:     bitAndPrec,
	token.EQ:       equalsPrec,
	token.NOTEQ:    equalsPrec,
	token.IS:       equalsPrec,
	token.LT:       compPrec,
	token.GT:       compPrec,
	token.LE:       compPrec,
	token.GE:       compPrec,
	token.LSHIFT:   shiftPrec,
	token.RSHIFT:   shiftPrec,
	token.PLUS:     sumPrec,
	token.MINUS:    sumPrec,
	token.STAR:     productPrec,
	token.SLASH:    productPrec,
	token.PERCENT:  productPrec,
	token.LPAREN:   callPrec,
	token.LBRACKET: indexPrec,
	token.DOT:      indexPrec,
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Kind]; ok {
		return pr
	}
	return lowest
}

// parseExpr is the Pratt-parser entry point: parse a prefix expression,
// then keep consuming infix/postfix operators while their precedence
// exceeds the caller's minimum. Entered with cur on the expression's first
// token; returns with cur on the expression's own last token.
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for !p.peekIs(token.SEMI) && minPrec < p.peekPrecedence() {
		switch p.peek.Kind {
		case token.LPAREN:
			p.next() // cur == '('
			left = p.parseCall(left)
		case token.LBRACKET:
			p.next() // cur == '['
			left = p.parseIndex(left)
		case token.DOT:
			p.next() // cur == '.'
			left = p.parseAccess(left)
		case token.ASSIGN:
			p.next() // cur == '='
			left = p.parseAssign(left)
		case token.IS:
			p.next() // cur == 'is'
			left = p.parseIs(left)
		default:
			p.next() // cur == operator
			left = p.parseBinary(left)
		}
	}
	return left
}

// parseBinary parses the rest of a binary/logical expression. Entered with
// cur on the operator token.
func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	opTok := p.cur
	prec := precedences[opTok.Kind]
	p.next() // move to the right operand's first token
	right := p.parseExpr(prec)
	if opTok.Kind == token.AND || opTok.Kind == token.OR {
		return ast.NewLogical(opTok.Line, opTok.Lexeme, left, right)
	}
	return ast.NewBinary(opTok.Line, ast.BinOp(opTok.Lexeme), left, right)
}

// parseAssign parses `target = value`. Right-associative: recurses at
// assignPrec-1 so a chain like `a = b = c` parses as a = (b = c). Entered
// with cur on '='.
func (p *Parser) parseAssign(target ast.Expr) ast.Expr {
	line := p.cur.Line
	p.next() // move to the value's first token
	value := p.parseExpr(assignPrec - 1)
	return ast.NewAssign(line, target, value)
}

// parseIs parses `x is Kind`. Entered with cur on 'is'.
func (p *Parser) parseIs(x ast.Expr) ast.Expr {
	line := p.cur.Line
	if !p.expect(token.IDENT) {
		return nil
	}
	return ast.NewIs(line, x, p.cur.Lexeme)
}

// parseCall parses a call's argument list. Entered with cur on '('.
func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	line := p.cur.Line
	args := p.parseExprList(token.RPAREN)
	return ast.NewCall(line, callee, args)
}

// parseIndex parses `x[idx]`. Entered with cur on '['.
func (p *Parser) parseIndex(x ast.Expr) ast.Expr {
	line := p.cur.Line
	p.next() // move to the index expression's first token
	idx := p.parseExpr(lowest)
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return ast.NewIndex(line, x, idx)
}

// parseAccess parses `x.name`. Entered with cur on '.'.
func (p *Parser) parseAccess(x ast.Expr) ast.Expr {
	line := p.cur.Line
	if !p.expect(token.IDENT) {
		return nil
	}
	return ast.NewAccess(line, x, p.cur.Lexeme)
}

// parseExprList parses a comma-separated expression list up to (and
// including) the end delimiter. Entered with cur on the opening delimiter
// ('(' or '['); leaves cur on end.
func (p *Parser) parseExprList(end token.Kind) []ast.Expr {
	var list []ast.Expr
	if p.peekIs(end) {
		p.next()
		return list
	}
	p.next() // move to first element
	list = append(list, p.parseExpr(lowest))
	for p.peekIs(token.COMMA) {
		p.next() // cur == ','
		p.next() // cur == next element's first token
		list = append(list, p.parseExpr(lowest))
	}
	p.expect(end)
	return list
}

// parsePrefix dispatches on the current token to produce a primary or
// unary-prefixed expression.
func (p *Parser) parsePrefix() ast.Expr {
	switch p.cur.Kind {
	case token.INT:
		return p.parseIntLit()
	case token.FLOAT:
		return p.parseFloatLit()
	case token.STRING:
		return ast.NewStringLit(p.cur.Line, p.cur.Literal)
	case token.TRUE:
		return ast.NewBoolLit(p.cur.Line, true)
	case token.FALSE:
		return ast.NewBoolLit(p.cur.Line, false)
	case token.EMPTY:
		return ast.NewEmptyLit(p.cur.Line)
	case token.IDENT:
		return ast.NewIdent(p.cur.Line, p.cur.Lexeme)
	case token.MINUS:
		return p.parseUnary(ast.OpNeg)
	case token.NOT:
		return p.parseUnary(ast.OpNot)
	case token.BNOT:
		return p.parseUnary(ast.OpBNot)
	case token.LPAREN:
		return p.parseGrouped()
	case token.LBRACKET:
		return p.parseArrayLit()
	case token.LIST:
		return p.parseListLit()
	case token.DICT:
		return p.parseDictLit()
	case token.LBRACE:
		return p.parseRecordLit()
	case token.PROC:
		return p.parseProcLit()
	default:
		p.errorf("unexpected token %s (%q) in expression", p.cur.Kind, p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parseIntLit() ast.Expr {
	v, err := strconv.ParseInt(p.cur.Lexeme, 10, 64)
	if err != nil {
		p.errorf("invalid integer literal %q", p.cur.Lexeme)
	}
	return ast.NewIntLit(p.cur.Line, v)
}

func (p *Parser) parseFloatLit() ast.Expr {
	v, err := strconv.ParseFloat(p.cur.Lexeme, 64)
	if err != nil {
		p.errorf("invalid float literal %q", p.cur.Lexeme)
	}
	return ast.NewFloatLit(p.cur.Line, v)
}

// parseUnary parses a prefix unary operator. Entered with cur on the
// operator token.
func (p *Parser) parseUnary(op ast.UnOp) ast.Expr {
	line := p.cur.Line
	p.next() // move to the operand's first token
	x := p.parseExpr(prefixPrec)
	return ast.NewUnary(line, op, x)
}

// parseGrouped parses a parenthesized expression. Entered with cur on '('.
func (p *Parser) parseGrouped() ast.Expr {
	p.next() // move past '('
	e := p.parseExpr(lowest)
	if !p.expect(token.RPAREN) {
		return nil
	}
	return e
}

// parseArrayLit parses `[e1, e2, ...]`. Entered with cur on '['.
func (p *Parser) parseArrayLit() ast.Expr {
	line := p.cur.Line
	elems := p.parseExprList(token.RBRACKET)
	return ast.NewArrayLit(line, elems)
}

// parseListLit parses `list(e1, e2, ...)`. Entered with cur on 'list'.
func (p *Parser) parseListLit() ast.Expr {
	line := p.cur.Line
	if !p.expect(token.LPAREN) {
		return nil
	}
	elems := p.parseExprList(token.RPAREN)
	return ast.NewListLit(line, elems)
}

// parseDictLit parses `dict(k1 to v1, k2 to v2, ...)`. Entered with cur on
// 'dict'.
func (p *Parser) parseDictLit() ast.Expr {
	line := p.cur.Line
	if !p.expect(token.LPAREN) {
		return nil
	}
	var pairs []ast.DictPair
	if p.peekIs(token.RPAREN) {
		p.next()
		return ast.NewDictLit(line, pairs)
	}
	p.next() // move to first key
	pairs = append(pairs, p.parseDictPair())
	for p.peekIs(token.COMMA) {
		p.next()
		p.next()
		pairs = append(pairs, p.parseDictPair())
	}
	p.expect(token.RPAREN)
	return ast.NewDictLit(line, pairs)
}

// parseDictPair parses `key to value`. Entered with cur on key's first
// token; leaves cur on value's last token.
func (p *Parser) parseDictPair() ast.DictPair {
	key := p.parseExpr(lowest)
	if !p.expect(token.TO) {
		return ast.DictPair{Key: key}
	}
	p.next() // move to value's first token
	value := p.parseExpr(lowest)
	return ast.DictPair{Key: key, Value: value}
}

// parseRecordLit parses `{ name: value, ... }`. Entered with cur on '{'.
func (p *Parser) parseRecordLit() ast.Expr {
	line := p.cur.Line
	var fields []ast.RecordField
	if p.peekIs(token.RBRACE) {
		p.next()
		return ast.NewRecordLit(line, fields)
	}
	p.next() // move to first field name
	fields = append(fields, p.parseRecordField())
	for p.peekIs(token.COMMA) {
		p.next()
		p.next()
		fields = append(fields, p.parseRecordField())
	}
	p.expect(token.RBRACE)
	return ast.NewRecordLit(line, fields)
}

// parseRecordField parses `name: value`. Entered with cur on the field
// name identifier; leaves cur on value's last token.
func (p *Parser) parseRecordField() ast.RecordField {
	name := p.cur.Lexeme
	if !p.expect(token.COLON) {
		return ast.RecordField{Name: name}
	}
	p.next() // move to value's first token
	value := p.parseExpr(lowest)
	return ast.RecordField{Name: name, Value: value}
}

// parseProcLit parses `proc(params) { body }`. Entered with cur on 'proc'.
func (p *Parser) parseProcLit() ast.Expr {
	line := p.cur.Line
	params := p.parseParamList()
	if !p.expect(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return ast.NewProcLit(line, params, body)
}
