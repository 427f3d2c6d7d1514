// Package parser implements a Pratt parser that turns a Tiger token stream
// into the internal/ast tree, following the prefix/infix parse function
// table shape of the teacher's parser (CWBudde-go-dws/internal/parser):
// a precedence table, curToken/peekToken lookahead, and one parse function
// per token that can start or continue an expression.
//
// Tiger has no statement/expression split and a far smaller grammar than
// DWScript, so the declaration-specific sub-packages the teacher splits
// out (classes.go, properties.go, sets.go, ...) collapse into this one
// file.
package parser

import (
	"fmt"

	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/lexer"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	EQUALS      // = <> < <= > >=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // unary -
	CALL        // f(...)
	INDEX       // a[i], v.f
)

var precedences = map[lexer.TokenType]int{
	lexer.EQ:     EQUALS,
	lexer.NEQ:    EQUALS,
	lexer.LT:     EQUALS,
	lexer.LE:     EQUALS,
	lexer.GT:     EQUALS,
	lexer.GE:     EQUALS,
	lexer.PLUS:   SUM,
	lexer.MINUS:  SUM,
	lexer.TIMES:  PRODUCT,
	lexer.DIVIDE: PRODUCT,
	lexer.LBRACK: INDEX,
	lexer.DOT:    INDEX,
}

var binOps = map[lexer.TokenType]ast.Op{
	lexer.PLUS:   ast.Plus,
	lexer.MINUS:  ast.Minus,
	lexer.TIMES:  ast.Times,
	lexer.DIVIDE: ast.Divide,
	lexer.EQ:     ast.Eq,
	lexer.NEQ:    ast.Neq,
	lexer.LT:     ast.Lt,
	lexer.LE:     ast.Le,
	lexer.GT:     ast.Gt,
	lexer.GE:     ast.Ge,
}

// ParseError is one recorded parse failure. Parsing is best-effort (it
// keeps going to collect more errors) but spec.md treats the first
// semantic error as fatal; the CLI only ever reports the first parse
// error too, for a uniform "first error wins" user experience.
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e ParseError) Error() string { return e.Message }

// Parser turns a token stream into a single top-level ast.Exp (spec.md §6
// "Parser contract").
type Parser struct {
	l      *lexer.Lexer
	errors []ParseError

	curToken  lexer.Token
	peekToken lexer.Token
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns every parse error recorded so far.
func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) pos() ast.Pos {
	return ast.Pos{Line: p.curToken.Pos.Line, Col: p.curToken.Pos.Column}
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, ParseError{
		Message: fmt.Sprintf(format, args...),
		Pos:     p.curToken.Pos,
	})
}

func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curToken.Type == tt {
		p.next()
		return true
	}
	p.errorf("expected %v, got %v (%q)", tt, p.curToken.Type, p.curToken.Literal)
	return false
}

// ParseProgram parses the single top-level expression that makes up a
// whole Tiger program.
func (p *Parser) ParseProgram() ast.Exp {
	exp := p.parseExpression(LOWEST)
	if p.curToken.Type != lexer.EOF {
		p.errorf("unexpected trailing token %v (%q)", p.curToken.Type, p.curToken.Literal)
	}
	return exp
}

// parseExpression is the Pratt-parser core: parse one prefix expression,
// then repeatedly fold in infix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Exp {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for p.curToken.Type != lexer.SEMI && minPrec < p.curPrecedence() {
		switch p.curToken.Type {
		case lexer.LBRACK:
			left = p.parseSubscriptOrArrayExp(left)
		case lexer.DOT:
			left = p.parseFieldAccess(left)
		case lexer.PLUS, lexer.MINUS, lexer.TIMES, lexer.DIVIDE,
			lexer.EQ, lexer.NEQ, lexer.LT, lexer.LE, lexer.GT, lexer.GE:
			left = p.parseBinOp(left)
		default:
			return left
		}
	}
	return left
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parseBinOp(left ast.Exp) ast.Exp {
	pos := p.pos()
	op := binOps[p.curToken.Type]
	prec := p.curPrecedence()
	p.next()
	right := p.parseExpression(prec)
	return &ast.BinOpExp{Pos: pos, Op: op, LHS: left, RHS: right}
}

// parsePrefix dispatches on the current token to parse a leaf or
// prefix-form expression, then folds in any trailing `:=` assignment or
// `{...}`/`[...]` record/array-literal suffix that only make sense
// immediately after a bare or projected l-value.
func (p *Parser) parsePrefix() ast.Exp {
	switch p.curToken.Type {
	case lexer.NIL:
		e := &ast.NilExp{Pos: p.pos()}
		p.next()
		return e
	case lexer.INT:
		return p.parseIntLiteral()
	case lexer.STRING:
		e := &ast.StringExp{Pos: p.pos(), Value: p.curToken.Literal}
		p.next()
		return e
	case lexer.MINUS:
		return p.parseUnaryMinus()
	case lexer.LPAREN:
		return p.parseParenOrSeq()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.BREAK:
		e := &ast.BreakExp{Pos: p.pos()}
		p.next()
		return e
	case lexer.LET:
		return p.parseLet()
	case lexer.IDENT:
		return p.parseIdentStartingExp()
	default:
		p.errorf("unexpected token %v (%q)", p.curToken.Type, p.curToken.Literal)
		p.next()
		return nil
	}
}

func (p *Parser) parseIntLiteral() ast.Exp {
	pos := p.pos()
	var v int64
	for _, c := range p.curToken.Literal {
		v = v*10 + int64(c-'0')
	}
	p.next()
	return &ast.IntExp{Pos: pos, Value: v}
}

// parseUnaryMinus desugars `-e` to `0 - e`, matching the reference Tiger
// grammar (there is no dedicated unary-minus IR operation in spec.md §4.4).
func (p *Parser) parseUnaryMinus() ast.Exp {
	pos := p.pos()
	p.next()
	operand := p.parseExpression(PREFIX)
	return &ast.BinOpExp{Pos: pos, Op: ast.Minus, LHS: &ast.IntExp{Pos: pos, Value: 0}, RHS: operand}
}

// parseParenOrSeq parses `()`, `(e)`, or `(e1; e2; ...; en)` — a
// parenthesized sequence, Tiger's only statement-grouping construct
// outside of `let`.
func (p *Parser) parseParenOrSeq() ast.Exp {
	pos := p.pos()
	p.next() // consume (
	if p.curToken.Type == lexer.RPAREN {
		p.next()
		return &ast.SeqExp{Pos: pos}
	}
	var seq []ast.Exp
	seq = append(seq, p.parseExpression(LOWEST))
	for p.curToken.Type == lexer.SEMI {
		p.next()
		seq = append(seq, p.parseExpression(LOWEST))
	}
	p.expect(lexer.RPAREN)
	if len(seq) == 1 {
		return seq[0]
	}
	return &ast.SeqExp{Pos: pos, Seq: seq}
}

func (p *Parser) parseIf() ast.Exp {
	pos := p.pos()
	p.next() // if
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.THEN)
	then := p.parseExpression(LOWEST)
	var els ast.Exp
	if p.curToken.Type == lexer.ELSE {
		p.next()
		els = p.parseExpression(LOWEST)
	}
	return &ast.IfExp{Pos: pos, Cond: cond, Then: then, Els: els}
}

func (p *Parser) parseWhile() ast.Exp {
	pos := p.pos()
	p.next() // while
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.DO)
	body := p.parseExpression(LOWEST)
	return &ast.WhileExp{Pos: pos, Cond: cond, Body: body}
}

func (p *Parser) parseFor() ast.Exp {
	pos := p.pos()
	p.next() // for
	name := p.curToken.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.ASSIGN)
	from := p.parseExpression(LOWEST)
	p.expect(lexer.TO)
	to := p.parseExpression(LOWEST)
	p.expect(lexer.DO)
	body := p.parseExpression(LOWEST)
	return &ast.ForExp{Pos: pos, Var: name, From: from, To: to, Body: body}
}

func (p *Parser) parseLet() ast.Exp {
	pos := p.pos()
	p.next() // let
	var decs []ast.Dec
	for p.curToken.Type == lexer.TYPE || p.curToken.Type == lexer.VAR || p.curToken.Type == lexer.FUNCTION {
		decs = append(decs, p.parseDec())
	}
	p.expect(lexer.IN)
	body := p.parseSeqUntil(lexer.END)
	p.expect(lexer.END)
	return &ast.LetExp{Pos: pos, Decs: decs, Body: body}
}

// parseSeqUntil parses a `;`-separated expression sequence up to (but not
// consuming) stop, returning a bare Exp when there is exactly one.
func (p *Parser) parseSeqUntil(stop lexer.TokenType) ast.Exp {
	pos := p.pos()
	if p.curToken.Type == stop {
		return &ast.SeqExp{Pos: pos}
	}
	var seq []ast.Exp
	seq = append(seq, p.parseExpression(LOWEST))
	for p.curToken.Type == lexer.SEMI {
		p.next()
		seq = append(seq, p.parseExpression(LOWEST))
	}
	if len(seq) == 1 {
		return seq[0]
	}
	return &ast.SeqExp{Pos: pos, Seq: seq}
}

// parseIdentStartingExp disambiguates the five expression forms that begin
// with a bare identifier: a function call `f(...)`, a record literal
// `T{...}`, an array literal `T[cap] of init`, a plain l-value read, or an
// assignment `v := e` / `v[i] := e` / `v.f := e`.
func (p *Parser) parseIdentStartingExp() ast.Exp {
	pos := p.pos()
	name := p.curToken.Literal

	if p.peekToken.Type == lexer.LPAREN {
		return p.parseCall(pos, name)
	}
	if p.peekToken.Type == lexer.LBRACE {
		return p.parseRecordExp(pos, name)
	}
	if p.peekToken.Type == lexer.LBRACK {
		if exp := p.tryParseArrayExp(pos, name); exp != nil {
			return exp
		}
	}

	p.next() // consume ident
	v := ast.Var(&ast.SimpleVar{Pos: pos, Name: name})
	for {
		switch p.curToken.Type {
		case lexer.DOT:
			p.next()
			fieldPos := p.pos()
			field := p.curToken.Literal
			p.expect(lexer.IDENT)
			v = &ast.FieldVar{Pos: fieldPos, Var: v, Field: field}
			continue
		case lexer.LBRACK:
			p.next()
			idx := p.parseExpression(LOWEST)
			p.expect(lexer.RBRACK)
			v = &ast.SubscriptVar{Pos: pos, Var: v, Exp: idx}
			continue
		}
		break
	}

	if p.curToken.Type == lexer.ASSIGN {
		p.next()
		rhs := p.parseExpression(LOWEST)
		return &ast.AssignExp{Pos: pos, Var: v, Exp: rhs}
	}
	return &ast.VarExp{Pos: pos, Var: v}
}

func (p *Parser) parseCall(pos ast.Pos, name string) ast.Exp {
	p.next() // ident
	p.next() // (
	var args []ast.Exp
	if p.curToken.Type != lexer.RPAREN {
		args = append(args, p.parseExpression(LOWEST))
		for p.curToken.Type == lexer.COMMA {
			p.next()
			args = append(args, p.parseExpression(LOWEST))
		}
	}
	p.expect(lexer.RPAREN)
	return &ast.CallExp{Pos: pos, Func: name, Args: args}
}

func (p *Parser) parseRecordExp(pos ast.Pos, typeName string) ast.Exp {
	p.next() // ident
	p.next() // {
	var fields []ast.FieldInit
	if p.curToken.Type != lexer.RBRACE {
		fields = append(fields, p.parseFieldInit())
		for p.curToken.Type == lexer.COMMA {
			p.next()
			fields = append(fields, p.parseFieldInit())
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.RecordExp{Pos: pos, TypeName: typeName, Fields: fields}
}

func (p *Parser) parseFieldInit() ast.FieldInit {
	fpos := p.pos()
	name := p.curToken.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.EQ)
	value := p.parseExpression(LOWEST)
	return ast.FieldInit{Pos: fpos, Name: name, Value: value}
}

// tryParseArrayExp speculatively parses `name[cap] of init`. Tiger's
// grammar makes `name[` ambiguous with a subscript only when name denotes a
// variable rather than a type, which is not knowable at parse time without
// symbol information; the reference grammar resolves this by requiring the
// `of` keyword to confirm an array literal, and falling back to treating
// `name[e]` as a subscript expression (handled by the caller) otherwise.
func (p *Parser) tryParseArrayExp(pos ast.Pos, typeName string) ast.Exp {
	savedLexer := *p.l
	savedCur, savedPeek := p.curToken, p.peekToken
	savedErrN := len(p.errors)

	restore := func() {
		*p.l = savedLexer
		p.curToken, p.peekToken = savedCur, savedPeek
		p.errors = p.errors[:savedErrN]
	}

	p.next() // ident
	p.next() // [
	capExp := p.parseExpression(LOWEST)
	if p.curToken.Type != lexer.RBRACK {
		restore()
		return nil
	}
	p.next() // ]
	if p.curToken.Type != lexer.OF {
		restore()
		return nil
	}
	p.next() // of
	init := p.parseExpression(LOWEST)
	return &ast.ArrayExp{Pos: pos, TypeName: typeName, Capacity: capExp, Init: init}
}

func (p *Parser) parseSubscriptOrArrayExp(left ast.Exp) ast.Exp {
	// Reached only when `[` follows an already-parsed expression that is
	// not a bare leading identifier (tryParseArrayExp handles that case);
	// this path exists for defensiveness and simply treats it as an error,
	// since Tiger subscripting is only ever written directly after an
	// l-value, which parseIdentStartingExp already owns.
	p.errorf("unexpected '[' after expression")
	p.next()
	return left
}

func (p *Parser) parseFieldAccess(left ast.Exp) ast.Exp {
	p.errorf("unexpected '.' after expression")
	p.next()
	return left
}

// parseDec dispatches to the declaration parser matching the current
// keyword.
func (p *Parser) parseDec() ast.Dec {
	switch p.curToken.Type {
	case lexer.TYPE:
		return p.parseTypeDec()
	case lexer.VAR:
		return p.parseVarDec()
	case lexer.FUNCTION:
		return p.parseFunctionDec()
	default:
		p.errorf("expected a declaration, got %v", p.curToken.Type)
		p.next()
		return nil
	}
}

func (p *Parser) parseTypeDec() ast.Dec {
	pos := p.pos()
	p.next() // type
	name := p.curToken.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.EQ)

	var spec ast.TypeSpec
	switch p.curToken.Type {
	case lexer.ARRAY:
		p.next()
		p.expect(lexer.OF)
		elem := p.curToken.Literal
		p.expect(lexer.IDENT)
		spec = &ast.ArrayTy{Elem: elem}
	case lexer.LBRACE:
		p.next()
		var fields []ast.FieldDecl
		if p.curToken.Type != lexer.RBRACE {
			fields = append(fields, p.parseFieldDecl())
			for p.curToken.Type == lexer.COMMA {
				p.next()
				fields = append(fields, p.parseFieldDecl())
			}
		}
		p.expect(lexer.RBRACE)
		spec = &ast.RecordTy{Fields: fields}
	case lexer.IDENT:
		target := p.curToken.Literal
		p.next()
		spec = &ast.NameTy{Name: target}
	default:
		p.errorf("expected a type specification, got %v", p.curToken.Type)
	}
	return &ast.TypeDec{Pos: pos, Name: name, Spec: spec}
}

func (p *Parser) parseFieldDecl() ast.FieldDecl {
	fpos := p.pos()
	name := p.curToken.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	typeName := p.curToken.Literal
	p.expect(lexer.IDENT)
	return ast.FieldDecl{Pos: fpos, Name: name, Type: typeName}
}

func (p *Parser) parseVarDec() ast.Dec {
	pos := p.pos()
	p.next() // var
	name := p.curToken.Literal
	p.expect(lexer.IDENT)

	typeName := ""
	if p.curToken.Type == lexer.COLON {
		p.next()
		typeName = p.curToken.Literal
		p.expect(lexer.IDENT)
	}
	p.expect(lexer.ASSIGN)
	init := p.parseExpression(LOWEST)
	return &ast.VarDec{Pos: pos, Name: name, TypeName: typeName, Init: init}
}

func (p *Parser) parseFunctionDec() ast.Dec {
	pos := p.pos()
	p.next() // function
	name := p.curToken.Literal
	p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)

	var params []ast.FieldDecl
	if p.curToken.Type != lexer.RPAREN {
		params = append(params, p.parseFieldDecl())
		for p.curToken.Type == lexer.COMMA {
			p.next()
			params = append(params, p.parseFieldDecl())
		}
	}
	p.expect(lexer.RPAREN)

	returnType := ""
	if p.curToken.Type == lexer.COLON {
		p.next()
		returnType = p.curToken.Literal
		p.expect(lexer.IDENT)
	}
	p.expect(lexer.EQ)
	body := p.parseExpression(LOWEST)
	return &ast.FunctionDec{Pos: pos, Name: name, Params: params, ReturnType: returnType, Body: body}
}
