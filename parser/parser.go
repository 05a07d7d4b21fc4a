/*
File    : gomixscript/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package parser implements a Pratt parser (top-down operator precedence
parser) for gomixscript, driving the lexer on demand and building an AST.

Grammar:

	declaration → funDecl | varDecl | statement
	funDecl     → "fun" IDENT "(" params? ")" block
	params      → IDENT ("," IDENT)*
	varDecl     → "var" IDENT ("=" expression)? ";"
	statement   → ifStmt | printStmt | returnStmt | whileStmt | block | exprStmt
	ifStmt      → "if" "(" expression ")" statement ("else" statement)?
	printStmt   → "print" expression ";"
	returnStmt  → "return" expression? ";"
	whileStmt   → "while" "(" expression ")" statement
	block       → "{" declaration* "}"
	exprStmt    → expression ";"

Expressions are parsed by a Pratt table keyed by token kind, with a
panic-mode error-recovery scheme: the first error in a statement suppresses
further diagnostics until Synchronize reaches the next statement boundary.
*/
package parser

import (
	"strconv"

	"github.com/akashmaji946/gomixscript/ast"
	"github.com/akashmaji946/gomixscript/lexer"
	"github.com/akashmaji946/gomixscript/token"
	"github.com/akashmaji946/gomixscript/value"
)

// parseFloat parses a NUMBER lexeme. The lexer only ever produces lexemes
// matching its own digit grammar, so a parse failure here would indicate a
// lexer bug, not bad user input — it degrades to 0 rather than panicking.
func parseFloat(lexeme string) float64 {
	n, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0
	}
	return n
}

// Parser holds parsing state: the lexer it pulls tokens from, one token of
// lookbehind (prev) and lookahead (cur), and panic-mode bookkeeping.
type Parser struct {
	lex       *lexer.Lexer
	prev      token.Token
	cur       token.Token
	panicMode bool
	hadError  bool
	errors    ParseErrors
	rules     map[token.Kind]parseRule
}

// New constructs a Parser over source. Call GenerateAST to parse a whole
// program, or ParseExpression to parse a single expression (used by tests).
func New(source string) *Parser {
	p := &Parser{lex: lexer.New(source)}
	p.prev = token.New(token.ERROR, "", 0)
	p.cur = token.New(token.ERROR, "", 0)
	p.rules = p.buildRules()
	return p
}

// HadError reports whether any diagnostic was recorded during parsing.
func (p *Parser) HadError() bool { return p.hadError }

// Errors returns every diagnostic recorded during parsing.
func (p *Parser) Errors() []ParseError { return p.errors.List() }

// GenerateAST drives the lexer to completion and returns the parsed
// Program. If any diagnostic was recorded, the returned error is the
// accumulated ParseErrors; compilation should not proceed when it is
// non-nil (§7 propagation policy).
func (p *Parser) GenerateAST() (*ast.Program, error) {
	p.advance()
	prog := &ast.Program{}
	for p.cur.Kind != token.END {
		decl := p.parseDeclaration()
		if decl != nil {
			prog.Declarations = append(prog.Declarations, decl)
		}
	}
	if p.hadError {
		return prog, &p.errors
	}
	return prog, nil
}

// ParseExpression parses a single expression from the parser's source,
// exposed for tests; the REPL parses every line with GenerateAST.
func (p *Parser) ParseExpression() ast.Expression {
	p.advance()
	return p.parsePrecedence(PrecAssignment)
}

// --- control primitives -----------------------------------------------

// advance shifts cur into prev, then pulls tokens from the lexer until a
// non-ERROR token is obtained, reporting every ERROR token it skips as a
// lexical diagnostic.
func (p *Parser) advance() {
	p.prev = p.cur
	for {
		p.cur = p.lex.ReadNextToken()
		if p.cur.Kind != token.ERROR {
			break
		}
		p.errorAt(p.cur, p.cur.Lexeme, true)
	}
}

// check reports whether cur has the given kind.
func (p *Parser) check(kind token.Kind) bool {
	return p.cur.Kind == kind
}

// match advances and returns true if cur has the given kind, otherwise
// leaves the parser untouched and returns false.
func (p *Parser) match(kind token.Kind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

// consume requires cur to have the given kind, advancing past it; if not,
// it records msg as a diagnostic at the current token.
func (p *Parser) consume(kind token.Kind, msg string) {
	if p.check(kind) {
		p.advance()
		return
	}
	p.errorAt(p.cur, msg, false)
}

// errorAt records a diagnostic. While panicMode is set, further
// diagnostics are suppressed until Synchronize clears it — this is what
// keeps one malformed token from cascading into a wall of errors.
func (p *Parser) errorAt(tok token.Token, msg string, lexical bool) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true
	p.errors.Add(ParseError{Message: msg, Line: tok.Line, Lexical: lexical})
}

func (p *Parser) errorAtCurrent(msg string) {
	p.errorAt(p.cur, msg, false)
}

// synchronize consumes tokens until a likely statement boundary: past a
// ';', or at the start of a declaration/statement keyword. Clears
// panicMode so subsequent errors are reported again.
func (p *Parser) synchronize() {
	p.panicMode = false
	for p.cur.Kind != token.END {
		if p.prev.Kind == token.SEMICOLON {
			return
		}
		switch p.cur.Kind {
		case token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// --- declarations & statements ------------------------------------------

func (p *Parser) parseDeclaration() ast.Declaration {
	var decl ast.Declaration
	switch {
	case p.match(token.FUN):
		decl = p.parseFunDecl()
	case p.match(token.VAR):
		decl = p.parseVarDecl()
	default:
		decl = p.parseStatement()
	}
	if p.panicMode {
		p.synchronize()
	}
	return decl
}

func (p *Parser) parseFunDecl() ast.Declaration {
	line := p.prev.Line
	name := p.parseIdentifierName("Expected function name")
	p.consume(token.LEFT_PAREN, "Expected '(' after function name")

	var params []string
	if !p.check(token.RIGHT_PAREN) {
		for {
			params = append(params, p.parseIdentifierName("Expected parameter name"))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expected ')' after parameters")
	p.consume(token.LEFT_BRACE, "Expected '{' before function body")
	body := p.parseBlock()

	return &ast.FunDecl{Name: name, Parameters: params, Body: body, Line: line}
}

func (p *Parser) parseVarDecl() ast.Declaration {
	line := p.prev.Line
	name := p.parseIdentifierName("Expected a variable name")
	var init ast.Expression
	if p.match(token.EQUAL) {
		init = p.parsePrecedence(PrecAssignment)
	}
	p.consume(token.SEMICOLON, "Expected ; after variable declaration.")
	return &ast.VarDecl{Name: name, Init: init, Line: line}
}

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.match(token.IF):
		return p.parseIfStmt()
	case p.match(token.PRINT):
		return p.parsePrintStmt()
	case p.match(token.RETURN):
		return p.parseReturnStmt()
	case p.match(token.WHILE):
		return p.parseWhileStmt()
	case p.check(token.LEFT_BRACE):
		p.advance()
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseIfStmt() ast.Statement {
	p.consume(token.LEFT_PAREN, "Expected '(' after 'if'")
	cond := p.parsePrecedence(PrecAssignment)
	p.consume(token.RIGHT_PAREN, "Expected ')' after if condition")
	then := p.parseStatement()
	var elseBranch ast.Statement
	if p.match(token.ELSE) {
		elseBranch = p.parseStatement()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) parsePrintStmt() ast.Statement {
	expr := p.parsePrecedence(PrecAssignment)
	p.consume(token.SEMICOLON, "Expected ; after value.")
	return &ast.PrintStmt{Expr: expr}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	line := p.prev.Line
	var expr ast.Expression
	if !p.check(token.SEMICOLON) {
		expr = p.parsePrecedence(PrecAssignment)
	}
	p.consume(token.SEMICOLON, "Expected ; after return value.")
	return &ast.ReturnStmt{Expr: expr, Line: line}
}

func (p *Parser) parseWhileStmt() ast.Statement {
	p.consume(token.LEFT_PAREN, "Expected '(' after 'while'")
	cond := p.parsePrecedence(PrecAssignment)
	p.consume(token.RIGHT_PAREN, "Expected ')' after condition")
	body := p.parseStatement()
	return &ast.WhileStmt{Cond: cond, Body: body}
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{}
	for !p.check(token.RIGHT_BRACE) && !p.check(token.END) {
		decl := p.parseDeclaration()
		if decl != nil {
			block.Decls = append(block.Decls, decl)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expected '}' after block.")
	return block
}

func (p *Parser) parseExprStmt() ast.Statement {
	expr := p.parsePrecedence(PrecAssignment)
	p.consume(token.SEMICOLON, "Expected ; after expression.")
	return &ast.ExprStmt{Expr: expr}
}

// parseIdentifierName consumes an IDENTIFIER token and returns its lexeme.
func (p *Parser) parseIdentifierName(msg string) string {
	p.consume(token.IDENTIFIER, msg)
	return p.prev.Lexeme
}

// --- Pratt expression parsing --------------------------------------------

// parsePrecedence implements the core Pratt binding rule: advance one
// token, invoke its prefix rule (error if none), then keep consuming
// infix operators whose precedence is >= prec.
func (p *Parser) parsePrecedence(prec Precedence) ast.Expression {
	p.advance()
	rule := p.getRule(p.prev.Kind)
	if rule.prefix == nil {
		p.errorAt(p.prev, "Expected expression", false)
		return nil
	}
	left := rule.prefix(p)

	for prec <= p.getRule(p.cur.Kind).precedence {
		p.advance()
		infixRule := p.getRule(p.prev.Kind).infix
		left = infixRule(p, left)
	}
	return left
}

func (p *Parser) getRule(kind token.Kind) parseRule {
	if rule, ok := p.rules[kind]; ok {
		return rule
	}
	return parseRule{precedence: PrecNone}
}

func (p *Parser) buildRules() map[token.Kind]parseRule {
	rules := map[token.Kind]parseRule{
		token.TRUE:   {prefix: parseLiteral},
		token.FALSE:  {prefix: parseLiteral},
		token.NIL:    {prefix: parseLiteral},
		token.STRING: {prefix: parseLiteral},
		token.NUMBER: {prefix: parseLiteral},

		token.IDENTIFIER: {prefix: parseIdentifier},

		token.EQUAL: {infix: parseAssignment, precedence: PrecAssignment},

		token.OR:  {infix: parseBinary, precedence: PrecOr},
		token.AND: {infix: parseBinary, precedence: PrecAnd},

		token.EQUAL_EQUAL: {infix: parseBinary, precedence: PrecEquality},
		token.BANG_EQUAL:  {infix: parseBinary, precedence: PrecEquality},

		token.GREATER:       {infix: parseBinary, precedence: PrecComparison},
		token.GREATER_EQUAL: {infix: parseBinary, precedence: PrecComparison},
		token.LESS:          {infix: parseBinary, precedence: PrecComparison},
		token.LESS_EQUAL:    {infix: parseBinary, precedence: PrecComparison},

		token.PLUS:  {infix: parseBinary, precedence: PrecTerm},
		token.MINUS: {prefix: parseUnary, infix: parseBinary, precedence: PrecTerm},

		token.STAR:  {infix: parseBinary, precedence: PrecFactor},
		token.SLASH: {infix: parseBinary, precedence: PrecFactor},

		token.BANG: {prefix: parseUnary},

		token.LEFT_PAREN: {prefix: parseGrouping, infix: parseCall, precedence: PrecCall},
	}
	return rules
}

func parseLiteral(p *Parser) ast.Expression {
	tok := p.prev
	line := tok.Line
	switch tok.Kind {
	case token.TRUE:
		return &ast.Literal{Value: value.Bool(true), Line: line}
	case token.FALSE:
		return &ast.Literal{Value: value.Bool(false), Line: line}
	case token.NIL:
		return &ast.Literal{Value: value.Nil, Line: line}
	case token.STRING:
		// Lexeme includes the surrounding quotes.
		s := tok.Lexeme
		if len(s) >= 2 {
			s = s[1 : len(s)-1]
		}
		return &ast.Literal{Value: value.String(s), Line: line}
	case token.NUMBER:
		n := parseFloat(tok.Lexeme)
		return &ast.Literal{Value: value.Number(n), Line: line}
	default:
		return nil
	}
}

func parseIdentifier(p *Parser) ast.Expression {
	return &ast.Identifier{Name: p.prev.Lexeme, Line: p.prev.Line}
}

func parseUnary(p *Parser) ast.Expression {
	op := p.prev
	operand := p.parsePrecedence(PrecUnary)
	return &ast.Unary{Op: op.Kind, Operand: operand, Line: op.Line}
}

func parseBinary(p *Parser, left ast.Expression) ast.Expression {
	op := p.prev
	rule := p.getRule(op.Kind)
	right := p.parsePrecedence(rule.precedence + 1)
	return &ast.Binary{Op: op.Kind, Left: left, Right: right, Line: op.Line}
}

func parseAssignment(p *Parser, left ast.Expression) ast.Expression {
	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.errorAt(p.prev, "Can only assign values to identifiers", false)
		return left
	}
	// Right-associative: parse the RHS at the same precedence.
	rhs := p.parsePrecedence(PrecAssignment)
	return &ast.Assignment{Target: ident, Value: rhs}
}

func parseGrouping(p *Parser) ast.Expression {
	expr := p.parsePrecedence(PrecAssignment)
	p.consume(token.RIGHT_PAREN, "Expected ')' after expression.")
	return expr
}

func parseCall(p *Parser, left ast.Expression) ast.Expression {
	line := p.prev.Line
	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.errorAt(p.prev, "Callees other than plain identifiers are not supported", false)
	}
	var args []ast.Expression
	if !p.check(token.RIGHT_PAREN) {
		for {
			args = append(args, p.parsePrecedence(PrecAssignment))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expected ')' after arguments.")
	return &ast.Call{Callee: ident, Args: args, Line: line}
}
