/*
File    : gomixscript/debug/debug.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package debug collects the human-facing dump routines used by the REPL's
-debug mode and by tests: a token table dump and an expression
pretty-printer. The VM's per-instruction and stack trace lives in
package vm (vm/debug.go); there is no standalone chunk disassembler.
*/
package debug

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akashmaji946/gomixscript/ast"
	"github.com/akashmaji946/gomixscript/token"
)

// PrintTokens renders a token stream as a three-column table: source line
// (collapsed to "|" when unchanged from the previous token), token kind,
// and lexeme.
func PrintTokens(tokens []token.Token) string {
	var b strings.Builder
	b.WriteString("[line]    [TokenType]    [lexeme]\n")
	lastLine := -1
	for _, tok := range tokens {
		lineStr := strconv.Itoa(tok.Line)
		if tok.Line == lastLine {
			lineStr = "|"
		}
		fmt.Fprintf(&b, "%6s      %-11s    %-8s\n", lineStr, string(tok.Kind), tok.Lexeme)
		lastLine = tok.Line
	}
	return b.String()
}

// ExprString renders expr as a single-line parenthesized string: binary
// and unary-minus nodes parenthesize their own position when they appear
// as an operand of a binary or unary node, but not at the
// expression's own top level. Unary-bang never parenthesizes, since "!"
// is never ambiguous with a binary operator the way "-" is with
// subtraction.
func ExprString(expr ast.Expression) string {
	p := &exprPrinter{}
	expr.Accept(p)
	return p.result
}

type exprPrinter struct {
	result string
}

func (p *exprPrinter) render(e ast.Expression) string {
	sub := &exprPrinter{}
	e.Accept(sub)
	return sub.result
}

// wrapped renders e the way it should appear as a child operand: wrapped
// in parentheses if e is a Binary or a unary minus, bare otherwise.
func (p *exprPrinter) wrapped(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Binary:
		return "(" + p.render(n) + ")"
	case *ast.Unary:
		if n.Op == token.MINUS {
			return "(" + p.render(n) + ")"
		}
	}
	return p.render(e)
}

func (p *exprPrinter) VisitBinary(n *ast.Binary) {
	p.result = fmt.Sprintf("%s %s %s", p.wrapped(n.Left), string(n.Op), p.wrapped(n.Right))
}

func (p *exprPrinter) VisitUnary(n *ast.Unary) {
	p.result = string(n.Op) + p.wrapped(n.Operand)
}

func (p *exprPrinter) VisitAssignment(n *ast.Assignment) {
	p.result = fmt.Sprintf("%s = %s", n.Target.Name, p.render(n.Value))
}

func (p *exprPrinter) VisitCall(n *ast.Call) {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = p.render(a)
	}
	p.result = fmt.Sprintf("%s(%s)", n.Callee.Name, strings.Join(args, ", "))
}

func (p *exprPrinter) VisitIdentifier(n *ast.Identifier) {
	p.result = n.Name
}

func (p *exprPrinter) VisitLiteral(n *ast.Literal) {
	p.result = n.Value.String()
}

// The remaining Visitor methods are unreachable from an Expression walk;
// they exist only to satisfy ast.Visitor.
func (p *exprPrinter) VisitProgram(*ast.Program)       {}
func (p *exprPrinter) VisitFunDecl(*ast.FunDecl)       {}
func (p *exprPrinter) VisitVarDecl(*ast.VarDecl)       {}
func (p *exprPrinter) VisitExprStmt(*ast.ExprStmt)     {}
func (p *exprPrinter) VisitIfStmt(*ast.IfStmt)         {}
func (p *exprPrinter) VisitPrintStmt(*ast.PrintStmt)   {}
func (p *exprPrinter) VisitReturnStmt(*ast.ReturnStmt) {}
func (p *exprPrinter) VisitWhileStmt(*ast.WhileStmt)   {}
func (p *exprPrinter) VisitBlock(*ast.Block)           {}
