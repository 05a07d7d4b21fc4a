/*
File    : gomixscript/symtable/analyser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package symtable

import (
	"fmt"

	"github.com/akashmaji946/gomixscript/ast"
)

// SemanticAnalyser walks a Program checking every binding before use: no
// duplicate definitions within a scope, no references to undefined names,
// and every call matching a known function's declared arity. It never
// mutates the AST — compilation re-resolves bindings itself while
// emitting bytecode.
type SemanticAnalyser struct {
	scopes []*SymbolTable
	errors []string
}

// NewSemanticAnalyser constructs an analyser with its outermost (global)
// scope already pushed.
func NewSemanticAnalyser() *SemanticAnalyser {
	a := &SemanticAnalyser{}
	a.pushScope()
	return a
}

// Analyse walks prog, returning every diagnostic recorded, in report
// order. An empty slice means the program is well-formed.
func (a *SemanticAnalyser) Analyse(prog *ast.Program) []string {
	prog.Accept(a)
	return a.errors
}

func (a *SemanticAnalyser) pushScope() { a.scopes = append(a.scopes, NewSymbolTable()) }

// popScope never pops the outermost (global) scope.
func (a *SemanticAnalyser) popScope() {
	if len(a.scopes) <= 1 {
		return
	}
	a.scopes = a.scopes[:len(a.scopes)-1]
}

func (a *SemanticAnalyser) current() *SymbolTable { return a.scopes[len(a.scopes)-1] }

func (a *SemanticAnalyser) error(format string, args ...any) {
	a.errors = append(a.errors, fmt.Sprintf(format, args...))
}

// checkSymbol reports whether name is bound in any enclosing scope, from
// innermost to outermost.
func (a *SemanticAnalyser) checkSymbol(name string) bool {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if a.scopes[i].Contains(name) {
			return true
		}
	}
	return false
}

func (a *SemanticAnalyser) getSymbol(name string) (Symbol, bool) {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if s, ok := a.scopes[i].GetSymbol(name); ok {
			return s, true
		}
	}
	return Symbol{}, false
}

func (a *SemanticAnalyser) VisitProgram(n *ast.Program) {
	for _, decl := range n.Declarations {
		decl.Accept(a)
	}
}

func (a *SemanticAnalyser) VisitFunDecl(n *ast.FunDecl) {
	sym := Symbol{Kind: KindFunction, Function: FunctionInfo{Name: n.Name, ParameterCount: len(n.Parameters)}}
	if !a.current().AddSymbol(n.Name, sym) {
		a.error("%s is already defined", n.Name)
	}
	a.pushScope()
	for _, param := range n.Parameters {
		a.current().AddSymbol(param, Symbol{Kind: KindVariable, Variable: VariableInfo{Name: param}})
	}
	for _, decl := range n.Body.Decls {
		decl.Accept(a)
	}
	a.popScope()
}

func (a *SemanticAnalyser) VisitVarDecl(n *ast.VarDecl) {
	sym := Symbol{Kind: KindVariable, Variable: VariableInfo{Name: n.Name}}
	if !a.current().AddSymbol(n.Name, sym) {
		a.error("%s is already defined", n.Name)
	}
	if n.Init != nil {
		n.Init.Accept(a)
	}
}

func (a *SemanticAnalyser) VisitExprStmt(n *ast.ExprStmt) { n.Expr.Accept(a) }

func (a *SemanticAnalyser) VisitIfStmt(n *ast.IfStmt) {
	n.Cond.Accept(a)
	n.Then.Accept(a)
	if n.Else != nil {
		n.Else.Accept(a)
	}
}

func (a *SemanticAnalyser) VisitPrintStmt(n *ast.PrintStmt) { n.Expr.Accept(a) }

func (a *SemanticAnalyser) VisitReturnStmt(n *ast.ReturnStmt) {
	if n.Expr != nil {
		n.Expr.Accept(a)
	}
}

func (a *SemanticAnalyser) VisitWhileStmt(n *ast.WhileStmt) {
	n.Cond.Accept(a)
	n.Body.Accept(a)
}

func (a *SemanticAnalyser) VisitBlock(n *ast.Block) {
	a.pushScope()
	for _, decl := range n.Decls {
		decl.Accept(a)
	}
	a.popScope()
}

func (a *SemanticAnalyser) VisitAssignment(n *ast.Assignment) {
	if !a.checkSymbol(n.Target.Name) {
		a.error("undefined variable: %s", n.Target.Name)
	}
	n.Value.Accept(a)
}

func (a *SemanticAnalyser) VisitBinary(n *ast.Binary) {
	n.Left.Accept(a)
	n.Right.Accept(a)
}

func (a *SemanticAnalyser) VisitUnary(n *ast.Unary) { n.Operand.Accept(a) }

func (a *SemanticAnalyser) VisitCall(n *ast.Call) {
	sym, ok := a.getSymbol(n.Callee.Name)
	if !ok {
		a.error("Call to undefined function %s", n.Callee.Name)
		for _, arg := range n.Args {
			arg.Accept(a)
		}
		return
	}
	if sym.Kind != KindFunction {
		a.error("%s is not a function", n.Callee.Name)
	} else if len(n.Args) != sym.Function.ParameterCount {
		a.error("Invalid argument count when calling function: %s,\n\tExpected: %d, Actual: %d",
			n.Callee.Name, sym.Function.ParameterCount, len(n.Args))
	}
	for _, arg := range n.Args {
		arg.Accept(a)
	}
}

func (a *SemanticAnalyser) VisitIdentifier(n *ast.Identifier) {
	if !a.checkSymbol(n.Name) {
		a.error("Undefined identifier %s", n.Name)
	}
}

func (a *SemanticAnalyser) VisitLiteral(*ast.Literal) {}
