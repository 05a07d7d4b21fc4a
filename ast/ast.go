/*
File    : gomixscript/ast/ast.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package ast defines the gomixscript abstract syntax tree: a
// discriminated tree of declarations, statements, and expressions built
// by the parser, walked by the semantic analyser and the compiler.
//
// Every node implements Accept, dispatching to one method of a Visitor
// per concrete node type — the classic double-dispatch visitor, translated
// from the originating C++ design's virtual accept/visit pair into a Go
// interface. Every node owns its children as plain struct fields; Go's
// garbage collector makes exclusive ownership a non-issue, so no reference
// counting or explicit destructors are needed the way the C++ original
// requires. Identifier names are plain Go strings sliced from the source
// buffer — Go strings already share backing storage on sub-slicing, so
// this is a borrow, not a copy, exactly mirroring the C++ std::string_view
// design the original uses.
package ast

import "github.com/akashmaji946/gomixscript/token"
import "github.com/akashmaji946/gomixscript/value"

// Visitor is implemented once per AST consumer (the semantic analyser, the
// compiler, and debug's pretty-printer), each with its own per-node-type
// behavior.
type Visitor interface {
	VisitProgram(*Program)
	VisitFunDecl(*FunDecl)
	VisitVarDecl(*VarDecl)
	VisitExprStmt(*ExprStmt)
	VisitIfStmt(*IfStmt)
	VisitPrintStmt(*PrintStmt)
	VisitReturnStmt(*ReturnStmt)
	VisitWhileStmt(*WhileStmt)
	VisitBlock(*Block)
	VisitAssignment(*Assignment)
	VisitBinary(*Binary)
	VisitUnary(*Unary)
	VisitCall(*Call)
	VisitIdentifier(*Identifier)
	VisitLiteral(*Literal)
}

// Node is implemented by every AST node.
type Node interface {
	Accept(Visitor)
}

// Declaration is implemented by every node valid at declaration position:
// FunDecl, VarDecl, or any Statement (a Statement is itself a Declaration,
// per spec.md's "Declaration is one of: FunDecl, VarDecl, or a Statement").
type Declaration interface {
	Node
	declaration()
}

// Statement is implemented by every node valid at statement position.
type Statement interface {
	Declaration
	statement()
}

// Expression is implemented by every expression node.
type Expression interface {
	Node
	expression()
}

// Program is the root of every AST: an ordered sequence of declarations.
type Program struct {
	Declarations []Declaration
}

func (n *Program) Accept(v Visitor) { v.VisitProgram(n) }

// FunDecl declares a named function: `fun name(params) { body }`.
type FunDecl struct {
	Name       string
	Parameters []string
	Body       *Block
	Line       int
}

func (n *FunDecl) Accept(v Visitor) { v.VisitFunDecl(n) }
func (n *FunDecl) declaration()     {}

// VarDecl declares a variable, with an optional initializer:
// `var name = init;` or `var name;`.
type VarDecl struct {
	Name string
	Init Expression // nil if no initializer was given
	Line int
}

func (n *VarDecl) Accept(v Visitor) { v.VisitVarDecl(n) }
func (n *VarDecl) declaration()     {}

// ExprStmt is an expression evaluated for its side effects; its value is discarded.
type ExprStmt struct {
	Expr Expression
}

func (n *ExprStmt) Accept(v Visitor) { v.VisitExprStmt(n) }
func (n *ExprStmt) declaration()     {}
func (n *ExprStmt) statement()       {}

// IfStmt is `if (cond) then [else elseBranch]`. Else is nil when absent.
type IfStmt struct {
	Cond Expression
	Then Statement
	Else Statement
}

func (n *IfStmt) Accept(v Visitor) { v.VisitIfStmt(n) }
func (n *IfStmt) declaration()     {}
func (n *IfStmt) statement()       {}

// PrintStmt is `print expr;`.
type PrintStmt struct {
	Expr Expression
}

func (n *PrintStmt) Accept(v Visitor) { v.VisitPrintStmt(n) }
func (n *PrintStmt) declaration()     {}
func (n *PrintStmt) statement()       {}

// ReturnStmt is `return [expr];`. Expr is nil for a bare return.
type ReturnStmt struct {
	Expr Expression
	Line int
}

func (n *ReturnStmt) Accept(v Visitor) { v.VisitReturnStmt(n) }
func (n *ReturnStmt) declaration()     {}
func (n *ReturnStmt) statement()       {}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Cond Expression
	Body Statement
}

func (n *WhileStmt) Accept(v Visitor) { v.VisitWhileStmt(n) }
func (n *WhileStmt) declaration()     {}
func (n *WhileStmt) statement()       {}

// Block is `{ decls... }`: a nested sequence of declarations introducing a
// new lexical scope.
type Block struct {
	Decls []Declaration
}

func (n *Block) Accept(v Visitor) { v.VisitBlock(n) }
func (n *Block) declaration()     {}
func (n *Block) statement()       {}

// Assignment is `target = value`. Target is always an Identifier — the
// parser rejects any other assignment target at parse time.
type Assignment struct {
	Target *Identifier
	Value  Expression
}

func (n *Assignment) Accept(v Visitor) { v.VisitAssignment(n) }
func (n *Assignment) expression()      {}

// Binary is a binary operator expression. Op is one of
// + - * / == != < <= > >= and or.
type Binary struct {
	Op    token.Kind
	Left  Expression
	Right Expression
	Line  int
}

func (n *Binary) Accept(v Visitor) { v.VisitBinary(n) }
func (n *Binary) expression()      {}

// Unary is a prefix operator expression. Op is one of - !.
type Unary struct {
	Op      token.Kind
	Operand Expression
	Line    int
}

func (n *Unary) Accept(v Visitor) { v.VisitUnary(n) }
func (n *Unary) expression()      {}

// Call is a function call `callee(args...)`. Callees other than plain
// identifiers are out of scope per spec.md §4.2/§9.
type Call struct {
	Callee *Identifier
	Args   []Expression
	Line   int
}

func (n *Call) Accept(v Visitor) { v.VisitCall(n) }
func (n *Call) expression()      {}

// Identifier is a bare name reference, borrowed from the source buffer.
type Identifier struct {
	Name string
	Line int
}

func (n *Identifier) Accept(v Visitor) { v.VisitIdentifier(n) }
func (n *Identifier) expression()      {}

// Literal is a constant value baked in at parse time: a number, string,
// boolean, or nil.
type Literal struct {
	Value value.Value
	Line  int
}

func (n *Literal) Accept(v Visitor) { v.VisitLiteral(n) }
func (n *Literal) expression()      {}
