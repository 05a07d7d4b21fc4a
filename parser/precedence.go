/*
File    : gomixscript/parser/precedence.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/akashmaji946/gomixscript/ast"

// Precedence orders binding strength for Pratt parsing. Higher binds
// tighter; parsePrecedence(p) keeps consuming infix operators whose
// precedence is >= p.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment       // =
	PrecOr               // or
	PrecAnd              // and
	PrecEquality         // == !=
	PrecComparison       // < > <= >=
	PrecTerm             // + -
	PrecFactor           // * /
	PrecUnary            // ! -
	PrecCall             // ()
	PrecPrimary
)

// prefixFn parses a prefix expression starting at the already-advanced
// current token (p.prev holds it).
type prefixFn func(p *Parser) ast.Expression

// infixFn parses an infix expression given the already-parsed left operand.
type infixFn func(p *Parser, left ast.Expression) ast.Expression

// parseRule pairs a token kind with its optional prefix parser, optional
// infix parser, and the precedence used when the token appears infix.
type parseRule struct {
	prefix     prefixFn
	infix      infixFn
	precedence Precedence
}
