/*
File    : gomixscript/parser/parser_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/gomixscript/debug"
)

func parseExprString(t *testing.T, src string) string {
	t.Helper()
	p := New(src)
	expr := p.ParseExpression()
	require.False(t, p.HadError(), "unexpected parse errors: %v", p.Errors())
	return debug.ExprString(expr)
}

func TestExpressionPrecedenceAndAssociativity(t *testing.T) {
	cases := []struct {
		name, src, want string
	}{
		{"mul binds tighter than add", "a + b * c", "a + (b * c)"},
		{"add binds tighter than comparison", "a + b > c", "(a + b) > c"},
		{"and/or around comparisons", "a > b and c < d", "(a > b) and (c < d)"},
		{"equality around comparisons", "a >= b == c <= d", "(a >= b) == (c <= d)"},
		{"or binds loosest of the two", "a and b or c", "(a and b) or c"},
		{"unary minus parenthesized as operand", "-a * b", "(-a) * b"},
		{"deep mixed precedence", "a + b * c > d and e != f", "((a + (b * c)) > d) and (e != f)"},
		{"assignment is right-associative-looking, lowest precedence", "a = b + c * d", "a = b + (c * d)"},
		{"grouping overrides precedence", "a * (b + c) / d", "(a * (b + c)) / d"},
		{"comparison and or mixed", "a + b < c or d >= e", "((a + b) < c) or (d >= e)"},
		{"unary bang unwrapped, unary minus wrapped", "!a + b > -c", "(!a + b) > (-c)"},
		{"long chain", "a + b * c - d / e and f == g or h", "(((a + (b * c)) - (d / e)) and (f == g)) or h"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := parseExprString(t, c.src)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestAssignmentRejectsNonIdentifierTarget(t *testing.T) {
	p := New("1 + 2 = 3")
	p.ParseExpression()
	require.True(t, p.HadError())
	assert.Contains(t, p.Errors()[0].Message, "Can only assign values to identifiers")
}

func TestCallRejectsNonIdentifierCallee(t *testing.T) {
	p := New("(1 + 2)(3)")
	p.ParseExpression()
	require.True(t, p.HadError())
}

func TestGenerateASTParsesVarAndPrintAndIf(t *testing.T) {
	src := `
	var x = 1;
	if (x < 2) {
		print x;
	} else {
		print 0;
	}
	`
	p := New(src)
	prog, err := p.GenerateAST()
	require.NoError(t, err)
	require.Len(t, prog.Declarations, 2)
}

func TestGenerateASTParsesFunctionDeclaration(t *testing.T) {
	src := `
	fun add(a, b) {
		return a + b;
	}
	print add(1, 2);
	`
	p := New(src)
	prog, err := p.GenerateAST()
	require.NoError(t, err)
	require.Len(t, prog.Declarations, 2)
}

func TestGenerateASTReportsMultipleErrorsViaSynchronize(t *testing.T) {
	src := `
	var ;
	var ;
	`
	p := New(src)
	_, err := p.GenerateAST()
	require.Error(t, err)
	assert.GreaterOrEqual(t, len(p.Errors()), 2)
}

func TestWhileLoopParses(t *testing.T) {
	src := `
	var i = 0;
	while (i < 10) {
		i = i + 1;
	}
	`
	p := New(src)
	prog, err := p.GenerateAST()
	require.NoError(t, err)
	require.Len(t, prog.Declarations, 2)
}
