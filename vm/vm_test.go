/*
File    : gomixscript/vm/vm_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/gomixscript/compiler"
	"github.com/akashmaji946/gomixscript/parser"
	"github.com/akashmaji946/gomixscript/symtable"
)

// run compiles and executes src end to end, returning whatever was
// printed and any fatal runtime error.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	p := parser.New(src)
	prog, err := p.GenerateAST()
	require.NoError(t, err, "fixture must parse cleanly: %v", p.Errors())

	errs := symtable.NewSemanticAnalyser().Analyse(prog)
	require.Empty(t, errs, "fixture must be semantically valid")

	c, err := compiler.Compile(prog)
	require.NoError(t, err, "fixture must compile cleanly")

	var out bytes.Buffer
	machine := New(c)
	machine.SetOutput(&out)
	err = machine.Interpret()
	return out.String(), err
}

func TestArithmeticAndEquality(t *testing.T) {
	out, err := run(t, "print 1 + 2 + 3 == 3 - 2 - 1;")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestDivideByZeroHalts(t *testing.T) {
	_, err := run(t, "print 1 / 0;")
	require.Error(t, err)
	assert.Equal(t, "Tried to divide by 0", err.Error())
}

func TestStringConcatenationIsNotSupported(t *testing.T) {
	_, err := run(t, `print "a" + "b";`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot perform addition")
}

func TestGlobalVariableRoundTrip(t *testing.T) {
	out, err := run(t, "var a = 1; a = a + 1; print a;")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestLocalVariableRoundTrip(t *testing.T) {
	out, err := run(t, "{ var a = 1; a = a + 1; print a; }")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestIfElseTakesCorrectBranch(t *testing.T) {
	out, err := run(t, `
	var x = 5;
	if (x > 3) {
		print "big";
	} else {
		print "small";
	}
	`)
	require.NoError(t, err)
	assert.Equal(t, "big\n", out)
}

func TestWhileLoopAccumulates(t *testing.T) {
	out, err := run(t, `
	var i = 0;
	var sum = 0;
	while (i < 5) {
		sum = sum + i;
		i = i + 1;
	}
	print sum;
	`)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestFunctionCallReturnsValue(t *testing.T) {
	out, err := run(t, `
	fun add(a, b) {
		return a + b;
	}
	print add(1, 2);
	`)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestNegationAndNot(t *testing.T) {
	out, err := run(t, "print -5; print !false; print !!true;")
	require.NoError(t, err)
	assert.Equal(t, "-5\ntrue\ntrue\n", out)
}

func TestComparisonSynthesizedOperators(t *testing.T) {
	out, err := run(t, "print 1 != 2; print 1 >= 1; print 2 <= 1;")
	require.NoError(t, err)
	assert.Equal(t, "true\ntrue\nfalse\n", out)
}

func TestFunctionFallsThroughWithoutReturn(t *testing.T) {
	out, err := run(t, `
	fun f() {
		print 1;
	}
	f();
	print 2;
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
}

func TestFunctionFallingThroughYieldsNil(t *testing.T) {
	out, err := run(t, `
	fun f() {
		print "hi";
	}
	print f();
	`)
	require.NoError(t, err)
	assert.Equal(t, "hi\nnil\n", out)
}

func TestAndShortCircuitsWithoutEvaluatingRight(t *testing.T) {
	out, err := run(t, `
	fun boom() {
		print "should not run";
		return true;
	}
	print false and boom();
	print true and false;
	print 1 and 2;
	`)
	require.NoError(t, err)
	assert.Equal(t, "false\nfalse\n2\n", out)
}

func TestOrShortCircuitsWithoutEvaluatingRight(t *testing.T) {
	out, err := run(t, `
	fun boom() {
		print "should not run";
		return false;
	}
	print true or boom();
	print false or true;
	print nil or 2;
	`)
	require.NoError(t, err)
	assert.Equal(t, "true\ntrue\n2\n", out)
}
