/*
File    : gomixscript/compiler/compiler_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/gomixscript/chunk"
	"github.com/akashmaji946/gomixscript/parser"
	"github.com/akashmaji946/gomixscript/value"
)

func opNames(code []byte) []OpCode {
	var ops []OpCode
	for i := 0; i < len(code); {
		op := OpCode(code[i])
		ops = append(ops, op)
		i += 1 + op.OperandBytes()
	}
	return ops
}

func compileSrc(t *testing.T, src string) []byte {
	t.Helper()
	p := parser.New(src)
	prog, err := p.GenerateAST()
	require.NoError(t, err, "fixture must parse cleanly: %v", p.Errors())
	c, err := Compile(prog)
	require.NoError(t, err)
	return c.Code
}

func TestExpressionStatementLeavesStackBalanced(t *testing.T) {
	ops := opNames(compileSrc(t, "1 + 2;"))
	assert.Equal(t, []OpCode{OpConstant, OpConstant, OpAdd, OpPop}, ops)
}

func TestNotEqualSynthesizesEqualThenNot(t *testing.T) {
	ops := opNames(compileSrc(t, "1 != 2;"))
	assert.Equal(t, []OpCode{OpConstant, OpConstant, OpEqual, OpNot, OpPop}, ops)
}

func TestGreaterEqualSynthesizesLessThenNot(t *testing.T) {
	ops := opNames(compileSrc(t, "1 >= 2;"))
	assert.Equal(t, []OpCode{OpConstant, OpConstant, OpLess, OpNot, OpPop}, ops)
}

func TestGlobalVarDeclEmitsDefineGlobal(t *testing.T) {
	ops := opNames(compileSrc(t, "var x = 1;"))
	assert.Contains(t, ops, OpDefineGlobal)
}

func TestLocalVarDeclDoesNotEmitDefineGlobal(t *testing.T) {
	ops := opNames(compileSrc(t, "{ var x = 1; }"))
	assert.NotContains(t, ops, OpDefineGlobal)
	assert.Contains(t, ops, OpPop) // scope exit reclaims the local's slot
}

func TestWhileLoopEmitsBackwardJump(t *testing.T) {
	ops := opNames(compileSrc(t, "var i = 0; while (i < 3) { i = i + 1; }"))
	assert.Contains(t, ops, OpJump)
	assert.Contains(t, ops, OpJumpIfFalse)
}

func TestFunctionBodyCompilesIntoItsOwnChunk(t *testing.T) {
	p := parser.New("fun f() { return 1; } print f();")
	prog, err := p.GenerateAST()
	require.NoError(t, err)
	c, err := Compile(prog)
	require.NoError(t, err)

	var fn *value.Function
	for _, constant := range c.Constants {
		if constant.IsFunction() {
			fn = constant.AsFunction()
		}
	}
	require.NotNil(t, fn, "function value must be interned as a constant")
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, 0, fn.Arity)
}

func findFunction(t *testing.T, c *chunk.Chunk) *value.Function {
	t.Helper()
	for _, constant := range c.Constants {
		if constant.IsFunction() {
			return constant.AsFunction()
		}
	}
	t.Fatal("no function constant found")
	return nil
}

func TestFunctionWithoutReturnEmitsImplicitNilReturn(t *testing.T) {
	p := parser.New("fun f() { print 1; }")
	prog, err := p.GenerateAST()
	require.NoError(t, err)
	c, err := Compile(prog)
	require.NoError(t, err)

	fn := findFunction(t, c)
	fnChunk, ok := fn.Chunk.(*chunk.Chunk)
	require.True(t, ok)

	ops := opNames(fnChunk.Code)
	require.NotEmpty(t, ops)
	assert.Equal(t, []OpCode{OpConstant, OpReturn}, ops[len(ops)-2:], "body must fall through into an implicit return nil")
}

func TestAndCompilesToShortCircuitJump(t *testing.T) {
	ops := opNames(compileSrc(t, "print true and false;"))
	assert.Contains(t, ops, OpJumpIfFalse)
	assert.NotContains(t, ops, OpJump)
}

func TestOrCompilesToShortCircuitJump(t *testing.T) {
	ops := opNames(compileSrc(t, "print true or false;"))
	assert.Contains(t, ops, OpJumpIfFalse)
	assert.Contains(t, ops, OpJump)
}
