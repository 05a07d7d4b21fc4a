/*
File    : gomixscript/compiler/compiler.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package compiler implements the single-pass AST-to-bytecode compiler: one
visitor traversal emits opcodes directly, patching forward jumps once
their target offset is known. Variable binding follows a two-tier model:
names declared at the outermost (script) scope compile to named globals
(DEFINE_GLOBAL/GET_GLOBAL/SET_GLOBAL); anything declared inside a block or
a function body compiles to a stack slot resolved at compile time
(GET_LOCAL/SET_LOCAL), mirroring the scope-stack discipline
symtable.SemanticAnalyser already performs over the same AST.
*/
package compiler

import (
	"fmt"

	"github.com/akashmaji946/gomixscript/ast"
	"github.com/akashmaji946/gomixscript/chunk"
	"github.com/akashmaji946/gomixscript/token"
	"github.com/akashmaji946/gomixscript/value"
)

// local is one compile-time-tracked local variable: its name (for
// resolution) and the scope depth it was declared at (so a block exit
// knows which locals it owns).
type local struct {
	name  string
	depth int
}

// frame holds the compile-time state for one function body (or the
// top-level script, which is compiled as if it were a parameterless
// function).
type frame struct {
	chunk      *chunk.Chunk
	locals     []local
	scopeDepth int
}

// Compiler walks a type-checked Program and emits a Chunk. Construct one
// per compile; a Compiler is not reentrant.
type Compiler struct {
	frames []*frame
	err    error
}

// New constructs a Compiler ready to compile one Program.
func New() *Compiler {
	return &Compiler{}
}

// Compile visits prog and returns the resulting top-level Chunk, or the
// first fatal compile-time error encountered (constant pool overflow,
// jump-distance overflow).
func Compile(prog *ast.Program) (*chunk.Chunk, error) {
	c := New()
	c.frames = append(c.frames, &frame{chunk: chunk.New()})
	prog.Accept(c)
	if c.err != nil {
		return nil, c.err
	}
	return c.current().chunk, nil
}

func (c *Compiler) current() *frame { return c.frames[len(c.frames)-1] }

func (c *Compiler) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *Compiler) emit(op OpCode, line int) {
	c.current().chunk.Write(byte(op), line)
}

func (c *Compiler) emitByte(b byte, line int) {
	c.current().chunk.Write(b, line)
}

// emitJump writes op followed by a two-byte placeholder, returning the
// offset of the placeholder so the caller can patch it later.
func (c *Compiler) emitJump(op OpCode, line int) int {
	c.emit(op, line)
	offset := c.current().chunk.Size()
	c.current().chunk.WriteUint16(0xFFFF, line)
	return offset
}

// patchJump overwrites the placeholder at offset with the chunk's
// current size — the target a forward jump lands on.
func (c *Compiler) patchJump(offset int) {
	target := c.current().chunk.Size()
	if target > 0xFFFF {
		c.fail(fmt.Errorf("compiler: jump target %d exceeds 65535", target))
		return
	}
	c.current().chunk.PatchUint16(offset, uint16(target))
}

func (c *Compiler) addConstant(v value.Value, line int) byte {
	idx, err := c.current().chunk.AddConstant(v)
	if err != nil {
		c.fail(err)
		return 0
	}
	return idx
}

// beginScope/endScope track block nesting within the current frame.
// Ending a scope pops every local declared inside it, both from the
// compile-time locals list and, at runtime, off the value stack.
func (c *Compiler) beginScope() { c.current().scopeDepth++ }

func (c *Compiler) endScope(line int) {
	f := c.current()
	f.scopeDepth--
	for len(f.locals) > 0 && f.locals[len(f.locals)-1].depth > f.scopeDepth {
		c.emit(OpPop, line)
		f.locals = f.locals[:len(f.locals)-1]
	}
}

// declareLocal records name as a new local in the current scope,
// returning its stack slot.
func (c *Compiler) declareLocal(name string) byte {
	f := c.current()
	f.locals = append(f.locals, local{name: name, depth: f.scopeDepth})
	return byte(len(f.locals) - 1)
}

// resolveLocal looks up name among the current frame's locals,
// innermost-declared first. Locals of an enclosing function frame are
// never visible — this language has no closures.
func (c *Compiler) resolveLocal(name string) (byte, bool) {
	f := c.current()
	for i := len(f.locals) - 1; i >= 0; i-- {
		if f.locals[i].name == name {
			return byte(i), true
		}
	}
	return 0, false
}

// bindName emits the store sequence for declaring name with its value
// already on top of the stack: DEFINE_GLOBAL at script scope, or nothing
// at local scope (the initializer's value in place on the stack *is* the
// local).
func (c *Compiler) bindName(name string, line int) {
	if c.current().scopeDepth == 0 {
		idx := c.addConstant(value.String(name), line)
		c.emitByte(byte(OpDefineGlobal), line)
		c.emitByte(idx, line)
		return
	}
	c.declareLocal(name)
}

// loadName emits the load sequence for a bare name reference.
func (c *Compiler) loadName(name string, line int) {
	if slot, ok := c.resolveLocal(name); ok {
		c.emit(OpGetLocal, line)
		c.emitByte(slot, line)
		return
	}
	idx := c.addConstant(value.String(name), line)
	c.emit(OpGetGlobal, line)
	c.emitByte(idx, line)
}

// storeName emits the store sequence for an assignment target, with the
// new value already on top of the stack.
func (c *Compiler) storeName(name string, line int) {
	if slot, ok := c.resolveLocal(name); ok {
		c.emit(OpSetLocal, line)
		c.emitByte(slot, line)
		return
	}
	idx := c.addConstant(value.String(name), line)
	c.emit(OpSetGlobal, line)
	c.emitByte(idx, line)
}

func (c *Compiler) VisitProgram(n *ast.Program) {
	for _, decl := range n.Declarations {
		if c.err != nil {
			return
		}
		decl.Accept(c)
	}
}

func (c *Compiler) VisitFunDecl(n *ast.FunDecl) {
	fn := &value.Function{Name: n.Name, Arity: len(n.Parameters)}
	fnFrame := &frame{chunk: chunk.New(), scopeDepth: 1}
	for _, param := range n.Parameters {
		fnFrame.locals = append(fnFrame.locals, local{name: param, depth: 1})
	}
	c.frames = append(c.frames, fnFrame)
	for _, decl := range n.Body.Decls {
		if c.err != nil {
			break
		}
		decl.Accept(c)
	}
	// every body ends with an implicit `return nil`, so control falling off
	// the end still pops the call frame instead of running the VM dry.
	c.emitNilConstant(n.Line)
	c.emit(OpReturn, n.Line)
	c.frames = c.frames[:len(c.frames)-1]
	fn.Chunk = fnFrame.chunk

	idx := c.addConstant(value.Func(fn), n.Line)
	c.emit(OpConstant, n.Line)
	c.emitByte(idx, n.Line)
	c.bindName(n.Name, n.Line)
}

func (c *Compiler) VisitVarDecl(n *ast.VarDecl) {
	if n.Init != nil {
		n.Init.Accept(c)
	} else {
		c.emitNilConstant(n.Line)
	}
	c.bindName(n.Name, n.Line)
}

func (c *Compiler) emitNilConstant(line int) {
	idx := c.addConstant(value.Nil, line)
	c.emit(OpConstant, line)
	c.emitByte(idx, line)
}

func (c *Compiler) VisitExprStmt(n *ast.ExprStmt) {
	n.Expr.Accept(c)
	c.emit(OpPop, 0)
}

func (c *Compiler) VisitIfStmt(n *ast.IfStmt) {
	n.Cond.Accept(c)
	falseJump := c.emitJump(OpJumpIfFalse, 0)
	c.emit(OpPop, 0) // discard the condition before the then-branch
	n.Then.Accept(c)
	elseJump := c.emitJump(OpJump, 0)
	c.patchJump(falseJump)
	c.emit(OpPop, 0) // discard the condition before the else-branch
	if n.Else != nil {
		n.Else.Accept(c)
	}
	c.patchJump(elseJump)
}

func (c *Compiler) VisitPrintStmt(n *ast.PrintStmt) {
	n.Expr.Accept(c)
	c.emit(OpPrint, 0)
}

func (c *Compiler) VisitReturnStmt(n *ast.ReturnStmt) {
	if n.Expr != nil {
		n.Expr.Accept(c)
	} else {
		c.emitNilConstant(n.Line)
	}
	c.emit(OpReturn, n.Line)
}

func (c *Compiler) VisitWhileStmt(n *ast.WhileStmt) {
	loopStart := c.current().chunk.Size()
	n.Cond.Accept(c)
	exitJump := c.emitJump(OpJumpIfFalse, 0)
	c.emit(OpPop, 0) // discard the condition before the body
	n.Body.Accept(c)
	c.emit(OpJump, 0)
	if loopStart > 0xFFFF {
		c.fail(fmt.Errorf("compiler: loop target %d exceeds 65535", loopStart))
		return
	}
	c.current().chunk.WriteUint16(uint16(loopStart), 0)
	c.patchJump(exitJump)
	c.emit(OpPop, 0) // discard the condition once the loop exits
}

func (c *Compiler) VisitBlock(n *ast.Block) {
	c.beginScope()
	for _, decl := range n.Decls {
		if c.err != nil {
			break
		}
		decl.Accept(c)
	}
	c.endScope(0)
}

func (c *Compiler) VisitAssignment(n *ast.Assignment) {
	n.Value.Accept(c)
	c.storeName(n.Target.Name, 0)
}

var binaryOps = map[token.Kind]OpCode{
	token.PLUS:  OpAdd,
	token.MINUS: OpSubtract,
	token.STAR:  OpMultiply,
	token.SLASH: OpDivide,
}

func (c *Compiler) VisitBinary(n *ast.Binary) {
	switch n.Op {
	case token.AND:
		c.compileAnd(n)
		return
	case token.OR:
		c.compileOr(n)
		return
	}
	n.Left.Accept(c)
	n.Right.Accept(c)
	switch n.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH:
		c.emit(binaryOps[n.Op], n.Line)
	case token.EQUAL_EQUAL:
		c.emit(OpEqual, n.Line)
	case token.BANG_EQUAL:
		c.emit(OpEqual, n.Line)
		c.emit(OpNot, n.Line)
	case token.GREATER:
		c.emit(OpGreater, n.Line)
	case token.GREATER_EQUAL:
		c.emit(OpLess, n.Line)
		c.emit(OpNot, n.Line)
	case token.LESS:
		c.emit(OpLess, n.Line)
	case token.LESS_EQUAL:
		c.emit(OpGreater, n.Line)
		c.emit(OpNot, n.Line)
	default:
		c.fail(fmt.Errorf("compiler: unsupported binary operator %s", n.Op))
	}
}

// compileAnd short-circuits: if the left operand is falsey it is left on
// the stack as the result and the right operand is never evaluated.
func (c *Compiler) compileAnd(n *ast.Binary) {
	n.Left.Accept(c)
	endJump := c.emitJump(OpJumpIfFalse, n.Line)
	c.emit(OpPop, n.Line)
	n.Right.Accept(c)
	c.patchJump(endJump)
}

// compileOr short-circuits: if the left operand is truthy it is left on
// the stack as the result and the right operand is never evaluated.
func (c *Compiler) compileOr(n *ast.Binary) {
	n.Left.Accept(c)
	elseJump := c.emitJump(OpJumpIfFalse, n.Line)
	endJump := c.emitJump(OpJump, n.Line)
	c.patchJump(elseJump)
	c.emit(OpPop, n.Line)
	n.Right.Accept(c)
	c.patchJump(endJump)
}

func (c *Compiler) VisitUnary(n *ast.Unary) {
	n.Operand.Accept(c)
	switch n.Op {
	case token.MINUS:
		c.emit(OpNegate, n.Line)
	case token.BANG:
		c.emit(OpNot, n.Line)
	default:
		c.fail(fmt.Errorf("compiler: unsupported unary operator %s", n.Op))
	}
}

func (c *Compiler) VisitCall(n *ast.Call) {
	c.loadName(n.Callee.Name, n.Line)
	for _, arg := range n.Args {
		arg.Accept(c)
	}
	if len(n.Args) > 0xFF {
		c.fail(fmt.Errorf("compiler: too many arguments in call to %s", n.Callee.Name))
		return
	}
	c.emit(OpCall, n.Line)
	c.emitByte(byte(len(n.Args)), n.Line)
}

func (c *Compiler) VisitIdentifier(n *ast.Identifier) {
	c.loadName(n.Name, n.Line)
}

func (c *Compiler) VisitLiteral(n *ast.Literal) {
	idx := c.addConstant(n.Value, n.Line)
	c.emit(OpConstant, n.Line)
	c.emitByte(idx, n.Line)
}
