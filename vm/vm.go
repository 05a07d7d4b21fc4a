/*
File    : gomixscript/vm/vm.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package vm implements the stack machine that executes a compiled Chunk:
a fetch-decode-execute loop over a fixed-size value stack, with an
optional per-instruction debug trace and a small call-frame stack to
support first-class function calls without heap-allocated activation
records.
*/
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/gomixscript/chunk"
	"github.com/akashmaji946/gomixscript/compiler"
	"github.com/akashmaji946/gomixscript/logger"
	"github.com/akashmaji946/gomixscript/value"
)

// MaxStackSize bounds the value stack; pushing past it is a fatal
// runtime error ("Stack Overflow"), matching the original design's fixed
// std::array<Value, 2048> stack.
const MaxStackSize = 2048

// maxCallFrames bounds how deep CALL may nest.
const maxCallFrames = 256

// callFrame is one active function invocation: the chunk it is executing,
// its program counter, and the base stack slot its locals start at.
type callFrame struct {
	chunk    *chunk.Chunk
	pc       int
	stackBase int
}

// VM executes one Chunk to completion or to the first fatal runtime
// error. A VM may run further chunks via LoadChunk, keeping its globals.
type VM struct {
	frames     []callFrame
	stack      [MaxStackSize]value.Value
	sp         int
	globals    map[string]value.Value
	out        io.Writer
	errLogger  *logger.Logger
	debug      *logger.Logger
	stackDirty bool
}

// New constructs a VM ready to run chunk via Interpret. Print output goes
// to os.Stdout unless overridden with SetOutput.
func New(c *chunk.Chunk) *VM {
	return &VM{
		frames:    []callFrame{{chunk: c}},
		globals:   make(map[string]value.Value),
		out:       os.Stdout,
		errLogger: logger.New(logger.LevelError),
	}
}

// SetOutput redirects PRINT output.
func (vm *VM) SetOutput(w io.Writer) { vm.out = w }

// SetDebug attaches a debug logger; when set, Interpret emits one line
// per instruction plus the post-step stack contents, and a header
// summarizing the chunk's constant pool before execution starts.
func (vm *VM) SetDebug(l *logger.Logger) { vm.debug = l }

// LoadChunk resets the VM to run a new top-level chunk from pc 0 while
// keeping its globals intact. The REPL uses this to compile and run one
// line at a time against a single long-lived VM, so a variable or
// function defined on one line stays visible on the next.
func (vm *VM) LoadChunk(c *chunk.Chunk) {
	vm.frames = []callFrame{{chunk: c}}
	vm.sp = 0
}

func (vm *VM) frame() *callFrame { return &vm.frames[len(vm.frames)-1] }

// Interpret runs the VM from pc = 0 of the top-level chunk until the
// chunk ends, a fatal error occurs, or the top-level RETURN is hit.
func (vm *VM) Interpret() error {
	if vm.debug != nil {
		vm.printChunkDebugInfo()
	}
	for len(vm.frames) > 0 {
		f := vm.frame()
		if f.pc >= f.chunk.Size() {
			// The compiler always appends an implicit `return nil`, so a
			// well-formed chunk never runs off its own end mid-call; this is
			// a fallback for whatever chunk reaches here regardless.
			if len(vm.frames) == 1 {
				return nil
			}
			if err := vm.push(value.Nil); err != nil {
				return err
			}
			if err := vm.doReturn(); err != nil {
				return err
			}
			continue
		}
		if vm.debug != nil {
			vm.printStatus()
		}
		if err := vm.step(); err != nil {
			vm.errLogger.Log("[RUNTIME ERROR]" + err.Error())
			return err
		}
		if vm.debug != nil {
			vm.printStack()
		}
	}
	return nil
}

func (vm *VM) nextByte() byte {
	f := vm.frame()
	b := f.chunk.Code[f.pc]
	f.pc++
	return b
}

func (vm *VM) nextUint16() uint16 {
	f := vm.frame()
	v := f.chunk.ReadUint16(f.pc)
	f.pc += 2
	return v
}

func (vm *VM) push(v value.Value) error {
	if vm.sp >= MaxStackSize {
		return fmt.Errorf("Stack Overflow")
	}
	vm.stack[vm.sp] = v
	vm.sp++
	vm.stackDirty = true
	return nil
}

func (vm *VM) pop() (value.Value, error) {
	if vm.sp <= 0 {
		return value.Nil, fmt.Errorf("Stack is empty")
	}
	vm.sp--
	vm.stackDirty = true
	return vm.stack[vm.sp], nil
}

// step executes exactly one instruction, returning a fatal error if one
// occurred.
func (vm *VM) step() error {
	op := compiler.OpCode(vm.nextByte())
	switch op {
	case compiler.OpConstant:
		idx := vm.nextByte()
		return vm.pushErr(vm.frame().chunk.Constants[idx])

	case compiler.OpAdd:
		return vm.binaryArith(op, "addition", func(a, b float64) float64 { return a + b })
	case compiler.OpSubtract:
		return vm.binaryArith(op, "subtraction", func(a, b float64) float64 { return a - b })
	case compiler.OpMultiply:
		return vm.binaryArith(op, "multiplication", func(a, b float64) float64 { return a * b })
	case compiler.OpDivide:
		right, left, err := vm.popTwo()
		if err != nil {
			return err
		}
		if !left.IsNumber() || !right.IsNumber() {
			return fmt.Errorf("Cannot perform division. Invalid types: %s and %s", left.Kind(), right.Kind())
		}
		if right.AsNumber() == 0 {
			return fmt.Errorf("Tried to divide by 0")
		}
		return vm.pushErr(value.Number(left.AsNumber() / right.AsNumber()))

	case compiler.OpNegate:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		if !v.IsNumber() {
			return fmt.Errorf("Cannot perform negation. Invalid type: %s", v.Kind())
		}
		return vm.pushErr(value.Number(-v.AsNumber()))

	case compiler.OpNot:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		return vm.pushErr(value.Bool(v.Falsey()))

	case compiler.OpEqual:
		right, left, err := vm.popTwo()
		if err != nil {
			return err
		}
		return vm.pushErr(value.Bool(left.Equals(right)))

	case compiler.OpGreater:
		right, left, err := vm.popTwo()
		if err != nil {
			return err
		}
		if !left.IsNumber() || !right.IsNumber() {
			return fmt.Errorf("Cannot perform comparison. Invalid types: %s and %s", left.Kind(), right.Kind())
		}
		return vm.pushErr(value.Bool(left.AsNumber() > right.AsNumber()))

	case compiler.OpLess:
		right, left, err := vm.popTwo()
		if err != nil {
			return err
		}
		if !left.IsNumber() || !right.IsNumber() {
			return fmt.Errorf("Cannot perform comparison. Invalid types: %s and %s", left.Kind(), right.Kind())
		}
		return vm.pushErr(value.Bool(left.AsNumber() < right.AsNumber()))

	case compiler.OpPop:
		_, err := vm.pop()
		return err

	case compiler.OpJump:
		target := vm.nextUint16()
		vm.frame().pc = int(target)
		return nil

	case compiler.OpJumpIfFalse:
		// Peeks rather than pops: the compiler emits an explicit POP on
		// whichever side actually consumes the condition, and AND/OR rely on
		// the falsey operand surviving the jump as the short-circuit result.
		target := vm.nextUint16()
		if vm.sp == 0 {
			return fmt.Errorf("Stack is empty")
		}
		if vm.stack[vm.sp-1].Falsey() {
			vm.frame().pc = int(target)
		}
		return nil

	case compiler.OpDefineGlobal:
		idx := vm.nextByte()
		name := vm.frame().chunk.Constants[idx].AsString()
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.globals[name] = v
		return nil

	case compiler.OpGetGlobal:
		idx := vm.nextByte()
		name := vm.frame().chunk.Constants[idx].AsString()
		v, ok := vm.globals[name]
		if !ok {
			return fmt.Errorf("Undefined global variable %s", name)
		}
		return vm.pushErr(v)

	case compiler.OpSetGlobal:
		idx := vm.nextByte()
		name := vm.frame().chunk.Constants[idx].AsString()
		if _, ok := vm.globals[name]; !ok {
			return fmt.Errorf("Undefined global variable %s", name)
		}
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.globals[name] = v
		return vm.pushErr(v)

	case compiler.OpGetLocal:
		slot := vm.nextByte()
		return vm.pushErr(vm.stack[vm.frame().stackBase+int(slot)])

	case compiler.OpSetLocal:
		slot := vm.nextByte()
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.stack[vm.frame().stackBase+int(slot)] = v
		return vm.pushErr(v)

	case compiler.OpPrint:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		fmt.Fprintln(vm.out, v.String())
		return nil

	case compiler.OpCall:
		return vm.call(int(vm.nextByte()))

	case compiler.OpReturn:
		return vm.doReturn()

	default:
		return fmt.Errorf("Invalid OPCODE")
	}
}

func (vm *VM) pushErr(v value.Value) error { return vm.push(v) }

// popTwo pops the right-hand operand, then the left-hand operand, in
// that order — matching every binary opcode's stack discipline.
func (vm *VM) popTwo() (right, left value.Value, err error) {
	right, err = vm.pop()
	if err != nil {
		return
	}
	left, err = vm.pop()
	return
}

func (vm *VM) binaryArith(op compiler.OpCode, verb string, apply func(a, b float64) float64) error {
	right, left, err := vm.popTwo()
	if err != nil {
		return err
	}
	if !left.IsNumber() || !right.IsNumber() {
		return fmt.Errorf("Cannot perform %s. Invalid types: %s and %s", verb, left.Kind(), right.Kind())
	}
	return vm.pushErr(value.Number(apply(left.AsNumber(), right.AsNumber())))
}

// call pushes a new call frame over the function's own chunk, leaving the
// callee and its argCount arguments on the stack: the arguments become the
// new frame's first local slots. Arity is already enforced by
// symtable.SemanticAnalyser; a mismatch here would indicate a bug
// upstream, not user error, so it is reported the same way any other
// fatal runtime condition is.
func (vm *VM) call(argCount int) error {
	if len(vm.frames) >= maxCallFrames {
		return fmt.Errorf("Stack Overflow")
	}
	base := vm.sp - argCount
	if base-1 < 0 {
		return fmt.Errorf("Stack is empty")
	}
	callee := vm.stack[base-1]
	if !callee.IsFunction() {
		return fmt.Errorf("Cannot call a non-function value: %s", callee.Kind())
	}
	fn := callee.AsFunction()
	if fn.Arity != argCount {
		return fmt.Errorf("Invalid argument count when calling function: %s,\n\tExpected: %d, Actual: %d", fn.Name, fn.Arity, argCount)
	}
	fnChunk, ok := fn.Chunk.(*chunk.Chunk)
	if !ok {
		return fmt.Errorf("Cannot call an uncompiled function: %s", fn.Name)
	}
	vm.frames = append(vm.frames, callFrame{chunk: fnChunk, stackBase: base})
	return nil
}

// doReturn pops the frame's return value, tears down its stack region
// (including the callee slot itself), and pushes the value back for the
// caller.
func (vm *VM) doReturn() error {
	result, err := vm.pop()
	if err != nil {
		return err
	}
	f := vm.frames[len(vm.frames)-1]
	vm.frames = vm.frames[:len(vm.frames)-1]
	if len(vm.frames) == 0 {
		// Top-level RETURN halts the script; leave the value for inspection.
		vm.sp = f.stackBase
		return vm.pushErr(result)
	}
	vm.sp = f.stackBase - 1
	return vm.pushErr(result)
}
