/*
File    : gomixscript/vm/debug.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Per-instruction and per-step debug dumps, enabled by SetDebug. Format is
grounded on the original VM's PrintChunkDebugInfo/PrintStatus/PrintStack
trio: a header listing the constant pool, then one row per instruction
with its offset, opcode name, combined operand value, and the post-step
stack contents.
*/
package vm

import (
	"fmt"
	"strings"

	"github.com/akashmaji946/gomixscript/compiler"
)

func (vm *VM) printChunkDebugInfo() {
	var b strings.Builder
	b.WriteString("VM DEBUG INFO\nConstants: [")
	constants := vm.frame().chunk.Constants
	for i, c := range constants {
		b.WriteString(c.String())
		if i+1 != len(constants) {
			b.WriteString(", ")
		}
	}
	b.WriteString("]\n[OFFSET]   [OP CODE]     [OPERAND]   [STACK]\n")
	vm.debug.Write([]byte(b.String()))
}

func (vm *VM) printStatus() {
	f := vm.frame()
	op := compiler.OpCode(f.chunk.Code[f.pc])
	offsetStr := fmt.Sprintf("%06d", f.pc)

	var operand uint64
	n := op.OperandBytes()
	for i := 0; i < n; i++ {
		operand |= uint64(f.chunk.Code[f.pc+1+i]) << (8 * i)
	}

	line := fmt.Sprintf("%s     %-14s%-12d", offsetStr, op.String(), operand)
	vm.debug.Write([]byte(line))
}

func (vm *VM) printStack() {
	if !vm.stackDirty {
		vm.debug.Write([]byte(" |\n"))
		return
	}
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < vm.sp; i++ {
		b.WriteString(vm.stack[i].String())
		if i+1 != vm.sp {
			b.WriteString(", ")
		}
	}
	b.WriteString("]\n")
	vm.debug.Write([]byte(b.String()))
	vm.stackDirty = false
}
