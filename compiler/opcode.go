/*
File    : gomixscript/compiler/opcode.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package compiler

// OpCode identifies one VM instruction. Operand sizes are fixed per
// opcode (see OperandBytes), so the disassembler and the VM's fetch loop
// never need to guess how many bytes to consume.
type OpCode byte

const (
	OpConstant OpCode = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNegate
	OpNot
	OpEqual
	OpGreater
	OpLess
	OpPop
	OpJump
	OpJumpIfFalse
	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal
	OpGetLocal
	OpSetLocal
	OpPrint
	OpReturn
	OpCall
)

var names = map[OpCode]string{
	OpConstant:     "CONSTANT",
	OpAdd:          "ADD",
	OpSubtract:     "SUBTRACT",
	OpMultiply:     "MULTIPLY",
	OpDivide:       "DIVIDE",
	OpNegate:       "NEGATE",
	OpNot:          "NOT",
	OpEqual:        "EQUAL",
	OpGreater:      "GREATER",
	OpLess:         "LESS",
	OpPop:          "POP",
	OpJump:         "JUMP",
	OpJumpIfFalse:  "JUMP_IF_FALSE",
	OpDefineGlobal: "DEFINE_GLOBAL",
	OpGetGlobal:    "GET_GLOBAL",
	OpSetGlobal:    "SET_GLOBAL",
	OpGetLocal:     "GET_LOCAL",
	OpSetLocal:     "SET_LOCAL",
	OpPrint:        "PRINT",
	OpReturn:       "RETURN",
	OpCall:         "CALL",
}

// String renders the opcode's mnemonic, used by the disassembler.
func (op OpCode) String() string {
	if name, ok := names[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// OperandBytes reports how many operand bytes follow this opcode in the
// instruction stream: 0, 1 (an index/slot/count), or 2 (a jump target).
func (op OpCode) OperandBytes() int {
	switch op {
	case OpConstant, OpDefineGlobal, OpGetGlobal, OpSetGlobal, OpGetLocal, OpSetLocal, OpCall:
		return 1
	case OpJump, OpJumpIfFalse:
		return 2
	default:
		return 0
	}
}
