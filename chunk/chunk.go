/*
File    : gomixscript/chunk/chunk.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package chunk implements the bytecode container the compiler emits into and
a VM executes: a flat byte buffer of opcodes and operands, plus a
constants pool. Jump offsets are two-byte placeholders emitted at compile
time and patched once the jump target is known, so a single AST traversal
is enough to emit forward jumps.
*/
package chunk

import (
	"fmt"

	"github.com/akashmaji946/gomixscript/value"
)

// maxConstants bounds the constants pool: a one-byte operand can only
// index 256 distinct constants.
const maxConstants = 256

// Chunk is the compiled bytecode of one function body or of the top-level
// script: its instruction stream, the pool of values its CONSTANT and
// global-name instructions index into, and a source line per byte.
type Chunk struct {
	Code      []byte
	Constants []value.Value
	// Lines[i] is the source line recorded for Code[i]. Runtime error
	// messages do not include it.
	Lines []int
}

// New constructs an empty Chunk.
func New() *Chunk {
	return &Chunk{}
}

// Write appends a single byte (an opcode or a raw operand byte), tagging
// it with the source line it was compiled from.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteUint16 appends a two-byte little-endian operand, used by jump
// instructions and other wide operands.
func (c *Chunk) WriteUint16(v uint16, line int) {
	c.Write(byte(v), line)
	c.Write(byte(v>>8), line)
}

// AddConstant interns constant into the pool and returns its index. It
// errors once the pool would exceed what a one-byte operand can address.
func (c *Chunk) AddConstant(v value.Value) (byte, error) {
	for i, existing := range c.Constants {
		if existing.Equals(v) {
			return byte(i), nil
		}
	}
	if len(c.Constants) >= maxConstants {
		return 0, fmt.Errorf("chunk: too many constants in one chunk (max %d)", maxConstants)
	}
	c.Constants = append(c.Constants, v)
	return byte(len(c.Constants) - 1), nil
}

// Size returns the number of bytes emitted so far — equivalently, the
// offset the next instruction will be written at.
func (c *Chunk) Size() int {
	return len(c.Code)
}

// PatchUint16 overwrites the two-byte operand at offset with v. Used to
// back-patch a forward jump once its target offset is known.
func (c *Chunk) PatchUint16(offset int, v uint16) {
	c.Code[offset] = byte(v)
	c.Code[offset+1] = byte(v >> 8)
}

// ReadUint16 reads the two-byte little-endian value at offset.
func (c *Chunk) ReadUint16(offset int) uint16 {
	return uint16(c.Code[offset]) | uint16(c.Code[offset+1])<<8
}
