/*
File    : gomixscript/chunk/chunk_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/gomixscript/value"
)

func TestWriteAndSize(t *testing.T) {
	c := New()
	c.Write(1, 0)
	c.Write(2, 0)
	assert.Equal(t, 2, c.Size())
}

func TestAddConstantReturnsSequentialIndices(t *testing.T) {
	c := New()
	i0, err := c.AddConstant(value.Number(1))
	require.NoError(t, err)
	i1, err := c.AddConstant(value.Number(2))
	require.NoError(t, err)
	assert.Equal(t, byte(0), i0)
	assert.Equal(t, byte(1), i1)
}

func TestAddConstantOverflows(t *testing.T) {
	c := New()
	for i := 0; i < 256; i++ {
		_, err := c.AddConstant(value.Number(float64(i)))
		require.NoError(t, err)
	}
	_, err := c.AddConstant(value.Number(256))
	require.Error(t, err)
}

func TestUint16RoundTripIsLittleEndian(t *testing.T) {
	c := New()
	c.Write(0xAB, 0) // leading opcode byte
	c.WriteUint16(0x1234, 0)
	assert.Equal(t, byte(0x34), c.Code[1])
	assert.Equal(t, byte(0x12), c.Code[2])
	assert.Equal(t, uint16(0x1234), c.ReadUint16(1))
}

func TestPatchUint16Overwrites(t *testing.T) {
	c := New()
	offset := c.Size()
	c.WriteUint16(0xFFFF, 0)
	c.PatchUint16(offset, 42)
	assert.Equal(t, uint16(42), c.ReadUint16(offset))
}
