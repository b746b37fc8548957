// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeStreamNextPastEndYieldsStop(t *testing.T) {
	c := NewCodeStream(nil)
	require.Equal(t, STOP, c.Next())
	require.Equal(t, STOP, c.Next(), "repeated reads past end keep yielding STOP")
}

func TestCodeStreamSeekRestores(t *testing.T) {
	c := NewCodeStream([]byte{byte(ADD), byte(ADD), byte(STOP)})
	c.Next()
	require.Equal(t, uint64(1), c.PC())

	restore := c.Seek(2)
	require.Equal(t, uint64(2), c.PC())
	restore()
	require.Equal(t, uint64(1), c.PC())
}

func TestCodeStreamSetPCClampsToLength(t *testing.T) {
	c := NewCodeStream([]byte{byte(STOP)})
	c.SetPC(99)
	require.Equal(t, uint64(1), c.PC())
}

func TestIsValidOpcodeDetectsPushImmediate(t *testing.T) {
	// PUSH1 0x05, JUMP
	code := []byte{byte(PUSH1), 0x05, byte(JUMP)}
	c := NewCodeStream(code)

	require.True(t, c.IsValidOpcode(0), "the PUSH1 opcode byte itself is valid")
	require.False(t, c.IsValidOpcode(1), "byte 1 is PUSH1's immediate operand")
	require.True(t, c.IsValidOpcode(2), "byte 2 is JUMP, not inside any PUSH")
}

func TestIsValidOpcodeAcrossPush32Immediate(t *testing.T) {
	code := make([]byte, 34)
	code[0] = byte(PUSH32)
	code[33] = byte(STOP)
	c := NewCodeStream(code)

	require.True(t, c.IsValidOpcode(0))
	for i := uint64(1); i <= 32; i++ {
		require.Falsef(t, c.IsValidOpcode(i), "byte %d is inside the PUSH32 immediate", i)
	}
	require.True(t, c.IsValidOpcode(33))
}

func TestIsValidOpcodeOnEmptyCodeIsVacuouslyTrue(t *testing.T) {
	c := NewCodeStream(nil)
	require.True(t, c.IsValidOpcode(0))
}

func TestIsValidOpcodeRecognizesPushByteAsDataNotAsOpcode(t *testing.T) {
	// PUSH1 0x60 (the pushed byte looks like a PUSH1 opcode, but it's data)
	code := []byte{byte(PUSH1), byte(PUSH1), byte(STOP)}
	c := NewCodeStream(code)

	require.True(t, c.IsValidOpcode(0))
	require.False(t, c.IsValidOpcode(1), "byte 1 is data, even though it reads as PUSH1")
	require.True(t, c.IsValidOpcode(2))
}
