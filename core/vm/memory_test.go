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

func TestMemoryExtendRoundsUpToWord(t *testing.T) {
	m := NewMemory()
	require.Equal(t, 0, m.Len())

	m.Extend(0, 1)
	require.Equal(t, 32, m.Len())

	m.Extend(0, 32)
	require.Equal(t, 32, m.Len(), "extending within already-addressable range must not grow further")

	m.Extend(33, 1)
	require.Equal(t, 64, m.Len())
}

func TestMemoryExtendIsNoopOnZeroSize(t *testing.T) {
	m := NewMemory()
	m.Extend(100, 0)
	require.Equal(t, 0, m.Len())
}

func TestMemoryWriteReadRoundTrip(t *testing.T) {
	m := NewMemory()
	m.Extend(0, 32)

	value := make([]byte, 32)
	value[31] = 0x2a

	m.Write(0, 32, value)
	require.Equal(t, value, m.Read(0, 32))
}

func TestMemoryWritePastExtentPanics(t *testing.T) {
	m := NewMemory()
	require.Panics(t, func() {
		m.Write(0, 32, make([]byte, 32))
	})
}

func TestMemoryWriteLengthMismatchPanics(t *testing.T) {
	m := NewMemory()
	m.Extend(0, 32)
	require.Panics(t, func() {
		m.Write(0, 32, make([]byte, 31))
	})
}
