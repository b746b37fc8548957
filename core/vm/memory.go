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

// ceil32 rounds n up to the next multiple of 32.
func ceil32(n uint64) uint64 {
	if n%32 == 0 {
		return n
	}
	return n + 32 - n%32
}

// Memory is zero-extended, byte-addressed scratch space. Its length is
// always a multiple of 32 and only ever grows within a frame's lifetime.
type Memory struct {
	store []byte
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Len returns the current length in bytes.
func (m *Memory) Len() int {
	return len(m.store)
}

// Extend grows memory so that [start, start+size) is addressable. It is a
// no-op when size is zero, and never shrinks or truncates existing bytes.
// The gas cost of growth is priced by the caller (see State.ExtendMemory);
// Extend itself is gas-free.
func (m *Memory) Extend(start, size uint64) {
	if size == 0 {
		return
	}
	newSize := ceil32(start + size)
	if newSize <= uint64(len(m.store)) {
		return
	}
	m.store = append(m.store, make([]byte, newSize-uint64(len(m.store)))...)
}

// Write overwrites the size bytes of memory starting at start with value.
// The caller must have already extended memory to cover [start, start+size);
// a violation here is a programming error, not a VM-reportable one.
func (m *Memory) Write(start, size uint64, value []byte) {
	if uint64(len(value)) != size {
		panic(newValidationError("memory write: len(value)=%d != size=%d", len(value), size))
	}
	if start+size > uint64(len(m.store)) {
		panic(newValidationError("memory write out of bounds: %d+%d > %d", start, size, len(m.store)))
	}
	copy(m.store[start:start+size], value)
}

// Read returns a copy of the size bytes of memory starting at start. The
// caller must have already extended memory to cover the range.
func (m *Memory) Read(start, size uint64) []byte {
	if start+size > uint64(len(m.store)) {
		panic(newValidationError("memory read out of bounds: %d+%d > %d", start, size, len(m.store)))
	}
	out := make([]byte, size)
	copy(out, m.store[start:start+size])
	return out
}
