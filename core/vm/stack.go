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

import "github.com/holiman/uint256"

// stackLimit is the maximum number of items a Stack may hold.
const stackLimit = 1024

// Word is a stack value: a big-endian byte string of at most 32 bytes.
// Words are value-copied on push/dup so a popped word never aliases the
// slot it came from.
type Word []byte

// Uint256 interprets w as a big-endian unsigned integer.
func (w Word) Uint256() *uint256.Int {
	return new(uint256.Int).SetBytes(w)
}

// WordFromUint256 encodes v as a minimal big-endian Word.
func WordFromUint256(v *uint256.Int) Word {
	b := v.Bytes()
	out := make(Word, len(b))
	copy(out, b)
	return out
}

// Stack is a bounded LIFO of Words.
type Stack struct {
	values []Word
}

// NewStack returns an empty Stack.
func NewStack() *Stack {
	return &Stack{}
}

// Len returns the number of items currently on the stack.
func (s *Stack) Len() int {
	return len(s.values)
}

// Push copies value onto the top of the stack.
func (s *Stack) Push(value Word) error {
	if len(value) > 32 {
		return newValidationError("word exceeds 32 bytes: %d", len(value))
	}
	if len(s.values)+1 > stackLimit {
		return newFullStack("Stack limit reached")
	}
	cp := make(Word, len(value))
	copy(cp, value)
	s.values = append(s.values, cp)
	return nil
}

// Pop removes and returns the top of the stack.
func (s *Stack) Pop() (Word, error) {
	if len(s.values) == 0 {
		return nil, newInsufficientStack("Popping from empty stack")
	}
	top := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return top, nil
}

// Peek returns the n-th element from the top (0-indexed) without removing
// it, for gas functions that must price an opcode from its operands before
// the opcode's own logic pops them.
func (s *Stack) Peek(n int) (Word, error) {
	if n < 0 || len(s.values) < n+1 {
		return nil, newInsufficientStack("Insufficient stack items to peek %d", n)
	}
	return s.values[len(s.values)-1-n], nil
}

// Swap exchanges the top of the stack with the element n positions below
// it (1 <= n <= 16).
func (s *Stack) Swap(n int) error {
	if n < 1 || len(s.values) < n+1 {
		return newInsufficientStack("Insufficient stack items for SWAP%d", n)
	}
	top := len(s.values) - 1
	s.values[top], s.values[top-n] = s.values[top-n], s.values[top]
	return nil
}

// Dup pushes a value-copy of the n-th element from the top (1 <= n <= 16).
func (s *Stack) Dup(n int) error {
	if n < 1 || len(s.values) < n {
		return newInsufficientStack("Insufficient stack items for DUP%d", n)
	}
	return s.Push(s.values[len(s.values)-n])
}
