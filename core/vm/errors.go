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

import "fmt"

// ValidationError reports a structural precondition violation: a bad
// address length, a non-uint256 integer, a malformed opcode byte. It is a
// programming error at the boundary, not something a frame recovers from.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// VMError is the family of errors a Frame captures and recovers from at its
// scope boundary. Every concrete error below embeds vmError so a single
// type switch at the interpreter loop suffices.
type VMError interface {
	error
	isVMError()
}

type vmError struct {
	msg string
}

func (e *vmError) Error() string { return e.msg }
func (e *vmError) isVMError()    {}

func newVMError(format string, args ...interface{}) *vmError {
	return &vmError{msg: fmt.Sprintf(format, args...)}
}

// OutOfGas is raised when the gas meter is exhausted, either at
// ConsumeGas entry or immediately after a deduction.
type OutOfGas struct{ *vmError }

func newOutOfGas(format string, args ...interface{}) *OutOfGas {
	return &OutOfGas{newVMError(format, args...)}
}

// InsufficientStack is raised by Pop/Dup/Swap on a too-shallow stack.
type InsufficientStack struct{ *vmError }

func newInsufficientStack(format string, args ...interface{}) *InsufficientStack {
	return &InsufficientStack{newVMError(format, args...)}
}

// FullStack is raised by Push past the 1024-element limit.
type FullStack struct{ *vmError }

func newFullStack(format string, args ...interface{}) *FullStack {
	return &FullStack{newVMError(format, args...)}
}

// StackDepthLimit is raised when a message's call depth reaches 1024.
type StackDepthLimit struct{ *vmError }

func newStackDepthLimit(format string, args ...interface{}) *StackDepthLimit {
	return &StackDepthLimit{newVMError(format, args...)}
}

// InvalidOpcode is raised on an undefined opcode byte.
type InvalidOpcode struct{ *vmError }

func newInvalidOpcode(format string, args ...interface{}) *InvalidOpcode {
	return &InvalidOpcode{newVMError(format, args...)}
}

// InvalidJumpDestination is raised when JUMP/JUMPI targets a position that
// is not a valid, JUMPDEST-marked opcode.
type InvalidJumpDestination struct{ *vmError }

func newInvalidJumpDestination(format string, args ...interface{}) *InvalidJumpDestination {
	return &InvalidJumpDestination{newVMError(format, args...)}
}

// Revert is raised by the REVERT opcode: execution stops and storage
// unwinds exactly as any other VMError, but the frame's Output still
// carries the bytes the callee asked to return.
type Revert struct{ *vmError }

func newRevert(format string, args ...interface{}) *Revert {
	return &Revert{newVMError(format, args...)}
}

// InsufficientFunds is raised in ApplyMessage when a value transfer
// exceeds the sender's balance. The original source raises this without an
// explicit import; this module defines it as a first-class VMError.
type InsufficientFunds struct{ *vmError }

func newInsufficientFunds(format string, args ...interface{}) *InsufficientFunds {
	return &InsufficientFunds{newVMError(format, args...)}
}
