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
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// newErrorFrame builds a minimal Frame carrying only err, for the cases in
// ApplyMessage that fail before a State (and its code load) is ever
// constructed — a StackDepthLimit or InsufficientFunds failure happens
// "pre-execution": no opcode runs, so no CodeStream is needed.
func newErrorFrame(evm *EVM, message *Message, err error) *Frame {
	return &Frame{
		evm:              evm,
		Message:          message,
		AccountsToDelete: make(map[common.Address]common.Address),
		Error:            err,
	}
}

// breakOpcodes are the terminal opcodes that end a frame's interpreter
// loop: RETURN, STOP, SUICIDE.
var breakOpcodes = map[OpCode]bool{
	STOP:    true,
	RETURN:  true,
	SUICIDE: true,
}

// ExecuteVM runs the fetch-decode-dispatch loop over frame's CodeStream
// until a terminal opcode, a VMError, or the code runs out (CodeStream
// yields STOP past its end). On exit it commits or discards frame's
// pending effects per the scoped commit/abort discipline: clean exit
// commits account deletions, a VMError exit records frame.Error and
// abandons them.
func ExecuteVM(evm *EVM, frame *Frame) *Frame {
	log.Debug("executing", "gas", frame.Message.Gas, "from", frame.Message.Sender, "to", frame.Message.Account, "value", frame.Message.Value)

	for {
		pc := frame.State.Code.PC()
		opcode := frame.State.Code.Next()
		log.Trace("opcode", "op", Mnemonic(opcode), "pc", frame.State.Code.PC())

		if tracer := evm.Config.Tracer; tracer != nil {
			tracer.CaptureOpcode(pc, opcode, frame.State.GasMeter.GasRemaining())
		}

		opcodeFn := frame.GetOpcodeFn(opcode)

		if err := opcodeFn(frame); err != nil {
			if vmErr, ok := err.(VMError); ok {
				frame.Error = vmErr
				break
			}
			// Non-VM errors are programming bugs and are not caught.
			panic(err)
		}

		if breakOpcodes[opcode] {
			break
		}
	}

	if frame.Error == nil {
		frame.commit()
	}
	return frame
}

// ApplyMessage is the core's single recursive message-application
// primitive: it snapshots storage, enforces the depth limit, moves any
// transferred value, builds a frame, runs it, and reverts storage to the
// snapshot if the frame errored.
func ApplyMessage(evm *EVM, message *Message) *Frame {
	snapshot := evm.Snapshot()

	if message.Depth >= maxCallDepth {
		return newErrorFrame(evm, message, newStackDepthLimit("Stack depth limit reached"))
	}

	if message.Value.Sign() > 0 {
		senderBalance := evm.Storage.GetBalance(message.Sender)
		if senderBalance.Lt(message.Value) {
			err := newInsufficientFunds("Insufficient funds: %s < %s", senderBalance, message.Value)
			return newErrorFrame(evm, message, err)
		}

		accountBalance := evm.Storage.GetBalance(message.Account)

		newSenderBalance := new(uint256.Int).Sub(senderBalance, message.Value)
		newAccountBalance := new(uint256.Int).Add(accountBalance, message.Value)

		evm.Storage.SetBalance(message.Sender, newSenderBalance)
		evm.Storage.SetBalance(message.Account, newAccountBalance)
	}

	frame := evm.SetupEnvironment(message)
	result := ExecuteVM(evm, frame)

	if result.Error != nil {
		evm.Revert(snapshot)
	}
	return result
}
