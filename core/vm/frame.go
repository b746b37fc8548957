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

// LogEntry is one pending log record proposed by a Frame.
type LogEntry struct {
	Account common.Address
	Topics  []common.Hash
	Data    []byte
}

// Frame is the per-invocation execution environment: it binds a Message, a
// ChainEnvironment, and a State to the host EVM, and owns its child frames,
// pending logs, and pending account deletions until it exits.
type Frame struct {
	evm      *EVM
	ChainEnv *ChainEnvironment
	Message  *Message
	State    *State

	SubFrames []*Frame

	Output []byte
	Error  error

	Logs             []LogEntry
	AccountsToDelete map[common.Address]common.Address
}

// NewFrame constructs a Frame for message, loading the callee's code from
// the host's storage and seeding a fresh State with message.Gas.
func NewFrame(evm *EVM, chainEnv *ChainEnvironment, message *Message) *Frame {
	code := evm.Storage.GetCode(message.Account)
	return &Frame{
		evm:              evm,
		ChainEnv:         chainEnv,
		Message:          message,
		State:            NewState(code, message.Gas),
		AccountsToDelete: make(map[common.Address]common.Address),
	}
}

// Execute runs the interpreter loop over this frame.
func (f *Frame) Execute() *Frame {
	return ExecuteVM(f.evm, f)
}

// ApplyMessage runs message as a child invocation, records the resulting
// sub-frame, and returns it — the entrypoint CALL/CREATE-family opcode
// logic uses to recurse.
func (f *Frame) ApplyMessage(message *Message) *Frame {
	sub := ApplyMessage(f.evm, message)
	f.SubFrames = append(f.SubFrames, sub)
	return sub
}

// CreateMessage builds a child Message inheriting gas price and origin
// from this frame, with sender set to this frame's account and depth one
// greater than this frame's.
func (f *Frame) CreateMessage(gas uint64, to common.Address, value *uint256.Int, data []byte) (*Message, error) {
	return NewMessage(
		gas,
		f.Message.GasPrice,
		f.Message.Origin,
		to,
		f.Message.Account,
		value,
		data,
		f.Message.Depth+1,
	)
}

// GetOpcodeFn resolves the dispatch function for opcode: out-of-range or
// unmapped bytes always fail InvalidOpcode; everything else is wrapped by
// the gas meter with its registered base cost.
func (f *Frame) GetOpcodeFn(opcode OpCode) OpcodeFn {
	baseFn, hasLogic := f.evm.Opcodes[opcode]
	if !hasLogic {
		return func(*Frame) error {
			return newInvalidOpcode("Invalid opcode 0x%x", byte(opcode))
		}
	}
	gasCost := f.evm.GasCosts[opcode]
	return f.State.GasMeter.WrapOpcodeFn(opcode, baseFn, gasCost)
}

// RegisterAccountForDeletion records that this frame's account should, on
// clean exit, transfer its balance to beneficiary and be deleted. An
// account may not be registered twice within one frame.
func (f *Frame) RegisterAccountForDeletion(beneficiary common.Address) error {
	if _, exists := f.AccountsToDelete[f.Message.Account]; exists {
		return newValidationError("account %s already registered for deletion in this frame", f.Message.Account)
	}
	f.AccountsToDelete[f.Message.Account] = beneficiary
	return nil
}

// AddLogEntry appends a pending log entry to this frame.
func (f *Frame) AddLogEntry(account common.Address, topics []common.Hash, data []byte) {
	f.Logs = append(f.Logs, LogEntry{Account: account, Topics: topics, Data: data})
}

// commit applies this frame's pending account deletions to storage. It is
// called only on a frame's clean (non-VMError) exit; see ExecuteVM.
func (f *Frame) commit() {
	for account, beneficiary := range f.AccountsToDelete {
		log.Info("deleting account", "account", account, "beneficiary", beneficiary)

		f.evm.Storage.DeleteStorage(account)
		f.evm.Storage.DeleteCode(account)

		balance := f.evm.Storage.GetBalance(account)
		f.evm.Storage.SetBalance(account, new(uint256.Int))

		beneficiaryBalance := f.evm.Storage.GetBalance(beneficiary)
		f.evm.Storage.SetBalance(beneficiary, new(uint256.Int).Add(beneficiaryBalance, balance))
	}
}
