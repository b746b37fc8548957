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

// GasCostFn prices a variable-cost opcode. SSTORE and CALL consult one of
// these directly from their own logic rather than through the flat
// GasCosts table, exactly as the spec's §4.10 describes.
type GasCostFn func(frame *Frame) (uint64, error)

// Config carries the in-process knobs the core actually has once CLI/RPC
// and fork-activation machinery are out of scope (see SPEC_FULL.md Ambient
// Stack): a debug-log hook in the teacher's EVMLogger idiom.
type Config struct {
	Tracer EVMLogger
}

// EVMLogger is the minimal debug-log hook this core exposes, the same
// shape as the teacher's core/vm.EVMLogger but trimmed to the one signal
// this spec keeps in scope: opcode dispatch.
type EVMLogger interface {
	CaptureOpcode(pc uint64, op OpCode, gasRemaining int64)
}

// EVM is the top-level host façade: it holds the storage handle and chain
// context, and exposes opcode-table/gas-cost-table lookup plus
// snapshot/revert delegation. It is never reused across unrelated
// executions and is not safe for concurrent use — this module executes
// single-threaded and deterministic by design (spec §1, §5).
type EVM struct {
	Storage  Storage
	ChainEnv *ChainEnvironment

	Opcodes  OpcodeTable
	GasCosts GasCostTable

	sstoreGasFn GasCostFn
	callGasFn   GasCostFn

	Config Config
}

// OpcodeTable maps opcode byte to its base logic function. An opcode
// absent from the table is InvalidOpcode at dispatch (see
// Frame.GetOpcodeFn).
type OpcodeTable map[OpCode]OpcodeFn

// GasCostTable maps opcode byte to its constant base gas cost. Opcodes
// whose true cost is variable (SSTORE, CALL, memory-touching ops) still
// have a base entry here — their logic additionally calls ConsumeGas
// directly using GetSstoreGasFn/GetCallGasFn or State.ExtendMemory.
type GasCostTable map[OpCode]uint64

// NewEVM constructs a Host over storage and chainEnv, using opcodes and
// gasCosts as the dense dispatch/pricing tables. sstoreGasFn and
// callGasFn back the two special-cased pricing functions SSTORE and CALL
// logic consult directly.
func NewEVM(storage Storage, chainEnv *ChainEnvironment, opcodes OpcodeTable, gasCosts GasCostTable, sstoreGasFn, callGasFn GasCostFn) *EVM {
	return &EVM{
		Storage:     storage,
		ChainEnv:    chainEnv,
		Opcodes:     opcodes,
		GasCosts:    gasCosts,
		sstoreGasFn: sstoreGasFn,
		callGasFn:   callGasFn,
	}
}

// NewDefaultEVM wires storage and chainEnv to this module's reference
// opcode/gas tables (DefaultOpcodeTable, DefaultGasCostTable, GasSStore,
// GasCall) — the configuration every end-to-end scenario in this module's
// own tests runs against.
func NewDefaultEVM(storage Storage, chainEnv *ChainEnvironment) *EVM {
	return NewEVM(storage, chainEnv, DefaultOpcodeTable(), DefaultGasCostTable(), GasSStore, GasCall)
}

// SetupEnvironment constructs the Frame for message — the host's frame
// factory, consulted by ApplyMessage.
func (evm *EVM) SetupEnvironment(message *Message) *Frame {
	return NewFrame(evm, evm.ChainEnv, message)
}

// Snapshot delegates to storage.
func (evm *EVM) Snapshot() int {
	return evm.Storage.Snapshot()
}

// Revert delegates to storage.
func (evm *EVM) Revert(token int) {
	evm.Storage.Revert(token)
}

// GetBaseOpcodeFn looks up opcode's base logic function.
func (evm *EVM) GetBaseOpcodeFn(opcode OpCode) (OpcodeFn, bool) {
	fn, ok := evm.Opcodes[opcode]
	return fn, ok
}

// GetOpcodeGasCost looks up opcode's constant base gas cost.
func (evm *EVM) GetOpcodeGasCost(opcode OpCode) uint64 {
	return evm.GasCosts[opcode]
}

// GetSstoreGasFn returns the pricing function SSTORE logic consults.
func (evm *EVM) GetSstoreGasFn() GasCostFn {
	return evm.sstoreGasFn
}

// GetCallGasFn returns the pricing function CALL logic consults.
func (evm *EVM) GetCallGasFn() GasCostFn {
	return evm.callGasFn
}
