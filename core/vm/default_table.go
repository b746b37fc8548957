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

import "github.com/ethervm/corevm/params"

// DefaultOpcodeTable returns the reference opcode subset this module
// ships, keyed the way other_examples' OpTable construction does it.
func DefaultOpcodeTable() OpcodeTable {
	t := OpcodeTable{
		STOP:    opStop,
		ADD:     opAdd,
		MUL:     opMul,
		SUB:     opSub,
		DIV:     opDiv,
		MOD:     opMod,
		LT:      opLt,
		GT:      opGt,
		EQ:      opEq,
		ISZERO:  opIszero,
		AND:     opAnd,
		OR:      opOr,
		XOR:     opXor,
		NOT:     opNot,
		POP:     opPop,
		MLOAD:   opMload,
		MSTORE:  opMstore,
		MSTORE8: opMstore8,
		SLOAD:   opSload,
		SSTORE:  opSstore,
		JUMP:    opJump,
		JUMPI:   opJumpi,
		PC:      opPc,
		MSIZE:   opMsize,
		GAS:     opGas,

		JUMPDEST: opJumpdest,

		CALLDATAL:  opCallDataLoad,
		CALLDATASZ: opCallDataSize,

		CALL:    opCall,
		RETURN:  opReturn,
		REVERT:  opRevert,
		SUICIDE: opSuicide,
	}

	for i := 0; i < 32; i++ {
		t[PUSH1+OpCode(i)] = makePush(i + 1)
	}
	for i := 0; i < 16; i++ {
		t[DUP1+OpCode(i)] = makeDup(i + 1)
		t[SWAP1+OpCode(i)] = makeSwap(i + 1)
	}
	for i := 0; i < 5; i++ {
		t[LOG0+OpCode(i)] = makeLog(i)
	}

	return t
}

// DefaultGasCostTable returns the flat base gas cost for every opcode in
// DefaultOpcodeTable, grounded in params.protocol_params and the
// fixedGas(...) entries of other_examples' OpTable. SSTORE and CALL carry
// a nominal base entry here; their true variable cost is layered on top by
// GasSStore/GasCall via EVM.GetSstoreGasFn/GetCallGasFn.
func DefaultGasCostTable() GasCostTable {
	t := GasCostTable{
		STOP:    0,
		ADD:     3,
		MUL:     5,
		SUB:     3,
		DIV:     5,
		MOD:     5,
		LT:      3,
		GT:      3,
		EQ:      3,
		ISZERO:  3,
		AND:     3,
		OR:      3,
		XOR:     3,
		NOT:     3,
		POP:     2,
		MLOAD:   3,
		MSTORE:  3,
		MSTORE8: 3,
		SLOAD:   800,
		SSTORE:  0,
		JUMP:    8,
		JUMPI:   10,
		PC:      2,
		MSIZE:   2,
		GAS:     2,

		JUMPDEST: params.JumpdestGas,

		CALLDATAL:  3,
		CALLDATASZ: 2,

		CALL:    params.CallGas,
		RETURN:  0,
		REVERT:  0,
		SUICIDE: 0,
	}

	for i := 0; i < 32; i++ {
		t[PUSH1+OpCode(i)] = 3
	}
	for i := 0; i < 16; i++ {
		t[DUP1+OpCode(i)] = 3
		t[SWAP1+OpCode(i)] = 3
	}
	for i := 0; i < 5; i++ {
		t[LOG0+OpCode(i)] = params.LogGas + uint64(i)*params.LogTopicGas
	}

	return t
}
