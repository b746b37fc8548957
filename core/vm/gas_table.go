// Copyright 2016 The go-ethereum Authors
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
	"github.com/ethervm/corevm/params"
)

// GasSStore prices SSTORE from the slot's current and proposed values,
// following the original three-case schedule: writing a zero slot to
// non-zero costs SstoreSetGas, writing a non-zero slot to a different
// non-zero value costs SstoreResetGas, and writing a non-zero slot to zero
// additionally schedules a SstoreClearRefund. Operands are read with
// Stack.Peek so the opcode's own logic still owns popping them.
func GasSStore(frame *Frame) (uint64, error) {
	keyWord, err := frame.State.Stack.Peek(0)
	if err != nil {
		return 0, err
	}
	valueWord, err := frame.State.Stack.Peek(1)
	if err != nil {
		return 0, err
	}

	key := common.Hash(keyWord.Uint256().Bytes32())
	current := frame.evm.Storage.GetState(frame.Message.Account, key)

	var zero common.Hash
	newIsZero := valueWord.Uint256().IsZero()

	switch {
	case current == zero && !newIsZero:
		return params.SstoreSetGas, nil
	case current != zero && newIsZero:
		frame.State.GasMeter.RefundGas(params.SstoreClearRefund)
		return params.SstoreResetGas, nil
	default:
		return params.SstoreResetGas, nil
	}
}

// GasCall prices CALL from the two surcharges the
// original schedule charges beyond CallGas: a value-transfer surcharge,
// and a new-account surcharge when the destination does not yet exist.
// The memory-expansion cost of the argument and return-data regions is
// left to the caller's own State.ExtendMemory calls.
func GasCall(frame *Frame) (uint64, error) {
	valueWord, err := frame.State.Stack.Peek(2)
	if err != nil {
		return 0, err
	}
	addrWord, err := frame.State.Stack.Peek(1)
	if err != nil {
		return 0, err
	}

	var cost uint64
	value := valueWord.Uint256()
	if !value.IsZero() {
		cost += params.CallValueTransferGas
	}

	addr := common.BytesToAddress(addrWord)
	if !frame.evm.Storage.AccountExists(addr) {
		cost += params.CallNewAccountGas
	}
	return cost, nil
}

// CallStipend is the gas credited to a CALL's callee when the call
// transfers value, so the callee can always afford its own minimal
// bookkeeping even if its message gas was pared to zero.
const CallStipend = params.CallStipend
