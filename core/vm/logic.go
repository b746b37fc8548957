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
	"github.com/holiman/uint256"
)

// This file is a reference subset of opcode logic: arithmetic, stack and
// memory movement, control flow, and a minimal CALL/SSTORE/SELFDESTRUCT —
// far short of the full instruction set (that library is an external
// collaborator this module does not own), but enough to run real bytecode
// through the interpreter core end to end. Grounded on the Operation/OpTable
// shape in other_examples' instruction tables.

func push1(stack *Stack, v *uint256.Int) error {
	return stack.Push(WordFromUint256(v))
}

func popUint256(stack *Stack) (*uint256.Int, error) {
	w, err := stack.Pop()
	if err != nil {
		return nil, err
	}
	return w.Uint256(), nil
}

func opStop(frame *Frame) error {
	return nil
}

func opAdd(frame *Frame) error {
	stack := frame.State.Stack
	a, err := popUint256(stack)
	if err != nil {
		return err
	}
	b, err := popUint256(stack)
	if err != nil {
		return err
	}
	return push1(stack, new(uint256.Int).Add(a, b))
}

func opMul(frame *Frame) error {
	stack := frame.State.Stack
	a, err := popUint256(stack)
	if err != nil {
		return err
	}
	b, err := popUint256(stack)
	if err != nil {
		return err
	}
	return push1(stack, new(uint256.Int).Mul(a, b))
}

func opSub(frame *Frame) error {
	stack := frame.State.Stack
	a, err := popUint256(stack)
	if err != nil {
		return err
	}
	b, err := popUint256(stack)
	if err != nil {
		return err
	}
	return push1(stack, new(uint256.Int).Sub(a, b))
}

func opDiv(frame *Frame) error {
	stack := frame.State.Stack
	a, err := popUint256(stack)
	if err != nil {
		return err
	}
	b, err := popUint256(stack)
	if err != nil {
		return err
	}
	return push1(stack, new(uint256.Int).Div(a, b))
}

func opMod(frame *Frame) error {
	stack := frame.State.Stack
	a, err := popUint256(stack)
	if err != nil {
		return err
	}
	b, err := popUint256(stack)
	if err != nil {
		return err
	}
	return push1(stack, new(uint256.Int).Mod(a, b))
}

func cmpOp(frame *Frame, cmp func(a, b *uint256.Int) bool) error {
	stack := frame.State.Stack
	a, err := popUint256(stack)
	if err != nil {
		return err
	}
	b, err := popUint256(stack)
	if err != nil {
		return err
	}
	if cmp(a, b) {
		return push1(stack, uint256.NewInt(1))
	}
	return push1(stack, uint256.NewInt(0))
}

func opLt(frame *Frame) error {
	return cmpOp(frame, func(a, b *uint256.Int) bool { return a.Lt(b) })
}

func opGt(frame *Frame) error {
	return cmpOp(frame, func(a, b *uint256.Int) bool { return a.Gt(b) })
}

func opEq(frame *Frame) error {
	return cmpOp(frame, func(a, b *uint256.Int) bool { return a.Eq(b) })
}

func opIszero(frame *Frame) error {
	stack := frame.State.Stack
	a, err := popUint256(stack)
	if err != nil {
		return err
	}
	if a.IsZero() {
		return push1(stack, uint256.NewInt(1))
	}
	return push1(stack, uint256.NewInt(0))
}

func opAnd(frame *Frame) error {
	stack := frame.State.Stack
	a, err := popUint256(stack)
	if err != nil {
		return err
	}
	b, err := popUint256(stack)
	if err != nil {
		return err
	}
	return push1(stack, new(uint256.Int).And(a, b))
}

func opOr(frame *Frame) error {
	stack := frame.State.Stack
	a, err := popUint256(stack)
	if err != nil {
		return err
	}
	b, err := popUint256(stack)
	if err != nil {
		return err
	}
	return push1(stack, new(uint256.Int).Or(a, b))
}

func opXor(frame *Frame) error {
	stack := frame.State.Stack
	a, err := popUint256(stack)
	if err != nil {
		return err
	}
	b, err := popUint256(stack)
	if err != nil {
		return err
	}
	return push1(stack, new(uint256.Int).Xor(a, b))
}

func opNot(frame *Frame) error {
	stack := frame.State.Stack
	a, err := popUint256(stack)
	if err != nil {
		return err
	}
	return push1(stack, new(uint256.Int).Not(a))
}

func opPop(frame *Frame) error {
	_, err := frame.State.Stack.Pop()
	return err
}

func opMload(frame *Frame) error {
	offset, err := popUint256(frame.State.Stack)
	if err != nil {
		return err
	}
	start := offset.Uint64()
	if err := frame.State.ExtendMemory(start, 32); err != nil {
		return err
	}
	return frame.State.Stack.Push(Word(frame.State.Memory.Read(start, 32)))
}

func opMstore(frame *Frame) error {
	stack := frame.State.Stack
	offset, err := popUint256(stack)
	if err != nil {
		return err
	}
	value, err := popUint256(stack)
	if err != nil {
		return err
	}
	start := offset.Uint64()
	if err := frame.State.ExtendMemory(start, 32); err != nil {
		return err
	}
	buf := value.Bytes32()
	frame.State.Memory.Write(start, 32, buf[:])
	return nil
}

func opMstore8(frame *Frame) error {
	stack := frame.State.Stack
	offset, err := popUint256(stack)
	if err != nil {
		return err
	}
	value, err := popUint256(stack)
	if err != nil {
		return err
	}
	start := offset.Uint64()
	if err := frame.State.ExtendMemory(start, 1); err != nil {
		return err
	}
	frame.State.Memory.Write(start, 1, []byte{byte(value.Uint64())})
	return nil
}

func opSload(frame *Frame) error {
	keyWord, err := popUint256(frame.State.Stack)
	if err != nil {
		return err
	}
	key := common.Hash(keyWord.Bytes32())
	value := frame.evm.Storage.GetState(frame.Message.Account, key)
	return push1(frame.State.Stack, new(uint256.Int).SetBytes(value.Bytes()))
}

func opSstore(frame *Frame) error {
	stack := frame.State.Stack

	cost, err := frame.evm.GetSstoreGasFn()(frame)
	if err != nil {
		return err
	}
	if err := frame.State.GasMeter.ConsumeGas(cost); err != nil {
		return err
	}
	if frame.State.GasMeter.IsOutOfGas() {
		return newOutOfGas("Ran out of gas for SSTORE")
	}

	keyWord, err := popUint256(stack)
	if err != nil {
		return err
	}
	valueWord, err := popUint256(stack)
	if err != nil {
		return err
	}
	key := common.Hash(keyWord.Bytes32())
	value := common.Hash(valueWord.Bytes32())
	frame.evm.Storage.SetState(frame.Message.Account, key, value)
	return nil
}

func opJump(frame *Frame) error {
	dest, err := popUint256(frame.State.Stack)
	if err != nil {
		return err
	}
	return jumpTo(frame, dest.Uint64())
}

func opJumpi(frame *Frame) error {
	stack := frame.State.Stack
	dest, err := popUint256(stack)
	if err != nil {
		return err
	}
	cond, err := popUint256(stack)
	if err != nil {
		return err
	}
	if cond.IsZero() {
		return nil
	}
	return jumpTo(frame, dest.Uint64())
}

func jumpTo(frame *Frame, dest uint64) error {
	code := frame.State.Code
	if dest >= uint64(code.Len()) || OpCode(byteAt(code, dest)) != JUMPDEST || !code.IsValidOpcode(dest) {
		return newInvalidJumpDestination("Invalid jump destination %d", dest)
	}
	code.SetPC(dest)
	return nil
}

// byteAt reads the code byte at position without disturbing the cursor.
func byteAt(code *CodeStream, position uint64) byte {
	restore := code.Seek(position)
	defer restore()
	return byte(code.Peek())
}

func opPc(frame *Frame) error {
	return push1(frame.State.Stack, new(uint256.Int).SetUint64(frame.State.Code.PC()-1))
}

func opMsize(frame *Frame) error {
	return push1(frame.State.Stack, new(uint256.Int).SetUint64(uint64(frame.State.Memory.Len())))
}

func opGas(frame *Frame) error {
	remaining := frame.State.GasMeter.GasRemaining()
	if remaining < 0 {
		remaining = 0
	}
	return push1(frame.State.Stack, new(uint256.Int).SetUint64(uint64(remaining)))
}

func opJumpdest(frame *Frame) error {
	return nil
}

// makePush returns the logic function for PUSHn: it reads n immediate
// bytes from the code stream (past-end bytes read as zero, per
// CodeStream.Next's STOP-past-end behavior folded through a raw byte
// read here instead) and pushes them as a big-endian word.
func makePush(n int) OpcodeFn {
	return func(frame *Frame) error {
		code := frame.State.Code
		buf := make([]byte, n)
		for i := 0; i < n; i++ {
			pos := code.PC()
			if pos >= uint64(code.Len()) {
				buf[i] = 0
			} else {
				buf[i] = byteAt(code, pos)
			}
			code.SetPC(pos + 1)
		}
		return frame.State.Stack.Push(Word(buf))
	}
}

func makeDup(n int) OpcodeFn {
	return func(frame *Frame) error {
		return frame.State.Stack.Dup(n)
	}
}

func makeSwap(n int) OpcodeFn {
	return func(frame *Frame) error {
		return frame.State.Stack.Swap(n)
	}
}

func makeLog(n int) OpcodeFn {
	return func(frame *Frame) error {
		stack := frame.State.Stack
		offset, err := popUint256(stack)
		if err != nil {
			return err
		}
		size, err := popUint256(stack)
		if err != nil {
			return err
		}
		topics := make([]common.Hash, n)
		for i := 0; i < n; i++ {
			t, err := popUint256(stack)
			if err != nil {
				return err
			}
			topics[i] = common.Hash(t.Bytes32())
		}
		start, length := offset.Uint64(), size.Uint64()
		if err := frame.State.ExtendMemory(start, length); err != nil {
			return err
		}
		data := frame.State.Memory.Read(start, length)
		frame.AddLogEntry(frame.Message.Account, topics, data)
		return nil
	}
}

func opCallDataLoad(frame *Frame) error {
	offsetWord, err := popUint256(frame.State.Stack)
	if err != nil {
		return err
	}
	offset := offsetWord.Uint64()
	buf := make([]byte, 32)
	for i := 0; i < 32; i++ {
		pos := offset + uint64(i)
		if pos < uint64(len(frame.Message.Data)) {
			buf[i] = frame.Message.Data[pos]
		}
	}
	return push1(frame.State.Stack, new(uint256.Int).SetBytes(buf))
}

func opCallDataSize(frame *Frame) error {
	return push1(frame.State.Stack, new(uint256.Int).SetUint64(uint64(len(frame.Message.Data))))
}

// opReturn and opRevert share the operand layout: pop offset and size,
// extend memory, and capture the referenced bytes as the frame's output.
// REVERT additionally signals a VMError so the caller rolls back.
func opReturn(frame *Frame) error {
	return captureOutput(frame)
}

func opRevert(frame *Frame) error {
	if err := captureOutput(frame); err != nil {
		return err
	}
	return newRevert("execution reverted")
}

func captureOutput(frame *Frame) error {
	stack := frame.State.Stack
	offset, err := popUint256(stack)
	if err != nil {
		return err
	}
	size, err := popUint256(stack)
	if err != nil {
		return err
	}
	start, length := offset.Uint64(), size.Uint64()
	if err := frame.State.ExtendMemory(start, length); err != nil {
		return err
	}
	frame.Output = frame.State.Memory.Read(start, length)
	return nil
}

// opSuicide (SELFDESTRUCT) registers this frame's account for deletion in
// favor of the popped beneficiary address.
func opSuicide(frame *Frame) error {
	beneficiaryWord, err := frame.State.Stack.Pop()
	if err != nil {
		return err
	}
	beneficiary := common.BytesToAddress(beneficiaryWord)
	return frame.RegisterAccountForDeletion(beneficiary)
}

// opCall is a minimal CALL: it pops the seven CALL operands, applies a
// child message for the requested gas and value, copies the callee's
// output into the caller's memory, and pushes 1/0 for success/failure.
func opCall(frame *Frame) error {
	stack := frame.State.Stack

	cost, err := frame.evm.GetCallGasFn()(frame)
	if err != nil {
		return err
	}
	if err := frame.State.GasMeter.ConsumeGas(cost); err != nil {
		return err
	}
	if frame.State.GasMeter.IsOutOfGas() {
		return newOutOfGas("Ran out of gas for CALL")
	}

	gasWord, err := popUint256(stack)
	if err != nil {
		return err
	}
	addrWord, err := stack.Pop()
	if err != nil {
		return err
	}
	valueWord, err := popUint256(stack)
	if err != nil {
		return err
	}
	argsOffset, err := popUint256(stack)
	if err != nil {
		return err
	}
	argsSize, err := popUint256(stack)
	if err != nil {
		return err
	}
	retOffset, err := popUint256(stack)
	if err != nil {
		return err
	}
	retSize, err := popUint256(stack)
	if err != nil {
		return err
	}

	if err := frame.State.ExtendMemory(argsOffset.Uint64(), argsSize.Uint64()); err != nil {
		return err
	}
	args := frame.State.Memory.Read(argsOffset.Uint64(), argsSize.Uint64())

	to := common.BytesToAddress(addrWord)
	gas := gasWord.Uint64()
	if !valueWord.IsZero() {
		gas += CallStipend
	}

	msg, err := frame.CreateMessage(gas, to, valueWord, args)
	if err != nil {
		return err
	}

	sub := frame.ApplyMessage(msg)

	if err := frame.State.ExtendMemory(retOffset.Uint64(), retSize.Uint64()); err != nil {
		return err
	}
	out := sub.Output
	if uint64(len(out)) > retSize.Uint64() {
		out = out[:retSize.Uint64()]
	}
	padded := make([]byte, retSize.Uint64())
	copy(padded, out)
	frame.State.Memory.Write(retOffset.Uint64(), retSize.Uint64(), padded)

	if sub.Error != nil {
		return push1(stack, uint256.NewInt(0))
	}
	return push1(stack, uint256.NewInt(1))
}
