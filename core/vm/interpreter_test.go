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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ethervm/corevm/core/state"
)

var (
	testSender  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testAccount = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func newTestEVM() (*EVM, *state.StateDB) {
	storage := state.New(1 << 20)
	chainEnv := NewChainEnvironment(1, 8_000_000, 1_700_000_000)
	return NewDefaultEVM(storage, chainEnv), storage
}

func runCode(t *testing.T, code []byte, startGas uint64) *Frame {
	t.Helper()
	evm, storage := newTestEVM()
	storage.SetCode(testAccount, code)

	msg, err := NewMessage(startGas, uint256.NewInt(1), testSender, testAccount, testSender, new(uint256.Int), nil, 0)
	require.NoError(t, err)

	return ApplyMessage(evm, msg)
}

type captureLog struct {
	ops []OpCode
}

func (c *captureLog) CaptureOpcode(pc uint64, op OpCode, gasRemaining int64) {
	c.ops = append(c.ops, op)
}

func TestTracerCapturesEveryDispatchedOpcode(t *testing.T) {
	evm, storage := newTestEVM()
	code := []byte{byte(PUSH1), 0x01, byte(PUSH1), 0x02, byte(ADD), byte(STOP)}
	storage.SetCode(testAccount, code)
	tracer := &captureLog{}
	evm.Config.Tracer = tracer

	msg, err := NewMessage(1_000_000, uint256.NewInt(1), testSender, testAccount, testSender, new(uint256.Int), nil, 0)
	require.NoError(t, err)

	frame := ApplyMessage(evm, msg)
	require.NoError(t, frame.Error)
	require.Equal(t, []OpCode{PUSH1, PUSH1, ADD, STOP}, tracer.ops)
}

// spec.md §8 scenario 1: STOP alone.
func TestScenarioStop(t *testing.T) {
	frame := runCode(t, []byte{byte(STOP)}, 1_000_000)

	require.NoError(t, frame.Error)
	require.Empty(t, frame.Output)
	require.Equal(t, uint64(0), frame.State.GasMeter.GasUsed())
}

// spec.md §8 scenario 2: PUSH1 1, PUSH1 2, ADD, STOP -> top of stack is 3.
func TestScenarioPushAdd(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(PUSH1), 0x02, byte(ADD), byte(STOP)}
	frame := runCode(t, code, 1_000_000)

	require.NoError(t, frame.Error)
	top, err := frame.State.Stack.Pop()
	require.NoError(t, err)
	require.Equal(t, uint64(3), top.Uint256().Uint64())
}

// spec.md §8 scenario 3: PUSH1 with its immediate byte missing reads 0x00
// past the end of the code and terminates normally via the implicit STOP.
func TestScenarioPushMissingImmediate(t *testing.T) {
	frame := runCode(t, []byte{byte(PUSH1)}, 1_000_000)

	require.NoError(t, frame.Error)
	top, err := frame.State.Stack.Pop()
	require.NoError(t, err)
	require.Equal(t, uint64(0), top.Uint256().Uint64())
}

// spec.md §8 scenario 4: PUSH1 5, JUMP, where offset 5 is not a valid jump
// destination (it's past the end of this three-byte program).
func TestScenarioInvalidJump(t *testing.T) {
	code := []byte{byte(PUSH1), 0x05, byte(JUMP)}
	frame := runCode(t, code, 1_000_000)

	require.Error(t, frame.Error)
	var target *InvalidJumpDestination
	require.ErrorAs(t, frame.Error, &target)
}

// spec.md §8 scenario 5: start_gas=2 running two PUSH1s that cost 3 each
// runs out of gas on the first one; the frame (and its storage effects,
// none here) is rolled back by ApplyMessage.
func TestScenarioOutOfGas(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(PUSH1), 0x02, byte(ADD)}
	frame := runCode(t, code, 2)

	require.Error(t, frame.Error)
	var target *OutOfGas
	require.ErrorAs(t, frame.Error, &target)
}

// spec.md §8 scenario 6: depth limit. A message applied at depth
// maxCallDepth is rejected before a State (and its code load) is ever
// constructed.
func TestScenarioDepthLimit(t *testing.T) {
	evm, storage := newTestEVM()
	storage.SetCode(testAccount, []byte{byte(STOP)})

	msg, err := NewMessage(100_000, uint256.NewInt(1), testSender, testAccount, testSender, new(uint256.Int), nil, maxCallDepth)
	require.NoError(t, err)

	frame := ApplyMessage(evm, msg)
	require.Error(t, frame.Error)
	var target *StackDepthLimit
	require.ErrorAs(t, frame.Error, &target)
	require.Nil(t, frame.State, "a depth-rejected message never builds a State")
}

func TestScenarioOneBelowDepthLimitStillRuns(t *testing.T) {
	evm, storage := newTestEVM()
	storage.SetCode(testAccount, []byte{byte(STOP)})

	msg, err := NewMessage(100_000, uint256.NewInt(1), testSender, testAccount, testSender, new(uint256.Int), nil, maxCallDepth-1)
	require.NoError(t, err)

	frame := ApplyMessage(evm, msg)
	require.NoError(t, frame.Error)
}

func TestApplyMessageRevertsStorageOnError(t *testing.T) {
	evm, storage := newTestEVM()
	// SSTORE writing key=1 value=1, then an invalid JUMP.
	code := []byte{
		byte(PUSH1), 0x01, // value
		byte(PUSH1), 0x01, // key
		byte(SSTORE),
		byte(PUSH1), 0xff, // bogus destination
		byte(JUMP),
	}
	storage.SetCode(testAccount, code)

	msg, err := NewMessage(1_000_000, uint256.NewInt(1), testSender, testAccount, testSender, new(uint256.Int), nil, 0)
	require.NoError(t, err)

	frame := ApplyMessage(evm, msg)
	require.Error(t, frame.Error)

	key := common.BytesToHash([]byte{0x01})
	require.Equal(t, common.Hash{}, storage.GetState(testAccount, key), "a failed frame's storage writes must not survive")
}

func TestApplyMessageCommitsAccountDeletionOnCleanExit(t *testing.T) {
	evm, storage := newTestEVM()
	beneficiary := common.HexToAddress("0x3333333333333333333333333333333333333333")
	storage.SetBalance(testAccount, uint256.NewInt(42))

	code := append([]byte{byte(PUSH1 + 19)}, beneficiary.Bytes()...)
	code = append(code, byte(SUICIDE))
	storage.SetCode(testAccount, code)

	msg, err := NewMessage(1_000_000, uint256.NewInt(1), testSender, testAccount, testSender, new(uint256.Int), nil, 0)
	require.NoError(t, err)

	frame := ApplyMessage(evm, msg)
	require.NoError(t, frame.Error)
	require.True(t, storage.GetBalance(testAccount).IsZero())
}

func TestOpCallDispatchesToChildMessage(t *testing.T) {
	evm, storage := newTestEVM()
	callee := common.HexToAddress("0x5555555555555555555555555555555555555555")
	storage.SetCode(callee, []byte{byte(STOP)})

	// CALL(gas=100000, addr=callee, value=0, argsOffset=0, argsSize=0, retOffset=0, retSize=0)
	code := []byte{
		byte(PUSH1), 0x00, // retSize
		byte(PUSH1), 0x00, // retOffset
		byte(PUSH1), 0x00, // argsSize
		byte(PUSH1), 0x00, // argsOffset
		byte(PUSH1), 0x00, // value
	}
	code = append(code, byte(PUSH1+19))
	code = append(code, callee.Bytes()...)
	code = append(code, byte(PUSH1+2), 0x01, 0x86, 0xa0) // gas = 100000
	code = append(code, byte(CALL), byte(STOP))
	storage.SetCode(testAccount, code)

	msg, err := NewMessage(1_000_000, uint256.NewInt(1), testSender, testAccount, testSender, new(uint256.Int), nil, 0)
	require.NoError(t, err)

	frame := ApplyMessage(evm, msg)
	require.NoError(t, frame.Error)
	require.Equal(t, 1, len(frame.SubFrames))
	require.NoError(t, frame.SubFrames[0].Error)
}
