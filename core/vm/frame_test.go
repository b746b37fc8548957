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
)

func TestNewFrameLoadsCodeAndSeedsGas(t *testing.T) {
	evm, storage := newTestEVM()
	storage.SetCode(testAccount, []byte{byte(STOP)})

	msg, err := NewMessage(50_000, uint256.NewInt(1), testSender, testAccount, testSender, new(uint256.Int), nil, 0)
	require.NoError(t, err)

	frame := NewFrame(evm, evm.ChainEnv, msg)
	require.Equal(t, int64(50_000), frame.State.GasMeter.GasRemaining())
	require.Equal(t, 1, frame.State.Code.Len())
}

func TestRegisterAccountForDeletionRejectsDuplicate(t *testing.T) {
	evm, storage := newTestEVM()
	storage.SetCode(testAccount, []byte{byte(STOP)})
	msg, err := NewMessage(50_000, uint256.NewInt(1), testSender, testAccount, testSender, new(uint256.Int), nil, 0)
	require.NoError(t, err)

	frame := NewFrame(evm, evm.ChainEnv, msg)
	beneficiary := common.HexToAddress("0x6666666666666666666666666666666666666666")

	require.NoError(t, frame.RegisterAccountForDeletion(beneficiary))
	require.Error(t, frame.RegisterAccountForDeletion(beneficiary))
}

func TestAddLogEntryAppendsInOrder(t *testing.T) {
	evm, storage := newTestEVM()
	storage.SetCode(testAccount, []byte{byte(STOP)})
	msg, err := NewMessage(50_000, uint256.NewInt(1), testSender, testAccount, testSender, new(uint256.Int), nil, 0)
	require.NoError(t, err)

	frame := NewFrame(evm, evm.ChainEnv, msg)
	frame.AddLogEntry(testAccount, []common.Hash{common.HexToHash("0x01")}, []byte("first"))
	frame.AddLogEntry(testAccount, nil, []byte("second"))

	require.Len(t, frame.Logs, 2)
	require.Equal(t, []byte("first"), frame.Logs[0].Data)
	require.Equal(t, []byte("second"), frame.Logs[1].Data)
}

func TestCreateMessageInheritsGasPriceAndOriginAndIncrementsDepth(t *testing.T) {
	evm, storage := newTestEVM()
	storage.SetCode(testAccount, []byte{byte(STOP)})
	msg, err := NewMessage(50_000, uint256.NewInt(7), testSender, testAccount, testSender, new(uint256.Int), nil, 3)
	require.NoError(t, err)

	frame := NewFrame(evm, evm.ChainEnv, msg)
	to := common.HexToAddress("0x7777777777777777777777777777777777777777")
	child, err := frame.CreateMessage(21_000, to, uint256.NewInt(5), []byte("data"))
	require.NoError(t, err)

	require.Equal(t, uint64(7), child.GasPrice.Uint64())
	require.Equal(t, testSender, child.Origin)
	require.Equal(t, testAccount, child.Sender)
	require.Equal(t, to, child.Account)
	require.Equal(t, 4, child.Depth)
}

func TestFrameCommitTransfersBalanceToBeneficiary(t *testing.T) {
	evm, storage := newTestEVM()
	storage.SetCode(testAccount, []byte{byte(STOP)})
	storage.SetBalance(testAccount, uint256.NewInt(10))
	msg, err := NewMessage(50_000, uint256.NewInt(1), testSender, testAccount, testSender, new(uint256.Int), nil, 0)
	require.NoError(t, err)

	beneficiary := common.HexToAddress("0x8888888888888888888888888888888888888888")
	storage.SetBalance(beneficiary, uint256.NewInt(1))

	frame := NewFrame(evm, evm.ChainEnv, msg)
	require.NoError(t, frame.RegisterAccountForDeletion(beneficiary))
	frame.commit()

	require.True(t, storage.GetBalance(testAccount).IsZero())
	require.Equal(t, uint64(11), storage.GetBalance(beneficiary).Uint64())
}
