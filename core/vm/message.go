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

// maxCallDepth is the depth at or above which a Message may no longer be
// applied (spec: depth < 1024 for execution to proceed).
const maxCallDepth = 1024

// Message is an immutable descriptor of one invocation. It is constructed
// once by NewMessage and never mutated afterwards.
type Message struct {
	Gas      uint64
	GasPrice *uint256.Int
	Origin   common.Address
	Account  common.Address
	Sender   common.Address
	Value    *uint256.Int
	Data     []byte
	Depth    int
}

// NewMessage validates and constructs a Message. depth must be >= 0.
func NewMessage(gas uint64, gasPrice *uint256.Int, origin, account, sender common.Address, value *uint256.Int, data []byte, depth int) (*Message, error) {
	if gasPrice == nil || value == nil {
		return nil, newValidationError("gasPrice and value must not be nil")
	}
	if depth < 0 {
		return nil, newValidationError("depth must be >= 0, got %d", depth)
	}
	return &Message{
		Gas:      gas,
		GasPrice: gasPrice,
		Origin:   origin,
		Account:  account,
		Sender:   sender,
		Value:    value,
		Data:     data,
		Depth:    depth,
	}, nil
}
