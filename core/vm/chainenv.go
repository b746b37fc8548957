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

// ChainEnvironment is an immutable, block-scoped context shared by every
// frame in one execution.
type ChainEnvironment struct {
	BlockNumber uint64
	GasLimit    uint64
	Timestamp   uint64
}

// NewChainEnvironment constructs a ChainEnvironment. All fields are plain
// uint64s so there is no uint256-range validation to perform here (unlike
// the source this is derived from, which stores these as arbitrary-size
// integers); block number, gas limit, and timestamp are all, in practice,
// far below 2^64.
func NewChainEnvironment(blockNumber, gasLimit, timestamp uint64) *ChainEnvironment {
	return &ChainEnvironment{
		BlockNumber: blockNumber,
		GasLimit:    gasLimit,
		Timestamp:   timestamp,
	}
}
