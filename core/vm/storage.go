// Copyright 2015 The go-ethereum Authors
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

// Storage is the persistent world-state capability the core consumes. It
// is treated as an external collaborator by the spec this module
// implements: a production implementation would be trie-backed; this
// module's core/state package ships one concrete in-memory implementation
// so the interpreter is runnable end-to-end.
type Storage interface {
	GetBalance(addr common.Address) *uint256.Int
	SetBalance(addr common.Address, balance *uint256.Int)

	GetCode(addr common.Address) []byte
	SetCode(addr common.Address, code []byte)
	DeleteCode(addr common.Address)

	// AccountExists reports whether addr is a known account — used to
	// price CALL's new-account surcharge.
	AccountExists(addr common.Address) bool

	GetState(addr common.Address, key common.Hash) common.Hash
	SetState(addr common.Address, key, value common.Hash)
	DeleteStorage(addr common.Address)

	Snapshot() int
	Revert(token int)
}
