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

package state

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// journalEntry is one reversible mutation recorded against a StateDB.
type journalEntry interface {
	revert(*StateDB)
}

// journal is the append-only log of mutations since the last snapshot,
// exactly the shape core/state/journal.go keeps it in the teacher's repo,
// trimmed to the handful of entry kinds this module's Storage interface
// actually produces: balance, code, and storage-slot changes, plus code
// deletion and storage wipe.
type journal struct {
	entries []journalEntry
}

func newJournal() *journal {
	return &journal{}
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
}

// length returns the current journal length, used as an opaque snapshot
// token by StateDB.Snapshot.
func (j *journal) length() int {
	return len(j.entries)
}

// revertTo undoes every entry recorded since snapshot, in reverse order.
func (j *journal) revertTo(db *StateDB, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		j.entries[i].revert(db)
	}
	j.entries = j.entries[:snapshot]
}

type balanceChange struct {
	account common.Address
	prev    *uint256.Int
	existed bool
}

func (ch balanceChange) revert(db *StateDB) {
	if !ch.existed {
		delete(db.accounts, ch.account)
		return
	}
	db.getOrNewAccount(ch.account).balance = ch.prev
}

type codeChange struct {
	account common.Address
	prev    []byte
	existed bool
}

func (ch codeChange) revert(db *StateDB) {
	if !ch.existed {
		delete(db.accounts, ch.account)
		return
	}
	db.getOrNewAccount(ch.account).code = ch.prev
}

type codeDeletionChange struct {
	account  common.Address
	prevCode []byte
}

func (ch codeDeletionChange) revert(db *StateDB) {
	db.getOrNewAccount(ch.account).code = ch.prevCode
}

type storageChange struct {
	account  common.Address
	key      common.Hash
	prev     common.Hash
	hadValue bool
}

func (ch storageChange) revert(db *StateDB) {
	acc := db.getOrNewAccount(ch.account)
	if !ch.hadValue {
		delete(acc.storage, ch.key)
		return
	}
	acc.storage[ch.key] = ch.prev
}

type storageDeletionChange struct {
	account common.Address
	prev    map[common.Hash]common.Hash
}

func (ch storageDeletionChange) revert(db *StateDB) {
	db.getOrNewAccount(ch.account).storage = ch.prev
}
