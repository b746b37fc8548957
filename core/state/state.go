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

// Package state is the one concrete, in-memory implementation of
// core/vm.Storage this module ships, so the interpreter core is runnable
// end-to-end without a trie-backed world-state store — persistence and
// Merkleization are explicitly out of this module's scope; see
// SPEC_FULL.md §6.
package state

import (
	"github.com/VictoriaMetrics/fastcache"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// account is one leaf of in-memory world state.
type account struct {
	balance *uint256.Int
	code    []byte
	storage map[common.Hash]common.Hash
}

func newAccount() *account {
	return &account{
		balance: new(uint256.Int),
		storage: make(map[common.Hash]common.Hash),
	}
}

// StateDB is a journaled, in-memory world-state store implementing
// core/vm.Storage. Snapshot/Revert tokens are journal lengths, exactly as
// in the teacher's core/state.StateDB — collapsed here to the handful of
// mutation kinds this module's interpreter actually performs.
//
// leafCache memoizes the "does this account already exist" check GasCall
// performs on every CALL, fronted by a fastcache.Cache the way a
// production trie-backed StateDB fronts its account trie reads; it is
// invalidated on every mutating call so it never serves stale data.
type StateDB struct {
	accounts  map[common.Address]*account
	journal   *journal
	leafCache *fastcache.Cache
}

// New returns an empty StateDB with a leaf cache sized cacheBytes.
func New(cacheBytes int) *StateDB {
	return &StateDB{
		accounts:  make(map[common.Address]*account),
		journal:   newJournal(),
		leafCache: fastcache.New(cacheBytes),
	}
}

func (s *StateDB) getAccount(addr common.Address) (*account, bool) {
	acc, ok := s.accounts[addr]
	return acc, ok
}

func (s *StateDB) getOrNewAccount(addr common.Address) *account {
	acc, ok := s.accounts[addr]
	if !ok {
		acc = newAccount()
		s.accounts[addr] = acc
	}
	return acc
}

func (s *StateDB) invalidateLeaf(addr common.Address) {
	s.leafCache.Del(addr.Bytes())
}

// AccountExists reports whether addr has an account entry in this StateDB
// (one is created by SetBalance, SetCode or SetState), whether or not it
// currently holds any balance, code, or storage — the check CALL pricing
// needs to decide whether to charge the new-account surcharge. It is read-through cached: a hit avoids the
// account-map probe entirely, the way a trie-backed StateDB's equivalent
// check would avoid a trie walk.
func (s *StateDB) AccountExists(addr common.Address) bool {
	key := addr.Bytes()
	if cached, ok := s.leafCache.HasGet(nil, key); ok {
		return len(cached) > 0 && cached[0] == 1
	}
	_, exists := s.getAccount(addr)
	var marker byte
	if exists {
		marker = 1
	}
	s.leafCache.Set(key, []byte{marker})
	return exists
}

// GetBalance returns addr's balance, or zero if addr does not exist.
func (s *StateDB) GetBalance(addr common.Address) *uint256.Int {
	acc, ok := s.getAccount(addr)
	if !ok {
		return new(uint256.Int)
	}
	return acc.balance.Clone()
}

// SetBalance sets addr's balance, journaling the prior value.
func (s *StateDB) SetBalance(addr common.Address, balance *uint256.Int) {
	acc, existed := s.getAccount(addr)
	var prev *uint256.Int
	if existed {
		prev = acc.balance.Clone()
	}
	s.journal.append(balanceChange{account: addr, prev: prev, existed: existed})
	s.getOrNewAccount(addr).balance = balance.Clone()
	s.invalidateLeaf(addr)
	log.Trace("state: set balance", "account", addr, "balance", balance)
}

// GetCode returns addr's code, or nil if addr has none.
func (s *StateDB) GetCode(addr common.Address) []byte {
	acc, ok := s.getAccount(addr)
	if !ok {
		return nil
	}
	return acc.code
}

// SetCode sets addr's code, journaling the prior value.
func (s *StateDB) SetCode(addr common.Address, code []byte) {
	acc, existed := s.getAccount(addr)
	var prev []byte
	if existed {
		prev = acc.code
	}
	s.journal.append(codeChange{account: addr, prev: prev, existed: existed})
	s.getOrNewAccount(addr).code = code
	s.invalidateLeaf(addr)
}

// DeleteCode clears addr's code, journaling the prior value.
func (s *StateDB) DeleteCode(addr common.Address) {
	acc, ok := s.getAccount(addr)
	if !ok {
		return
	}
	s.journal.append(codeDeletionChange{account: addr, prevCode: acc.code})
	acc.code = nil
	s.invalidateLeaf(addr)
}

// GetState returns addr's value at key, or the zero hash if unset.
func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	acc, ok := s.getAccount(addr)
	if !ok {
		return common.Hash{}
	}
	return acc.storage[key]
}

// SetState sets addr's value at key, journaling the prior value.
func (s *StateDB) SetState(addr common.Address, key, value common.Hash) {
	acc := s.getOrNewAccount(addr)
	prev, had := acc.storage[key]
	s.journal.append(storageChange{account: addr, key: key, prev: prev, hadValue: had})
	acc.storage[key] = value
	s.invalidateLeaf(addr)
}

// DeleteStorage clears every slot of addr, journaling the prior map so a
// revert restores it whole.
func (s *StateDB) DeleteStorage(addr common.Address) {
	acc, ok := s.getAccount(addr)
	if !ok {
		return
	}
	s.journal.append(storageDeletionChange{account: addr, prev: acc.storage})
	acc.storage = make(map[common.Hash]common.Hash)
	s.invalidateLeaf(addr)
}

// Snapshot returns an opaque token identifying the current journal
// position.
func (s *StateDB) Snapshot() int {
	return s.journal.length()
}

// Revert undoes every mutation recorded since token.
func (s *StateDB) Revert(token int) {
	s.journal.revertTo(s, token)
	s.leafCache.Reset()
}
