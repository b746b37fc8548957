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
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethervm/corevm/params"
)

// State is the per-frame computation tuple: Memory, Stack, CodeStream, and
// GasMeter. It exclusively belongs to one Frame.
type State struct {
	Memory   *Memory
	Stack    *Stack
	Code     *CodeStream
	GasMeter *GasMeter
}

// NewState constructs a fresh State over code, seeded with startGas.
func NewState(code []byte, startGas uint64) *State {
	return &State{
		Memory:   NewMemory(),
		Stack:    NewStack(),
		Code:     NewCodeStream(code),
		GasMeter: NewGasMeter(startGas),
	}
}

// memoryGasCost prices size bytes of memory (size/32 words): linear plus
// quadratic, the EVM's classic memory-expansion
// formula (grounded in core/vm/gas_table.go's memoryGasCost, collapsed
// from multi-dimensional gas to the scalar ledger this module's GasMeter
// keeps).
func memoryGasCost(size uint64) uint64 {
	words := size / 32
	linear := words * params.MemoryGas
	quad := (words * words) / params.QuadCoeffDiv
	return linear + quad
}

// ExtendMemory is the single chokepoint coupling memory growth to gas.
// Opcodes that touch memory must route through this before writing.
// extend_memory is idempotent in bytes but not in gas: the first call
// prices the growth, later calls with the same bounds price nothing
// further.
func (s *State) ExtendMemory(start, size uint64) error {
	before := ceil32(uint64(s.Memory.Len()))
	after := ceil32(start + size)

	beforeCost := memoryGasCost(before)
	afterCost := memoryGasCost(after)

	log.Trace("memory extension", "beforeSize", before, "afterSize", after, "beforeCost", beforeCost, "afterCost", afterCost)

	if size == 0 {
		return nil
	}
	if beforeCost < afterCost {
		if err := s.GasMeter.ConsumeGas(afterCost - beforeCost); err != nil {
			return err
		}
	}
	if s.GasMeter.IsOutOfGas() {
		return newOutOfGas("Ran out of gas extending memory")
	}
	s.Memory.Extend(start, size)
	return nil
}
