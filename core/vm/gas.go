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
)

// GasMeter is a monotonic gas ledger: append-only deduction, return, and
// refund lists over an immutable starting allowance.
type GasMeter struct {
	startGas uint64

	deductions []uint64
	returns    []uint64
	refunds    []uint64
}

// NewGasMeter returns a GasMeter seeded with startGas.
func NewGasMeter(startGas uint64) *GasMeter {
	return &GasMeter{startGas: startGas}
}

// GasUsed is the sum of all deductions and returns. Note that returns ADD
// to gas_used rather than subtracting from it — this mirrors the source
// this module is derived from exactly; see DESIGN.md Open Questions.
func (g *GasMeter) GasUsed() uint64 {
	var total uint64
	for _, d := range g.deductions {
		total += d
	}
	for _, r := range g.returns {
		total += r
	}
	return total
}

// GasRefunded is the sum of all refunds.
func (g *GasMeter) GasRefunded() uint64 {
	var total uint64
	for _, r := range g.refunds {
		total += r
	}
	return total
}

// GasRemaining is startGas - GasUsed, which may go negative.
func (g *GasMeter) GasRemaining() int64 {
	return int64(g.startGas) - int64(g.GasUsed())
}

// IsOutOfGas reports whether GasRemaining has gone negative.
func (g *GasMeter) IsOutOfGas() bool {
	return g.GasRemaining() < 0
}

// ConsumeGas appends amount to the deduction ledger. The source this is
// derived from validates amount against the uint256 range before
// recording it, raising OutOfGas rather than a ValidationError on
// failure (preserved as a documented quirk in the original); since amount
// is already a uint64 here that range check can never fail and is
// subsumed by the Go type system. ConsumeGas fails immediately if the
// meter is already out of gas; it does NOT itself fail merely because
// this deduction pushes the balance negative — the caller (see wrapped
// opcode dispatch, and State.ExtendMemory) must check IsOutOfGas() right
// after.
func (g *GasMeter) ConsumeGas(amount uint64) error {
	if g.IsOutOfGas() {
		return newOutOfGas("Failed to consume %d gas. Already out of gas: %d", amount, g.GasRemaining())
	}
	before := g.GasRemaining()
	g.deductions = append(g.deductions, amount)
	log.Trace("gas consumption", "before", before, "amount", amount, "after", g.GasRemaining())
	return nil
}

// ReturnGas appends amount to the return ledger.
func (g *GasMeter) ReturnGas(amount uint64) {
	before := g.GasRemaining()
	g.returns = append(g.returns, amount)
	log.Trace("gas returned", "before", before, "amount", amount, "after", g.GasRemaining())
}

// RefundGas appends amount to the refund ledger.
func (g *GasMeter) RefundGas(amount uint64) {
	before := g.GasRefunded()
	g.refunds = append(g.refunds, amount)
	log.Trace("gas refund", "before", before, "amount", amount, "after", g.GasRefunded())
}

// OpcodeFn is the signature every dispatched opcode implementation has: it
// receives the frame it executes against.
type OpcodeFn func(frame *Frame) error

// WrapOpcodeFn returns a callable that consumes gasCost, fails OutOfGas if
// that exhausts the meter, and otherwise invokes fn. This wrapping happens
// once per dispatch, at Frame.GetOpcodeFn.
func (g *GasMeter) WrapOpcodeFn(opcode OpCode, fn OpcodeFn, gasCost uint64) OpcodeFn {
	return func(frame *Frame) error {
		if err := g.ConsumeGas(gasCost); err != nil {
			return err
		}
		if g.IsOutOfGas() {
			return newOutOfGas("Insufficient gas for opcode 0x%x", byte(opcode))
		}
		return fn(frame)
	}
}
