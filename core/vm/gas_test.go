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

	"github.com/stretchr/testify/require"
)

func TestGasMeterConsumeAndRemaining(t *testing.T) {
	g := NewGasMeter(10)
	require.NoError(t, g.ConsumeGas(4))
	require.Equal(t, uint64(4), g.GasUsed())
	require.Equal(t, int64(6), g.GasRemaining())
	require.False(t, g.IsOutOfGas())
}

func TestGasMeterReturnsAddToGasUsed(t *testing.T) {
	// The quirk this module preserves verbatim: ReturnGas ADDS to gas_used
	// rather than subtracting from it.
	g := NewGasMeter(100)
	require.NoError(t, g.ConsumeGas(10))
	g.ReturnGas(3)
	require.Equal(t, uint64(13), g.GasUsed())
	require.Equal(t, int64(87), g.GasRemaining())
}

func TestGasMeterRefundIsTrackedSeparately(t *testing.T) {
	g := NewGasMeter(100)
	g.RefundGas(5)
	g.RefundGas(5)
	require.Equal(t, uint64(10), g.GasRefunded())
	require.Equal(t, uint64(0), g.GasUsed())
}

func TestGasMeterGoingNegativeIsOutOfGas(t *testing.T) {
	g := NewGasMeter(2)
	require.NoError(t, g.ConsumeGas(3), "ConsumeGas itself does not fail merely for going negative")
	require.True(t, g.IsOutOfGas())
	require.Equal(t, int64(-1), g.GasRemaining())
}

func TestGasMeterConsumeFailsOnceAlreadyOutOfGas(t *testing.T) {
	g := NewGasMeter(2)
	require.NoError(t, g.ConsumeGas(3))
	err := g.ConsumeGas(1)
	require.Error(t, err)
	var target *OutOfGas
	require.ErrorAs(t, err, &target)
}

func TestWrapOpcodeFnChargesBeforeRunning(t *testing.T) {
	g := NewGasMeter(10)
	ran := false
	fn := g.WrapOpcodeFn(ADD, func(*Frame) error {
		ran = true
		return nil
	}, 3)

	require.NoError(t, fn(nil))
	require.True(t, ran)
	require.Equal(t, uint64(3), g.GasUsed())
}

func TestWrapOpcodeFnOutOfGasNeverRunsFn(t *testing.T) {
	g := NewGasMeter(2)
	ran := false
	fn := g.WrapOpcodeFn(ADD, func(*Frame) error {
		ran = true
		return nil
	}, 3)

	err := fn(nil)
	require.Error(t, err)
	require.False(t, ran, "an opcode that can't afford its base cost must never execute its logic")
	var target *OutOfGas
	require.ErrorAs(t, err, &target)
}
